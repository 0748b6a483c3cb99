package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autodomd/autodomd/internal/discovery"
	"github.com/autodomd/autodomd/internal/types"
)

func TestCommentPatterns(t *testing.T) {
	// Every supported extension has a non-empty, stable pattern set
	for ext := range discovery.SourceExtensions {
		first := CommentPatterns(ext)
		assert.NotEmpty(t, first, "extension %s", ext)
		assert.Equal(t, first, CommentPatterns(ext), "extension %s", ext)
	}

	assert.Equal(t, []string{"#"}, CommentPatterns("py"))
	assert.Equal(t, []string{"//"}, CommentPatterns("go"))
	assert.Equal(t, []string{"//", "#", "/*"}, CommentPatterns("php"))
	assert.Equal(t, []string{"//", "#", "/*"}, CommentPatterns("unknown"))
	assert.Equal(t, []string{"//", "#", "/*"}, CommentPatterns(""))

	// Callers cannot modify the table
	p := CommentPatterns("rs")
	p[0] = "--"
	assert.Equal(t, []string{"//", "/*"}, CommentPatterns("rs"))
}

func TestParseTodoLine(t *testing.T) {
	cStyle := []string{"//", "/*"}
	hash := []string{"#"}

	tests := []struct {
		name         string
		line         string
		patterns     []string
		wantOK       bool
		wantTitle    string
		wantCategory string
	}{
		{"category", "// TODO(Auth): fix login bug", cStyle, true, "fix login bug", "Auth"},
		{"general", "// TODO: generic fix", cStyle, true, "generic fix", "General"},
		{"indented", "\t\t// TODO: indented", cStyle, true, "indented", "General"},
		{"no space before colon", "//TODO(UI):tighten spacing", cStyle, true, "tighten spacing", "UI"},
		{"space before colon", "// TODO (UI) : not a category", cStyle, false, "", ""},
		{"whitespace before colon", "// TODO(Api)   :   padded  ", cStyle, true, "padded", "Api"},
		{"block comment", "/* TODO: block style */", cStyle, true, "block style */", "General"},
		{"python", "# TODO(Perf): cache results", hash, true, "cache results", "Perf"},
		{"wrong marker", "# TODO: not a rust comment", cStyle, false, "", ""},
		{"string literal", `let s = "// TODO: inside string";`, cStyle, false, "", ""},
		{"missing colon", "// TODO fix later", cStyle, false, "", ""},
		{"empty title", "// TODO:   ", cStyle, false, "", ""},
		{"not a todo", "// just a comment", cStyle, false, "", ""},
		{"mid comment", "// note: TODO: handle errors", cStyle, true, "handle errors", "General"},
		{"non-word category", "// TODO(a-b): dashed", cStyle, false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, category, ok := ParseTodoLine(tt.line, tt.patterns)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantCategory, category.DisplayName())
		})
	}
}

func TestParseSourceContent(t *testing.T) {
	content := "fn main() {\n" +
		"    let s = \"TODO: not me\";\n" +
		"}\r\n" +
		"\n" +
		"// TODO: generic fix\n" +
		"// TODO(Auth): fix login bug\n" +
		"# TODO: wrong marker for rust\n"

	// Line 12 check from a padded file
	for i := 0; i < 4; i++ {
		content += "\n"
	}
	content += "// TODO(Auth): line twelve\n"

	tasks := ParseSourceContent("a.rs", "rs", content)
	require.Len(t, tasks, 3)

	assert.Equal(t, types.NewCodeTask("generic fix", types.General, "a.rs", 5), tasks[0])
	assert.Equal(t, types.NewCodeTask("fix login bug", types.NewCategory("Auth"), "a.rs", 6), tasks[1])
	assert.Equal(t, 12, tasks[2].Location.Line)
	assert.Equal(t, "line twelve", tasks[2].Title)

	for _, task := range tasks {
		assert.NoError(t, task.Validate())
		assert.Equal(t, types.SourceCode, task.Source)
	}
}

func TestParseSourceContent_Empty(t *testing.T) {
	assert.Empty(t, ParseSourceContent("a.go", "go", ""))
}
