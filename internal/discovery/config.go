package discovery

// DefaultMaxDepth bounds recursion when no explicit depth is configured
const DefaultMaxDepth = 10

// TodoDirName is the directory under the root that holds markdown task files
const TodoDirName = "todo"

// Config controls a discovery run
type Config struct {
	// RootPath is the directory to scan from
	RootPath string

	// FollowLinks descends into symlinked directories and reads symlinked files
	FollowLinks bool

	// MaxDepth limits recursion below the walk start; 0 means unlimited
	MaxDepth int
}

// DefaultConfig returns the configuration used when nothing is specified
func DefaultConfig() Config {
	return Config{
		RootPath:    ".",
		FollowLinks: false,
		MaxDepth:    DefaultMaxDepth,
	}
}
