package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced by the scanner, parsers and report writer
type ErrorKind int

const (
	KindIO ErrorKind = iota
	KindPath
	KindParse
	// KindInvalidFormat is reserved for report format validation
	KindInvalidFormat
)

// Sentinels usable with errors.Is
var (
	ErrIO            = errors.New("io error")
	ErrPath          = errors.New("path error")
	ErrParse         = errors.New("parse error")
	ErrInvalidFormat = errors.New("invalid file format")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindPath:
		return ErrPath
	case KindParse:
		return ErrParse
	case KindInvalidFormat:
		return ErrInvalidFormat
	default:
		return ErrIO
	}
}

// Error carries the kind of failure and the path it concerns
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// IOError wraps a filesystem failure for path
func IOError(path string, err error) error {
	return &Error{Kind: KindIO, Path: path, Err: err}
}

// PathError reports a malformed or unusable path
func PathError(path string, err error) error {
	return &Error{Kind: KindPath, Path: path, Err: err}
}

// ParseError reports content that could not be interpreted
func ParseError(path string, err error) error {
	return &Error{Kind: KindParse, Path: path, Err: err}
}

// InvalidFormatError reports a file that does not follow the expected format
func InvalidFormatError(path string, err error) error {
	return &Error{Kind: KindInvalidFormat, Path: path, Err: err}
}
