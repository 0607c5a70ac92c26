package scaffold

import (
	"embed"
	"io/fs"
)

// The all: prefix keeps dotfiles like .gitignore in the embedded tree.
//
//go:embed all:templates/project
var templatesFS embed.FS

// DefaultGenerator returns a generator over the embedded project template
// with the default skip patterns.
func DefaultGenerator() *Generator {
	sub, err := fs.Sub(templatesFS, "templates/project")
	if err != nil {
		panic(err)
	}
	g, err := NewGenerator(sub, DefaultSkipPatterns)
	if err != nil {
		panic(err)
	}
	return g
}
