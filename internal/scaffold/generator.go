// Package scaffold generates new project skeletons from the embedded
// template tree. Rendering is a straight text/template pass with the
// project identity as data; the layered settings engine takes over once
// the generated project is in place.
package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/gobwas/glob"
	"github.com/schollz/progressbar/v3"
)

var (
	// ErrInvalidName indicates a project name the scaffolder refuses.
	ErrInvalidName = errors.New("invalid project name")

	// ErrTargetExists indicates a non-empty target directory.
	ErrTargetExists = errors.New("target project directory already exists and is not empty")
)

// DefaultSkipPatterns are template files never copied into a project.
var DefaultSkipPatterns = []string{
	"**/*.swp",
	"**/.DS_Store",
	"**/Thumbs.db",
}

// namePattern accepts kebab-case project names: lowercase, digits, hyphens.
var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Request describes one project generation.
type Request struct {
	Name      string // new project folder name
	ParentDir string // directory the project is created in
	Quiet     bool   // suppress progress output
}

// templateData is what the template files can reference.
type templateData struct {
	ProjectName string
	ProjectSlug string
	PackageName string
}

// compiledSkip holds both the pattern string and compiled glob
type compiledSkip struct {
	pattern string
	glob    glob.Glob
}

// Generator renders a template tree into new project directories.
type Generator struct {
	templates fs.FS
	skips     []compiledSkip
}

// NewGenerator builds a generator over the given template tree. Skip
// patterns use glob syntax with '/' separators.
func NewGenerator(templates fs.FS, skipPatterns []string) (*Generator, error) {
	g := &Generator{templates: templates}
	for _, pattern := range skipPatterns {
		compiled, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid skip pattern %q: %w", pattern, err)
		}
		g.skips = append(g.skips, compiledSkip{pattern: pattern, glob: compiled})
	}
	return g, nil
}

// Generate renders the template into {ParentDir}/{Name} and returns the
// created project directory. The target must be absent or empty.
func (g *Generator) Generate(req Request) (string, error) {
	if !namePattern.MatchString(req.Name) {
		return "", fmt.Errorf("%w: %q (use lowercase letters, digits, and hyphens)", ErrInvalidName, req.Name)
	}

	target := filepath.Join(req.ParentDir, req.Name)
	if entries, err := os.ReadDir(target); err == nil && len(entries) > 0 {
		return "", fmt.Errorf("%w: %s", ErrTargetExists, target)
	}

	data := templateData{
		ProjectName: req.Name,
		ProjectSlug: req.Name,
		PackageName: strings.ReplaceAll(req.Name, "-", "_"),
	}

	files, err := g.collectFiles()
	if err != nil {
		return "", err
	}

	var bar *progressbar.ProgressBar
	if !req.Quiet {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("Generating project"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
		)
	}

	for _, name := range files {
		if err := g.renderFile(name, target, data); err != nil {
			return "", err
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		bar.Finish()
		fmt.Println()
	}

	return target, nil
}

// collectFiles lists template files in walk order, minus skips.
func (g *Generator) collectFiles() ([]string, error) {
	var files []string
	err := fs.WalkDir(g.templates, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || g.skipped(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk template tree: %w", err)
	}
	return files, nil
}

// skipped reports whether a template path matches any skip pattern. Paths
// in the tree root additionally match patterns with their **/ prefix
// removed, so "**/.DS_Store" covers a root-level .DS_Store too.
func (g *Generator) skipped(path string) bool {
	for _, skip := range g.skips {
		if skip.glob.Match(path) {
			return true
		}
	}

	if !strings.Contains(path, "/") {
		for _, skip := range g.skips {
			if strings.HasPrefix(skip.pattern, "**/") {
				simplified := strings.TrimPrefix(skip.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}

// renderFile runs one template file through text/template into the target
// tree.
func (g *Generator) renderFile(name, target string, data templateData) error {
	raw, err := fs.ReadFile(g.templates, name)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Parse(string(raw))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	dest := filepath.Join(target, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dest), err)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer out.Close()

	if err := tmpl.Execute(out, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}
