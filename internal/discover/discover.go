// Package discover finds Java source files in a project tree.
package discover

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultInclude matches every Java source file.
var DefaultInclude = []string{"**/*.java"}

// FileEntry represents a discovered source file.
type FileEntry struct {
	Path string // Relative to the project root
	Size int64
}

// Options filters discovered files. Patterns are matched against the
// slash-separated root-relative path. An empty Include means
// DefaultInclude.
type Options struct {
	Include   []string
	Exclude   []string
	SkipTests bool // drop files IsTestFile reports
}

var skipDirs = map[string]struct{}{
	"target":       {},
	"build":        {},
	"out":          {},
	"bin":          {},
	"node_modules": {},
	".gradle":      {},
	".idea":        {},
	".git":         {},
	".hg":          {},
	".svn":         {},
}

// SkipDir reports whether a directory with this name is never searched:
// hidden, VCS and build output directories.
func SkipDir(name string) bool {
	_, skip := skipDirs[name]
	return skip || strings.HasPrefix(name, ".")
}

type pattern struct {
	text string
	glob glob.Glob
}

// Root returns the project root for path: path itself for a directory, its
// parent directory for a single file.
func Root(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return path, nil
	}
	return filepath.Dir(path), nil
}

// Files discovers Java source files under path, sorted by relative path.
// A path naming a single .java file yields just that file, relative to its
// directory; the filters do not apply to it.
func Files(path string, opts Options) ([]FileEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if filepath.Ext(path) != ".java" {
			return nil, fmt.Errorf("%s: not a Java source file", path)
		}
		return []FileEntry{{Path: filepath.Base(path), Size: info.Size()}}, nil
	}

	includes := opts.Include
	if len(includes) == 0 {
		includes = DefaultInclude
	}
	inc, err := compile(includes)
	if err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}
	exc, err := compile(opts.Exclude)
	if err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}

	root := path
	gitFiles := gitLsFiles(root)
	var gi *ignore.GitIgnore
	if gitFiles == nil {
		gi = loadGitignore(root)
	}

	var results []FileEntry

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}

		name := d.Name()

		if d.IsDir() {
			if path == root {
				return nil
			}
			if SkipDir(name) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") || filepath.Ext(name) != ".java" {
			return nil
		}

		// Skip symlinks
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		slash := filepath.ToSlash(rel)

		if gitFiles != nil {
			if _, ok := gitFiles[slash]; !ok {
				return nil
			}
		} else if gi != nil && gi.MatchesPath(slash) {
			return nil
		}

		if !matchesAny(slash, inc) || matchesAny(slash, exc) {
			return nil
		}
		if opts.SkipTests && IsTestFile(slash) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil
		}
		results = append(results, FileEntry{Path: rel, Size: fi.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	return results, nil
}

// IsTestFile reports whether a slash-separated path looks like Java test
// code: a file under a test/ or tests/ directory, or named *Test.java,
// *Tests.java, *IT.java or Test*.java.
func IsTestFile(path string) bool {
	dir, name := "", path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		dir, name = path[:i], path[i+1:]
	}
	for _, part := range strings.Split(dir, "/") {
		if part == "test" || part == "tests" {
			return true
		}
	}

	base := strings.TrimSuffix(name, ".java")
	if base == "Test" {
		return false
	}
	return strings.HasSuffix(base, "Test") ||
		strings.HasSuffix(base, "Tests") ||
		strings.HasSuffix(base, "IT") ||
		(strings.HasPrefix(base, "Test") && len(base) > 4 && isUpper(base[4]))
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func compile(patterns []string) ([]pattern, error) {
	out := make([]pattern, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		out = append(out, pattern{text: p, glob: g})
	}
	return out, nil
}

// matchesAny reports whether path matches one of patterns. A "**/" prefix
// also matches files at the root, so "**/*.java" matches "Book.java".
func matchesAny(path string, patterns []pattern) bool {
	for _, p := range patterns {
		if p.glob.Match(path) {
			return true
		}
	}

	if strings.Contains(path, "/") {
		return false
	}
	for _, p := range patterns {
		rest, ok := strings.CutPrefix(p.text, "**/")
		if !ok {
			continue
		}
		if g, err := glob.Compile(rest, '/'); err == nil && g.Match(path) {
			return true
		}
	}
	return false
}

func gitLsFiles(root string) map[string]struct{} {
	gitDir := filepath.Join(root, ".git")
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return nil
	}

	files := make(map[string]struct{})
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if line != "" {
			files[line] = struct{}{}
		}
	}
	return files
}

func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}
