package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// Drift describes a page whose file on disk is missing or out of date.
type Drift struct {
	Page    string
	Missing bool
	Diff    string // unified diff from the file on disk to the fresh page
}

// Check compares pages with the files in dir without writing anything.
// Pages that match are not reported.
func Check(dir string, pages []Page) ([]Drift, error) {
	var drift []Drift
	for _, pg := range pages {
		path := filepath.Join(dir, pg.Name)
		old, err := os.ReadFile(path)
		missing := errors.Is(err, fs.ErrNotExist)
		if err != nil && !missing {
			return nil, fmt.Errorf("reading %s: %w", pg.Name, err)
		}
		if !missing && string(old) == pg.Content {
			continue
		}

		from := filepath.ToSlash(filepath.Join(filepath.Base(dir), pg.Name))
		var a []string
		if missing {
			from = "/dev/null"
		} else {
			a = difflib.SplitLines(string(old))
		}
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        a,
			B:        difflib.SplitLines(pg.Content),
			FromFile: from,
			ToFile:   pg.Name,
			Context:  3,
		})
		if err != nil {
			return nil, fmt.Errorf("diffing %s: %w", pg.Name, err)
		}
		drift = append(drift, Drift{Page: pg.Name, Missing: missing, Diff: diff})
	}
	return drift, nil
}
