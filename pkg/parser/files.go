package parser

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

// DiscoverLogFiles finds *.log files directly under dir, drops any whose base
// name matches an exclude pattern, and returns them sorted lexicographically
// for deterministic processing order.
func DiscoverLogFiles(dir string, excludes []string) ([]string, error) {
	matchers := make([]glob.Glob, 0, len(excludes))
	for _, pattern := range excludes {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		matchers = append(matchers, g)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	var files []string
	for _, match := range matches {
		base := filepath.Base(match)
		excluded := false
		for _, g := range matchers {
			if g.Match(base) {
				excluded = true
				break
			}
		}
		if !excluded {
			files = append(files, match)
		}
	}

	sort.Strings(files)
	return files, nil
}
