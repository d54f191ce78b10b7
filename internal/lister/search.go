package lister

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/LFroesch/trek/internal/entry"
	"github.com/LFroesch/trek/internal/logger"
)

// MatchName reports whether name contains query, ignoring case
func MatchName(name, query string) bool {
	if query == "" {
		return false
	}
	return strings.Contains(strings.ToLower(norm.NFC.String(name)), strings.ToLower(norm.NFC.String(query)))
}

// Search walks dir recursively and returns every entry whose name contains query,
// ignoring case. Each result carries its absolute path. Unreadable directories and
// entries are skipped; the walk stops early at the configured limits or when ctx ends.
func (l *OS) Search(ctx context.Context, dir, query string) ([]entry.Snapshot, error) {
	if query == "" {
		return nil, nil
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	var results []entry.Snapshot
	scanned := 0
	skippedDirs := 0
	permissionErrors := 0

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				permissionErrors++
			} else {
				logger.Debug("WalkDir error at %s: %v", path, err)
			}
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if path == root {
			return nil
		}

		scanned++
		if l.opts.MaxFilesScanned > 0 && scanned > l.opts.MaxFilesScanned {
			logger.Warn("Hit max files scanned limit (%d)", l.opts.MaxFilesScanned)
			return filepath.SkipAll
		}

		if !l.opts.ShowHidden && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() && l.skipDir(d.Name()) {
			skippedDirs++
			return filepath.SkipDir
		}

		rel, _ := filepath.Rel(root, path)
		depth := strings.Count(rel, string(filepath.Separator))
		if l.opts.MaxDepth > 0 && depth >= l.opts.MaxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !MatchName(d.Name(), query) {
			return nil
		}

		s, err := snapshot(path)
		if err != nil {
			return nil
		}
		results = append(results, s.WithFullPath(path))

		if l.opts.MaxResults > 0 && len(results) >= l.opts.MaxResults {
			logger.Warn("Hit max results limit (%d)", l.opts.MaxResults)
			return filepath.SkipAll
		}
		return nil
	})

	if walkErr != nil {
		logger.Debug("Search in %s for %q stopped: %v", root, query, walkErr)
		return nil, walkErr
	}

	logger.Debug("Search in %s for %q: %d results, %d scanned, %d dirs skipped, %d permission errors in %v",
		root, query, len(results), scanned, skippedDirs, permissionErrors, time.Since(startTime))
	return results, nil
}

// skipDir matches name against the configured skip list
func (l *OS) skipDir(name string) bool {
	for _, pattern := range l.opts.SkipDirectories {
		if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
			if strings.HasPrefix(name, prefix) {
				return true
			}
		} else if name == pattern {
			return true
		}
	}
	return false
}
