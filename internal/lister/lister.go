package lister

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/LFroesch/trek/internal/entry"
	"github.com/LFroesch/trek/internal/logger"
)

// Options tune listing and search
type Options struct {
	ShowHidden      bool
	SkipDirectories []string // Exact names or trailing-wildcard prefixes like "Python*"
	MaxResults      int
	MaxDepth        int
	MaxFilesScanned int
}

// OS lists and searches the local filesystem
type OS struct {
	opts Options
}

func New(opts Options) *OS {
	return &OS{opts: opts}
}

// ListDir returns the direct children of dir, folders first, then symlinks, then files.
// Entries that vanish or cannot be inspected while listing are skipped.
func (l *OS) ListDir(ctx context.Context, dir string) ([]entry.Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	snaps := make([]entry.Snapshot, 0, len(entries))
	skipped := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !l.opts.ShowHidden && isHidden(e.Name()) {
			continue
		}

		s, err := snapshot(filepath.Join(dir, e.Name()))
		if err != nil {
			skipped++
			continue
		}
		snaps = append(snaps, s)
	}

	if skipped > 0 {
		logger.Debug("Listing %s skipped %d unreadable entries", dir, skipped)
	}

	sortSnapshots(snaps)
	return snaps, nil
}

// snapshot describes the entry at path without following symlinks
func snapshot(path string) (entry.Snapshot, error) {
	linfo, err := os.Lstat(path)
	if err != nil {
		return entry.Snapshot{}, err
	}
	// Keep the on-disk spelling; paths are rebuilt from it
	name := filepath.Base(path)

	switch {
	case linfo.Mode()&os.ModeSymlink != 0:
		// Report the target's size when the link resolves
		info := linfo
		if target, err := os.Stat(path); err == nil {
			info = target
		}
		return entry.NewSymLink(name, size(info), info.ModTime()), nil
	case linfo.IsDir():
		return entry.NewFolder(name, itemCount(path), linfo.ModTime()), nil
	default:
		return entry.NewFile(name, size(linfo), linfo.ModTime()), nil
	}
}

// itemCount counts direct children; unreadable folders count as empty
func itemCount(dir string) uint64 {
	f, err := os.Open(dir)
	if err != nil {
		return 0
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		logger.Debug("Counting %s: %v", dir, err)
	}
	return uint64(len(names))
}

func size(info fs.FileInfo) uint64 {
	if info.Size() < 0 {
		return 0
	}
	return uint64(info.Size())
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func sortSnapshots(snaps []entry.Snapshot) {
	sort.SliceStable(snaps, func(i, j int) bool {
		if snaps[i].Kind != snaps[j].Kind {
			return snaps[i].Kind < snaps[j].Kind
		}
		return strings.ToLower(snaps[i].Name) < strings.ToLower(snaps[j].Name)
	})
}
