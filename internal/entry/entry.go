package entry

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
)

// Kind is the type of a filesystem entry as reported by the lister
type Kind int

const (
	Folder Kind = iota
	SymLink
	File
)

func (k Kind) String() string {
	switch k {
	case Folder:
		return "folder"
	case SymLink:
		return "symlink"
	case File:
		return "file"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Snapshot is an immutable description of one filesystem entry.
// ItemCount is set only for folders, FullPath only for search results.
type Snapshot struct {
	Name         string
	Kind         Kind
	Size         uint64
	ItemCount    *uint64
	LastModified time.Time
	FullPath     string
}

var (
	ErrItemCount = errors.New("item count must be set exactly for folders")
	ErrRelative  = errors.New("full path must be absolute")
)

// NewFolder builds a folder snapshot with its direct child count
func NewFolder(name string, items uint64, modified time.Time) Snapshot {
	return Snapshot{Name: name, Kind: Folder, ItemCount: &items, LastModified: modified}
}

// NewFile builds a file snapshot
func NewFile(name string, size uint64, modified time.Time) Snapshot {
	return Snapshot{Name: name, Kind: File, Size: size, LastModified: modified}
}

// NewSymLink builds a symbolic link snapshot
func NewSymLink(name string, size uint64, modified time.Time) Snapshot {
	return Snapshot{Name: name, Kind: SymLink, Size: size, LastModified: modified}
}

// WithFullPath returns a copy of s marked as a search result located at path
func (s Snapshot) WithFullPath(path string) Snapshot {
	s.FullPath = path
	return s
}

// IsSearchResult reports whether the snapshot came from a recursive search
func (s Snapshot) IsSearchResult() bool {
	return s.FullPath != ""
}

// Validate checks the snapshot invariants
func (s Snapshot) Validate() error {
	if (s.Kind == Folder) != (s.ItemCount != nil) {
		return fmt.Errorf("%s %q: %w", s.Kind, s.Name, ErrItemCount)
	}
	if s.FullPath != "" && !filepath.IsAbs(s.FullPath) {
		return fmt.Errorf("%q: %w", s.FullPath, ErrRelative)
	}
	return nil
}

// Items returns the folder child count, or 0 for non-folders
func (s Snapshot) Items() uint64 {
	if s.ItemCount == nil {
		return 0
	}
	return *s.ItemCount
}

// SizeText renders the size column: item counts for folders, decimal sizes otherwise
func (s Snapshot) SizeText() string {
	if s.Kind == Folder {
		switch n := s.Items(); n {
		case 0:
			return "Empty"
		case 1:
			return "1 item"
		default:
			return fmt.Sprintf("%d items", n)
		}
	}
	return humanize.Bytes(s.Size)
}

// ModifiedText renders the modified column relative to now.
// Same day shows the clock, same year the day and month, otherwise the full date.
func (s Snapshot) ModifiedText(now time.Time) string {
	t := s.LastModified.In(now.Location())
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	switch {
	case ty == ny && tm == nm && td == nd:
		return t.Format("15:04")
	case ty == ny:
		return t.Format("02 Jan")
	default:
		return t.Format("02 Jan 2006")
	}
}
