package browser

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/trek/internal/entry"
	"github.com/LFroesch/trek/internal/history"
	"github.com/LFroesch/trek/internal/logger"
	"github.com/LFroesch/trek/internal/registry"
	"github.com/LFroesch/trek/internal/selection"
)

// FileLister produces entry snapshots for a directory or a recursive name search
type FileLister interface {
	ListDir(ctx context.Context, dir string) ([]entry.Snapshot, error)
	Search(ctx context.Context, dir, query string) ([]entry.Snapshot, error)
}

// Actions are the mutating collaborators
type Actions interface {
	OpenFile(path string) error
	DeleteFiles(ctx context.Context, paths []string) error
}

// Mode tells which list source is displayed
type Mode int

const (
	Browsing Mode = iota
	Searching
)

func (m Mode) String() string {
	if m == Searching {
		return "searching"
	}
	return "browsing"
}

// Listing is the displayed list together with the request that produced it.
// Dir is the directory the list was fetched for; Term is set only when Searching.
type Listing struct {
	Mode    Mode
	Dir     string
	Term    string
	Records []*registry.Record
	Gen     uint64
}

// ListedMsg carries a directory listing back to the event loop
type ListedMsg struct {
	Gen     uint64
	Dir     string
	Entries []entry.Snapshot
	Err     error
}

// SearchedMsg carries recursive search results back to the event loop
type SearchedMsg struct {
	Gen     uint64
	Dir     string
	Term    string
	Entries []entry.Snapshot
	Err     error
}

// OpenedMsg reports the outcome of opening a file
type OpenedMsg struct {
	Path string
	Err  error
}

// DeletedMsg reports the outcome of trashing the selection. Gen is the
// generation of the list the records were optimistically removed from.
// Failed lists the paths that are still on disk when Err is set.
type DeletedMsg struct {
	Gen     uint64
	Paths   []string
	Failed  []string
	Err     error
	before  []*registry.Record
	removed []removal
}

type removal struct {
	rec  *registry.Record
	path string
}

// Option configures a Controller
type Option func(*Controller)

// WithHistoryLimit caps the number of remembered directories; 0 keeps all
func WithHistoryLimit(n int) Option {
	return func(c *Controller) {
		c.historyLimit = n
	}
}

// Controller drives navigation, search and selection over one displayed list.
// It is not safe for concurrent use; all methods run on the bubbletea event loop
// and collaborator calls happen inside the returned commands.
type Controller struct {
	lister  FileLister
	actions Actions

	history      *history.Stack
	historyLimit int
	sel          selection.Engine
	listing      Listing

	gen           uint64 // latest issued request
	cancel        context.CancelFunc
	loading       bool
	pendingSearch bool
	lastErr       error
}

func New(start string, lister FileLister, actions Actions, opts ...Option) *Controller {
	c := &Controller{lister: lister, actions: actions}
	for _, opt := range opts {
		opt(c)
	}
	c.history = history.New(start, c.historyLimit)
	c.listing = Listing{Mode: Browsing, Dir: start}
	return c
}

// begin issues a new request generation and cancels the one in flight
func (c *Controller) begin() (context.Context, uint64) {
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.gen++
	c.loading = true
	return ctx, c.gen
}

func (c *Controller) finish() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.loading = false
	c.pendingSearch = false
}

// LoadCurrentDirectory fetches the directory at the current history position.
// Whatever the mode, the resulting list is a Browsing one.
func (c *Controller) LoadCurrentDirectory() tea.Cmd {
	dir := c.history.Current()
	ctx, gen := c.begin()
	c.pendingSearch = false
	lister := c.lister

	return func() tea.Msg {
		entries, err := lister.ListDir(ctx, dir)
		return ListedMsg{Gen: gen, Dir: dir, Entries: entries, Err: err}
	}
}

// Search runs a recursive name search below the current directory.
// A blank term leaves search mode instead.
func (c *Controller) Search(term string) tea.Cmd {
	if strings.TrimSpace(term) == "" {
		return c.ExitSearch()
	}

	dir := c.history.Current()
	ctx, gen := c.begin()
	c.pendingSearch = true
	lister := c.lister

	return func() tea.Msg {
		entries, err := lister.Search(ctx, dir, term)
		return SearchedMsg{Gen: gen, Dir: dir, Term: term, Entries: entries, Err: err}
	}
}

// ExitSearch drops the search results, or the pending search, and reloads the directory
func (c *Controller) ExitSearch() tea.Cmd {
	if c.listing.Mode != Searching && !c.pendingSearch {
		return nil
	}
	c.sel.Clear()
	return c.LoadCurrentDirectory()
}

// Activate opens a file or enters a folder. Symlinks are not followed.
func (c *Controller) Activate(rec *registry.Record) tea.Cmd {
	if rec == nil {
		return nil
	}

	switch rec.Snapshot.Kind {
	case entry.Folder:
		if c.listing.Mode == Searching {
			c.history.NavigateTo(c.resolve(rec))
		} else if c.listing.Dir == c.history.Current() {
			c.history.EnterDir(rec.Snapshot.Name)
		} else {
			// A back/forward reload is still in flight; the record belongs to the displayed dir
			c.history.NavigateTo(c.resolve(rec))
		}
		c.sel.Clear()
		return c.LoadCurrentDirectory()

	case entry.File:
		return c.open(c.resolve(rec))

	default:
		logger.Debug("Ignoring activation of symlink %q", rec.Snapshot.Name)
		return nil
	}
}

func (c *Controller) open(path string) tea.Cmd {
	actions := c.actions
	return func() tea.Msg {
		return OpenedMsg{Path: path, Err: actions.OpenFile(path)}
	}
}

// Click applies a click with explicit modifier state to the displayed list
func (c *Controller) Click(index int, mods selection.Modifiers) error {
	return c.sel.Click(c.listing.Records, index, mods)
}

// ClearSelection deselects every record
func (c *Controller) ClearSelection() {
	c.sel.Clear()
}

// DeleteSelected removes the selected records from the displayed list right
// away and trashes their paths. Records whose paths could not be trashed come
// back at their former positions while the same list is still displayed.
func (c *Controller) DeleteSelected() tea.Cmd {
	targets := c.sel.Selected()
	if len(targets) == 0 {
		return nil
	}

	before := append([]*registry.Record(nil), c.listing.Records...)
	paths := make([]string, 0, len(targets))
	removed := make([]removal, 0, len(targets))
	c.sel.Clear()

	for _, rec := range targets {
		path := c.resolve(rec)
		records, r, _ := registry.Remove(c.listing.Records, rec.ID)
		if r == nil {
			continue
		}
		c.listing.Records = records
		paths = append(paths, path)
		removed = append(removed, removal{rec: r, path: path})
	}
	if len(paths) == 0 {
		return nil
	}

	gen := c.listing.Gen
	actions := c.actions
	return func() tea.Msg {
		err := actions.DeleteFiles(context.Background(), paths)
		return DeletedMsg{
			Gen:     gen,
			Paths:   paths,
			Failed:  failedPaths(err, paths),
			Err:     err,
			before:  before,
			removed: removed,
		}
	}
}

// failedPaths picks the paths err names through *fs.PathError. An error that
// names none of them fails the whole batch.
func failedPaths(err error, paths []string) []string {
	if err == nil {
		return nil
	}

	named := make(map[string]bool)
	var collect func(error)
	collect = func(e error) {
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				collect(inner)
			}
			return
		}
		var pe *fs.PathError
		if errors.As(e, &pe) {
			named[pe.Path] = true
		}
	}
	collect(err)

	var failed []string
	for _, p := range paths {
		if named[p] {
			failed = append(failed, p)
		}
	}
	if len(failed) == 0 {
		return paths
	}
	return failed
}

// restore puts rec back after its nearest predecessor in before that is still displayed
func (c *Controller) restore(before []*registry.Record, rec *registry.Record) {
	at := 0
	for i := registry.FindByID(before, rec.ID) - 1; i >= 0; i-- {
		if idx := registry.FindByID(c.listing.Records, before[i].ID); idx >= 0 {
			at = idx + 1
			break
		}
	}
	c.listing.Records = registry.Insert(c.listing.Records, at, rec)
}

// SelectedPaths resolves the absolute paths of the selection, one per record
func (c *Controller) SelectedPaths() []string {
	selected := c.sel.Selected()
	paths := make([]string, len(selected))
	for i, rec := range selected {
		paths[i] = c.resolve(rec)
	}
	return paths
}

// resolve returns the absolute path of a displayed record
func (c *Controller) resolve(rec *registry.Record) string {
	if c.listing.Mode == Searching {
		if !rec.Snapshot.IsSearchResult() {
			panic(fmt.Sprintf("browser: search result %q has no full path", rec.Snapshot.Name))
		}
		return rec.Snapshot.FullPath
	}
	return filepath.Join(c.listing.Dir, rec.Snapshot.Name)
}

func (c *Controller) CanGoBack() bool {
	return c.history.CanGoBack()
}

func (c *Controller) CanGoForward() bool {
	return c.history.CanGoForward()
}

// Back revisits the previous directory, leaving search mode
func (c *Controller) Back() tea.Cmd {
	if !c.history.CanGoBack() {
		return nil
	}
	c.history.Back()
	c.sel.Clear()
	return c.LoadCurrentDirectory()
}

// Forward revisits the next directory, leaving search mode
func (c *Controller) Forward() tea.Cmd {
	if !c.history.CanGoForward() {
		return nil
	}
	c.history.Forward()
	c.sel.Clear()
	return c.LoadCurrentDirectory()
}

// Update consumes collaborator responses. Responses to superseded requests are dropped.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ListedMsg:
		if msg.Gen != c.gen {
			logger.Debug("Dropping stale listing of %s (gen %d, latest %d)", msg.Dir, msg.Gen, c.gen)
			return nil
		}
		c.finish()
		c.sel.Reset()
		c.listing = Listing{Mode: Browsing, Dir: msg.Dir, Gen: msg.Gen}
		if msg.Err != nil {
			c.lastErr = msg.Err
			logger.Error("Failed to list %s: %v", msg.Dir, msg.Err)
			return nil
		}
		c.lastErr = nil
		c.listing.Records = registry.Wrap(msg.Entries)

	case SearchedMsg:
		if msg.Gen != c.gen {
			logger.Debug("Dropping stale search for %q in %s (gen %d, latest %d)", msg.Term, msg.Dir, msg.Gen, c.gen)
			return nil
		}
		c.finish()
		c.sel.Reset()
		c.listing = Listing{Mode: Searching, Dir: msg.Dir, Term: msg.Term, Gen: msg.Gen}
		if msg.Err != nil {
			c.lastErr = msg.Err
			logger.Error("Search for %q in %s failed: %v", msg.Term, msg.Dir, msg.Err)
			return nil
		}
		c.lastErr = nil
		c.listing.Records = registry.Wrap(msg.Entries)

	case OpenedMsg:
		if msg.Err != nil {
			c.lastErr = msg.Err
			logger.Error("Failed to open %s: %v", msg.Path, msg.Err)
		}

	case DeletedMsg:
		if msg.Err == nil {
			logger.Info("Moved %d items to trash", len(msg.Paths))
			return nil
		}
		c.lastErr = msg.Err
		logger.Error("Failed to trash %d of %d items: %v", len(msg.Failed), len(msg.Paths), msg.Err)
		if msg.Gen != c.listing.Gen {
			logger.Debug("List changed since delete (gen %d, now %d); not restoring", msg.Gen, c.listing.Gen)
			return nil
		}
		failed := make(map[string]bool, len(msg.Failed))
		for _, p := range msg.Failed {
			failed[p] = true
		}
		keep := make(map[*registry.Record]bool)
		for _, r := range msg.removed {
			if failed[r.path] {
				keep[r.rec] = true
			}
		}
		for _, rec := range msg.before {
			if keep[rec] {
				c.restore(msg.before, rec)
			}
		}
	}
	return nil
}

func (c *Controller) Mode() Mode {
	return c.listing.Mode
}

// Listing returns the displayed list and its origin
func (c *Controller) Listing() Listing {
	return c.listing
}

func (c *Controller) Records() []*registry.Record {
	return c.listing.Records
}

// CurrentDir is the directory at the current history position
func (c *Controller) CurrentDir() string {
	return c.history.Current()
}

func (c *Controller) SearchTerm() string {
	return c.listing.Term
}

func (c *Controller) Loading() bool {
	return c.loading
}

func (c *Controller) LastErr() error {
	return c.lastErr
}

func (c *Controller) History() *history.Stack {
	return c.history
}

func (c *Controller) Selection() *selection.Engine {
	return &c.sel
}
