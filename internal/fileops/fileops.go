package fileops

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"runtime"

	"github.com/skratchdot/open-golang/open"
	"golang.org/x/sync/errgroup"
)

var ErrNoTrash = errors.New("trash command not available (install trash-cli or gvfs)")

// maxParallelTrash bounds concurrent trash commands
const maxParallelTrash = 4

// Ops performs the mutating file actions: trash and open
type Ops struct {
	goos     string
	run      func(ctx context.Context, name string, args ...string) error
	lookPath func(string) (string, error)
	start    func(string) error
}

// New returns Ops backed by the real system commands
func New() *Ops {
	return &Ops{
		goos: runtime.GOOS,
		run: func(ctx context.Context, name string, args ...string) error {
			out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
			if err != nil && len(out) > 0 {
				return fmt.Errorf("%w: %s", err, out)
			}
			return err
		},
		lookPath: exec.LookPath,
		start:    open.Start,
	}
}

// OpenFile opens path with the system default application without waiting for it
func (o *Ops) OpenFile(path string) error {
	if err := o.start(path); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

// DeleteFiles moves every path to the trash. One failure does not stop the
// others; the result joins a *fs.PathError for each path that stayed put.
func (o *Ops) DeleteFiles(ctx context.Context, paths []string) error {
	var g errgroup.Group
	g.SetLimit(maxParallelTrash)

	errs := make([]error, len(paths))
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := o.MoveToTrash(ctx, p); err != nil {
				errs[i] = &fs.PathError{Op: "trash", Path: p, Err: err}
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// MoveToTrash moves a file or directory to the system trash/recycle bin
func (o *Ops) MoveToTrash(ctx context.Context, path string) error {
	switch o.goos {
	case "darwin":
		script := fmt.Sprintf(`tell application "Finder" to delete POSIX file %q`, path)
		return o.run(ctx, "osascript", "-e", script)

	case "windows":
		script := fmt.Sprintf(`Add-Type -AssemblyName Microsoft.VisualBasic; [Microsoft.VisualBasic.FileIO.FileSystem]::DeleteFile('%s', 'OnlyErrorDialogs', 'SendToRecycleBin')`, path)
		return o.run(ctx, "powershell", "-Command", script)

	default:
		if o.commandExists("gio") {
			return o.run(ctx, "gio", "trash", path)
		}
		if o.commandExists("trash-put") {
			return o.run(ctx, "trash-put", path)
		}
		return ErrNoTrash
	}
}

// commandExists checks if a command is available in PATH
func (o *Ops) commandExists(cmd string) bool {
	_, err := o.lookPath(cmd)
	return err == nil
}
