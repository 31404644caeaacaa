// Package sink holds the places a finished report can be delivered to.
package sink

import (
	"fmt"
	"os"
	"path/filepath"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"donation-report/src/pkg/report"
)

var _ report.Sink = (*File)(nil)

/*
File writes the document to disk.

Path wins when set; otherwise the document lands in Dir under the name the
compiler chose. The bytes go to a temporary file next to the target first and
are renamed into place, so a reader never sees a half-written PDF.
*/
type File struct {
	Dir  string
	Path string

	written string
}

func (f *File) Deliver(name string, document []byte) (e *xerr.Error) {
	_, e = f.Write(name, document)
	return e
}

// Write is Deliver that also reports where the document ended up.
func (f *File) Write(name string, document []byte) (path string, e *xerr.Error) {
	path = f.Path
	if path == "" {
		path = filepath.Join(f.Dir, name)
	}
	dir := filepath.Dir(path)

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return path, xerr.NewError(err, "create report directory", dir)
	}

	temporary, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return path, xerr.NewError(err, "create temporary report file", dir)
	}
	temporaryPath := temporary.Name()
	defer os.Remove(temporaryPath) // no-op after a successful rename

	_, err = temporary.Write(document)
	if err == nil {
		err = temporary.Sync()
	}
	closeErr := temporary.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		return path, xerr.NewError(err, "write temporary report file", temporaryPath)
	}

	err = os.Chmod(temporaryPath, 0o644)
	if err != nil {
		return path, xerr.NewError(err, "chmod temporary report file", temporaryPath)
	}
	err = os.Rename(temporaryPath, path)
	if err != nil {
		return path, xerr.NewError(err, "move report into place", fmt.Sprintf("%s -> %s", temporaryPath, path))
	}

	f.written = path
	tl.Log(tl.Info1, palette.Green, "Saved report to '%s' (%v bytes)", path, len(document))
	return path, nil
}

// Written is the path of the last successful delivery, empty before that.
func (f *File) Written() string {
	return f.written
}
