package sink

import (
	"fmt"
	"os/exec"
	"runtime"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"donation-report/src/pkg/report"
)

var _ report.Sink = (*Viewer)(nil)

/*
Viewer saves the document through File and then opens it in the desktop's
PDF viewer, where it can be printed or saved elsewhere.

Open defaults to OpenWithHost.
*/
type Viewer struct {
	File File
	Open func(path string) error
}

func (v *Viewer) Deliver(name string, document []byte) (e *xerr.Error) {
	path, e := v.File.Write(name, document)
	if e != nil {
		return e
	}

	open := v.Open
	if open == nil {
		open = OpenWithHost
	}
	err := open(path)
	if err != nil {
		return xerr.NewError(err, "open report in viewer", path)
	}

	tl.Log(tl.Info, palette.Green, "Opened report '%s' in viewer", path)
	return nil
}

// OpenWithHost starts the platform's default handler for path without waiting for it.
func OpenWithHost(path string) error {
	var command *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		command = exec.Command("open", path)
	case "windows":
		command = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	case "linux", "freebsd", "openbsd", "netbsd":
		command = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("no viewer known for %s", runtime.GOOS)
	}
	return command.Start()
}
