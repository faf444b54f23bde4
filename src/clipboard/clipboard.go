// Package clipboard writes images and text to the system clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"golang.design/x/clipboard"

	"regionshot/src/logutil"
)

// HolderArg as the first argument runs the process as a clipboard holder; see
// RunHolder.
const HolderArg = "__regionshot_clipboard_holder"

const (
	kindImage = "image"
	kindText  = "text"
)

var (
	writeMu sync.Mutex
	detach  atomic.Bool
)

// Init must succeed before any write. It fails when no clipboard is reachable,
// for example without a display server.
func Init() error {
	return clipboard.Init()
}

// Detach makes writes hand the data to a background copy of this process that
// keeps serving it after we exit. On X11 and Wayland the clipboard is emptied
// when its owner exits.
func Detach(on bool) { detach.Store(on) }

// WriteImage puts img on the clipboard as PNG. Writes are mutex-guarded to
// prevent corruption under parallel writes.
func WriteImage(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode clipboard image: %w", err)
	}
	return write(kindImage, buf.Bytes())
}

// WriteText puts text on the clipboard.
func WriteText(text string) error {
	return write(kindText, []byte(text))
}

func write(kind string, data []byte) error {
	if detach.Load() {
		return spawnHolder(kind, data)
	}
	writeMu.Lock()
	defer writeMu.Unlock()
	clipboard.Write(format(kind), data)
	return nil
}

func format(kind string) clipboard.Format {
	if kind == kindImage {
		return clipboard.FmtImage
	}
	return clipboard.FmtText
}

func spawnHolder(kind string, data []byte) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("find executable: %w", err)
	}
	f, err := os.CreateTemp("", "regionshot-clipboard-*")
	if err != nil {
		return fmt.Errorf("create clipboard buffer: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("write clipboard buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("write clipboard buffer: %w", err)
	}

	cmd := exec.Command(exe, HolderArg, kind, f.Name())
	cmd.Dir = os.TempDir()
	detachProcess(cmd)
	if err := cmd.Start(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("start clipboard holder: %w", err)
	}
	logutil.Infof("clipboard: holder started with pid %d", cmd.Process.Pid)
	return cmd.Process.Release()
}

// RunHolder serves one clipboard write until something else is copied. args
// are the kind (image or text) and the buffer file, which is removed.
func RunHolder(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("clipboard holder: expected kind and file, got %d arguments", len(args))
	}
	kind, path := args[0], args[1]
	if kind != kindImage && kind != kindText {
		return fmt.Errorf("clipboard holder: unknown kind %q", kind)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("clipboard holder: %w", err)
	}
	_ = os.Remove(path)

	if err := Init(); err != nil {
		return fmt.Errorf("clipboard holder: %w", err)
	}
	changed := clipboard.Write(format(kind), data)
	if changed == nil {
		return errors.New("clipboard holder: write failed")
	}
	<-changed
	logutil.Infof("clipboard: content replaced, holder exiting")
	return nil
}
