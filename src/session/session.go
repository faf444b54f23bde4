// Package session runs one capture: it takes the screenshot, lets the user
// select a region and carries out what they chose.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"regionshot/src/app"
	"regionshot/src/eventloop"
	"regionshot/src/geometry"
	"regionshot/src/keymap"
	"regionshot/src/lastregion"
	"regionshot/src/logutil"
	"regionshot/src/messages"
	"regionshot/src/screenshot"
)

// ErrNoSelection is returned when the session ended without anything being
// copied, saved or uploaded.
var ErrNoSelection = errors.New("no region was selected")

// Window is the overlay showing one capture.
type Window interface {
	eventloop.View
	Show()
	Close()
}

// OpenWindowFunc creates the overlay for img without showing it. post delivers
// input events to the session.
type OpenWindowFunc func(img *image.RGBA, post func(app.Event) bool) (Window, error)

type Options struct {
	Delay time.Duration
	// File is an image to use instead of capturing the screen.
	File       string
	Region     *geometry.Rect
	LastRegion bool
	// LastRegionPath defaults to lastregion.Path().
	LastRegionPath string
	AcceptOnSelect messages.AcceptOnSelect
	KeyMap         *keymap.KeyMap
	Debug          bool
	// SavePath is a file or directory for saved screenshots. Defaults to the
	// user's pictures directory.
	SavePath string

	Capture    func() (*image.RGBA, error)
	LoadFile   func(path string) (*image.RGBA, error)
	OpenWindow OpenWindowFunc
	Clipboard  eventloop.Clipboard
	Uploader   eventloop.Uploader
	// Now names saved files. Defaults to time.Now.
	Now func() time.Time
}

// Result describes what the session produced.
type Result struct {
	Region    geometry.Rect
	Copied    bool
	SavedPath string
	Uploaded  *messages.ImageUploaded
}

// Execute runs one session. Without a window, a region and an accept action
// are required and the action runs directly.
func Execute(ctx context.Context, opts Options) (Result, error) {
	if opts.Delay > 0 {
		logutil.Infof("session: waiting %s before capture", opts.Delay)
		select {
		case <-time.After(opts.Delay):
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}

	img, err := loadImage(opts)
	if err != nil {
		return Result{}, err
	}

	region, err := initialRegion(opts)
	if err != nil {
		return Result{}, err
	}

	var outcome eventloop.Outcome
	if region != nil && opts.AcceptOnSelect != messages.AcceptNone {
		outcome, err = runHeadless(ctx, opts, img, *region)
	} else {
		outcome, err = runInteractive(ctx, opts, img, region)
	}
	if err != nil {
		return Result{}, err
	}
	return finish(opts, outcome)
}

func loadImage(opts Options) (*image.RGBA, error) {
	if opts.File != "" {
		load := opts.LoadFile
		if load == nil {
			load = screenshot.LoadFile
		}
		img, err := load(opts.File)
		if err != nil {
			return nil, fmt.Errorf("load image: %w", err)
		}
		return img, nil
	}
	capture := opts.Capture
	if capture == nil {
		capture = screenshot.Capture
	}
	img, err := capture()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	return img, nil
}

func initialRegion(opts Options) (*geometry.Rect, error) {
	if opts.Region != nil {
		r := *opts.Region
		return &r, nil
	}
	if !opts.LastRegion {
		return nil, nil
	}
	r, err := lastregion.Read(lastRegionPath(opts))
	if err != nil {
		return nil, fmt.Errorf("read last region: %w", err)
	}
	return &r, nil
}

func lastRegionPath(opts Options) string {
	if opts.LastRegionPath != "" {
		return opts.LastRegionPath
	}
	return lastregion.Path()
}

func runHeadless(ctx context.Context, opts Options, img *image.RGBA, region geometry.Rect) (eventloop.Outcome, error) {
	cropped, err := screenshot.Crop(region, img)
	if err != nil {
		return eventloop.Outcome{}, err
	}
	out := eventloop.Outcome{Region: &region}
	switch opts.AcceptOnSelect {
	case messages.AcceptCopy:
		if opts.Clipboard == nil {
			return out, errors.New("clipboard is not available")
		}
		if err := opts.Clipboard.WriteImage(cropped); err != nil {
			return out, fmt.Errorf("copy image: %w", err)
		}
		out.Copied = true
	case messages.AcceptSave:
		out.Saved = cropped
	case messages.AcceptUpload:
		if opts.Uploader == nil {
			return out, errors.New("no upload service configured")
		}
		info, err := opts.Uploader.UploadImage(ctx, cropped)
		if err != nil {
			return out, fmt.Errorf("upload image: %w", err)
		}
		out.Uploaded = &info
	}
	return out, nil
}

func runInteractive(ctx context.Context, opts Options, img *image.RGBA, region *geometry.Rect) (eventloop.Outcome, error) {
	if opts.OpenWindow == nil {
		return eventloop.Outcome{}, errors.New("no display available to select a region")
	}
	a, err := app.New(app.Options{
		Image:          img,
		KeyMap:         opts.KeyMap,
		AcceptOnSelect: opts.AcceptOnSelect,
		InitialRegion:  region,
		Debug:          opts.Debug,
	})
	if err != nil {
		return eventloop.Outcome{}, err
	}

	var loop *eventloop.Loop
	win, err := opts.OpenWindow(img, func(ev app.Event) bool { return loop.Post(ev) })
	if err != nil {
		return eventloop.Outcome{}, fmt.Errorf("open overlay: %w", err)
	}
	loop = eventloop.New(eventloop.Options{
		App:       a,
		View:      win,
		Clipboard: opts.Clipboard,
		Uploader:  opts.Uploader,
	})
	win.Show()
	defer win.Close()
	return loop.Run(ctx)
}

func finish(opts Options, out eventloop.Outcome) (Result, error) {
	if out.Region == nil {
		return Result{}, ErrNoSelection
	}
	res := Result{Region: *out.Region, Copied: out.Copied, Uploaded: out.Uploaded}
	if err := lastregion.Write(lastRegionPath(opts), res.Region); err != nil {
		logutil.Warnf("session: could not remember the region: %v", err)
	}

	if out.Saved != nil {
		path, err := savePath(opts)
		if err != nil {
			return res, err
		}
		if err := screenshot.WritePNG(path, out.Saved); err != nil {
			return res, fmt.Errorf("save screenshot: %w", err)
		}
		logutil.Infof("session: saved %s", path)
		res.SavedPath = path
	}
	if !res.Copied && res.SavedPath == "" && res.Uploaded == nil {
		return res, ErrNoSelection
	}
	return res, nil
}

func savePath(opts Options) (string, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	name := fmt.Sprintf("regionshot-%s.png", now().Format("2006-01-02_15-04-05"))

	p := opts.SavePath
	switch fi, err := os.Stat(p); {
	case p == "":
		dir := xdg.UserDirs.Pictures
		if dir == "" {
			dir = xdg.Home
		}
		p = filepath.Join(dir, name)
	case err == nil && fi.IsDir():
		return filepath.Join(p, name), nil
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("create save directory: %w", err)
	}
	return p, nil
}
