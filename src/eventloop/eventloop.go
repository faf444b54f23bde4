// Package eventloop drives one overlay session: it is the only goroutine that
// touches the app state, and it runs the effects the app asks for.
package eventloop

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"regionshot/src/app"
	"regionshot/src/geometry"
	"regionshot/src/logutil"
	"regionshot/src/messages"
	"regionshot/src/worker"
)

// ErrBusy is reported when an upload cannot be queued.
var ErrBusy = errors.New("busy, please retry")

// View renders the state after every update. Render is called from the loop
// goroutine; implementations hop to their UI thread themselves.
type View interface {
	Render(a *app.App)
}

// Clipboard receives copied images and links.
type Clipboard interface {
	WriteImage(img image.Image) error
	WriteText(text string) error
}

// Uploader sends an image to the upload service.
type Uploader interface {
	UploadImage(ctx context.Context, img *image.RGBA) (messages.ImageUploaded, error)
}

// Outcome is what a finished session produced.
type Outcome struct {
	// Saved is the image chosen with save-screenshot, set at most once.
	Saved *image.RGBA
	// Region is the selection of the last copied, saved or uploaded image.
	Region *geometry.Rect
	// Uploaded is the last finished upload.
	Uploaded *messages.ImageUploaded
	// Copied reports whether an image reached the clipboard.
	Copied bool
}

type Options struct {
	App       *app.App
	View      View
	Clipboard Clipboard
	Uploader  Uploader
	// Pool runs uploads. New creates a single worker pool when nil and stops it
	// when Run returns.
	Pool *worker.Pool
	// TickInterval drives error expiry. Defaults to 250ms.
	TickInterval time.Duration
	// UploadDeadline bounds one upload. Defaults to 60s.
	UploadDeadline time.Duration
}

// Loop is the single-threaded coordinator of a session.
type Loop struct {
	app       *app.App
	view      View
	clipboard Clipboard
	uploader  Uploader
	pool      *worker.Pool
	ownPool   bool
	tick      time.Duration
	deadline  time.Duration

	events  chan app.Event
	results chan messages.Message
	done    chan struct{}

	outcome Outcome
}

// New creates a loop for opts.App.
func New(opts Options) *Loop {
	l := &Loop{
		app:       opts.App,
		view:      opts.View,
		clipboard: opts.Clipboard,
		uploader:  opts.Uploader,
		pool:      opts.Pool,
		tick:      opts.TickInterval,
		deadline:  opts.UploadDeadline,
		events:    make(chan app.Event, 64),
		results:   make(chan messages.Message, 1),
		done:      make(chan struct{}),
	}
	if l.pool == nil {
		l.pool = worker.New(1)
		l.ownPool = true
	}
	if l.tick <= 0 {
		l.tick = 250 * time.Millisecond
	}
	if l.deadline <= 0 {
		l.deadline = 60 * time.Second
	}
	return l
}

// Post hands an input event to the loop. It is safe to call from any goroutine
// and returns false once the loop has exited.
func (l *Loop) Post(ev app.Event) bool {
	select {
	case l.events <- ev:
		return true
	case <-l.done:
		return false
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Run processes events until the app asks to exit or ctx is cancelled. An
// upload still in flight at that point is abandoned.
func (l *Loop) Run(ctx context.Context) (Outcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer close(l.done)
	if l.ownPool {
		defer l.pool.Stop()
	}

	ticker := time.NewTicker(l.tick)
	defer ticker.Stop()

	l.render()
	for {
		var exit bool
		select {
		case <-ctx.Done():
			return l.outcome, ctx.Err()
		case ev := <-l.events:
			exit = l.apply(ctx, ev)
		case msg := <-l.results:
			exit = l.apply(ctx, app.Result{Message: msg})
		case now := <-ticker.C:
			exit = l.apply(ctx, app.Tick{Now: now})
		}
		if exit {
			return l.outcome, nil
		}
	}
}

// apply feeds ev to the app and runs the resulting effects. Effects can produce
// results that are fed back immediately, so this drains a queue.
func (l *Loop) apply(ctx context.Context, ev app.Event) (exit bool) {
	queue := []app.Event{ev}
	for len(queue) > 0 {
		ev, queue = queue[0], queue[1:]
		if r, ok := ev.(app.Result); ok {
			if info, ok := r.Message.(messages.ImageUploaded); ok {
				l.outcome.Uploaded = &info
			}
		}
		for _, eff := range l.app.Update(ev) {
			if _, ok := eff.(app.Exit); ok {
				exit = true
				continue
			}
			if msg := l.execute(ctx, eff); msg != nil {
				queue = append(queue, app.Result{Message: msg})
			}
		}
	}
	l.render()
	return exit
}

// execute runs one effect. Synchronous effects return their result message.
func (l *Loop) execute(ctx context.Context, eff app.Effect) messages.Message {
	switch eff := eff.(type) {
	case app.Copied:
		l.setRegion(eff.Region)
		err := l.writeImage(eff.Image)
		if err == nil {
			l.outcome.Copied = true
		}
		return messages.CopyFinished{Err: err}
	case app.Saved:
		l.setRegion(eff.Region)
		if l.outcome.Saved == nil {
			l.outcome.Saved = eff.Image
		} else {
			logutil.Warnf("eventloop: saved image already set, ignoring")
		}
	case app.UploadRequested:
		l.setRegion(eff.Region)
		return l.startUpload(ctx, eff.Image)
	case app.CopyText:
		if l.clipboard == nil {
			return messages.Error{Text: "Clipboard is not available"}
		}
		if err := l.clipboard.WriteText(eff.Text); err != nil {
			return messages.Error{Text: fmt.Sprintf("Could not copy the link: %v", err)}
		}
	default:
		logutil.Warnf("eventloop: unhandled effect %T", eff)
	}
	return nil
}

func (l *Loop) writeImage(img *image.RGBA) error {
	if l.clipboard == nil {
		return errors.New("clipboard is not available")
	}
	return l.clipboard.WriteImage(img)
}

func (l *Loop) startUpload(ctx context.Context, img *image.RGBA) messages.Message {
	if l.uploader == nil {
		return messages.UploadFailed{Err: errors.New("no upload service configured")}
	}
	jobCtx, cancel := context.WithTimeout(ctx, l.deadline)
	job := func(ctx context.Context) messages.Message {
		info, err := l.uploader.UploadImage(ctx, img)
		if err != nil {
			return messages.UploadFailed{Err: err}
		}
		return info
	}
	submitted := l.pool.Submit(jobCtx, job, func(msg messages.Message) {
		cancel()
		if e, ok := msg.(messages.Error); ok {
			msg = messages.UploadFailed{Err: errors.New(e.Text)}
		}
		select {
		case l.results <- msg:
		case <-l.done:
		}
	})
	if !submitted {
		cancel()
		return messages.UploadFailed{Err: ErrBusy}
	}
	logutil.Infof("eventloop: upload of %dx%d image queued", img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

func (l *Loop) setRegion(r geometry.Rect) {
	l.outcome.Region = &r
}

func (l *Loop) render() {
	if l.view != nil {
		l.view.Render(l.app)
	}
}
