package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"regionshot/src/clipboard"
	"regionshot/src/hotkey"
	"regionshot/src/logutil"
	"regionshot/src/notification"
	"regionshot/src/runtimeinit"
	"regionshot/src/session"
	"regionshot/src/singleinstance"
	"regionshot/src/tray"
)

// errBusy is returned to a delegating client while a capture is open.
var errBusy = errors.New("a capture is already in progress")

func newDaemonCmd(opts *mainOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Stay resident in the system tray and capture on a global hotkey",
		Long: "The daemon keeps regionshot loaded, captures when the hotkey is pressed, and takes " +
			"over captures started by running regionshot without flags.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context(), opts)
		},
	}
}

// daemon runs one capture session at a time.
type daemon struct {
	ctx     context.Context
	opts    *mainOptions
	rt      *runtimeinit.Runtime
	fa      fyne.App
	running atomic.Bool
	// run is session.Execute outside of tests.
	run func(ctx context.Context, opts session.Options) (session.Result, error)
}

func runDaemon(ctx context.Context, opts *mainOptions) error {
	rt, err := opts.bootstrap(true)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := singleinstance.NewServer()
	if err := srv.Start(ctx); err != nil {
		start, _ := singleinstance.PortRange()
		return fmt.Errorf("another daemon is already running on port %d: %w", start, err)
	}
	defer srv.Close()

	fa := fyneapp.NewWithID(appID)
	notification.Init(fa)
	d := &daemon{ctx: ctx, opts: opts, rt: rt, fa: fa, run: session.Execute}

	hk := rt.Config.Hotkey
	tray.Setup(fa, tray.Config{
		Title:     "regionshot",
		Hotkey:    hk,
		OnCapture: d.capture,
		OnCopyConfigPath: func() {
			if err := clipboard.WriteText(opts.configPath()); err != nil {
				logutil.Warnf("daemon: copy config path: %v", err)
			}
		},
	})
	if err := hotkey.Listen(ctx, hk, d.capture); err != nil {
		notification.ShowBlockingError("Hotkey unavailable", fmt.Sprintf("Could not listen for %s: %v", hk, err))
	}
	go d.serve(ctx, srv)

	go func() {
		<-ctx.Done()
		fyne.Do(fa.Quit)
	}()
	logutil.Infof("daemon: running, press %s to capture", hk)
	fa.Run()
	return nil
}

// capture starts a session in the background unless one is already open and
// reports the result as a notification.
func (d *daemon) capture() {
	if !d.running.CompareAndSwap(false, true) {
		logutil.Infof("daemon: capture already in progress")
		return
	}
	go func() {
		defer d.running.Store(false)
		notifyResult(d.runSession())
	}()
}

// serve answers captures delegated by other invocations.
func (d *daemon) serve(ctx context.Context, srv singleinstance.Server) {
	for {
		conn, err := srv.Next(ctx)
		if err != nil {
			return
		}
		go d.answer(conn)
	}
}

func (d *daemon) answer(conn singleinstance.Conn) {
	defer conn.Close()
	if !d.running.CompareAndSwap(false, true) {
		_ = conn.RespondError(errBusy.Error())
		return
	}
	defer d.running.Store(false)

	res, err := d.runSession()
	var out strings.Builder
	if err := report(&out, res, err); err != nil {
		_ = conn.RespondError(err.Error())
		return
	}
	_ = conn.RespondSuccess(out.String())
}

func (d *daemon) runSession() (session.Result, error) {
	opts := d.opts.sessionOptions(d.rt)
	if d.fa != nil {
		opts.OpenWindow = overlayOpener(d.fa, d.rt.Config)
	}
	return d.run(d.ctx, opts)
}

func notifyResult(res session.Result, err error) {
	switch {
	case errors.Is(err, session.ErrNoSelection), errors.Is(err, context.Canceled):
		return
	case err != nil:
		logutil.Errorf("daemon: capture failed: %v", err)
		notification.Send("Capture failed", err.Error())
		return
	}
	if res.Copied {
		notification.Copied(res.Region)
	}
	if res.SavedPath != "" {
		notification.Saved(res.SavedPath)
	}
	if res.Uploaded != nil {
		notification.Uploaded(*res.Uploaded)
	}
}
