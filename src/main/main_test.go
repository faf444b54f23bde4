package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"regionshot/src/config"
	"regionshot/src/geometry"
	"regionshot/src/keymap"
	"regionshot/src/messages"
	"regionshot/src/runtimeinit"
	"regionshot/src/session"
	"regionshot/src/singleinstance"
)

func TestNewRootCmdParsesFlags(t *testing.T) {
	opts := &mainOptions{}
	cmd := newRootCmd(opts)
	err := cmd.ParseFlags([]string{"--region", "100x50+10+20", "-a", "upload", "--delay", "1500", "--save-path", "/tmp/shots", "--log-level", "debug"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if opts.region.rect == nil || *opts.region.rect != (geometry.Rect{X: 10, Y: 20, Width: 100, Height: 50}) {
		t.Fatalf("Expected region 100x50+10+20, got %v", opts.region.rect)
	}
	if opts.acceptOnSelect != messages.AcceptUpload {
		t.Fatalf("Expected accept-on-select upload, got %q", opts.acceptOnSelect)
	}
	if opts.delayMillis != 1500 || opts.savePath != "/tmp/shots" || opts.logLevel != "debug" {
		t.Fatalf("Unexpected options %+v", opts)
	}
}

func TestRootCmdRejectsBadValues(t *testing.T) {
	for _, args := range [][]string{
		{"--region", "100x50"},
		{"--accept-on-select", "print"},
		{"--delay", "-1"},
	} {
		if err := newRootCmd(&mainOptions{}).ParseFlags(args); err == nil {
			t.Errorf("Expected %v to fail", args)
		}
	}
}

func TestRegionConflictsWithLastRegion(t *testing.T) {
	cmd := newRootCmd(&mainOptions{})
	cmd.SetArgs([]string{"--region", "1x1+0+0", "--last-region"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "last-region") {
		t.Fatalf("Expected a conflict error, got %v", err)
	}
}

func TestDumpDefaultConfigAndPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	var out bytes.Buffer
	cmd := newRootCmd(&mainOptions{})
	cmd.SetArgs([]string{"--config-file", path, "--dump-default-config"})
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), path) {
		t.Fatalf("Expected the path in the output, got %q", out.String())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Config not written: %v", err)
	}

	out.Reset()
	cmd = newRootCmd(&mainOptions{})
	cmd.SetArgs([]string{"config", "path", "--config-file", path})
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if strings.TrimSpace(out.String()) != path {
		t.Fatalf("Expected %q, got %q", path, out.String())
	}
}

func TestLogFilePath(t *testing.T) {
	opts := &mainOptions{}
	if got := opts.logFilePath(&config.Config{LogFile: "/var/log/rs.log"}); got != "/var/log/rs.log" {
		t.Fatalf("Expected the config log file, got %q", got)
	}
	opts.logFile = "/tmp/flag.log"
	if got := opts.logFilePath(&config.Config{LogFile: "/var/log/rs.log"}); got != "/tmp/flag.log" {
		t.Fatalf("Expected the flag to win, got %q", got)
	}
	opts.logFile = ""
	if got := opts.logFilePath(nil); !strings.HasSuffix(got, filepath.Join("regionshot", "regionshot.log")) {
		t.Fatalf("Unexpected default log path %q", got)
	}
}

func TestSessionOptionsUseConfigInstant(t *testing.T) {
	rt := &runtimeinit.Runtime{Config: &config.Config{Instant: true}, KeyMap: keymap.Default()}
	opts := &mainOptions{delayMillis: 250}
	so := opts.sessionOptions(rt)
	if so.AcceptOnSelect != messages.AcceptCopy {
		t.Fatalf("Expected instant to accept with copy, got %q", so.AcceptOnSelect)
	}
	if so.Delay != 250*time.Millisecond {
		t.Fatalf("Expected 250ms delay, got %v", so.Delay)
	}
	if so.Clipboard != nil {
		t.Fatal("Expected no clipboard when it is not ready")
	}

	opts.acceptOnSelect = messages.AcceptSave
	if so := opts.sessionOptions(rt); so.AcceptOnSelect != messages.AcceptSave {
		t.Fatalf("Expected the flag to win, got %q", so.AcceptOnSelect)
	}
}

func TestPrintKeys(t *testing.T) {
	var out bytes.Buffer
	if err := printKeys(&out, keymap.Default(), "save"); err != nil {
		t.Fatalf("printKeys: %v", err)
	}
	if !strings.Contains(out.String(), "ctrl+s") {
		t.Fatalf("Expected ctrl+s in the table:\n%s", out.String())
	}
	if strings.Contains(out.String(), "move") {
		t.Fatalf("Filter did not apply:\n%s", out.String())
	}

	out.Reset()
	if err := printKeys(&out, keymap.Default(), "nothing-matches-this"); err != nil {
		t.Fatalf("printKeys: %v", err)
	}
	if !strings.Contains(out.String(), "No key bindings match") {
		t.Fatalf("Expected the empty message, got %q", out.String())
	}
}

func TestReport(t *testing.T) {
	var out bytes.Buffer
	if err := report(&out, session.Result{}, session.ErrNoSelection); err != nil {
		t.Fatalf("Expected no error for an empty session, got %v", err)
	}
	boom := errors.New("boom")
	if err := report(&out, session.Result{}, boom); !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}
	res := session.Result{SavedPath: "/tmp/a.png", Uploaded: &messages.ImageUploaded{URL: "https://0x0.st/x.png"}}
	if err := report(&out, res, nil); err != nil {
		t.Fatalf("report: %v", err)
	}
	if out.String() != "/tmp/a.png\nhttps://0x0.st/x.png\n" {
		t.Fatalf("Unexpected output %q", out.String())
	}
}

func TestDaemonRunsOneCaptureAtATime(t *testing.T) {
	release := make(chan struct{})
	calls := make(chan struct{}, 4)
	d := &daemon{
		ctx:  context.Background(),
		opts: &mainOptions{},
		rt:   &runtimeinit.Runtime{Config: &config.Config{}, KeyMap: keymap.Default()},
		run: func(ctx context.Context, opts session.Options) (session.Result, error) {
			calls <- struct{}{}
			<-release
			return session.Result{}, session.ErrNoSelection
		},
	}

	d.capture()
	<-calls
	d.capture()
	close(release)

	deadline := time.After(2 * time.Second)
	for d.running.Load() {
		select {
		case <-deadline:
			t.Fatal("capture did not finish")
		case <-time.After(10 * time.Millisecond):
		}
	}
	if len(calls) != 0 {
		t.Fatalf("Expected the second capture to be skipped, got %d extra calls", len(calls))
	}
}

type fakeConn struct {
	success, failure string
	closed           bool
}

func (c *fakeConn) Request() singleinstance.Request  { return singleinstance.Request{} }
func (c *fakeConn) RespondSuccess(text string) error { c.success = text; return nil }
func (c *fakeConn) RespondError(msg string) error    { c.failure = msg; return nil }
func (c *fakeConn) Close() error                     { c.closed = true; return nil }

func TestDaemonAnswersDelegatedCaptures(t *testing.T) {
	d := &daemon{
		ctx:  context.Background(),
		opts: &mainOptions{},
		rt:   &runtimeinit.Runtime{Config: &config.Config{}, KeyMap: keymap.Default()},
		run: func(ctx context.Context, opts session.Options) (session.Result, error) {
			return session.Result{SavedPath: "/tmp/b.png"}, nil
		},
	}

	conn := &fakeConn{}
	d.answer(conn)
	if conn.success != "/tmp/b.png\n" || conn.failure != "" || !conn.closed {
		t.Fatalf("Unexpected response %+v", conn)
	}

	d.running.Store(true)
	conn = &fakeConn{}
	d.answer(conn)
	if conn.failure != errBusy.Error() {
		t.Fatalf("Expected a busy error, got %+v", conn)
	}
}

func TestDelegatable(t *testing.T) {
	if !(&mainOptions{}).delegatable() {
		t.Fatal("Expected a plain invocation to be delegatable")
	}
	if (&mainOptions{delayMillis: 10}).delegatable() || (&mainOptions{lastRegion: true}).delegatable() {
		t.Fatal("Expected capture flags to prevent delegation")
	}
}
