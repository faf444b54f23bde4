package singleinstance

import (
	"context"
	"strconv"
	"testing"
	"time"
)

// usePorts points the package at a port range unlikely to be in use.
func usePorts(t *testing.T, start int) {
	t.Helper()
	t.Setenv(PortStartVar, strconv.Itoa(start))
	t.Setenv(PortEndVar, strconv.Itoa(start+2))
}

func startServer(t *testing.T, ctx context.Context) Server {
	t.Helper()
	srv := NewServer()
	if err := srv.Start(ctx); err != nil {
		t.Skipf("loopback TCP unavailable in this environment: %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv
}

func TestServerClientRoundTrip(t *testing.T) {
	usePorts(t, 49611)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv := startServer(t, ctx)

	if port, ok := DetectResidentPort(ctx); !ok || port != srv.Port() {
		t.Fatalf("DetectResidentPort = %d, %v; expected %d", port, ok, srv.Port())
	}

	type result struct {
		delegated bool
		text      string
		err       error
	}
	done := make(chan result, 1)
	go func() {
		delegated, text, err := NewClient().TryCapture(ctx)
		done <- result{delegated, text, err}
	}()

	conn, err := srv.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if err := conn.RespondSuccess("/tmp/shot.png\n"); err != nil {
		t.Fatalf("respond: %v", err)
	}
	conn.Close()

	r := <-done
	if r.err != nil || !r.delegated || r.text != "/tmp/shot.png\n" {
		t.Fatalf("TryCapture = %+v", r)
	}
}

func TestServerError(t *testing.T) {
	usePorts(t, 49621)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv := startServer(t, ctx)

	errCh := make(chan error, 1)
	go func() {
		_, _, err := NewClient().TryCapture(ctx)
		errCh <- err
	}()
	conn, err := srv.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	_ = conn.RespondError("capture already in progress")
	conn.Close()

	if err := <-errCh; err == nil || err.Error() != "capture already in progress" {
		t.Fatalf("expected the resident error, got %v", err)
	}
}

func TestSecondServerFails(t *testing.T) {
	usePorts(t, 49631)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	startServer(t, ctx)

	if err := NewServer().Start(ctx); err == nil {
		t.Fatal("expected the second resident to fail")
	}
}

func TestNoResident(t *testing.T) {
	usePorts(t, 49641)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	delegated, _, err := NewClient().TryCapture(ctx)
	if delegated || err != nil {
		t.Fatalf("TryCapture = %v, %v; expected no resident", delegated, err)
	}
}

func TestPortRange(t *testing.T) {
	t.Setenv(PortStartVar, "80")
	t.Setenv(PortEndVar, "70000")
	if start, end := PortRange(); start != 1024 || end != 65535 {
		t.Fatalf("PortRange = %d-%d", start, end)
	}
	t.Setenv(PortStartVar, "50010")
	t.Setenv(PortEndVar, "50000")
	if start, end := PortRange(); start != 50000 || end != 50010 {
		t.Fatalf("PortRange = %d-%d", start, end)
	}
}
