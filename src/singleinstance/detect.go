package singleinstance

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

const probeTimeout = 300 * time.Millisecond

// DetectResidentPort reports the port of the daemon answering PING, if any.
func DetectResidentPort(ctx context.Context) (int, bool) {
	addr, ok := findResident(ctx, probeTimeout)
	if !ok {
		return 0, false
	}
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, false
	}
	port, err := strconv.Atoi(p)
	return port, err == nil
}

// findResident walks the port range and returns the first address whose
// listener speaks the daemon protocol. A port held by an unrelated program
// is skipped.
func findResident(ctx context.Context, timeout time.Duration) (string, bool) {
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 && d < timeout {
			timeout = d
		}
	}
	start, end := getPortRange()
	for port := start; port <= end; port++ {
		if ctx.Err() != nil {
			return "", false
		}
		addr := net.JoinHostPort(residentHost, strconv.Itoa(port))
		if probe(ctx, addr, timeout) {
			return addr, true
		}
	}
	return "", false
}

func probe(ctx context.Context, addr string, timeout time.Duration) bool {
	conn, err := dial(ctx, addr, timeout)
	if err != nil {
		return false
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(timeout))
	if err := sendLine(conn, pingRequest); err != nil {
		return false
	}
	resp, err := bufio.NewReader(conn).ReadString('\n')
	return err == nil && resp == pongResponse
}

func dial(ctx context.Context, addr string, timeout time.Duration) (net.Conn, error) {
	d := net.Dialer{Timeout: timeout}
	return d.DialContext(ctx, "tcp", addr)
}

func sendLine(w io.Writer, line string) error {
	if _, err := fmt.Fprint(w, line); err != nil {
		return fmt.Errorf("singleinstance: write %q: %w", line, err)
	}
	return nil
}
