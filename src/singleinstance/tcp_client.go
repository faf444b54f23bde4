package singleinstance

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"time"
)

type tcpClient struct {
	pingTimeout time.Duration
}

func newTcpClient() Client { return &tcpClient{pingTimeout: probeTimeout} }

func (c *tcpClient) TryCapture(ctx context.Context) (bool, string, error) {
	addr, ok := findResident(ctx, c.pingTimeout)
	if !ok {
		return false, "", nil
	}
	conn, err := dial(ctx, addr, c.pingTimeout)
	if err != nil {
		// The daemon answered the probe a moment ago; treat a vanished one
		// as absent so the caller captures locally.
		return false, "", nil
	}
	text, err := c.request(ctx, conn)
	return true, text, err
}

// request sends the capture request and waits for the user to finish. The
// wait has no deadline; cancelling ctx abandons it.
func (c *tcpClient) request(ctx context.Context, conn net.Conn) (string, error) {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	if err := sendLine(conn, captureRequest); err != nil {
		return "", err
	}
	br := bufio.NewReader(conn)
	status, err := br.ReadString('\n')
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	body, _ := io.ReadAll(br)
	switch status {
	case successStatus:
		return string(body), nil
	case errorStatus:
		return "", errors.New(string(body))
	default:
		return "", errors.New("singleinstance: unexpected response " + strconv.Quote(status))
	}
}
