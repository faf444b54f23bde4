package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regionshot/src/messages"
)

func TestSubmitRunsJob(t *testing.T) {
	p := New(1)
	defer p.Close()

	done := make(chan messages.Message, 1)
	ok := p.Submit(context.Background(), func(context.Context) messages.Message {
		return messages.ImageUploaded{URL: "https://0x0.st/a.png"}
	}, func(msg messages.Message) { done <- msg })
	require.True(t, ok)

	select {
	case msg := <-done:
		assert.Equal(t, messages.ImageUploaded{URL: "https://0x0.st/a.png"}, msg)
	case <-time.After(5 * time.Second):
		t.Fatal("job did not finish")
	}
}

func TestSubmitDropsWhenQueueFull(t *testing.T) {
	p := New(1)
	release := make(chan struct{})
	started := make(chan struct{})
	blocking := func(context.Context) messages.Message {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		return messages.CopyFinished{}
	}
	noop := func(messages.Message) {}

	require.True(t, p.Submit(context.Background(), blocking, noop))
	<-started
	require.True(t, p.Submit(context.Background(), blocking, noop), "the single queue slot is free")
	assert.False(t, p.Submit(context.Background(), blocking, noop), "queue is full")

	close(release)
	p.Close()
}

func TestStopDoesNotWait(t *testing.T) {
	p := New(1)
	release := make(chan struct{})
	defer close(release)
	started := make(chan struct{})
	require.True(t, p.Submit(context.Background(), func(context.Context) messages.Message {
		close(started)
		<-release
		return messages.CopyFinished{}
	}, func(messages.Message) {}))
	<-started

	stopped := make(chan struct{})
	go func() {
		p.Stop()
		p.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop waited for the running job")
	}
}

func TestJobDeadline(t *testing.T) {
	p := New(1)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	release := make(chan struct{})
	defer close(release)

	done := make(chan messages.Message, 1)
	p.Submit(ctx, func(context.Context) messages.Message {
		<-release
		return messages.CopyFinished{}
	}, func(msg messages.Message) { done <- msg })

	select {
	case msg := <-done:
		assert.Equal(t, messages.Error{Text: context.DeadlineExceeded.Error()}, msg)
	case <-time.After(5 * time.Second):
		t.Fatal("deadline was not honored")
	}
}
