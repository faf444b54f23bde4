// Package notification shows desktop notifications about finished captures.
package notification

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"

	"regionshot/src/geometry"
	"regionshot/src/logutil"
	"regionshot/src/messages"
)

const maxBodyLen = 200

var (
	mu      sync.Mutex
	current fyne.App
)

// Init sets the app that delivers notifications. Without it, notifications
// are only logged.
func Init(a fyne.App) {
	mu.Lock()
	current = a
	mu.Unlock()
}

// Send shows a notification with body truncated to 200 characters.
func Send(title, body string) {
	body = truncate(body)
	logutil.Infof("notification: %s: %s", title, body)
	mu.Lock()
	a := current
	mu.Unlock()
	if a == nil {
		return
	}
	a.SendNotification(fyne.NewNotification(title, body))
}

// Copied reports an image copied to the clipboard.
func Copied(r geometry.Rect) { Send("Screenshot copied", copiedText(r)) }

// Saved reports an image written to path.
func Saved(path string) { Send("Screenshot saved", path) }

// Uploaded reports a finished upload.
func Uploaded(info messages.ImageUploaded) { Send("Screenshot uploaded", info.URL) }

// ShowBlockingError reports an error the user has to see even when logging
// is off.
func ShowBlockingError(title, message string) {
	logutil.Errorf("%s: %s", title, message)
	Send(title, message)
}

func copiedText(r geometry.Rect) string {
	return fmt.Sprintf("%dx%d region at %d,%d", int(r.Width), int(r.Height), int(r.X), int(r.Y))
}

func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxBodyLen {
		return text
	}
	return string(runes[:maxBodyLen]) + "..."
}
