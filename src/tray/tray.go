// Package tray puts the daemon in the system tray.
package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"regionshot/src/logutil"
)

type Config struct {
	Title  string
	Hotkey string
	// OnCapture starts a capture. It is called on the fyne thread.
	OnCapture func()
	// OnCopyConfigPath copies the config file path. Optional.
	OnCopyConfigPath func()
}

// Menu builds the tray menu. fyne appends its own Quit item.
func Menu(cfg Config) *fyne.Menu {
	capture := "Capture"
	if cfg.Hotkey != "" {
		capture = fmt.Sprintf("Capture (%s)", cfg.Hotkey)
	}
	items := []*fyne.MenuItem{fyne.NewMenuItem(capture, cfg.OnCapture)}
	if cfg.OnCopyConfigPath != nil {
		items = append(items, fyne.NewMenuItemSeparator(), fyne.NewMenuItem("Copy config path", cfg.OnCopyConfigPath))
	}
	return fyne.NewMenu(cfg.Title, items...)
}

// Setup installs the icon and menu. It reports false when the platform has no
// system tray.
func Setup(a fyne.App, cfg Config) bool {
	desk, ok := a.(desktop.App)
	if !ok {
		logutil.Warnf("tray: no system tray on this platform")
		return false
	}
	a.SetIcon(Icon)
	desk.SetSystemTrayIcon(Icon)
	desk.SetSystemTrayMenu(Menu(cfg))
	return true
}
