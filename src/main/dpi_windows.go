//go:build windows

package main

import (
	"syscall"

	"regionshot/src/logutil"
)

// enableDPIAwareness sets per-monitor DPI awareness so captures are taken in
// physical pixels.
func enableDPIAwareness() {
	shcore := syscall.NewLazyDLL("Shcore.dll")
	setProcessDpiAwareness := shcore.NewProc("SetProcessDpiAwareness")
	const processPerMonitorDPIAware = 2
	if err := setProcessDpiAwareness.Find(); err == nil {
		ret, _, _ := setProcessDpiAwareness.Call(uintptr(processPerMonitorDPIAware))
		if ret == 0 {
			logutil.Debugf("DPI: set per-monitor DPI awareness")
		} else {
			logutil.Warnf("DPI: failed to set per-monitor DPI awareness, error code: %d", ret)
		}
		return
	}

	logutil.Debugf("DPI: Shcore.SetProcessDpiAwareness not available, trying fallback")
	user32 := syscall.NewLazyDLL("user32.dll")
	setProcessDPIAware := user32.NewProc("SetProcessDPIAware")
	if err := setProcessDPIAware.Find(); err != nil {
		logutil.Warnf("DPI: SetProcessDPIAware not available, no DPI awareness set")
		return
	}
	if ret, _, _ := setProcessDPIAware.Call(); ret == 0 {
		logutil.Warnf("DPI: failed to set system DPI awareness")
	}
}
