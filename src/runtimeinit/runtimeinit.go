package runtimeinit

import (
	"fmt"

	"regionshot/src/clipboard"
	"regionshot/src/config"
	"regionshot/src/keymap"
	"regionshot/src/logutil"
	"regionshot/src/notification"
	"regionshot/src/upload"
)

type Options struct {
	LoadOptions  config.LoadOptions
	SetupLogging func(cfg *config.Config)
	// InitClipboard connects to the system clipboard. A failure is fatal only
	// with ClipboardRequired.
	InitClipboard     bool
	ClipboardRequired bool
	ShowBlockingError bool
}

// Runtime is everything a capture session needs from the environment.
type Runtime struct {
	Config   *config.Config
	KeyMap   *keymap.KeyMap
	Uploader *upload.Service
	// ClipboardReady is false when the clipboard could not be initialized.
	ClipboardReady bool
}

func Bootstrap(opts Options) (*Runtime, error) {
	cfg, err := config.LoadWithOptions(opts.LoadOptions)
	if err != nil {
		if opts.ShowBlockingError {
			notification.ShowBlockingError("Invalid configuration", err.Error())
		}
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if opts.SetupLogging != nil {
		opts.SetupLogging(cfg)
	}
	if cfg.Path != "" {
		logutil.Infof("runtimeinit: loaded config from %s", cfg.Path)
	}

	km, err := cfg.KeyMap()
	if err != nil {
		return nil, fmt.Errorf("failed to build keymap: %w", err)
	}

	uploader, err := upload.New(cfg.UploadOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to configure uploads: %w", err)
	}

	rt := &Runtime{Config: cfg, KeyMap: km, Uploader: uploader}
	if opts.InitClipboard {
		if err := clipboard.Init(); err != nil {
			if opts.ClipboardRequired {
				return nil, fmt.Errorf("failed to initialize clipboard: %w", err)
			}
			logutil.Warnf("runtimeinit: clipboard unavailable: %v", err)
		} else {
			rt.ClipboardReady = true
		}
	}
	return rt, nil
}
