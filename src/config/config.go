// Package config loads user settings from the TOML config file, an optional
// .env file and REGIONSHOT_* environment variables, in increasing priority.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"regionshot/src/keymap"
	"regionshot/src/messages"
	"regionshot/src/upload"
)

const (
	AppName = "regionshot"

	// EnvFileVar points at a .env file when none sits next to the executable.
	EnvFileVar   = "REGIONSHOT_ENV"
	HotkeyVar    = "REGIONSHOT_HOTKEY"
	LogFileVar   = "REGIONSHOT_LOG_FILE"
	UploadURLVar = "REGIONSHOT_UPLOAD_URL"
	InstantVar   = "REGIONSHOT_INSTANT"

	DefaultHotkey = "Ctrl+Alt+S"
)

// ErrInvalidKey wraps every error about a [[keys]] entry.
var ErrInvalidKey = errors.New("invalid key binding")

// LoadOptions override where configuration is read from.
type LoadOptions struct {
	// Path of the TOML file. Empty means DefaultPath().
	Path string
}

// KeyEntry is one [[keys]] table of the config file.
type KeyEntry struct {
	Action string   `toml:"action"`
	Key    string   `toml:"key"`
	Mod    string   `toml:"mod,omitempty"`
	Args   []string `toml:"args,omitempty"`
}

type Config struct {
	// Instant copies the first selection as soon as the mouse is released.
	Instant                    bool       `toml:"instant"`
	DefaultImageUploadProvider string     `toml:"default-image-upload-provider"`
	UploadURL                  string     `toml:"upload-url,omitempty"`
	SizeIndicator              bool       `toml:"size-indicator"`
	SelectionIcons             bool       `toml:"selection-icons"`
	Hotkey                     string     `toml:"hotkey"`
	LogFile                    string     `toml:"log-file,omitempty"`
	Keys                       []KeyEntry `toml:"keys"`

	// Path is the file the config was read from, empty when it did not exist.
	Path string `toml:"-"`
}

// Default returns the built-in configuration with the default key bindings
// spelled out, so a dumped file documents every binding.
func Default() *Config {
	return &Config{
		DefaultImageUploadProvider: string(upload.TheNullPointer),
		SizeIndicator:              true,
		SelectionIcons:             true,
		Hotkey:                     DefaultHotkey,
		Keys:                       Entries(keymap.Default()),
	}
}

// DefaultPath is <xdg config>/regionshot/config.toml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	// .env values land in the process environment and are then read below like
	// any other variable. Existing variables win over the file.
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	path := opts.Path
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	cfg.Keys = nil
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg.Path = path
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if _, err := upload.ParseProvider(cfg.DefaultImageUploadProvider); err != nil {
		return nil, fmt.Errorf("default-image-upload-provider: %w", err)
	}
	if _, err := cfg.KeyMap(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(cfg)
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		return errors.New(strict.String())
	}
	return err
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(HotkeyVar)); v != "" {
		cfg.Hotkey = v
	}
	if v := strings.TrimSpace(os.Getenv(LogFileVar)); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv(UploadURLVar)); v != "" {
		cfg.UploadURL = v
	}
	if v := strings.TrimSpace(os.Getenv(InstantVar)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", InstantVar, err)
		}
		cfg.Instant = b
	}
	return nil
}

func resolveEnvPath() string {
	if execPath, err := os.Executable(); err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}
	if alt := os.Getenv(EnvFileVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}
	return ""
}

// KeyMap returns the default bindings with the [[keys]] entries applied on top.
func (c *Config) KeyMap() (*keymap.KeyMap, error) {
	km := keymap.Default()
	for i, e := range c.Keys {
		b, err := e.Binding()
		if err != nil {
			return nil, fmt.Errorf("keys[%d] (%s = %q): %w", i, e.Action, e.Key, err)
		}
		km.Bind(b)
	}
	return km, nil
}

// AcceptOnSelect is the action implied by the instant option.
func (c *Config) AcceptOnSelect() messages.AcceptOnSelect {
	if c.Instant {
		return messages.AcceptCopy
	}
	return messages.AcceptNone
}

// UploadOptions configures the upload service.
func (c *Config) UploadOptions() upload.Options {
	return upload.Options{Provider: upload.Provider(c.DefaultImageUploadProvider), URL: c.UploadURL}
}

// Binding parses the entry.
func (e KeyEntry) Binding() (keymap.Binding, error) {
	seq, err := keymap.ParseSequence(e.Key)
	if err != nil {
		return keymap.Binding{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	mods, err := keymap.ParseModifiers(e.Mod)
	if err != nil {
		return keymap.Binding{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	action, err := messages.ParseAction(e.Action, e.Args)
	if err != nil {
		return keymap.Binding{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	return keymap.Binding{Sequence: seq, Modifiers: mods, Action: action}, nil
}

// Entries converts km back into config file entries.
func Entries(km *keymap.KeyMap) []KeyEntry {
	bindings := km.Bindings()
	entries := make([]KeyEntry, 0, len(bindings))
	for _, b := range bindings {
		entries = append(entries, KeyEntry{
			Action: b.Action.Type(),
			Key:    b.Sequence.String(),
			Mod:    b.Modifiers.String(),
			Args:   messages.Args(b.Action),
		})
	}
	return entries
}

// Marshal renders c as a commented TOML document.
func (c *Config) Marshal() ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("# regionshot configuration\n")
	sb.WriteString("#\n")
	sb.WriteString("# [[keys]] entries are applied on top of the default bindings.\n")
	sb.WriteString("# key is a sequence of 1 or 2 keys; named keys are written as <name>, e.g. <space>w.\n")
	sb.WriteString("# mod is a \"+\"-joined list of ctrl, alt, shift and super.\n\n")

	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	sb.Write(data)
	return []byte(sb.String()), nil
}

// DumpDefault writes the default configuration to path, creating directories.
func DumpDefault(path string) error {
	data, err := Default().Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
