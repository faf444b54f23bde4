package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"regionshot/src/clipboard"
	"regionshot/src/config"
	"regionshot/src/geometry"
	"regionshot/src/logutil"
	"regionshot/src/messages"
	"regionshot/src/runtimeinit"
	"regionshot/src/session"
	"regionshot/src/singleinstance"
	"regionshot/src/upload"
)

const appID = "dev.regionshot"

var version = "dev"

type mainOptions struct {
	region         rectFlag
	lastRegion     bool
	acceptOnSelect messages.AcceptOnSelect
	delayMillis    uint
	savePath       string
	file           string
	debug          bool

	configFile        string
	dumpDefaultConfig bool
	logLevel          string
	logStdout         bool
	logFile           string
	printLogFilePath  bool
}

// rectFlag parses --region.
type rectFlag struct {
	rect *geometry.Rect
}

func (f *rectFlag) String() string {
	if f.rect == nil {
		return ""
	}
	return f.rect.String()
}

func (f *rectFlag) Set(s string) error {
	r, err := geometry.ParseRect(s)
	if err != nil {
		return err
	}
	f.rect = &r
	return nil
}

func (f *rectFlag) Type() string { return "WxH+X+Y" }

func main() {
	if len(os.Args) > 1 && os.Args[1] == clipboard.HolderArg {
		if err := clipboard.RunHolder(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	// DPI awareness must be set before any window or capture.
	enableDPIAwareness()
	upload.Version = version

	opts := &mainOptions{}
	if err := fang.Execute(context.Background(), newRootCmd(opts), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(opts *mainOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regionshot",
		Short: "Select a region of the screen and copy, save or upload it",
		Long: "regionshot freezes the screen in a full-screen overlay. Select a region with the mouse " +
			"or vim-style keys, then copy it to the clipboard, save it or upload it.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCapture(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().VarP(&opts.region, "region", "r", "Start with this region selected, as WxH+X+Y")
	cmd.Flags().BoolVarP(&opts.lastRegion, "last-region", "l", false, "Start with the previously used region selected")
	cmd.Flags().VarP(&opts.acceptOnSelect, "accept-on-select", "a", "Run copy, save or upload as soon as the first selection is made")
	cmd.Flags().UintVarP(&opts.delayMillis, "delay", "d", 0, "Wait this many milliseconds before taking the screenshot")
	cmd.Flags().StringVarP(&opts.savePath, "save-path", "s", "", "File or directory for saved screenshots")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Use this image instead of a screenshot")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Show the debug overlay")
	cmd.Flags().BoolVar(&opts.dumpDefaultConfig, "dump-default-config", false, "Write the default config file and exit")
	cmd.Flags().BoolVar(&opts.printLogFilePath, "print-log-file-path", false, "Print the log file path and exit")
	cmd.MarkFlagsMutuallyExclusive("region", "last-region")

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config-file", "C", "", "Path to the config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: error, warn, info or debug")
	cmd.PersistentFlags().BoolVar(&opts.logStdout, "log-stdout", false, "Log to standard output instead of the log file")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Path to the log file")

	cmd.AddCommand(newDaemonCmd(opts), newKeysCmd(opts), newConfigCmd(opts))
	return cmd
}

func (o *mainOptions) loadOptions() config.LoadOptions {
	return config.LoadOptions{Path: o.configFile}
}

func (o *mainOptions) configPath() string {
	if o.configFile != "" {
		return o.configFile
	}
	return config.DefaultPath()
}

// logFilePath picks --log-file, then the config file and REGIONSHOT_LOG_FILE,
// then the state directory.
func (o *mainOptions) logFilePath(cfg *config.Config) string {
	if o.logFile != "" {
		return o.logFile
	}
	if cfg != nil && cfg.LogFile != "" {
		return cfg.LogFile
	}
	return filepath.Join(xdg.StateHome, config.AppName, logutil.DefaultFileName)
}

func (o *mainOptions) bootstrap(showErrors bool) (*runtimeinit.Runtime, error) {
	level, err := logutil.ParseLevel(o.logLevel)
	if err != nil {
		return nil, err
	}
	return runtimeinit.Bootstrap(runtimeinit.Options{
		LoadOptions: o.loadOptions(),
		SetupLogging: func(cfg *config.Config) {
			logutil.Setup(logutil.Options{Path: o.logFilePath(cfg), Stdout: o.logStdout, Level: level})
		},
		InitClipboard:     true,
		ShowBlockingError: showErrors,
	})
}

func (o *mainOptions) sessionOptions(rt *runtimeinit.Runtime) session.Options {
	accept := o.acceptOnSelect
	if accept == messages.AcceptNone {
		accept = rt.Config.AcceptOnSelect()
	}
	opts := session.Options{
		Delay:          time.Duration(o.delayMillis) * time.Millisecond,
		File:           o.file,
		Region:         o.region.rect,
		LastRegion:     o.lastRegion,
		AcceptOnSelect: accept,
		KeyMap:         rt.KeyMap,
		Debug:          o.debug,
		SavePath:       o.savePath,
		Uploader:       rt.Uploader,
	}
	if rt.ClipboardReady {
		opts.Clipboard = systemClipboard{}
	}
	return opts
}

// delegatable reports whether the invocation is a plain capture that a running
// daemon can take over.
func (o *mainOptions) delegatable() bool {
	return o.region.rect == nil && !o.lastRegion && o.acceptOnSelect == messages.AcceptNone &&
		o.delayMillis == 0 && o.file == "" && o.savePath == "" && !o.debug
}

func runCapture(ctx context.Context, opts *mainOptions, out io.Writer) error {
	if opts.printLogFilePath {
		cfg, err := config.LoadWithOptions(opts.loadOptions())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, opts.logFilePath(cfg))
		return nil
	}
	if opts.dumpDefaultConfig {
		path := opts.configPath()
		if err := config.DumpDefault(path); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote the default config to %s\n", path)
		return nil
	}

	rt, err := opts.bootstrap(false)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if opts.delegatable() {
		delegated, text, err := singleinstance.NewClient().TryCapture(ctx)
		if delegated {
			logutil.Infof("main: capture delegated to the daemon")
			fmt.Fprint(out, text)
			return err
		}
	}
	// we exit right after copying, so a background holder keeps the content
	clipboard.Detach(runtime.GOOS == "linux")

	sessOpts := opts.sessionOptions(rt)
	if (sessOpts.Region != nil || sessOpts.LastRegion) && sessOpts.AcceptOnSelect != messages.AcceptNone {
		res, err := session.Execute(ctx, sessOpts)
		return report(out, res, err)
	}

	type sessionResult struct {
		res session.Result
		err error
	}
	fa := fyneapp.NewWithID(appID)
	sessOpts.OpenWindow = overlayOpener(fa, rt.Config)
	done := make(chan sessionResult, 1)
	go func() {
		res, err := session.Execute(ctx, sessOpts)
		done <- sessionResult{res, err}
		fyne.Do(fa.Quit)
	}()
	fa.Run()
	r := <-done
	return report(out, r.res, r.err)
}

// report prints where the screenshot went.
func report(out io.Writer, res session.Result, err error) error {
	if errors.Is(err, session.ErrNoSelection) {
		logutil.Infof("main: exited without a selection")
		return nil
	}
	if err != nil {
		return err
	}
	if res.Copied {
		logutil.Infof("main: copied %s", res.Region)
	}
	if res.SavedPath != "" {
		fmt.Fprintln(out, res.SavedPath)
	}
	if res.Uploaded != nil {
		fmt.Fprintln(out, res.Uploaded.URL)
	}
	return nil
}

type systemClipboard struct{}

func (systemClipboard) WriteImage(img image.Image) error { return clipboard.WriteImage(img) }
func (systemClipboard) WriteText(text string) error      { return clipboard.WriteText(text) }
