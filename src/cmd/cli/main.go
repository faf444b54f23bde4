package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"regionshot/src/geometry"
	"regionshot/src/screenshot"
)

const (
	maxFileSizeMB = 256
	maxFileSize   = maxFileSizeMB * 1024 * 1024
)

type cliOptions struct {
	filePath   string
	region     string
	outPath    string
	jsonOutput bool
	verbose    bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return runWithArgs(normalizeLegacyArgs(os.Args), os.Stdin, os.Stdout)
}

func runWithArgs(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		args = []string{"regionshot-crop"}
	}

	opts := &cliOptions{}
	cmd := newRootCmd(opts, stdin, stdout)
	cmd.SetArgs(args[1:])
	return cmd.Execute()
}

func newRootCmd(opts *cliOptions, stdin io.Reader, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "regionshot-crop",
		Short:         "Crop a region out of an image without opening a window",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithOptions(*opts, stdin, stdout)
		},
	}

	cmd.Flags().StringVar(&opts.filePath, "file", "", "Path to the image (use '-' for stdin)")
	cmd.Flags().StringVar(&opts.region, "region", "", "Region to crop, as WxH+X+Y")
	cmd.Flags().StringVar(&opts.outPath, "out", "", "Write the PNG here instead of stdout")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print a JSON summary (requires --out)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output to stderr")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("region")

	return cmd
}

func runWithOptions(opts cliOptions, stdin io.Reader, stdout io.Writer) error {
	// Configure logging before anything else.
	if !opts.verbose {
		log.SetOutput(io.Discard)
	} else {
		log.SetOutput(os.Stderr)
	}

	region, err := geometry.ParseRect(opts.region)
	if err != nil {
		return fmt.Errorf("invalid --region: %w", err)
	}
	if opts.jsonOutput && (opts.outPath == "" || opts.outPath == "-") {
		return fmt.Errorf("--json needs --out, stdout carries the summary")
	}

	data, err := readInput(opts.filePath, stdin)
	if err != nil {
		return err
	}
	log.Printf("read %d bytes", len(data))

	start := time.Now()
	img, err := screenshot.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	cropped, err := screenshot.Crop(region, img)
	if err != nil {
		return err
	}
	out, err := screenshot.EncodePNG(cropped)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	log.Printf("cropped %s in %v", region, elapsed)

	if opts.outPath == "" || opts.outPath == "-" {
		_, err := stdout.Write(out)
		return err
	}
	if err := os.WriteFile(opts.outPath, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.outPath, err)
	}
	if !opts.jsonOutput {
		return nil
	}
	b := cropped.Bounds()
	return outputResult(stdout, CropResult{
		Source:   sourceName(opts.filePath),
		Region:   region.String(),
		Output:   opts.outPath,
		Width:    b.Dx(),
		Height:   b.Dy(),
		Bytes:    len(out),
		Duration: elapsed.Seconds(),
	})
}

func readInput(filePath string, stdin io.Reader) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if filePath == "-" {
		data, err = io.ReadAll(io.LimitReader(stdin, maxFileSize+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
		}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("input file is empty")
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("input file exceeds maximum size of %d MB", maxFileSizeMB)
	}
	return data, nil
}

func sourceName(filePath string) string {
	if filePath == "-" {
		return "stdin"
	}
	return filePath
}

func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}

	normalized := make([]string, len(args))
	copy(normalized, args)

	for i := 1; i < len(normalized); i++ {
		arg := normalized[i]
		for _, name := range []string{"file", "region", "out", "json", "verbose"} {
			switch {
			case arg == "-"+name:
				normalized[i] = "--" + name
			case strings.HasPrefix(arg, "-"+name+"="):
				normalized[i] = "-" + arg
			}
		}
	}

	return normalized
}

type CropResult struct {
	Source   string  `json:"source"`
	Region   string  `json:"region"`
	Output   string  `json:"output"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Bytes    int     `json:"bytes"`
	Duration float64 `json:"duration_seconds"`
}

func outputResult(w io.Writer, result CropResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}
