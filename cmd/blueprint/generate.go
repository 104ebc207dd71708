package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/lvillar/blueprint"
	"github.com/lvillar/blueprint/schemafile"
)

const usage = `usage:
  blueprint generate <schema.json> [--data <json|path>] [--output <path|->]
                     [--orientation portrait|landscape] [--format <name|WxH>] [--verbose]
  blueprint formats
`

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 1
	}
	var err error
	switch args[0] {
	case "generate":
		err = generate(args[1:], stdout, stderr)
	case "formats":
		err = listFormats(stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "blueprint: unknown command %q\n%s", args[0], usage)
		return 1
	}
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "blueprint: %v\n", err)
		}
		return 1
	}
	return 0
}

type generateFlags struct {
	data        string
	output      string
	orientation string
	format      string
	verbose     bool
}

func generate(args []string, stdout, stderr io.Writer) error {
	var f generateFlags
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.data, "data", "", "data passed to the schema: inline JSON or a JSON file")
	fs.StringVar(&f.data, "d", "", "shorthand for --data")
	fs.StringVar(&f.output, "output", "./output.pdf", `output file, "-" for stdout`)
	fs.StringVar(&f.output, "o", "./output.pdf", "shorthand for --output")
	fs.StringVar(&f.orientation, "orientation", "portrait", "portrait or landscape")
	fs.StringVar(&f.format, "format", "A4", "A2, A3, A4, A5, letter, card or WIDTHxHEIGHT")
	fs.BoolVar(&f.verbose, "verbose", false, "log diagnostics to stderr")
	fs.BoolVar(&f.verbose, "v", false, "shorthand for --verbose")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("generate takes exactly one schema path, got %d\n%s", len(positional), usage)
	}

	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	blueprint.SetLogger(logger)
	defer blueprint.SetLogger(nil)

	// Inputs are all validated before anything is rendered.
	src, err := schemafile.Load(positional[0])
	if err != nil {
		return err
	}
	data, hasData := src.DefaultData()
	if f.data != "" {
		if data, err = schemafile.ParseData(f.data); err != nil {
			return err
		}
		hasData = true
	}
	orientation, err := blueprint.ParseOrientation(f.orientation)
	if err != nil {
		return err
	}
	format, err := blueprint.ParseFormat(f.format)
	if err != nil {
		return err
	}
	out, err := outputWriter(f.output, stdout)
	if err != nil {
		return err
	}

	opts := []blueprint.Option{blueprint.WithOrientation(orientation)}
	if format.Name != "" {
		opts = append(opts, blueprint.WithFormat(format.Name))
	} else {
		opts = append(opts, blueprint.WithPageSizeCustom(format.Width, format.Height))
	}
	bp, err := blueprint.New(src.Schema(), data, opts...)
	if err != nil {
		return err
	}

	logger.Debug("generating",
		"schema", positional[0],
		"data", hasData,
		"format", f.format,
		"orientation", orientation.String())

	var buf bytes.Buffer
	if err := bp.Render(&buf); err != nil {
		return err
	}

	if out != nil {
		_, err := buf.WriteTo(out)
		return err
	}
	if err := os.WriteFile(f.output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Info("PDF written", "path", f.output, "bytes", buf.Len())
	return nil
}

// outputWriter returns stdout when path is "-", and nil for a file path.
// Writing a PDF to an interactive terminal is refused.
func outputWriter(path string, stdout io.Writer) (io.Writer, error) {
	if path != "-" {
		return nil, nil
	}
	if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, errors.New("refusing to write PDF data to a terminal; redirect stdout or use --output <path>")
	}
	return stdout, nil
}

// parseInterspersed parses flags that may appear before or after the
// positional arguments.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func listFormats(w io.Writer) error {
	for _, f := range blueprint.Formats() {
		if _, err := fmt.Fprintf(w, "%-7s %8.2f x %8.2f\n", f.Name, f.Width, f.Height); err != nil {
			return err
		}
	}
	return nil
}
