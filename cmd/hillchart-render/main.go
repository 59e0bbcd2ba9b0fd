// Command hillchart-render renders a table file into a hill chart.
package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"strings"

	"git.unix.lgbt/diamondburned/hillchart"
	"git.unix.lgbt/diamondburned/hillchart/internal/config"
	"git.unix.lgbt/diamondburned/hillchart/internal/hilllog"
	"git.unix.lgbt/diamondburned/hillchart/internal/render"
	"git.unix.lgbt/diamondburned/hillchart/tables"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type options struct {
	output     string
	configPath string
	format     string
	inFormat   string
	sheet      string
	width      float64
	height     float64
	selected   []string
	minify     bool
	verbose    bool
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "hillchart-render [input]",
		Short: "Render a CSV, JSON or XLSX table into a hill chart",
		Long: `hillchart-render reads a table with progress and project columns and
writes the hill chart as SVG, or its scene as JSON or CBOR. Without an input
file, the table is read from stdin and --input-format is required.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) > 0 {
				input = args[0]
			}
			return run(cmd, opts, input)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "Output file path (default: stdout)")
	flags.StringVar(&opts.configPath, "config", "", "YAML config path")
	flags.StringVarP(&opts.format, "format", "f", "svg", "Output format: svg, json, cbor")
	flags.StringVar(&opts.inFormat, "input-format", "", "Input format: csv, json, xlsx (default: from extension)")
	flags.StringVar(&opts.sheet, "sheet", "", "XLSX sheet to read (default: first sheet)")
	flags.Float64Var(&opts.width, "width", 0, "Viewport width (default: from config)")
	flags.Float64Var(&opts.height, "height", 0, "Viewport height (default: from config)")
	flags.StringSliceVar(&opts.selected, "select", nil, "Identities of points to highlight")
	flags.BoolVar(&opts.minify, "minify", false, "Minify SVG output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log skipped rows and output size")

	if err := rootCmd.Execute(); err != nil {
		log.Fatalln("error:", err)
	}
}

func run(cmd *cobra.Command, opts options, input string) error {
	cfg, err := config.Load(cmd.Context(), opts.configPath)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	level, err := hilllog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	if opts.verbose {
		level = hilllog.InfoLevel
	}

	logger := hilllog.NewLogger(log.New(os.Stderr, "", 0), level)

	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	if opts.sheet != "" {
		cfg.Sheet = opts.sheet
	}

	if opts.width > 0 {
		cfg.Width = opts.width
	}
	if opts.height > 0 {
		cfg.Height = opts.height
	}

	table, err := readTable(input, opts.inFormat, cfg.TableOptions())
	if err != nil {
		return err
	}

	req := render.Request{
		Table:    table,
		Viewport: cfg.Viewport(),
		Settings: cfg.Settings,
		Identity: tables.RowIdentities(sourceName(input)),
	}

	for _, id := range opts.selected {
		req.Selected = append(req.Selected, hillchart.Identity(strings.TrimSpace(id)))
	}

	renderer := render.Renderer{
		Logger: logger,
		Minify: opts.minify,
	}

	var buf bytes.Buffer

	res, err := renderer.Write(&buf, req, format)
	if err != nil {
		return errors.Wrap(err, "failed to render")
	}

	if err := writeOutput(opts.output, buf.Bytes()); err != nil {
		return err
	}

	logger.Infof("rendered %s points (%s skipped) into %s",
		humanize.Comma(int64(res.Points)), humanize.Comma(int64(len(res.Skipped))),
		humanize.Bytes(uint64(buf.Len())))

	return nil
}

func readTable(input, inFormat string, opts tables.Options) (*hillchart.Table, error) {
	if input == "" || input == "-" {
		if inFormat == "" {
			return nil, errors.New("--input-format is required when reading stdin")
		}
		return tables.Read(os.Stdin, tables.Format(inFormat), opts)
	}

	if inFormat == "" {
		return tables.ReadFile(input, opts)
	}

	f, err := os.Open(input)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open input")
	}
	defer f.Close()

	return tables.Read(f, tables.Format(inFormat), opts)
}

func sourceName(input string) string {
	if input == "" || input == "-" {
		return "stdin"
	}
	return input
}

func writeOutput(path string, b []byte) error {
	var w io.Writer = os.Stdout

	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "failed to create output")
		}
		defer f.Close()

		w = f
	}

	if _, err := w.Write(b); err != nil {
		return errors.Wrap(err, "failed to write output")
	}

	return nil
}
