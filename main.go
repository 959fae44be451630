package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mathfig/builders"
	"mathfig/config"
	"mathfig/diagram"
	"mathfig/export"
	"mathfig/expr"
	"mathfig/importer"
	"mathfig/markdown"
	"mathfig/render"
	"mathfig/terminal"
	"mathfig/validation"
)

// errInvalidDrawing is returned after output was written when validation
// found errors.
var errInvalidDrawing = errors.New("drawing failed validation")

const resultCacheSize = 128

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	case errors.Is(err, errInvalidDrawing):
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cli holds the parsed command line.
type cli struct {
	cfg      config.Config
	output   string
	preview  bool
	markdown bool
	list     bool
	verbose  bool
	color    *bool
	file     string
}

func parseArgs(args []string, stderr io.Writer) (*cli, error) {
	fs := flag.NewFlagSet("mathfig", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath = fs.String("config", "", "YAML settings file")
		format     = fs.String("format", "", "Export format: svg, png, ascii, json (default svg)")
		output     = fs.String("o", "", "Output file (default: stdout)")
		width      = fs.Float64("width", 0, "Surface width")
		height     = fs.Float64("height", 0, "Surface height")
		margin     = fs.Float64("margin", 0, "Blank border around the figure")
		fontSize   = fs.Float64("font-size", 0, "Default label size")
		outDir     = fs.String("outdir", "", "Directory for -markdown output")
		validate   = fs.Bool("validate", false, "Check every drawing and exit 2 on errors")
		strict     = fs.Bool("strict", false, "Treat overlapping labels as errors (implies -validate)")
		preview    = fs.Bool("preview", false, "Show the figures in the terminal")
		mdMode     = fs.Bool("markdown", false, "Render every mathfig block of a markdown file")
		list       = fs.Bool("list", false, "List the available tools and expression functions")
		verbose    = fs.Bool("v", false, "Debug logging on stderr")
		color      = fs.Bool("color", false, "ANSI colours in ascii output (default: on for colour terminals)")
	)

	fs.Usage = func() {
		name := fs.Name()
		fmt.Fprintf(stderr, "Usage: %s [options] request.{json,yaml}\n\n", name)
		fmt.Fprintf(stderr, "Renders maths diagram requests to SVG, PNG, text or JSON.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  %s triangle.json                    # SVG to stdout\n", name)
		fmt.Fprintf(stderr, "  %s -format png -o fig.png tri.yaml  # PNG file\n", name)
		fmt.Fprintf(stderr, "  %s -format ascii graph.json         # Text art\n", name)
		fmt.Fprintf(stderr, "  %s -preview lesson.yaml             # Browse in the terminal\n", name)
		fmt.Fprintf(stderr, "  %s -markdown -outdir img lesson.md  # Render every block\n", name)
		fmt.Fprintf(stderr, "  cat req.json | %s -                 # Read stdin\n", name)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	c := &cli{output: *output, preview: *preview, markdown: *mdMode, list: *list, verbose: *verbose}

	// Flags given on the command line win over the settings file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = *format
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "margin":
			cfg.Margin = *margin
		case "font-size":
			cfg.FontSize = *fontSize
		case "outdir":
			cfg.OutDir = *outDir
		case "validate":
			cfg.Validate = *validate
		case "strict":
			cfg.Strict = *strict
		case "color":
			c.color = color
		}
	})
	if cfg.Strict {
		cfg.Validate = true
	}
	if c.color == nil && cfg.Color {
		c.color = &cfg.Color
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	c.cfg = cfg

	if !c.list {
		if fs.NArg() != 1 {
			fs.Usage()
			return nil, fmt.Errorf("expected one input file, got %d", fs.NArg())
		}
		c.file = fs.Arg(0)
	}
	return c, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	c, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	// Lessons often repeat a figure; identical requests are rendered once.
	cache := render.NewCache(resultCacheSize)
	engine := builders.NewEngine(append(c.cfg.Options(), render.WithLogger(logger), render.WithCache(cache))...)
	defer func() { logger.Debug("done", slog.String("cache", cache.String())) }()

	if c.list {
		for _, name := range engine.Registry().Names() {
			fmt.Fprintln(stdout, name)
		}
		fmt.Fprintf(stdout, "\nfunctionGraph expression functions: %s\n", strings.Join(expr.Functions(), ", "))
		return nil
	}

	content, err := readInput(c.file)
	if err != nil {
		return err
	}
	a := &app{cli: c, engine: engine, logger: logger, stdout: stdout, stderr: stderr}
	if c.markdown {
		return a.renderMarkdown(string(content))
	}

	reqs, err := importRequests(c.file, string(content))
	if err != nil {
		return err
	}
	figs, err := a.renderAll(reqs)
	if err != nil {
		return err
	}
	if c.preview {
		return a.previewAll(figs)
	}
	if err := a.writeAll(figs); err != nil {
		return err
	}
	return a.verdict(figs)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

func importRequests(path, content string) ([]diagram.ToolRequest, error) {
	registry := importer.NewImporterRegistry()
	var (
		reqs []diagram.ToolRequest
		err  error
	)
	if path == "-" {
		reqs, err = registry.Import(content)
	} else {
		reqs, err = registry.ImportFile(path, content)
	}
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", path, err)
	}
	return reqs, nil
}

// figure is one rendered request.
type figure struct {
	req    diagram.ToolRequest
	result *diagram.Result
	issues []validation.Issue
}

type app struct {
	*cli
	engine *render.Engine
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func (a *app) renderAll(reqs []diagram.ToolRequest) ([]figure, error) {
	figs := make([]figure, 0, len(reqs))
	for i, req := range reqs {
		res, err := a.engine.Render(req)
		if err != nil {
			if len(reqs) > 1 {
				return nil, fmt.Errorf("request %d (%s): %w", i+1, req.ToolName, err)
			}
			return nil, err
		}
		fig := figure{req: req, result: res}
		if a.cfg.Validate {
			fig.issues = a.check(res)
			for _, issue := range fig.issues {
				fmt.Fprintf(a.stderr, "%s: %s\n", req.ToolName, issue)
			}
		}
		figs = append(figs, fig)
	}
	return figs, nil
}

func (a *app) check(res *diagram.Result) []validation.Issue {
	v := validation.NewDrawingValidator(a.engine.Options().Measurer)
	v.SetStrictMode(a.cfg.Strict)
	return v.Validate(res.Drawing)
}

func (a *app) verdict(figs []figure) error {
	for _, f := range figs {
		if validation.HasErrors(f.issues) {
			return errInvalidDrawing
		}
	}
	return nil
}

// exporter builds the configured exporter. Text output bound for a terminal
// follows its colour and UTF-8 support unless -color was given.
func (a *app) exporter(toTerminal bool) (export.Exporter, error) {
	format, err := export.ParseFormat(a.cfg.Format)
	if err != nil {
		return nil, err
	}
	exp, err := export.NewExporter(format)
	if err != nil {
		return nil, err
	}
	if ascii, ok := exp.(*export.ASCIIExporter); ok {
		caps := terminal.DetectCapabilities()
		switch {
		case a.color != nil:
			ascii.Color = *a.color
		case toTerminal:
			ascii.Color = caps.Color
		}
		ascii.Plain = toTerminal && !caps.UTF8
	}
	return exp, nil
}

func (a *app) writeAll(figs []figure) error {
	toStdout := a.output == "" || a.output == "-"
	exp, err := a.exporter(toStdout && stdoutIsTerminal(a.stdout))
	if err != nil {
		return err
	}
	for i, f := range figs {
		data, err := exp.Export(f.result.Drawing)
		if err != nil {
			return fmt.Errorf("exporting %s: %w", f.req.ToolName, err)
		}
		if toStdout {
			if _, err := a.stdout.Write(data); err != nil {
				return err
			}
			if len(data) > 0 && data[len(data)-1] != '\n' {
				fmt.Fprintln(a.stdout)
			}
			continue
		}
		path := a.output
		if len(figs) > 1 {
			path = numbered(a.output, i+1)
		}
		if err := writeFile(path, data); err != nil {
			return err
		}
		a.logger.Info("exported", slog.String("tool", f.req.ToolName), slog.String("path", path))
	}
	return nil
}

func (a *app) previewAll(figs []figure) error {
	ascii := export.NewASCIIExporter()
	pages := make([]terminal.Page, 0, len(figs))
	for _, f := range figs {
		c, err := ascii.Rasterize(f.result.Drawing)
		if err != nil {
			return err
		}
		pages = append(pages, terminal.Page{Name: f.req.ToolName, Canvas: c, Caption: f.result.Caption})
	}
	if err := terminal.Run(pages...); err != nil {
		return err
	}
	return a.verdict(figs)
}

// renderMarkdown writes every mathfig block of a document into OutDir as
// <doc>-<block>-<hash><ext>, with a request suffix when a block holds
// several requests.
func (a *app) renderMarkdown(content string) error {
	blocks := markdown.NewScanner(content).FindFigureBlocks()
	if len(blocks) == 0 {
		return fmt.Errorf("no %s blocks found in %s", markdown.Language, a.file)
	}
	exp, err := a.exporter(false)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(a.cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(a.file), filepath.Ext(a.file))
	registry := importer.NewImporterRegistry()
	var all []figure
	for i, block := range blocks {
		a.logger.Debug("block", slog.String("info", markdown.FormatBlockInfo(block, i)))
		reqs, err := registry.Import(block.Content)
		if err != nil {
			return fmt.Errorf("block at line %d: %w", block.StartLine+1, err)
		}
		figs, err := a.renderAll(reqs)
		if err != nil {
			return fmt.Errorf("block at line %d: %w", block.StartLine+1, err)
		}
		for j, f := range figs {
			name := fmt.Sprintf("%s-%d-%s", base, i+1, block.ShortHash())
			if len(figs) > 1 {
				name = fmt.Sprintf("%s-%d", name, j+1)
			}
			data, err := exp.Export(f.result.Drawing)
			if err != nil {
				return fmt.Errorf("exporting %s: %w", f.req.ToolName, err)
			}
			path := filepath.Join(a.cfg.OutDir, name+exp.GetFileExtension())
			if err := writeFile(path, data); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, path)
		}
		all = append(all, figs...)
	}
	return a.verdict(all)
}

// numbered inserts -n before the extension of path.
func numbered(path string, n int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), n, ext)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func stdoutIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && terminal.IsTerminal(f)
}
