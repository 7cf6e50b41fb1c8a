package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"textforge-api/api/dto/mappers"
	"textforge-api/core/convert"
	"textforge-api/core/diff"
	"textforge-api/core/domain"
	"textforge-api/core/interfaces"
	"textforge-api/core/workbench"
	"textforge-api/core/workers"
	"textforge-api/infrastructure/bootstrap"
	"textforge-api/infrastructure/command"
	logruslogger "textforge-api/infrastructure/logger/logrus"
	"textforge-api/pkg/config"
	"textforge-api/pkg/featureflags"

	"github.com/spf13/pflag"
)

const usage = `Usage: textforge <command> [flags] [file]

Commands:
  format    pretty-print one or more files
  diff      compare two files
  convert   convert a file between formats
  validate  validate JSON against a JSON Schema or XML against an XSD
  lint      lint a YAML file
  tree      print the structural tree of a file as JSON

Files default to stdin; "-" also reads stdin.
Run "textforge <command> --help" for command flags.
`

// errReportFailed marks a validation or lint run that found problems
var errReportFailed = errors.New("report failed")

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	svc    *workbench.Service
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		fmt.Fprint(stderr, usage)
		if len(args) == 0 {
			return 1
		}
		return 0
	}

	svc, stop, err := newService(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "textforge: %v\n", err)
		return 1
	}
	defer stop()
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr, svc: svc}

	commands := map[string]func(context.Context, []string) error{
		"format":   c.format,
		"diff":     c.diff,
		"convert":  c.convert,
		"validate": c.validate,
		"lint":     c.lint,
		"tree":     c.tree,
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "textforge: unknown command %q\n\n%s", args[0], usage)
		return 1
	}

	if err := cmd(context.Background(), args[1:]); err != nil {
		switch {
		case errors.Is(err, pflag.ErrHelp):
			return 0
		case errors.Is(err, errReportFailed):
		default:
			fmt.Fprintf(stderr, "textforge %s: %v\n", args[0], err)
		}
		return 1
	}
	return 0
}

// newService builds an uncached service that logs warnings to stderr
func newService(stderr io.Writer) (*workbench.Service, func(), error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, err
	}
	logger := logruslogger.New(logruslogger.Options{Level: "warn", Format: "text", Output: stderr})
	runner := command.NewRunner(logger)
	flags := featureflags.NewEnvManager("FEATURE_")

	f, err := bootstrap.NewFormatter(cfg.Formatter, flags, runner, logger)
	if err != nil {
		return nil, nil, err
	}
	pool := workers.NewPool(workers.WorkerConfig{MaxWorkers: cfg.Limits.BatchWorkers})
	if err := pool.Start(); err != nil {
		return nil, nil, err
	}

	deps := interfaces.Dependencies{Logger: logger, Runner: runner}
	svc := workbench.NewService(deps, f, flags, workbench.Config{
		TreeMaxDepth:    cfg.Limits.TreeMaxDepth,
		MaxContentBytes: cfg.Limits.MaxContentBytes,
		MaxBatchItems:   cfg.Limits.MaxBatchItems,
		Pool:            pool,
	})
	return svc, func() { _ = pool.Stop() }, nil
}

func (c *cli) newFlagSet(name, args string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: textforge %s [flags] %s\n\nFlags:\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}

// readInput reads the named file, or stdin for "" and "-"
func (c *cli) readInput(name string) (string, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(c.stdin)
		return string(data), err
	}
	data, err := os.ReadFile(name)
	return string(data), err
}

// resolveKind uses the explicit format, or the file extension
func resolveKind(explicit, file string) (domain.FormatKind, error) {
	name := explicit
	if name == "" {
		name = filepath.Ext(file)
	}
	if name == "" {
		return "", errors.New("cannot infer the format; pass --format")
	}
	return domain.ParseFormatKind(name)
}

func optionalArg(fs *pflag.FlagSet) string {
	if fs.NArg() > 0 {
		return fs.Arg(0)
	}
	return ""
}

func (c *cli) format(ctx context.Context, args []string) error {
	fs := c.newFlagSet("format", "[file...]")
	kindName := fs.StringP("format", "f", "", "format name or extension (default: from the file extension)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return c.formatFiles(ctx, fs.Args(), *kindName)
	}
	file := optionalArg(fs)

	kind, err := resolveKind(*kindName, file)
	if err != nil {
		return err
	}
	content, err := c.readInput(file)
	if err != nil {
		return err
	}
	result, err := c.svc.Format(ctx, content, kind, false)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, strings.TrimRight(result.Content, "\n"))
	return nil
}

// formatFiles formats several files concurrently and prints each under a header
func (c *cli) formatFiles(ctx context.Context, files []string, kindName string) error {
	items := make([]workbench.BatchItem, 0, len(files))
	for _, file := range files {
		kind, err := resolveKind(kindName, file)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		content, err := c.readInput(file)
		if err != nil {
			return err
		}
		items = append(items, workbench.BatchItem{Name: file, Content: content, Format: string(kind)})
	}

	results, err := c.svc.FormatBatch(ctx, items)
	if err != nil {
		return err
	}

	failed := 0
	for i, r := range results {
		if r.Err != nil {
			fmt.Fprintf(c.stderr, "%s: %v\n", r.Name, r.Err)
			failed++
			continue
		}
		if i > 0 {
			fmt.Fprintln(c.stdout)
		}
		fmt.Fprintf(c.stdout, "==> %s <==\n%s\n", r.Name, strings.TrimRight(r.Result.Content, "\n"))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

func (c *cli) diff(ctx context.Context, args []string) error {
	fs := c.newFlagSet("diff", "<original> <modified>")
	mode := fs.StringP("mode", "m", string(workbench.DiffUnified), "unified, unified-html, side-by-side or table")
	unified := fs.IntP("unified", "U", diff.DefaultContext, "context lines around unified hunks; negative shows everything")
	contextOnly := fs.Bool("context-only", false, "table mode: show only changes with surrounding lines")
	numLines := fs.Int("numlines", diff.DefaultNumLines, "table mode: context lines around changes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return errors.New("diff needs two files")
	}

	original, err := c.readInput(fs.Arg(0))
	if err != nil {
		return err
	}
	modified, err := c.readInput(fs.Arg(1))
	if err != nil {
		return err
	}
	result, err := c.svc.Diff(ctx, workbench.DiffRequest{
		Original:    original,
		Modified:    modified,
		Mode:        workbench.DiffMode(*mode),
		Context:     unified,
		FromLabel:   fs.Arg(0),
		ToLabel:     fs.Arg(1),
		ContextOnly: *contextOnly,
		NumLines:    numLines,
	})
	if err != nil {
		return err
	}
	if result.Output != "" {
		fmt.Fprintln(c.stdout, strings.TrimRight(result.Output, "\n"))
	}
	return nil
}

func (c *cli) convert(ctx context.Context, args []string) error {
	fs := c.newFlagSet("convert", "[file]")
	from := fs.String("from", "", "source format (default: from the file extension)")
	to := fs.String("to", "", "target format")
	var opts convert.Options
	fs.StringVar(&opts.RootName, "root-name", "", "JSON to XML: root element name")
	fs.BoolVar(&opts.InferTypes, "infer-types", false, "XML to JSON: turn numeric and boolean text into numbers and booleans")
	fs.BoolVar(&opts.UnwrapRoot, "unwrap-root", false, "XML to JSON: drop the root element")
	fs.BoolVar(&opts.Lenient, "lenient", false, "JSON to TOON: warn instead of failing on mismatched keys")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *to == "" {
		fs.Usage()
		return errors.New("--to is required")
	}
	file := optionalArg(fs)
	source := *from
	if source == "" {
		kind, err := resolveKind("", file)
		if err != nil {
			return errors.New("cannot infer the source format; pass --from")
		}
		source = string(kind)
	}

	content, err := c.readInput(file)
	if err != nil {
		return err
	}
	result, err := c.svc.Convert(ctx, content, source, *to, opts)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(c.stderr, "warning: %s\n", w)
	}
	fmt.Fprintln(c.stdout, strings.TrimRight(result.Content, "\n"))
	return nil
}

func (c *cli) validate(ctx context.Context, args []string) error {
	fs := c.newFlagSet("validate", "--schema <schema> [file]")
	schemaFile := fs.StringP("schema", "s", "", "JSON Schema or XSD file")
	kindName := fs.String("type", "", "json-schema or xsd (default: from the schema extension)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *schemaFile == "" {
		fs.Usage()
		return errors.New("--schema is required")
	}
	schema, err := os.ReadFile(*schemaFile)
	if err != nil {
		return err
	}
	content, err := c.readInput(optionalArg(fs))
	if err != nil {
		return err
	}

	check := *kindName
	if check == "" {
		check = "json-schema"
		if strings.EqualFold(filepath.Ext(*schemaFile), ".xsd") {
			check = "xsd"
		}
	}

	var report *domain.Report
	switch check {
	case "json-schema":
		report, err = c.svc.ValidateJSONSchema(ctx, content, string(schema))
	case "xsd":
		report, err = c.svc.ValidateXSD(ctx, content, string(schema))
	default:
		return fmt.Errorf("unknown validation type %q", check)
	}
	if err != nil {
		return err
	}
	return c.printReport(report)
}

func (c *cli) lint(ctx context.Context, args []string) error {
	fs := c.newFlagSet("lint", "[file]")
	if err := fs.Parse(args); err != nil {
		return err
	}
	content, err := c.readInput(optionalArg(fs))
	if err != nil {
		return err
	}
	report, err := c.svc.LintYAML(ctx, content)
	if err != nil {
		return err
	}
	return c.printReport(report)
}

func (c *cli) tree(ctx context.Context, args []string) error {
	fs := c.newFlagSet("tree", "[file]")
	kindName := fs.StringP("format", "f", "", "format name or extension (default: from the file extension)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	file := optionalArg(fs)

	kind, err := resolveKind(*kindName, file)
	if err != nil {
		return err
	}
	content, err := c.readInput(file)
	if err != nil {
		return err
	}
	result, err := c.svc.Tree(ctx, content, kind)
	if err != nil {
		return err
	}
	if !result.Supported {
		return errors.New(result.Message)
	}

	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(mappers.ToTreeResponse(result))
}

func (c *cli) printReport(report *domain.Report) error {
	if report.Valid {
		fmt.Fprintln(c.stdout, report.Text())
		return nil
	}
	fmt.Fprintln(c.stderr, report.Text())
	return errReportFailed
}
