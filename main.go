package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsontree/internal/analyzer"
	"github.com/mcncl/jsontree/internal/config"
	"github.com/mcncl/jsontree/internal/errors"
	"github.com/mcncl/jsontree/internal/formatter"
	"github.com/mcncl/jsontree/internal/log"
	"github.com/mcncl/jsontree/internal/models"
	"github.com/mcncl/jsontree/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string   `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string   `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Config      string   `help:"Path to a YAML config file. Defaults to the nearest .jsontree.yml." short:"c" type:"path"`
	Mode        string   `help:"Output mode: compact, pretty, sum or stats." short:"m"`
	Indent      string   `help:"Indentation used by pretty mode."`
	MaxDepth    int      `help:"Maximum container nesting accepted."`
	MaxElements int      `help:"Maximum children of a single array or object."`
	SkipKey     []string `help:"Regex; objects with a matching key are left out of sums." short:"k"`
	SkipValue   []string `help:"Objects holding this string value are left out of sums." short:"s"`
	Debug       bool     `help:"Enable debug logging." short:"d"`
	Version     bool     `help:"Show version information." short:"v"`
	Interactive bool     `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	cli := kong.Must(&CLI,
		kong.Name("jsontree"),
		kong.Description("Parse, re-serialize and sum JSON documents"),
		kong.UsageOnError(),
	)

	// No arguments at all means interactive mode
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := cli.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsontree version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err == nil {
		err = log.Init(cfg.Log)
	}
	if err == nil {
		err = run(&Context{Debug: cfg.Dev.Debug, Config: cfg})
	}
	if err != nil {
		log.Log().Errorw("jsontree failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsontree --help\n")
		os.Exit(1)
	}
}

// loadConfig merges the config file, if any, with command-line overrides
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(path, config.Overrides{
		Mode:        CLI.Mode,
		Indent:      CLI.Indent,
		MaxDepth:    CLI.MaxDepth,
		MaxElements: CLI.MaxElements,
		SkipKeys:    CLI.SkipKey,
		SkipValues:  CLI.SkipValue,
		Debug:       CLI.Debug,
	})
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}
	return cfg, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	logger := log.Log()

	// 1. Lex and parse the input
	root, err := parseInput(cfg)
	if err != nil {
		return err
	}
	defer root.Destroy()
	logger.Debugw("parsed document", "root", root.Kind().String())

	// 2. Render according to the output mode
	out, err := render(root, cfg)
	if err != nil {
		return err
	}
	logger.Debugw("rendered document", "mode", cfg.Output.Mode, "bytes", len(out))

	// 3. Output the result
	return writeOutput(out)
}

func render(root models.Value, cfg *config.Config) (string, error) {
	switch cfg.Output.Mode {
	case config.ModePretty:
		return formatter.NewFormatterWithConfig(cfg).Format(root)
	case config.ModeSum:
		sum, err := analyzer.NewAnalyzerWithConfig(cfg).Sum(root)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", sum), nil
	case config.ModeStats:
		stats, err := analyzer.NewAnalyzerWithConfig(cfg).Analyze(root)
		if err != nil {
			return "", err
		}
		return formatStats(stats), nil
	default:
		out, err := root.Marshal(cfg.Limits.Depth())
		if err != nil {
			return "", errors.NewFormatError("failed to serialize tree", err)
		}
		return string(out), nil
	}
}

func formatStats(s analyzer.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "objects: %d\n", s.Objects)
	fmt.Fprintf(&b, "arrays: %d\n", s.Arrays)
	fmt.Fprintf(&b, "strings: %d\n", s.Strings)
	fmt.Fprintf(&b, "ints: %d\n", s.Ints)
	fmt.Fprintf(&b, "bools: %d\n", s.Bools)
	fmt.Fprintf(&b, "nulls: %d\n", s.Nulls)
	fmt.Fprintf(&b, "members: %d\n", s.Members)
	fmt.Fprintf(&b, "duplicate_keys: %d\n", s.DuplicateKeys)
	fmt.Fprintf(&b, "max_depth: %d\n", s.MaxDepth)
	fmt.Fprintf(&b, "skipped_objects: %d\n", s.SkippedObjects)
	fmt.Fprintf(&b, "sum: %d\n", s.Sum)
	return b.String()
}

func parserOptions(cfg *config.Config) []parser.Option {
	return []parser.Option{
		parser.WithMaxDepth(cfg.Limits.Depth()),
		parser.WithMaxElements(cfg.Limits.Elements()),
	}
}

// parseInput reads JSON from file or stdin
func parseInput(cfg *config.Config) (models.Value, error) {
	opts := parserOptions(cfg)
	if CLI.Input != "" {
		return parser.ParseFile(CLI.Input, opts...)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return models.Value{}, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		if CLI.Interactive {
			return readInteractiveInput(opts)
		}
		return models.Value{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return models.Value{}, errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		return models.Value{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseString(string(jsonData), opts...)
}

// writeOutput writes the rendered document to file or stdout
func writeOutput(out string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(out+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		log.Log().Infow("output written", "file", CLI.Output)
		return nil
	}

	_, err := fmt.Println(strings.TrimSpace(out))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput lets users paste JSON and finish with Ctrl+D (EOF)
func readInteractiveInput(opts []parser.Option) (models.Value, error) {
	fmt.Fprintln(os.Stderr, "jsontree Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Value{}, errors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if len(jsonData) == 0 {
		return models.Value{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return parser.ParseString(jsonData, opts...)
}
