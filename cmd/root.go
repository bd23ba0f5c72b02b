package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/tabx/pkg/loader"
	"github.com/oakwood-commons/tabx/pkg/logger"
	"github.com/oakwood-commons/tabx/pkg/settings"
)

// errShowHelp is returned by loadInputData when no input is provided and help should be shown.
var errShowHelp = errors.New("no input provided")

// missingMode is the --on-missing flag value. Implementing pflag.Value makes
// cobra reject unknown modes at parse time instead of at render time. The
// empty string means the flag was not given and the mode comes from the
// environment, the config file, or the built-in default.
type missingMode string

func (m *missingMode) String() string { return string(*m) }

func (m *missingMode) Set(value string) error {
	if !isValidMissingMode(value) {
		return fmt.Errorf("invalid mode %q (expected placeholder or fail)", value)
	}
	*m = missingMode(value)
	return nil
}

func (m *missingMode) Type() string { return "mode" }

var (
	columnsFlag   []string
	outputFormat  string      // empty = use env/config; table|csv|markdown|json|yaml
	onMissing     missingMode // empty = use env/config
	placeholder   string
	configFile    string
	debug         bool
	limitRecords  int
	offsetRecords int
	tailRecords   int
)

var (
	stdinIsPiped  = func() bool { stat, _ := os.Stdin.Stat(); return (stat.Mode() & os.ModeCharDevice) == 0 }
	stdoutIsPiped = func() bool { stat, _ := os.Stdout.Stat(); return (stat.Mode() & os.ModeCharDevice) == 0 }
	termGetSize   = term.GetSize
)

var rootCtx = context.Background()

var rootCmd = &cobra.Command{
	Use:   "tabx [file]",
	Short: "tabx - fixed-width text tables from uniformly keyed records",
	Long: `tabx renders uniformly keyed records as a fixed-width text table: a
header line, a dashed separator rule, and one line per record, with every
column sized to its widest value.

Input comes from a file argument or piped stdin. JSON, NDJSON, YAML (single
and multi-document), TOML, CSV, markdown tables, and JWTs are detected
automatically. Use --output to emit csv, markdown, json, or yaml instead of
the plain table.`,
	Example: "\n  tabx animals.json\n  tabx -c name,speed animals.csv\n  cat records.ndjson | tabx --output markdown\n  tabx --on-missing fail --limit 10 data.yaml\n",
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// Map the CLI debug flag to log level: debug => zap.DebugLevel (-1), else zap.InfoLevel (0)
		var level int8 = 0
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)
	},
	Run: func(cmd *cobra.Command, args []string) {
		lgr := logger.FromContext(rootCtx)

		defaults, err := loadDefaults(configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}

		format := effectiveOutput(defaults)
		if err := validateOutputFormat(format); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		mode, err := effectiveOnMissing(defaults)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		limits := effectiveLimits(defaults)
		if err := limits.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "record limiting error: %v\n", err)
			os.Exit(2)
		}

		set, fromStdin, err := loadInputData(args, *lgr)
		if err != nil {
			if errors.Is(err, errShowHelp) {
				_ = cmd.Help()
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		lgr.V(1).Info("input loaded", "records", len(set.Records), "fromStdin", fromStdin)

		records := set.Records
		if limits.IsActive() {
			records = limits.Apply(records)
		}
		headers := effectiveColumns(defaults, set.Headers)

		out, err := renderOutput(format, records, headers, mode, effectivePlaceholder(cmd, defaults))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		logRenderDiagnostics(*lgr, out)
		fmt.Print(out) //nolint:forbidigo
	},
}

// loadInputData reads records from the file argument or from piped stdin.
// With no argument and nothing piped it returns errShowHelp so the caller
// prints usage instead of an empty table. The logger is forwarded to the
// loader so format detection is visible at debug verbosity.
func loadInputData(args []string, lgr logr.Logger) (*loader.Set, bool, error) {
	if len(args) > 0 {
		set, err := loader.LoadFileWithLogger(args[0], lgr)
		if err != nil {
			return nil, false, fmt.Errorf("failed to load file %s: %w", args[0], err)
		}
		return set, false, nil
	}

	if !stdinIsPiped() {
		return nil, false, errShowHelp
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read from stdin: %w", err)
	}
	set, err := loader.LoadBytesWithLogger(data, lgr)
	if err != nil {
		return nil, true, fmt.Errorf("failed to parse input: %w", err)
	}
	return set, true, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print tabx version",
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Println(cliVersionString()) //nolint:forbidigo
		return nil
	},
}

// cliVersionString builds a human-readable version string for CLI output and Cobra's --version flag.
func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, go %s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

func init() { //nolint:gochecknoinits
	rootCmd.Flags().StringSliceVarP(&columnsFlag, "columns", "c", nil, "comma-separated header list; selects and orders columns (default: derived from input)")
	// No static defaults on --output and --on-missing so help doesn't misstate them; defaults come from env/config
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "", "output format: table|csv|markdown|json|yaml (default table)")
	rootCmd.Flags().Var(&onMissing, "on-missing", "missing-field handling: placeholder|fail (default placeholder)")
	rootCmd.Flags().StringVar(&placeholder, "placeholder", "", "text substituted for missing fields (default empty)")
	rootCmd.Flags().StringVar(&configFile, "config", "", "path to a YAML defaults file")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log detection and render diagnostics to stderr")
	rootCmd.Flags().IntVar(&limitRecords, "limit", 0, "Limit total number of records displayed")
	rootCmd.Flags().IntVar(&offsetRecords, "offset", 0, "Skip the first N records")
	rootCmd.Flags().IntVar(&tailRecords, "tail", 0, "Show the last N records (mutually exclusive with --limit; ignores --offset)")
	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
