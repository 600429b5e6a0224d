package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/xll-gen/bin2c/internal/config"
	"github.com/xll-gen/bin2c/internal/generator"
	"github.com/xll-gen/bin2c/internal/ui"
	"github.com/xll-gen/bin2c/pkg/log"
)

// Version is set at build time with -ldflags "-X github.com/xll-gen/bin2c/cmd.Version=...".
var Version = "dev"

// Exit statuses. Each failure class of a run maps to its own code.
const (
	exitOK          = 0
	exitFailure     = 1
	exitConfig      = 2
	exitSource      = 3
	exitDestination = 4
	exitCollision   = 5
)

// convertFlags holds the values of the converter's command line flags.
type convertFlags struct {
	configPath   string
	attribute    string
	literal      bool
	outDir       string
	includes     []string
	bytesPerLine int
	collision    collisionValue
	logLevel     string
	logFile      string
	noColor      bool
}

var flags convertFlags

// rootCmd is the converter itself: bin2c [flags] <files...>.
var rootCmd = &cobra.Command{
	Use:   "bin2c [flags] <file>...",
	Short: "Convert binary files into C arrays or string literals",
	Long: `bin2c converts each input file into a <name>.c definition and a matching
<name>.h declaration, where <name> is the file's base name with every
character outside [0-9A-Za-z] replaced by '_'.`,
	Version:       Version,
	Args:          requireInputs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runRoot,
}

// runRoot resolves the configuration, sets up logging and converts args.
func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd.Flags(), &flags)
	if err != nil {
		return err
	}
	if flags.noColor {
		ui.SetColor(false)
	}

	if _, err := log.Init(cfg.Logging.Path, cfg.Logging.Level); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer log.Close()

	return runConvert(cfg, args, ui.Stdout())
}

// isInputFile reports whether name is an existing regular file.
func isInputFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.Mode().IsRegular()
}

// yieldToInput wraps a subcommand so that an input file with the same name
// as the subcommand is converted instead: `bin2c doctor in.bin` converts
// ./doctor and ./in.bin when ./doctor is a file.
func yieldToInput(sub *cobra.Command) {
	args := sub.Args
	run := sub.RunE
	sub.Args = func(cmd *cobra.Command, a []string) error {
		if isInputFile(cmd.Name()) {
			return nil
		}
		if args == nil {
			return nil
		}
		if err := args(cmd, a); err != nil {
			return &generator.ConfigError{Msg: err.Error()}
		}
		return nil
	}
	sub.RunE = func(cmd *cobra.Command, a []string) error {
		if isInputFile(cmd.Name()) {
			return runRoot(cmd, append([]string{cmd.Name()}, a...))
		}
		return run(cmd, a)
	}
}

// Execute runs the root command and exits with a status describing the
// failure class, if any.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(reportError(rootCmd, err, os.Stderr))
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	helpCmd := &cobra.Command{
		Use:   "help [command]",
		Short: "Help about any command",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _, err := rootCmd.Find(args)
			if err != nil || target == nil {
				return rootCmd.Help()
			}
			return target.Help()
		},
	}
	yieldToInput(helpCmd)
	rootCmd.SetHelpCommand(helpCmd)

	bindConvertFlags(rootCmd.PersistentFlags(), &flags)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &generator.ConfigError{Msg: err.Error()}
	})
}

// bindConvertFlags registers the converter flags on fs.
func bindConvertFlags(fs *pflag.FlagSet, f *convertFlags) {
	f.collision = collisionValue(generator.CollisionOverwrite)

	fs.StringVar(&f.configPath, "config", "", "Config file (default: ./"+config.DefaultFile+" if present)")
	fs.StringVar(&f.attribute, "attribute", "", "Append the given attribute to the variable definition")
	fs.BoolVar(&f.literal, "literal", false, "Generate a constant pointer to a string literal instead of an array of unsigned chars")
	fs.StringVar(&f.outDir, "out", ".", "Create output files in the specified output directory")
	fs.StringArrayVar(&f.includes, "include", nil, `Generate '#include "header"' (repeat for multiple headers)`)
	fs.IntVar(&f.bytesPerLine, "bytes-per-line", generator.DefaultBytesPerLine, "Array bytes emitted per line")
	fs.Var(&f.collision, "on-collision", "What to do when two inputs map to the same name: overwrite or error")
	fs.StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.logFile, "log-file", "", "Write logs to this file instead of stderr")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable colored output")
}

// requireInputs rejects an empty input list.
func requireInputs(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &generator.ConfigError{Msg: "no input files specified"}
	}
	return nil
}

// resolveConfig builds the run configuration: defaults, then the config
// file, then any flag set explicitly on the command line.
func resolveConfig(fs *pflag.FlagSet, f *convertFlags) (*config.Config, error) {
	cfg := &config.Config{}

	path := f.configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err == nil {
			path = config.DefaultFile
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, &generator.ConfigError{Msg: err.Error()}
		}
		cfg = loaded
	}

	if fs.Changed("out") {
		cfg.Output.Dir = f.outDir
	}
	if fs.Changed("literal") {
		cfg.Output.Literal = f.literal
	}
	if fs.Changed("attribute") {
		cfg.Output.Attribute = f.attribute
	}
	if fs.Changed("include") {
		cfg.Output.Includes = append(cfg.Output.Includes, f.includes...)
	}
	if fs.Changed("bytes-per-line") {
		n := f.bytesPerLine
		cfg.Output.BytesPerLine = &n
	}
	if fs.Changed("on-collision") {
		cfg.Collision.Policy = f.collision.String()
	}
	if fs.Changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if fs.Changed("log-file") {
		cfg.Logging.Path = f.logFile
	}

	config.ApplyDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, &generator.ConfigError{Msg: err.Error()}
	}
	return cfg, nil
}

// runConvert converts every input file according to cfg.
func runConvert(cfg *config.Config, paths []string, out *ui.Printer) error {
	return generator.Generate(paths, generator.Options{
		Encode:    cfg.EncodeConfig(),
		OutDir:    cfg.Output.Dir,
		Collision: generator.CollisionPolicy(cfg.Collision.Policy),
		UI:        out,
	})
}

// reportError prints err (and usage for configuration errors) to w and
// returns the matching exit status.
func reportError(cmd *cobra.Command, err error, w io.Writer) int {
	code := exitCode(err)
	ui.New(w).Error("Error", err.Error())
	if code == exitConfig {
		fmt.Fprintln(w)
		fmt.Fprint(w, cmd.UsageString())
	}
	return code
}

// exitCode maps an error from a run to a process exit status.
func exitCode(err error) int {
	var (
		cfgErr  *generator.ConfigError
		srcErr  *generator.SourceError
		dstErr  *generator.DestinationError
		collErr *generator.CollisionError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &cfgErr):
		return exitConfig
	case errors.As(err, &srcErr):
		return exitSource
	case errors.As(err, &dstErr):
		return exitDestination
	case errors.As(err, &collErr):
		return exitCollision
	default:
		return exitFailure
	}
}

// collisionValue is a pflag.Value restricted to the known collision policies.
type collisionValue generator.CollisionPolicy

func (v *collisionValue) String() string { return string(*v) }

func (v *collisionValue) Set(s string) error {
	switch p := generator.CollisionPolicy(s); p {
	case generator.CollisionOverwrite, generator.CollisionFail:
		*v = collisionValue(p)
		return nil
	default:
		return fmt.Errorf("must be %q or %q", generator.CollisionOverwrite, generator.CollisionFail)
	}
}

func (v *collisionValue) Type() string { return "policy" }
