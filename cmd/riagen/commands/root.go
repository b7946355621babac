// Package commands implements the CLI commands for riagen.
package commands

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.trai.ch/riagen/internal/app"
	"go.trai.ch/riagen/internal/build"
	"go.trai.ch/zerr"
)

// EnvPrefix prefixes environment variables overriding flags, e.g. RIAGEN_ROOT_NAMESPACE.
const EnvPrefix = "RIAGEN"

// Runner is the application surface driven by the CLI.
type Runner interface {
	Generate(ctx context.Context, opts app.GenerateOptions) ([]app.PassResult, error)
	Watch(ctx context.Context, opts app.GenerateOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
	Inspect(w io.Writer, paths []string) error
}

// LogSink receives the path of the optional build log file.
type LogSink interface {
	SetLogFile(path string) error
}

// CLI represents the command line interface for riagen.
type CLI struct {
	app     Runner
	sink    LogSink
	rootCmd *cobra.Command
	v       *viper.Viper
}

// New creates a new CLI instance with the given app. sink may be nil.
func New(a Runner, sink LogSink) *CLI {
	rootCmd := &cobra.Command{
		Use:           "riagen",
		Short:         "Generate client proxies for domain services, skipping types the client already shares",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to riagen.yaml or the directory containing it")
	rootCmd.PersistentFlags().String("log-file", "", "Also write a rotating JSON build log to this file")

	c := &CLI{
		app:     a,
		sink:    sink,
		rootCmd: rootCmd,
		v:       viper.New(),
	}
	c.v.SetEnvPrefix(EnvPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	rootCmd.PersistentPreRunE = c.preRun

	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newInspectCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// preRun binds the flags of the invoked command so that RIAGEN_* variables override defaults.
func (c *CLI) preRun(cmd *cobra.Command, _ []string) error {
	if err := c.v.BindPFlags(cmd.Flags()); err != nil {
		return zerr.Wrap(err, "failed to bind flags")
	}
	if path := c.v.GetString("log-file"); path != "" && c.sink != nil {
		if err := c.sink.SetLogFile(path); err != nil {
			return zerr.Wrap(err, "failed to open log file")
		}
	}
	return nil
}

func (c *CLI) generateOptions() app.GenerateOptions {
	return app.GenerateOptions{
		ConfigPath:    c.v.GetString("config"),
		Language:      c.v.GetString("language"),
		RootNamespace: c.v.GetString("root-namespace"),
		FullTypeNames: c.v.GetBool("full-type-names"),
		Force:         c.v.GetBool("force"),
	}
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("language", "l", "", "Override the output language of every project (C# or VB)")
	cmd.Flags().String("root-namespace", "", "Override the client root namespace of every project")
	cmd.Flags().Bool("full-type-names", false, "Qualify every type name in generated code")
	cmd.Flags().BoolP("force", "f", false, "Regenerate even when no input changed")
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error writers of the root command. Used for testing.
func (c *CLI) SetOutput(out, errOut io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(errOut)
}
