// Package cli wires the keygen commands: flag and config handling, the
// logger and metrics for a run, and the mapping from errors to exit codes.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/DeBrosOfficial/keygen/pkg/config"
	"github.com/DeBrosOfficial/keygen/pkg/errors"
)

// Streams are the process outputs. Out carries only the generated summary;
// logs and error messages go to Err.
type Streams struct {
	Out io.Writer
	Err io.Writer
}

// Option adjusts the command environment.
type Option func(*environment)

// WithFs replaces the OS filesystem for key output and config lookup.
func WithFs(fs afero.Fs) Option {
	return func(e *environment) {
		e.fs = fs
	}
}

type environment struct {
	streams Streams
	fs      afero.Fs
}

// flag name -> config key for flags on the root command
var globalFlagKeys = map[string]string{
	"log-level":        "logging.level",
	"log-format":       "logging.format",
	"log-file":         "logging.output_file",
	"no-color":         "logging.no_color",
	"metrics-textfile": "metrics.textfile",
	"reseed-threshold": "entropy.reseed_threshold",
}

// NewRootCmd builds the keygen command tree.
func NewRootCmd(streams Streams, opts ...Option) *cobra.Command {
	env := &environment{streams: streams, fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(env)
	}

	def := config.Default()

	root := &cobra.Command{
		Use:   "keygen",
		Short: "Generate CometBFT node and validator keys for a cluster",
		Long: "keygen creates P2P node keys with predictable in-cluster peer addresses and " +
			"validator consensus keys, ready to be mounted as Kubernetes secrets.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewValidationError("flags", err.Error(), nil)
	})

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default ~/.keygen/keygen.yaml when present)")
	pf.String("log-level", def.Logging.Level, "log level (debug, info, warn, error)")
	pf.String("log-format", def.Logging.Format, "log format (console, json)")
	pf.String("log-file", def.Logging.OutputFile, "write logs to a rotating file instead of stderr")
	pf.Bool("no-color", def.Logging.NoColor, "disable colored console logs")
	pf.String("metrics-textfile", def.Metrics.Textfile, "write Prometheus metrics to this *.prom file on exit")
	pf.Uint64("reseed-threshold", def.Entropy.ReseedThreshold, "bytes served between entropy reseeds (0 reseeds before every key)")

	root.AddCommand(
		newNodeKeysCmd(env),
		newValidatorsCmd(env),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string, streams Streams, opts ...Option) int {
	root := NewRootCmd(streams, opts...)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(streams.Err, "Error: %v\n", err)
		return errors.ExitCode(err)
	}
	return errors.ExitOK
}
