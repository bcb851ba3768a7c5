package cli

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/keygen/pkg/config"
	"github.com/DeBrosOfficial/keygen/pkg/entropy"
	"github.com/DeBrosOfficial/keygen/pkg/errors"
	"github.com/DeBrosOfficial/keygen/pkg/generator"
	"github.com/DeBrosOfficial/keygen/pkg/keys"
	"github.com/DeBrosOfficial/keygen/pkg/logging"
	"github.com/DeBrosOfficial/keygen/pkg/metrics"
)

// run holds everything one command invocation needs.
type run struct {
	id      string
	cfg     *config.Config
	logger  *logging.ColoredLogger
	metrics *metrics.Metrics
	source  *entropy.Source
	gen     *generator.Generator
	started time.Time
}

// validateFunc checks the config sections one command depends on.
type validateFunc func(*config.Config, afero.Fs) []error

// startRun loads and validates config, then builds the logger, entropy
// source and generator. Nothing touches the output directories before this
// returns successfully.
func startRun(env *environment, cmd *cobra.Command, flagKeys map[string]string, validate validateFunc) (*run, error) {
	cfgPath, _ := cmd.Flags().GetString("config")

	bindings := make(map[string]string, len(globalFlagKeys)+len(flagKeys))
	for k, v := range globalFlagKeys {
		bindings[k] = v
	}
	for k, v := range flagKeys {
		bindings[k] = v
	}

	cfg, err := config.Load(config.LoadOptions{
		Fs:       env.fs,
		Path:     cfgPath,
		Flags:    cmd.Flags(),
		FlagKeys: bindings,
	})
	if err != nil {
		return nil, err
	}
	if errs := validate(cfg, env.fs); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, errors.NewConfigError("config", strings.Join(msgs, "; "), nil)
	}

	logger, err := logging.New(logging.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputFile: cfg.Logging.OutputFile,
		Colors:     !cfg.Logging.NoColor,
		Writer:     env.streams.Err,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		return nil, errors.NewValidationError("logging.level", err.Error(), cfg.Logging.Level)
	}

	r := &run{
		id:      uuid.NewString(),
		cfg:     cfg,
		metrics: metrics.New(),
		started: time.Now(),
	}
	r.logger = logger.With(zap.String("run_id", r.id), zap.String("command", cmd.Name()))

	src, err := entropy.New(entropy.WithReseedThreshold(cfg.Entropy.ReseedThreshold))
	if err != nil {
		r.logger.ComponentError(logging.ComponentEntropy, "failed to initialize entropy source", zap.Error(err))
		return nil, err
	}
	r.source = src

	gen, err := generator.New(generator.Deps{
		Fs:      env.fs,
		Keys:    keys.NewGenerator(src),
		Logger:  r.logger,
		Metrics: r.metrics,
	})
	if err != nil {
		return nil, err
	}
	r.gen = gen

	r.logger.ComponentDebug(logging.ComponentCLI, "configuration loaded",
		zap.String("config_file", cfgPath),
		zap.Uint64("reseed_threshold", cfg.Entropy.ReseedThreshold),
	)
	return r, nil
}

// finish records the outcome, dumps metrics when configured and closes
// the logger. It returns runErr unless runErr is nil and the textfile
// write failed.
func (r *run) finish(env *environment, runErr error) error {
	r.metrics.EntropyReseeds.Set(float64(r.source.Reseeds()))
	r.metrics.LastRunTimestamp.SetToCurrentTime()

	if runErr != nil {
		kind := string(errors.KindOf(runErr))
		r.metrics.Errors.WithLabelValues(kind).Inc()
		r.logger.ComponentError(logging.ComponentCLI, "generation failed",
			zap.String("kind", kind),
			zap.String("code", errors.GetErrorCode(runErr)),
			zap.Error(runErr),
		)
		r.logger.ComponentDebug(logging.ComponentCLI, "failure detail",
			zap.String("message", errors.GetErrorMessage(runErr)),
			zap.NamedError("cause", errors.Cause(runErr)),
			zap.String("stack", errors.StackTraceOf(runErr)),
		)
	} else {
		r.logger.ComponentInfo(logging.ComponentCLI, "generation finished",
			zap.Duration("elapsed", time.Since(r.started)),
		)
	}

	if path := r.cfg.Metrics.Textfile; path != "" {
		if err := r.metrics.WriteTextfile(path); err != nil {
			r.logger.ComponentWarn(logging.ComponentStorage, "failed to write metrics textfile",
				zap.String("path", path),
				zap.Error(err),
			)
			if runErr == nil {
				runErr = errors.NewFilesystemError("write", path, err)
			}
		}
	}

	_ = r.logger.Close()
	return runErr
}
