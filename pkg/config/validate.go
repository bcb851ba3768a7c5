package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/DeBrosOfficial/keygen/pkg/plan"
)

// ValidationError represents a single validation error with context.
type ValidationError struct {
	Path    string // e.g., "node_keys.port"
	Message string // e.g., "must be between 1 and 65535"
	Hint    string // e.g., "CometBFT P2P listens on 26656 by default"
}

func (e ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s; %s", e.Path, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate performs comprehensive validation of the entire config.
// It aggregates all errors and returns them, allowing the caller to print all issues at once.
// fs is used to check the log file directory and defaults to the OS filesystem.
func (c *Config) Validate(fs afero.Fs) []error {
	var errs []error

	errs = append(errs, c.validateNodeKeys()...)
	errs = append(errs, c.validateValidators()...)
	errs = append(errs, c.validateShared(fs)...)

	return errs
}

// ValidateNodeKeys checks the node_keys section plus logging and metrics.
func (c *Config) ValidateNodeKeys(fs afero.Fs) []error {
	return append(c.validateNodeKeys(), c.validateShared(fs)...)
}

// ValidateValidators checks the validators section plus logging and metrics.
func (c *Config) ValidateValidators(fs afero.Fs) []error {
	return append(c.validateValidators(), c.validateShared(fs)...)
}

func (c *Config) validateShared(fs afero.Fs) []error {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return append(c.validateLogging(fs), c.validateMetrics()...)
}

func (c *Config) validateNodeKeys() []error {
	var errs []error
	nk := c.NodeKeys

	if strings.TrimSpace(nk.Directory) == "" {
		errs = append(errs, ValidationError{
			Path:    "node_keys.directory",
			Message: "must not be empty",
		})
	}

	if nk.NodesPerGroup < 0 || nk.NodesPerGroup > plan.MaxSlots {
		errs = append(errs, ValidationError{
			Path:    "node_keys.global_node_per_group",
			Message: fmt.Sprintf("must be between 0 and %d; got %d", plan.MaxSlots, nk.NodesPerGroup),
		})
	} else if _, err := plan.Parse(nk.GroupPrefixList, nk.NodesPerGroup); err != nil {
		errs = append(errs, ValidationError{
			Path:    "node_keys.group_prefix_list",
			Message: err.Error(),
			Hint:    `expected comma-separated "name" or "name:count" tokens`,
		})
	}

	if strings.TrimSpace(nk.Namespace) == "" {
		errs = append(errs, ValidationError{
			Path:    "node_keys.namespace",
			Message: "must not be empty",
		})
	}

	if strings.TrimSpace(nk.ServiceDomain) == "" {
		errs = append(errs, ValidationError{
			Path:    "node_keys.svc_domain",
			Message: "must not be empty",
			Hint:    "the in-cluster default is svc.cluster.local",
		})
	}

	if nk.Port < 1 || nk.Port > 65535 {
		errs = append(errs, ValidationError{
			Path:    "node_keys.port",
			Message: fmt.Sprintf("must be between 1 and 65535; got %d", nk.Port),
			Hint:    "CometBFT P2P listens on 26656 by default",
		})
	}

	return errs
}

func (c *Config) validateValidators() []error {
	var errs []error
	vc := c.Validators

	if strings.TrimSpace(vc.Directory) == "" {
		errs = append(errs, ValidationError{
			Path:    "validators.directory",
			Message: "must not be empty",
		})
	}

	if vc.Count < 0 || vc.Count > plan.MaxSlots {
		errs = append(errs, ValidationError{
			Path:    "validators.num",
			Message: fmt.Sprintf("must be between 0 and %d; got %d", plan.MaxSlots, vc.Count),
		})
	}

	if strings.ContainsRune(vc.Prefix, os.PathSeparator) {
		errs = append(errs, ValidationError{
			Path:    "validators.prefix",
			Message: fmt.Sprintf("must not contain %q", os.PathSeparator),
			Hint:    "the prefix names a directory under validators.directory",
		})
	}

	return errs
}

func (c *Config) validateLogging(fs afero.Fs) []error {
	var errs []error
	log := c.Logging

	// Validate level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[log.Level] {
		errs = append(errs, ValidationError{
			Path:    "logging.level",
			Message: fmt.Sprintf("invalid value %q", log.Level),
			Hint:    "allowed values: debug, info, warn, error",
		})
	}

	// Validate format
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[log.Format] {
		errs = append(errs, ValidationError{
			Path:    "logging.format",
			Message: fmt.Sprintf("invalid value %q", log.Format),
			Hint:    "allowed values: json, console",
		})
	}

	// Validate output_file
	if log.OutputFile != "" {
		dir := filepath.Dir(log.OutputFile)
		if dir != "" && dir != "." {
			if err := validateDirExists(fs, dir); err != nil {
				errs = append(errs, ValidationError{
					Path:    "logging.output_file",
					Message: fmt.Sprintf("invalid parent directory: %v", err),
				})
			}
		}
	}

	if log.MaxSizeMB < 0 || log.MaxBackups < 0 || log.MaxAgeDays < 0 {
		errs = append(errs, ValidationError{
			Path:    "logging",
			Message: "rotation limits must be >= 0",
		})
	}

	return errs
}

func (c *Config) validateMetrics() []error {
	var errs []error

	if c.Metrics.Textfile != "" && !strings.HasSuffix(c.Metrics.Textfile, ".prom") {
		errs = append(errs, ValidationError{
			Path:    "metrics.textfile",
			Message: fmt.Sprintf("invalid file name %q", c.Metrics.Textfile),
			Hint:    "the node-exporter textfile collector only reads *.prom files",
		})
	}

	return errs
}

func validateDirExists(fs afero.Fs, path string) error {
	info, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
