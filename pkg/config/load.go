package config

import (
	"bytes"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/DeBrosOfficial/keygen/pkg/errors"
)

// EnvPrefix prefixes every environment override, e.g. KEYGEN_NODE_KEYS_PORT.
const EnvPrefix = "KEYGEN"

// LoadOptions tell Load where to look.
type LoadOptions struct {
	// Fs defaults to the OS filesystem.
	Fs afero.Fs

	// Path is the YAML file to read. When empty, DefaultPath is used if it
	// exists and the file layer is skipped otherwise.
	Path string

	// Flags are bound through FlagKeys (flag name -> config key). Only flags
	// the user set take effect.
	Flags    *pflag.FlagSet
	FlagKeys map[string]string
}

// Load builds a Config from defaults, file, environment and flags.
// It does not validate; call Validate on the result.
func Load(opts LoadOptions) (*Config, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, Default())

	if path := resolvePath(fs, opts.Path); path != "" {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, errors.NewConfigError("config", "failed to read config file "+path, err)
		}
		// Typos in key names are rejected rather than silently ignored.
		if err := DecodeStrict(bytes.NewReader(data), &Config{}); err != nil {
			return nil, errors.NewConfigError("config", "invalid config file "+path, err)
		}
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, errors.NewConfigError("config", "failed to parse config file "+path, err)
		}
	}

	if opts.Flags != nil {
		for name, key := range opts.FlagKeys {
			f := opts.Flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.NewInternalError("failed to bind flag "+name, err).WithOperation("config.load")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigError("config", "failed to unmarshal config", err)
	}
	return &cfg, nil
}

func resolvePath(fs afero.Fs, path string) string {
	if path != "" {
		return path
	}
	def, err := DefaultPath()
	if err != nil {
		return ""
	}
	if exists, err := afero.Exists(fs, def); err != nil || !exists {
		return ""
	}
	return def
}

// setDefaults registers every key so environment variables resolve even
// when the file does not mention them.
func setDefaults(v *viper.Viper, def *Config) {
	v.SetDefault("node_keys.directory", def.NodeKeys.Directory)
	v.SetDefault("node_keys.group_prefix_list", def.NodeKeys.GroupPrefixList)
	v.SetDefault("node_keys.global_node_per_group", def.NodeKeys.NodesPerGroup)
	v.SetDefault("node_keys.svc_domain", def.NodeKeys.ServiceDomain)
	v.SetDefault("node_keys.namespace", def.NodeKeys.Namespace)
	v.SetDefault("node_keys.port", def.NodeKeys.Port)

	v.SetDefault("validators.directory", def.Validators.Directory)
	v.SetDefault("validators.prefix", def.Validators.Prefix)
	v.SetDefault("validators.num", def.Validators.Count)
	v.SetDefault("validators.pubkey_quoted", def.Validators.PubKeyQuoted)
	v.SetDefault("validators.mnemonic_backup", def.Validators.MnemonicBackup)

	v.SetDefault("entropy.reseed_threshold", def.Entropy.ReseedThreshold)

	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.output_file", def.Logging.OutputFile)
	v.SetDefault("logging.no_color", def.Logging.NoColor)
	v.SetDefault("logging.max_size_mb", def.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", def.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", def.Logging.MaxAgeDays)

	v.SetDefault("metrics.textfile", def.Metrics.Textfile)
}
