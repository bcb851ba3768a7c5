package config

// Config is the full keygen configuration. Values are layered by Load:
// defaults, then the YAML file, then KEYGEN_* environment variables, then
// command-line flags that were set explicitly.
type Config struct {
	NodeKeys   NodeKeysConfig   `mapstructure:"node_keys"  yaml:"node_keys"`
	Validators ValidatorsConfig `mapstructure:"validators" yaml:"validators"`
	Entropy    EntropyConfig    `mapstructure:"entropy"    yaml:"entropy"`
	Logging    LoggingConfig    `mapstructure:"logging"    yaml:"logging"`
	Metrics    MetricsConfig    `mapstructure:"metrics"    yaml:"metrics"`
}

// NodeKeysConfig drives the node-keys command.
type NodeKeysConfig struct {
	Directory       string `mapstructure:"directory"             yaml:"directory"`
	GroupPrefixList string `mapstructure:"group_prefix_list"     yaml:"group_prefix_list"` // e.g. "val,full:3"
	NodesPerGroup   int    `mapstructure:"global_node_per_group" yaml:"global_node_per_group"`
	ServiceDomain   string `mapstructure:"svc_domain"            yaml:"svc_domain"`
	Namespace       string `mapstructure:"namespace"             yaml:"namespace"`
	Port            int    `mapstructure:"port"                  yaml:"port"`
}

// ValidatorsConfig drives the validators command.
type ValidatorsConfig struct {
	Directory      string `mapstructure:"directory"       yaml:"directory"`
	Prefix         string `mapstructure:"prefix"          yaml:"prefix"`
	Count          int    `mapstructure:"num"             yaml:"num"`
	PubKeyQuoted   bool   `mapstructure:"pubkey_quoted"   yaml:"pubkey_quoted"`
	MnemonicBackup bool   `mapstructure:"mnemonic_backup" yaml:"mnemonic_backup"`
}

// EntropyConfig tunes the randomness source.
type EntropyConfig struct {
	// ReseedThreshold is the number of bytes served between reseeds.
	// Zero reseeds before every key.
	ReseedThreshold uint64 `mapstructure:"reseed_threshold" yaml:"reseed_threshold"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"        yaml:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"       yaml:"format"`      // json, console
	OutputFile string `mapstructure:"output_file"  yaml:"output_file"` // Empty for stderr
	NoColor    bool   `mapstructure:"no_color"     yaml:"no_color"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"  yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"  yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

// MetricsConfig controls the Prometheus textfile dump.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile" yaml:"textfile"` // Empty disables
}

// Default returns a Config with the stock values.
func Default() *Config {
	return &Config{
		NodeKeys: NodeKeysConfig{
			Directory:       "node_keys",
			GroupPrefixList: "",
			NodesPerGroup:   2,
			ServiceDomain:   "svc.cluster.local",
			Namespace:       "mantrachain-dukong-nodes",
			Port:            26656,
		},
		Validators: ValidatorsConfig{
			Directory:    "validator_keys",
			Prefix:       "validator-",
			Count:        1,
			PubKeyQuoted: true,
		},
		Entropy: EntropyConfig{
			ReseedThreshold: 0,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}
