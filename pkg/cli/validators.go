package cli

import (
	"github.com/spf13/cobra"

	"github.com/DeBrosOfficial/keygen/pkg/config"
	"github.com/DeBrosOfficial/keygen/pkg/generator"
	"github.com/DeBrosOfficial/keygen/pkg/manifest"
)

var validatorsFlagKeys = map[string]string{
	"directory":       "validators.directory",
	"prefix":          "validators.prefix",
	"num":             "validators.num",
	"pubkey-quoted":   "validators.pubkey_quoted",
	"mnemonic-backup": "validators.mnemonic_backup",
}

func newValidatorsCmd(env *environment) *cobra.Command {
	def := config.Default().Validators

	cmd := &cobra.Command{
		Use:   "validators",
		Short: "Generate validator consensus keys",
		Long: "Writes <directory>/<prefix><i>/priv_validator_key.json and pubkey.txt for each " +
			"validator, then prints each validator's address and public key.",
		Example: "  keygen validators --num 4 --prefix val- -d out/validators",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidators(env, cmd)
		},
	}

	f := cmd.Flags()
	f.StringP("directory", "d", def.Directory, "output directory for validator key folders")
	f.String("prefix", def.Prefix, "validator folder name prefix")
	f.Int("num", def.Count, "number of validators")
	f.Bool("pubkey-quoted", def.PubKeyQuoted, "write pubkey.txt as a JSON string wrapping the key JSON")
	f.Bool("mnemonic-backup", def.MnemonicBackup, "also write the key seed as a BIP-39 mnemonic.txt")

	return cmd
}

func runValidators(env *environment, cmd *cobra.Command) error {
	r, err := startRun(env, cmd, validatorsFlagKeys, (*config.Config).ValidateValidators)
	if err != nil {
		return err
	}
	vc := r.cfg.Validators

	res, err := r.gen.Validators(generator.ValidatorOptions{
		Directory:      vc.Directory,
		Prefix:         vc.Prefix,
		Count:          vc.Count,
		QuotedPubKey:   vc.PubKeyQuoted,
		MnemonicBackup: vc.MnemonicBackup,
	})
	if err != nil {
		return r.finish(env, err)
	}

	summary := make([]manifest.ValidatorSummary, len(res.Entries))
	for i, e := range res.Entries {
		summary[i] = manifest.ValidatorSummary{
			Name:    e.Name,
			Address: e.Address.String(),
			PubKey:  e.PubKey.Value(),
		}
	}
	err = manifest.WriteValidatorSummary(env.streams.Out, summary)
	return r.finish(env, err)
}
