package generator

import (
	"fmt"
	"strings"
	"time"

	cmtcrypto "github.com/cometbft/cometbft/crypto"
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/keygen/pkg/errors"
	"github.com/DeBrosOfficial/keygen/pkg/identity"
	"github.com/DeBrosOfficial/keygen/pkg/keys"
	"github.com/DeBrosOfficial/keygen/pkg/logging"
	"github.com/DeBrosOfficial/keygen/pkg/metrics"
	"github.com/DeBrosOfficial/keygen/pkg/plan"
	"github.com/DeBrosOfficial/keygen/pkg/pubkey"
)

// Files written into each validator directory.
const (
	PrivValidatorKeyFile = "priv_validator_key.json"
	PubKeyFile           = "pubkey.txt"
	MnemonicFile         = "mnemonic.txt"
)

// ValidatorOptions describe a validator key run.
type ValidatorOptions struct {
	Directory string
	Prefix    string
	Count     int

	// QuotedPubKey writes pubkey.txt as a JSON string wrapping the tagged
	// JSON, the layout downstream tooling reads today.
	QuotedPubKey bool

	// MnemonicBackup also writes the seed as a 24-word phrase.
	MnemonicBackup bool
}

// ValidatorEntry is one generated validator identity.
type ValidatorEntry struct {
	Name    string
	Dir     string
	Address cmtcrypto.Address
	PubKey  pubkey.Encoded
}

// ValidatorResult lists validators in index order.
type ValidatorResult struct {
	Entries []ValidatorEntry
}

// Validators generates Count validator keys under <Directory>/<Prefix><i>/.
func (g *Generator) Validators(opts ValidatorOptions) (*ValidatorResult, error) {
	if strings.TrimSpace(opts.Directory) == "" {
		return nil, errors.NewValidationError("directory", "must not be empty", opts.Directory)
	}
	if opts.Count < 0 || opts.Count > plan.MaxSlots {
		return nil, errors.NewValidationError("num",
			fmt.Sprintf("must be between 0 and %d; got %d", plan.MaxSlots, opts.Count), opts.Count)
	}

	result := &ValidatorResult{Entries: make([]ValidatorEntry, 0, opts.Count)}
	for i := 0; i < opts.Count; i++ {
		entry, err := g.validator(opts, i)
		if err != nil {
			return result, err
		}
		result.Entries = append(result.Entries, *entry)
	}

	g.logger.ComponentInfo(logging.ComponentKeygen, "validator keys generated",
		zap.Int("count", len(result.Entries)),
		zap.String("directory", opts.Directory),
	)
	return result, nil
}

func (g *Generator) validator(opts ValidatorOptions, index int) (*ValidatorEntry, error) {
	started := time.Now()
	name := identity.ValidatorDirName(opts.Prefix, index)
	dir := joinPath(opts.Directory, name)

	if err := g.mkdir(dir); err != nil {
		return nil, err
	}

	kp, err := g.keys.Generate()
	if err != nil {
		return nil, errors.Wrapf(err, "generate validator key %s", name)
	}

	enc, err := pubkey.Encode(kp.PublicKey())
	if err != nil {
		return nil, err
	}

	record, err := keys.MarshalValidatorKey(kp)
	if err != nil {
		return nil, err
	}
	if err := g.writeFile(joinPath(dir, PrivValidatorKeyFile), record); err != nil {
		return nil, err
	}

	text, err := pubkey.Text(enc, opts.QuotedPubKey)
	if err != nil {
		return nil, err
	}
	if err := g.writeFile(joinPath(dir, PubKeyFile), text); err != nil {
		return nil, err
	}

	if opts.MnemonicBackup {
		phrase, err := keys.Mnemonic(kp)
		if err != nil {
			return nil, err
		}
		if err := g.writeFile(joinPath(dir, MnemonicFile), []byte(phrase+"\n")); err != nil {
			return nil, err
		}
	}

	g.metrics.ObserveKey(metrics.KindValidator, started)
	g.logger.ComponentDebug(logging.ComponentKeygen, "generated validator key",
		zap.String("name", name),
		zap.String("address", kp.Address().String()),
	)
	return &ValidatorEntry{
		Name:    name,
		Dir:     dir,
		Address: kp.Address(),
		PubKey:  enc,
	}, nil
}
