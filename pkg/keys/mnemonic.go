package keys

import (
	"strings"

	"github.com/tyler-smith/go-bip39"

	"github.com/DeBrosOfficial/keygen/pkg/errors"
)

// Mnemonic encodes the keypair seed as a 24-word BIP-39 phrase. The words
// carry the seed itself; there is no PBKDF2 stretching or derivation path.
func Mnemonic(kp *Keypair) (string, error) {
	seed := kp.Seed()
	m, err := bip39.NewMnemonic(seed[:])
	if err != nil {
		return "", errors.NewSerializationError("mnemonic", err)
	}
	return m, nil
}

// KeypairFromMnemonic restores a keypair written by Mnemonic.
func KeypairFromMnemonic(mnemonic string) (*Keypair, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.NewValidationError("mnemonic", "invalid mnemonic phrase", nil)
	}
	entropy, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, errors.NewValidationError("mnemonic", err.Error(), nil)
	}
	if len(entropy) != SeedSize {
		return nil, errors.NewValidationError("mnemonic", "expected a 24-word phrase", len(entropy))
	}
	var seed [SeedSize]byte
	copy(seed[:], entropy)
	return KeypairFromSeed(seed), nil
}
