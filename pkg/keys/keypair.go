package keys

import (
	"crypto/ed25519"

	cmtcrypto "github.com/cometbft/cometbft/crypto"
	cmted25519 "github.com/cometbft/cometbft/crypto/ed25519"

	"github.com/DeBrosOfficial/keygen/pkg/errors"
)

// SeedSize is the length of an Ed25519 private seed.
const SeedSize = ed25519.SeedSize

// SeedSource supplies keypair seeds. *entropy.Source satisfies it.
type SeedSource interface {
	NextSeed() ([SeedSize]byte, error)
}

// Keypair is an Ed25519 signing keypair. The public key is always derived
// from the private key and never stored on its own.
type Keypair struct {
	priv cmted25519.PrivKey
}

// KeypairFromSeed derives the keypair for a 32-byte seed.
func KeypairFromSeed(seed [SeedSize]byte) *Keypair {
	return &Keypair{priv: cmted25519.PrivKey(ed25519.NewKeyFromSeed(seed[:]))}
}

// PrivateKey returns the 64-byte CometBFT private key (seed || public key).
func (k *Keypair) PrivateKey() cmted25519.PrivKey {
	return k.priv
}

// PublicKey derives the public key.
func (k *Keypair) PublicKey() cmtcrypto.PubKey {
	return k.priv.PubKey()
}

// Address derives the account address of the public key.
func (k *Keypair) Address() cmtcrypto.Address {
	return Address(k.PublicKey())
}

// Seed returns the 32-byte seed the keypair was derived from.
func (k *Keypair) Seed() [SeedSize]byte {
	var seed [SeedSize]byte
	copy(seed[:], k.priv[:SeedSize])
	return seed
}

// Address is the first 20 bytes of SHA-256 over the raw public key.
func Address(pub cmtcrypto.PubKey) cmtcrypto.Address {
	return pub.Address()
}

// Generator produces keypairs from an injected seed source.
type Generator struct {
	src SeedSource
}

// NewGenerator creates a generator drawing seeds from src.
func NewGenerator(src SeedSource) *Generator {
	return &Generator{src: src}
}

// Generate pulls a seed and derives a keypair from it.
func (g *Generator) Generate() (*Keypair, error) {
	seed, err := g.src.NextSeed()
	if err != nil {
		return nil, errors.Wrap(err, "failed to draw keypair seed")
	}
	kp := KeypairFromSeed(seed)
	for i := range seed {
		seed[i] = 0
	}
	return kp, nil
}
