// Package pubkey renders public keys in the chain-native tagged form
// {"type": <discriminator>, "value": <base64 raw key>} used by genesis files
// and validator tooling.
//
// Encoded is a closed sum type: only this package can add variants, and each
// variant owns its discriminator and payload encoding. Adding a key scheme
// adds a variant without changing the bytes existing variants produce.
package pubkey

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	cmtcrypto "github.com/cometbft/cometbft/crypto"
	cmted25519 "github.com/cometbft/cometbft/crypto/ed25519"

	"github.com/DeBrosOfficial/keygen/pkg/errors"
)

// TypeEd25519 is the discriminator of Ed25519 public keys.
const TypeEd25519 = cmted25519.PubKeyName

// Encoded is a tagged public key.
type Encoded interface {
	// Type returns the discriminator.
	Type() string
	// Value returns the base64 payload.
	Value() string
	// Bytes returns the raw key bytes.
	Bytes() []byte

	json.Marshaler
	sealed()
}

// Ed25519 is the Ed25519 variant.
type Ed25519 [cmted25519.PubKeySize]byte

func (Ed25519) Type() string { return TypeEd25519 }

func (k Ed25519) Value() string { return base64.StdEncoding.EncodeToString(k[:]) }

func (k Ed25519) Bytes() []byte { return append([]byte(nil), k[:]...) }

// MarshalJSON emits {"type":...,"value":...}.
func (k Ed25519) MarshalJSON() ([]byte, error) {
	return marshalTagged(k)
}

func (Ed25519) sealed() {}

type tagged struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func marshalTagged(e Encoded) ([]byte, error) {
	return json.Marshal(tagged{Type: e.Type(), Value: e.Value()})
}

// Encode wraps a public key in its tagged form.
func Encode(pub cmtcrypto.PubKey) (Encoded, error) {
	switch k := pub.(type) {
	case cmted25519.PubKey:
		if len(k) != cmted25519.PubKeySize {
			return nil, errors.NewValidationError("pub_key",
				fmt.Sprintf("ed25519 key must be %d bytes, got %d", cmted25519.PubKeySize, len(k)), len(k))
		}
		var out Ed25519
		copy(out[:], k)
		return out, nil
	default:
		return nil, errors.Wrapf(errors.ErrUnsupportedKeyType, "cannot encode %T", pub)
	}
}

// Decode parses the tagged JSON form.
func Decode(data []byte) (Encoded, error) {
	var t tagged
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, errors.NewValidationError("pub_key", err.Error(), nil)
	}
	switch t.Type {
	case TypeEd25519:
		raw, err := base64.StdEncoding.DecodeString(t.Value)
		if err != nil {
			return nil, errors.NewValidationError("pub_key.value", err.Error(), t.Value)
		}
		return Encode(cmted25519.PubKey(raw))
	default:
		return nil, errors.NewValidationError("pub_key.type", "unknown key type "+t.Type, t.Type)
	}
}

// PubKey converts back to the CometBFT key type.
func PubKey(e Encoded) cmtcrypto.PubKey {
	switch k := e.(type) {
	case Ed25519:
		return cmted25519.PubKey(k.Bytes())
	default:
		panic(fmt.Sprintf("pubkey: unhandled variant %T", e))
	}
}
