package keys

import (
	cmtcrypto "github.com/cometbft/cometbft/crypto"
	cmtjson "github.com/cometbft/cometbft/libs/json"
	"github.com/cometbft/cometbft/p2p"

	"github.com/DeBrosOfficial/keygen/pkg/errors"
)

// ValidatorKeyRecord is the priv_validator_key.json layout.
type ValidatorKeyRecord struct {
	Address cmtcrypto.Address `json:"address"`
	PubKey  cmtcrypto.PubKey  `json:"pub_key"`
	PrivKey cmtcrypto.PrivKey `json:"priv_key"`
}

// NewNodeKey wraps a keypair as a p2p node key.
func NewNodeKey(kp *Keypair) *p2p.NodeKey {
	return &p2p.NodeKey{PrivKey: kp.PrivateKey()}
}

// NewValidatorKeyRecord builds the validator bundle for a keypair.
func NewValidatorKeyRecord(kp *Keypair) *ValidatorKeyRecord {
	pub := kp.PublicKey()
	return &ValidatorKeyRecord{
		Address: Address(pub),
		PubKey:  pub,
		PrivKey: kp.PrivateKey(),
	}
}

// MarshalNodeKey renders node_key.json.
func MarshalNodeKey(kp *Keypair) ([]byte, error) {
	data, err := cmtjson.MarshalIndent(NewNodeKey(kp), "", "  ")
	if err != nil {
		return nil, errors.NewSerializationError("node key", err)
	}
	return data, nil
}

// MarshalValidatorKey renders priv_validator_key.json.
func MarshalValidatorKey(kp *Keypair) ([]byte, error) {
	data, err := cmtjson.MarshalIndent(NewValidatorKeyRecord(kp), "", "  ")
	if err != nil {
		return nil, errors.NewSerializationError("validator key", err)
	}
	return data, nil
}

// ParseNodeKey reads node_key.json back.
func ParseNodeKey(data []byte) (*p2p.NodeKey, error) {
	var nk p2p.NodeKey
	if err := cmtjson.Unmarshal(data, &nk); err != nil {
		return nil, errors.NewValidationError("node_key", err.Error(), nil)
	}
	return &nk, nil
}

// ParseValidatorKey reads priv_validator_key.json back.
func ParseValidatorKey(data []byte) (*ValidatorKeyRecord, error) {
	var rec ValidatorKeyRecord
	if err := cmtjson.Unmarshal(data, &rec); err != nil {
		return nil, errors.NewValidationError("priv_validator_key", err.Error(), nil)
	}
	return &rec, nil
}
