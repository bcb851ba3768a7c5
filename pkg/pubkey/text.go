package pubkey

import (
	"encoding/json"

	"github.com/DeBrosOfficial/keygen/pkg/errors"
)

// Text renders the pubkey.txt export. With quoted set, the tagged JSON is
// encoded once more as a JSON string, which is the layout existing
// consumers of pubkey.txt were built against.
func Text(e Encoded, quoted bool) ([]byte, error) {
	data, err := e.MarshalJSON()
	if err != nil {
		return nil, errors.NewSerializationError("public key", err)
	}
	if !quoted {
		return data, nil
	}
	data, err = json.Marshal(string(data))
	if err != nil {
		return nil, errors.NewSerializationError("public key", err)
	}
	return data, nil
}

// ParseText reads either form written by Text.
func ParseText(data []byte) (Encoded, error) {
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, errors.NewValidationError("pubkey.txt", err.Error(), nil)
		}
		data = []byte(inner)
	}
	return Decode(data)
}
