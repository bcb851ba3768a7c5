package pubkey

import (
	"testing"

	cmted25519 "github.com/cometbft/cometbft/crypto/ed25519"
	"github.com/cometbft/cometbft/crypto/secp256k1"
	cmtjson "github.com/cometbft/cometbft/libs/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeBrosOfficial/keygen/pkg/entropy"
	kgerrors "github.com/DeBrosOfficial/keygen/pkg/errors"
	"github.com/DeBrosOfficial/keygen/pkg/keys"
)

func fixedKey() cmted25519.PubKey {
	raw := make([]byte, cmted25519.PubKeySize)
	for i := range raw {
		raw[i] = byte(i + 1)
	}
	return cmted25519.PubKey(raw)
}

const (
	fixedB64  = "AQIDBAUGBwgJCgsMDQ4PEBESExQVFhcYGRobHB0eHyA="
	fixedJSON = `{"type":"tendermint/PubKeyEd25519","value":"` + fixedB64 + `"}`
)

func TestEncode_FixedKey(t *testing.T) {
	enc, err := Encode(fixedKey())
	require.NoError(t, err)

	assert.Equal(t, TypeEd25519, enc.Type())
	assert.Equal(t, "tendermint/PubKeyEd25519", enc.Type())
	assert.Equal(t, fixedB64, enc.Value())

	data, err := enc.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, fixedJSON, string(data))
	assert.Equal(t, fixedJSON, string(data))
}

func TestEncode_MatchesCometJSON(t *testing.T) {
	gen := keys.NewGenerator(entropy.NewDeterministic([entropy.SeedSize]byte{5}))
	for i := 0; i < 4; i++ {
		kp, err := gen.Generate()
		require.NoError(t, err)

		enc, err := Encode(kp.PublicKey())
		require.NoError(t, err)
		ours, err := enc.MarshalJSON()
		require.NoError(t, err)

		theirs, err := cmtjson.Marshal(kp.PublicKey())
		require.NoError(t, err)
		assert.JSONEq(t, string(theirs), string(ours))
	}
}

func TestEncode_Stable(t *testing.T) {
	a, err := Encode(fixedKey())
	require.NoError(t, err)
	b, err := Encode(fixedKey())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDecode_RoundTrip(t *testing.T) {
	enc, err := Encode(fixedKey())
	require.NoError(t, err)
	data, err := enc.MarshalJSON()
	require.NoError(t, err)

	dec, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, enc, dec)
	assert.True(t, PubKey(dec).Equals(fixedKey()))
	assert.Equal(t, []byte(fixedKey()), dec.Bytes())
}

func TestEncode_Unsupported(t *testing.T) {
	_, err := Encode(secp256k1.GenPrivKey().PubKey())
	require.Error(t, err)
	assert.ErrorIs(t, err, kgerrors.ErrUnsupportedKeyType)
	assert.Equal(t, kgerrors.KindInput, kgerrors.KindOf(err))
}

func TestEncode_WrongLength(t *testing.T) {
	_, err := Encode(cmted25519.PubKey([]byte{1, 2, 3}))
	require.Error(t, err)
	assert.True(t, kgerrors.IsValidation(err))
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"unknown type", `{"type":"tendermint/PubKeySecp256k1","value":"AA=="}`},
		{"bad base64", `{"type":"tendermint/PubKeyEd25519","value":"!!"}`},
		{"short key", `{"type":"tendermint/PubKeyEd25519","value":"AQID"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, kgerrors.IsValidation(err))
		})
	}
}

func TestText(t *testing.T) {
	enc, err := Encode(fixedKey())
	require.NoError(t, err)

	raw, err := Text(enc, false)
	require.NoError(t, err)
	assert.Equal(t, fixedJSON, string(raw))

	quoted, err := Text(enc, true)
	require.NoError(t, err)
	assert.Equal(t,
		`"{\"type\":\"tendermint/PubKeyEd25519\",\"value\":\"`+fixedB64+`\"}"`,
		string(quoted))

	for _, data := range [][]byte{raw, quoted} {
		back, err := ParseText(data)
		require.NoError(t, err)
		assert.Equal(t, enc, back)
	}
}
