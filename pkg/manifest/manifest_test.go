package manifest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBuildSecretGenerator(t *testing.T) {
	k := BuildSecretGenerator([]string{"val-node-key-0", "val-node-key-1"})

	require.Len(t, k.SecretGenerator, 2)
	assert.Equal(t, SecretGenerator{
		Name:  "val-node-key-0",
		Files: []string{"node_key.json=val-node-key-0.json"},
		Type:  "Opaque",
	}, k.SecretGenerator[0])
	assert.True(t, k.GeneratorOptions.DisableNameSuffixHash)
}

func TestWriteNodeSummary(t *testing.T) {
	var buf bytes.Buffer
	secrets := []string{"val-node-key-0", "sentry-node-key-0"}
	peers := []string{
		"aa@val-p2p-0.ns.svc.cluster.local:26656",
		"bb@sentry-p2p-0.ns.svc.cluster.local:26656",
	}
	require.NoError(t, WriteNodeSummary(&buf, secrets, peers))
	out := buf.String()

	parts := strings.SplitN(out, "\n\n\npeers:\n", 2)
	require.Len(t, parts, 2, out)

	var k Kustomization
	require.NoError(t, yaml.Unmarshal([]byte(parts[0]), &k))
	assert.Equal(t, BuildSecretGenerator(secrets), k)

	assert.Equal(t, strings.Join(peers, ",")+"\n", parts[1])

	assert.True(t, strings.HasPrefix(out, "secretGenerator:\n  - name: val-node-key-0\n"), out)
	assert.Contains(t, out, "      - node_key.json=val-node-key-0.json\n")
	assert.Contains(t, out, "    type: Opaque\n")
	assert.Contains(t, out, "generatorOptions:\n  disableNameSuffixHash: true\n")
}

func TestWriteNodeSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNodeSummary(&buf, nil, nil))
	assert.True(t, strings.HasPrefix(buf.String(), "secretGenerator: []\n"), buf.String())
	assert.True(t, strings.HasSuffix(buf.String(), "\n\npeers:\n\n"))

	var k Kustomization
	require.NoError(t, yaml.Unmarshal(buf.Bytes()[:strings.Index(buf.String(), "\n\n\npeers:")], &k))
	assert.Empty(t, k.SecretGenerator)
	assert.True(t, k.GeneratorOptions.DisableNameSuffixHash)
}

func TestWriteValidatorSummary(t *testing.T) {
	var buf bytes.Buffer
	in := []ValidatorSummary{
		{Name: "v0", Address: "21FE31DFA154A261626BF854046FD2271B7BED4B", PubKey: "11qYAYKxCrfVS/7TyWQHOg7hcvPapiMlrwIaaPcHURo="},
	}
	require.NoError(t, WriteValidatorSummary(&buf, in))

	var out map[string][]ValidatorSummary
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, in, out["validators"])
}
