package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeBrosOfficial/keygen/pkg/errors"
	"github.com/DeBrosOfficial/keygen/pkg/keys"
	"github.com/DeBrosOfficial/keygen/pkg/pubkey"
)

func execute(t *testing.T, fs afero.Fs, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Execute(args, Streams{Out: &out, Err: &errOut}, WithFs(fs))
	return code, out.String(), errOut.String()
}

func peersFrom(t *testing.T, stdout string) []string {
	t.Helper()
	parts := strings.SplitN(stdout, "\n\n\npeers:\n", 2)
	require.Len(t, parts, 2, "summary must contain the peers section: %q", stdout)
	line := strings.TrimSuffix(parts[1], "\n")
	if line == "" {
		return nil
	}
	return strings.Split(line, ",")
}

func TestNodeKeys_EndToEnd(t *testing.T) {
	fs := afero.NewMemMapFs()
	code, stdout, stderr := execute(t, fs, "node-keys",
		"-d", "out",
		"-g", "a,b:3,c:0",
		"-n", "2",
		"-N", "ns",
		"-s", "svc.local",
		"-p", "26656",
		"--no-color",
	)
	require.Equal(t, errors.ExitOK, code, stderr)

	assert.True(t, strings.HasPrefix(stdout, "secretGenerator:\n"), stdout)
	assert.Contains(t, stdout, "node_key.json=b-node-key-2.json")
	assert.Contains(t, stdout, "disableNameSuffixHash: true")
	assert.NotContains(t, stdout, "c-node-key")

	peers := peersFrom(t, stdout)
	require.Len(t, peers, 5)
	want := []string{"a-p2p-0", "a-p2p-1", "b-p2p-0", "b-p2p-1", "b-p2p-2"}
	for i, p := range peers {
		re := regexp.MustCompile(`^[0-9a-f]{40}@` + want[i] + `\.ns\.svc\.local:26656$`)
		assert.Regexp(t, re, p)

		id := p[:40]
		data, err := afero.ReadFile(fs, filepath.Join("out", strings.Replace(want[i], "-p2p-", "-node-key-", 1)+".json"))
		require.NoError(t, err)
		nk, err := keys.ParseNodeKey(data)
		require.NoError(t, err)
		assert.Equal(t, id, string(nk.ID()))
	}

	assert.Contains(t, stderr, "run_id")
	assert.NotContains(t, stdout, "run_id", "logs must not leak into stdout")
}

func TestNodeKeys_EmptyGroupList(t *testing.T) {
	fs := afero.NewMemMapFs()
	code, stdout, stderr := execute(t, fs, "node-keys", "-d", "empty")
	require.Equal(t, errors.ExitOK, code, stderr)

	assert.Empty(t, peersFrom(t, stdout))
	ok, err := afero.DirExists(fs, "empty")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNodeKeys_InputErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"malformed count", []string{"-g", "a:x"}},
		{"too many parts", []string{"-g", "a:1:2"}},
		{"negative default", []string{"-g", "a", "-n", "-1"}},
		{"huge default", []string{"-g", "a,b,c", "-n", "4611686018427387904"}},
		{"huge count", []string{"-g", "a:99999999999"}},
		{"total over limit", []string{"-g", "a:60000,b:60000"}},
		{"port zero", []string{"-g", "a", "-p", "0"}},
		{"port too high", []string{"-g", "a", "-p", "70000"}},
		{"empty namespace", []string{"-g", "a", "-N", ""}},
		{"unknown flag", []string{"--bogus"}},
		{"non numeric flag", []string{"-n", "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			args := append([]string{"node-keys", "-d", "out"}, tt.args...)
			code, stdout, stderr := execute(t, fs, args...)

			assert.Equal(t, errors.ExitInput, code)
			assert.Empty(t, stdout)
			assert.True(t, strings.HasPrefix(stderr, "Error: "), stderr)

			exists, err := afero.Exists(fs, "out")
			require.NoError(t, err)
			assert.False(t, exists, "nothing is written on input errors")
		})
	}
}

func TestNodeKeys_ReadOnlyFilesystem(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	code, stdout, stderr := execute(t, fs, "node-keys", "-g", "a:1", "--no-color")

	assert.Equal(t, errors.ExitFilesystem, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error: ")
}

func TestNodeKeys_FailureDetailAtDebug(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	code, _, stderr := execute(t, fs, "node-keys", "-g", "a:1", "--log-level", "debug", "--log-format", "json")

	assert.Equal(t, errors.ExitFilesystem, code)
	assert.Contains(t, stderr, `"code":`)
	assert.Contains(t, stderr, "failure detail")
	assert.Contains(t, stderr, `"stack":`)
}

func TestNodeKeys_LogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "keygen.log")

	code, stdout, stderr := execute(t, afero.NewOsFs(), "node-keys",
		"-d", filepath.Join(dir, "out"),
		"-g", "a:1",
		"--log-file", logPath,
	)
	require.Equal(t, errors.ExitOK, code, stderr)
	assert.NotEmpty(t, stdout)
	assert.Empty(t, stderr)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "generation finished")
}

func TestNodeKeys_EnvironmentOverride(t *testing.T) {
	t.Setenv("KEYGEN_NODE_KEYS_NAMESPACE", "from-env")

	code, stdout, stderr := execute(t, afero.NewMemMapFs(), "node-keys", "-g", "val:1")
	require.Equal(t, errors.ExitOK, code, stderr)

	peers := peersFrom(t, stdout)
	require.Len(t, peers, 1)
	assert.True(t, strings.HasSuffix(peers[0], "@val-p2p-0.from-env.svc.cluster.local:26656"), peers[0])
}

func TestNodeKeys_ConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/keygen.yaml", []byte(`
node_keys:
  group_prefix_list: "seed:1"
  namespace: cfg-ns
  port: 30000
`), 0o600))

	code, stdout, stderr := execute(t, fs, "node-keys", "--config", "/keygen.yaml", "-p", "30001")
	require.Equal(t, errors.ExitOK, code, stderr)

	peers := peersFrom(t, stdout)
	require.Len(t, peers, 1)
	assert.True(t, strings.HasSuffix(peers[0], "@seed-p2p-0.cfg-ns.svc.cluster.local:30001"), peers[0])
}

func TestNodeKeys_MetricsTextfile(t *testing.T) {
	prom := filepath.Join(t.TempDir(), "keygen.prom")

	code, _, stderr := execute(t, afero.NewMemMapFs(), "node-keys", "-g", "a:2", "--metrics-textfile", prom)
	require.Equal(t, errors.ExitOK, code, stderr)

	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), `keygen_keys_generated_total{kind="node"} 2`)
	assert.Contains(t, string(data), "keygen_files_written_total 2")
}

func TestValidators_EndToEnd(t *testing.T) {
	fs := afero.NewMemMapFs()
	code, stdout, stderr := execute(t, fs, "validators", "-d", "vals", "--prefix", "v", "--num", "3")
	require.Equal(t, errors.ExitOK, code, stderr)

	assert.True(t, strings.HasPrefix(stdout, "validators:\n"), stdout)
	for i := 0; i < 3; i++ {
		dir := filepath.Join("vals", fmt.Sprintf("v%d", i))
		assert.Contains(t, stdout, fmt.Sprintf("name: v%d", i))

		data, err := afero.ReadFile(fs, filepath.Join(dir, "priv_validator_key.json"))
		require.NoError(t, err)
		rec, err := keys.ParseValidatorKey(data)
		require.NoError(t, err)
		assert.Contains(t, stdout, rec.Address.String())

		text, err := afero.ReadFile(fs, filepath.Join(dir, "pubkey.txt"))
		require.NoError(t, err)
		assert.Equal(t, byte('"'), text[0], "pubkey.txt is quoted by default")
		enc, err := pubkey.ParseText(text)
		require.NoError(t, err)
		assert.Equal(t, rec.PubKey.Bytes(), enc.Bytes())
	}
}

func TestValidators_Defaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	code, _, stderr := execute(t, fs, "validators", "--pubkey-quoted=false", "--mnemonic-backup")
	require.Equal(t, errors.ExitOK, code, stderr)

	dir := filepath.Join("validator_keys", "validator-0")
	text, err := afero.ReadFile(fs, filepath.Join(dir, "pubkey.txt"))
	require.NoError(t, err)
	assert.Equal(t, byte('{'), text[0])

	exists, err := afero.Exists(fs, filepath.Join(dir, "mnemonic.txt"))
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = afero.Exists(fs, filepath.Join("validator_keys", "validator-1"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestValidators_NegativeCount(t *testing.T) {
	code, _, stderr := execute(t, afero.NewMemMapFs(), "validators", "--num", "-2")
	assert.Equal(t, errors.ExitInput, code)
	assert.Contains(t, stderr, "validators.num")
}

func TestValidators_IgnoresNodeKeysSection(t *testing.T) {
	t.Setenv("KEYGEN_NODE_KEYS_PORT", "0")
	t.Setenv("KEYGEN_NODE_KEYS_GROUP_PREFIX_LIST", "a:x")

	code, stdout, stderr := execute(t, afero.NewMemMapFs(), "validators", "--num", "1")
	require.Equal(t, errors.ExitOK, code, stderr)
	assert.Contains(t, stdout, "name: validator-0")

	code, _, stderr = execute(t, afero.NewMemMapFs(), "node-keys", "-g", "a:1")
	assert.Equal(t, errors.ExitInput, code)
	assert.Contains(t, stderr, "node_keys.port")
}

func TestValidators_HugeCount(t *testing.T) {
	fs := afero.NewMemMapFs()
	code, stdout, stderr := execute(t, fs, "validators", "--num", "4611686018427387904")
	assert.Equal(t, errors.ExitInput, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "validators.num")

	exists, err := afero.Exists(fs, "validator_keys")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestVersion(t *testing.T) {
	code, stdout, _ := execute(t, afero.NewMemMapFs(), "version")
	assert.Equal(t, errors.ExitOK, code)
	assert.True(t, strings.HasPrefix(stdout, "keygen dev"), stdout)
}
