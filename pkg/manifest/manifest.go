// Package manifest renders the text printed after a run: a kustomize
// secretGenerator block that packages each node key file as a cluster secret,
// and the comma-joined peer list for persistent_peers.
package manifest

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/DeBrosOfficial/keygen/pkg/errors"
)

// NodeKeyFileName is the key the secret exposes the file under.
const NodeKeyFileName = "node_key.json"

// SecretGenerator is one kustomize secretGenerator entry.
type SecretGenerator struct {
	Name  string   `yaml:"name"`
	Files []string `yaml:"files"`
	Type  string   `yaml:"type"`
}

// GeneratorOptions are the kustomize generatorOptions.
type GeneratorOptions struct {
	DisableNameSuffixHash bool `yaml:"disableNameSuffixHash"`
}

// Kustomization is the fragment printed to stdout.
type Kustomization struct {
	SecretGenerator  []SecretGenerator `yaml:"secretGenerator"`
	GeneratorOptions GeneratorOptions  `yaml:"generatorOptions"`
}

// ValidatorSummary describes one generated validator.
type ValidatorSummary struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	PubKey  string `yaml:"pub_key"`
}

// BuildSecretGenerator maps each secret to its <secret>.json source file.
// Names are used as given; duplicates are not merged.
func BuildSecretGenerator(secretNames []string) Kustomization {
	k := Kustomization{
		SecretGenerator:  make([]SecretGenerator, 0, len(secretNames)),
		GeneratorOptions: GeneratorOptions{DisableNameSuffixHash: true},
	}
	for _, name := range secretNames {
		k.SecretGenerator = append(k.SecretGenerator, SecretGenerator{
			Name:  name,
			Files: []string{NodeKeyFileName + "=" + name + ".json"},
			Type:  "Opaque",
		})
	}
	return k
}

// WriteNodeSummary prints the secretGenerator block, two blank lines, then
// "peers:" and the comma-joined peer addresses.
func WriteNodeSummary(w io.Writer, secretNames, peers []string) error {
	data, err := marshal(BuildSecretGenerator(secretNames))
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "write summary")
	}
	if _, err := fmt.Fprintf(w, "\n\npeers:\n%s\n", strings.Join(peers, ",")); err != nil {
		return errors.Wrap(err, "write summary")
	}
	return nil
}

// WriteValidatorSummary prints a YAML list of the generated validators.
func WriteValidatorSummary(w io.Writer, validators []ValidatorSummary) error {
	data, err := marshal(map[string][]ValidatorSummary{"validators": validators})
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "write summary")
	}
	return nil
}

func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, errors.NewSerializationError("summary", err)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.NewSerializationError("summary", err)
	}
	return buf.Bytes(), nil
}
