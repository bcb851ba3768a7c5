// Package identity derives node identifiers and composes the names and peer
// addresses that tie generated keys to cluster endpoints.
//
// Inputs are not escaped or validated. A group name containing '@', ':' or
// '.' yields an address other tools will misparse; that is the caller's
// problem.
package identity

import (
	"strconv"

	cmtcrypto "github.com/cometbft/cometbft/crypto"
	"github.com/cometbft/cometbft/p2p"
)

// IDLength is the length in hex characters of a node identifier.
const IDLength = 2 * p2p.IDByteLength

// NodeID derives the peer identifier: hex of the first 20 bytes of SHA-256
// over the public key.
func NodeID(pub cmtcrypto.PubKey) p2p.ID {
	return p2p.PubKeyToID(pub)
}

// Host returns <group>-p2p-<index>.<namespace>.<serviceDomain>.
func Host(group string, index int, namespace, serviceDomain string) string {
	return group + "-p2p-" + strconv.Itoa(index) + "." + namespace + "." + serviceDomain
}

// PeerAddress returns <id>@<host>:<port>.
func PeerAddress(id p2p.ID, group string, index int, namespace, serviceDomain string, port uint16) string {
	return string(id) + "@" + Host(group, index, namespace, serviceDomain) + ":" + strconv.Itoa(int(port))
}

// SecretName returns <group>-node-key-<index>.
func SecretName(group string, index int) string {
	return group + "-node-key-" + strconv.Itoa(index)
}

// ValidatorDirName returns <prefix><index>.
func ValidatorDirName(prefix string, index int) string {
	return prefix + strconv.Itoa(index)
}

// Duplicates returns every name that appears more than once, in the order
// of its first repeat.
func Duplicates(names []string) []string {
	seen := make(map[string]int, len(names))
	var dups []string
	for _, name := range names {
		seen[name]++
		if seen[name] == 2 {
			dups = append(dups, name)
		}
	}
	return dups
}
