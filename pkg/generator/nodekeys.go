package generator

import (
	"strings"
	"time"

	"github.com/cometbft/cometbft/p2p"
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/keygen/pkg/errors"
	"github.com/DeBrosOfficial/keygen/pkg/identity"
	"github.com/DeBrosOfficial/keygen/pkg/keys"
	"github.com/DeBrosOfficial/keygen/pkg/logging"
	"github.com/DeBrosOfficial/keygen/pkg/metrics"
	"github.com/DeBrosOfficial/keygen/pkg/plan"
)

// NodeKeyOptions describe a node key run.
type NodeKeyOptions struct {
	Directory     string
	Groups        []plan.Group
	Namespace     string
	ServiceDomain string
	Port          uint16
}

// NodeKeyEntry is one generated node key.
type NodeKeyEntry struct {
	Group       string
	Index       int
	SecretName  string
	NodeID      p2p.ID
	PeerAddress string
	Path        string
}

// NodeKeyResult lists node keys in generation order.
type NodeKeyResult struct {
	Entries []NodeKeyEntry
}

// SecretNames returns the secret names in order.
func (r *NodeKeyResult) SecretNames() []string {
	names := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		names[i] = e.SecretName
	}
	return names
}

// Peers returns the peer addresses in order.
func (r *NodeKeyResult) Peers() []string {
	peers := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		peers[i] = e.PeerAddress
	}
	return peers
}

// NodeKeys generates one node key per planned slot and writes it to
// <Directory>/<secret>.json.
func (g *Generator) NodeKeys(opts NodeKeyOptions) (*NodeKeyResult, error) {
	if strings.TrimSpace(opts.Directory) == "" {
		return nil, errors.NewValidationError("directory", "must not be empty", opts.Directory)
	}

	if err := plan.Check(opts.Groups); err != nil {
		return nil, err
	}

	slots := plan.Enumerate(opts.Groups)
	g.warnDuplicates(slots)

	if err := g.mkdir(opts.Directory); err != nil {
		return nil, err
	}

	result := &NodeKeyResult{Entries: make([]NodeKeyEntry, 0, len(slots))}
	for _, slot := range slots {
		entry, err := g.nodeKey(opts, slot)
		if err != nil {
			return result, err
		}
		result.Entries = append(result.Entries, *entry)
	}

	g.logger.ComponentInfo(logging.ComponentKeygen, "node keys generated",
		zap.Int("count", len(result.Entries)),
		zap.Int("groups", len(opts.Groups)),
		zap.String("directory", opts.Directory),
	)
	return result, nil
}

func (g *Generator) nodeKey(opts NodeKeyOptions, slot plan.Slot) (*NodeKeyEntry, error) {
	started := time.Now()
	secret := identity.SecretName(slot.Group, slot.Index)

	kp, err := g.keys.Generate()
	if err != nil {
		return nil, errors.Wrapf(err, "generate node key %s", secret)
	}

	id := identity.NodeID(kp.PublicKey())
	entry := &NodeKeyEntry{
		Group:       slot.Group,
		Index:       slot.Index,
		SecretName:  secret,
		NodeID:      id,
		PeerAddress: identity.PeerAddress(id, slot.Group, slot.Index, opts.Namespace, opts.ServiceDomain, opts.Port),
		Path:        joinPath(opts.Directory, secret+".json"),
	}

	data, err := keys.MarshalNodeKey(kp)
	if err != nil {
		return nil, err
	}
	if err := g.writeFile(entry.Path, data); err != nil {
		return nil, err
	}

	g.metrics.ObserveKey(metrics.KindNode, started)
	g.logger.ComponentDebug(logging.ComponentKeygen, "generated node key",
		zap.String("secret", secret),
		zap.String("node_id", string(id)),
	)
	return entry, nil
}

func (g *Generator) warnDuplicates(slots []plan.Slot) {
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = identity.SecretName(s.Group, s.Index)
	}
	if dups := identity.Duplicates(names); len(dups) > 0 {
		g.logger.ComponentWarn(logging.ComponentPlanner, "duplicate secret names; later keys overwrite earlier files",
			zap.Strings("names", dups),
		)
	}
}
