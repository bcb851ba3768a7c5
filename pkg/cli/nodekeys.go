package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/keygen/pkg/config"
	"github.com/DeBrosOfficial/keygen/pkg/generator"
	"github.com/DeBrosOfficial/keygen/pkg/logging"
	"github.com/DeBrosOfficial/keygen/pkg/manifest"
	"github.com/DeBrosOfficial/keygen/pkg/plan"
)

var nodeKeysFlagKeys = map[string]string{
	"directory":             "node_keys.directory",
	"group_prefix_list":     "node_keys.group_prefix_list",
	"global_node_per_group": "node_keys.global_node_per_group",
	"svc_domain":            "node_keys.svc_domain",
	"namespace":             "node_keys.namespace",
	"port":                  "node_keys.port",
}

func newNodeKeysCmd(env *environment) *cobra.Command {
	def := config.Default().NodeKeys

	cmd := &cobra.Command{
		Use:   "node-keys",
		Short: "Generate node keys and print the secretGenerator block and peer list",
		Long: "Generates one CometBFT node_key.json per node slot. Groups come from " +
			"--group_prefix_list as name or name:count tokens. The peer list addresses each " +
			"node as <id>@<group>-p2p-<index>.<namespace>.<svc_domain>:<port>.",
		Example: "  keygen node-keys -g val:1,full:3 -N my-chain -d out/node_keys",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNodeKeys(env, cmd)
		},
	}

	f := cmd.Flags()
	f.StringP("directory", "d", def.Directory, "output directory for node key files")
	f.StringP("group_prefix_list", "g", def.GroupPrefixList, `comma-separated groups, "name" or "name:count"`)
	f.IntP("global_node_per_group", "n", def.NodesPerGroup, "node count for groups without an explicit count")
	f.StringP("svc_domain", "s", def.ServiceDomain, "cluster service domain")
	f.StringP("namespace", "N", def.Namespace, "Kubernetes namespace of the nodes")
	f.IntP("port", "p", def.Port, "P2P port used in peer addresses")

	return cmd
}

func runNodeKeys(env *environment, cmd *cobra.Command) error {
	r, err := startRun(env, cmd, nodeKeysFlagKeys, (*config.Config).ValidateNodeKeys)
	if err != nil {
		return err
	}
	nk := r.cfg.NodeKeys

	groups, err := plan.Parse(nk.GroupPrefixList, nk.NodesPerGroup)
	if err != nil {
		return r.finish(env, err)
	}
	r.logger.ComponentInfo(logging.ComponentPlanner, "planned node keys",
		zap.Int("groups", len(groups)),
		zap.Int("total", plan.Total(groups)),
	)

	res, err := r.gen.NodeKeys(generator.NodeKeyOptions{
		Directory:     nk.Directory,
		Groups:        groups,
		Namespace:     nk.Namespace,
		ServiceDomain: nk.ServiceDomain,
		Port:          uint16(nk.Port),
	})
	if err != nil {
		return r.finish(env, err)
	}

	err = manifest.WriteNodeSummary(env.streams.Out, res.SecretNames(), res.Peers())
	return r.finish(env, err)
}
