package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liberodark/pve-tool/pkg/proxmox/cluster"
)

var listNodesCmd = &cobra.Command{
	Use:   "list-nodes",
	Short: "List cluster nodes",
	RunE:  runListNodes,
}

func runListNodes(cmd *cobra.Command, args []string) error {
	c, err := connect(cmd.Context())
	if err != nil {
		return err
	}

	nodes, err := cluster.NewManager(c).Nodes(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println("Cluster nodes:")
	for _, node := range nodes {
		fmt.Printf("- %s (%s)\n", node.Name, node.Status)
	}

	return nil
}
