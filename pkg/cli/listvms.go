package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/liberodark/pve-tool/pkg/utils"
)

var listVMsNode string

var listVMsCmd = &cobra.Command{
	Use:   "list-vms",
	Short: "List virtual machines in the cluster",
	RunE:  runListVMs,
}

func init() {
	listVMsCmd.Flags().StringVarP(&listVMsNode, "node", "N", "", "only show VMs on this node")
}

func runListVMs(cmd *cobra.Command, args []string) error {
	c, err := connect(cmd.Context())
	if err != nil {
		return err
	}

	vms, err := newManager(c).VMs(cmd.Context(), listVMsNode)
	if err != nil {
		return err
	}

	if len(vms) == 0 {
		fmt.Println("No VMs found")
		return nil
	}

	fmt.Println("VMs in cluster:")
	table := utils.NewTable("VMID", "NAME", "NODE", "STATUS")
	for _, vm := range vms {
		table.AddRow(strconv.Itoa(vm.VMID), vm.Name, vm.Node, vm.Status)
	}
	table.Render()

	return nil
}
