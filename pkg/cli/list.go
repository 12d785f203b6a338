package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liberodark/pve-tool/internal/validation"
)

var listCmd = &cobra.Command{
	Use:   "list <vm>",
	Short: "List VM snapshots",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	vm := args[0]
	if err := validation.ValidateVMIdentifier(vm); err != nil {
		return err
	}

	c, err := connect(cmd.Context())
	if err != nil {
		return err
	}

	result, err := newManager(c).List(cmd.Context(), vm)
	if err != nil {
		return err
	}

	fmt.Printf("Snapshots for VM %d on node %s:\n", result.VMID, result.Node)
	for _, snap := range result.Snapshots {
		description := snap.Description
		if description == "" {
			description = "No description"
		}
		fmt.Printf("- %s [%s] (Created: %s)\n", snap.Name, description, snap.FormattedTime())
	}

	return nil
}
