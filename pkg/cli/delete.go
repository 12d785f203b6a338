package cli

import (
	"github.com/spf13/cobra"

	"github.com/liberodark/pve-tool/internal/validation"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <vm> <snapname>",
	Short: "Delete a VM snapshot",
	Args:  cobra.ExactArgs(2),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	vm, snapname := args[0], args[1]
	if err := validation.ValidateVMIdentifier(vm); err != nil {
		return err
	}
	if err := validation.ValidateSnapshotName(snapname); err != nil {
		return err
	}

	c, err := connect(cmd.Context())
	if err != nil {
		return err
	}

	return newManager(c).Delete(cmd.Context(), vm, snapname)
}
