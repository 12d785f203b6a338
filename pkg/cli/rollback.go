package cli

import (
	"github.com/spf13/cobra"

	"github.com/liberodark/pve-tool/internal/validation"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback <vm> <snapname>",
	Short: "Roll back a VM to a snapshot",
	Long: `Roll back a virtual machine to a snapshot.

The VM is restored to the exact state captured by the snapshot. The
server-side task is polled until it finishes.`,
	Args: cobra.ExactArgs(2),
	RunE: runRollback,
}

func runRollback(cmd *cobra.Command, args []string) error {
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

	return newManager(c).Rollback(cmd.Context(), vm, snapname)
}
