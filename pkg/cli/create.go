package cli

import (
	"github.com/spf13/cobra"

	"github.com/liberodark/pve-tool/internal/validation"
	"github.com/liberodark/pve-tool/pkg/proxmox/snapshot"
)

var createFlags struct {
	snapname    string
	description string
	vmstate     bool
}

var createCmd = &cobra.Command{
	Use:   "create <vm>",
	Short: "Create a VM snapshot",
	Long: `Create a snapshot of a virtual machine identified by vmid or name.

Without --snapname a timestamp-derived name is generated. With --vmstate
the VM memory and device state is included in the snapshot.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createFlags.snapname, "snapname", "s", "", "snapshot name (default: snapshot-<timestamp>)")
	createCmd.Flags().StringVarP(&createFlags.description, "description", "d", "", "snapshot description")
	createCmd.Flags().BoolVarP(&createFlags.vmstate, "vmstate", "m", false, "include VM memory state in the snapshot")
}

func runCreate(cmd *cobra.Command, args []string) error {
	vm := args[0]
	if err := validation.ValidateVMIdentifier(vm); err != nil {
		return err
	}
	if createFlags.snapname != "" {
		if err := validation.ValidateSnapshotName(createFlags.snapname); err != nil {
			return err
		}
	}

	c, err := connect(cmd.Context())
	if err != nil {
		return err
	}

	return newManager(c).Create(cmd.Context(), vm, snapshot.CreateOptions{
		Name:        createFlags.snapname,
		Description: createFlags.description,
		VMState:     createFlags.vmstate,
	})
}
