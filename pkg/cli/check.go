package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liberodark/pve-tool/internal/validation"
)

var checkCmd = &cobra.Command{
	Use:   "check <vm>",
	Short: "Check VM status",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	vm := args[0]
	if err := validation.ValidateVMIdentifier(vm); err != nil {
		return err
	}

	c, err := connect(cmd.Context())
	if err != nil {
		return err
	}

	status, err := newManager(c).Status(cmd.Context(), vm)
	if err != nil {
		return err
	}

	name := "Unknown"
	if status.Name != nil {
		name = *status.Name
	}
	state := "unknown"
	if status.Status != nil {
		state = *status.Status
	}

	fmt.Printf("VM ID: %d\n", status.VMID)
	fmt.Printf("Name: %s\n", name)
	fmt.Printf("Node: %s\n", status.Node)
	fmt.Printf("Status: %s\n", state)

	if days, hours, minutes, ok := status.UptimeParts(); ok {
		fmt.Printf("Uptime: %dd %dh %dm\n", days, hours, minutes)
	}

	return nil
}
