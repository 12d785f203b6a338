package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liberodark/pve-tool/internal/validation"
)

var infoCmd = &cobra.Command{
	Use:   "info <vm>",
	Short: "Show VM information",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
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

	fmt.Println("VM Information:")
	fmt.Printf("  Node: %s\n", status.Node)
	fmt.Printf("  VMID: %d\n", status.VMID)

	if status.Name != nil {
		fmt.Printf("  Name: %s\n", *status.Name)
	}
	if status.Status != nil {
		fmt.Printf("  Status: %s\n", *status.Status)
	}
	if cpu, ok := status.CPUPercent(); ok {
		fmt.Printf("  CPU Usage: %.2f%%\n", cpu)
	}
	if pct, ok := status.MemPercent(); ok {
		fmt.Printf("  Memory: %d MB / %d MB (%.1f%%)\n", *status.Mem/1048576, *status.MaxMem/1048576, pct)
	}

	return nil
}
