package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the connection to the cluster",
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	c, err := connect(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println("Testing connection to Proxmox server...")

	version, err := c.Version(cmd.Context())
	if err != nil {
		fmt.Printf("✗ Connection failed: %v\n", err)
		return err
	}

	fmt.Println("✓ Connection successful!")
	if version.Version != "" {
		fmt.Printf("  Proxmox VE version: %s\n", version.Version)
	}

	return nil
}
