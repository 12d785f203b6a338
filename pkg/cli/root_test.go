package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandSurface(t *testing.T) {
	expected := []string{
		"create", "delete", "list", "rollback",
		"info", "check", "test", "list-vms", "list-nodes",
	}

	for _, name := range expected {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, "subcommand %s", name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestRootHelp(t *testing.T) {
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Proxmox VE snapshot management tool")
	assert.Contains(t, buf.String(), "Usage:")
}

func TestPersistentConnectionFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	for flag, shorthand := range map[string]string{
		"config":     "c",
		"host":       "H",
		"port":       "p",
		"node":       "n",
		"token":      "t",
		"verify-ssl": "k",
	} {
		f := flags.Lookup(flag)
		require.NotNil(t, f, "flag %s", flag)
		assert.Equal(t, shorthand, f.Shorthand, "flag %s", flag)
	}

	assert.NotNil(t, flags.Lookup("cluster"))
	assert.NotNil(t, flags.Lookup("task-timeout"))
}

func TestCreateFlags(t *testing.T) {
	flags := createCmd.Flags()

	for flag, shorthand := range map[string]string{
		"snapname":    "s",
		"description": "d",
		"vmstate":     "m",
	} {
		f := flags.Lookup(flag)
		require.NotNil(t, f, "flag %s", flag)
		assert.Equal(t, shorthand, f.Shorthand, "flag %s", flag)
	}
}

func TestListVMsNodeFilterFlag(t *testing.T) {
	f := listVMsCmd.Flags().Lookup("node")
	require.NotNil(t, f)
	assert.Equal(t, "N", f.Shorthand)
}

func TestConnectRequiresToken(t *testing.T) {
	t.Setenv("PROXMOX_API_TOKEN", "")

	_, err := connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API token is required")
}
