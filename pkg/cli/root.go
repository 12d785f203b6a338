package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/liberodark/pve-tool/pkg/audit"
	"github.com/liberodark/pve-tool/pkg/config"
	"github.com/liberodark/pve-tool/pkg/proxmox/client"
	"github.com/liberodark/pve-tool/pkg/proxmox/snapshot"
	"github.com/liberodark/pve-tool/pkg/proxmox/task"
)

var (
	cfgFile     string
	clusterName string
	taskTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "pve-tool",
	Short: "Proxmox VE snapshot management tool",
	Long: `pve-tool is a Proxmox VE snapshot management tool: it creates,
lists, deletes, and rolls back QEMU VM snapshots on a cluster, plus
basic inventory queries (nodes, VMs, VM status).`,
	SilenceUsage: true,
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "path to configuration file")
	flags.StringP("host", "H", "192.168.1.1", "API host (host or host:port)")
	flags.IntP("port", "p", 8006, "API port")
	flags.StringP("node", "n", "", "default node")
	flags.StringP("token", "t", "", "API token (user@realm!name=secret)")
	flags.BoolP("verify-ssl", "k", false, "verify TLS certificates")
	flags.StringVar(&clusterName, "cluster", "", "named cluster from the config file")
	flags.DurationVar(&taskTimeout, "task-timeout", 0, "abort waiting for a task after this duration (0 waits forever)")

	_ = viper.BindPFlag("host", flags.Lookup("host"))
	_ = viper.BindPFlag("port", flags.Lookup("port"))
	_ = viper.BindPFlag("node", flags.Lookup("node"))
	_ = viper.BindPFlag("token", flags.Lookup("token"))
	_ = viper.BindPFlag("verify_ssl", flags.Lookup("verify-ssl"))

	_ = viper.BindEnv("host", "PROXMOX_HOST")
	_ = viper.BindEnv("port", "PROXMOX_PORT")
	_ = viper.BindEnv("node", "PROXMOX_NODE")
	_ = viper.BindEnv("token", "PROXMOX_API_TOKEN")
	_ = viper.BindEnv("verify_ssl", "PROXMOX_VERIFY_SSL")

	rootCmd.AddCommand(
		createCmd,
		deleteCmd,
		listCmd,
		rollbackCmd,
		infoCmd,
		checkCmd,
		testCmd,
		listVMsCmd,
		listNodesCmd,
	)
}

// connect resolves the connection settings (flag > environment > config
// file > default) and builds a client, probing the host list in order
// when a multi-host cluster is selected.
func connect(ctx context.Context) (*client.Client, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	cc, ok := cfg.Cluster(clusterName)
	if clusterName != "" && !ok {
		return nil, fmt.Errorf("cluster '%s' not found in config file", clusterName)
	}

	// Config-file values participate as defaults below flags and env.
	if cfg.Node != "" {
		viper.SetDefault("node", cfg.Node)
	}
	if ok {
		if len(cc.Hosts) == 1 {
			viper.SetDefault("host", cc.Hosts[0])
		}
		if cc.Port != 0 {
			viper.SetDefault("port", cc.Port)
		}
		if cc.Token != "" {
			viper.SetDefault("token", cc.Token)
		}
		if cc.VerifySSL != nil {
			viper.SetDefault("verify_ssl", *cc.VerifySSL)
		}
	}

	token := viper.GetString("token")
	if token == "" {
		return nil, errors.New("API token is required. Set PROXMOX_API_TOKEN, use -t, or add to config file")
	}

	port := viper.GetInt("port")
	verifySSL := viper.GetBool("verify_ssl")

	if ok && len(cc.Hosts) > 1 {
		return client.NewWithFallback(ctx, cc.Hosts, port, token, verifySSL)
	}
	return client.New(viper.GetString("host"), port, token, verifySSL), nil
}

// newManager wires the operation façade with the configured task timeout
// and a best-effort audit trail.
func newManager(c *client.Client) *snapshot.Manager {
	waiter := task.NewWaiter(c)
	waiter.Timeout = taskTimeout

	var auditor *audit.Logger
	if path := audit.DefaultPath(); path != "" {
		if l, err := audit.Open(path); err == nil {
			auditor = l
		}
	}

	return snapshot.NewManager(c, snapshot.WithWaiter(waiter), snapshot.WithAudit(auditor))
}
