package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixelfill/internal/platform/tui"
)

var (
	flagSSHHost     string
	flagSSHPort     int
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the PixelFill SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own sessions, starting at the level picker.
Runs are stored per server under the SSH user name, so all users share
the best runs table.

Host key handling:
  - --host-key, else server.host_key_path from the config
  - The key is generated on first start if the file does not exist

Examples:
  pixelfill serve                           # Listen on the configured address
  pixelfill serve --port 2222               # Listen on port 2222
  pixelfill serve --host-key ./my_host_key  # Use specific host key
  pixelfill serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHHost, "host", "", "Listen host (default from config)")
	serveCmd.Flags().IntVar(&flagSSHPort, "port", 0, "Listen port (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger("pixelfill-ssh")
	cfg := loadConfig()
	if flagSSHHost != "" {
		cfg.Server.Host = flagSSHHost
	}
	if flagSSHPort != 0 {
		cfg.Server.Port = flagSSHPort
	}
	if flagHostKey != "" {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.Server.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	cat := loadCatalog(logger)
	store := openStore(cfg, logger, true)
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(tui.SSHServerOptions{
		Config:  cfg,
		Catalog: cat,
		Store:   store,
		Logger:  logger,
		Theme:   tui.DefaultTheme(),
	})
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting PixelFill SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %d\n", cfg.Server.Port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(context.Background()); err != nil {
		fail("server: %v", err)
	}
}
