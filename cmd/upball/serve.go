package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/upball/internal/logging"
	"github.com/vovakirdan/upball/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagSavesDir    string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Upball SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH user gets their own game and progress file under --saves.
Run history is stored per-server in the --db database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.upball/host_key

Examples:
  upball serve                           # Listen on :23234 with auto-generated key
  upball serve --ssh :2222               # Listen on port 2222
  upball serve --host-key ./my_host_key  # Use specific host key
  upball serve --saves ./saves           # Keep player saves elsewhere

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagSavesDir, "saves", envDefaults.SavesDir, "Directory of per-player save files")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.SavesDir = flagSavesDir
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Game = loadGameConfig()
	cfg.FPS = flagFPS
	cfg.Logger = logging.New(os.Stderr, "upball-ssh", logging.ParseLevel(flagLogLevel))

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Upball SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
