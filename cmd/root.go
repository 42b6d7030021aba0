// ABOUTME: Root command for the cyrlab-admin CLI
// ABOUTME: Handles global flags, shared wiring, and launching the TUI

package cmd

import (
	"context"
	"os"

	"github.com/egl-devs/cyrlab-admin/internal/client"
	"github.com/egl-devs/cyrlab-admin/internal/config"
	"github.com/egl-devs/cyrlab-admin/internal/debuglog"
	"github.com/egl-devs/cyrlab-admin/internal/session"
	"github.com/egl-devs/cyrlab-admin/internal/tokenstore"
	"github.com/egl-devs/cyrlab-admin/internal/tui"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

// env bundles the shared wiring every command needs.
type env struct {
	cfg     *config.Config
	tokens  *tokenstore.Store
	api     *client.Client
	session *session.Manager
}

// rootCmd is the base command. Without a subcommand it launches the TUI.
var rootCmd = &cobra.Command{
	Use:   "cyrlab-admin",
	Short: "Terminal client for the CyrLab admin dashboard",
	Long: `cyrlab-admin is a terminal client for the CyrLab administration API.

Run it without arguments for the interactive dashboard, or use the
subcommands for scripting.

Environment Variables:
  CYRLAB_API_URL          Backend API URL (default: http://localhost:5115)
  CYRLAB_PAGE_SIZE        Users per page in the list view (default: 10)
  CYRLAB_SEARCH_DEBOUNCE  Search quiet period (default: 300ms)
  CYRLAB_LOG_LEVEL        Debug log level (default: info)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer debuglog.Close()
		return tui.Run(e.api, e.session, e.cfg)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides CYRLAB_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// newEnv loads configuration and wires the client stack. The --api-url flag
// wins over the environment.
func newEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}

	configDir := config.ConfigDir()
	if err := debuglog.Init(configDir, cfg.LogLevel); err != nil {
		// A broken debug log never blocks the client
		debuglog.Close()
	}

	tokens := tokenstore.New(configDir)
	api := client.New(cfg.APIURL, tokens, cfg.HTTPTimeout)

	return &env{
		cfg:     cfg,
		tokens:  tokens,
		api:     api,
		session: session.New(api, tokens),
	}, nil
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// exit terminates the process with the given code unless it is zero.
func exit(code int) {
	if code != 0 {
		os.Exit(code)
	}
}
