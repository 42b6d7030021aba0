// ABOUTME: Logout command for the cyrlab-admin CLI
// ABOUTME: Invalidates the remote session and clears the stored token

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored token",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exit(runLogout(ctx, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session. It always succeeds once the local token is
// gone, even when the remote call fails.
func runLogout(ctx context.Context, w io.Writer) int {
	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	e.session.Logout(ctx)
	fmt.Fprintln(w, "Signed out")
	return 0
}
