// ABOUTME: Whoami command for the cyrlab-admin CLI
// ABOUTME: Validates the stored token and prints the current identity

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently signed-in user",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exit(runWhoami(ctx, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami resolves the session from the stored token: 0 when signed in,
// 1 when anonymous, 2 on any other error.
func runWhoami(ctx context.Context, w io.Writer) int {
	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := e.session.Bootstrap(ctx); err != nil {
		// An invalid token means anonymous, not failure
		fmt.Fprintln(w, "Not signed in")
		return 1
	}

	user := e.session.User()
	if user == nil {
		fmt.Fprintln(w, "Not signed in")
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "User:  %s\n", user.UserName)
	if user.FullName != "" {
		fmt.Fprintf(w, "Name:  %s\n", user.FullName)
	}
	fmt.Fprintf(w, "Email: %s\n", user.Email)
	fmt.Fprintf(w, "Roles: %s\n", strings.Join(user.Roles, ", "))
	return 0
}
