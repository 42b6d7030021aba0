// ABOUTME: Roles command for the cyrlab-admin CLI
// ABOUTME: Lists the roles available for assignment

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List available roles",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exit(runRoles(ctx, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

func runRoles(ctx context.Context, w io.Writer) int {
	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	roles, err := e.api.ListRoles(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return userExitCode(err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(roles, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	for _, role := range roles {
		fmt.Fprintf(w, "%-36s  %s\n", role.ID, role.Name)
	}
	return 0
}
