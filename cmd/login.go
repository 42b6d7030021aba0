// ABOUTME: Login command for the cyrlab-admin CLI
// ABOUTME: Signs in against the remote API and persists the issued token

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/egl-devs/cyrlab-admin/internal/client"
	"github.com/spf13/cobra"
)

var (
	loginUserName string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	Long:  `Authenticate against the CyrLab API and persist the issued token for later commands and the TUI.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exit(runLogin(ctx, os.Stdout, loginUserName, loginPassword))
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUserName, "username", "u", "", "User name (prompted when omitted)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

// runLogin executes the sign-in and returns the exit code: 0 on success,
// 1 when the credentials are rejected, 2 on any other error.
func runLogin(ctx context.Context, w io.Writer, userName, password string) int {
	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if userName == "" || password == "" {
		if err := promptCredentials(&userName, &password); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	if err := e.session.Login(ctx, userName, password); err != nil {
		var authErr *client.AuthError
		if errors.As(err, &authErr) {
			fmt.Fprintf(w, "Login failed: %s\n", authErr.Message)
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user := e.session.User()
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Signed in as %s\n", user.UserName)
	}
	return 0
}

func promptCredentials(userName, password *string) error {
	fields := []huh.Field{}
	if *userName == "" {
		fields = append(fields, huh.NewInput().
			Title("Usuario").
			Value(userName))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Contraseña").
			EchoMode(huh.EchoModePassword).
			Value(password))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeBase())
	return form.Run()
}
