// ABOUTME: User management commands for the cyrlab-admin CLI
// ABOUTME: List, get, create, update, and delete users for scripting

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/egl-devs/cyrlab-admin/internal/client"
	"github.com/spf13/cobra"
)

var (
	usersPage      int
	usersPageSize  int
	usersSearch    string
	userFirstName  string
	userLastName   string
	userEmail      string
	userPassword   string
	userRoles      []string
	deleteConfirmd bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage CyrLab users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users with optional search and paging",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exit(runUsersList(ctx, os.Stdout))
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exit(runUsersGet(ctx, os.Stdout, args[0]))
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exit(runUsersCreate(ctx, os.Stdout, args[0]))
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exit(runUsersUpdate(ctx, os.Stdout, args[0]))
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exit(runUsersDelete(ctx, os.Stdout, args[0]))
	},
}

func init() {
	usersListCmd.Flags().IntVar(&usersPage, "page", 1, "Page number")
	usersListCmd.Flags().IntVar(&usersPageSize, "page-size", 10, "Users per page")
	usersListCmd.Flags().StringVar(&usersSearch, "search", "", "Search term")

	usersCreateCmd.Flags().StringVar(&userFirstName, "first-name", "", "First name")
	usersCreateCmd.Flags().StringVar(&userLastName, "last-name", "", "Last name")
	usersCreateCmd.Flags().StringVar(&userEmail, "email", "", "Email address")
	usersCreateCmd.Flags().StringVar(&userPassword, "password", "", "Password")
	usersCreateCmd.Flags().StringSliceVar(&userRoles, "role", nil, "Role to assign (repeatable)")

	usersUpdateCmd.Flags().StringVar(&userFirstName, "first-name", "", "First name")
	usersUpdateCmd.Flags().StringVar(&userLastName, "last-name", "", "Last name")
	usersUpdateCmd.Flags().StringVar(&userEmail, "email", "", "Email address")
	usersUpdateCmd.Flags().StringSliceVar(&userRoles, "role", nil, "Role to assign (repeatable)")

	usersDeleteCmd.Flags().BoolVarP(&deleteConfirmd, "yes", "y", false, "Skip the confirmation prompt")

	usersCmd.AddCommand(usersListCmd, usersGetCmd, usersCreateCmd, usersUpdateCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}

// userExitCode maps client errors to the command exit codes: 1 for auth and
// validation failures, 2 for everything else.
func userExitCode(err error) int {
	var authErr *client.AuthError
	var valErr *client.ValidationError
	if errors.As(err, &authErr) || errors.As(err, &valErr) {
		return 1
	}
	return 2
}

func runUsersList(ctx context.Context, w io.Writer) int {
	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	page, err := e.api.ListUsers(ctx, usersPage, usersPageSize, usersSearch)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return userExitCode(err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(page, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "%-36s  %-16s  %-28s  %s\n", "ID", "USERNAME", "EMAIL", "ROLES")
	for _, user := range page.Items {
		fmt.Fprintf(w, "%-36s  %-16s  %-28s  %s\n",
			user.ID, user.UserName, user.Email, strings.Join(user.Roles, ","))
	}
	fmt.Fprintf(w, "\nPage %d of %d (%d users)\n", page.PageNumber, page.TotalPages(), page.TotalCount)
	return 0
}

func runUsersGet(ctx context.Context, w io.Writer, id string) int {
	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user, err := e.api.GetUser(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return userExitCode(err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "ID:    %s\n", user.ID)
	fmt.Fprintf(w, "User:  %s\n", user.UserName)
	fmt.Fprintf(w, "Name:  %s\n", user.FullName)
	fmt.Fprintf(w, "Email: %s\n", user.Email)
	fmt.Fprintf(w, "Roles: %s\n", strings.Join(user.Roles, ", "))
	return 0
}

func runUsersCreate(ctx context.Context, w io.Writer, userName string) int {
	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	req := &client.CreateUserRequest{
		UserName:  userName,
		FirstName: userFirstName,
		LastName:  userLastName,
		Email:     userEmail,
		Password:  userPassword,
		Roles:     userRoles,
	}

	message, err := e.api.CreateUser(ctx, req)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return userExitCode(err)
	}

	fmt.Fprintln(w, message)
	return 0
}

func runUsersUpdate(ctx context.Context, w io.Writer, id string) int {
	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	// Start from the current record so unset flags keep their values
	current, err := e.api.GetUser(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return userExitCode(err)
	}

	first, last := current.FullName, ""
	if idx := strings.Index(current.FullName, " "); idx > 0 {
		first, last = current.FullName[:idx], current.FullName[idx+1:]
	}
	if userFirstName != "" {
		first = userFirstName
	}
	if userLastName != "" {
		last = userLastName
	}

	email := current.Email
	if userEmail != "" {
		email = userEmail
	}
	roles := current.Roles
	if len(userRoles) > 0 {
		roles = userRoles
	}

	req := &client.UpdateUserRequest{
		ID:        id,
		UserName:  current.UserName,
		FirstName: first,
		LastName:  last,
		Email:     email,
		Roles:     roles,
	}

	message, err := e.api.UpdateUser(ctx, id, req)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return userExitCode(err)
	}

	fmt.Fprintln(w, message)
	return 0
}

func runUsersDelete(ctx context.Context, w io.Writer, id string) int {
	if !deleteConfirmd {
		fmt.Fprintln(w, "Refusing to delete without --yes")
		return 1
	}

	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	message, err := e.api.DeleteUser(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return userExitCode(err)
	}

	fmt.Fprintln(w, message)
	return 0
}
