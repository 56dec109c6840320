// Session commands: login, logout and whoami.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/library"
)

type sessionOutput struct {
	User     string `json:"user"`
	LoggedIn bool   `json:"logged_in"`
}

// loginPassword is accepted for parity with the login form and ignored.
var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Set the acting user",
	Long: `Login records the user that borrow and return act on.

There is no authentication: any non-empty name is accepted and
--password is ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(func(lib *library.Library) error {
			if err := lib.Session.Login(args[0]); err != nil {
				return err
			}
			user, _ := lib.Session.CurrentUser()
			return printResult(cmd, sessionOutput{User: user, LoggedIn: true}, "Logged in as "+user)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the acting user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(func(lib *library.Library) error {
			if err := lib.Session.Logout(); err != nil {
				return err
			}
			return printResult(cmd, sessionOutput{User: library.GuestName}, "Logged out")
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the acting user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(func(lib *library.Library) error {
			user, ok := lib.Session.CurrentUser()
			if !ok {
				user = library.GuestName
			}
			return printResult(cmd, sessionOutput{User: user, LoggedIn: ok}, user)
		})
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (ignored)")
}
