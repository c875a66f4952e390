package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"finnadmin/internal/session"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the session token",
}

var authLoginCmd = &cobra.Command{
	Use:   "login [token]",
	Short: "Store a bearer token for subsequent commands",
	Long: `Stores the bearer token in the token file. Pass the token as an
argument or on stdin. The FINNADMIN_TOKEN environment variable, when
set, always takes precedence over the stored token.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := ""
		if len(args) == 1 {
			token = args[0]
		} else {
			fmt.Fprint(os.Stderr, "Token: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("read token: %w", err)
			}
			token = strings.TrimSpace(line)
		}
		if token == "" {
			return errors.New("empty token")
		}

		store := session.NewStore(session.DefaultTokenPath())
		if err := store.Save(token); err != nil {
			return fmt.Errorf("store token: %w", err)
		}
		fmt.Println("Token stored.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a session token is available",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := tokens().Token()
		if errors.Is(err, session.ErrNoToken) {
			fmt.Println("No token. Run `finnadmin auth login` or set FINNADMIN_TOKEN.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println("Token available.")
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := session.NewStore(session.DefaultTokenPath())
		if err := store.Clear(); err != nil {
			return fmt.Errorf("clear token: %w", err)
		}
		fmt.Println("Token removed.")
		return nil
	},
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
}
