package cli

import (
	"fmt"

	"github.com/relieflink/backend/internal/session"
	"github.com/spf13/cobra"
)

var flagLoginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to your ReliefLink server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagLoginEmail == "" {
			return fmt.Errorf("--email is required")
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		payload, err := auth.login(flagLoginEmail, password)
		if err != nil {
			return fmt.Errorf("logging in: %w", err)
		}

		sess.Token = payload.Token
		sess.User = &payload.User
		if err := session.Save(sess); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}

		fmt.Printf("Logged in as %s (%s)\n", payload.User.Name, payload.User.Email)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&flagLoginEmail, "email", "", "Email address")
	rootCmd.AddCommand(loginCmd)
}
