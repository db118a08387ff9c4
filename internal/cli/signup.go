package cli

import (
	"fmt"

	"github.com/relieflink/backend/internal/session"
	"github.com/spf13/cobra"
)

var (
	flagSignupName  string
	flagSignupEmail string
	flagSignupPhone string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a ReliefLink account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagSignupName == "" || flagSignupEmail == "" || flagSignupPhone == "" {
			return fmt.Errorf("--name, --email and --phone are required")
		}

		password, err := promptPassword("Choose a password: ")
		if err != nil {
			return err
		}

		payload, err := auth.signup(flagSignupName, flagSignupEmail, password, flagSignupPhone)
		if err != nil {
			return fmt.Errorf("signing up: %w", err)
		}

		sess.Token = payload.Token
		sess.User = &payload.User
		if err := session.Save(sess); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}

		fmt.Printf("Welcome, %s! You are signed in as %s.\n", payload.User.Name, payload.User.Email)
		return nil
	},
}

func init() {
	signupCmd.Flags().StringVar(&flagSignupName, "name", "", "Display name")
	signupCmd.Flags().StringVar(&flagSignupEmail, "email", "", "Email address (login key)")
	signupCmd.Flags().StringVar(&flagSignupPhone, "phone", "", "Contact phone number")
	rootCmd.AddCommand(signupCmd)
}
