package cli

import (
	"fmt"
	"os"

	"github.com/relieflink/backend/internal/donations"
	"github.com/relieflink/backend/internal/session"
	"github.com/spf13/cobra"
)

var (
	flagServerURL string

	sess  *session.Session
	auth  *authClient
	store *donations.APIStore
)

var rootCmd = &cobra.Command{
	Use:   "relieflink",
	Short: "Track aid donations from the terminal",
	Long: `ReliefLink CLI records aid donations against a ReliefLink server and
keeps your signed-in profile cached locally between runs.

Get started:
  relieflink signup --name "Amara Silva" --email amara@example.com --phone "+94 77 123 4567"
  relieflink donate --location "Colombo Collection Center" --items "50 blankets" --weight 20 --quantity 50
  relieflink stats`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		sess, err = session.Load()
		if err != nil {
			return fmt.Errorf("loading session: %w", err)
		}
		if flagServerURL != "" {
			sess.ServerURL = flagServerURL
		}
		auth = newAuthClient(sess.ServerURL)
		store = donations.NewAPIStore(sess.ServerURL)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "Override server URL (default: from session or http://localhost:5000)")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// requireLogin returns an error unless a user snapshot is cached.
func requireLogin() (*session.User, error) {
	if sess == nil || !sess.LoggedIn() {
		return nil, fmt.Errorf("not logged in, run \"relieflink login\" first")
	}
	return sess.Current(), nil
}
