package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the cached current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireLogin()
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s>\nphone: %s\nid: %s\n", user.Name, user.Email, user.Phone, user.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
