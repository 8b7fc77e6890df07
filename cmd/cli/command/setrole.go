package command

import (
	"fmt"
	"strings"

	"yamdb/internal/permission"

	"github.com/spf13/cobra"
)

var setRoleCmd = &cobra.Command{
	Use:       "setrole <username> <role>",
	Short:     "Change a user's role",
	Example:   "  yamdb-admin setrole alice moderator",
	Args:      cobra.ExactArgs(2),
	ValidArgs: roleNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := permission.ParseRole(args[1])
		if err != nil {
			return fmt.Errorf("%w (expected one of: %s)", err, strings.Join(roleNames(), ", "))
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		user, err := userService().SetRole(ctx, args[0], role)
		if err != nil {
			return fmt.Errorf("set role: %w", err)
		}
		cmd.Printf("%s is now %s.\n", user.Username, user.Role)
		return nil
	},
}

func roleNames() []string {
	roles := permission.Roles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return names
}

func init() {
	rootCmd.AddCommand(setRoleCmd)
}
