package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	superUsername string
	superEmail    string
	sendCode      bool
)

var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create an active admin account, or promote an existing one",
	Long: `createsuperuser makes sure an active admin exists for the given email.
Accounts are passwordless: pass --send-code to mail a confirmation code that
the admin exchanges for an access token at POST /api/v1/auth/token.`,
	Example: "  yamdb-admin createsuperuser --username root --email root@example.com --send-code",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		user, err := userService().EnsureAdmin(ctx, superUsername, superEmail)
		if err != nil {
			return fmt.Errorf("create superuser: %w", err)
		}
		cmd.Printf("Admin %s <%s> is ready.\n", user.Username, user.Email)

		if !sendCode {
			return nil
		}
		auth, err := authService()
		if err != nil {
			return err
		}
		if err := auth.SignUp(ctx, user.Email); err != nil {
			return fmt.Errorf("send confirmation code: %w", err)
		}
		cmd.Printf("Confirmation code sent to %s.\n", user.Email)
		return nil
	},
}

func init() {
	createSuperuserCmd.Flags().StringVar(&superUsername, "username", "", "admin username")
	createSuperuserCmd.Flags().StringVar(&superEmail, "email", "", "admin email")
	createSuperuserCmd.Flags().BoolVar(&sendCode, "send-code", false, "mail a confirmation code after creating the account")
	_ = createSuperuserCmd.MarkFlagRequired("username")
	_ = createSuperuserCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(createSuperuserCmd)
}
