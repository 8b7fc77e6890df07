package command

// root.go defines the yamdb-admin root command and the shared runtime
// every subcommand uses: config, logger and database.

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"yamdb/database"
	"yamdb/internal/config"
	"yamdb/internal/http-api/repository"
	"yamdb/internal/http-api/service"
	"yamdb/internal/logger"
	"yamdb/internal/mailer"
	"yamdb/internal/token"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	timeout time.Duration // per-command deadline

	cfg *config.Config
	log *slog.Logger
	db  *gorm.DB
)

var rootCmd = &cobra.Command{
	Use:   "yamdb-admin",
	Short: "yamdb-admin - YaMDb administration tool",
	Long: `yamdb-admin runs maintenance tasks against the YaMDb database:
- apply schema migrations
- create or promote administrator accounts
- change user roles

It reads the same environment (or .env file) as the API server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.LoadConfig(); err != nil {
			return err
		}
		log = logger.New(cfg, os.Stderr)
		slog.SetDefault(log)
		if db, err = database.ConnectDB(cfg, log); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			_ = database.Close(db)
		}
	},
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "deadline for the command")
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

func userService() service.UserService {
	return service.NewUserService(repository.NewUserRepository(db))
}

func authService() (service.AuthService, error) {
	accessTokens, err := token.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	confirmations, err := token.NewConfirmationService(cfg.JWTSecret, cfg.ConfirmationCodeTTL)
	if err != nil {
		return nil, err
	}
	return service.NewAuthService(
		repository.NewUserRepository(db),
		confirmations,
		accessTokens,
		mailer.New(cfg, log),
		log,
	), nil
}
