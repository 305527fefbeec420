// create-admin creates an administrator account, or promotes an existing one.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"yamdb/database"
	"yamdb/internal/config"
	"yamdb/internal/logger"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
)

var (
	email     string
	username  string
	superuser bool
)

var rootCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create or promote a yamdb administrator",
	Long: `Create a user with the admin role, or promote the user that already owns the email.
The account signs in through the usual confirmation-code flow.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}
		defer log.Sync()

		db, err := database.Connect(cfg, log)
		if err != nil {
			return err
		}
		defer database.Close(db)

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		user, created, err := ensureAdmin(ctx, repository.NewUserRepository(db), email, username, superuser)
		if err != nil {
			return err
		}
		log.Info("admin ensured", zap.String("username", user.Username), zap.Bool("created", created))

		verb := "Promoted"
		if created {
			verb = "Created"
		}
		color.Green("✓ %s admin %s <%s>", verb, user.Username, user.Email)
		return nil
	},
}

// ensureAdmin grants the admin role to the user owning email, creating the
// user first when none exists. username defaults to the email.
func ensureAdmin(ctx context.Context, users repository.UserRepository, email, username string, superuser bool) (*models.User, bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, false, errors.New("email is required")
	}
	if username == "" {
		username = email
	}

	user, err := users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &models.User{
			Username:    username,
			Email:       email,
			Role:        models.RoleAdmin,
			IsSuperuser: superuser,
		}
		if err := users.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, false, fmt.Errorf("username %q is already taken", username)
			}
			return nil, false, err
		}
		return user, true, nil
	case err != nil:
		return nil, false, fmt.Errorf("look up %s: %w", email, err)
	}

	user.Role = models.RoleAdmin
	user.IsSuperuser = user.IsSuperuser || superuser
	if err := users.Update(ctx, user); err != nil {
		return nil, false, err
	}
	return user, false, nil
}

func init() {
	rootCmd.Flags().StringVarP(&email, "email", "e", "", "Email address of the administrator")
	rootCmd.Flags().StringVarP(&username, "username", "u", "", "Username for a new account (defaults to the email)")
	rootCmd.Flags().BoolVar(&superuser, "superuser", false, "Also mark the account as superuser")
	rootCmd.MarkFlagRequired("email")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("✗ %v", err)
		os.Exit(1)
	}
}
