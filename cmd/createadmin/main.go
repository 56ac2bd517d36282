package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/doorhan-crimea/doorhan-backend/config"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
	"github.com/doorhan-crimea/doorhan-backend/internal/db"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"github.com/doorhan-crimea/doorhan-backend/pkg/util"
	"github.com/spf13/cobra"
)

var (
	email    string
	password string
	name     string
)

var rootCmd = &cobra.Command{
	Use:   "createadmin",
	Short: "Create an admin user or reset its password",
	Long: `Create an admin user, or overwrite name, password and role when the email
already exists. This is the only way to create back-office accounts.

Examples:
  createadmin --email admin@doorhan.com --password 's3cret-pass' --name 'Admin User'
  ADMIN_PASSWORD='s3cret-pass' createadmin --email ops@doorhan.com`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if password == "" {
			password = os.Getenv("ADMIN_PASSWORD")
		}
		return run()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&email, "email", "e", "", "Admin email (required)")
	rootCmd.Flags().StringVarP(&password, "password", "p", "", "Admin password, falls back to $ADMIN_PASSWORD")
	rootCmd.Flags().StringVarP(&name, "name", "n", "Admin User", "Display name")
	_ = rootCmd.MarkFlagRequired("email")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Initialize(logger.Config{
		Level:       "warn",
		Format:      "console",
		Output:      os.Stderr,
		EnableColor: true,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	user, err := upsertAdmin(repository.NewUserRepository(db.GetDB()), email, password, name)
	if err != nil {
		return err
	}

	fmt.Println("Admin user is ready")
	fmt.Printf("  ID:    %d\n", user.ID)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Printf("  Name:  %s\n", user.Name)
	return nil
}

func upsertAdmin(users repository.UserRepository, email, password, name string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email %q", email)
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("password must be at least %d characters: %w", util.MinPasswordLength, err)
	}

	user := &model.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: &hash,
		Role:         model.RoleAdmin,
	}
	if err := users.Upsert(user); err != nil {
		return nil, fmt.Errorf("failed to save admin user: %w", err)
	}

	// the upsert does not report the id of an updated row
	return users.FindByEmail(email)
}
