package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/listr/internal/auth"
	"github.com/mark3labs/listr/internal/config"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project bool
	force   bool
	user    string
	email   string
	secret  string
	ttl     time.Duration
	backend string
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create listr configuration file",
	Long: `Create a listr configuration file with sensible defaults.

By default, creates a global config at ~/.config/listr/listr.yml.
Use --project to create a project-local config in the current directory.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().StringVarP(&setupFlags.user, "user", "u", "", "User ID to own new listings (default: a generated ID)")
	setupCmd.Flags().StringVar(&setupFlags.email, "email", "", "Email recorded in the signed token")
	setupCmd.Flags().StringVar(&setupFlags.secret, "secret", "", "Sign an auth token with this secret instead of storing a plain user_id")
	setupCmd.Flags().DurationVar(&setupFlags.ttl, "token-ttl", 365*24*time.Hour, "Lifetime of the signed token")
	setupCmd.Flags().StringVar(&setupFlags.backend, "storage", config.BackendNATS, "Image storage backend (nats or cloudinary)")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	switch setupFlags.backend {
	case config.BackendNATS, config.BackendCloudinary:
	default:
		return fmt.Errorf("unknown storage backend %q", setupFlags.backend)
	}

	cfg := config.Default()
	cfg.UserID = setupFlags.user
	if cfg.UserID == "" {
		cfg.UserID = uuid.NewString()
	}
	cfg.Storage.Backend = setupFlags.backend

	if setupFlags.secret != "" {
		token, err := auth.GenerateToken([]byte(setupFlags.secret), cfg.UserID, setupFlags.email, setupFlags.ttl)
		if err != nil {
			return fmt.Errorf("failed to sign token: %w", err)
		}
		cfg.AuthToken = token
		cfg.AuthSecret = setupFlags.secret
	}

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Config written to: %s\n\n", targetPath)
	if cfg.Storage.Backend == config.BackendCloudinary {
		fmt.Println("Add your cloudinary credentials (or set LISTR_CLOUDINARY_*) before uploading images.")
	}
	fmt.Println("Run 'listr create' to add your first listing.")
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
