// Command create-admin seeds the first administrator account.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joshua-takyi/salon/internal/config"
	"github.com/joshua-takyi/salon/internal/connect"
	"github.com/joshua-takyi/salon/internal/models"
	"github.com/joshua-takyi/salon/internal/services"
	"github.com/spf13/cobra"
)

type adminOptions struct {
	username string
	email    string
	password string
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := newRootCmd(logger).ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, services.ErrAdminExists) {
			logger.Error("An admin account already exists")
		} else {
			logger.Error("Failed to create admin", "error", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	var opts adminOptions

	cmd := &cobra.Command{
		Use:           "create-admin",
		Short:         "Create the first salon admin account",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), logger, opts)
		},
	}

	cmd.Flags().StringVar(&opts.username, "username", "", "admin username")
	cmd.Flags().StringVar(&opts.email, "email", "", "admin email")
	cmd.Flags().StringVar(&opts.password, "password", "", "admin password (min 8 chars, upper, lower and digit)")
	for _, name := range []string{"username", "email", "password"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func run(ctx context.Context, logger *slog.Logger, opts adminOptions) error {
	config.LoadEnv()
	db, err := config.LoadDatabaseConfig()
	if err != nil {
		return err
	}

	client, err := connect.MongoDBConnect(db.MongoURI())
	if err != nil {
		return err
	}
	defer func() {
		if err := connect.MongoDBDisconnect(client); err != nil {
			logger.Warn("Error disconnecting from MongoDB", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	repo := models.MongodbNewRepo(client, db.MongoDBDatabase)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return err
	}

	// no token is issued here, so no signing secret
	auth := services.NewAuthService(repo, "", 0)
	admin, err := auth.CreateFirstAdmin(ctx, opts.username, opts.email, opts.password)
	if err != nil {
		return err
	}
	logger.Info("Admin created", "username", admin.Username, "email", admin.Email, "id", admin.ID.Hex())
	return nil
}
