package cmd

import (
	"fmt"

	"github.com/reshxs/pocket-storage-backend/internal/users"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var CreateUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a back office account.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		req := users.CreateUserRequest{}
		req.Username, _ = cmd.Flags().GetString("username")
		req.Password, _ = cmd.Flags().GetString("password")
		req.FirstName, _ = cmd.Flags().GetString("first-name")
		req.LastName, _ = cmd.Flags().GetString("last-name")

		user, err := a.container.UserService.CreateUser(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		a.logger.Info("User created", zap.Int("id", user.ID), zap.String("username", user.Username))
		return nil
	},
}
