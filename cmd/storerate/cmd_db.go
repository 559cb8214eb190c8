package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storepulse/store-rating/internal/core/domain"
	"github.com/storepulse/store-rating/internal/core/ports"
)

// storerate migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		fmt.Println("Running migrations…")
		if err := a.migrate(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("✅  Schema up to date")
		return nil
	},
}

var adminFlags struct {
	name     string
	email    string
	password string
	address  string
}

// storerate create-admin
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	Long:  "Creates the first ADMIN user. Further administrators can be registered through the API by an existing admin.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		res, err := a.services().auth.Register(cmd.Context(), ports.RegisterInput{
			Name:       adminFlags.name,
			Email:      adminFlags.email,
			Password:   adminFlags.password,
			Address:    adminFlags.address,
			Role:       domain.RoleAdmin,
			CallerRole: domain.RoleAdmin,
		})
		if err != nil {
			if errors.Is(err, domain.ErrEmailTaken) {
				return fmt.Errorf("an account with email %s already exists", adminFlags.email)
			}
			return err
		}
		fmt.Printf("✅  Created admin #%d (%s)\n", res.User.ID, res.User.Email)
		return nil
	},
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&adminFlags.name, "name", "Administrator", "display name")
	f.StringVar(&adminFlags.email, "email", "", "login email (required)")
	f.StringVar(&adminFlags.password, "password", "", "initial password (required)")
	f.StringVar(&adminFlags.address, "address", "", "postal address")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
