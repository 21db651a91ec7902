package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stayos/internal/repository/postgres"
	"stayos/internal/service"
)

func bootstrapCmd() *cobra.Command {
	var input service.BootstrapInput

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Create a tenant and its first admin user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			svc := service.NewTenantService(postgres.NewTenantRepo(e.db), postgres.NewUserRepo(e.db), e.log)
			tenant, user, err := svc.Bootstrap(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("bootstrap failed: %w", err)
			}
			fmt.Printf("tenant %s (%s) created with admin %s\n", tenant.Slug, tenant.ID, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.TenantName, "name", "", "tenant display name")
	cmd.Flags().StringVar(&input.Slug, "slug", "", "tenant slug used at login")
	cmd.Flags().StringVar(&input.Email, "email", "", "admin email")
	cmd.Flags().StringVar(&input.Password, "password", "", "admin password (min 8 characters)")
	cmd.Flags().StringVar(&input.FullName, "full-name", "", "admin full name")
	for _, f := range []string{"name", "slug", "email", "password"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
