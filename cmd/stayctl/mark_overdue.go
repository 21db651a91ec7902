package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stayos/internal/email/noop"
	"stayos/internal/repository/postgres"
	"stayos/internal/service"
)

func markOverdueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-overdue",
		Short: "Flag pending invoices past their due date as overdue (all tenants)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			svc := service.NewInvoiceService(postgres.NewInvoiceRepo(e.db), postgres.NewResidentRepo(e.db),
				noop.NewNoopSender(e.log), e.cfg.Billing, e.log)
			n, err := svc.MarkOverdue(cmd.Context())
			if err != nil {
				return fmt.Errorf("mark-overdue failed: %w", err)
			}
			fmt.Printf("%d invoices marked overdue\n", n)
			return nil
		},
	}
}
