package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"stayos/internal/email/noop"
	"stayos/internal/lock"
	"stayos/internal/repository/postgres"
	"stayos/internal/service"
)

// noopRecorder discards step metrics; stayctl exposes no /metrics endpoint.
type noopRecorder struct{}

func (noopRecorder) RecordStep(string, string, error) {}

func importLeadsCmd() *cobra.Command {
	var slug, path string

	cmd := &cobra.Command{
		Use:   "import-leads",
		Short: "Import leads for a tenant from an .xlsx spreadsheet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			tenant, err := postgres.NewTenantRepo(e.db).GetBySlug(cmd.Context(), strings.ToLower(slug))
			if err != nil {
				return fmt.Errorf("looking up tenant %q: %w", slug, err)
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer func() { _ = f.Close() }()

			leadRepo := postgres.NewLeadRepo(e.db)
			residentRepo := postgres.NewResidentRepo(e.db)
			invoices := service.NewInvoiceService(postgres.NewInvoiceRepo(e.db), residentRepo, noop.NewNoopSender(e.log), e.cfg.Billing, e.log)
			reconciler := service.NewReconciler(residentRepo, postgres.NewStudioRepo(e.db), leadRepo,
				postgres.NewPaymentPlanRepo(e.db), invoices, lock.NewNoopLock(), noopRecorder{}, e.log)
			svc := service.NewLeadService(leadRepo, reconciler, e.log)

			results, err := svc.Import(cmd.Context(), tenant.ID, f)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
					fmt.Printf("row %d: %s\n", r.Line, r.Error)
				}
			}
			fmt.Printf("imported %d of %d rows\n", len(results)-failed, len(results))
			return nil
		},
	}

	cmd.Flags().StringVar(&slug, "tenant", "", "tenant slug")
	cmd.Flags().StringVar(&path, "file", "", "path to the .xlsx file")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
