// Package csvexport renders invoice listings as CSV for spreadsheet tools.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"stayos/internal/domain"
)

// BOM is the UTF-8 byte order mark; Excel on Windows needs it to detect UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var columns = []string{
	"Invoice ID",
	"Resident ID",
	"Resident Type",
	"Amount",
	"Currency",
	"Due Date",
	"Status",
	"Paid At",
	"Created At",
}

// Writer wraps csv.Writer for exporting invoices.
type Writer struct {
	csv      *csv.Writer
	currency string
}

// NewWriter creates a Writer that writes CSV to w. currency fills the
// Currency column of every row.
func NewWriter(w io.Writer, currency string) *Writer {
	return &Writer{csv: csv.NewWriter(w), currency: currency}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteInvoices converts a batch of invoices to CSV rows and writes them.
func (w *Writer) WriteInvoices(invoices []domain.Invoice) error {
	for i := range invoices {
		if err := w.csv.Write(w.invoiceToRow(&invoices[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func (w *Writer) invoiceToRow(inv *domain.Invoice) []string {
	return []string{
		inv.ID.String(),
		inv.ResidentID.String(),
		string(inv.ResidentVariant),
		inv.Amount.StringFixed(2),
		w.currency,
		inv.DueDate.Format("2006-01-02"),
		string(inv.Status),
		formatTime(inv.PaidAt),
		inv.CreatedAt.Format(time.RFC3339),
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces anything but letters, digits, hyphen and
// underscore with _, collapses runs of underscores and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_prefix}_{YYYY-MM-DD}.csv for Content-Disposition.
func BuildFilename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", SanitizeFilename(prefix), now.Format("2006-01-02"))
}
