package domain

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleStaff   UserRole = "staff"
)

// ValidUserRoles is the set of roles accepted on user creation.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:   true,
	RoleManager: true,
	RoleStaff:   true,
}

// Variant distinguishes the two kinds of resident by stay length.
type Variant string

const (
	// VariantTourist is a short-stay guest with check-in and check-out dates.
	VariantTourist Variant = "tourist"
	// VariantStudent is a long-stay resident with a duration label and optional payment plan.
	VariantStudent Variant = "student"
)

// Valid reports whether v is a known resident variant.
func (v Variant) Valid() bool {
	return v == VariantTourist || v == VariantStudent
}

// ParseVariant accepts the variant name as well as the plural route form
// ("tourists", "students").
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "tourist", "tourists":
		return VariantTourist, nil
	case "student", "students":
		return VariantStudent, nil
	default:
		return "", ErrInvalidVariant
	}
}

// LeadSource records how a lead entered the system.
type LeadSource string

const (
	LeadSourceManual LeadSource = "manual"
	LeadSourceImport LeadSource = "import"
)

// InvoiceStatus represents the lifecycle of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// ValidInvoiceStatuses is used to validate list filters.
var ValidInvoiceStatuses = map[InvoiceStatus]bool{
	InvoiceStatusPending:   true,
	InvoiceStatusPaid:      true,
	InvoiceStatusOverdue:   true,
	InvoiceStatusCancelled: true,
}

// DocumentType represents the allowed resident document file types.
type DocumentType string

const (
	DocumentTypePDF DocumentType = "pdf"
	DocumentTypeJPG DocumentType = "jpg"
	DocumentTypePNG DocumentType = "png"
)

// AllowedDocumentTypes maps DocumentType to its MIME content type.
var AllowedDocumentTypes = map[DocumentType]string{
	DocumentTypePDF: "application/pdf",
	DocumentTypeJPG: "image/jpeg",
	DocumentTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to DocumentType.
var AllowedContentTypes = map[string]DocumentType{
	"application/pdf": DocumentTypePDF,
	"image/jpeg":      DocumentTypeJPG,
	"image/png":       DocumentTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to DocumentType.
var AllowedExtensions = map[string]DocumentType{
	"pdf":  DocumentTypePDF,
	"jpg":  DocumentTypeJPG,
	"jpeg": DocumentTypeJPG,
	"png":  DocumentTypePNG,
}

// Reconciliation step names, used in outcome warnings and metrics labels.
const (
	StepCreateResident = "create_resident"
	StepClaimStudio    = "claim_studio"
	StepReleaseStudio  = "release_studio"
	StepCreateInvoice  = "create_invoice"
	StepDeleteLead     = "delete_lead"
	StepDeleteResident = "delete_resident"
)
