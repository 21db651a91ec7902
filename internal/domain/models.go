package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tenant represents an isolated property-management organisation.
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// User represents a staff account belonging to a tenant.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Lead is an inbound inquiry that has not been converted to a resident yet.
type Lead struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	TenantID         uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	Name             string          `db:"name" json:"name"`
	Email            string          `db:"email" json:"email"`
	Phone            string          `db:"phone" json:"phone"`
	DurationLabel    string          `db:"duration_label" json:"duration_label"`
	AssignedStudioID *uuid.UUID      `db:"assigned_studio_id" json:"assigned_studio_id"`
	Revenue          decimal.Decimal `db:"revenue" json:"revenue"`
	Source           LeadSource      `db:"source" json:"source"`
	Notes            string          `db:"notes" json:"notes"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// Resident is a person occupying, or scheduled to occupy, a studio.
// Tourists and students share this shape; Variant selects the backing table
// and which of the variant-specific fields are meaningful.
type Resident struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	TenantID         uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	Variant          Variant         `db:"-" json:"variant"`
	Name             string          `db:"name" json:"name"`
	Email            string          `db:"email" json:"email"`
	Phone            string          `db:"phone" json:"phone"`
	AssignedStudioID *uuid.UUID      `db:"assigned_studio_id" json:"assigned_studio_id"`
	Revenue          decimal.Decimal `db:"revenue" json:"revenue"`
	CheckIn          *time.Time      `db:"check_in" json:"check_in"`
	DurationLabel    string          `db:"duration_label" json:"duration_label"`

	// Tourist only.
	CheckOut *time.Time `db:"check_out" json:"check_out,omitempty"`

	// Student only.
	PaymentPlanID       *uuid.UUID `db:"payment_plan_id" json:"payment_plan_id,omitempty"`
	HasInstallments     bool       `db:"has_installments" json:"has_installments"`
	InstallmentCount    int        `db:"installment_count" json:"installment_count"`
	InstallmentPlanName *string    `db:"installment_plan_name" json:"installment_plan_name,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Ref returns the reference a studio stores for its occupant.
func (r *Resident) Ref() ResidentRef {
	return ResidentRef{ID: r.ID, Variant: r.Variant}
}

// ResidentRef identifies a resident across both variant tables.
type ResidentRef struct {
	ID      uuid.UUID `json:"id" binding:"required"`
	Variant Variant   `json:"variant" binding:"required"`
}

// Studio is an allocatable unit with occupancy state.
// Occupied is true exactly when OccupiedBy is set.
type Studio struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	TenantID        uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	Name            string          `db:"name" json:"name"`
	Floor           string          `db:"floor" json:"floor"`
	MonthlyRate     decimal.Decimal `db:"monthly_rate" json:"monthly_rate"`
	Occupied        bool            `db:"occupied" json:"occupied"`
	OccupiedBy      *uuid.UUID      `db:"occupied_by" json:"occupied_by"`
	OccupantVariant *Variant        `db:"occupant_variant" json:"occupant_variant"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// HeldBy reports whether the studio's current occupant is residentID.
func (s Studio) HeldBy(residentID uuid.UUID) bool {
	return s.OccupiedBy != nil && *s.OccupiedBy == residentID
}

// Invoice bills a single resident.
type Invoice struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	TenantID        uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	ResidentID      uuid.UUID       `db:"resident_id" json:"resident_id"`
	ResidentVariant Variant         `db:"resident_variant" json:"resident_variant"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	DueDate         time.Time       `db:"due_date" json:"due_date"`
	Status          InvoiceStatus   `db:"status" json:"status"`
	PaidAt          *time.Time      `db:"paid_at" json:"paid_at"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// InvoiceFilters narrows invoice listings.
type InvoiceFilters struct {
	Status     InvoiceStatus
	ResidentID *uuid.UUID
}

// PaymentPlan is an installment scheme a student can be enrolled on.
type PaymentPlan struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name         string    `db:"name" json:"name"`
	Installments int       `db:"installments" json:"installments"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ResidentDocument stores metadata about a file uploaded for a resident.
type ResidentDocument struct {
	ID              uuid.UUID    `db:"id" json:"id"`
	TenantID        uuid.UUID    `db:"tenant_id" json:"tenant_id"`
	ResidentID      uuid.UUID    `db:"resident_id" json:"resident_id"`
	ResidentVariant Variant      `db:"resident_variant" json:"resident_variant"`
	FileName        string       `db:"file_name" json:"file_name"`
	DocumentType    DocumentType `db:"document_type" json:"document_type"`
	FileSize        int64        `db:"file_size" json:"file_size"`
	S3Bucket        string       `db:"s3_bucket" json:"-"`
	S3Key           string       `db:"s3_key" json:"-"`
	ContentType     string       `db:"content_type" json:"content_type"`
	UploadedBy      uuid.UUID    `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt       time.Time    `db:"created_at" json:"created_at"`
}

// OccupancyIssue describes one divergence between studio and resident state.
type OccupancyIssue struct {
	StudioID   *uuid.UUID `json:"studio_id,omitempty"`
	ResidentID *uuid.UUID `json:"resident_id,omitempty"`
	Variant    Variant    `json:"variant,omitempty"`
	Problem    string     `json:"problem"`
}
