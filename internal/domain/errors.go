package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrTenantInactive       = errors.New("tenant is inactive")
	ErrUserInactive         = errors.New("user is inactive")
	ErrInsufficientRole     = errors.New("insufficient role for this action")
	ErrDuplicateEmail       = errors.New("email already exists for this tenant")
	ErrDuplicateTenantSlug  = errors.New("tenant slug already exists")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed         = errors.New("file upload to storage failed")
	ErrInvalidVariant       = errors.New("invalid resident variant")
	ErrInvalidDate          = errors.New("invalid date; expected YYYY-MM-DD")
	ErrCheckOutBeforeIn     = errors.New("check-out date is before check-in date")
	ErrCheckInRequired      = errors.New("check-in date is required for tourists")
	ErrNameRequired         = errors.New("resident name is required")
	ErrResidentNotCreated   = errors.New("resident creation returned no record")
	ErrStudioOccupied       = errors.New("studio is occupied by another resident")
	ErrConversionInProgress = errors.New("lead conversion already in progress")
	ErrInvoiceNotPending    = errors.New("invoice is not pending")
	ErrUnknownReference     = errors.New("referenced studio or payment plan does not exist")
	ErrNoResidentEmail      = errors.New("resident has no email address")
	ErrInvalidSpreadsheet   = errors.New("spreadsheet is missing required columns")
	ErrEmptyBulkSelection   = errors.New("no residents selected")
)
