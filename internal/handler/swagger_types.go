package handler

import (
	"time"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	TenantSlug string `json:"tenant_slug" binding:"required" example:"seaside"`
	Email      string `json:"email" binding:"required" example:"admin@seaside.example"`
	Password   string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// ConvertLeadRequest documents the lead conversion body. Every field is optional
// and falls back to the lead's own value.
type ConvertLeadRequest struct {
	Name             string `json:"name" example:"Noor Haddad"`
	Email            string `json:"email" example:"noor@example.com"`
	Phone            string `json:"phone" example:"+44 7700 900123"`
	StayType         string `json:"stay_type" example:"tourist"`
	CheckIn          string `json:"check_in" example:"2026-03-01"`
	CheckOut         string `json:"check_out" example:"2026-03-03"`
	StudioID         string `json:"studio_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Revenue          string `json:"revenue" example:"1200.00"`
	PaymentPlanID    string `json:"payment_plan_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	InstallmentCount int    `json:"installment_count" example:"3"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expires_at" example:"2026-01-15T10:30:00Z"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// DownloadURLResponse carries a presigned document URL.
type DownloadURLResponse struct {
	URL string `json:"url" example:"https://s3.amazonaws.com/stayos-docs/...?X-Amz-Signature=..."`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
