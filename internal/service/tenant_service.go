package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"stayos/internal/domain"
	"stayos/internal/port"
)

// BootstrapInput is the DTO for creating a tenant together with its first admin.
type BootstrapInput struct {
	TenantName string
	Slug       string
	Email      string
	Password   string
	FullName   string
}

// TenantService defines tenant provisioning.
type TenantService interface {
	Bootstrap(ctx context.Context, input BootstrapInput) (*domain.Tenant, *domain.User, error)
}

type tenantService struct {
	tenantRepo port.TenantRepository
	userRepo   port.UserRepository
	logger     *zap.Logger
}

// NewTenantService creates a new TenantService implementation.
func NewTenantService(tenantRepo port.TenantRepository, userRepo port.UserRepository, logger *zap.Logger) TenantService {
	return &tenantService{tenantRepo: tenantRepo, userRepo: userRepo, logger: logger}
}

func (s *tenantService) Bootstrap(ctx context.Context, input BootstrapInput) (*domain.Tenant, *domain.User, error) {
	if input.Slug == "" || input.Email == "" || len(input.Password) < 8 {
		return nil, nil, fmt.Errorf("bootstrap: slug, email and a password of at least 8 characters are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hashing password: %w", err)
	}

	tenant := &domain.Tenant{
		Name:     input.TenantName,
		Slug:     strings.ToLower(strings.TrimSpace(input.Slug)),
		IsActive: true,
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		TenantID:     tenant.ID,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("creating admin user: %w", err)
	}

	s.logger.Info("tenantService.Bootstrap: tenant created",
		zap.Stringer("tenant_id", tenant.ID), zap.String("slug", tenant.Slug))
	return tenant, user, nil
}
