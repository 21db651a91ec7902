package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stayos/internal/config"
	"stayos/internal/domain"
	"stayos/internal/service"
	"stayos/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-key-for-unit-tests",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "stayos-test",
	}
}

func hashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}

func activeUser(tenantID uuid.UUID) *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Email:        "desk@harbourview.test",
		PasswordHash: hashPassword("password123"),
		FullName:     "Front Desk",
		Role:         domain.RoleStaff,
		IsActive:     true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, testJWTConfig())

	tenant := &domain.Tenant{ID: uuid.New(), Slug: "harbourview", IsActive: true}
	user := activeUser(tenant.ID)
	tenantRepo.On("GetBySlug", mock.Anything, "harbourview").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "desk@harbourview.test").Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "Harbourview",
		Email:      "Desk@Harbourview.test",
		Password:   "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, claims.TenantID)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleStaff, claims.Role)

	tenantRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_Failures(t *testing.T) {
	tenantID := uuid.New()
	tests := []struct {
		name  string
		setup func(*mocks.MockTenantRepo, *mocks.MockUserRepo)
		want  error
	}{
		{
			name: "unknown tenant",
			setup: func(tr *mocks.MockTenantRepo, _ *mocks.MockUserRepo) {
				tr.On("GetBySlug", mock.Anything, "harbourview").Return(nil, domain.ErrNotFound)
			},
			want: domain.ErrInvalidCredentials,
		},
		{
			name: "inactive tenant",
			setup: func(tr *mocks.MockTenantRepo, _ *mocks.MockUserRepo) {
				tr.On("GetBySlug", mock.Anything, "harbourview").Return(&domain.Tenant{ID: tenantID}, nil)
			},
			want: domain.ErrTenantInactive,
		},
		{
			name: "wrong password",
			setup: func(tr *mocks.MockTenantRepo, ur *mocks.MockUserRepo) {
				tr.On("GetBySlug", mock.Anything, "harbourview").Return(&domain.Tenant{ID: tenantID, IsActive: true}, nil)
				u := activeUser(tenantID)
				u.PasswordHash = hashPassword("something-else")
				ur.On("GetByEmail", mock.Anything, tenantID, "desk@harbourview.test").Return(u, nil)
			},
			want: domain.ErrInvalidCredentials,
		},
		{
			name: "inactive user",
			setup: func(tr *mocks.MockTenantRepo, ur *mocks.MockUserRepo) {
				tr.On("GetBySlug", mock.Anything, "harbourview").Return(&domain.Tenant{ID: tenantID, IsActive: true}, nil)
				u := activeUser(tenantID)
				u.IsActive = false
				ur.On("GetByEmail", mock.Anything, tenantID, "desk@harbourview.test").Return(u, nil)
			},
			want: domain.ErrUserInactive,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenantRepo := new(mocks.MockTenantRepo)
			userRepo := new(mocks.MockUserRepo)
			tt.setup(tenantRepo, userRepo)
			svc := service.NewAuthService(userRepo, tenantRepo, testJWTConfig())

			_, err := svc.Login(context.Background(), service.LoginInput{
				TenantSlug: "harbourview",
				Email:      "desk@harbourview.test",
				Password:   "password123",
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, testJWTConfig())

	tenant := &domain.Tenant{ID: uuid.New(), Slug: "harbourview", IsActive: true}
	user := activeUser(tenant.ID)
	tenantRepo.On("GetBySlug", mock.Anything, "harbourview").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, user.Email).Return(user, nil)
	userRepo.On("GetByID", mock.Anything, tenant.ID, user.ID).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "harbourview", Email: user.Email, Password: "password123",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Access tokens cannot be used to refresh, and refresh tokens are not access tokens.
	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, testJWTConfig())

	tenant := &domain.Tenant{ID: uuid.New(), IsActive: true}
	user := activeUser(tenant.ID)
	tenantRepo.On("GetBySlug", mock.Anything, "harbourview").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, user.Email).Return(user, nil)
	pair, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "harbourview", Email: user.Email, Password: "password123",
	})
	require.NoError(t, err)

	other := testJWTConfig()
	other.Secret = "a-different-secret"
	_, err = service.NewAuthService(userRepo, tenantRepo, other).ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}
