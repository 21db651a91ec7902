package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_tenant_id_email_key"}

	assert.True(t, isUniqueViolation(dup, "users_tenant_id_email_key"))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", dup), "users_tenant_id_email_key"))
	assert.False(t, isUniqueViolation(dup, "tenants_slug_key"))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503", ConstraintName: "tenants_slug_key"}, "tenants_slug_key"))
	assert.False(t, isUniqueViolation(errors.New("duplicate key value"), "tenants_slug_key"))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isForeignKeyViolation(errors.New("violates foreign key constraint")))
}
