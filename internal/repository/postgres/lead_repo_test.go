package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayos/internal/domain"
)

func TestLeadRepo_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLeadRepo(db)

	lead := &domain.Lead{
		TenantID:      uuid.New(),
		Name:          "Cleo",
		DurationLabel: "45 weeks",
		Revenue:       decimal.RequireFromString("5400.50"),
		Source:        domain.LeadSourceImport,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO leads")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), lead))
	assert.NotEqual(t, uuid.Nil, lead.ID)
	assert.False(t, lead.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepo_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLeadRepo(db)

	tenantID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM leads")).
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM leads")).
		WithArgs(tenantID, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tenant_id", "name", "email", "phone", "duration_label",
			"assigned_studio_id", "revenue", "source", "notes", "created_at", "updated_at",
		}).
			AddRow(uuid.New().String(), tenantID.String(), "A", "", "", "2 days", nil, "0", "manual", "", now, now).
			AddRow(uuid.New().String(), tenantID.String(), "B", "", "", "51 weeks", nil, "10", "import", "", now, now))

	leads, total, err := repo.List(context.Background(), tenantID, 0, 10)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, leads, 2)
	assert.Equal(t, domain.LeadSourceImport, leads[1].Source)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepo_Delete_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLeadRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM leads")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
