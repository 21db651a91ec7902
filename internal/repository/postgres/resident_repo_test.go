package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayos/internal/domain"
)

var touristColumns = []string{
	"id", "tenant_id", "name", "email", "phone", "assigned_studio_id", "revenue",
	"check_in", "check_out", "duration_label", "created_at", "updated_at",
}

func TestResidentRepo_Create_TouristTable(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewResidentRepo(db)

	checkIn := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	resident := &domain.Resident{
		TenantID:      uuid.New(),
		Variant:       domain.VariantTourist,
		Name:          "Ada",
		Revenue:       decimal.NewFromInt(300),
		CheckIn:       &checkIn,
		CheckOut:      &checkIn,
		DurationLabel: "2 days",
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tourists")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), resident))
	assert.NotEqual(t, uuid.Nil, resident.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResidentRepo_Create_FailureClearsID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewResidentRepo(db)

	resident := &domain.Resident{TenantID: uuid.New(), Variant: domain.VariantStudent, Name: "Bo"}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO students")).
		WillReturnError(errors.New("constraint violation"))

	err := repo.Create(context.Background(), resident)

	require.Error(t, err)
	assert.Equal(t, uuid.Nil, resident.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResidentRepo_Create_MissingPaymentPlan(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewResidentRepo(db)

	planID := uuid.New()
	resident := &domain.Resident{TenantID: uuid.New(), Variant: domain.VariantStudent, Name: "Cy", PaymentPlanID: &planID}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO students")).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "students_payment_plan_id_fkey"})

	err := repo.Create(context.Background(), resident)

	assert.ErrorIs(t, err, domain.ErrUnknownReference)
	assert.Equal(t, uuid.Nil, resident.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResidentRepo_Update_MissingPaymentPlan(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewResidentRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET")).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Update(context.Background(), &domain.Resident{ID: uuid.New(), TenantID: uuid.New(), Variant: domain.VariantStudent})

	assert.ErrorIs(t, err, domain.ErrUnknownReference)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResidentRepo_Create_InvalidVariant(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewResidentRepo(db)

	err := repo.Create(context.Background(), &domain.Resident{Variant: "guest"})

	assert.ErrorIs(t, err, domain.ErrInvalidVariant)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResidentRepo_GetByID_SetsVariant(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewResidentRepo(db)

	tenantID, id, studioID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now().UTC()
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(touristColumns).AddRow(
		id.String(), tenantID.String(), "Ada", "ada@example.com", "", studioID.String(), "300.00",
		day, day, "2 days", now, now,
	)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM tourists")).
		WithArgs(id, tenantID).
		WillReturnRows(rows)

	resident, err := repo.GetByID(context.Background(), tenantID, domain.VariantTourist, id)

	require.NoError(t, err)
	assert.Equal(t, domain.VariantTourist, resident.Variant)
	require.NotNil(t, resident.AssignedStudioID)
	assert.Equal(t, studioID, *resident.AssignedStudioID)
	assert.True(t, resident.Revenue.Equal(decimal.NewFromInt(300)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResidentRepo_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewResidentRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM students")).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New(), domain.VariantStudent, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResidentRepo_Delete_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewResidentRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New(), domain.VariantStudent, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResidentRepo_ClearStudio(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewResidentRepo(db)

	tenantID := uuid.New()
	ref := domain.ResidentRef{ID: uuid.New(), Variant: domain.VariantTourist}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tourists SET assigned_studio_id = NULL")).
		WithArgs(sqlmock.AnyArg(), ref.ID, tenantID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ClearStudio(context.Background(), tenantID, ref))
	require.NoError(t, mock.ExpectationsWereMet())
}
