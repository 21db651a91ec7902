package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayos/internal/domain"
)

func TestStudioRepo_Claim_Success(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStudioRepo(db)

	tenantID, studioID := uuid.New(), uuid.New()
	ref := domain.ResidentRef{ID: uuid.New(), Variant: domain.VariantTourist}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE studios")).
		WithArgs(ref.ID, ref.Variant, sqlmock.AnyArg(), studioID, tenantID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Claim(context.Background(), tenantID, studioID, ref)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudioRepo_Claim_HeldByOther(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStudioRepo(db)

	tenantID, studioID := uuid.New(), uuid.New()
	ref := domain.ResidentRef{ID: uuid.New(), Variant: domain.VariantStudent}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE studios")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(studioID, tenantID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err := repo.Claim(context.Background(), tenantID, studioID, ref)

	assert.ErrorIs(t, err, domain.ErrStudioOccupied)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudioRepo_Claim_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStudioRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE studios")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := repo.Claim(context.Background(), uuid.New(), uuid.New(),
		domain.ResidentRef{ID: uuid.New(), Variant: domain.VariantStudent})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudioRepo_Release_Holder(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStudioRepo(db)

	tenantID, studioID, holder := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE studios")).
		WithArgs(sqlmock.AnyArg(), studioID, tenantID, holder).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Release(context.Background(), tenantID, studioID, holder))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudioRepo_Release_AlreadyVacant(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStudioRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE studios")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT occupied_by FROM studios")).
		WillReturnRows(sqlmock.NewRows([]string{"occupied_by"}).AddRow(nil))

	require.NoError(t, repo.Release(context.Background(), uuid.New(), uuid.New(), uuid.New()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudioRepo_Release_HeldByOther(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStudioRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE studios")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT occupied_by FROM studios")).
		WillReturnRows(sqlmock.NewRows([]string{"occupied_by"}).AddRow(uuid.New().String()))

	err := repo.Release(context.Background(), uuid.New(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrStudioOccupied)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudioRepo_Delete_Occupied(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStudioRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM studios")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err := repo.Delete(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrStudioOccupied)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudioRepo_Claim_DriverError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStudioRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE studios")).
		WillReturnError(errors.New("connection reset"))

	err := repo.Claim(context.Background(), uuid.New(), uuid.New(),
		domain.ResidentRef{ID: uuid.New(), Variant: domain.VariantTourist})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "studioRepo.Claim")
	require.NoError(t, mock.ExpectationsWereMet())
}
