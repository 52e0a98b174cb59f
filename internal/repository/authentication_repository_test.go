package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"memorial-records-server/config"
	"memorial-records-server/internal/model"
	"memorial-records-server/internal/repository"
	"memorial-records-server/internal/security"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rowColumns = []string{
	"identifier", "user_uuid",
	"access_fingerprint", "access_expires_at",
	"refresh_fingerprint", "refresh_expires_at",
	"abilities", "created_at",
}

func newTestRepository(t *testing.T) (*repository.AuthenticationRepository, sqlmock.Sqlmock, *security.TokenHasher) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	hasher := security.NewTokenHasher("test-salt")
	generator := security.NewSecretGenerator(64)
	database := &config.Database{DB: sqlx.NewDb(mockDB, "sqlmock")}

	return repository.NewAuthenticationRepository(database, hasher, generator), mock, hasher
}

func refreshRow(hasher *security.TokenHasher, identifier, refreshSecret string, refreshExpiresAt time.Time) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(rowColumns).AddRow(
		identifier, "u1",
		hasher.Fingerprint("old-access"), now.Add(time.Minute),
		hasher.Fingerprint(refreshSecret), refreshExpiresAt,
		"{ADMIN}", now,
	)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, _ := newTestRepository(t)

	mock.ExpectExec("INSERT INTO authentications").
		WillReturnResult(sqlmock.NewResult(0, 1))

	authentication, err := repo.Create(context.Background(),
		"a1", "u1", []model.Role{model.RoleAdmin},
		"access-secret", 15*time.Minute,
		"refresh-secret", 720*time.Hour,
	)

	require.NoError(t, err)
	assert.Equal(t, "a1", authentication.Identifier)
	assert.Equal(t, "u1", authentication.User)
	assert.Equal(t, []model.Role{model.RoleAdmin}, authentication.Abilities)

	// сырые секреты возвращаются клиенту ровно один раз
	require.NotNil(t, authentication.AccessToken)
	assert.Equal(t, "access-secret", authentication.AccessToken.Value)
	require.NotNil(t, authentication.AccessToken.ExpiresAt)
	assert.True(t, authentication.AccessToken.ExpiresAt.After(time.Now().UTC()))

	require.NotNil(t, authentication.RefreshToken)
	assert.Equal(t, "refresh-secret", authentication.RefreshToken.Value)
	require.NotNil(t, authentication.RefreshToken.ExpiresAt)
	assert.True(t, authentication.RefreshToken.ExpiresAt.After(*authentication.AccessToken.ExpiresAt))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateIdentifier(t *testing.T) {
	repo, mock, _ := newTestRepository(t)

	mock.ExpectExec("INSERT INTO authentications").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(),
		"a1", "u1", []model.Role{model.RoleAdmin},
		"access-secret", 15*time.Minute,
		"refresh-secret", 720*time.Hour,
	)

	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestFindByIdentifier_NotFound(t *testing.T) {
	repo, mock, _ := newTestRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM authentications WHERE identifier").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByIdentifier(context.Background(), "missing")

	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestFindByIdentifier_NoRawSecrets(t *testing.T) {
	repo, mock, hasher := newTestRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM authentications WHERE identifier").
		WithArgs("a1").
		WillReturnRows(refreshRow(hasher, "a1", "refresh-secret", time.Now().UTC().Add(time.Hour)))

	authentication, err := repo.FindByIdentifier(context.Background(), "a1")

	require.NoError(t, err)
	assert.Equal(t, []model.Role{model.RoleAdmin}, authentication.Abilities)
	require.NotNil(t, authentication.AccessToken)
	assert.Empty(t, authentication.AccessToken.Value)
	require.NotNil(t, authentication.RefreshToken)
	assert.Empty(t, authentication.RefreshToken.Value)
}

func TestIntrospect_UnknownSecret(t *testing.T) {
	repo, mock, hasher := newTestRepository(t)

	mock.ExpectQuery("SELECT access_expires_at FROM authentications").
		WithArgs(hasher.Fingerprint("unknown")).
		WillReturnError(sql.ErrNoRows)

	active, err := repo.Introspect(context.Background(), "unknown", model.TokenTypeAccess)

	require.NoError(t, err)
	assert.False(t, active)
}

func TestIntrospect_ExpiredToken(t *testing.T) {
	repo, mock, hasher := newTestRepository(t)

	mock.ExpectQuery("SELECT access_expires_at FROM authentications").
		WithArgs(hasher.Fingerprint("access-secret")).
		WillReturnRows(sqlmock.NewRows([]string{"access_expires_at"}).AddRow(time.Now().UTC().Add(-time.Minute)))

	active, err := repo.Introspect(context.Background(), "access-secret", model.TokenTypeAccess)

	require.NoError(t, err)
	assert.False(t, active)
}

func TestIntrospect_RevokedSlot(t *testing.T) {
	repo, mock, hasher := newTestRepository(t)

	mock.ExpectQuery("SELECT refresh_expires_at FROM authentications").
		WithArgs(hasher.Fingerprint("refresh-secret")).
		WillReturnRows(sqlmock.NewRows([]string{"refresh_expires_at"}).AddRow(nil))

	active, err := repo.Introspect(context.Background(), "refresh-secret", model.TokenTypeRefresh)

	require.NoError(t, err)
	assert.False(t, active)
}

func TestIntrospect_ActiveToken(t *testing.T) {
	repo, mock, hasher := newTestRepository(t)

	mock.ExpectQuery("SELECT refresh_expires_at FROM authentications").
		WithArgs(hasher.Fingerprint("refresh-secret")).
		WillReturnRows(sqlmock.NewRows([]string{"refresh_expires_at"}).AddRow(time.Now().UTC().Add(time.Hour)))

	active, err := repo.Introspect(context.Background(), "refresh-secret", model.TokenTypeRefresh)

	require.NoError(t, err)
	assert.True(t, active)
}

func TestRotate_UnknownSecret(t *testing.T) {
	repo, mock, _ := newTestRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM authentications WHERE refresh_fingerprint").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Rotate(context.Background(), "unknown", 15*time.Minute, 720*time.Hour)

	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestRotate_ExpiredRefreshToken(t *testing.T) {
	repo, mock, hasher := newTestRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM authentications WHERE refresh_fingerprint").
		WithArgs(hasher.Fingerprint("refresh-secret")).
		WillReturnRows(refreshRow(hasher, "a1", "refresh-secret", time.Now().UTC().Add(-time.Minute)))

	_, err := repo.Rotate(context.Background(), "refresh-secret", 15*time.Minute, 720*time.Hour)

	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

// Проигравший гонку ротации conditional update получает ErrInvalidToken:
// refresh-секрет одноразовый ровно один раз
func TestRotate_LostRace(t *testing.T) {
	repo, mock, hasher := newTestRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM authentications WHERE refresh_fingerprint").
		WithArgs(hasher.Fingerprint("refresh-secret")).
		WillReturnRows(refreshRow(hasher, "a1", "refresh-secret", time.Now().UTC().Add(time.Hour)))
	mock.ExpectExec("UPDATE authentications").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Rotate(context.Background(), "refresh-secret", 15*time.Minute, 720*time.Hour)

	assert.ErrorIs(t, err, model.ErrInvalidToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRotate_Success(t *testing.T) {
	repo, mock, hasher := newTestRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM authentications WHERE refresh_fingerprint").
		WithArgs(hasher.Fingerprint("refresh-secret")).
		WillReturnRows(refreshRow(hasher, "a1", "refresh-secret", time.Now().UTC().Add(time.Hour)))
	mock.ExpectExec("UPDATE authentications").
		WillReturnResult(sqlmock.NewResult(0, 1))

	authentication, err := repo.Rotate(context.Background(), "refresh-secret", 15*time.Minute, 720*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, "a1", authentication.Identifier)

	require.NotNil(t, authentication.AccessToken)
	require.NotNil(t, authentication.RefreshToken)
	assert.Len(t, authentication.AccessToken.Value, 64)
	assert.Len(t, authentication.RefreshToken.Value, 64)
	assert.NotEqual(t, "refresh-secret", authentication.RefreshToken.Value)
	assert.NotEqual(t, authentication.AccessToken.Value, authentication.RefreshToken.Value)
	assert.True(t, authentication.AccessToken.ExpiresAt.After(time.Now().UTC()))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevoke_UnknownSecret(t *testing.T) {
	repo, mock, _ := newTestRepository(t)

	mock.ExpectQuery("UPDATE authentications").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Revoke(context.Background(), "unknown", model.TokenTypeAccess)

	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestRevoke_ClearsSingleSlot(t *testing.T) {
	repo, mock, hasher := newTestRepository(t)

	mock.ExpectQuery("SET access_fingerprint = NULL, access_expires_at = NULL").
		WithArgs(hasher.Fingerprint("access-secret")).
		WillReturnRows(sqlmock.NewRows([]string{"identifier"}).AddRow("a1"))

	identifier, err := repo.Revoke(context.Background(), "access-secret", model.TokenTypeAccess)

	require.NoError(t, err)
	assert.Equal(t, "a1", identifier)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, _ := newTestRepository(t)

	mock.ExpectExec("DELETE FROM authentications").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDelete_Success(t *testing.T) {
	repo, mock, _ := newTestRepository(t)

	mock.ExpectExec("DELETE FROM authentications").
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "a1")

	assert.NoError(t, err)
}
