package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"webhook-verifier/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func endpointColumns() []string {
	return []string{"id", "platform", "secret_enc", "tolerance_seconds", "created_at", "updated_at"}
}

func TestEndpointRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEndpointRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("FROM webhook_endpoints WHERE id").
		WithArgs("ep_stripe").
		WillReturnRows(pgxmock.NewRows(endpointColumns()).
			AddRow("ep_stripe", " Stripe ", "enc-secret", 120, now, now))

	e, err := repo.GetByID(context.Background(), "ep_stripe")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "ep_stripe", e.ID)
	assert.Equal(t, domain.PlatformStripe, e.Platform, "stored platform is normalised")
	assert.Equal(t, "enc-secret", e.SecretEnc)
	assert.Equal(t, 120, e.ToleranceSeconds)
	assert.Equal(t, now, e.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEndpointRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEndpointRepo(mock)

	mock.ExpectQuery("SELECT id, platform").
		WithArgs("ep_missing").
		WillReturnError(pgx.ErrNoRows)

	e, err := repo.GetByID(context.Background(), "ep_missing")
	assert.NoError(t, err)
	assert.Nil(t, e)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEndpointRepo_GetByID_DBError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEndpointRepo(mock)
	dbErr := errors.New("connection reset by peer")

	mock.ExpectQuery("SELECT id, platform").
		WithArgs("ep_1").
		WillReturnError(dbErr)

	_, err = repo.GetByID(context.Background(), "ep_1")
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "get webhook endpoint by id")
}

func TestEndpointRepo_CountByPlatform(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEndpointRepo(mock)

	mock.ExpectQuery("SELECT platform, COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"platform", "count"}).
			AddRow("stripe", int64(3)).
			AddRow("GitHub", int64(1)).
			AddRow("github", int64(2)).
			AddRow("acme", int64(1)))

	counts, err := repo.CountByPlatform(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[domain.Platform]int{
		domain.PlatformStripe:   3,
		domain.PlatformGitHub:   3,
		domain.Platform("acme"): 1,
	}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEndpointRepo_CountByPlatform_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEndpointRepo(mock)

	mock.ExpectQuery("SELECT platform, COUNT").WillReturnError(errors.New("relation does not exist"))

	_, err = repo.CountByPlatform(context.Background())
	assert.Error(t, err)
}

func TestBootstrap(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS webhook_endpoints").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS webhook_endpoints_platform_idx").
		WillReturnResult(pgxmock.NewResult("CREATE INDEX", 0))

	require.NoError(t, Bootstrap(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBootstrap_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))

	err = Bootstrap(context.Background(), mock)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bootstrap schema")
}

func TestHealthCheck(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	hc := NewHealthCheck(mock)
	assert.Equal(t, "postgresql", hc.Name())

	mock.ExpectPing()
	mock.ExpectQuery("to_regclass").
		WillReturnRows(pgxmock.NewRows([]string{"present"}).AddRow(true))
	assert.NoError(t, hc.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("dial tcp: connection refused"))
	assert.Error(t, hc.Ping(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck_SchemaMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	hc := NewHealthCheck(mock)

	mock.ExpectPing()
	mock.ExpectQuery("to_regclass").
		WillReturnRows(pgxmock.NewRows([]string{"present"}).AddRow(false))
	assert.ErrorIs(t, hc.Ping(context.Background()), errSchemaMissing)

	mock.ExpectPing()
	mock.ExpectQuery("to_regclass").WillReturnError(errors.New("permission denied"))
	err = hc.Ping(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "checking endpoint schema")

	assert.NoError(t, mock.ExpectationsWereMet())
}
