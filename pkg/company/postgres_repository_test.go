package company

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDatabase(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	dbName := "portal_db"
	dbUser := "portal"
	dbPassword := "pwd"

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithInitScripts(filepath.Join("../../migrations", "portal_db.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	require.NoError(t, err)

	connString, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	poolConfig, err := pgxpool.ParseConfig(connString)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

func TestPostgresCompanyRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pool, cleanup := setupTestDatabase(t)
	defer cleanup()

	repo, err := NewPostgresCompanyRepository(pool)
	require.NoError(t, err)
	ctx := context.Background()

	created, err := repo.CreateCompany(ctx, Company{
		Name:             "Acme Partners",
		CompanyType:      "Reseller",
		Website:          "https://acme.example.com",
		ContactEmail:     "contact@acme.example.com",
		SpocName:         "Jane Doe",
		SpocEmail:        "jane@acme.example.com",
		Country:          "US",
		ServingRegions:   "NA,EU",
		PartnerStage:     "Registered",
		Tags:             []string{"cloud", "security"},
		PayoutPercentage: 0.15,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, []string{"cloud", "security"}, created.Tags)
	assert.Equal(t, 0.15, created.PayoutPercentage)

	got, err := repo.GetCompany(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Tags, got.Tags)

	byName, err := repo.GetCompanyByName(ctx, "Acme Partners")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	bySpoc, err := repo.GetCompanyBySpocEmail(ctx, "jane@acme.example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySpoc.ID)

	got.Published = true
	got.Tags = []string{"cloud"}
	updated, err := repo.UpdateCompany(ctx, got)
	require.NoError(t, err)
	assert.True(t, updated.Published)
	assert.Equal(t, []string{"cloud"}, updated.Tags)

	ids, err := repo.ListCompanyIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{created.ID}, ids)

	require.NoError(t, repo.DeleteCompany(ctx, created.ID))
	_, err = repo.GetCompany(ctx, created.ID)
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	_, err = repo.GetCompanyByName(ctx, "Acme Partners")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}
