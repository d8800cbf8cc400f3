package postgres_test

import (
	"io/fs"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heraldhq/herald/internal/storage/postgres"
)

// goose.SetBaseFS is process-global, so no t.Parallel here.
func TestMigrationsCollectFromRoot(t *testing.T) {
	goose.SetBaseFS(postgres.Migrations)
	t.Cleanup(func() { goose.SetBaseFS(nil) })

	migrations, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Equal(t, int64(1), migrations[0].Version)
}

func TestMigrationFilesAtRoot(t *testing.T) {
	matches, err := fs.Glob(postgres.Migrations, "*.sql")
	require.NoError(t, err)
	assert.NotEmpty(t, matches)
}
