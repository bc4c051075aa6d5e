package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_EmbeddedInOrder(t *testing.T) {
	names, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{"00001_create_users.sql", "00002_create_tasks.sql"}, names)

	for _, n := range names {
		b, err := fs.ReadFile(Migrations, n)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(b), "-- +goose Up"), n)
		assert.True(t, strings.Contains(string(b), "-- +goose Down"), n)
	}
}
