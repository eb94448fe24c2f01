package postgres

import (
	"io"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsSource(t *testing.T) {
	source, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)
	t.Cleanup(func() { _ = source.Close() })

	first, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, identifier, err := source.ReadUp(first)
	require.NoError(t, err)
	defer up.Close()
	assert.Equal(t, "create_users", identifier)

	body, err := io.ReadAll(up)
	require.NoError(t, err)
	sql := string(body)
	assert.True(t, strings.Contains(sql, "users_email_key"))
	assert.True(t, strings.Contains(sql, "users_external_id_key"))

	down, _, err := source.ReadDown(first)
	require.NoError(t, err)
	down.Close()
}
