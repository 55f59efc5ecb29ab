package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rolecall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("it loads a well-defined config", func(t *testing.T) {
		path := writeConfig(t, `
token: "1234"
guild_id: "42"
prefix: distro
whitelist:
  - Red
  - Blue
role_color: "#ff8800"
max_roles: 3
database: /var/lib/rolecall/history.db
`)

		got, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "1234", got.Token)
		assert.Equal(t, "42", got.GuildID)
		assert.Equal(t, "distro", got.Prefix)
		assert.Equal(t, []string{"Red", "Blue"}, got.Whitelist)
		assert.Equal(t, 3, got.MaxRoles)
		assert.Equal(t, "/var/lib/rolecall/history.db", got.Database)

		color, err := got.Color()
		require.NoError(t, err)
		assert.Equal(t, 0xff8800, color)
	})

	t.Run("it applies defaults", func(t *testing.T) {
		path := writeConfig(t, `token: "1234"`)

		got, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "community", got.Prefix)
		assert.Equal(t, 1, got.MaxRoles)
		assert.Equal(t, "#1abc9c", got.RoleColor)
		assert.Equal(t, "info", got.LogLevel)
		assert.Equal(t, 90, got.HistoryRetentionDays)
	})

	t.Run("the environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, `
token: from-file
prefix: from-file
`)
		t.Setenv("ROLECALL_PREFIX", "from-env")

		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", got.Prefix)
		assert.Equal(t, "from-file", got.Token)
	})

	t.Run("it loads from the environment alone", func(t *testing.T) {
		t.Setenv("ROLECALL_TOKEN", "env-token")

		got, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "env-token", got.Token)
	})

	t.Run("it requires a token", func(t *testing.T) {
		path := writeConfig(t, `prefix: distro`)

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("it rejects a bad role color", func(t *testing.T) {
		path := writeConfig(t, `
token: "1234"
role_color: chartreuse
`)

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("it rejects a negative max_roles", func(t *testing.T) {
		path := writeConfig(t, `
token: "1234"
max_roles: -1
`)

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestRegistry(t *testing.T) {
	cfg := Config{
		Prefix:    "distro",
		Whitelist: []string{"Red", "blue"},
		RoleColor: "#1abc9c",
		MaxRoles:  2,
	}

	reg, err := cfg.Registry()
	require.NoError(t, err)

	assert.Equal(t, "distro", reg.Prefix())
	assert.Equal(t, 0x1abc9c, reg.Color())
	assert.Equal(t, 2, reg.MaxRoles())
	assert.Equal(t, []string{"Red", "blue"}, reg.Names())
}
