package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "retroboard", cmd.Use)
	assert.Contains(t, cmd.Long, "activity feed")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"serve", "migrate", "purge-posts"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			require.NotNil(t, sub)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)
}

func TestPurgeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	purge, _, err := cmd.Find([]string{"purge-posts"})
	require.NoError(t, err)
	days := purge.Flags().Lookup("days")
	require.NotNil(t, days)
	assert.Equal(t, "0", days.DefValue)
}

func sqliteEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("LOG_LEVEL", "error")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrateAndPurge(t *testing.T) {
	sqliteEnv(t)

	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migrations applied")

	out, err = execute(t, "purge-posts", "--days", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "purged 0 posts")

	out, err = execute(t, "purge-posts")
	require.NoError(t, err)
	assert.Contains(t, out, "purged 0 posts")
}

func TestPurgeRejectsNonPositiveDays(t *testing.T) {
	sqliteEnv(t)
	_, err := execute(t, "purge-posts", "--days", "0")
	assert.Error(t, err)
}

func TestUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	t.Setenv("LOG_LEVEL", "error")
	_, err := execute(t, "migrate")
	assert.Error(t, err)
}
