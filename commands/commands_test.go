package commands

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"storefront-api/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("JWT_SECRET", "commands-test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/storefront_test")
	t.Setenv("LOG_FORMAT", "text")

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		dbURL = ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	userID := uuid.New()

	out, err := run(t, "token", "--user", userID.String(), "--email", "cli@test.com", "--ttl", "5m")
	require.NoError(t, err)

	claims, err := utils.ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "cli@test.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenCommandRejectsBadUser(t *testing.T) {
	_, err := run(t, "token", "--user", "not-a-uuid")
	assert.Error(t, err)
}

func TestMigrateCommandRejectsUnknownDirection(t *testing.T) {
	_, err := run(t, "migrate", "sideways")
	assert.Error(t, err)
}

func TestMissingConfigFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")
	t.Setenv("DATABASE_URL", "postgres://localhost/storefront_test")

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"token", "--user", uuid.NewString()})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestEmptyDatabaseURLFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "commands-test-secret")
	t.Setenv("DATABASE_URL", "")

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"token", "--user", uuid.NewString()})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestDBFlagOverridesEnvironment(t *testing.T) {
	_, err := run(t, "--db", "postgres://override/storefront", "token", "--user", uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, "postgres://override/storefront", cfg.DatabaseURL)
}

func TestSelfSeedCommand(t *testing.T) {
	cmd, err := selfSeedCommand()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(cmd, " seed"))
}
