package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tansive/archsrv/internal/archsrv/config"
	"github.com/tansive/archsrv/internal/archsrv/db"
	"github.com/tidwall/gjson"
)

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := executeCmd(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "archsrv v"+ServerVersion+"\n", out)

	out, err = executeCmd(t, "version", "--json")
	require.NoError(t, err)
	assert.Equal(t, "v"+ServerVersion, gjson.Get(out, "version").String())
}

func TestInitDBCmd(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "arch.db")
	t.Setenv(config.DatabaseURLEnv, "sqlite://"+dbFile)

	out, err := executeCmd(t, "initdb")
	require.NoError(t, err)
	assert.Contains(t, out, "reinitialized")

	c := config.Default()
	c.DB.URL = "sqlite://" + dbFile
	pool, err := db.NewPool(log.Logger.WithContext(context.Background()), c)
	require.NoError(t, err)
	defer pool.Close()
	ctx, err := db.ConnCtx(context.Background(), pool)
	require.NoError(t, err)
	defer db.DB(ctx).Close(ctx)
	list, err := db.DB(ctx).ListArchitectures(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	out, err = executeCmd(t, "initdb", "--json")
	require.NoError(t, err)
	assert.True(t, gjson.Get(out, "status").Bool())
}

func TestInitDBCmdWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	dbFile := filepath.Join(dir, "arch.db")
	cfgFile := filepath.Join(dir, "archsrv.toml")
	content := strings.Join([]string{
		`format_version = "0.1.0"`,
		`log_level = "error"`,
		`[db]`,
		`url = "sqlite://` + dbFile + `"`,
	}, "\n")
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0o600))
	t.Setenv(config.DatabaseURLEnv, "")
	os.Unsetenv(config.DatabaseURLEnv)

	_, err := executeCmd(t, "initdb", "--config", cfgFile)
	require.NoError(t, err)
	assert.FileExists(t, dbFile)
}

func TestConfigErrors(t *testing.T) {
	t.Setenv(config.DatabaseURLEnv, "mysql://localhost/arch_db")
	_, err := executeCmd(t, "initdb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database url scheme")

	t.Setenv(config.DatabaseURLEnv, "postgres://localhost:5432")
	_, err = executeCmd(t, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database name is required")

	_, err = executeCmd(t, "initdb", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
