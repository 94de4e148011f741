package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REPORT_CONFIG", "")
	t.Setenv("MAX_UPLOAD_MB", "")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 0.5, cfg.MinUploadMB)
	require.Equal(t, 50.0, cfg.MaxUploadMB)
	require.Equal(t, int64(50*1024*1024), cfg.MaxUploadBytes())
	require.Equal(t, "127.0.0.1:8082", cfg.Addr())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.toml")
	body := `
[server]
port = 9000

[upload]
min_mb = 1
max_mb = 25
acquire_timeout = "5s"

[aliases]
quantity = ["volume m3", "qty"]
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("REPORT_CONFIG", path)
	t.Setenv("MAX_UPLOAD_MB", "30")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9000, cfg.Port)
	require.Equal(t, 1.0, cfg.MinUploadMB)
	require.Equal(t, 30.0, cfg.MaxUploadMB)
	require.Equal(t, 5*time.Second, cfg.AcquireTimeout)
	require.Equal(t, []string{"volume m3", "qty"}, cfg.Aliases["quantity"])
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[upload\nmin_mb = "), 0o644))
	t.Setenv("REPORT_CONFIG", path)
	_, err := Load()
	require.Error(t, err)
}

func TestLoadFileZeroMinimum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.toml")
	body := `
[upload]
min_mb = 0
target_max_mb = 2
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("REPORT_CONFIG", path)
	t.Setenv("MIN_UPLOAD_MB", "")
	t.Setenv("TARGET_MAX_UPLOAD_MB", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 0.0, cfg.MinUploadMB)
	require.Equal(t, int64(0), cfg.MinUploadBytes())
	require.Equal(t, 0.0, cfg.TargetMinUploadMB)
	require.Equal(t, 2.0, cfg.TargetMaxUploadMB)
}

func TestDefaultTargetBounds(t *testing.T) {
	cfg := Default()
	require.Zero(t, cfg.TargetMinUploadBytes())
	require.Equal(t, cfg.MaxUploadBytes(), cfg.TargetMaxUploadBytes())
}
