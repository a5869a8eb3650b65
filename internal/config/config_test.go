package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
dbname = "booking"
user = "booking"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 3, cfg.Database.SerializableRetries)
	assert.Equal(t, 8, cfg.Booking.OpenHour)
	assert.Equal(t, 17, cfg.Booking.CloseHour)
	assert.Equal(t, "APT/", cfg.Booking.ReferencePrefix)
	assert.Equal(t, 24, cfg.Notifications.ReminderWindowHours)
	assert.False(t, cfg.Lifecycle.StrictTransitions)
	assert.Equal(t, 24, cfg.Lifecycle.CustomerCancelNoticeHours)
	assert.Contains(t, cfg.Database.DSN(), "dbname=booking")
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
dbname = "booking"
password = "from-file"

[admin]
token = "file-token"
`)
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("ADMIN_TOKEN", "env-token")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-token", cfg.Admin.Token)
}

func TestLoad_MidnightOpeningIsKept(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
dbname = "booking"

[booking]
open_hour = 0
close_hour = 6

[lifecycle]
customer_cancel_notice_hours = 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Booking.OpenHour)
	assert.Equal(t, 6, cfg.Booking.CloseHour)
	assert.Equal(t, 0, cfg.Lifecycle.CustomerCancelNoticeHours)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing database", `[server]
http_port = 9000`},
		{"bad hours", `[database]
host = "h"
dbname = "d"
[booking]
open_hour = 18
close_hour = 9`},
		{"bad timezone", `[database]
host = "h"
dbname = "d"
[booking]
default_timezone = "Mars/Olympus"`},
		{"negative cancel notice", `[database]
host = "h"
dbname = "d"
[lifecycle]
customer_cancel_notice_hours = -1`},
		{"kafka without brokers", `[database]
host = "h"
dbname = "d"
[kafka]
enabled = true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
