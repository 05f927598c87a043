package snowflake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/snowflakedb/gosnowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/snowpark-explorer/pkg/adapter"
	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

func fullConfig() adapter.Config {
	return adapter.Config{
		Type:      "snowflake",
		Account:   "xy12345.us-east-1",
		Username:  "analyst",
		Password:  "secret",
		Role:      "SYSADMIN",
		Database:  "DEMO_DB",
		Warehouse: "COMPUTE_WH",
		Schema:    "PUBLIC",
	}
}

func TestBuildSnowflakeConfig(t *testing.T) {
	tests := []struct {
		name    string
		options map[string]string
		check   func(t *testing.T, got *gosnowflake.Config)
		wantErr string
	}{
		{
			name: "defaults",
			check: func(t *testing.T, got *gosnowflake.Config) {
				assert.Equal(t, "xy12345.us-east-1", got.Account)
				assert.Equal(t, "analyst", got.User)
				assert.Equal(t, "secret", got.Password)
				assert.Equal(t, "SYSADMIN", got.Role)
				assert.Equal(t, "DEMO_DB", got.Database)
				assert.Equal(t, "COMPUTE_WH", got.Warehouse)
				assert.Equal(t, "PUBLIC", got.Schema)
				assert.Equal(t, DefaultApplication, got.Application)
				assert.Nil(t, got.Params)
				assert.Zero(t, got.LoginTimeout)
			},
		},
		{
			name:    "query tag and application",
			options: map[string]string{"query_tag": "explorer", "application": "ops-dash"},
			check: func(t *testing.T, got *gosnowflake.Config) {
				require.Contains(t, got.Params, "QUERY_TAG")
				assert.Equal(t, "explorer", *got.Params["QUERY_TAG"])
				assert.Equal(t, "ops-dash", got.Application)
			},
		},
		{
			name:    "login timeout",
			options: map[string]string{"login_timeout": "15s"},
			check: func(t *testing.T, got *gosnowflake.Config) {
				assert.Equal(t, 15*time.Second, got.LoginTimeout)
			},
		},
		{
			name:    "invalid login timeout",
			options: map[string]string{"login_timeout": "soon"},
			wantErr: "invalid login_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fullConfig()
			cfg.Options = tt.options

			got, err := buildSnowflakeConfig(cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestConnect_MissingCredentials(t *testing.T) {
	cfg := fullConfig()
	cfg.Password = ""
	cfg.Schema = ""

	adp := New(nil)
	err := adp.Connect(context.Background(), cfg)
	require.Error(t, err)

	var connErr *core.ConnectionError
	require.True(t, errors.As(err, &connErr), "expected *core.ConnectionError, got %T", err)
	assert.Equal(t, []string{"password", "schema"}, connErr.Missing)
	assert.False(t, adp.IsConnected(), "adapter should not hold a connection after a failed login")
}

func TestConnect_InvalidOption(t *testing.T) {
	cfg := fullConfig()
	cfg.Options = map[string]string{"login_timeout": "later"}

	err := New(nil).Connect(context.Background(), cfg)

	var connErr *core.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "xy12345.us-east-1", connErr.Account)
}

func TestNew(t *testing.T) {
	adp := New(nil)
	require.NotNil(t, adp)
	assert.NotNil(t, adp.Logger, "nil logger should be replaced by a discard logger")
	assert.Equal(t, "snowflake", adp.DialectName())
	assert.NoError(t, adp.Close(), "closing an unconnected adapter should be a no-op")
}
