package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/snowpark-explorer/internal/catalog"
	"github.com/leapstack-labs/snowpark-explorer/pkg/core"

	// Import adapter packages to ensure adapters are registered via init()
	_ "github.com/leapstack-labs/snowpark-explorer/pkg/adapters/snowflake"
)

// isolate runs the test in an empty directory with no explorer variables set.
func isolate(t *testing.T) string {
	t.Helper()
	ResetConfig()
	t.Cleanup(ResetConfig)

	for key := range snowsqlEnv {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	for _, kv := range os.Environ() {
		if key, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(key, EnvPrefix) {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}

	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func setSnowSQL(t *testing.T) {
	t.Helper()
	t.Setenv("SNOWSQL_ACT", "xy12345")
	t.Setenv("SNOWSQL_USR", "analyst")
	t.Setenv("SNOWSQL_PWD", "secret")
	t.Setenv("SNOWSQL_ROL", "SYSADMIN")
	t.Setenv("SNOWSQL_DBT", "DEMO_DB")
	t.Setenv("SNOWSQL_WRH", "COMPUTE_WH")
	t.Setenv("SNOWSQL_SCH", "PUBLIC")
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "snowflake", cfg.Target.Type)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, catalog.FailFast, cfg.Explorer.Policy())
	ui := cfg.GetUIConfig()
	assert.Equal(t, 8765, ui.Port)
	assert.Equal(t, "127.0.0.1", ui.Host)
	assert.True(t, ui.AutoOpen)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_SnowSQLEnvironment(t *testing.T) {
	isolate(t)
	setSnowSQL(t)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "xy12345", cfg.Target.Account)
	assert.Equal(t, "analyst", cfg.Target.User)
	assert.Equal(t, "secret", cfg.Target.Password)
	assert.Equal(t, "SYSADMIN", cfg.Target.Role)
	assert.Equal(t, "DEMO_DB", cfg.Target.Database)
	assert.Equal(t, "COMPUTE_WH", cfg.Target.Warehouse)
	assert.Equal(t, "PUBLIC", cfg.Target.Schema)
	assert.NoError(t, cfg.ValidateCredentials())
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "snowpark-explorer.yaml"), `
target:
  account: from_file
  user: file_user
  password: ${TEST_SPX_PASSWORD}
  role: ANALYST
  database: FILE_DB
  warehouse: FILE_WH
  schema: FILE_SCH
  options:
    query_tag: ${TEST_SPX_TAG}
ui:
  port: 9100
explorer:
  partial: true
output: json
`)
	t.Setenv("TEST_SPX_PASSWORD", "expanded")
	t.Setenv("TEST_SPX_TAG", "explorer")
	t.Setenv("SNOWSQL_DBT", "ENV_DB")
	t.Setenv("SNOWSQL_SCH", "")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "snowpark-explorer.yaml", GetConfigFileUsed())
	assert.Equal(t, "from_file", cfg.Target.Account)
	assert.Equal(t, "expanded", cfg.Target.Password)
	assert.Equal(t, "explorer", cfg.Target.Options["query_tag"])
	assert.Equal(t, "ENV_DB", cfg.Target.Database, "environment overrides the file")
	assert.Equal(t, "FILE_SCH", cfg.Target.Schema, "empty variables do not blank file values")
	assert.Equal(t, 9100, cfg.GetUIConfig().Port)
	assert.Equal(t, catalog.Partial, cfg.Explorer.Policy())
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yml")
	writeFile(t, path, "output: csv\n")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, GetConfigFileUsed())
	assert.Equal(t, "csv", cfg.OutputFormat)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := LoadConfig("does-not-exist.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "SNOWSQL_WRH=DOTENV_WH\nSNOWSQL_ROL=DOTENV_ROLE\n")
	t.Setenv("SNOWSQL_ROL", "REAL_ROLE")
	t.Cleanup(func() { _ = os.Unsetenv("SNOWSQL_WRH") })

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "DOTENV_WH", cfg.Target.Warehouse)
	assert.Equal(t, "REAL_ROLE", cfg.Target.Role, "real environment wins over .env")
}

func TestLoadConfig_PrefixedEnv(t *testing.T) {
	isolate(t)
	t.Setenv("SPEXPLORER_OUTPUT", "yaml")
	t.Setenv("SPEXPLORER_UI__PORT", "9200")
	t.Setenv("SPEXPLORER_UI__AUTO_OPEN", "false")
	t.Setenv("SPEXPLORER_EXPLORER__PARTIAL", "true")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.OutputFormat)
	assert.Equal(t, 9200, cfg.GetUIConfig().Port)
	assert.False(t, cfg.GetUIConfig().AutoOpen)
	assert.True(t, cfg.Explorer.Partial)
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	isolate(t)
	t.Setenv("SPEXPLORER_OUTPUT", "yaml")
	t.Setenv("SPEXPLORER_UI__PORT", "9200")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", DefaultOutput, "")
	flags.Int("port", DefaultPort, "")
	flags.Bool("partial", false, "")
	flags.Bool("verbose", false, "")
	require.NoError(t, flags.Parse([]string{"--output", "csv", "--partial"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.OutputFormat, "flag overrides env")
	assert.Equal(t, 9200, cfg.GetUIConfig().Port, "unset flag keeps env value")
	assert.True(t, cfg.Explorer.Partial)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		errSubstr string
	}{
		{"unknown adapter", "target:\n  type: mysql\n", "unknown adapter type"},
		{"bad output", "output: xml\n", "unknown output format"},
		{"bad port", "ui:\n  port: 70000\n", "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			writeFile(t, filepath.Join(dir, "snowpark-explorer.yaml"), tt.yaml)

			_, err := LoadConfig("", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestValidateTarget(t *testing.T) {
	tests := []struct {
		name      string
		target    *TargetConfig
		errSubstr string
	}{
		{"nil", nil, "target type is required"},
		{"empty type", &TargetConfig{}, "target type is required"},
		{"snowflake", &TargetConfig{Type: "snowflake"}, ""},
		{"snowflake uppercase", &TargetConfig{Type: "Snowflake"}, ""},
		{"unknown", &TargetConfig{Type: "oracle"}, "unknown adapter type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTarget(tt.target)
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConfig_ValidateCredentials(t *testing.T) {
	cfg := &Config{Target: &TargetConfig{Type: "snowflake", Account: "acct", User: "u"}}

	err := cfg.ValidateCredentials()

	var connErr *core.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, []string{"password", "role", "database", "warehouse", "schema"}, connErr.Missing)
	assert.Contains(t, err.Error(), "SNOWSQL_PWD")
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR_ONE", "value_one")
	t.Setenv("TEST_VAR_TWO", "value_two")

	tests := []struct {
		in   string
		want string
	}{
		{"${TEST_VAR_ONE}", "value_one"},
		{"prefix_${TEST_VAR_ONE}_${TEST_VAR_TWO}", "prefix_value_one_value_two"},
		{"${TEST_VAR_UNSET_XYZ}", "${TEST_VAR_UNSET_XYZ}"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, expandEnvVars(tt.in))
		})
	}
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "missing logger falls back to discard")
}
