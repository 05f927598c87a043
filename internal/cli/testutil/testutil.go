// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/snowpark-explorer/internal/testutil/fakewarehouse"
)

// SnowSQLVars lists the credential variables read from the environment.
var SnowSQLVars = []string{
	"SNOWSQL_ACT", "SNOWSQL_USR", "SNOWSQL_PWD", "SNOWSQL_ROL",
	"SNOWSQL_DBT", "SNOWSQL_WRH", "SNOWSQL_SCH",
}

// Isolate runs the test in an empty directory with no credential or
// SPEXPLORER_ variables set.
func Isolate(t *testing.T) string {
	t.Helper()
	for _, key := range SnowSQLVars {
		unsetenv(t, key)
	}
	for _, kv := range os.Environ() {
		if key, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(key, "SPEXPLORER_") {
			unsetenv(t, key)
		}
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
}

// SetCredentials points the explorer at adapter type adapterType with a
// complete set of credentials.
func SetCredentials(t *testing.T, adapterType string) {
	t.Helper()
	t.Setenv("SPEXPLORER_TARGET__TYPE", adapterType)
	t.Setenv("SNOWSQL_ACT", "xy12345")
	t.Setenv("SNOWSQL_USR", "analyst")
	t.Setenv("SNOWSQL_PWD", "secret")
	t.Setenv("SNOWSQL_ROL", "SYSADMIN")
	t.Setenv("SNOWSQL_DBT", fakewarehouse.Database)
	t.Setenv("SNOWSQL_WRH", "COMPUTE_WH")
	t.Setenv("SNOWSQL_SCH", fakewarehouse.Schema)
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and basic structure.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	// Check for balanced code fences
	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	// Check that headers have content
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
