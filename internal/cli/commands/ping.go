package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/snowpark-explorer/internal/present"
)

// pingSQL reports the context of the authenticated session.
const pingSQL = "SELECT CURRENT_ACCOUNT(), CURRENT_USER(), CURRENT_ROLE(), CURRENT_WAREHOUSE(), CURRENT_DATABASE(), CURRENT_SCHEMA(), CURRENT_VERSION()"

var pingKeys = []string{"account", "user", "role", "warehouse", "database", "schema", "version"}

// NewPingCommand creates the ping command.
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check warehouse credentials and show the session context",
		Long: `Open a warehouse session with the configured credentials and report the
account, role, warehouse, database, schema and server version it resolved to.

Credentials come from the SNOWSQL_ACT, SNOWSQL_USR, SNOWSQL_PWD, SNOWSQL_ROL,
SNOWSQL_DBT, SNOWSQL_WRH and SNOWSQL_SCH environment variables or the target
section of snowpark-explorer.yaml.`,
		Example: `  snowpark-explorer ping
  snowpark-explorer ping --output json`,
		Args: cobra.NoArgs,
		RunE: runPing,
	}
}

func runPing(cmd *cobra.Command, _ []string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cmdCtx.Cfg.ValidateCredentials(); err != nil {
		return err
	}

	sess, err := cmdCtx.Session.Session(cmd.Context())
	if err != nil {
		return err
	}

	rs, err := sess.FetchAll(cmd.Context(), pingSQL)
	if err != nil {
		return err
	}
	if rs.Len() != 1 || len(rs.Rows[0]) < len(pingKeys) {
		return fmt.Errorf("unexpected session context result: %d rows", rs.Len())
	}

	props := make([]present.Property, 0, len(pingKeys))
	for i, key := range pingKeys {
		props = append(props, present.Property{Key: key, Value: fmt.Sprint(valueOrEmpty(rs.Rows[0][i]))})
	}
	return cmdCtx.Renderer.RenderProperties(cmd.OutOrStdout(), "Connected", props)
}

func valueOrEmpty(v any) any {
	if v == nil {
		return ""
	}
	return v
}
