package core

// TargetConfig holds warehouse target configuration.
type TargetConfig struct {
	Type string `koanf:"type"` // snowflake

	Account   string `koanf:"account"`
	User      string `koanf:"user"`
	Password  string `koanf:"password"`
	Role      string `koanf:"role"`
	Database  string `koanf:"database"`
	Warehouse string `koanf:"warehouse"`
	Schema    string `koanf:"schema"`

	// Additional driver-specific options (query_tag, login_timeout, ...)
	Options map[string]string `koanf:"options"`
}

// Missing returns the names of required credentials that are empty,
// in the order the warehouse login expects them.
func (t *TargetConfig) Missing() []string {
	if t == nil {
		return []string{"account", "user", "password", "role", "database", "warehouse", "schema"}
	}
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"account", t.Account},
		{"user", t.User},
		{"password", t.Password},
		{"role", t.Role},
		{"database", t.Database},
		{"warehouse", t.Warehouse},
		{"schema", t.Schema},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// AdapterConfig converts the target into the adapter connection settings.
func (t *TargetConfig) AdapterConfig() AdapterConfig {
	return AdapterConfig{
		Type:      t.Type,
		Account:   t.Account,
		Username:  t.User,
		Password:  t.Password,
		Role:      t.Role,
		Database:  t.Database,
		Warehouse: t.Warehouse,
		Schema:    t.Schema,
		Options:   t.Options,
	}
}

// Missing reports empty required credentials of the adapter settings.
func (c AdapterConfig) Missing() []string {
	t := TargetConfig{
		Account:   c.Account,
		User:      c.Username,
		Password:  c.Password,
		Role:      c.Role,
		Database:  c.Database,
		Warehouse: c.Warehouse,
		Schema:    c.Schema,
	}
	return t.Missing()
}
