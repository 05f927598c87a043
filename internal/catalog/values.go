package catalog

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts are the textual forms a created_on value may take when
// the driver does not hand back a time.Time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999 -0700",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// text renders a scanned value as a string. NULL becomes "".
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		if t {
			return "Y"
		}
		return "N"
	default:
		return fmt.Sprint(t)
	}
}

// nullable renders a scanned value as a string pointer, keeping NULL as nil.
func nullable(v any) *string {
	if v == nil {
		return nil
	}
	s := text(v)
	return &s
}

func timestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case nil:
		return time.Time{}, nil
	default:
		s := strings.TrimSpace(text(v))
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
	}
}
