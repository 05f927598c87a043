package catalog

import (
	"strings"
	"time"

	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

const returnToken = "RETURN"

// DateLayout is the "Mon DD YYYY" rendering of creation timestamps.
const DateLayout = "Jan 02 2006"

// SplitSignature separates a listing signature such as
// "ADD(A NUMBER, B NUMBER) RETURN NUMBER" into the describe target
// "ADD(A NUMBER, B NUMBER)" and the return type "NUMBER".
//
// The target is everything before the first RETURN token minus the one
// separator character preceding it. Without the token the signature is the
// target unchanged and returns is "N/A".
func SplitSignature(sig string) (target, returns string) {
	idx := strings.Index(sig, returnToken)
	if idx < 0 {
		return sig, core.NotAvailable
	}

	target = sig[:max(idx-1, 0)]

	start := idx + len(returnToken) + 1
	if start > len(sig) {
		return target, core.NotAvailable
	}
	return target, sig[start:]
}

// NormalizeImports reduces an imports list literal to the file name of its
// last entry. "[]" and NULL become "N/A".
//
//	"[@stage/lib/helpers.py]" -> "helpers.py"
func NormalizeImports(raw *string) string {
	if raw == nil || *raw == "[]" {
		return core.NotAvailable
	}
	last := *raw
	if i := strings.LastIndex(last, "/"); i >= 0 {
		last = last[i+1:]
	}
	if last == "" {
		return last
	}
	return last[:len(last)-1]
}

// NormalizePackages strips exactly one leading '[' and one trailing ']'.
// NULL becomes "N/A".
func NormalizePackages(raw *string) string {
	if raw == nil {
		return core.NotAvailable
	}
	return strings.TrimSuffix(strings.TrimPrefix(*raw, "["), "]")
}

// FormatCreated renders a creation timestamp with DateLayout. Month names
// come from the time package, so the output does not depend on locale.
func FormatCreated(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
