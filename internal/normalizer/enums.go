package normalizer

import (
	"strings"

	"github.com/scan-io-git/sarifclean/internal/tree"
)

// Enum is a SARIF string enumeration that the vendor export may encode as an ordinal.
// The ordinals follow the vendor's encoding, which is not always the order used by the SARIF schema.
type Enum struct {
	Field  string
	values []string
}

var (
	// LevelEnum is the severity of results, rule configurations and notifications.
	LevelEnum = Enum{
		Field:  "level",
		values: []string{"none", "note", "warning", "error"},
	}
	// KindEnum is result.kind, in the vendor's ordinal order.
	KindEnum = Enum{
		Field:  "kind",
		values: []string{"notApplicable", "pass", "fail", "open", "informational", "review"},
	}
	// BaselineStateEnum is result.baselineState.
	BaselineStateEnum = Enum{
		Field:  "baselineState",
		values: []string{"new", "unchanged", "updated", "absent"},
	}
	// ColumnKindEnum is run.columnKind.
	ColumnKindEnum = Enum{
		Field:  "columnKind",
		values: []string{"unicodeCodePoints", "utf16CodeUnits"},
	}
)

// Coerce maps v to its canonical string. The boolean is false when v has no
// canonical representation and the field must be dropped.
func (e Enum) Coerce(v any) (string, bool) {
	if ordinal, ok := tree.Int(v); ok {
		if ordinal < 0 || ordinal >= int64(len(e.values)) {
			return "", false
		}
		return e.values[ordinal], true
	}

	if s, ok := tree.String(v); ok {
		for _, canonical := range e.values {
			if strings.EqualFold(strings.TrimSpace(s), canonical) {
				return canonical, true
			}
		}
	}
	return "", false
}

// Contains reports whether s is already a canonical value.
func (e Enum) Contains(s string) bool {
	for _, canonical := range e.values {
		if s == canonical {
			return true
		}
	}
	return false
}
