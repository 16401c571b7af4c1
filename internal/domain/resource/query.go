package resource

import (
	"fmt"
	"sort"
	"strings"
)

// ListQuery narrows and orders a listing. Both knobs are permissive:
// arguments that cannot be applied are ignored, never an error, matching
// the tolerant behavior of the apps this store descends from.
type ListQuery struct {
	// Filter is a case-insensitive substring matched against the
	// definition's text fields (or every string field when none are named).
	Filter string
	// Sort names the field to order by; a leading '-' flips to descending.
	// Unknown or malformed names leave the collection in insertion order.
	Sort string
}

// IsZero reports whether the query changes anything.
func (q ListQuery) IsZero() bool {
	return strings.TrimSpace(q.Filter) == "" && strings.TrimSpace(q.Sort) == ""
}

// Apply filters and sorts records in place of the caller's slice, returning
// a new slice. Input order is insertion order and is preserved for ties and
// for records missing the sort field (stable sort).
func (q ListQuery) Apply(def Definition, records []Record) []Record {
	out := records
	if needle := strings.TrimSpace(q.Filter); needle != "" {
		out = filterRecords(def, out, needle)
	}
	if field, desc, ok := parseSort(q.Sort); ok {
		out = sortRecords(out, field, desc)
	}
	return out
}

func filterRecords(def Definition, records []Record, needle string) []Record {
	needle = strings.ToLower(needle)
	matched := make([]Record, 0, len(records))
	for _, rec := range records {
		if recordMatches(def, rec, needle) {
			matched = append(matched, rec)
		}
	}
	return matched
}

func recordMatches(def Definition, rec Record, needle string) bool {
	if len(def.TextFields) > 0 {
		for _, f := range def.TextFields {
			if s, ok := rec.Fields[f].(string); ok && strings.Contains(strings.ToLower(s), needle) {
				return true
			}
		}
		return false
	}
	for _, v := range rec.Fields {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// parseSort validates the sort argument. Malformed arguments (empty,
// whitespace, non-identifier characters) report ok=false and are ignored.
func parseSort(arg string) (field string, desc bool, ok bool) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", false, false
	}
	if strings.HasPrefix(arg, "-") {
		desc = true
		arg = arg[1:]
	}
	if arg == "" {
		return "", false, false
	}
	for _, r := range arg {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '_' {
			return "", false, false
		}
	}
	return arg, desc, true
}

func sortRecords(records []Record, field string, desc bool) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	if field == "id" {
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].ID > out[j].ID
			}
			return out[i].ID < out[j].ID
		})
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := out[i].Fields[field]
		b, bok := out[j].Fields[field]
		// Records without the field keep their relative order after those
		// that have it.
		if !aok || !bok {
			return aok && !bok
		}
		less := lessValues(a, b)
		if desc {
			return !less && !equalValues(a, b)
		}
		return less
	})
	return out
}

// lessValues orders two field values: numbers numerically, everything else
// by its case-insensitive string form. Mixed kinds fall back to the string
// form as well, so the ordering is total and deterministic.
func lessValues(a, b any) bool {
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		return af < bf
	}
	return strings.ToLower(stringForm(a)) < strings.ToLower(stringForm(b))
}

func equalValues(a, b any) bool {
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		return af == bf
	}
	return strings.EqualFold(stringForm(a), stringForm(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func stringForm(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
