package tournament

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/geocoder89/tourneyhub/internal/apperr"
)

// timestamp layouts accepted for string-typed dates, zone-less ones are read as UTC
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// decoder reads loosely typed document fields and records every problem
// instead of stopping at the first one.
type decoder struct {
	raw  map[string]interface{}
	errs *apperr.ValidationError
}

func (d decoder) lookup(key string) (interface{}, bool) {
	v, ok := d.raw[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (d decoder) missing(key string) {
	d.errs.Add(key, "required", "", "is required")
}

func (d decoder) wrongType(key, want string) {
	d.errs.Add(key, "type", want, "must be of type "+want)
}

func (d decoder) requiredString(key string) string {
	v, ok := d.lookup(key)
	if !ok {
		d.missing(key)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.wrongType(key, "string")
	}
	return s
}

func (d decoder) optionalString(key string) *string {
	v, ok := d.lookup(key)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		d.wrongType(key, "string")
		return nil
	}
	return &s
}

func (d decoder) stringOr(key, fallback string) string {
	if s := d.optionalString(key); s != nil {
		return *s
	}
	return fallback
}

func (d decoder) requiredInt(key string) int64 {
	v, ok := d.lookup(key)
	if !ok {
		d.missing(key)
		return 0
	}
	n, ok := asInt(v)
	if !ok {
		d.wrongType(key, "integer")
	}
	return n
}

func (d decoder) intOr(key string, fallback int64) int64 {
	v, ok := d.lookup(key)
	if !ok {
		return fallback
	}
	n, ok := asInt(v)
	if !ok {
		d.wrongType(key, "integer")
		return fallback
	}
	return n
}

func (d decoder) boolOr(key string, fallback bool) bool {
	v, ok := d.lookup(key)
	if !ok {
		return fallback
	}
	b, ok := v.(bool)
	if !ok {
		d.wrongType(key, "boolean")
		return fallback
	}
	return b
}

func (d decoder) requiredTime(key string) time.Time {
	v, ok := d.lookup(key)
	if !ok {
		d.missing(key)
		return time.Time{}
	}
	t, ok := asTime(v)
	if !ok {
		d.wrongType(key, "timestamp")
	}
	return t
}

func (d decoder) optionalTime(key string) *time.Time {
	v, ok := d.lookup(key)
	if !ok {
		return nil
	}
	t, ok := asTime(v)
	if !ok {
		d.wrongType(key, "timestamp")
		return nil
	}
	return &t
}

func asInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	case float64:
		return wholeFloat(n)
	case float32:
		return wholeFloat(float64(n))
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func wholeFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// timer covers driver date types such as the mongo DateTime.
type timer interface {
	Time() time.Time
}

func asTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	case timer:
		return t.Time().UTC(), true
	case string:
		return parseTime(t)
	default:
		return time.Time{}, false
	}
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
