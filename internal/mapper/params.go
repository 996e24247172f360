package mapper

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"
	"github.com/straye-as/kontragent-api/internal/domain"
)

// DateLayout is the canonical date format emitted for every date-bearing field
const DateLayout = "2006-01-02"

// DefaultTake is the page size used when none is requested
const DefaultTake = 100

// Params is the loosely typed input of a single request.
// Every accessor falls back to a default instead of failing.
type Params map[string]interface{}

// Has reports whether key is present with a non-nil value
func (p Params) Has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

// String returns the value of key as a string, or "" when absent
func (p Params) String(key string) string {
	return p.StringOr(key, "")
}

// StringOr returns the value of key as a string, or def when absent
func (p Params) StringOr(key, def string) string {
	if !p.Has(key) {
		return def
	}
	s, err := cast.ToStringE(p[key])
	if err != nil {
		return def
	}
	return s
}

// NullableString returns nil when key is absent, the string value otherwise
func (p Params) NullableString(key string) *string {
	if !p.Has(key) {
		return nil
	}
	s, err := cast.ToStringE(p[key])
	if err != nil {
		return nil
	}
	return &s
}

// Int returns the value of key coerced to an integer, 0 when absent or unparseable
func (p Params) Int(key string) int64 {
	if !p.Has(key) {
		return 0
	}
	return toInt(p[key])
}

// NullableInt returns nil when key is absent or empty, the coerced integer otherwise
func (p Params) NullableInt(key string) *int {
	if !p.Has(key) {
		return nil
	}
	if s, ok := p[key].(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}
	v := int(toInt(p[key]))
	return &v
}

// Bool returns the value of key as a flag
func (p Params) Bool(key string) bool {
	if !p.Has(key) {
		return false
	}
	if s, ok := p[key].(string); ok && strings.EqualFold(strings.TrimSpace(s), "on") {
		return true
	}
	if b, err := cast.ToBoolE(p[key]); err == nil {
		return b
	}
	return toInt(p[key]) != 0
}

// Date returns the value of key as a canonical YYYY-MM-DD date, nil when empty or unparseable
func (p Params) Date(key string) *string {
	if !p.Has(key) {
		return nil
	}
	return CanonicalDate(p.String(key))
}

// DateOrEmpty is Date for columns that do not accept NULL
func (p Params) DateOrEmpty(key string) string {
	if d := p.Date(key); d != nil {
		return *d
	}
	return ""
}

// KontragentType reads the type bucket from "kontragent", else "kontragent_type".
// Anything outside the known buckets yields Individual.
func (p Params) KontragentType() domain.KontragentType {
	key := "kontragent"
	if !p.Has(key) {
		key = "kontragent_type"
	}
	t := domain.KontragentType(p.Int(key))
	if !t.IsValid() {
		return domain.KontragentTypeIndividual
	}
	return t
}

// EditID reads the target kontragent id from "id_people", else "edit_id". 0 means create.
func (p Params) EditID() int64 {
	if p.Has("id_people") {
		return p.Int("id_people")
	}
	return p.Int("edit_id")
}

// JSON returns the value of key, decoding it first when it arrives as a JSON-encoded string
func (p Params) JSON(key string) interface{} {
	if !p.Has(key) {
		return nil
	}
	s, ok := p[key].(string)
	if !ok {
		return p[key]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil
	}
	return v
}

// dottedDate matches the day-first dd.mm.yyyy form of the client forms
var dottedDate = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})(.*)$`)

// dayFirst rewrites dd.mm.yyyy as yyyy-mm-dd. Other forms pass through unchanged.
func dayFirst(s string) string {
	m := dottedDate.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	return m[3] + "-" + pad2(m[2]) + "-" + pad2(m[1]) + m[4]
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// CanonicalDate parses a free-form date and re-emits it as YYYY-MM-DD.
// Dotted dates are day first, slashed dates month first.
func CanonicalDate(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "0000-00-00") {
		return nil
	}
	t, err := dateparse.ParseAny(dayFirst(s))
	if err != nil {
		return nil
	}
	out := t.Format(DateLayout)
	return &out
}

func toInt(v interface{}) int64 {
	switch val := v.(type) {
	case string:
		return parseLeadingInt(val)
	case json.Number:
		return parseLeadingInt(val.String())
	case bool:
		if val {
			return 1
		}
		return 0
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0
	}
	return n
}

// parseLeadingInt reads an optional sign and the leading decimal digits, so "12abc" is 12 and "abc" is 0
func parseLeadingInt(s string) int64 {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
