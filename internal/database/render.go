package database

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Sigil marks a named placeholder in statement templates
const Sigil = '@'

// Quoter turns a string into a quoted SQL literal
type Quoter func(string) string

// Render substitutes every named placeholder of template with a literal of its bound value,
// quoting strings the way the PostgreSQL driver does.
// The output is for logs and error messages only and must never be executed.
func Render(template string, params map[string]interface{}) string {
	return RenderWith(pq.QuoteLiteral, template, params)
}

// RenderWith is Render with a caller-supplied string quoter.
// Placeholders may be written as @name or :name.
func RenderWith(quote Quoter, template string, params map[string]interface{}) string {
	if len(params) == 0 {
		return template
	}

	values := make(map[string]interface{}, len(params))
	for key, value := range params {
		values[normalizeKey(key)] = value
	}

	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); {
		if isSigil(template, i) {
			j := i + 1
			for j < len(template) && isNameByte(template[j]) {
				j++
			}
			if j > i+1 {
				if value, ok := values[string(Sigil)+template[i+1:j]]; ok {
					b.WriteString(Literal(quote, value))
					i = j
					continue
				}
			}
		}
		b.WriteByte(template[i])
		i++
	}
	return b.String()
}

// Literal renders a single bound value as an SQL literal
func Literal(quote Quoter, value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case string:
		return quote(v)
	case []byte:
		return quote(string(v))
	case bool:
		if v {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		if _, err := v.Float64(); err == nil {
			return v.String()
		}
		return quote(v.String())
	case time.Time:
		return quote(v.Format("2006-01-02 15:04:05"))
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "NULL"
		}
		return Literal(quote, rv.Elem().Interface())
	}
	return quote(fmt.Sprint(value))
}

func normalizeKey(key string) string {
	key = strings.TrimLeft(key, ":@")
	return string(Sigil) + key
}

// isSigil reports whether template[i] opens a placeholder; a PostgreSQL "::" cast never does
func isSigil(template string, i int) bool {
	switch template[i] {
	case Sigil:
		return true
	case ':':
		if i > 0 && template[i-1] == ':' {
			return false
		}
		return i+1 < len(template) && template[i+1] != ':'
	}
	return false
}

func isNameByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
