package repository

import (
	"strings"

	"github.com/straye-as/kontragent-api/internal/database"
	"github.com/straye-as/kontragent-api/internal/domain"
)

// Executed pairs a statement with its result so callers can log the rendered SQL
type Executed struct {
	Statement database.Statement
	database.Result
}

func executed(st database.Statement, res database.Result) Executed {
	return Executed{Statement: st, Result: res}
}

// kontragentSortColumns whitelists grid sort selectors
var kontragentSortColumns = map[string]string{
	"id":          "k.id",
	"fio":         "k.fio",
	"name":        "k.name",
	"shortname":   "k.shortname",
	"inn":         "k.inn",
	"phone":       "k.phone",
	"email":       "k.email",
	"address":     "k.address",
	"is_delete":   "k.is_delete",
	"is_operator": "k.is_operator",
}

// kontragentFilterColumns whitelists structural filter fields
var kontragentFilterColumns = map[string]string{
	"fio":       "k.fio",
	"name":      "k.name",
	"shortname": "k.shortname",
	"inn":       "k.inn",
	"phone":     "k.phone",
	"email":     "k.email",
	"address":   "k.address",
}

// kontragentSearchColumns are OR-combined by the free-text search
var kontragentSearchColumns = []string{"k.fio", "k.name", "k.shortname", "k.address", "k.inn", "k.phone", "k.email"}

const defaultKontragentOrder = "k.id ASC"

// BuildOrderClause renders a grid sort specification against a column whitelist.
// Unknown selectors are dropped; an empty result falls back to defaultOrder.
func BuildOrderClause(sort []domain.SortItem, columns map[string]string, defaultOrder string) string {
	parts := make([]string, 0, len(sort))
	for _, item := range sort {
		column, ok := columns[item.Selector]
		if !ok {
			continue
		}
		order := "ASC"
		if item.Desc {
			order = "DESC"
		}
		parts = append(parts, column+" "+order)
	}
	if len(parts) == 0 {
		return defaultOrder
	}
	return strings.Join(parts, ", ")
}

// likePattern builds a case-insensitive contains pattern
func likePattern(value string) string {
	return "%" + strings.ToLower(value) + "%"
}

// nullable unwraps optional values so drivers and the renderer see plain values or nil
func nullable[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
