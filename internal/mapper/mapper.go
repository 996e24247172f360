package mapper

import (
	"github.com/straye-as/kontragent-api/internal/domain"
)

// ToKontragentDetailsDTO canonicalizes the date-bearing fields of a loaded kontragent
// and derives its type bucket
func ToKontragentDetailsDTO(details *domain.KontragentDetails) *domain.KontragentDetails {
	details.Birthday = canonicalNullable(details.Birthday)
	details.PassportData = canonicalNullable(details.PassportData)
	if details.OrderDate != nil && *details.OrderDate != "" {
		details.OrderDate = canonicalNullable(details.OrderDate)
	}
	if t, ok := domain.TypeFromColumns(details.Typeuser, details.IsOperator); ok {
		details.KontragentType = t
	}
	return details
}

// ToContractRows canonicalizes the effective date of each contract row
func ToContractRows(rows []domain.ContractRow) []domain.ContractRow {
	for i := range rows {
		rows[i].Dtfrom = canonicalNullable(rows[i].Dtfrom)
	}
	return rows
}

func canonicalNullable(s *string) *string {
	if s == nil {
		return nil
	}
	return CanonicalDate(*s)
}
