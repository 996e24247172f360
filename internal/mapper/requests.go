package mapper

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
	"github.com/straye-as/kontragent-api/internal/domain"
)

var validate = validator.New()

// Validate runs struct tag validation on a decoded request
func Validate(req interface{}) error {
	return validate.Struct(req)
}

// kontragentIdentity is the presence rule for save: a name or a full name
type kontragentIdentity struct {
	Name string `validate:"required_without=Fio"`
	Fio  string `validate:"required_without=Name"`
}

// ValidateKontragentIdentity checks that at least one of name and fio is non-blank
func ValidateKontragentIdentity(f *domain.KontragentFields) error {
	id := kontragentIdentity{}
	if f.Name != nil {
		id.Name = strings.TrimSpace(*f.Name)
	}
	if f.Fio != nil {
		id.Fio = strings.TrimSpace(*f.Fio)
	}
	return validate.Struct(id)
}

// ToListKontragentRequest decodes get_kontragent_list input
func ToListKontragentRequest(p Params) domain.ListKontragentRequest {
	req := domain.ListKontragentRequest{
		Type:         p.KontragentType(),
		Skip:         int(p.Int("skip")),
		Take:         int(p.Int("take")),
		Search:       strings.TrimSpace(p.StringOr("searchValue", p.String("search"))),
		RawFilter:    p.JSON("filter"),
		DeleteStatus: domain.DeleteStatus(p.StringOr("is_delete_status", string(domain.DeleteStatusActive))),
	}
	if req.Skip < 0 {
		req.Skip = 0
	}
	if req.Take <= 0 {
		req.Take = DefaultTake
	}
	req.Filter = toFilterTriple(req.RawFilter)
	req.Sort = toSortItems(p.JSON("sort"))
	return req
}

// toFilterTriple accepts only the flat [field, operator, value] shape.
// Compound filters such as [[...], "and", [...]] are ignored.
func toFilterTriple(raw interface{}) *domain.FilterTriple {
	items, ok := raw.([]interface{})
	if !ok || len(items) != 3 {
		return nil
	}
	field, ok := items[0].(string)
	if !ok {
		return nil
	}
	op, ok := items[1].(string)
	if !ok {
		return nil
	}
	value, err := cast.ToStringE(items[2])
	if err != nil {
		return nil
	}
	return &domain.FilterTriple{Field: field, Operator: op, Value: value}
}

func toSortItems(raw interface{}) []domain.SortItem {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	sort := make([]domain.SortItem, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		selector := Params(m).String("selector")
		if selector == "" {
			continue
		}
		sort = append(sort, domain.SortItem{Selector: selector, Desc: Params(m).Bool("desc")})
	}
	return sort
}

// ToGetKontragentRequest decodes get_kontragent_data input
func ToGetKontragentRequest(p Params) domain.GetKontragentRequest {
	return domain.GetKontragentRequest{ID: p.EditID()}
}

// ToSaveKontragentRequest decodes save_kontragent input
func ToSaveKontragentRequest(p Params) domain.SaveKontragentRequest {
	return domain.SaveKontragentRequest{
		EditID: p.EditID(),
		Type:   p.KontragentType(),
		Fields: domain.KontragentFields{
			Name:              p.NullableString("name"),
			Shortname:         p.NullableString("shortname"),
			Inn:               p.NullableString("inn"),
			Kpp:               p.NullableString("kpp"),
			Ogrn:              p.String("ogrn"),
			Bank:              p.NullableString("bank"),
			Bik:               p.NullableString("bik"),
			Rs:                p.NullableString("rs"),
			Ks:                p.NullableString("ks"),
			Ua:                p.NullableString("ua"),
			DirektorFio:       p.NullableString("direktor_fio"),
			DirektorStatus:    p.NullableString("direktor_status"),
			BuhFio:            p.NullableString("buh_fio"),
			TaxOwn:            int(p.Int("tax_own")),
			Tax:               int(p.Int("tax")),
			IDCity:            p.Int("id_city"),
			IDRegion:          p.Int("id_region"),
			IsOkved:           p.NullableString("isOkved"),
			CanCreateSubagent: int(p.Int("can_create_subagent")),
			AllowPrintVaucher: int(p.Int("allow_print_vaucher")),
			IsOperator:        p.Bool("is_operator"),
			Birthday:          p.Date("birthday"),
			Phone:             p.NullableString("phone"),
			Phone1:            p.NullableString("phone1"),
			Phone2:            p.NullableString("phone2"),
			Email:             p.NullableString("email"),
			Zipcode:           p.NullableString("zipcode"),
			PassportS:         p.NullableString("passport_s"),
			PassportN:         p.NullableString("passport_n"),
			PassportData:      p.Date("passport_data"),
			PassportWho:       p.NullableString("passport_who"),
			DiscountNum:       p.NullableString("discount_num"),
			Discount:          p.NullableInt("discount"),
			Fax:               p.NullableString("fax"),
			Fio:               p.NullableString("fio"),
			Address:           p.NullableString("address"),
			CityFizik:         p.NullableString("city_fizik"),
			Occupation:        p.NullableString("occupation"),
			Workplace:         p.NullableString("workplace"),
		},
		Operator: domain.OperatorFields{
			Reestrnum:                     p.String("reestrnum"),
			Website:                       p.String("website"),
			Membership:                    p.String("membership"),
			AmountFinancialSupport:        int(p.Int("amount_financial_support")),
			FinancialSupport:              int(p.Int("financial_support")),
			MethodFinancialSupport:        p.String("method_financial_support"),
			Document:                      p.String("document"),
			TermFinancialSupport:          p.String("term_financial_support"),
			FirmNameFinancialSupport:      p.String("firm_name_financial_support"),
			AdressFirmFinancialSupport:    p.String("adress_firm_financial_support"),
			ZipadressFirmFinancialSupport: p.String("zipadress_firm_financial_support"),
			ScopeOperator:                 p.String("scope_operator"),
			OrderNumber:                   p.String("order_number"),
			OrderDate:                     p.DateOrEmpty("order_date"),
			CertificateNumber:             p.String("certificate_number"),
		},
		Raw: map[string]interface{}(p),
	}
}

// ToListContractsRequest decodes get_contracts input
func ToListContractsRequest(p Params) domain.ListContractsRequest {
	return domain.ListContractsRequest{
		KontragentID: p.Int("kontragent_id"),
		CompanyID:    p.Int("company_id"),
	}
}

// ToSaveContractRequest decodes save_contract input.
// A missing year falls back to the year of dtfrom, then to the year of now.
func ToSaveContractRequest(p Params, now time.Time) domain.SaveContractRequest {
	req := domain.SaveContractRequest{
		ID:           p.Int("id"),
		KontragentID: p.Int("id_kontragent"),
		CompanyID:    p.Int("id_company"),
		Num:          p.String("num"),
		Dtfrom:       p.Date("dtfrom"),
		Year:         int(p.Int("year")),
	}
	if req.Year == 0 {
		req.Year = now.Year()
		if req.Dtfrom != nil {
			if t, err := time.Parse(DateLayout, *req.Dtfrom); err == nil {
				req.Year = t.Year()
			}
		}
	}
	return req
}

// ToDeleteContractRequest decodes delete_contract input
func ToDeleteContractRequest(p Params) domain.DeleteContractRequest {
	return domain.DeleteContractRequest{
		ID:           p.Int("id"),
		KontragentID: p.Int("id_kontragent"),
	}
}

// ToCitiesByRegionRequest decodes get_cities_by_region input
func ToCitiesByRegionRequest(p Params) domain.CitiesByRegionRequest {
	return domain.CitiesByRegionRequest{RegionID: p.Int("id_region")}
}

// ToKontragentIDRequest decodes mark_kontragent_deleted and restore_kontragent input
func ToKontragentIDRequest(p Params) domain.KontragentIDRequest {
	return domain.KontragentIDRequest{ID: p.Int("id")}
}

// ToClientNotifyRequest decodes log_client_notify input
func ToClientNotifyRequest(p Params) domain.ClientNotifyRequest {
	return domain.ClientNotifyRequest{
		Message:      p.StringOr("message", "No message"),
		Type:         p.StringOr("type", "info"),
		KontragentID: p.Int("kontragent_id"),
		URL:          p.StringOr("url", "N/A"),
	}
}
