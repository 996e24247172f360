package domain

import (
	"time"
)

// Kontragent represents a counterparty: an individual, a legal entity or an agency.
// Table and column names follow the existing work schema and must not change.
type Kontragent struct {
	ID                int64   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name              *string `gorm:"type:varchar(255);column:name" json:"name"`
	Shortname         *string `gorm:"type:varchar(255);column:shortname" json:"shortname"`
	Inn               *string `gorm:"type:varchar(20);column:inn" json:"inn"`
	Kpp               *string `gorm:"type:varchar(20);column:kpp" json:"kpp"`
	Ogrn              string  `gorm:"type:varchar(20);not null;default:'';column:ogrn" json:"ogrn"`
	Bank              *string `gorm:"type:varchar(255);column:bank" json:"bank"`
	Bik               *string `gorm:"type:varchar(20);column:bik" json:"bik"`
	Rs                *string `gorm:"type:varchar(30);column:rs" json:"rs"`
	Ks                *string `gorm:"type:varchar(30);column:ks" json:"ks"`
	Ua                *string `gorm:"type:varchar(255);column:ua" json:"ua"`
	DirektorFio       *string `gorm:"type:varchar(255);column:direktor_fio" json:"direktor_fio"`
	DirektorStatus    *string `gorm:"type:varchar(255);column:direktor_status" json:"direktor_status"`
	BuhFio            *string `gorm:"type:varchar(255);column:buh_fio" json:"buh_fio"`
	TaxOwn            int     `gorm:"not null;default:0;column:tax_own" json:"tax_own"`
	Tax               int     `gorm:"not null;default:0;column:tax" json:"tax"`
	IDCity            int64   `gorm:"not null;default:0;column:id_city" json:"id_city"`
	IDRegion          int64   `gorm:"not null;default:0;column:id_region" json:"id_region"`
	IsOkved           *string `gorm:"type:varchar(255);column:isokved" json:"isOkved"`
	CanCreateSubagent int     `gorm:"not null;default:0;column:can_create_subagent" json:"can_create_subagent"`
	AllowPrintVaucher int     `gorm:"not null;default:0;column:allow_print_vaucher" json:"allow_print_vaucher"`
	IsOperator        int     `gorm:"not null;default:0;column:is_operator" json:"is_operator"`
	Birthday          *string `gorm:"type:date;column:birthday" json:"birthday"`
	Phone             *string `gorm:"type:varchar(50);column:phone" json:"phone"`
	Phone1            *string `gorm:"type:varchar(50);column:phone1" json:"phone1"`
	Phone2            *string `gorm:"type:varchar(50);column:phone2" json:"phone2"`
	Email             *string `gorm:"type:varchar(255);column:email" json:"email"`
	Zipcode           *string `gorm:"type:varchar(20);column:zipcode" json:"zipcode"`
	PassportS         *string `gorm:"type:varchar(20);column:passport_s" json:"passport_s"`
	PassportN         *string `gorm:"type:varchar(20);column:passport_n" json:"passport_n"`
	PassportData      *string `gorm:"type:date;column:passport_data" json:"passport_data"`
	PassportWho       *string `gorm:"type:varchar(255);column:passport_who" json:"passport_who"`
	DiscountNum       *string `gorm:"type:varchar(50);column:discount_num" json:"discount_num"`
	Discount          *int    `gorm:"column:discount" json:"discount"`
	Fax               *string `gorm:"type:varchar(50);column:fax" json:"fax"`
	Owner             int64   `gorm:"not null;default:0;column:owner" json:"owner"`
	UserID            int64   `gorm:"not null;default:0;column:user_id" json:"user_id"`
	IDUserLastUpdate  int64   `gorm:"not null;default:0;column:id_user_last_update" json:"id_user_last_update"`
	Typeuser          *string `gorm:"type:varchar(10);column:typeuser" json:"typeuser"`
	Fio               *string `gorm:"type:varchar(255);column:fio" json:"fio"`
	Address           *string `gorm:"type:varchar(500);column:address" json:"address"`
	CityFizik         *string `gorm:"type:varchar(255);column:city_fizik" json:"city_fizik"`
	Occupation        *string `gorm:"type:varchar(255);column:occupation" json:"occupation"`
	Workplace         *string `gorm:"type:varchar(255);column:workplace" json:"workplace"`
	IsDelete          int     `gorm:"not null;default:0;column:is_delete" json:"is_delete"`
}

// TableName returns the table name for GORM
func (Kontragent) TableName() string {
	return "aa_kontragent"
}

// KontragentOperator is the operator profile of an agency registered as a licensed operator
type KontragentOperator struct {
	IDKontragent                  int64  `gorm:"primaryKey;autoIncrement:false;column:id_kontragent" json:"id_kontragent"`
	Reestrnum                     string `gorm:"type:varchar(100);not null;default:'';column:reestrnum" json:"reestrnum"`
	Website                       string `gorm:"type:varchar(255);not null;default:'';column:website" json:"website"`
	Membership                    string `gorm:"type:varchar(255);not null;default:'';column:membership" json:"membership"`
	AmountFinancialSupport        int    `gorm:"not null;default:0;column:amount_financial_support" json:"amount_financial_support"`
	FinancialSupport              int    `gorm:"not null;default:0;column:financial_support" json:"financial_support"`
	MethodFinancialSupport        string `gorm:"type:varchar(255);not null;default:'';column:method_financial_support" json:"method_financial_support"`
	Document                      string `gorm:"type:varchar(255);not null;default:'';column:document" json:"document"`
	TermFinancialSupport          string `gorm:"type:varchar(255);not null;default:'';column:term_financial_support" json:"term_financial_support"`
	FirmNameFinancialSupport      string `gorm:"type:varchar(255);not null;default:'';column:firm_name_financial_support" json:"firm_name_financial_support"`
	AdressFirmFinancialSupport    string `gorm:"type:varchar(500);not null;default:'';column:adress_firm_financial_support" json:"adress_firm_financial_support"`
	ZipadressFirmFinancialSupport string `gorm:"type:varchar(500);not null;default:'';column:zipadress_firm_financial_support" json:"zipadress_firm_financial_support"`
	ScopeOperator                 string `gorm:"type:varchar(255);not null;default:'';column:scope_operator" json:"scope_operator"`
	OrderNumber                   string `gorm:"type:varchar(100);not null;default:'';column:order_number" json:"order_number"`
	OrderDate                     string `gorm:"type:varchar(10);not null;default:'';column:order_date" json:"order_date"`
	CertificateNumber             string `gorm:"type:varchar(100);not null;default:'';column:certificate_number" json:"certificate_number"`
}

// TableName returns the table name for GORM
func (KontragentOperator) TableName() string {
	return "aa_kontragent_operator"
}

// Contract links a kontragent to a company under a numbered agreement
type Contract struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	IDKontragent int64     `gorm:"not null;index:idx_contract_owner;column:id_kontragent" json:"id_kontragent"`
	IDCompany    int64     `gorm:"not null;index:idx_contract_owner;column:id_company" json:"id_company"`
	Num          string    `gorm:"type:varchar(50);not null;default:'';column:num" json:"num"`
	Dtfrom       *string   `gorm:"type:date;column:dtfrom" json:"dtfrom"`
	Year         *int      `gorm:"column:year" json:"year"`
	Timecreate   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;column:timecreate" json:"timecreate"`
}

// TableName returns the table name for GORM
func (Contract) TableName() string {
	return "aa_list_dog_agent2company"
}

// Region is a read-only reference lookup
type Region struct {
	ID   int64  `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"type:varchar(255);not null;column:name" json:"name"`
}

// TableName returns the table name for GORM
func (Region) TableName() string {
	return "aa_region"
}

// City is a read-only reference lookup belonging to a region
type City struct {
	ID       int64  `gorm:"primaryKey;column:id" json:"id"`
	IDRegion int64  `gorm:"not null;index;column:id_region" json:"-"`
	Name     string `gorm:"type:varchar(255);not null;column:name" json:"name"`
}

// TableName returns the table name for GORM
func (City) TableName() string {
	return "aa_city"
}

// KontragentLog is an append-only activity log entry
type KontragentLog struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	KontragentID int64     `gorm:"not null;default:0;index;column:kontragent_id" json:"kontragent_id"`
	ActionType   string    `gorm:"type:varchar(64);not null;index:idx_kontragent_log_action;column:action_type" json:"action_type"`
	LogDataJSON  string    `gorm:"type:text;column:log_data_json" json:"log_data_json"`
	UserID       int64     `gorm:"not null;default:0;column:user_id" json:"user_id"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_kontragent_log_action;column:created_at" json:"created_at"`
}

// TableName returns the table name for GORM
func (KontragentLog) TableName() string {
	return "aa_kontragent_log"
}

// KontragentListRow is a single row of the kontragent grid
type KontragentListRow struct {
	ID         int64   `gorm:"column:id" json:"id"`
	Fio        *string `gorm:"column:fio" json:"fio"`
	Name       *string `gorm:"column:name" json:"name"`
	Shortname  *string `gorm:"column:shortname" json:"shortname"`
	Inn        *string `gorm:"column:inn" json:"inn"`
	Phone      *string `gorm:"column:phone" json:"phone"`
	Email      *string `gorm:"column:email" json:"email"`
	Address    *string `gorm:"column:address" json:"address"`
	IsDelete   int     `gorm:"column:is_delete" json:"is_delete"`
	IsOperator int     `gorm:"column:is_operator" json:"is_operator"`
}

// KontragentDetails is a kontragent row joined with its operator profile columns.
// Operator columns are nil when no profile exists.
type KontragentDetails struct {
	Kontragent `gorm:"embedded"`

	KontragentType KontragentType `gorm:"-" json:"kontragent_type"`

	Reestrnum                     *string `gorm:"column:reestrnum" json:"reestrnum"`
	Website                       *string `gorm:"column:website" json:"website"`
	Membership                    *string `gorm:"column:membership" json:"membership"`
	AmountFinancialSupport        *int    `gorm:"column:amount_financial_support" json:"amount_financial_support"`
	FinancialSupport              *int    `gorm:"column:financial_support" json:"financial_support"`
	MethodFinancialSupport        *string `gorm:"column:method_financial_support" json:"method_financial_support"`
	Document                      *string `gorm:"column:document" json:"document"`
	TermFinancialSupport          *string `gorm:"column:term_financial_support" json:"term_financial_support"`
	FirmNameFinancialSupport      *string `gorm:"column:firm_name_financial_support" json:"firm_name_financial_support"`
	AdressFirmFinancialSupport    *string `gorm:"column:adress_firm_financial_support" json:"adress_firm_financial_support"`
	ZipadressFirmFinancialSupport *string `gorm:"column:zipadress_firm_financial_support" json:"zipadress_firm_financial_support"`
	ScopeOperator                 *string `gorm:"column:scope_operator" json:"scope_operator"`
	OrderNumber                   *string `gorm:"column:order_number" json:"order_number"`
	OrderDate                     *string `gorm:"column:order_date" json:"order_date"`
	CertificateNumber             *string `gorm:"column:certificate_number" json:"certificate_number"`
}

// ContractRow is a single row of the contracts grid
type ContractRow struct {
	ID     int64   `gorm:"column:id" json:"id"`
	Num    string  `gorm:"column:num" json:"num"`
	Dtfrom *string `gorm:"column:dtfrom" json:"dtfrom"`
	Year   *int    `gorm:"column:year" json:"year"`
}
