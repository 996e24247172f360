package domain

// Envelope is the uniform response of every action
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	TotalCount *int64      `json:"totalCount,omitempty"`
	NewID      *int64      `json:"new_id,omitempty"`
}

// Fail builds a failure envelope
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// OK builds a success envelope carrying data
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// DeleteStatus selects rows by their soft-delete flag
type DeleteStatus string

const (
	DeleteStatusActive  DeleteStatus = "active"
	DeleteStatusDeleted DeleteStatus = "deleted"
	DeleteStatusAll     DeleteStatus = "all"
)

// SortItem is one element of a grid sort specification
type SortItem struct {
	Selector string `json:"selector"`
	Desc     bool   `json:"desc"`
}

// FilterTriple is a single structural filter predicate (field, operator, value)
type FilterTriple struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// ListKontragentRequest is the decoded input of get_kontragent_list
type ListKontragentRequest struct {
	Type   KontragentType
	Skip   int
	Take   int
	Search string
	// Filter is nil when no usable single-predicate filter was supplied
	Filter       *FilterTriple
	RawFilter    interface{}
	Sort         []SortItem
	DeleteStatus DeleteStatus
}

// GetKontragentRequest is the decoded input of get_kontragent_data
type GetKontragentRequest struct {
	ID int64 `validate:"gt=0"`
}

// KontragentFields holds the main-row columns written by save_kontragent
type KontragentFields struct {
	Name              *string
	Shortname         *string
	Inn               *string
	Kpp               *string
	Ogrn              string
	Bank              *string
	Bik               *string
	Rs                *string
	Ks                *string
	Ua                *string
	DirektorFio       *string
	DirektorStatus    *string
	BuhFio            *string
	TaxOwn            int
	Tax               int
	IDCity            int64
	IDRegion          int64
	IsOkved           *string
	CanCreateSubagent int
	AllowPrintVaucher int
	IsOperator        bool
	Birthday          *string
	Phone             *string
	Phone1            *string
	Phone2            *string
	Email             *string
	Zipcode           *string
	PassportS         *string
	PassportN         *string
	PassportData      *string
	PassportWho       *string
	DiscountNum       *string
	Discount          *int
	Fax               *string
	Fio               *string
	Address           *string
	CityFizik         *string
	Occupation        *string
	Workplace         *string
}

// OperatorFields holds the operator profile columns written by save_kontragent
type OperatorFields struct {
	Reestrnum                     string
	Website                       string
	Membership                    string
	AmountFinancialSupport        int
	FinancialSupport              int
	MethodFinancialSupport        string
	Document                      string
	TermFinancialSupport          string
	FirmNameFinancialSupport      string
	AdressFirmFinancialSupport    string
	ZipadressFirmFinancialSupport string
	ScopeOperator                 string
	OrderNumber                   string
	OrderDate                     string
	CertificateNumber             string
}

// SaveKontragentRequest is the decoded input of save_kontragent.
// EditID 0 creates a new kontragent.
type SaveKontragentRequest struct {
	EditID   int64
	Type     KontragentType
	Fields   KontragentFields
	Operator OperatorFields
	// Raw is the untouched input, recorded in the activity log
	Raw map[string]interface{}
}

// ListContractsRequest is the decoded input of get_contracts
type ListContractsRequest struct {
	KontragentID int64 `validate:"gt=0"`
	CompanyID    int64 `validate:"gt=0"`
}

// SaveContractRequest is the decoded input of save_contract.
// ID 0 creates a new contract with the next sequence number.
type SaveContractRequest struct {
	ID           int64
	KontragentID int64 `validate:"gt=0"`
	CompanyID    int64 `validate:"gt=0"`
	Num          string
	Dtfrom       *string
	Year         int
}

// DeleteContractRequest is the decoded input of delete_contract
type DeleteContractRequest struct {
	ID           int64 `validate:"gt=0"`
	KontragentID int64 `validate:"gt=0"`
}

// CitiesByRegionRequest is the decoded input of get_cities_by_region
type CitiesByRegionRequest struct {
	RegionID int64
}

// KontragentIDRequest is the decoded input of mark_kontragent_deleted and restore_kontragent
type KontragentIDRequest struct {
	ID int64 `validate:"gt=0"`
}

// ClientNotifyRequest is the decoded input of log_client_notify
type ClientNotifyRequest struct {
	Message      string
	Type         string
	KontragentID int64
	URL          string
}
