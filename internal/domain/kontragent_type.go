package domain

// KontragentType is the three-way type bucket of a kontragent.
// The store encodes it as the (typeuser, is_operator) pair; see TypeFromColumns and Typeuser.
type KontragentType int

const (
	KontragentTypeIndividual  KontragentType = 1
	KontragentTypeLegalEntity KontragentType = 2
	KontragentTypeAgency      KontragentType = 3
)

// Persisted typeuser values
const (
	TypeuserIndividual = "Fiz"
	TypeuserAgency     = "Agent"
)

// IsValid checks if the type is one of the known buckets
func (t KontragentType) IsValid() bool {
	switch t {
	case KontragentTypeIndividual, KontragentTypeLegalEntity, KontragentTypeAgency:
		return true
	}
	return false
}

func (t KontragentType) String() string {
	switch t {
	case KontragentTypeIndividual:
		return "individual"
	case KontragentTypeLegalEntity:
		return "legal_entity"
	case KontragentTypeAgency:
		return "agency"
	}
	return "unknown"
}

// Typeuser returns the persisted typeuser value, nil for legal entities
func (t KontragentType) Typeuser() *string {
	var v string
	switch t {
	case KontragentTypeIndividual:
		v = TypeuserIndividual
	case KontragentTypeAgency:
		v = TypeuserAgency
	default:
		return nil
	}
	return &v
}

// OperatorFlag returns the is_operator value to persist.
// Only agencies can be operators.
func (t KontragentType) OperatorFlag(isOperator bool) int {
	if t == KontragentTypeAgency && isOperator {
		return 1
	}
	return 0
}

// TypeFromColumns derives the type bucket from the persisted columns.
// ok is false for a row that fits no bucket (typeuser NULL with is_operator set).
func TypeFromColumns(typeuser *string, isOperator int) (KontragentType, bool) {
	if typeuser == nil {
		if isOperator == 0 {
			return KontragentTypeLegalEntity, true
		}
		return 0, false
	}
	switch *typeuser {
	case TypeuserIndividual:
		return KontragentTypeIndividual, true
	case TypeuserAgency:
		return KontragentTypeAgency, true
	}
	return 0, false
}
