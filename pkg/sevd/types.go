package sevd

// Transaction is the per-call TransactionBase data.
type Transaction struct {
	// TransactionID is optional; no element is written when empty.
	TransactionID string
	Reference1    string `validate:"required"`
	Amount        string `validate:"required"`
}

// Customer is the cardholder shown on the hosted page. Absent fields are
// sent as empty elements.
type Customer struct {
	Name    Name
	Address Address
}

type Name struct {
	FirstName string
	MI        string
	LastName  string
}

type Address struct {
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	ZipCode      string
	Country      string
}

// UISettings controls the hosted page.
type UISettings struct {
	// EditCustomer lets the cardholder edit the name and address fields.
	EditCustomer bool `yaml:"edit_customer"`
}

// Transaction types
const (
	TransactionTypeSale = "11"
	TransactionTypeAuth = "12"
)
