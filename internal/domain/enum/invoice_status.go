package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// InvoiceStatus represents where an invoice is in its payment cycle.
// It is set explicitly by callers; nothing derives it.
type InvoiceStatus int

const (
	InvoiceStatusDraft   InvoiceStatus = 0
	InvoiceStatusSent    InvoiceStatus = 1
	InvoiceStatusPaid    InvoiceStatus = 2
	InvoiceStatusOverdue InvoiceStatus = 3
)

var invoiceStatusNames = [...]string{"draft", "sent", "paid", "overdue"}

func (s InvoiceStatus) String() string {
	if !s.IsValid() {
		return "unknown"
	}
	return invoiceStatusNames[s]
}

// IsValid reports whether s is one of the known statuses
func (s InvoiceStatus) IsValid() bool {
	return int(s) >= 0 && int(s) < len(invoiceStatusNames)
}

// ParseInvoiceStatus parses a status name, case-insensitively
func ParseInvoiceStatus(str string) (InvoiceStatus, error) {
	for i, name := range invoiceStatusNames {
		if strings.EqualFold(strings.TrimSpace(str), name) {
			return InvoiceStatus(i), nil
		}
	}
	return InvoiceStatusDraft, fmt.Errorf("unknown invoice status %q", str)
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !InvoiceStatus(i).IsValid() {
			return fmt.Errorf("unknown invoice status %d", i)
		}
		*s = InvoiceStatus(i)
		return nil
	}
	parsed, err := ParseInvoiceStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
