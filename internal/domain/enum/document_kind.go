package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DocumentKind distinguishes invoices from receipts. Both share one table.
type DocumentKind int

const (
	DocumentKindInvoice DocumentKind = 0
	DocumentKindReceipt DocumentKind = 1
)

func (k DocumentKind) String() string {
	if k == DocumentKindReceipt {
		return "receipt"
	}
	return "invoice"
}

// Title is the human readable name used in messages and exports
func (k DocumentKind) Title() string {
	if k == DocumentKindReceipt {
		return "Receipt"
	}
	return "Invoice"
}

func (k DocumentKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *DocumentKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "receipt" {
		*k = DocumentKindReceipt
	} else {
		*k = DocumentKindInvoice
	}
	return nil
}

func (k DocumentKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *DocumentKind) Scan(value interface{}) error {
	switch v := value.(type) {
	case int64:
		*k = DocumentKind(v)
	case int:
		*k = DocumentKind(v)
	default:
		*k = DocumentKindInvoice
	}
	return nil
}
