package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentMethod represents how a receipt was settled
type PaymentMethod int

const (
	PaymentMethodCash     PaymentMethod = 0
	PaymentMethodCard     PaymentMethod = 1
	PaymentMethodTransfer PaymentMethod = 2
)

var paymentMethodNames = [...]string{"cash", "card", "transfer"}

func (m PaymentMethod) String() string {
	if !m.IsValid() {
		return "unknown"
	}
	return paymentMethodNames[m]
}

// IsValid reports whether m is one of the known payment methods
func (m PaymentMethod) IsValid() bool {
	return int(m) >= 0 && int(m) < len(paymentMethodNames)
}

// ParsePaymentMethod parses a payment method name, case-insensitively
func ParsePaymentMethod(str string) (PaymentMethod, error) {
	for i, name := range paymentMethodNames {
		if strings.EqualFold(strings.TrimSpace(str), name) {
			return PaymentMethod(i), nil
		}
	}
	return PaymentMethodCash, fmt.Errorf("unknown payment method %q", str)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !PaymentMethod(i).IsValid() {
			return fmt.Errorf("unknown payment method %d", i)
		}
		*m = PaymentMethod(i)
		return nil
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
