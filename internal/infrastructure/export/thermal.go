package export

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/sangkips/invoicely-api/pkg/money"
)

// ESC/POS control bytes
const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

const (
	alignLeft   = 0
	alignCenter = 1

	// DefaultCharWidth fits 80mm paper; 58mm paper takes 32
	DefaultCharWidth = 48
)

// ThermalRenderer prints a document as an ESC/POS slip for receipt printers
type ThermalRenderer struct {
	width int
}

// NewThermalRenderer creates a renderer for paper that fits width characters per line
func NewThermalRenderer(width int) *ThermalRenderer {
	if width <= 0 {
		width = DefaultCharWidth
	}
	return &ThermalRenderer{width: width}
}

// Render produces the ESC/POS byte stream for rec. Amounts are rounded for display only.
func (r *ThermalRenderer) Render(rec *entity.ExportRecord) ([]byte, error) {
	s := newSlip(r.width)

	s.align(alignCenter).bold(true).doubleSize(true).line(rec.From.Name).doubleSize(false).bold(false)
	if rec.From.Address != "" {
		s.line(rec.From.Address)
	}
	if rec.From.TaxID != "" {
		s.line("Tax ID: " + rec.From.TaxID)
	}
	s.feed(1).bold(true).line(strings.ToUpper(rec.Title) + " " + rec.Number).bold(false)

	s.align(alignLeft).rule('=')
	s.pair("Date", rec.IssueDate)
	if rec.DueDate != "" {
		s.pair("Due", rec.DueDate)
	}
	if rec.Status != "" {
		s.pair("Status", rec.Status)
	}
	if rec.PaymentMethod != "" {
		s.pair("Paid by", rec.PaymentMethod)
	}
	if rec.To != nil && rec.To.Name != "" {
		s.pair("Client", rec.To.Name)
	}
	s.rule('-')

	for _, item := range rec.Items {
		s.pair(money.FormatQuantity(item.Quantity)+"x "+item.ProductName, money.Format(item.LineTotal))
		s.line("   @ " + money.Format(item.UnitPrice))
		for _, t := range item.Taxes {
			s.pair("   "+t.Name+" "+money.FormatPercent(t.Rate), money.Format(t.Amount))
		}
	}

	s.rule('-')
	s.pair("Subtotal", money.Format(rec.Subtotal))
	s.pair("Tax", money.Format(rec.TotalTax))
	s.bold(true).pair("TOTAL", money.Format(rec.Total)).bold(false)
	s.rule('=')

	if rec.Notes != "" {
		s.align(alignCenter).line(rec.Notes).align(alignLeft)
	}
	s.feed(3).cut()

	return s.bytes(), nil
}

// slip accumulates ESC/POS commands and text
type slip struct {
	buf   bytes.Buffer
	width int
}

func newSlip(width int) *slip {
	s := &slip{width: width}
	s.buf.Write([]byte{esc, '@'})
	return s
}

func (s *slip) align(a byte) *slip {
	s.buf.Write([]byte{esc, 'a', a})
	return s
}

func (s *slip) bold(on bool) *slip {
	var b byte
	if on {
		b = 1
	}
	s.buf.Write([]byte{esc, 'E', b})
	return s
}

// doubleSize toggles double width and height
func (s *slip) doubleSize(on bool) *slip {
	var b byte
	if on {
		b = 0x11
	}
	s.buf.Write([]byte{gs, '!', b})
	return s
}

func (s *slip) line(text string) *slip {
	s.buf.WriteString(text)
	s.buf.WriteByte(lf)
	return s
}

func (s *slip) feed(n int) *slip {
	for i := 0; i < n; i++ {
		s.buf.WriteByte(lf)
	}
	return s
}

func (s *slip) rule(ch rune) *slip {
	return s.line(strings.Repeat(string(ch), s.width))
}

// pair writes key left and value right aligned, truncating key when the line is full
func (s *slip) pair(key, value string) *slip {
	room := s.width - utf8.RuneCountInString(value) - 1
	if room < 1 {
		return s.line(key).line(value)
	}
	if utf8.RuneCountInString(key) > room {
		key = string([]rune(key)[:room])
	}
	pad := s.width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	return s.line(key + strings.Repeat(" ", pad) + value)
}

func (s *slip) cut() *slip {
	s.buf.Write([]byte{gs, 'V', 0x01})
	return s
}

func (s *slip) bytes() []byte {
	return s.buf.Bytes()
}
