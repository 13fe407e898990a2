package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	currencySymbol   = "R$ "
	decimalSeparator = ","
	groupSeparator   = "."
	shortDateLayout  = "02/01/06"
)

// x/text ships no CLDR month names
var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// Formatter renders amounts and dates the way a pt-BR device does.
type Formatter struct {
	printer *message.Printer
	loc     *time.Location
}

func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{
		printer: message.NewPrinter(language.BrazilianPortuguese),
		loc:     loc,
	}
}

// Amount formats d as BRL currency: "R$ 1.234,56", "-R$ 10,00".
// Digits come from the decimal itself and are never rounded through a float.
func (f *Formatter) Amount(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	intPart, cents, _ := strings.Cut(d.StringFixed(2), ".")
	if intPart == "0" && cents == "00" {
		sign = ""
	}
	return sign + currencySymbol + f.groupThousands(intPart) + decimalSeparator + cents
}

func (f *Formatter) groupThousands(digits string) string {
	if n, err := strconv.ParseUint(digits, 10, 64); err == nil {
		return f.printer.Sprintf("%d", n)
	}
	// beyond uint64
	var b strings.Builder
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(groupSeparator)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func (f *Formatter) Date(t time.Time) string {
	return t.In(f.loc).Format(shortDateLayout)
}

// DayMonth formats t as "<day> de <month>", e.g. "7 de setembro".
func (f *Formatter) DayMonth(t time.Time) string {
	t = t.In(f.loc)
	return fmt.Sprintf("%d de %s", t.Day(), monthNames[t.Month()-1])
}
