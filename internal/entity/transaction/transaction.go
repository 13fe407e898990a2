package transaction

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Record is one income or expense event as it is persisted.
type Record struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Type     Type            `json:"type"`
	Category Category        `json:"category"`
	Date     time.Time       `json:"date"`
}

func (r Record) Validate() error {
	if r.ID == "" {
		return errors.New("transaction id is empty")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("transaction name is empty")
	}
	if !r.Amount.IsPositive() {
		return errors.New("transaction amount must be positive")
	}
	if !r.Type.IsValid() {
		return errors.Wrapf(ErrUnknownType, "%q", r.Type)
	}
	if _, ok := r.Category.Info(); !ok {
		return errors.Wrapf(ErrUnknownCategory, "%q", r.Category)
	}
	if r.Date.IsZero() {
		return errors.New("transaction date is empty")
	}
	return nil
}

// Signed returns the amount with the direction applied.
func (r Record) Signed() decimal.Decimal {
	if r.Type == Negative {
		return r.Amount.Neg()
	}
	return r.Amount
}
