package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/luissevero/ignitegofinances/internal/entity/transaction"
)

const (
	noTransactionsLabel = "Não há transações"
	entriesLabelPrefix  = "Última entrada dia "
	expensesLabelPrefix = "Última saída dia "
	totalLabelPrefix    = "01 a "
)

// Item is a record formatted for display. Only Amount and Date differ from the stored record.
type Item struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Type         transaction.Type     `json:"type"`
	Category     transaction.Category `json:"category"`
	CategoryName string               `json:"categoryName"`
	CategoryIcon string               `json:"categoryIcon"`
	Amount       string               `json:"amount"`
	Date         string               `json:"date"`
}

type Highlight struct {
	Value           decimal.Decimal `json:"value"`
	Amount          string          `json:"amount"`
	LastTransaction string          `json:"lastTransaction"`
	LastDate        *time.Time      `json:"lastTransactionDate,omitempty"`
}

type Highlights struct {
	Entries    Highlight `json:"entries"`
	Expensives Highlight `json:"expensives"`
	Total      Highlight `json:"total"`
}

type Dashboard struct {
	Transactions []Item     `json:"transactions"`
	Highlights   Highlights `json:"highlights"`
}

// Aggregate builds the dashboard of records. It does not modify records.
//
// The total bucket's last date is the latest record of either direction,
// shown as an interval from the first of that month.
func Aggregate(records []transaction.Record, f *Formatter) Dashboard {
	items := make([]Item, 0, len(records))
	entries, expensives := decimal.Zero, decimal.Zero
	var lastEntry, lastExpense, lastAny time.Time

	for _, r := range records {
		switch r.Type {
		case transaction.Positive:
			entries = entries.Add(r.Amount)
			lastEntry = latest(lastEntry, r.Date)
		case transaction.Negative:
			expensives = expensives.Add(r.Amount)
			lastExpense = latest(lastExpense, r.Date)
		}
		lastAny = latest(lastAny, r.Date)

		items = append(items, Item{
			ID:           r.ID,
			Name:         r.Name,
			Type:         r.Type,
			Category:     r.Category,
			CategoryName: r.Category.Name(),
			CategoryIcon: r.Category.Icon(),
			Amount:       f.Amount(r.Amount),
			Date:         f.Date(r.Date),
		})
	}

	return Dashboard{
		Transactions: items,
		Highlights: Highlights{
			Entries:    highlight(f, entries, lastEntry, entriesLabelPrefix),
			Expensives: highlight(f, expensives, lastExpense, expensesLabelPrefix),
			Total:      highlight(f, entries.Sub(expensives), lastAny, totalLabelPrefix),
		},
	}
}

func latest(cur, t time.Time) time.Time {
	if t.After(cur) {
		return t
	}
	return cur
}

func highlight(f *Formatter, sum decimal.Decimal, last time.Time, prefix string) Highlight {
	h := Highlight{
		Value:           sum,
		Amount:          f.Amount(sum),
		LastTransaction: noTransactionsLabel,
	}
	if !last.IsZero() {
		h.LastTransaction = prefix + f.DayMonth(last)
		h.LastDate = &last
	}
	return h
}
