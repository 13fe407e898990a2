package dashboard

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luissevero/ignitegofinances/internal/entity/transaction"
)

var (
	d1 = time.Date(2021, time.September, 7, 10, 0, 0, 0, time.UTC)
	d2 = time.Date(2021, time.September, 11, 12, 30, 0, 0, time.UTC)
	d3 = time.Date(2021, time.September, 19, 8, 0, 0, 0, time.UTC)
)

func rec(id string, amount string, typ transaction.Type, c transaction.Category, date time.Time) transaction.Record {
	return transaction.Record{
		ID:       id,
		Name:     "tx " + id,
		Amount:   decimal.RequireFromString(amount),
		Type:     typ,
		Category: c,
		Date:     date,
	}
}

func Test_Aggregate_EmptyListShouldHaveZeroSumsAndNoTransactions(t *testing.T) {
	d := Aggregate(nil, NewFormatter(time.UTC))

	assert.Empty(t, d.Transactions)
	for _, h := range []Highlight{d.Highlights.Entries, d.Highlights.Expensives, d.Highlights.Total} {
		assert.True(t, h.Value.IsZero())
		assert.Equal(t, "R$ 0,00", h.Amount)
		assert.Equal(t, "Não há transações", h.LastTransaction)
		assert.Nil(t, h.LastDate)
	}
}

func Test_Aggregate_EntriesMinusExpenses(t *testing.T) {
	records := []transaction.Record{
		rec("1", "100", transaction.Positive, transaction.Salary, d1),
		rec("2", "40", transaction.Negative, transaction.Food, d2),
	}

	d := Aggregate(records, NewFormatter(time.UTC))

	assert.True(t, decimal.NewFromInt(100).Equal(d.Highlights.Entries.Value))
	assert.True(t, decimal.NewFromInt(40).Equal(d.Highlights.Expensives.Value))
	assert.True(t, decimal.NewFromInt(60).Equal(d.Highlights.Total.Value))
	assert.Equal(t, "R$ 60,00", d.Highlights.Total.Amount)

	assert.Equal(t, "Última entrada dia 7 de setembro", d.Highlights.Entries.LastTransaction)
	assert.Equal(t, "Última saída dia 11 de setembro", d.Highlights.Expensives.LastTransaction)
	assert.Equal(t, "01 a 11 de setembro", d.Highlights.Total.LastTransaction)
	require.NotNil(t, d.Highlights.Entries.LastDate)
	assert.True(t, d1.Equal(*d.Highlights.Entries.LastDate))
}

func Test_Aggregate_TotalShouldHoldForAnyMix(t *testing.T) {
	records := []transaction.Record{
		rec("1", "0.1", transaction.Positive, transaction.Salary, d1),
		rec("2", "0.2", transaction.Positive, transaction.Salary, d2),
		rec("3", "0.3", transaction.Negative, transaction.Food, d3),
		rec("4", "1200", transaction.Negative, transaction.Housing, d1),
	}

	h := Aggregate(records, NewFormatter(time.UTC)).Highlights

	assert.True(t, h.Entries.Value.Sub(h.Expensives.Value).Equal(h.Total.Value))
	assert.True(t, decimal.RequireFromString("-1200").Equal(h.Total.Value))
	assert.Equal(t, "-R$ 1.200,00", h.Total.Amount)
}

func Test_Aggregate_TotalLastDateIsLatestOfAnyDirection(t *testing.T) {
	records := []transaction.Record{
		rec("1", "10", transaction.Negative, transaction.Food, d1),
		rec("2", "99", transaction.Positive, transaction.Salary, d3),
	}

	h := Aggregate(records, NewFormatter(time.UTC)).Highlights

	assert.Equal(t, "Última saída dia 7 de setembro", h.Expensives.LastTransaction)
	assert.Equal(t, "01 a 19 de setembro", h.Total.LastTransaction)
}

func Test_Aggregate_OnlyOneDirection(t *testing.T) {
	records := []transaction.Record{rec("1", "5", transaction.Negative, transaction.Car, d2)}

	h := Aggregate(records, NewFormatter(time.UTC)).Highlights

	assert.Equal(t, "Não há transações", h.Entries.LastTransaction)
	assert.Equal(t, "Última saída dia 11 de setembro", h.Expensives.LastTransaction)
}

func Test_Aggregate_ShouldNotDependOnInputOrder(t *testing.T) {
	records := []transaction.Record{
		rec("1", "12000", transaction.Positive, transaction.Salary, d1),
		rec("2", "59", transaction.Negative, transaction.Food, d2),
		rec("3", "1200", transaction.Negative, transaction.Housing, d3),
		rec("4", "15.5", transaction.Positive, transaction.Leisure, d3),
	}
	reversed := make([]transaction.Record, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}
	f := NewFormatter(time.UTC)

	a, b := Aggregate(records, f).Highlights, Aggregate(reversed, f).Highlights

	assert.Equal(t, a.Entries.Amount, b.Entries.Amount)
	assert.Equal(t, a.Expensives.Amount, b.Expensives.Amount)
	assert.Equal(t, a.Total.Amount, b.Total.Amount)
	assert.Equal(t, a.Entries.LastTransaction, b.Entries.LastTransaction)
	assert.Equal(t, a.Expensives.LastTransaction, b.Expensives.LastTransaction)
	assert.Equal(t, a.Total.LastTransaction, b.Total.LastTransaction)
}

func Test_Aggregate_ItemsKeepIdentityAndOrder(t *testing.T) {
	records := []transaction.Record{
		rec("b", "59", transaction.Negative, transaction.Food, d2),
		rec("a", "12000", transaction.Positive, transaction.Salary, d1),
	}
	original := append([]transaction.Record(nil), records...)

	items := Aggregate(records, NewFormatter(time.UTC)).Transactions

	require.Len(t, items, 2)
	assert.Equal(t, records, original)
	for i, item := range items {
		assert.Equal(t, records[i].ID, item.ID)
		assert.Equal(t, records[i].Name, item.Name)
		assert.Equal(t, records[i].Type, item.Type)
		assert.Equal(t, records[i].Category, item.Category)
	}
	assert.Equal(t, "R$ 59,00", items[0].Amount)
	assert.Equal(t, "11/09/21", items[0].Date)
	assert.Equal(t, "Alimentação", items[0].CategoryName)
	assert.Equal(t, "coffee", items[0].CategoryIcon)
	assert.Equal(t, "R$ 12.000,00", items[1].Amount)
}
