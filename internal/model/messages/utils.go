package messages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/luissevero/ignitegofinances/internal/entity/transaction"
	"github.com/luissevero/ignitegofinances/internal/entity/user"
	"github.com/luissevero/ignitegofinances/internal/model/dashboard"
)

const commandParts = 2

func parseCommand(text string) (cmd, arg string) {
	text = strings.TrimSpace(text)
	split := strings.SplitN(text, " ", commandParts)

	if len(split) == commandParts {
		return split[0], split[1]
	}
	if strings.HasPrefix(text, "/") {
		return text, ""
	}
	return "", text
}

func formatUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// commandLabel bounds the metric label cardinality to the known commands.
func commandLabel(text string) string {
	cmd, _ := parseCommand(text)
	switch cmd {
	case startCommand, registerCommand, dashboardCommand, categoriesCommand, clearCommand:
		return cmd
	case "":
		return "text"
	}
	return "unknown"
}

func formatDashboard(u user.User, d dashboard.Dashboard) string {
	h := d.Highlights
	res := make([]string, 0, len(d.Transactions)+6)
	if u.Name != "" {
		res = append(res, "Olá, "+u.Name, "")
	}
	res = append(res,
		fmt.Sprintf("Entradas: %s (%s)", h.Entries.Amount, h.Entries.LastTransaction),
		fmt.Sprintf("Saídas: %s (%s)", h.Expensives.Amount, h.Expensives.LastTransaction),
		fmt.Sprintf("Total: %s (%s)", h.Total.Amount, h.Total.LastTransaction),
	)
	if len(d.Transactions) == 0 {
		return strings.Join(res, "\n")
	}

	res = append(res, "", "Listagem")
	for _, item := range d.Transactions {
		amount := item.Amount
		if item.Type == transaction.Negative {
			amount = "- " + amount
		}
		res = append(res, fmt.Sprintf("%s %s · %s: %s", item.Date, item.CategoryName, item.Name, amount))
	}
	return strings.Join(res, "\n")
}

func formatCategories() string {
	res := make([]string, 0, len(transaction.Categories))
	for _, c := range transaction.Categories {
		res = append(res, fmt.Sprintf("%s: %s", c.Key, c.Name))
	}
	return strings.Join(res, "\n")
}
