package transaction

import (
	"strings"

	"github.com/pkg/errors"
)

// Category is a key of the closed category vocabulary.
type Category string

const (
	Purchases Category = "purchases"
	Food      Category = "food"
	Salary    Category = "salary"
	Car       Category = "car"
	Leisure   Category = "leisure"
	Studies   Category = "studies"
	Housing   Category = "housing"
)

var ErrUnknownCategory = errors.New("unknown category")

type CategoryInfo struct {
	Key  Category `json:"key"`
	Name string   `json:"name"`
	Icon string   `json:"icon"`
}

// Categories is ordered the way they are offered to the user.
var Categories = []CategoryInfo{
	{Key: Purchases, Name: "Compras", Icon: "shopping-bag"},
	{Key: Food, Name: "Alimentação", Icon: "coffee"},
	{Key: Salary, Name: "Salário", Icon: "dollar-sign"},
	{Key: Car, Name: "Carro", Icon: "crosshair"},
	{Key: Leisure, Name: "Lazer", Icon: "heart"},
	{Key: Studies, Name: "Estudos", Icon: "book"},
	{Key: Housing, Name: "Casa", Icon: "home"},
}

func ParseCategory(s string) (Category, error) {
	key := Category(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := key.Info(); !ok {
		return "", errors.Wrapf(ErrUnknownCategory, "%q", s)
	}
	return key, nil
}

func (c Category) Info() (CategoryInfo, bool) {
	for _, info := range Categories {
		if info.Key == c {
			return info, true
		}
	}
	return CategoryInfo{}, false
}

// Name falls back to the raw key for categories unknown to this build.
func (c Category) Name() string {
	if info, ok := c.Info(); ok {
		return info.Name
	}
	return string(c)
}

func (c Category) Icon() string {
	info, _ := c.Info()
	return info.Icon
}
