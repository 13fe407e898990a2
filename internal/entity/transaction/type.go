package transaction

import (
	"strings"

	"github.com/pkg/errors"
)

// Type is the direction of a transaction. The amount itself is always positive.
type Type string

const (
	Positive Type = "positive"
	Negative Type = "negative"
)

var ErrUnknownType = errors.New("unknown transaction type")

func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case Positive, Negative:
		return t, nil
	}
	return "", errors.Wrapf(ErrUnknownType, "%q", s)
}

func (t Type) IsValid() bool {
	return t == Positive || t == Negative
}
