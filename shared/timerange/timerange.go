// Package timerange parses operator-prefixed timestamps such as
// ">=2030-01-01T00:00:00Z" used to filter reservations by time.
package timerange

import (
	"strings"
	"time"

	"ecodash/shared/dto"
	"ecodash/shared/failure"
	"ecodash/shared/timezone"
)

const (
	OperatorGreaterEq = ">="
	OperatorLessEq    = "<="
	OperatorGreater   = ">"
	OperatorLess      = "<"
	OperatorEq        = "=="
	OperatorNotEq     = "!="
)

const ErrInvalidFormat = "invalid timestamp format, must use ISO 8601 with a UTC offset, optionally prefixed by one of >=, <=, >, <, ==, !="

// operators is ordered so that two-character operators are matched before
// their one-character prefixes.
var operators = []string{
	OperatorGreaterEq,
	OperatorLessEq,
	OperatorGreater,
	OperatorLess,
	OperatorEq,
	OperatorNotEq,
}

// Predicate is a parsed comparison against an instant.
type Predicate struct {
	Operator string
	Instant  time.Time
}

// Parse splits value into its comparison operator and UTC instant.
// A value with no operator compares for equality.
func Parse(value string) (Predicate, error) {
	op, rest := OperatorEq, value

	for _, candidate := range operators {
		if strings.HasPrefix(value, candidate) {
			op, rest = candidate, value[len(candidate):]

			break
		}
	}

	instant, err := timezone.ParseInstant(strings.TrimSpace(rest))
	if err != nil {
		return Predicate{}, failure.BadRequestFromString(ErrInvalidFormat)
	}

	return Predicate{Operator: op, Instant: instant}, nil
}

// Filter turns the predicate into a store filter on field.
func (p Predicate) Filter(field, table string) dto.Filter {
	op, _ := dto.OperatorFromSymbol(p.Operator)

	return dto.Filter{
		ArgName:  field + "_" + op,
		Field:    field,
		Value:    p.Instant,
		Operator: op,
		Table:    table,
	}
}

// RestoreQueryValue undoes the "+" to space conversion that URL query decoding
// applies to numeric offsets such as "+07:00". A space in the date/time
// separator position is left alone.
func RestoreQueryValue(value string) string {
	separator := len(value) - len(strings.TrimLeft(value, "<>=!")) + len("2006-01-02")
	if separator >= len(value) {
		return value
	}

	return value[:separator+1] + strings.ReplaceAll(value[separator+1:], " ", "+")
}
