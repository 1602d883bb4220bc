package dto

import (
	"fmt"
	"maps"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLess      = "less"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreater   = "greater"
	FilterOperatorGreaterEq = "greater_eq"
)

const (
	FilterGroupOperatorAnd = "AND"
)

var comparisonOperators = map[string]string{
	"==": FilterOperatorEq,
	"!=": FilterOperatorNotEq,
	"<":  FilterOperatorLess,
	"<=": FilterOperatorLessEq,
	">":  FilterOperatorGreater,
	">=": FilterOperatorGreaterEq,
}

// sqlOperators renders each filter operator as its SQL comparison.
var sqlOperators = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLess:      "<",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreater:   ">",
	FilterOperatorGreaterEq: ">=",
}

// OperatorFromSymbol maps a comparison symbol such as ">=" onto its filter operator.
func OperatorFromSymbol(symbol string) (string, bool) {
	op, ok := comparisonOperators[symbol]

	return op, ok
}

// Filter compares one column against a bound value. ArgName defaults to
// Field and must be unique within a FilterGroup.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq not_eq less less_eq greater greater_eq"`
	Table    string
}

// GetWhereClause renders the filter as a named-parameter predicate. Unknown
// operators render nothing.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	op, ok := sqlOperators[f.Operator]
	if !ok {
		return "", args
	}

	column := f.Field
	if f.Table != "" {
		column = f.Table + "." + f.Field
	}

	argName := f.ArgName
	if argName == "" {
		argName = f.Field
	}

	args[argName] = f.Value

	return fmt.Sprintf("%s %s :%s", column, op, argName), args
}

// FilterGroup joins Filters, which hold Filter or nested FilterGroup values,
// with Operator.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	whereClause := []string{}

	for _, filter := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch fill := filter.(type) {
		case Filter:
			where, arg = fill.GetWhereClause()
		case FilterGroup:
			where, arg = fill.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		whereClause = append(whereClause, where)
		maps.Copy(args, arg)
	}

	if len(whereClause) == 0 {
		return "", args
	}

	return fmt.Sprintf("(%s)", strings.Join(whereClause, " "+f.Operator+" ")), args
}
