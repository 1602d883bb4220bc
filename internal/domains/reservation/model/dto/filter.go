package dto

import (
	"ecodash/internal/domains/reservation/model"
	"ecodash/shared/constant"
	gDto "ecodash/shared/dto"
	"ecodash/shared/timerange"
)

// ReservationFilters narrows a reservation query. Empty fields are ignored.
// StartTimestamp and EndTimestamp take an optional comparison operator
// prefix, e.g. ">=2030-01-01T00:00:00Z".
type ReservationFilters struct {
	ReservationID  string
	UserID         string
	SpaceID        string
	StartTimestamp string
	EndTimestamp   string
}

// ToFilterGroup ANDs every supplied predicate. ReservationID is not part of
// the group; callers look it up directly.
func (f ReservationFilters) ToFilterGroup() (gDto.FilterGroup, error) {
	group := gDto.FilterGroup{
		Filters:  []any{},
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if f.UserID != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldUserID,
			Value:    f.UserID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if f.SpaceID != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldSpaceID,
			Value:    f.SpaceID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if f.StartTimestamp != constant.Empty {
		predicate, err := timerange.Parse(f.StartTimestamp)
		if err != nil {
			return group, err
		}

		group.Filters = append(group.Filters, predicate.Filter(model.FieldStartTimestamp, model.TableName))
	}

	if f.EndTimestamp != constant.Empty {
		predicate, err := timerange.Parse(f.EndTimestamp)
		if err != nil {
			return group, err
		}

		group.Filters = append(group.Filters, predicate.Filter(model.FieldEndTimestamp, model.TableName))
	}

	return group, nil
}
