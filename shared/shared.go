package shared

import (
	"strings"

	"ecodash/shared/constant"
	"ecodash/shared/dto"
)

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins the non-empty parts with the cache key separator.
func BuildCacheKey(parts ...string) string {
	keys := make([]string, 0, len(parts))

	for _, part := range parts {
		if part == constant.Empty {
			continue
		}

		keys = append(keys, part)
	}

	return strings.Join(keys, constant.CacheKeySeparator)
}
