package collection

import "fmt"

// sortColumns is the allow-list of sortable fields. Anything else falls
// back to the collection's own display order.
var sortColumns = map[string]string{
	"sequence_order":   "sequence_order",
	"name":             "name",
	"year_published":   "year_published",
	"purchase_price":   "purchase_price",
	"rating":           "rating",
	"weight":           "weight",
	"ranking_position": "ranking_position",
	"created_at":       "created_at",
}

const defaultSortColumn = "sequence_order"

// normalizeSort validates the requested sort field and direction.
func normalizeSort(sortBy, sortOrder string) (column, direction string) {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = defaultSortColumn
	}
	direction = "asc"
	if sortOrder == "desc" {
		direction = "desc"
	}
	return column, direction
}

// orderClause places records without a value at the end for ascending
// reads and at the front for descending reads. MySQL has no NULLS
// LAST/FIRST, so the null check sorts as a leading key.
func orderClause(column, direction string) string {
	if direction == "desc" {
		return fmt.Sprintf("(%s IS NULL) DESC, %s DESC", column, column)
	}
	return fmt.Sprintf("(%s IS NULL) ASC, %s ASC", column, column)
}
