package mdmapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Operator restricts how a filter field is compared. The set is fixed by the
// backend's filter-expression grammar.
type Operator string

const (
	OpEqual          Operator = "eq"
	OpNotEqual       Operator = "ne"
	OpContains       Operator = "contains"
	OpGreaterThan    Operator = "gt"
	OpGreaterOrEqual Operator = "gte"
	OpLessThan       Operator = "lt"
	OpLessOrEqual    Operator = "lte"
)

var validOperators = map[Operator]struct{}{
	OpEqual:          {},
	OpNotEqual:       {},
	OpContains:       {},
	OpGreaterThan:    {},
	OpGreaterOrEqual: {},
	OpLessThan:       {},
	OpLessOrEqual:    {},
}

// Filter is one (field, operator, value) restriction on an INDEX operation.
type Filter struct {
	Field string
	Op    Operator
	Value string
}

// Query collects filters, sort keys, and pagination bounds for an INDEX
// operation. Filters serialize in the order they were added; encoding is
// deterministic, so equal queries always produce identical query strings.
//
// A malformed filter (unknown operator, empty field) is a programmer error:
// it is recorded when the filter is added and reported by Encode before any
// fragment is produced.
type Query struct {
	filters []Filter
	sorts   []string
	limit   *int
	offset  *int
	err     error
}

// NewQuery creates an empty query.
func NewQuery() *Query {
	return &Query{}
}

// reservedFieldChars would corrupt a fragment or collide with the grammar's
// separators if they appeared in a field name. Field names come from the
// resource schema, so they are rejected rather than escaped; only values are
// escaped.
const reservedFieldChars = ":&=?#+%/ "

// Filter appends one filter restriction. Chainable.
func (q *Query) Filter(field string, op Operator, value string) *Query {
	if q.err == nil {
		switch {
		case field == "":
			q.err = ErrEmptyFilterField
		case strings.ContainsAny(field, reservedFieldChars):
			q.err = fmt.Errorf("%w: %q", ErrReservedFieldChar, field)
		default:
			if _, ok := validOperators[op]; !ok {
				q.err = fmt.Errorf("%w: %q", ErrUnknownOperator, op)
			}
		}
	}

	q.filters = append(q.filters, Filter{Field: field, Op: op, Value: value})

	return q
}

// Sort appends a sort key. Prefix the field with "-" for descending order.
func (q *Query) Sort(field string) *Query {
	if q.err == nil {
		key := strings.TrimPrefix(field, "-")
		if key == "" {
			q.err = ErrEmptySortField
		} else if strings.ContainsAny(key, reservedFieldChars) {
			q.err = fmt.Errorf("%w: %q", ErrReservedFieldChar, field)
		}
	}

	q.sorts = append(q.sorts, field)

	return q
}

// Limit caps the number of returned resources.
func (q *Query) Limit(n int) *Query {
	if q.err == nil && n < 0 {
		q.err = fmt.Errorf("%w: limit %d", ErrNegativeBound, n)
	}

	q.limit = &n

	return q
}

// Offset skips the first n resources.
func (q *Query) Offset(n int) *Query {
	if q.err == nil && n < 0 {
		q.err = fmt.Errorf("%w: offset %d", ErrNegativeBound, n)
	}

	q.offset = &n

	return q
}

// Filters returns the accumulated filters in insertion order.
func (q *Query) Filters() []Filter {
	return q.filters
}

// Encode serializes the query to its wire form, fragments joined by "&":
// "filter=<field>:<op>:<value>" per filter (value URL-escaped), then
// "sort=<key>" per sort key, then "limit=<n>" and "offset=<n>". An empty
// query encodes to "".
func (q *Query) Encode() (string, error) {
	if q == nil {
		return "", nil
	}

	if q.err != nil {
		return "", q.err
	}

	fragments := make([]string, 0, len(q.filters)+len(q.sorts)+2)

	for _, f := range q.filters {
		fragments = append(fragments, "filter="+f.Field+":"+string(f.Op)+":"+url.QueryEscape(f.Value))
	}

	for _, s := range q.sorts {
		fragments = append(fragments, "sort="+s)
	}

	if q.limit != nil {
		fragments = append(fragments, "limit="+strconv.Itoa(*q.limit))
	}

	if q.offset != nil {
		fragments = append(fragments, "offset="+strconv.Itoa(*q.offset))
	}

	return strings.Join(fragments, "&"), nil
}
