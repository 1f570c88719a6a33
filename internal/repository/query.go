package repository

import (
	"fmt"
	"math"
	"strings"
)

// Pagination limits. MaxPage keeps the OFFSET inside a Postgres integer.
const (
	DefaultLimit = 10
	MaxLimit     = 100
	MaxPage      = math.MaxInt32 / MaxLimit
)

// Sort orders.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListParams is the page window and ordering of a listing.
type ListParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Normalize clamps the window into range and defaults the ordering.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.SortOrder != SortAsc {
		p.SortOrder = SortDesc
	}
	return p
}

// Offset returns the number of rows skipped before the page.
func (p ListParams) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

// conditions accumulates a WHERE clause with positional arguments.
type conditions struct {
	clauses []string
	args    []any
}

// add appends a clause; format receives the placeholder of value.
func (c *conditions) add(format string, value any) {
	c.args = append(c.args, value)
	c.clauses = append(c.clauses, fmt.Sprintf(format, fmt.Sprintf("$%d", len(c.args))))
}

func (c conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// page renders ORDER BY, LIMIT and OFFSET. sortBy must be a key of columns; anything else sorts by created_at.
func page(params ListParams, columns map[string]string) string {
	params = params.Normalize()
	column, ok := columns[params.SortBy]
	if !ok {
		column = "created_at"
	}
	return fmt.Sprintf(" ORDER BY %s %s LIMIT %d OFFSET %d",
		column, strings.ToUpper(params.SortOrder), params.Limit, params.Offset())
}

func likePattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}
