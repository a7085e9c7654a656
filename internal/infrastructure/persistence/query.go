package persistence

import (
	"strings"

	"github.com/stockyard/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// listOptions bundles the per-entity query behavior that differs
// between repositories: which columns a free-text search hits, which
// columns are sortable, and the fallback ordering.
type listOptions struct {
	searchColumns []string
	sortFields    map[string]bool
	defaultOrder  string
}

// applySearch adds an ILIKE clause across the entity's search columns
func (o listOptions) applySearch(query *gorm.DB, search string) *gorm.DB {
	if search == "" || len(o.searchColumns) == 0 {
		return query
	}

	pattern := "%" + search + "%"
	conditions := make([]string, len(o.searchColumns))
	args := make([]interface{}, len(o.searchColumns))
	for i, col := range o.searchColumns {
		conditions[i] = col + " ILIKE ?"
		args[i] = pattern
	}
	return query.Where(strings.Join(conditions, " OR "), args...)
}

// applyOrder adds a whitelisted ORDER BY clause
func (o listOptions) applyOrder(query *gorm.DB, filter shared.Filter) *gorm.DB {
	field := validateSortField(filter.OrderBy, o.sortFields, "")
	if field == "" {
		return query.Order(o.defaultOrder)
	}
	return query.Order(field + " " + validateSortOrder(filter.OrderDir))
}

// applyPagination adds OFFSET/LIMIT
func (o listOptions) applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// applyList applies search, ordering and pagination for list queries
func (o listOptions) applyList(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = o.applySearch(query, filter.Search)
	query = o.applyOrder(query, filter)
	return o.applyPagination(query, filter)
}

// validateSortOrder normalizes the sort direction, defaulting to DESC
func validateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// validateSortField checks the sort field against a whitelist; unknown
// fields fall back to the default to keep user input out of SQL
func validateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}
