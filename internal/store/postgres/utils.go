package postgres

import (
	"fmt"
	"slices"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type addOrderByClauseOptions struct {
	statusColumnName string
	statusesOrder    []string
}

// addOrderByClause accepts "column" or "column:asc|desc" conditions. Ordering by status follows statusesOrder.
func addOrderByClause(db *gorm.DB, conditions []string, options addOrderByClauseOptions, allowedColumns []string) (*gorm.DB, error) {
	var orderByClauses []string
	var vars []interface{}

	for _, orderBy := range conditions {
		columnOrder := strings.Split(orderBy, ":")
		columnName := columnOrder[0]
		direction := ""
		if len(columnOrder) == 2 {
			direction = strings.ToLower(columnOrder[1])
			if !slices.Contains([]string{"asc", "desc"}, direction) {
				return nil, fmt.Errorf("invalid order by direction: %s", columnOrder[1])
			}
		} else if len(columnOrder) > 2 {
			return nil, fmt.Errorf("invalid order by condition: %q", orderBy)
		}

		if columnName == "status" {
			orderByClauses = append(orderByClauses, strings.TrimSpace(fmt.Sprintf(`ARRAY_POSITION(ARRAY[?], %s) %s`, options.statusColumnName, direction)))
			vars = append(vars, options.statusesOrder)
			continue
		}
		if !slices.Contains(allowedColumns, columnName) {
			return nil, fmt.Errorf("cannot order by column %q", columnName)
		}
		orderByClauses = append(orderByClauses, strings.TrimSpace(fmt.Sprintf(`"%s" %s`, columnName, direction)))
	}

	if len(orderByClauses) == 0 {
		return db, nil
	}

	return db.Clauses(clause.OrderBy{
		Expression: clause.Expr{
			SQL:                strings.Join(orderByClauses, ", "),
			Vars:               vars,
			WithoutParentheses: true,
		},
	}), nil
}
