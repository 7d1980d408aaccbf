package postgres

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/maxviazov/reporting-dashboard/internal/model"
)

var (
	errNoView        = errors.New("view name is empty")
	errNoOrder       = errors.New("statement requires at least one order column")
	errBadPredicate  = errors.New("invalid predicate")
	errBadPageWindow = errors.New("page and page size must be positive")
)

// likeEscaper makes user text match literally inside an ILIKE pattern.
// Postgres uses backslash as the default LIKE escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// statement is a SQL text with its positional arguments.
type statement struct {
	sql  string
	args []any
}

// quoteIdent quotes a possibly schema-qualified identifier.
func quoteIdent(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

// containsPattern wraps search text for a substring match.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// buildWhere renders the WHERE clause for predicates, numbering placeholders after existing args.
// Rows and Count both go through here, which keeps a page and its total on the same predicate.
func buildWhere(predicates []model.Predicate, args []any) (string, []any, error) {
	clauses := make([]string, 0, len(predicates))
	for _, p := range predicates {
		if p.Value == "" {
			continue
		}
		if len(p.Columns) == 0 {
			return "", nil, fmt.Errorf("%w: no columns", errBadPredicate)
		}
		switch p.Kind {
		case model.Equals:
			if len(p.Columns) != 1 {
				return "", nil, fmt.Errorf("%w: equality takes exactly one column, got %d", errBadPredicate, len(p.Columns))
			}
			args = append(args, p.Value)
			clauses = append(clauses, quoteIdent(p.Columns[0])+" = $"+strconv.Itoa(len(args)))
		case model.Contains:
			args = append(args, containsPattern(p.Value))
			ph := "$" + strconv.Itoa(len(args))
			ors := make([]string, len(p.Columns))
			for i, col := range p.Columns {
				ors[i] = quoteIdent(col) + " ILIKE " + ph
			}
			clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
		default:
			return "", nil, fmt.Errorf("%w: unknown kind %s", errBadPredicate, p.Kind)
		}
	}
	if len(clauses) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func buildOrder(order []model.OrderTerm) (string, error) {
	if len(order) == 0 {
		return "", errNoOrder
	}
	terms := make([]string, len(order))
	for i, o := range order {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		terms[i] = quoteIdent(o.Column) + " " + dir
	}
	return " ORDER BY " + strings.Join(terms, ", "), nil
}

// buildSelect renders the rows statement:
//
//	SELECT * FROM <view> [WHERE ...] ORDER BY ... [LIMIT $n OFFSET $m]
func buildSelect(q model.ReportQuery) (statement, error) {
	if q.View == "" {
		return statement{}, errNoView
	}
	where, args, err := buildWhere(q.Predicates, nil)
	if err != nil {
		return statement{}, err
	}
	order, err := buildOrder(q.Order)
	if err != nil {
		return statement{}, err
	}

	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(quoteIdent(q.View))
	b.WriteString(where)
	b.WriteString(order)
	if q.Paginated {
		if q.Page < 1 || q.PageSize < 1 {
			return statement{}, errBadPageWindow
		}
		args = append(args, q.Limit(), q.Offset())
		fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	return statement{sql: b.String(), args: args}, nil
}

// buildCount renders the total statement for the same predicates.
func buildCount(view string, predicates []model.Predicate) (statement, error) {
	if view == "" {
		return statement{}, errNoView
	}
	where, args, err := buildWhere(predicates, nil)
	if err != nil {
		return statement{}, err
	}
	return statement{sql: "SELECT count(*) FROM " + quoteIdent(view) + where, args: args}, nil
}
