package repository

import (
	"fmt"
	"strings"
)

// setBuilder accumulates the SET clause of a partial UPDATE.
type setBuilder struct {
	sets []string
	args []any
}

func (b *setBuilder) add(column string, value any) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s=$%d", column, len(b.args)))
}

func addIfSet[T any](b *setBuilder, column string, value *T) {
	if value != nil {
		b.add(column, *value)
	}
}

// build renders UPDATE ... WHERE id=$n RETURNING returning.
func (b *setBuilder) build(table, id, returning string, touch bool) (string, []any) {
	sets := append([]string{}, b.sets...)
	if touch {
		sets = append(sets, "updated_at=NOW()")
	}
	if len(sets) == 0 {
		sets = append(sets, "id=id")
	}
	args := append(append([]any{}, b.args...), id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id=$%d RETURNING %s",
		table, strings.Join(sets, ", "), len(args), returning)
	return query, args
}

// whereBuilder accumulates AND-ed filter clauses.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) add(format string, value any) {
	w.args = append(w.args, value)
	w.clauses = append(w.clauses, fmt.Sprintf(format, len(w.args)))
}

func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return "1=1"
	}
	return strings.Join(w.clauses, " AND ")
}
