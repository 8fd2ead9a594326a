package postgres

import (
	"fmt"
	"strings"
)

// setBuilder accumulates SET clauses for a partial update. Nil patch fields
// are simply never added, so untouched columns keep their values.
type setBuilder struct {
	cols []string
	args []any
}

func (b *setBuilder) set(col string, v any) {
	b.args = append(b.args, v)
	b.cols = append(b.cols, fmt.Sprintf("%s = $%d", col, len(b.args)))
}

func (b *setBuilder) empty() bool { return len(b.cols) == 0 }

// clause renders the SET list with updated_at bumped, and appends the id as
// the final argument for the WHERE clause. The id placeholder is $len(args).
func (b *setBuilder) clause(id string) (string, []any) {
	b.args = append(b.args, id)
	return strings.Join(append(b.cols, "updated_at = NOW()"), ", "), b.args
}
