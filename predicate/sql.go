package predicate

import "strings"

// SQL renders the predicate as a parameterized WHERE fragment:
//
//	(col BETWEEN ? AND ?) OR (col BETWEEN ? AND ?)
//
// column is inserted verbatim and must be a trusted identifier. An empty
// predicate renders as "1 = 0".
func (p Predicate) SQL(column string) (string, []any) {
	if p.IsEmpty() {
		return "1 = 0", nil
	}

	var sb strings.Builder
	args := make([]any, 0, 2*len(p.ranges))

	for i, r := range p.ranges {
		if i > 0 {
			sb.WriteString(" OR ")
		}
		if r.Lower == r.Upper {
			sb.WriteString("(" + column + " = ?)")
			args = append(args, r.Lower)
			continue
		}
		sb.WriteString("(" + column + " BETWEEN ? AND ?)")
		args = append(args, r.Lower, r.Upper)
	}

	return sb.String(), args
}
