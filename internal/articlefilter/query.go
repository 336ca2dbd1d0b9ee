package articlefilter

import (
	"fmt"
	"strings"
)

// Query appends the filter predicates, a stable ordering and the page window
// to base. base must select from the articles table aliased as "a" and must
// not have a WHERE clause of its own.
func (f Filter) Query(base string) (string, []any) {
	var (
		where []string
		args  []any
	)

	if f.Year != "" {
		where = append(where, "strftime('%Y', a.publication_date) = ?")
		args = append(args, f.Year)
	}
	if f.Month != "" {
		where = append(where, "strftime('%m', a.publication_date) = ?")
		args = append(args, f.Month)
	}
	if len(f.Authors) > 0 {
		where = append(where, hasAll("article_authors", "authors", "author_id", len(f.Authors)))
		args = appendStrings(args, f.Authors)
		args = append(args, len(f.Authors))
	}
	if len(f.Tags) > 0 {
		where = append(where, hasAll("article_tags", "tags", "tag_id", len(f.Tags)))
		args = appendStrings(args, f.Tags)
		args = append(args, len(f.Tags))
	}
	if len(f.Keywords) > 0 {
		ors := make([]string, 0, len(f.Keywords))
		for _, k := range f.Keywords {
			ors = append(ors, `a.title LIKE ? ESCAPE '\' OR a.abstract LIKE ? ESCAPE '\'`)
			pattern := "%" + escapeLike(k) + "%"
			args = append(args, pattern, pattern)
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	var b strings.Builder
	b.WriteString(base)
	if len(where) > 0 {
		b.WriteString("\nWHERE ")
		b.WriteString(strings.Join(where, "\n  AND "))
	}
	b.WriteString("\nORDER BY a.id")
	if f.Page > 0 {
		b.WriteString("\nLIMIT ? OFFSET ?")
		args = append(args, f.limit(), f.Offset())
	}
	return b.String(), args
}

// hasAll matches articles linked to every one of n distinct names in table.
func hasAll(link, table, fk string, n int) string {
	return fmt.Sprintf(`a.id IN (
    SELECT l.article_id FROM %s l
    JOIN %s x ON x.id = l.%s
    WHERE x.name IN (%s)
    GROUP BY l.article_id
    HAVING COUNT(DISTINCT x.name) = ?)`, link, table, fk, Placeholders(n))
}

// Placeholders returns n comma separated bind parameters.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func appendStrings(args []any, values []string) []any {
	for _, v := range values {
		args = append(args, v)
	}
	return args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
