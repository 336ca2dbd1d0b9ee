// Package articlefilter parses article search parameters and turns them into
// a SQL query over the articles table.
//
// Every predicate is optional and they combine with AND:
//
//	year, month  match the publication date
//	authors      the article has all of the listed author names
//	tags         the article has all of the listed tag names
//	keywords     any keyword is a substring of the title or the abstract
package articlefilter

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultPageLimit is the page size used when Filter.Limit is not set.
const DefaultPageLimit = 100

var yearPattern = regexp.MustCompile(`^[0-9]{4}$`)

type Filter struct {
	Year     string
	Month    string // two digits, "01".."12"
	Authors  []string
	Tags     []string
	Keywords []string

	// Page is 1-based. Zero disables pagination.
	Page  int
	Limit int
}

// Parse reads a filter from query parameters. Set-valued parameters are comma
// separated. The page defaults to 1.
func Parse(values url.Values) (Filter, error) {
	f := Filter{
		Year:     strings.TrimSpace(values.Get("year")),
		Month:    strings.TrimSpace(values.Get("month")),
		Authors:  SplitSet(values.Get("authors")),
		Tags:     SplitSet(values.Get("tags")),
		Keywords: SplitSet(values.Get("keywords")),
		Page:     1,
		Limit:    DefaultPageLimit,
	}

	page, pageErr := ParsePage(values.Get("page"))
	if pageErr == nil {
		f.Page = page
	}

	err := validation.Errors{
		"year":  validation.Validate(f.Year, validation.Match(yearPattern).Error("year must have four digits")),
		"month": validation.Validate(f.Month, validation.By(checkMonth)),
		"page":  pageErr,
	}.Filter()
	if err != nil {
		return Filter{}, err
	}

	if f.Month != "" {
		n, _ := strconv.Atoi(f.Month)
		f.Month = fmt.Sprintf("%02d", n)
	}
	return f, nil
}

// ParsePage parses a 1-based page number. An empty value means the first page.
func ParsePage(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, validation.NewError("invalid_page", "page must be a positive integer")
	}
	return n, nil
}

// ParseIDs parses a comma separated list of article ids.
func ParseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range SplitSet(s) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id < 1 {
			return nil, validation.Errors{
				"ids": validation.NewError("invalid_id", fmt.Sprintf("invalid article id %q", part)),
			}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SplitSet splits a comma separated list, trimming blanks and dropping empty
// and repeated entries. Order of first appearance is kept.
func SplitSet(s string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}

// Offset is the number of rows skipped before the current page.
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.limit()
}

func (f Filter) limit() int {
	if f.Limit <= 0 {
		return DefaultPageLimit
	}
	return f.Limit
}

func checkMonth(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 12 {
		return validation.NewError("invalid_month", "month must be between 1 and 12")
	}
	return nil
}
