// internal/post/query.go
//
// Filter, sort, and pagination parameters, and the SQL they compose.
//
// Context
// -------
// One predicate set feeds both the total-count query and the page query so
// counts and pages always agree at the instant each executes.  The two
// round trips are independent; momentary skew under concurrent writes is
// accepted.
//
// openAt works by lexical comparison: open_hour and close_hour are
// fixed-width zero-padded HH:MM, so string order equals time order.
package post

import (
	"strings"
)

// Params carries the list-operation inputs.  Pointer fields distinguish
// "absent" from zero values; Seq in particular must filter when it is 0.
type Params struct {
	Search     string
	District   string
	DayOfWeek  *int
	OpenAt     string
	MobileCode string
	Seq        *int

	Page  int // ≥ 1, default 1
	Limit int // 1..200, default 20

	SortBy  string // id, seq, district, openHour, closeHour, name
	SortDir string // asc, desc
	Lang    Lang
}

// Defaults fills unset pagination, sort, and lang values.
func (p *Params) Defaults() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.SortDir != "desc" {
		p.SortDir = "asc"
	}
	if p.Lang == "" {
		p.Lang = LangEN
	}
}

// Meta is the pagination envelope returned beside a page of results.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	Lang       Lang `json:"lang"`
}

// NewMeta computes totalPages = ceil(total/limit).
func NewMeta(p Params, total int) Meta {
	pages := (total + p.Limit - 1) / p.Limit
	return Meta{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages, Lang: p.Lang}
}

// builder accumulates conjunctive WHERE conditions with their args.
type builder struct {
	conds []string
	args  []any
}

func (b *builder) where(cond string, args ...any) {
	b.conds = append(b.conds, cond)
	b.args = append(b.args, args...)
}

func (b *builder) clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// searchColumns are the nine trilingual text columns the free-text filter
// scans; district has its own three-column filter.
var searchColumns = []string{
	"name_en", "name_tc", "name_sc",
	"location_en", "location_tc", "location_sc",
	"address_en", "address_tc", "address_sc",
}

var districtColumns = []string{"district_en", "district_tc", "district_sc"}

// likeAny builds "(c1 LIKE ? OR c2 LIKE ? …)" with one wildcard-wrapped arg
// per column.  MySQL LIKE is case-insensitive under the default collation.
func (b *builder) likeAny(cols []string, needle string) {
	pattern := "%" + needle + "%"
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c + " LIKE ?"
		b.args = append(b.args, pattern)
	}
	b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
}

// buildWhere translates Params into the shared predicate set.
func buildWhere(p Params) (string, []any) {
	var b builder

	if p.Search != "" {
		b.likeAny(searchColumns, p.Search)
	}
	if p.District != "" {
		b.likeAny(districtColumns, p.District)
	}
	if p.DayOfWeek != nil {
		b.where("day_of_week_code = ?", *p.DayOfWeek)
	}
	if p.OpenAt != "" {
		b.where("open_hour <= ?", p.OpenAt)
		b.where("close_hour > ?", p.OpenAt)
	}
	if p.MobileCode != "" {
		b.where("mobile_code = ?", p.MobileCode)
	}
	if p.Seq != nil { // presence, not truthiness: seq=0 still filters
		b.where("seq = ?", *p.Seq)
	}
	return b.clause(), b.args
}

// sortColumn resolves the ORDER BY column.  name and district sort in the
// requested language; "all" has no single sort language so English is used.
// Anything unrecognized falls back to id.
func sortColumn(sortBy string, lang Lang) string {
	langCol := func(base string) string {
		switch lang {
		case LangTC:
			return base + "_tc"
		case LangSC:
			return base + "_sc"
		default:
			return base + "_en"
		}
	}
	switch sortBy {
	case "seq":
		return "seq"
	case "openHour":
		return "open_hour"
	case "closeHour":
		return "close_hour"
	case "district":
		return langCol("district")
	case "name":
		return langCol("name")
	default:
		return "id"
	}
}

// orderClause builds " ORDER BY col DIR".
func orderClause(p Params) string {
	dir := "ASC"
	if p.SortDir == "desc" {
		dir = "DESC"
	}
	return " ORDER BY " + sortColumn(p.SortBy, p.Lang) + " " + dir
}
