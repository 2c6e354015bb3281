// internal/post/model.go
//
// Persisted entity, language selector, and loosely-typed input shapes.
//
// Context
// -------
// A Post is one physical service location described in up to three
// languages.  The trilingual text groups (name, district, location,
// address) are flattened into EN/TC/SC columns for query simplicity;
// variant selection goes through the tagged accessors below rather than
// string-built field names, so all four groups stay exhaustively checked
// at compile time.
//
// Notes
// -----
// • Nullable columns map to pointer fields; sqlx scans NULL into nil.
// • Oxford commas, two spaces after periods.
package post

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yanizio/mobilepost/internal/apierr"
)

// Lang selects the response shape of a projected Post.
type Lang string

const (
	LangEN  Lang = "en"
	LangTC  Lang = "tc"
	LangSC  Lang = "sc"
	LangAll Lang = "all"
)

// ParseLang validates a lang query value.  Empty means English.
func ParseLang(s string) (Lang, error) {
	switch Lang(s) {
	case "":
		return LangEN, nil
	case LangEN, LangTC, LangSC, LangAll:
		return Lang(s), nil
	}
	return "", apierr.New(apierr.CodeInvalidLangValue, "lang must be one of: en, tc, sc, all")
}

// Post is the persisted record.  id and the two timestamps are assigned by
// the store; everything else is settable.
type Post struct {
	ID         int64   `db:"id"`
	MobileCode *string `db:"mobile_code"`
	Seq        *int    `db:"seq"`

	NameEN *string `db:"name_en"`
	NameTC *string `db:"name_tc"`
	NameSC *string `db:"name_sc"`

	DistrictEN *string `db:"district_en"`
	DistrictTC *string `db:"district_tc"`
	DistrictSC *string `db:"district_sc"`

	LocationEN *string `db:"location_en"`
	LocationTC *string `db:"location_tc"`
	LocationSC *string `db:"location_sc"`

	AddressEN *string `db:"address_en"`
	AddressTC *string `db:"address_tc"`
	AddressSC *string `db:"address_sc"`

	OpenHour      *string `db:"open_hour"`
	CloseHour     *string `db:"close_hour"`
	DayOfWeekCode *int    `db:"day_of_week_code"`

	Latitude  *float64 `db:"latitude"`
	Longitude *float64 `db:"longitude"`

	ImportedAt time.Time `db:"imported_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// variants is one trilingual text group.
type variants struct {
	EN, TC, SC *string
}

// value dereferences p, mapping nil to the empty string.
func value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// pick returns the requested variant with English fallback.  It never falls
// through to the other non-English language.
func (v variants) pick(l Lang) string {
	var s string
	switch l {
	case LangTC:
		s = value(v.TC)
	case LangSC:
		s = value(v.SC)
	default:
		s = value(v.EN)
	}
	if s == "" {
		s = value(v.EN)
	}
	return s
}

// first resolves EN, else TC, else SC, else "".
func (v variants) first() string {
	if s := value(v.EN); s != "" {
		return s
	}
	if s := value(v.TC); s != "" {
		return s
	}
	return value(v.SC)
}

func (p *Post) name() variants     { return variants{p.NameEN, p.NameTC, p.NameSC} }
func (p *Post) district() variants { return variants{p.DistrictEN, p.DistrictTC, p.DistrictSC} }
func (p *Post) location() variants { return variants{p.LocationEN, p.LocationTC, p.LocationSC} }
func (p *Post) address() variants  { return variants{p.AddressEN, p.AddressTC, p.AddressSC} }

// Coordinate is a latitude or longitude as it arrives from the outside
// world: a JSON number, a numeric string, or explicit null.  Parsing never
// errors at decode time; the normalizer decides whether an unparsable value
// is fatal (online writes) or merely flagged (bulk import).
type Coordinate struct {
	present bool
	isNull  bool // explicit JSON null, distinct from a bad token
	value   float64
	valid   bool   // parsed to a finite number
	raw     string // original token, for irregularity reports
}

// Coord builds a present, valid Coordinate.  Test helper and import shim.
func Coord(v float64) Coordinate {
	return Coordinate{present: true, value: v, valid: true, raw: strconv.FormatFloat(v, 'f', -1, 64)}
}

func (c *Coordinate) UnmarshalJSON(b []byte) error {
	tok := strings.TrimSpace(string(b))
	c.present = true
	c.raw = strings.Trim(tok, `"`)
	if tok == "null" {
		c.isNull = true
		c.raw = "null"
		return nil
	}
	v, err := strconv.ParseFloat(c.raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil // invalid stays flagged, not a decode error
	}
	c.value = v
	c.valid = true
	return nil
}

// Present reports whether the field appeared in the input at all.
func (c Coordinate) Present() bool { return c.present }

// Value returns the parsed number and whether it is usable.
func (c Coordinate) Value() (float64, bool) { return c.value, c.valid }

// Raw returns the original token for diagnostics.
func (c Coordinate) Raw() string {
	if c.raw == "" {
		return "missing"
	}
	return c.raw
}

var _ json.Unmarshaler = (*Coordinate)(nil)

// Input is the loosely-typed settable subset of a Post, as decoded from a
// request body or an external feed record.  nil pointers mean "not
// supplied", which drives partial-update semantics.
type Input struct {
	MobileCode *string `json:"mobileCode"`
	Seq        *int    `json:"seq"`

	NameEN *string `json:"nameEN"`
	NameTC *string `json:"nameTC"`
	NameSC *string `json:"nameSC"`

	DistrictEN *string `json:"districtEN"`
	DistrictTC *string `json:"districtTC"`
	DistrictSC *string `json:"districtSC"`

	LocationEN *string `json:"locationEN"`
	LocationTC *string `json:"locationTC"`
	LocationSC *string `json:"locationSC"`

	AddressEN *string `json:"addressEN"`
	AddressTC *string `json:"addressTC"`
	AddressSC *string `json:"addressSC"`

	OpenHour      *string `json:"openHour"`
	CloseHour     *string `json:"closeHour"`
	DayOfWeekCode *int    `json:"dayOfWeekCode"`

	Latitude  Coordinate `json:"latitude"`
	Longitude Coordinate `json:"longitude"`
}

// Empty reports whether the input supplies zero settable fields.
func (in *Input) Empty() bool {
	return in.MobileCode == nil && in.Seq == nil &&
		in.NameEN == nil && in.NameTC == nil && in.NameSC == nil &&
		in.DistrictEN == nil && in.DistrictTC == nil && in.DistrictSC == nil &&
		in.LocationEN == nil && in.LocationTC == nil && in.LocationSC == nil &&
		in.AddressEN == nil && in.AddressTC == nil && in.AddressSC == nil &&
		in.OpenHour == nil && in.CloseHour == nil && in.DayOfWeekCode == nil &&
		!in.Latitude.Present() && !in.Longitude.Present()
}

// hasName reports whether any name variant is supplied and non-empty.
func (in *Input) hasName() bool {
	return value(in.NameEN) != "" || value(in.NameTC) != "" || value(in.NameSC) != ""
}

// hasDistrict reports whether any district variant is supplied and non-empty.
func (in *Input) hasDistrict() bool {
	return value(in.DistrictEN) != "" || value(in.DistrictTC) != "" || value(in.DistrictSC) != ""
}
