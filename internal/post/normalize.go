// internal/post/normalize.go
//
// Input validation and coercion, in two named modes.
//
// Context
// -------
// The same raw Input reaches the store by two doors with deliberately
// different geodata rules:
//
//   • strict  – online create/update.  An unparsable or out-of-range
//     coordinate rejects the whole call with InvalidNumericValue, and the
//     schedule/seq/dayOfWeekCode shape rules are enforced up front.
//   • lenient – bulk import.  The offending coordinate is cleared and the
//     issue reported back to the caller, so a large external feed is not
//     aborted by a few bad rows.
//
// The divergence is intentional and must stay visible as two entry points;
// do not unify them.
package post

import (
	"fmt"
	"regexp"

	"github.com/yanizio/mobilepost/internal/apierr"
)

// hhmmRe matches a zero-padded 24-hour HH:MM.  Shared by the write path
// (openHour/closeHour) and the list openAt gate; the lexical openAt window
// only works when every stored hour obeys this shape.
var hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Candidate is a strictly-typed, range-checked record ready for storage.
// nil fields were not supplied (or were cleared by lenient mode).
type Candidate struct {
	MobileCode *string
	Seq        *int

	NameEN, NameTC, NameSC             *string
	DistrictEN, DistrictTC, DistrictSC *string
	LocationEN, LocationTC, LocationSC *string
	AddressEN, AddressTC, AddressSC    *string

	OpenHour      *string
	CloseHour     *string
	DayOfWeekCode *int

	Latitude  *float64
	Longitude *float64
}

// latRange and lngRange bound valid geolocation.
const (
	latMin, latMax = -90.0, 90.0
	lngMin, lngMax = -180.0, 180.0
)

func copyText(in Input, c *Candidate) {
	c.MobileCode = in.MobileCode
	c.Seq = in.Seq
	c.NameEN, c.NameTC, c.NameSC = in.NameEN, in.NameTC, in.NameSC
	c.DistrictEN, c.DistrictTC, c.DistrictSC = in.DistrictEN, in.DistrictTC, in.DistrictSC
	c.LocationEN, c.LocationTC, c.LocationSC = in.LocationEN, in.LocationTC, in.LocationSC
	c.AddressEN, c.AddressTC, c.AddressSC = in.AddressEN, in.AddressTC, in.AddressSC
	c.OpenHour, c.CloseHour = in.OpenHour, in.CloseHour
	c.DayOfWeekCode = in.DayOfWeekCode
}

// coordOK reports whether the coordinate parsed and sits inside [lo, hi].
func coordOK(c Coordinate, lo, hi float64) (float64, bool) {
	v, valid := c.Value()
	if !valid || v < lo || v > hi {
		return 0, false
	}
	return v, true
}

// NormalizeStrict validates a service-path input.  Schedule fields must be
// well-formed HH:MM, dayOfWeekCode and seq must sit in their ranges, and
// supplied coordinates must parse and be in range.  An explicit JSON null
// coordinate counts as absent here, unlike a malformed token.
func NormalizeStrict(in Input) (Candidate, error) {
	var c Candidate
	copyText(in, &c)

	if c.Seq != nil && *c.Seq < 1 {
		return Candidate{}, apierr.New(apierr.CodeInvalidParameterFormat,
			"seq must be a positive integer")
	}
	if c.OpenHour != nil && !hhmmRe.MatchString(*c.OpenHour) {
		return Candidate{}, apierr.New(apierr.CodeInvalidTimeFormat,
			"openHour must be in HH:MM format with valid time (00:00-23:59)")
	}
	if c.CloseHour != nil && !hhmmRe.MatchString(*c.CloseHour) {
		return Candidate{}, apierr.New(apierr.CodeInvalidTimeFormat,
			"closeHour must be in HH:MM format with valid time (00:00-23:59)")
	}
	if c.DayOfWeekCode != nil && (*c.DayOfWeekCode < 1 || *c.DayOfWeekCode > 7) {
		return Candidate{}, apierr.New(apierr.CodeInvalidParameterFormat,
			"dayOfWeekCode must be between 1 and 7")
	}

	if in.Latitude.Present() && !in.Latitude.isNull {
		v, ok := coordOK(in.Latitude, latMin, latMax)
		if !ok {
			return Candidate{}, apierr.New(apierr.CodeInvalidNumericValue,
				"latitude must be between -90 and 90")
		}
		c.Latitude = &v
	}
	if in.Longitude.Present() && !in.Longitude.isNull {
		v, ok := coordOK(in.Longitude, lngMin, lngMax)
		if !ok {
			return Candidate{}, apierr.New(apierr.CodeInvalidNumericValue,
				"longitude must be between -180 and 180")
		}
		c.Longitude = &v
	}
	return c, nil
}

// NormalizeLenient coerces an import-path record.  Bad or missing geodata
// is cleared and described in the returned issue list; the record itself
// always survives.  Callers attach the record's 1-based batch index.
func NormalizeLenient(in Input) (Candidate, []string) {
	var c Candidate
	copyText(in, &c)

	var issues []string
	if v, ok := coordOK(in.Latitude, latMin, latMax); ok {
		c.Latitude = &v
	} else {
		issues = append(issues, fmt.Sprintf("Invalid latitude: %s", in.Latitude.Raw()))
	}
	if v, ok := coordOK(in.Longitude, lngMin, lngMax); ok {
		c.Longitude = &v
	} else {
		issues = append(issues, fmt.Sprintf("Invalid longitude: %s", in.Longitude.Raw()))
	}
	return c, issues
}

// CheckRequired enforces the creation composite: at least one name variant
// and at least one district variant.
func CheckRequired(in Input) error {
	if !in.hasName() || !in.hasDistrict() {
		return apierr.New(apierr.CodeMissingRequiredField,
			"at least one of nameEN/nameTC/nameSC and one of districtEN/districtTC/districtSC is required")
	}
	return nil
}
