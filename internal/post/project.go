// internal/post/project.go
//
// Read-only language projection of a stored Post.
//
// Context
// -------
// lang=en|tc|sc flattens each trilingual group to one language-neutral
// field, falling back to English when the requested variant is empty (and
// never sideways to the other non-English language).  lang=all keeps every
// variant and adds convenience fields resolved EN, else TC, else SC.
//
// Coordinates render as decimal strings with the stored six fractional
// digits.  A zero coordinate renders as null exactly like an absent one;
// the two are not distinguishable in responses.  Accepted lossy behavior.
package post

import "strconv"

// View is the single-language response shape.
type View struct {
	ID         int64   `json:"id"`
	MobileCode *string `json:"mobileCode"`
	Seq        *int    `json:"seq"`

	Name     string `json:"name"`
	District string `json:"district"`
	Location string `json:"location"`
	Address  string `json:"address"`

	OpenHour      *string `json:"openHour"`
	CloseHour     *string `json:"closeHour"`
	DayOfWeekCode *int    `json:"dayOfWeekCode"`

	Latitude  *string `json:"latitude"`
	Longitude *string `json:"longitude"`
}

// ViewAll is the lang=all response shape: every variant plus the resolved
// convenience fields.
type ViewAll struct {
	ID         int64   `json:"id"`
	MobileCode *string `json:"mobileCode"`
	Seq        *int    `json:"seq"`

	Name   string  `json:"name"`
	NameEN *string `json:"nameEN"`
	NameTC *string `json:"nameTC"`
	NameSC *string `json:"nameSC"`

	District   string  `json:"district"`
	DistrictEN *string `json:"districtEN"`
	DistrictTC *string `json:"districtTC"`
	DistrictSC *string `json:"districtSC"`

	Location   string  `json:"location"`
	LocationEN *string `json:"locationEN"`
	LocationTC *string `json:"locationTC"`
	LocationSC *string `json:"locationSC"`

	Address   string  `json:"address"`
	AddressEN *string `json:"addressEN"`
	AddressTC *string `json:"addressTC"`
	AddressSC *string `json:"addressSC"`

	OpenHour      *string `json:"openHour"`
	CloseHour     *string `json:"closeHour"`
	DayOfWeekCode *int    `json:"dayOfWeekCode"`

	Latitude  *string `json:"latitude"`
	Longitude *string `json:"longitude"`
}

// coordString renders a coordinate, or nil when absent or zero.
func coordString(v *float64) *string {
	if v == nil || *v == 0 {
		return nil
	}
	s := strconv.FormatFloat(*v, 'f', 6, 64)
	return &s
}

// Project maps a stored Post to its response shape for lang.  Pure: the
// same record and lang always yield the same output.
func Project(p *Post, lang Lang) any {
	if lang == LangAll {
		return ViewAll{
			ID:         p.ID,
			MobileCode: p.MobileCode,
			Seq:        p.Seq,

			Name:   p.name().first(),
			NameEN: p.NameEN, NameTC: p.NameTC, NameSC: p.NameSC,

			District:   p.district().first(),
			DistrictEN: p.DistrictEN, DistrictTC: p.DistrictTC, DistrictSC: p.DistrictSC,

			Location:   p.location().first(),
			LocationEN: p.LocationEN, LocationTC: p.LocationTC, LocationSC: p.LocationSC,

			Address:   p.address().first(),
			AddressEN: p.AddressEN, AddressTC: p.AddressTC, AddressSC: p.AddressSC,

			OpenHour:      p.OpenHour,
			CloseHour:     p.CloseHour,
			DayOfWeekCode: p.DayOfWeekCode,
			Latitude:      coordString(p.Latitude),
			Longitude:     coordString(p.Longitude),
		}
	}

	return View{
		ID:         p.ID,
		MobileCode: p.MobileCode,
		Seq:        p.Seq,

		Name:     p.name().pick(lang),
		District: p.district().pick(lang),
		Location: p.location().pick(lang),
		Address:  p.address().pick(lang),

		OpenHour:      p.OpenHour,
		CloseHour:     p.CloseHour,
		DayOfWeekCode: p.DayOfWeekCode,
		Latitude:      coordString(p.Latitude),
		Longitude:     coordString(p.Longitude),
	}
}
