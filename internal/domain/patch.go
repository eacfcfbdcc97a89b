package domain

import "strings"

// ListingPatch is the subset of a draft sent to the marketplace API on save.
// Nil groups are omitted so partial edits never overwrite server fields
// with empty placeholders.
type ListingPatch struct {
	Status         ListingStatus   `json:"status,omitempty"`
	Title          *string         `json:"title,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Address        *AddressPatch   `json:"address,omitempty"`
	Use            *UsePatch       `json:"use,omitempty"`
	Amenities      *AmenitiesPatch `json:"amenities,omitempty"`
	Approvals      *Approvals      `json:"approvals,omitempty"`
	Qualifications *[]string       `json:"qualifications,omitempty"`
	Pricing        *PricingPatch   `json:"pricing,omitempty"`
	Hours          *HoursPatch     `json:"hours,omitempty"`
	Services       *Services       `json:"services,omitempty"`
}

type AddressPatch struct {
	AddressLine1 string `json:"addressLine1,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Zip          string `json:"zip,omitempty"`
}

type UsePatch struct {
	FacilityUse   string `json:"facilityUse,omitempty"`
	OtherUseNotes string `json:"otherUseNotes,omitempty"`
}

type ForkliftPatch struct {
	Available   bool     `json:"available"`
	IsPaid      bool     `json:"isPaid"`
	MaxWeightKg *float64 `json:"maxWeightKg,omitempty"`
}

type AmenitiesPatch struct {
	Security  map[string]bool `json:"security"`
	Forklift  ForkliftPatch   `json:"forklift"`
	Amenities []string        `json:"amenities"`
}

type PricingPatch struct {
	TotalSqFt           *float64 `json:"totalSqFt,omitempty"`
	MinSqFt             *float64 `json:"minSqFt,omitempty"`
	RatePerSqFtPerMonth *float64 `json:"ratePerSqFtPerMonth,omitempty"`
}

type HoursPatch struct {
	Mode  HoursMode  `json:"mode,omitempty"`
	Time  HoursTime  `json:"time,omitempty"`
	Range *HourRange `json:"range,omitempty"`
	Days  []string   `json:"days,omitempty"`
}

// IsEmpty reports whether the patch would change nothing.
func (p ListingPatch) IsEmpty() bool {
	return p.Status == "" && p.Title == nil && p.Description == nil &&
		p.Address == nil && p.Use == nil && p.Amenities == nil &&
		p.Approvals == nil && p.Qualifications == nil && p.Pricing == nil &&
		p.Hours == nil && p.Services == nil
}

// CleanPatch reduces the working form to the fields that are meaningfully set.
func CleanPatch(form *ListingDraft) ListingPatch {
	var out ListingPatch
	if form == nil {
		return out
	}
	out.Status = form.Status

	a := AddressPatch{
		AddressLine1: strings.TrimSpace(form.Address.AddressLine1),
		City:         strings.TrimSpace(form.Address.City),
		State:        strings.TrimSpace(form.Address.State),
		Zip:          strings.TrimSpace(form.Address.Zip),
	}
	if a != (AddressPatch{}) {
		out.Address = &a
	}

	u := UsePatch{
		FacilityUse:   form.Use.FacilityUse,
		OtherUseNotes: strings.TrimSpace(form.Use.OtherUseNotes),
	}
	if u != (UsePatch{}) {
		out.Use = &u
	}

	am := &AmenitiesPatch{
		Security:  cloneMap(form.Amenities.Security),
		Amenities: nonNil(form.Amenities.Amenities),
		Forklift: ForkliftPatch{
			Available: form.Amenities.Forklift.Available,
			IsPaid:    form.Amenities.Forklift.IsPaid,
		},
	}
	if am.Security == nil {
		am.Security = map[string]bool{}
	}
	if w, ok := form.Amenities.Forklift.MaxWeightKg.Float(); ok {
		am.Forklift.MaxWeightKg = &w
	}
	out.Amenities = am

	approvals := form.Approvals
	approvals.ApprovedUses = nonNil(form.Approvals.ApprovedUses)
	out.Approvals = &approvals

	if form.Qualifications != nil {
		q := cloneStrings(form.Qualifications)
		out.Qualifications = &q
	}

	var p PricingPatch
	if v, ok := form.Pricing.TotalSqFt.Float(); ok {
		p.TotalSqFt = &v
	}
	if v, ok := form.Pricing.MinSqFt.Float(); ok {
		p.MinSqFt = &v
	}
	if v, ok := form.Pricing.RatePerSqFtPerMonth.Float(); ok {
		p.RatePerSqFtPerMonth = &v
	}
	if p != (PricingPatch{}) {
		out.Pricing = &p
	}

	h := HoursPatch{Mode: form.Hours.Mode, Time: form.Hours.Time}
	if form.Hours.Range.Open != "" && form.Hours.Range.Close != "" {
		r := form.Hours.Range
		h.Range = &r
	}
	if len(form.Hours.Days) > 0 {
		h.Days = cloneStrings(form.Hours.Days)
	}
	if h.Mode != "" || h.Time != "" || h.Range != nil || h.Days != nil {
		out.Hours = &h
	}

	services := Services{
		Inbound:  nonNilMap(form.Services.Inbound),
		Outbound: nonNilMap(form.Services.Outbound),
		ValueAdd: nonNilMap(form.Services.ValueAdd),
	}
	out.Services = &services

	if form.Title != "" {
		t := form.Title
		out.Title = &t
	}
	if form.Description != "" {
		d := form.Description
		out.Description = &d
	}
	return out
}

// PlaceholderDraft is the minimal record created on a draft's first save.
// The API requires an address line, so a placeholder is sent until the
// owner fills one in.
func PlaceholderDraft(title string) ListingPatch {
	return ListingPatch{
		Status:  ListingStatusDraft,
		Title:   &title,
		Address: &AddressPatch{AddressLine1: "Draft placeholder"},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return cloneStrings(s)
}

func nonNilMap(m map[string]ServiceRate) map[string]ServiceRate {
	if m == nil {
		return map[string]ServiceRate{}
	}
	return cloneMap(m)
}
