package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ListingStatus is the lifecycle state of a listing.
type ListingStatus string

// Listing statuses.
const (
	ListingStatusDraft     ListingStatus = "DRAFT"
	ListingStatusPublished ListingStatus = "PUBLISHED"
)

// HoursMode selects which days the facility is open.
type HoursMode string

// HoursTime selects whether the facility is open around the clock.
type HoursTime string

const (
	HoursSevenDays HoursMode = "SEVEN_DAYS"
	HoursSelected  HoursMode = "SELECTED"

	HoursAllDay  HoursTime = "24H"
	HoursLimited HoursTime = "LIMITED"
)

// Weekdays in display order.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// FormNumber is the raw text of a numeric form input. It decodes from a
// JSON number or string; the empty string means the field is not set.
type FormNumber string

// UnmarshalJSON accepts numbers, strings and null.
func (n *FormNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = FormNumber(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = FormNumber(num.String())
	return nil
}

// MarshalJSON writes numeric text as a number and anything else as a string.
func (n FormNumber) MarshalJSON() ([]byte, error) {
	if f, ok := n.Float(); ok {
		return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
	}
	return json.Marshal(string(n))
}

// Float parses the input. ok is false when the field is empty or not a
// finite number.
func (n FormNumber) Float() (float64, bool) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NumberOf formats f as form input.
func NumberOf(f float64) FormNumber {
	return FormNumber(strconv.FormatFloat(f, 'f', -1, 64))
}

type Address struct {
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
}

type FacilityUse struct {
	FacilityUse   string `json:"facilityUse"`
	OtherUseNotes string `json:"otherUseNotes"`
}

type Forklift struct {
	Available   bool       `json:"available"`
	IsPaid      bool       `json:"isPaid"`
	MaxWeightKg FormNumber `json:"maxWeightKg"`
}

type Amenities struct {
	Security  map[string]bool `json:"security"`
	Forklift  Forklift        `json:"forklift"`
	Amenities []string        `json:"amenities"`
}

type LabourPolicy struct {
	RenterLaborAllowed  bool    `json:"renterLaborAllowed"`
	OwnerLaborAvailable bool    `json:"ownerLaborAvailable"`
	IncludedInRent      bool    `json:"includedInRent"`
	HourlyRate          float64 `json:"hourlyRate"`
}

type Approvals struct {
	LabourPolicy LabourPolicy `json:"labourPolicy"`
	ApprovedUses []string     `json:"approvedUses"`
}

type Pricing struct {
	TotalSqFt           FormNumber `json:"totalSqFt"`
	MinSqFt             FormNumber `json:"minSqFt"`
	RatePerSqFtPerMonth FormNumber `json:"ratePerSqFtPerMonth"`
}

type HourRange struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type Hours struct {
	Mode  HoursMode `json:"mode"`
	Time  HoursTime `json:"time"`
	Range HourRange `json:"range"`
	Days  []string  `json:"days"`
}

// ServiceRate is the offer for one add-on service.
type ServiceRate struct {
	Available   bool    `json:"available"`
	RatePerHour float64 `json:"ratePerHour"`
}

// Services maps service keys to their rate, per service group.
type Services struct {
	Inbound  map[string]ServiceRate `json:"inbound"`
	Outbound map[string]ServiceRate `json:"outbound"`
	ValueAdd map[string]ServiceRate `json:"valueAdd"`
}

// ListingDraft is the working copy of a listing being edited in the wizard.
// The marketplace API owns the record; the front end only holds a copy.
type ListingDraft struct {
	ID             ID            `json:"id,omitempty"`
	Status         ListingStatus `json:"status"`
	Title          string        `json:"title,omitempty"`
	Description    string        `json:"description,omitempty"`
	Address        Address       `json:"address"`
	Use            FacilityUse   `json:"use"`
	Amenities      Amenities     `json:"amenities"`
	Approvals      Approvals     `json:"approvals"`
	Qualifications []string      `json:"qualifications"`
	Pricing        Pricing       `json:"pricing"`
	Hours          Hours         `json:"hours"`
	Services       Services      `json:"services"`
	UpdatedAt      string        `json:"updatedAt,omitempty"`
}

// NewListingDraft returns the form a fresh wizard starts from.
func NewListingDraft() *ListingDraft {
	return &ListingDraft{
		Status: ListingStatusDraft,
		Amenities: Amenities{
			Security:  map[string]bool{},
			Forklift:  Forklift{MaxWeightKg: "0"},
			Amenities: []string{},
		},
		Approvals: Approvals{
			LabourPolicy: LabourPolicy{RenterLaborAllowed: true},
			ApprovedUses: []string{},
		},
		Qualifications: []string{},
		Hours: Hours{
			Mode:  HoursSevenDays,
			Time:  HoursLimited,
			Range: HourRange{Open: "09:00", Close: "18:00"},
			Days:  append([]string(nil), Weekdays...),
		},
		Services: Services{
			Inbound:  map[string]ServiceRate{},
			Outbound: map[string]ServiceRate{},
			ValueAdd: map[string]ServiceRate{},
		},
	}
}

// DecodeListingDraft overlays a server record onto the default form.
func DecodeListingDraft(b []byte) (*ListingDraft, error) {
	d := NewListingDraft()
	if err := json.Unmarshal(b, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Clone returns a deep copy.
func (d *ListingDraft) Clone() *ListingDraft {
	if d == nil {
		return nil
	}
	c := *d
	c.Amenities.Security = cloneMap(d.Amenities.Security)
	c.Amenities.Amenities = cloneStrings(d.Amenities.Amenities)
	c.Approvals.ApprovedUses = cloneStrings(d.Approvals.ApprovedUses)
	c.Qualifications = cloneStrings(d.Qualifications)
	c.Hours.Days = cloneStrings(d.Hours.Days)
	c.Services = Services{
		Inbound:  cloneMap(d.Services.Inbound),
		Outbound: cloneMap(d.Services.Outbound),
		ValueAdd: cloneMap(d.Services.ValueAdd),
	}
	return &c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

func cloneMap[V any](m map[string]V) map[string]V {
	if m == nil {
		return nil
	}
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
