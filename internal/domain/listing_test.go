package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormNumber(t *testing.T) {
	var p Pricing
	require.NoError(t, json.Unmarshal([]byte(`{"totalSqFt":1200,"minSqFt":"50","ratePerSqFtPerMonth":null}`), &p))
	assert.Equal(t, FormNumber("1200"), p.TotalSqFt)
	assert.Equal(t, FormNumber("50"), p.MinSqFt)
	assert.Equal(t, FormNumber(""), p.RatePerSqFtPerMonth)

	v, ok := FormNumber(" 12.5 ").Float()
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)

	for _, bad := range []FormNumber{"", "  ", "abc", "NaN", "Inf"} {
		_, ok := bad.Float()
		assert.False(t, ok, "%q", bad)
	}

	out, err := json.Marshal(Pricing{TotalSqFt: "0012", MinSqFt: "abc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalSqFt":12,"minSqFt":"abc","ratePerSqFtPerMonth":""}`, string(out))

	assert.Equal(t, FormNumber("2.5"), NumberOf(2.5))
}

func TestIDDecodesStringOrNumber(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"x1","b":42,"c":null}`), &v))
	assert.Equal(t, ID("x1"), v.A)
	assert.Equal(t, ID("42"), v.B)
	assert.True(t, v.C.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}

func TestDecodeListingDraftOverlaysDefaults(t *testing.T) {
	d, err := DecodeListingDraft([]byte(`{
		"id": 9,
		"address": {"addressLine1": "1 Dock Rd", "city": "Pune"},
		"hours": {"mode": "SELECTED", "days": ["Mon"]},
		"amenities": {"forklift": {"available": true}}
	}`))
	require.NoError(t, err)

	assert.Equal(t, ID("9"), d.ID)
	assert.Equal(t, ListingStatusDraft, d.Status)
	assert.Equal(t, "Pune", d.Address.City)
	assert.Equal(t, HoursSelected, d.Hours.Mode)
	assert.Equal(t, HoursLimited, d.Hours.Time)
	assert.Equal(t, HourRange{Open: "09:00", Close: "18:00"}, d.Hours.Range)
	assert.Equal(t, []string{"Mon"}, d.Hours.Days)
	assert.True(t, d.Amenities.Forklift.Available)
	assert.True(t, d.Approvals.LabourPolicy.RenterLaborAllowed)
	assert.NotNil(t, d.Services.Inbound)
}

func TestNewListingDraftDefaults(t *testing.T) {
	d := NewListingDraft()
	assert.Equal(t, ListingStatusDraft, d.Status)
	assert.False(t, d.Amenities.Forklift.Available)
	assert.True(t, d.Approvals.LabourPolicy.RenterLaborAllowed)
	assert.Equal(t, HoursSevenDays, d.Hours.Mode)
	assert.Equal(t, Weekdays, d.Hours.Days)
	assert.Empty(t, d.Services.Outbound)

	d.Hours.Days[0] = "Sun"
	assert.Equal(t, "Mon", Weekdays[0])
}

func TestCloneIsDeep(t *testing.T) {
	d := NewListingDraft()
	d.Amenities.Security["gatedAccess"] = true
	d.Qualifications = append(d.Qualifications, "DRY")
	d.Services.Inbound["palletReceiving"] = ServiceRate{Available: true, RatePerHour: 10}

	c := d.Clone()
	if diff := cmp.Diff(d, c); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	c.Amenities.Security["gatedAccess"] = false
	c.Qualifications[0] = "FROZEN"
	c.Services.Inbound["palletReceiving"] = ServiceRate{}
	c.Hours.Days[0] = "Sun"

	assert.True(t, d.Amenities.Security["gatedAccess"])
	assert.Equal(t, "DRY", d.Qualifications[0])
	assert.True(t, d.Services.Inbound["palletReceiving"].Available)
	assert.Equal(t, "Mon", d.Hours.Days[0])

	var nilDraft *ListingDraft
	assert.Nil(t, nilDraft.Clone())
}

func TestDraftRef(t *testing.T) {
	_, ok := DraftID(Unsaved{})
	assert.False(t, ok)

	id, ok := DraftID(Saved{ID: "41"})
	assert.True(t, ok)
	assert.Equal(t, ID("41"), id)
}
