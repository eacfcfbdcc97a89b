package domain

import "strings"

// Publish validation messages.
const (
	ErrMsgAddressRequired = "Address is required"
	ErrMsgTotalSpace      = "Total Space must be a positive number"
	ErrMsgRate            = "Rate (₹/sqft/month) must be a positive number"
	ErrMsgMinExceedsTotal = "Minimum Order Quantity cannot exceed Total Space"
)

// PublishErrors lists the reasons a draft cannot be published yet.
// An empty result means the draft may be published.
func PublishErrors(form *ListingDraft) []string {
	if form == nil {
		form = &ListingDraft{}
	}
	var errs []string
	if strings.TrimSpace(form.Address.AddressLine1) == "" {
		errs = append(errs, ErrMsgAddressRequired)
	}
	total, hasTotal := form.Pricing.TotalSqFt.Float()
	if !hasTotal || total <= 0 {
		errs = append(errs, ErrMsgTotalSpace)
	}
	rate, hasRate := form.Pricing.RatePerSqFtPerMonth.Float()
	if !hasRate || rate <= 0 {
		errs = append(errs, ErrMsgRate)
	}
	minSqFt, hasMin := form.Pricing.MinSqFt.Float()
	if hasMin && minSqFt != 0 && hasTotal && total != 0 && minSqFt > total {
		errs = append(errs, ErrMsgMinExceedsTotal)
	}
	return errs
}

// CanPublish is PublishErrors(form) == nil.
func CanPublish(form *ListingDraft) bool {
	return len(PublishErrors(form)) == 0
}
