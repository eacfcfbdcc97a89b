package domain

// Booking statuses as used by the marketplace API.
const (
	BookingStatusPending  = "pending"
	BookingStatusApproved = "approved"
	BookingStatusRejected = "rejected"
)

// Booking is a merchant's request for space in a warehouse.
type Booking struct {
	ID            ID             `json:"id"`
	WarehouseID   ID             `json:"warehouseId,omitempty"`
	MerchantID    ID             `json:"merchantId,omitempty"`
	Status        string         `json:"status"`
	StartDate     string         `json:"startDate,omitempty"`
	EndDate       string         `json:"endDate,omitempty"`
	CreatedAt     string         `json:"createdAt,omitempty"`
	UpdatedAt     string         `json:"updatedAt,omitempty"`
	Warehouse     *Warehouse     `json:"warehouse,omitempty"`
	Merchant      *User          `json:"merchant,omitempty"`
	StatusHistory []StatusChange `json:"statusHistory,omitempty"`
}

// StatusChange is one entry of a booking's timeline.
type StatusChange struct {
	Status string `json:"status"`
	Date   string `json:"date"`
}

// History returns the booking's timeline. When the API does not supply one,
// a minimal history is synthesized from the creation time and the current status.
func (b *Booking) History() []StatusChange {
	if len(b.StatusHistory) > 0 {
		return b.StatusHistory
	}
	out := []StatusChange{{Status: BookingStatusPending, Date: b.CreatedAt}}
	if b.Status != "" && b.Status != BookingStatusPending {
		date := b.UpdatedAt
		if date == "" {
			date = b.CreatedAt
		}
		out = append(out, StatusChange{Status: b.Status, Date: date})
	}
	return out
}

// BookingMessage is a note from an owner to the merchant behind a booking.
type BookingMessage struct {
	BookingID     ID     `json:"bookingId"`
	MerchantEmail string `json:"merchantEmail"`
	Message       string `json:"message"`
}
