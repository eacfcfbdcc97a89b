package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// Warehouse is a published space as returned by the marketplace API.
type Warehouse struct {
	ID             ID       `json:"id"`
	OwnerID        ID       `json:"ownerId,omitempty"`
	Name           string   `json:"name"`
	Address        string   `json:"address,omitempty"`
	City           string   `json:"city,omitempty"`
	State          string   `json:"state,omitempty"`
	Zip            string   `json:"zip,omitempty"`
	Description    string   `json:"description,omitempty"`
	Price          float64  `json:"price"`
	TotalSpace     float64  `json:"totalSpace"`
	AvailableSpace float64  `json:"availableSpace"`
	Images         []string `json:"images,omitempty"`
	IsApproved     bool     `json:"isApproved"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Owner          *User    `json:"owner,omitempty"`
}

// SearchParams are the filters accepted by the warehouse search endpoint.
type SearchParams struct {
	Q         string   `query:"q"`
	City      string   `query:"city"`
	State     string   `query:"state"`
	Zip       string   `query:"zip"`
	MinSqFt   string   `query:"minSqFt"`
	MaxSqFt   string   `query:"maxSqFt"`
	MinPrice  string   `query:"minPrice"`
	MaxPrice  string   `query:"maxPrice"`
	Amenities []string `query:"amenities"`
	Sort      string   `query:"sort"`
	Page      int      `query:"page"`
	PageSize  int      `query:"pageSize"`
}

// Values encodes the non-empty parameters. List parameters repeat the key.
func (p SearchParams) Values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if s := strings.TrimSpace(value); s != "" {
			v.Set(key, s)
		}
	}
	set("q", p.Q)
	set("city", p.City)
	set("state", p.State)
	set("zip", p.Zip)
	set("minSqFt", p.MinSqFt)
	set("maxSqFt", p.MaxSqFt)
	set("minPrice", p.MinPrice)
	set("maxPrice", p.MaxPrice)
	for _, a := range p.Amenities {
		if s := strings.TrimSpace(a); s != "" {
			v.Add("amenities", s)
		}
	}
	set("sort", p.Sort)
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	return v
}

// ActiveFilters returns the chips shown above search results.
func (p SearchParams) ActiveFilters() []string {
	var out []string
	add := func(label, value string) {
		if value != "" {
			out = append(out, label+": "+value)
		}
	}
	add("Query", p.Q)
	add("City", p.City)
	add("State", p.State)
	add("ZIP", p.Zip)
	add("Min SqFt", p.MinSqFt)
	return out
}

// WarehouseFilter is the merchant dashboard's local catalogue filter.
type WarehouseFilter struct {
	Term     string     `query:"term"`
	City     string     `query:"city"`
	MinSpace FormNumber `query:"minSpace"`
	MaxPrice FormNumber `query:"maxPrice"`
}

// FilterWarehouses applies f without calling the API.
func FilterWarehouses(ws []Warehouse, f WarehouseFilter) []Warehouse {
	term := strings.ToLower(f.Term)
	city := strings.ToLower(f.City)
	minSpace, hasMin := f.MinSpace.Float()
	maxPrice, hasMax := f.MaxPrice.Float()

	out := make([]Warehouse, 0, len(ws))
	for _, w := range ws {
		name := strings.ToLower(w.Name)
		wcity := strings.ToLower(w.City)
		if !strings.Contains(name, term) && !strings.Contains(wcity, term) {
			continue
		}
		if city != "" && wcity != city {
			continue
		}
		if hasMin && minSpace != 0 && w.AvailableSpace < minSpace {
			continue
		}
		if hasMax && w.Price > maxPrice {
			continue
		}
		out = append(out, w)
	}
	return out
}

// SpaceTotals sums total and available space across ws.
func SpaceTotals(ws []Warehouse) (total, available float64) {
	for _, w := range ws {
		total += w.TotalSpace
		available += w.AvailableSpace
	}
	return total, available
}

// WarehouseUpdate is an owner's edit of one of their warehouses. Images are
// new uploads added alongside the existing ones.
type WarehouseUpdate struct {
	Name           string
	Address        string
	City           string
	State          string
	Description    string
	Price          FormNumber
	TotalSpace     FormNumber
	AvailableSpace FormNumber
	Images         []Upload
}

// Upload is one file picked in the browser.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Fields returns the form fields in the order the API expects them. An
// empty price is sent as 0.
func (u WarehouseUpdate) Fields() [][2]string {
	price := strings.TrimSpace(string(u.Price))
	if price == "" {
		price = "0"
	}
	return [][2]string{
		{"name", u.Name},
		{"address", u.Address},
		{"city", u.City},
		{"state", u.State},
		{"price", price},
		{"description", u.Description},
		{"totalSpace", strings.TrimSpace(string(u.TotalSpace))},
		{"availableSpace", strings.TrimSpace(string(u.AvailableSpace))},
	}
}
