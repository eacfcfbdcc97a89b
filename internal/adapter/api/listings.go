package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
)

// CreateListing creates a draft record and returns it with its new id.
func (c *Client) CreateListing(ctx context.Context, token string, patch domain.ListingPatch) (*domain.ListingDraft, error) {
	data, err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    "/listings",
		token:   token,
		payload: patch,
	})
	if err != nil {
		return nil, err
	}
	draft, err := domain.DecodeListingDraft(data)
	if err != nil {
		return nil, fmt.Errorf("decode created listing: %w", err)
	}
	return draft, nil
}

// UpdateListing applies patch to the listing.
func (c *Client) UpdateListing(ctx context.Context, token string, id domain.ID, patch domain.ListingPatch) (*domain.ListingDraft, error) {
	data, err := c.do(ctx, request{
		method:  http.MethodPut,
		path:    pathID("/listings", id),
		token:   token,
		payload: patch,
	})
	if err != nil {
		return nil, err
	}
	draft, err := domain.DecodeListingDraft(nonEmptyObject(data))
	if err != nil {
		return nil, fmt.Errorf("decode updated listing: %w", err)
	}
	return draft, nil
}

// GetListing returns the listing overlaid on the default wizard form.
func (c *Client) GetListing(ctx context.Context, token string, id domain.ID) (*domain.ListingDraft, error) {
	data, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   pathID("/listings", id),
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	draft, err := domain.DecodeListingDraft(nonEmptyObject(data))
	if err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return draft, nil
}

// ListMyListings returns the caller's listings, drafts included.
func (c *Client) ListMyListings(ctx context.Context, token string) ([]domain.ListingDraft, error) {
	data, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/listings",
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	raws, err := decodeList[json.RawMessage](data, "listings")
	if err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	listings := make([]domain.ListingDraft, 0, len(raws))
	for _, raw := range raws {
		draft, err := domain.DecodeListingDraft(raw)
		if err != nil {
			return nil, fmt.Errorf("decode listing: %w", err)
		}
		listings = append(listings, *draft)
	}
	return listings, nil
}

func nonEmptyObject(data []byte) []byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return data
	}
	return []byte("{}")
}
