package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
)

// ListWarehouses returns every published warehouse.
func (c *Client) ListWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	data, err := c.do(ctx, request{method: http.MethodGet, path: "/warehouses"})
	if err != nil {
		return nil, err
	}
	ws, err := decodeList[domain.Warehouse](data, "warehouses")
	if err != nil {
		return nil, fmt.Errorf("decode warehouses: %w", err)
	}
	return ws, nil
}

// SearchWarehouses queries the search endpoint. Empty parameters are not sent.
func (c *Client) SearchWarehouses(ctx context.Context, params domain.SearchParams) ([]domain.Warehouse, error) {
	data, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/warehouses/search",
		query:  params.Values(),
	})
	if err != nil {
		return nil, err
	}
	ws, err := decodeList[domain.Warehouse](data, "results")
	if err != nil {
		return nil, fmt.Errorf("decode search results: %w", err)
	}
	return ws, nil
}

// OwnerWarehouses returns the warehouses listed by ownerID.
func (c *Client) OwnerWarehouses(ctx context.Context, ownerID domain.ID) ([]domain.Warehouse, error) {
	data, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   pathID("/warehouses/owner", ownerID),
	})
	if err != nil {
		return nil, err
	}
	ws, err := decodeList[domain.Warehouse](data, "warehouses")
	if err != nil {
		return nil, fmt.Errorf("decode owner warehouses: %w", err)
	}
	return ws, nil
}

// DeleteWarehouse removes one of the caller's warehouses.
func (c *Client) DeleteWarehouse(ctx context.Context, token string, id domain.ID) error {
	return c.call(ctx, request{
		method: http.MethodDelete,
		path:   pathID("/warehouses", id),
		token:  token,
	}, nil)
}

// UpdateWarehouse edits one of the caller's warehouses. The API takes a
// multipart form so new images can ride along with the fields.
func (c *Client) UpdateWarehouse(ctx context.Context, token string, id domain.ID, upd domain.WarehouseUpdate) (*domain.Warehouse, error) {
	body, contentType, err := warehouseForm(upd)
	if err != nil {
		return nil, fmt.Errorf("encode warehouse form: %w", err)
	}

	var w domain.Warehouse
	err = c.call(ctx, request{
		method:      http.MethodPut,
		path:        pathID("/warehouses", id),
		token:       token,
		body:        body,
		contentType: contentType,
	}, &w)
	if err != nil {
		return nil, err
	}
	if w.ID.IsZero() {
		w.ID = id
	}
	return &w, nil
}

func warehouseForm(upd domain.WarehouseUpdate) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range upd.Fields() {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	for _, img := range upd.Images {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, img.Filename))
		ct := img.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
