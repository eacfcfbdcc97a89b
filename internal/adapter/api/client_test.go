package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
	"github.com/Beawareofme/warehouse-frontend/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second)
}

func TestLoginPostsCredentialsAndDecodesSession(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var creds domain.Credentials
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "a@b.c", creds.Email)

		_, _ = io.WriteString(w, `{"token":"tok","user":{"id":7,"name":"Asha","email":"a@b.c","roles":["owner"]}}`)
	})

	session, err := c.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", session.Token)
	require.NotNil(t, session.User)
	assert.Equal(t, domain.ID("7"), session.User.ID)
	assert.Equal(t, []domain.Role{domain.RoleWarehouseOwner}, session.User.NormalizedRoles())
}

func TestMeAttachesBearerAndAcceptsEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"user":{"id":"u1","name":"Ravi","role":"merchant"}}`)
	})

	user, err := c.Me(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, domain.ID("u1"), user.ID)
	assert.True(t, user.HasRole("MERCHANT"))
}

func TestMeAcceptsBareProfile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":3,"name":"Ravi","role":"admin"}`)
	})

	user, err := c.Me(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "Ravi", user.Name)
	assert.True(t, user.HasRole("admin"))
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    port.ErrorKind
		wantMessage string
	}{
		{"error string", http.StatusBadRequest, `{"error":"Email taken"}`, port.KindHTTP, "Email taken"},
		{"nested error message", http.StatusUnprocessableEntity, `{"error":{"message":"Bad zip","field":"zip"}}`, port.KindHTTP, "Bad zip"},
		{"message field", http.StatusNotFound, `{"message":"Listing not found"}`, port.KindNotFound, "Listing not found"},
		{"unauthorized", http.StatusUnauthorized, `{"error":"Invalid token"}`, port.KindUnauthorized, "Invalid token"},
		{"forbidden empty json", http.StatusForbidden, `{}`, port.KindForbidden, "HTTP 403"},
		{"non json body", http.StatusBadGateway, `<html>bad gateway</html>`, port.KindHTTP, "HTTP 502"},
		{"empty body", http.StatusInternalServerError, ``, port.KindHTTP, "HTTP 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.GetListing(context.Background(), "tok", "9")
			require.Error(t, err)
			apiErr, ok := port.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestNonJSONErrorKeepsRawBodyAsDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream down")
	})

	err := c.DeleteWarehouse(context.Background(), "tok", "1")
	apiErr, ok := port.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "upstream down", apiErr.Details)
}

func TestUnauthorizedMatchesSentinel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Me(context.Background(), "stale")
	assert.True(t, errors.Is(err, port.ErrUnauthorized))
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewClient(base, time.Second)
	_, err := c.ListWarehouses(context.Background())
	apiErr, ok := port.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, port.KindNetwork, apiErr.Kind)
	assert.Contains(t, apiErr.Message, "Cannot reach the server")
	assert.Contains(t, apiErr.Message, base)
}

func TestSearchDropsEmptyParamsAndRepeatsLists(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/warehouses/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "pune", q.Get("q"))
		assert.Equal(t, "500", q.Get("minSqFt"))
		assert.False(t, q.Has("city"))
		assert.False(t, q.Has("maxSqFt"))
		assert.Equal(t, []string{"CCTV", "24x7"}, q["amenities"])
		_, _ = io.WriteString(w, `[{"id":1,"name":"North Bay","city":"Pune","totalSpace":1000}]`)
	})

	ws, err := c.SearchWarehouses(context.Background(), domain.SearchParams{
		Q:         " pune ",
		City:      "  ",
		MinSqFt:   "500",
		Amenities: []string{"CCTV", "", "24x7"},
	})
	require.NoError(t, err)
	require.Len(t, ws, 1)
	assert.Equal(t, "North Bay", ws[0].Name)
}

func TestListWarehousesAcceptsEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"warehouses":[{"id":1,"name":"A"},{"id":2,"name":"B"}]}`)
	})

	ws, err := c.ListWarehouses(context.Background())
	require.NoError(t, err)
	assert.Len(t, ws, 2)
}

func TestListingRoundTrip(t *testing.T) {
	var gotPatch map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/listings":
			_, _ = io.WriteString(w, `{"id":41,"status":"DRAFT"}`)
		case r.Method == http.MethodPut && r.URL.Path == "/listings/41":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotPatch))
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/listings":
			_, _ = io.WriteString(w, `{"listings":[{"id":41,"status":"DRAFT","pricing":{"totalSqFt":1200}}]}`)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	created, err := c.CreateListing(ctx, "tok", domain.PlaceholderDraft("Draft"))
	require.NoError(t, err)
	assert.Equal(t, domain.ID("41"), created.ID)

	form := domain.NewListingDraft()
	form.Pricing.TotalSqFt = "1200"
	_, err = c.UpdateListing(ctx, "tok", created.ID, domain.CleanPatch(form))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"totalSqFt": float64(1200)}, gotPatch["pricing"])

	listings, err := c.ListMyListings(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, domain.FormNumber("1200"), listings[0].Pricing.TotalSqFt)
	assert.Equal(t, domain.HoursSevenDays, listings[0].Hours.Mode)
}

func TestAdminApprovePayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/admin/warehouses/5/approve", r.URL.Path)
		var body map[string]bool
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]bool{"isApproved": true}, body)
		_, _ = io.WriteString(w, `{"ok":true}`)
	})

	require.NoError(t, c.ApproveWarehouse(context.Background(), "tok", "5", true))
}

func TestBookingListsTolerateNull(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookings/owner/3", r.URL.Path)
		_, _ = io.WriteString(w, `null`)
	})

	bookings, err := c.OwnerBookings(context.Background(), "tok", "3")
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestUpdateWarehouseSendsMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/warehouses/3", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary="))

		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "Dock 3", r.FormValue("name"))
		assert.Equal(t, "0", r.FormValue("price"))
		assert.Equal(t, "1200", r.FormValue("totalSpace"))
		assert.Equal(t, "", r.FormValue("description"))

		files := r.MultipartForm.File["images"]
		if assert.Len(t, files, 2) {
			assert.Equal(t, "front.jpg", files[0].Filename)
			assert.Equal(t, "image/jpeg", files[0].Header.Get("Content-Type"))
			assert.Equal(t, "application/octet-stream", files[1].Header.Get("Content-Type"))
			if f, err := files[1].Open(); assert.NoError(t, err) {
				data, _ := io.ReadAll(f)
				f.Close()
				assert.Equal(t, "png-bytes", string(data))
			}
		}

		_, _ = io.WriteString(w, `{"id":3,"name":"Dock 3"}`)
	})

	w, err := c.UpdateWarehouse(context.Background(), "tok", "3", domain.WarehouseUpdate{
		Name:       "Dock 3",
		TotalSpace: "1200",
		Images: []domain.Upload{
			{Filename: "front.jpg", ContentType: "image/jpeg", Data: []byte("jpeg-bytes")},
			{Filename: "side.png", Data: []byte("png-bytes")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ID("3"), w.ID)
}

func TestUpdateWarehouseEmptyResponseKeepsID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	w, err := c.UpdateWarehouse(context.Background(), "tok", "9", domain.WarehouseUpdate{})
	require.NoError(t, err)
	assert.Equal(t, domain.ID("9"), w.ID)
}
