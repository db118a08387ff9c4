package donations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/relieflink/backend/internal/models"
)

func wireDonation(id, userID uuid.UUID) map[string]any {
	return map[string]any{
		"_id":              id.String(),
		"userId":           userID.String(),
		"donorName":        "Remote Donor",
		"location":         "Remote Collection Center",
		"itemsDescription": "tents and tarpaulins",
		"category":         "Other",
		"weightKg":         30.0,
		"quantity":         6,
		"date":             time.Date(2026, time.April, 2, 10, 0, 0, 0, time.UTC).Format(time.RFC3339),
		"status":           "Pending",
		"impactMessage":    "Shelters six families.",
	}
}

func TestAPIStoreList(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()

	t.Run("translates _id documents from a bare upstream", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/donations" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode([]map[string]any{wireDonation(id, userID)})
		}))
		defer upstream.Close()

		store := NewAPIStore(upstream.URL)
		records, err := store.ListAll(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		if records[0].ID != id {
			t.Fatalf("expected _id translated to id %s, got %s", id, records[0].ID)
		}
		if records[0].UserID != userID {
			t.Fatalf("expected owner %s, got %s", userID, records[0].UserID)
		}
	})

	t.Run("unwraps a success envelope", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    []map[string]any{wireDonation(id, userID)},
			})
		}))
		defer upstream.Close()

		store := NewAPIStore(upstream.URL)
		records, err := store.ListAll(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 1 || records[0].ID != id {
			t.Fatalf("unexpected records: %+v", records)
		}
	})

	t.Run("per-user path carries the user id", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/donations/user/"+userID.String() {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode([]map[string]any{})
		}))
		defer upstream.Close()

		store := NewAPIStore(upstream.URL)
		records, err := store.ListByUser(context.Background(), userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 0 {
			t.Fatalf("expected no records, got %d", len(records))
		}
	})

	t.Run("malformed document id maps to ErrUnavailable", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			doc := wireDonation(id, userID)
			doc["_id"] = "65b2f0a9c1d2e3f4a5b6c7d8"
			json.NewEncoder(w).Encode([]map[string]any{doc})
		}))
		defer upstream.Close()

		store := NewAPIStore(upstream.URL)
		if _, err := store.ListAll(context.Background()); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})
}

func TestAPIStoreCreate(t *testing.T) {
	userID := uuid.New()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/donations" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var doc map[string]any
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			t.Errorf("failed decoding request body: %v", err)
		}
		if doc["id"] == "" || doc["id"] == nil {
			t.Error("expected client-assigned id in request")
		}
		// Echo back the stored document, upstream-style.
		doc["_id"] = doc["id"]
		delete(doc, "id")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(doc)
	}))
	defer upstream.Close()

	store := NewAPIStore(upstream.URL)
	stored, err := store.Create(context.Background(), &models.Donation{
		UserID:           userID,
		DonorName:        "Remote Donor",
		Location:         "Remote Collection Center",
		ItemsDescription: "tents",
		Category:         models.CategoryOther,
		WeightKg:         30,
		Quantity:         6,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.ID == uuid.Nil {
		t.Fatal("expected assigned id")
	}
	if stored.Status != models.StatusPending {
		t.Fatalf("expected defaulted status Pending, got %s", stored.Status)
	}
	if stored.Date.IsZero() {
		t.Fatal("expected defaulted date")
	}
}

func TestAPIStoreUpdate(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()

	t.Run("sends only patched fields", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/api/donations/"+id.String() {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			var patch map[string]any
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				t.Errorf("failed decoding patch: %v", err)
			}
			if len(patch) != 1 || patch["status"] != "Collected" {
				t.Errorf("expected a single-field patch, got %v", patch)
			}
			doc := wireDonation(id, userID)
			doc["status"] = "Collected"
			json.NewEncoder(w).Encode(doc)
		}))
		defer upstream.Close()

		store := NewAPIStore(upstream.URL)
		status := models.StatusCollected
		updated, err := store.Update(context.Background(), id, Patch{Status: &status})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != models.StatusCollected {
			t.Fatalf("expected status Collected, got %s", updated.Status)
		}
	})

	t.Run("upstream 404 maps to ErrNotFound", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"success": false, "error": "donation not found"}`)
		}))
		defer upstream.Close()

		store := NewAPIStore(upstream.URL)
		status := models.StatusCollected
		if _, err := store.Update(context.Background(), uuid.New(), Patch{Status: &status}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestAPIStoreDelete(t *testing.T) {
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete || r.URL.Path != "/api/donations/"+id.String() {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			fmt.Fprint(w, `{"success": true, "data": {"message": "donation deleted successfully"}}`)
		}))
		defer upstream.Close()

		if err := NewAPIStore(upstream.URL).Delete(context.Background(), id); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("404 maps to ErrNotFound", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer upstream.Close()

		if err := NewAPIStore(upstream.URL).Delete(context.Background(), id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestAPIStoreFailures(t *testing.T) {
	t.Run("connection refused maps to ErrUnavailable", func(t *testing.T) {
		// A server closed before use guarantees a dead port.
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		upstream.Close()

		store := NewAPIStore(upstream.URL)
		if _, err := store.ListAll(context.Background()); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("upstream 500 maps to ErrUnavailable with the upstream message", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"success": false, "error": "database connection lost"}`)
		}))
		defer upstream.Close()

		store := NewAPIStore(upstream.URL)
		_, err := store.ListAll(context.Background())
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
		if got := err.Error(); !strings.Contains(got, "database connection lost") {
			t.Fatalf("expected upstream message in error, got %q", got)
		}
	})

	t.Run("non-json body maps to ErrUnavailable", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html>gateway timeout</html>")
		}))
		defer upstream.Close()

		store := NewAPIStore(upstream.URL)
		if _, err := store.ListAll(context.Background()); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("cancelled context aborts the call", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer upstream.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		store := NewAPIStore(upstream.URL)
		if _, err := store.ListAll(ctx); err == nil {
			t.Fatal("expected error from cancelled context")
		}
	})
}
