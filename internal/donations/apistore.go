package donations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/relieflink/backend/internal/models"
)

// APIStore is the remote implementation of Repository. It speaks JSON to an
// upstream document-store CRUD API and translates the backend's internal
// "_id" field to the logical "id" field at this boundary.
type APIStore struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewAPIStore(baseURL string) *APIStore {
	return &APIStore{
		BaseURL: strings.TrimRight(baseURL, "/") + "/api",
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// document is the upstream wire form of a donation. The backend identifies
// records by "_id"; some deployments already expose "id".
type document struct {
	ID               string                  `json:"id,omitempty"`
	MongoID          string                  `json:"_id,omitempty"`
	UserID           string                  `json:"userId"`
	DonorName        string                  `json:"donorName"`
	Location         string                  `json:"location"`
	ItemsDescription string                  `json:"itemsDescription"`
	Category         models.DonationCategory `json:"category"`
	WeightKg         float64                 `json:"weightKg"`
	Quantity         int                     `json:"quantity"`
	Date             time.Time               `json:"date"`
	Status           models.DonationStatus   `json:"status"`
	ImpactMessage    string                  `json:"impactMessage"`
}

func (d document) toModel() (models.Donation, error) {
	rawID := d.ID
	if rawID == "" {
		rawID = d.MongoID
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return models.Donation{}, fmt.Errorf("parsing donation id %q: %w", rawID, err)
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return models.Donation{}, fmt.Errorf("parsing donation owner id %q: %w", d.UserID, err)
	}

	donation := models.Donation{
		UserID:           userID,
		DonorName:        d.DonorName,
		Location:         d.Location,
		ItemsDescription: d.ItemsDescription,
		Category:         d.Category,
		WeightKg:         d.WeightKg,
		Quantity:         d.Quantity,
		Date:             d.Date,
		Status:           d.Status,
		ImpactMessage:    d.ImpactMessage,
	}
	donation.ID = id
	return donation, nil
}

func fromModel(donation *models.Donation) document {
	return document{
		ID:               donation.ID.String(),
		UserID:           donation.UserID.String(),
		DonorName:        donation.DonorName,
		Location:         donation.Location,
		ItemsDescription: donation.ItemsDescription,
		Category:         donation.Category,
		WeightKg:         donation.WeightKg,
		Quantity:         donation.Quantity,
		Date:             donation.Date,
		Status:           donation.Status,
		ImpactMessage:    donation.ImpactMessage,
	}
}

func (s *APIStore) Create(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	if donation.ID == uuid.Nil {
		donation.ID = uuid.New()
	}
	if donation.Date.IsZero() {
		donation.Date = time.Now().UTC()
	}
	if donation.Status == "" {
		donation.Status = models.StatusPending
	}

	var doc document
	if err := s.do(ctx, http.MethodPost, "/donations", fromModel(donation), &doc); err != nil {
		return nil, err
	}

	stored, err := doc.toModel()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &stored, nil
}

func (s *APIStore) ListAll(ctx context.Context) ([]models.Donation, error) {
	return s.list(ctx, "/donations")
}

func (s *APIStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Donation, error) {
	return s.list(ctx, "/donations/user/"+userID.String())
}

func (s *APIStore) Update(ctx context.Context, id uuid.UUID, patch Patch) (*models.Donation, error) {
	var doc document
	if err := s.do(ctx, http.MethodPut, "/donations/"+id.String(), patch, &doc); err != nil {
		return nil, err
	}

	stored, err := doc.toModel()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &stored, nil
}

func (s *APIStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.do(ctx, http.MethodDelete, "/donations/"+id.String(), nil, nil)
}

func (s *APIStore) list(ctx context.Context, path string) ([]models.Donation, error) {
	var docs []document
	if err := s.do(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}

	records := make([]models.Donation, 0, len(docs))
	for _, doc := range docs {
		donation, err := doc.toModel()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		records = append(records, donation)
	}
	return records, nil
}

func (s *APIStore) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%w: upstream %d: %s", ErrUnavailable, resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("%w: upstream %d", ErrUnavailable, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(unwrapEnvelope(data), out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
		}
	}
	return nil
}

// unwrapEnvelope strips a { success, data } wrapper when the upstream uses
// one; older document-store deployments return the payload bare.
func unwrapEnvelope(data []byte) []byte {
	var envelope struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Success != nil && envelope.Data != nil {
		return envelope.Data
	}
	return data
}
