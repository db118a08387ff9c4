package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/relieflink/backend/internal/session"
)

// authClient wraps the identity endpoints of a relieflink server. Donation
// traffic goes through donations.APIStore instead.
type authClient struct {
	baseURL    string
	httpClient *http.Client
}

func newAuthClient(serverURL string) *authClient {
	return &authClient{
		baseURL: strings.TrimRight(serverURL, "/") + "/api",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

type authPayload struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

func (c *authClient) signup(name, email, password, phone string) (*authPayload, error) {
	return c.post("/auth/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"phone":    phone,
	})
}

func (c *authClient) login(email, password string) (*authPayload, error) {
	return c.post("/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *authClient) post(path string, body interface{}) (*authPayload, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var envelope struct {
		Success bool        `json:"success"`
		Data    authPayload `json:"data"`
		Error   string      `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode >= 400 || !envelope.Success {
		message := envelope.Error
		if message == "" {
			message = string(data)
		}
		return nil, &apiError{Status: resp.StatusCode, Message: message}
	}

	return &envelope.Data, nil
}
