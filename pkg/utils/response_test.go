package utils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func fetchJSON(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body failed: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decoding body failed: %v", err)
	}
	return resp.StatusCode, body
}

func TestResponseEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return Success(c, fiber.StatusOK, fiber.Map{"value": 42})
	})
	app.Get("/bad", func(c *fiber.Ctx) error {
		return Error(c, fiber.StatusBadRequest, "something is off")
	})

	t.Run("success wraps data", func(t *testing.T) {
		status, body := fetchJSON(t, app, "/ok")
		if status != fiber.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if body["success"] != true {
			t.Fatalf("expected success true, got %v", body["success"])
		}
		data := body["data"].(map[string]any)
		if data["value"].(float64) != 42 {
			t.Fatalf("unexpected data: %v", data)
		}
		if _, present := body["error"]; present {
			t.Fatal("success envelope must not carry an error field")
		}
	})

	t.Run("error carries message", func(t *testing.T) {
		status, body := fetchJSON(t, app, "/bad")
		if status != fiber.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
		if body["success"] != false {
			t.Fatalf("expected success false, got %v", body["success"])
		}
		if body["error"] != "something is off" {
			t.Fatalf("expected error message, got %v", body["error"])
		}
		if _, present := body["data"]; present {
			t.Fatal("error envelope must not carry a data field")
		}
	})
}
