package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testConfigYAML = `---
settings:
  measurementSystem: US
  baseCurrency: USD
  pourCostGoalPercent: 20
  defaultPourSize: 1.5
  defaultPourUnit: oz
ingredients:
  - name: Well Vodka
    kind: spirit
    bottleVolume: 750
    bottleUnit: ml
    bottlePrice: 25.00
    retailPrice: 7.50
    sellable: true
cocktails:
  - name: Martini
    price: 14.00
    components:
      - ingredient: Well Vodka
        amount: 2.5
        unit: oz
`

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return NewHandler(nil, 0, "test-version")
}

func multipartBody(t *testing.T, field, filename, contents string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(contents)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestHandleReport(t *testing.T) {
	handler := newTestHandler(t)
	body, contentType := multipartBody(t, "file", "config.yaml", testConfigYAML)

	req := httptest.NewRequest(http.MethodPost, "/api/report", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200: %s", rec.Code, rec.Body.String())
	}

	var resp reportResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Currency != "USD" || resp.GoalPercent != 20 {
		t.Errorf("header = %s / %v, expected USD / 20", resp.Currency, resp.GoalPercent)
	}
	if len(resp.Ingredients) != 1 {
		t.Fatalf("expected 1 ingredient row, got %d", len(resp.Ingredients))
	}
	if resp.Ingredients[0].Name != "Well Vodka" || !resp.Ingredients[0].PriceMeaningful {
		t.Errorf("unexpected ingredient row: %+v", resp.Ingredients[0])
	}
	if len(resp.Cocktails) != 1 || len(resp.Cocktails[0].Components) != 1 {
		t.Errorf("unexpected cocktail rows: %+v", resp.Cocktails)
	}
	if !strings.Contains(resp.CSV, `"ingredient","Well Vodka"`) {
		t.Errorf("csv missing ingredient row: %s", resp.CSV)
	}
	if resp.ConfigYAML == "" || resp.Config == nil {
		t.Error("expected the uploaded config to round-trip in the response")
	}
	if resp.Duration == "" {
		t.Error("expected a duration in the response")
	}
}

func TestHandleReportMissingFile(t *testing.T) {
	handler := newTestHandler(t)
	body, contentType := multipartBody(t, "other", "config.yaml", testConfigYAML)

	req := httptest.NewRequest(http.MethodPost, "/api/report", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400", rec.Code)
	}
}

func TestHandleReportMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, expected 405", rec.Code)
	}
}

func TestHandleReportUploadTooLarge(t *testing.T) {
	handler := NewHandler(nil, 64, "test-version")
	body, contentType := multipartBody(t, "file", "config.yaml", testConfigYAML)

	req := httptest.NewRequest(http.MethodPost, "/api/report", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, expected 413", rec.Code)
	}
}

func TestHandleReportInvalidYAML(t *testing.T) {
	handler := newTestHandler(t)
	body, contentType := multipartBody(t, "file", "config.yaml", "ingredients: [unclosed")

	req := httptest.NewRequest(http.MethodPost, "/api/report", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400", rec.Code)
	}
}

func TestHandleReportEditor(t *testing.T) {
	handler := newTestHandler(t)
	payload := map[string]interface{}{
		"config": map[string]interface{}{
			"settings": map[string]interface{}{
				"pourCostGoalPercent": 25,
			},
			"ingredients": []map[string]interface{}{
				{
					"name":         "House Gin",
					"kind":         "spirit",
					"bottleVolume": 1000,
					"bottleUnit":   "ml",
					"bottlePrice":  22.50,
				},
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/editor/report", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200: %s", rec.Code, rec.Body.String())
	}

	var resp reportResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.GoalPercent != 25 {
		t.Errorf("goal percent = %v, expected 25", resp.GoalPercent)
	}
	if len(resp.Ingredients) != 1 || resp.Ingredients[0].Name != "House Gin" {
		t.Errorf("unexpected ingredient rows: %+v", resp.Ingredients)
	}
}

func TestHandleReportEditorInvalidJSON(t *testing.T) {
	handler := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/editor/report", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400", rec.Code)
	}
}

func TestHandleConfigExport(t *testing.T) {
	handler := newTestHandler(t)
	payload := map[string]interface{}{
		"ingredients": []map[string]interface{}{
			{"name": "Vodka", "bottleVolume": 750, "bottleUnit": "ml", "bottlePrice": 25},
		},
		"settings": map[string]interface{}{
			"pourCostGoalPercent": 20,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/editor/export", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	yamlText := resp["configYaml"]
	settingsIdx := strings.Index(yamlText, "settings:")
	ingredientsIdx := strings.Index(yamlText, "ingredients:")
	if settingsIdx < 0 || ingredientsIdx < 0 {
		t.Fatalf("exported YAML missing sections: %s", yamlText)
	}
	// Settings lead the export even though the JSON payload listed them last.
	if settingsIdx > ingredientsIdx {
		t.Errorf("settings should precede ingredients in exported YAML: %s", yamlText)
	}
}

func TestHandleScalePosition(t *testing.T) {
	tests := []struct {
		name       string
		request    scalePositionRequest
		wantStatus int
		position   float64
		step       float64
		quantized  float64
		tier       string
	}{
		{
			name:       "Percent at goal",
			request:    scalePositionRequest{Value: 20, Goal: 20, DomainMin: 0, DomainMax: 100},
			wantStatus: http.StatusOK,
			position:   0.5,
			step:       0.25,
			quantized:  20,
			tier:       "good",
		},
		{
			name:       "Percent above goal",
			request:    scalePositionRequest{Value: 26, Goal: 20, DomainMin: 0, DomainMax: 100, Kind: "percent"},
			wantStatus: http.StatusOK,
			position:   0.71,
			step:       0.25,
			quantized:  26,
			tier:       "warning",
		},
		{
			name:       "Price kind has no tier",
			request:    scalePositionRequest{Value: 12, Goal: 15, DomainMin: 0, DomainMax: 100, Kind: "price"},
			wantStatus: http.StatusOK,
			position:   0.395,
			step:       0.25,
			quantized:  12,
			tier:       "",
		},
		{
			name:       "Goal outside domain",
			request:    scalePositionRequest{Value: 20, Goal: 150, DomainMin: 0, DomainMax: 100},
			wantStatus: http.StatusBadRequest,
		},
	}

	handler := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.request)
			if err != nil {
				t.Fatalf("failed to marshal request: %v", err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/scale/position", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, expected %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp scalePositionResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if diff := resp.Position - tt.position; diff > 0.005 || diff < -0.005 {
				t.Errorf("position = %v, expected about %v", resp.Position, tt.position)
			}
			if resp.Step != tt.step {
				t.Errorf("step = %v, expected %v", resp.Step, tt.step)
			}
			if resp.Quantized != tt.quantized {
				t.Errorf("quantized = %v, expected %v", resp.Quantized, tt.quantized)
			}
			if resp.Tier != tt.tier {
				t.Errorf("tier = %q, expected %q", resp.Tier, tt.tier)
			}
		})
	}
}

func TestHandleVersion(t *testing.T) {
	handler := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "test-version" {
		t.Errorf("version = %q, expected test-version", resp["version"])
	}
}

func TestHandleVersionDefault(t *testing.T) {
	handler := NewHandler(nil, 0, "  ")
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "dev" {
		t.Errorf("version = %q, expected dev", resp["version"])
	}
}

func TestStaticIndex(t *testing.T) {
	handler := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<html") {
		t.Error("expected the embedded index page")
	}
}
