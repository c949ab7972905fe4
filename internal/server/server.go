package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/pourmetrics/pourcost/internal/config"
	"github.com/pourmetrics/pourcost/internal/report"
	"github.com/pourmetrics/pourcost/pkg/constants"
	"github.com/pourmetrics/pourcost/pkg/output"
	"github.com/pourmetrics/pourcost/pkg/pourcost"
	"github.com/pourmetrics/pourcost/pkg/scale"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the web UI and report API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Report API endpoint (file upload)
	mux.HandleFunc("/api/report", h.handleReport)

	// Report API endpoint for editor-driven updates
	mux.HandleFunc("/api/editor/report", h.handleReportEditor)

	// Config serialization endpoint for editor downloads
	mux.HandleFunc("/api/editor/export", h.handleConfigExport)

	// Slider position endpoint for drag-driven input
	mux.HandleFunc("/api/scale/position", h.handleScalePosition)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	return mux
}

type reportResponse struct {
	Currency    string                 `json:"currency"`
	GoalPercent float64                `json:"goalPercent"`
	Ingredients []ingredientRow        `json:"ingredients"`
	Cocktails   []cocktailRow          `json:"cocktails"`
	CSV         string                 `json:"csv"`
	Warnings    []string               `json:"warnings,omitempty"`
	Duration    string                 `json:"duration"`
	Config      map[string]interface{} `json:"config,omitempty"`
	ConfigYAML  string                 `json:"configYaml,omitempty"`
}

type ingredientRow struct {
	Name               string  `json:"name"`
	Kind               string  `json:"kind"`
	Bottle             string  `json:"bottle"`
	CostPerPour        float64 `json:"costPerPour"`
	SuggestedPrice     float64 `json:"suggestedPrice"`
	RetailPrice        float64 `json:"retailPrice,omitempty"`
	PourCostPercentage float64 `json:"pourCostPercentage,omitempty"`
	ProfitMargin       float64 `json:"profitMargin,omitempty"`
	PriceMeaningful    bool    `json:"priceMeaningful"`
	Tier               string  `json:"tier,omitempty"`
	BarPosition        float64 `json:"barPosition,omitempty"`
}

type cocktailRow struct {
	Name               string         `json:"name"`
	Price              float64        `json:"price"`
	TotalCost          float64        `json:"totalCost"`
	SuggestedPrice     float64        `json:"suggestedPrice"`
	PourCostPercentage float64        `json:"pourCostPercentage,omitempty"`
	ProfitMargin       float64        `json:"profitMargin,omitempty"`
	PriceMeaningful    bool           `json:"priceMeaningful"`
	Tier               string         `json:"tier,omitempty"`
	BarPosition        float64        `json:"barPosition,omitempty"`
	Components         []componentRow `json:"components,omitempty"`
}

type componentRow struct {
	Name        string  `json:"name"`
	CostPerPour float64 `json:"costPerPour"`
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && h.logger != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleReport"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err))
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err))
		return
	}

	h.runReport(w, configBytes, configMap, start, "server.handleReport")
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleReportEditor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleReportEditor")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondErrorWithOp(w, http.StatusBadRequest, "invalid config payload: expected object", "server.handleReportEditor")
			return
		}
		configPayload = cfgMap
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleReportEditor")
		return
	}

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse configuration: %v", err), "server.handleReportEditor")
		return
	}

	h.runReport(w, configBytes, configMap, start, "server.handleReportEditor")
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleConfigExport")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleConfigExport")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

type scalePositionRequest struct {
	Value     float64 `json:"value"`
	Goal      float64 `json:"goal"`
	DomainMin float64 `json:"domainMin"`
	DomainMax float64 `json:"domainMax"`
	Kind      string  `json:"kind"` // percent (default) or price
}

type scalePositionResponse struct {
	Position  float64 `json:"position"`
	Step      float64 `json:"step"`
	Quantized float64 `json:"quantized"`
	Tier      string  `json:"tier,omitempty"`
}

// handleScalePosition maps a slider value onto its bar position, reporting
// the step size and the quantized value the UI should snap to.
func (h *handler) handleScalePosition(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req scalePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleScalePosition")
		return
	}

	position, err := scale.ToPosition(req.Value, req.Goal, req.DomainMin, req.DomainMax)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleScalePosition")
		return
	}

	resp := scalePositionResponse{Position: position}
	if req.Kind == "price" {
		resp.Step = scale.PriceStep(req.Value)
	} else {
		resp.Step = scale.PercentStep(req.Value)
		resp.Tier = string(pourcost.PerformanceTier(req.Value, req.Goal))
	}
	resp.Quantized = scale.Quantize(req.Value, resp.Step)

	h.writeJSON(w, http.StatusOK, resp)
}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range []string{"settings", "logging", "output"} {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	ordered := orderedConfig{items: items}
	return yaml.Marshal(ordered)
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func (h *handler) runReport(w http.ResponseWriter, configBytes []byte, configMap map[string]interface{}, start time.Time, op string) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()

	rep, err := report.Run(h.logger, *cfg)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to compute report: %v", err), op)
		return
	}

	elapsed := time.Since(start)

	if configMap == nil {
		configMap = make(map[string]interface{})
	}

	response := reportResponse{
		Currency:    rep.CurrencyCode,
		GoalPercent: rep.GoalPercent,
		Ingredients: buildIngredientRows(rep),
		Cocktails:   buildCocktailRows(rep),
		CSV:         output.CsvString(rep),
		Warnings:    normalizeWarnings(warnings),
		Duration:    elapsed.String(),
		Config:      configMap,
		ConfigYAML:  string(configBytes),
	}

	if h.logger != nil {
		h.logger.Info("report computed",
			zap.String("op", op),
			zap.Int("ingredients", len(response.Ingredients)),
			zap.Int("cocktails", len(response.Cocktails)),
			zap.Duration("duration", elapsed),
		)
	}

	h.writeJSON(w, http.StatusOK, response)
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondErrorWithOp(w, status, msg, "server.handleReport")
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	if h.logger != nil {
		h.logger.Error("report request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func buildIngredientRows(rep report.Report) []ingredientRow {
	rows := make([]ingredientRow, 0, len(rep.Ingredients))
	for _, ing := range rep.Ingredients {
		rows = append(rows, ingredientRow{
			Name:               ing.Name,
			Kind:               ing.Kind,
			Bottle:             ing.BottleDisplay,
			CostPerPour:        ing.CostPerPour,
			SuggestedPrice:     ing.SuggestedPrice,
			RetailPrice:        ing.RetailPrice,
			PourCostPercentage: ing.PourCostPercentage,
			ProfitMargin:       ing.ProfitMargin,
			PriceMeaningful:    ing.PriceMeaningful,
			Tier:               string(ing.Tier),
			BarPosition:        ing.BarPosition,
		})
	}
	return rows
}

func buildCocktailRows(rep report.Report) []cocktailRow {
	rows := make([]cocktailRow, 0, len(rep.Cocktails))
	for _, cocktail := range rep.Cocktails {
		row := cocktailRow{
			Name:               cocktail.Name,
			Price:              cocktail.Price,
			TotalCost:          cocktail.TotalCost,
			SuggestedPrice:     cocktail.SuggestedPrice,
			PourCostPercentage: cocktail.PourCostPercentage,
			ProfitMargin:       cocktail.ProfitMargin,
			PriceMeaningful:    cocktail.PriceMeaningful,
			Tier:               string(cocktail.Tier),
			BarPosition:        cocktail.BarPosition,
		}
		for _, comp := range cocktail.Components {
			row.Components = append(row.Components, componentRow{
				Name:        comp.Name,
				CostPerPour: comp.CostPerPour,
			})
		}
		rows = append(rows, row)
	}
	return rows
}

func normalizeWarnings(warnings []string) []string {
	if len(warnings) == 0 {
		return nil
	}

	filtered := make([]string, 0, len(warnings))
	for _, warning := range warnings {
		if trimmed := strings.TrimSpace(warning); trimmed != "" {
			filtered = append(filtered, trimmed)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}
