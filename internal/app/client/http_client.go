package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"stockroom/internal/app/client/config"
	"stockroom/internal/domain/resource"
)

type httpClient struct {
	client    *http.Client
	config    *config.Config
	log       *slog.Logger
	baseURL   string
	clientID  string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) (*httpClient, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			DisableCompression:  false,
			DisableKeepAlives:   false,
			MaxIdleConnsPerHost: 10,
		},
	}

	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}
	baseURL := scheme + cfg.ServerAddress

	clientID, err := loadOrCreateClientID(cfg.ClientIDPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize client id: %w", err)
	}

	return &httpClient{
		client:    client,
		config:    cfg,
		log:       log,
		baseURL:   baseURL,
		clientID:  clientID,
		userAgent: "Stockroom-Client/1.0",
	}, nil
}

// loadOrCreateClientID reads the persisted client instance id, generating
// one on first use. The id survives restarts so the server can tell
// instances apart in its request logs.
func loadOrCreateClientID(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read client id file: %w", err)
	}

	id := uuid.NewString()
	if err := os.WriteFile(path, []byte(id), 0600); err != nil {
		return "", fmt.Errorf("failed to save client id file: %w", err)
	}

	return id, nil
}

// HealthCheck verifies the server is reachable
func (h *httpClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", h.baseURL+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("server is unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status: %d", resp.StatusCode)
	}

	return nil
}

// ListResources fetches the resource definitions the server exposes
func (h *httpClient) ListResources(ctx context.Context) ([]resource.Definition, error) {
	resp, err := h.doRequest(ctx, "GET", "/api/resources", nil)
	if err != nil {
		return nil, err
	}

	var defs []resource.Definition
	if err := h.parseResponse(resp, &defs); err != nil {
		return nil, err
	}

	return defs, nil
}

// ListRecords fetches the records of one collection, optionally filtered
// and sorted server-side
func (h *httpClient) ListRecords(ctx context.Context, resourceName, query, sort string) ([]resource.Record, error) {
	path := "/api/" + resourceName

	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if sort != "" {
		params.Set("sort", sort)
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	resp, err := h.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var records []resource.Record
	if err := h.parseResponse(resp, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// GetRecord fetches a single record by id
func (h *httpClient) GetRecord(ctx context.Context, resourceName string, id int64) (resource.Record, error) {
	resp, err := h.doRequest(ctx, "GET", fmt.Sprintf("/api/%s/%d", resourceName, id), nil)
	if err != nil {
		return resource.Record{}, err
	}

	var rec resource.Record
	if err := h.parseResponse(resp, &rec); err != nil {
		return resource.Record{}, err
	}

	return rec, nil
}

// CreateRecord creates a record on the server and returns the stored copy
func (h *httpClient) CreateRecord(ctx context.Context, resourceName string, fields resource.Fields) (resource.Record, error) {
	resp, err := h.doRequest(ctx, "POST", "/api/"+resourceName, fields)
	if err != nil {
		return resource.Record{}, err
	}

	var rec resource.Record
	if err := h.parseResponse(resp, &rec); err != nil {
		return resource.Record{}, err
	}

	return rec, nil
}

// UpdateRecord applies a partial update and returns the merged record
func (h *httpClient) UpdateRecord(ctx context.Context, resourceName string, id int64, fields resource.Fields) (resource.Record, error) {
	resp, err := h.doRequest(ctx, "PUT", fmt.Sprintf("/api/%s/%d", resourceName, id), fields)
	if err != nil {
		return resource.Record{}, err
	}

	var rec resource.Record
	if err := h.parseResponse(resp, &rec); err != nil {
		return resource.Record{}, err
	}

	return rec, nil
}

// DeleteRecord removes a record from the server
func (h *httpClient) DeleteRecord(ctx context.Context, resourceName string, id int64) error {
	resp, err := h.doRequest(ctx, "DELETE", fmt.Sprintf("/api/%s/%d", resourceName, id), nil)
	if err != nil {
		return err
	}

	return h.parseResponse(resp, nil)
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if h.clientID != "" {
		req.Header.Set("X-Client-Id", h.clientID)
	}

	h.log.Debug("sending request",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	h.log.Debug("received response",
		"status", resp.StatusCode,
		"body", string(body),
	)

	if resp.StatusCode >= 400 {
		// Error responses follow RFC 7807: the message a user should see
		// lives in "detail", with "title" as the generic fallback.
		var errResp struct {
			Title  string `json:"title"`
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil {
			if errResp.Detail != "" {
				return fmt.Errorf("server error: %s", errResp.Detail)
			}
			if errResp.Title != "" {
				return fmt.Errorf("server error: %s", errResp.Title)
			}
		}
		return fmt.Errorf("server error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}
