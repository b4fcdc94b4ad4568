package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bz888/ollamachat/internal/logger"
)

// Client talks to a single Ollama server.
type Client struct {
	base        *url.URL
	http        *http.Client
	modelsURL   *url.URL
	showURL     *url.URL
	generateURL *url.URL
}

// ClientConfig holds the base URL and endpoint paths.
type ClientConfig struct {
	Scheme       string
	Host         string
	ModelsPath   string
	ShowPath     string
	GeneratePath string
}

func DefaultConfig() ClientConfig {
	return ClientConfig{
		Scheme:       "http",
		Host:         "127.0.0.1:11434",
		ModelsPath:   "/api/tags",
		ShowPath:     "/api/show",
		GeneratePath: "/api/generate",
	}
}

// ConfigFromURL returns DefaultConfig pointed at rawURL.
func ConfigFromURL(rawURL string) (ClientConfig, error) {
	cfg := DefaultConfig()
	u, err := url.Parse(rawURL)
	if err != nil {
		return cfg, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return cfg, fmt.Errorf("parse base url: %q has no scheme or host", rawURL)
	}
	cfg.Scheme = u.Scheme
	cfg.Host = u.Host
	return cfg, nil
}

// NewClient builds a client. No timeout is set: generation may run for as
// long as the server keeps the stream open.
func NewClient(config ClientConfig) *Client {
	baseURL := &url.URL{Scheme: config.Scheme, Host: config.Host}
	return &Client{
		base:        baseURL,
		http:        &http.Client{},
		modelsURL:   baseURL.ResolveReference(&url.URL{Path: config.ModelsPath}),
		showURL:     baseURL.ResolveReference(&url.URL{Path: config.ShowPath}),
		generateURL: baseURL.ResolveReference(&url.URL{Path: config.GeneratePath}),
	}
}

func (c *Client) BaseURL() string {
	return c.base.String()
}

// ListModels fetches /api/tags and returns the models in server order.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	var response ModelsResponse
	if err := c.do(ctx, http.MethodGet, c.modelsURL, nil, &response); err != nil {
		return nil, err
	}
	if response.Models == nil {
		return []Model{}, nil
	}
	return response.Models, nil
}

// ShowModel fetches /api/show for name.
func (c *Client) ShowModel(ctx context.Context, name string) (*ModelInfo, error) {
	var info ModelInfo
	if err := c.do(ctx, http.MethodPost, c.showURL, &ShowRequest{Name: name}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Generate starts a streamed generation. A non-2xx status is returned as an
// error before any fragment is read; the caller must Close the stream.
func (c *Client) Generate(ctx context.Context, req *GenerateRequest) (*Stream, error) {
	localLogger := logger.NewLogger("ollama generate")

	req.Stream = true
	request, err := c.newRequest(ctx, http.MethodPost, c.generateURL, req)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/x-ndjson")

	response, err := c.http.Do(request)
	if err != nil {
		localLogger.Error("Failed to send generate request:", err)
		return nil, &Error{Kind: KindConnection, Message: "failed to reach " + c.base.Host, Cause: err}
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		defer response.Body.Close()
		body, _ := io.ReadAll(response.Body)
		localLogger.Error("Generate returned", response.Status)
		return nil, statusError(response.StatusCode, http.StatusText(response.StatusCode), strings.TrimSpace(string(body)))
	}

	localLogger.Info("Streaming from model:", req.Model)
	return NewStream(response.Body), nil
}

func (c *Client) newRequest(ctx context.Context, method string, target *url.URL, data any) (*http.Request, error) {
	var body io.Reader
	if data != nil {
		bts, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(bts)
	}

	request, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if data != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	return request, nil
}

func (c *Client) do(ctx context.Context, method string, target *url.URL, data, out any) error {
	localLogger := logger.NewLogger("ollama client")

	request, err := c.newRequest(ctx, method, target, data)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(request)
	if err != nil {
		localLogger.Error("Failed to perform request:", method, target.Path, err)
		return &Error{Kind: KindConnection, Message: "failed to reach " + c.base.Host, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindConnection, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		localLogger.Error("Request failed:", method, target.Path, resp.Status)
		return statusError(resp.StatusCode, http.StatusText(resp.StatusCode), strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		localLogger.Error("Failed to decode response:", err)
		return &Error{Kind: KindDecode, Message: "failed to decode " + target.Path, Cause: err}
	}
	return nil
}
