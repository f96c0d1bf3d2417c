package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNoActiveRun: сервер состояния ещё не видел ни одного run'а.
var ErrNoActiveRun = errors.New("no run tracked yet")

// --- Response types (дублируются из statusapi, CLI-клиент не зависит от сервера) ---

// InFlightResponse: задача, обрабатываемая прямо сейчас.
type InFlightResponse struct {
	Task      string `json:"task"`
	WorkerID  int    `json:"worker_id"`
	StartedAt string `json:"started_at"`
}

// StatusResponse: снимок run'а из /status.
type StatusResponse struct {
	RunID      string             `json:"run_id"`
	Status     string             `json:"status"`
	Dataset    string             `json:"dataset"`
	Style      string             `json:"style"`
	Workers    int                `json:"workers"`
	Total      int                `json:"total"`
	Succeeded  int                `json:"succeeded"`
	Failed     int                `json:"failed"`
	InFlight   []InFlightResponse `json:"in_flight"`
	StartedAt  string             `json:"started_at,omitempty"`
	FinishedAt string             `json:"finished_at,omitempty"`
	Error      string             `json:"error,omitempty"`
}

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client: HTTP-клиент сервера состояния.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для сервера состояния.
func NewClient(baseURL string) *Client {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Health проверяет /healthz.
func (c *Client) Health() error {
	resp, err := c.do(http.MethodGet, "/healthz")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: HTTP %d", resp.StatusCode)
	}
	return nil
}

// Status возвращает снимок текущего run'а.
func (c *Client) Status() (*StatusResponse, error) {
	var status StatusResponse
	if err := c.get("/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// --- HTTP helpers ---

func (c *Client) get(path string, result any) error {
	resp, err := c.do(http.MethodGet, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNoActiveRun
	}
	if err := c.checkError(resp); err != nil {
		return err
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return json.Unmarshal(dr.Data, result)
}

func (c *Client) do(method, path string) (*http.Response, error) {
	req, err := http.NewRequest(method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil || er.Error == "" {
		return fmt.Errorf("status server error: HTTP %d", resp.StatusCode)
	}
	return fmt.Errorf("status server error: %s", er.Error)
}
