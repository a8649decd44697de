package cubeplay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SolverClient talks to a remote cube solving service.
//
// The service exposes a single endpoint:
//
//	GET <base>/solve?scramble=<percent-encoded scramble>
//
// and answers with {"solution": "..."} or {"error": "..."}. The client
// issues exactly one request per call: no retries, no caching, and no
// timeout beyond the underlying transport's.
type SolverClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSolverClient creates a client for the solver at baseURL.
func NewSolverClient(baseURL string, opts ...ClientOption) *SolverClient {
	c := &SolverClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the solver base URL.
func (c *SolverClient) BaseURL() string {
	return c.baseURL
}

// solveResponse is the solver's JSON body. Exactly one of the two fields
// is meaningful; an empty solution string is a valid answer.
type solveResponse struct {
	Solution string `json:"solution"`
	Error    string `json:"error"`
}

// RequestSolution asks the solver for a solution to the given scramble.
// A non-2xx response fails with *HTTPStatusError; a 2xx response carrying
// an "error" field fails with *SolverError. The returned solution may be
// empty, meaning the scramble leaves the puzzle already solved.
func (c *SolverClient) RequestSolution(ctx context.Context, scramble string) (string, error) {
	reqURL := c.baseURL + "/solve?scramble=" + url.QueryEscape(scramble)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("create solver request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("solver request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &HTTPStatusError{
			Code:   resp.StatusCode,
			Status: http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read solver response: %w", err)
	}

	var parsed solveResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode solver response: %w", err)
	}

	if parsed.Error != "" {
		return "", &SolverError{Message: parsed.Error}
	}

	return parsed.Solution, nil
}
