package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Health queries the backend actuator. Only the status field is read;
// actuator component details vary between deployments.
func (c *IborClient) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/actuator/health", nil)
	if err != nil {
		return nil, &Error{Op: "health", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Op: "health", Err: fmt.Errorf("failed to reach ibor-server: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &Error{Op: "health", Status: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	var out HealthResponse
	if err := json.Unmarshal(body, &out); err != nil || out.Status == "" {
		if resp.StatusCode != http.StatusOK {
			return nil, &Error{Op: "health", Status: resp.StatusCode, Err: fmt.Errorf("server returned %d", resp.StatusCode)}
		}
		return nil, &Error{Op: "health", Status: resp.StatusCode, Err: fmt.Errorf("failed to parse response: missing status")}
	}
	return &out, nil
}
