package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

func (c *Client) Contact(ctx context.Context, msg ContactMessage) (string, error) {
	var resp MessageResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/contact", msg, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) BMI(ctx context.Context, req BMIRequest) (*BMIResponse, error) {
	var resp BMIResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/calc/bmi", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) BMR(ctx context.Context, req BMRRequest) (*BMRResponse, error) {
	var resp BMRResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/calc/bmr", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Version returns the plain text version the API reports.
func (c *Client) Version(ctx context.Context) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/version", nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("get version: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return "", fmt.Errorf("read version: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	return strings.TrimSpace(string(body)), nil
}
