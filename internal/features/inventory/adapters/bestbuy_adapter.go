package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"stock-tracker/internal/core/logger"
	"stock-tracker/internal/features/inventory/domain"

	"go.uber.org/zap"
)

// BestBuyAdapter fetches availability straight from the upstream API.
type BestBuyAdapter struct {
	// baseURL is the availability endpoint without query string.
	baseURL string
	// client executes the request; see httpclient.NewClient.
	client *http.Client
	logger *zap.Logger
}

// NewBestBuyAdapter creates a new BestBuyAdapter.
func NewBestBuyAdapter(baseURL string, client *http.Client) *BestBuyAdapter {
	return &BestBuyAdapter{
		baseURL: baseURL,
		client:  client,
		logger:  logger.Get(),
	}
}

// availabilityResponse is the recognized top-level shape of the upstream body.
type availabilityResponse struct {
	Availabilities []domain.Availability `json:"availabilities"`
}

// FetchAvailability issues one GET for the tracked set and parses the response.
func (a *BestBuyAdapter) FetchAvailability(ctx context.Context, set domain.TrackedSet) ([]domain.Availability, error) {
	target, err := BuildQueryURL(a.baseURL, set)
	if errors.Is(err, domain.ErrInvalidInput) {
		return []domain.Availability{}, nil
	}
	if err != nil {
		return nil, err
	}

	a.logger.Debug("Fetching availability",
		zap.Strings("skus", set.SKUs),
		zap.String("postal_code", set.PostalCode),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return decodeResponse(resp.StatusCode, reasonPhrase(resp.Status, resp.StatusCode), body)
}

// decodeResponse applies the status rule and then parses the body. An empty
// reason falls back to the standard text for the code.
func decodeResponse(statusCode int, reason string, body []byte) ([]domain.Availability, error) {
	if statusCode < 200 || statusCode > 299 {
		if reason == "" {
			reason = http.StatusText(statusCode)
		}
		return nil, &domain.TransportError{
			StatusCode: statusCode,
			StatusText: reason,
		}
	}
	return ParseAvailabilities(body)
}

// reasonPhrase strips the leading code from a status line such as
// "520 Origin Error".
func reasonPhrase(status string, statusCode int) string {
	return strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(statusCode)))
}

// ParseAvailabilities decodes a body of the form {"availabilities": [...]}.
// A missing or null key, a non-object body or mistyped fields are parse errors.
func ParseAvailabilities(body []byte) ([]domain.Availability, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, &domain.ParseError{Err: err}
	}
	if top == nil {
		return nil, &domain.ParseError{Err: errors.New("response is not an object")}
	}

	raw, ok := top["availabilities"]
	if !ok {
		return nil, &domain.ParseError{Err: errors.New(`missing "availabilities" key`)}
	}
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, &domain.ParseError{Err: fmt.Errorf(`"availabilities" is not an array: %s`, truncate(string(raw), 40))}
	}

	var resp availabilityResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &domain.ParseError{Err: err}
	}
	if resp.Availabilities == nil {
		resp.Availabilities = []domain.Availability{}
	}
	return resp.Availabilities, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
