package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/leaveport/leaveport-backend-go/internal/domain/calendar"
)

// ErrConsentRequired signals that the delegated token lacks the calendar
// scope. Callers must fall back to local data and offer re-consent at most
// once per session.
var ErrConsentRequired = errors.New("Calendar read permission has not been granted")

type Client interface {
	// ListEvents fetches the signed-in account's calendar events, trimmed to
	// subject and start/end.
	ListEvents(ctx context.Context, accessToken string) ([]calendar.ExternalEvent, error)
}

type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type eventListResponse struct {
	Value []calendar.ExternalEvent `json:"value"`
}

func (c *HTTPClient) ListEvents(ctx context.Context, accessToken string) ([]calendar.ExternalEvent, error) {
	endpoint := c.baseURL + "/me/events?" + url.Values{
		"$select": {"subject,start,end"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		io.Copy(io.Discard, resp.Body)
		return nil, ErrConsentRequired
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("graph events returned status %d: %s", resp.StatusCode, body)
	}

	var list eventListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, err
	}
	return list.Value, nil
}
