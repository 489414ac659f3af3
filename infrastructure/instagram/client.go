package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"folio-gate/domain"
	"folio-gate/errors"
)

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("instagram api status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	token      string
	userID     string
	httpClient *http.Client
}

func NewClient(baseURL, token, userID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), token: token, userID: userID, httpClient: httpClient}
}

type mediaResponse struct {
	Data  []domain.MediaPost `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Media lists the latest posts of the configured account.
func (c *Client) Media(ctx context.Context) ([]domain.MediaPost, error) {
	if strings.TrimSpace(c.token) == "" || strings.TrimSpace(c.userID) == "" {
		return nil, errors.ErrMissingCredential
	}

	query := url.Values{}
	query.Set("fields", "id,media_url,permalink")
	query.Set("access_token", c.token)
	endpoint := fmt.Sprintf("%s/%s/media?%s", c.baseURL, url.PathEscape(c.userID), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the URL, which holds the access token.
		return nil, fmt.Errorf("calling instagram: %w", redact(err, c.token))
	}
	defer resp.Body.Close()

	var decoded mediaResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding instagram response: %w", err)
	}
	if decoded.Error != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: decoded.Error.Message}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "unexpected status"}
	}
	if decoded.Data == nil {
		decoded.Data = []domain.MediaPost{}
	}
	return decoded.Data, nil
}

func redact(err error, secret string) error {
	if secret == "" {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(err.Error(), secret, "REDACTED"))
}
