package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"folio-gate/domain"
	"folio-gate/errors"
)

const contributionsQuery = `query($login: String!, $from: DateTime!, $to: DateTime!) {
  user(login: $login) {
    contributionsCollection(from: $from, to: $to) {
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            date
            contributionCount
          }
        }
      }
      totalCommitContributions
      restrictedContributionsCount
    }
  }
}`

// APIError carries the GitHub status and first GraphQL error for server logs.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	url        string
	token      string
	login      string
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(url, token, login string, httpClient *http.Client, now func() time.Time) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if now == nil {
		now = time.Now
	}
	return &Client{url: url, token: token, login: login, httpClient: httpClient, now: now}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type contributionDay struct {
	Date              string `json:"date"`
	ContributionCount int    `json:"contributionCount"`
}

type graphQLResponse struct {
	Data struct {
		User *struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int `json:"totalContributions"`
					Weeks              []struct {
						ContributionDays []contributionDay `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
				TotalCommitContributions     int `json:"totalCommitContributions"`
				RestrictedContributionsCount int `json:"restrictedContributionsCount"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Contributions fetches the contribution calendar of the last year, flattened day by day.
func (c *Client) Contributions(ctx context.Context) (domain.ContributionCalendar, error) {
	if strings.TrimSpace(c.token) == "" {
		return domain.ContributionCalendar{}, errors.ErrMissingCredential
	}

	to := c.now().UTC()
	// GitHub includes the start date, so the year starts one day after today last year.
	from := to.AddDate(-1, 0, 1)

	payload, err := json.Marshal(graphQLRequest{
		Query: contributionsQuery,
		Variables: map[string]any{
			"login": c.login,
			"from":  from.Format(time.RFC3339),
			"to":    to.Format(time.RFC3339),
		},
	})
	if err != nil {
		return domain.ContributionCalendar{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return domain.ContributionCalendar{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ContributionCalendar{}, fmt.Errorf("calling github: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return domain.ContributionCalendar{}, fmt.Errorf("reading github response: %w", err)
	}

	var decoded graphQLResponse
	decodeErr := json.Unmarshal(body, &decoded)

	if resp.StatusCode != http.StatusOK || len(decoded.Errors) > 0 {
		message := "Failed to fetch GitHub data"
		switch {
		case len(decoded.Errors) > 0:
			message = decoded.Errors[0].Message
		case resp.StatusCode == http.StatusUnauthorized:
			message = "Invalid or expired token"
		}
		return domain.ContributionCalendar{}, &APIError{StatusCode: resp.StatusCode, Message: message}
	}
	if decodeErr != nil {
		return domain.ContributionCalendar{}, fmt.Errorf("decoding github response: %w", decodeErr)
	}
	if decoded.Data.User == nil {
		return domain.ContributionCalendar{}, &APIError{StatusCode: resp.StatusCode, Message: "user not found: " + c.login}
	}

	collection := decoded.Data.User.ContributionsCollection
	calendar := domain.ContributionCalendar{
		Contributions:       make([]int, 0, 371),
		TotalContributions:  collection.ContributionCalendar.TotalContributions,
		RestrictedCount:     collection.RestrictedContributionsCount,
		PublicContributions: collection.TotalCommitContributions,
		StartDate:           from.Format(time.DateOnly),
	}
	for i, week := range collection.ContributionCalendar.Weeks {
		for j, day := range week.ContributionDays {
			if i == 0 && j == 0 && day.Date != "" {
				calendar.StartDate = day.Date
			}
			calendar.Contributions = append(calendar.Contributions, day.ContributionCount)
		}
	}
	return calendar, nil
}
