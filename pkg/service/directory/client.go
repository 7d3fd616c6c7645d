package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
	"github.com/mindverse-hq/taskdeck/pkg/utils/safe"
)

type client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Service = &client{}

// Option is a functional option for client configuration
type Option func(*client)

// WithHTTPClient overrides the HTTP client, used by tests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// New creates a directory client for the user-management service's internal
// lookup endpoint: GET {base}/internal/users?ids=a,b,c -> [UserRef].
func New(baseURL string, opts ...Option) (Service, error) {
	if baseURL == "" {
		return nil, goerr.New("user directory base URL is required")
	}

	c := &client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *client) Resolve(ctx context.Context, ids []types.UserID) (map[types.UserID]model.UserRef, error) {
	result := make(map[types.UserID]model.UserRef, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	joined := make([]string, len(ids))
	for i, id := range ids {
		joined[i] = id.String()
	}

	endpoint := c.baseURL + "/internal/users?ids=" + url.QueryEscape(strings.Join(joined, ","))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build directory request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query user directory", goerr.V("endpoint", endpoint))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("user directory returned unexpected status",
			goerr.V("status", resp.StatusCode),
			goerr.V("endpoint", endpoint))
	}

	var users []model.UserRef
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, goerr.Wrap(err, "failed to decode directory response")
	}

	for _, user := range users {
		result[user.ID] = user
	}

	return result, nil
}
