package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/reconcile"

	"go.uber.org/zap"
)

// ownedGamesPath is the Web API method listing the games an account owns.
const ownedGamesPath = "/IPlayerService/GetOwnedGames/v1"

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 32 << 20

// ErrInvalidResponse is returned when the owned games response is not the
// expected JSON document, e.g. for a wrong API key or a private profile.
var ErrInvalidResponse = errors.New("API response invalid")

// ownedGamesResponse mirrors the GetOwnedGames envelope. Games is a pointer so
// a missing list can be told apart from an empty one.
type ownedGamesResponse struct {
	Response struct {
		GameCount int                    `json:"game_count"`
		Games     *[]reconcile.OwnedGame `json:"games"`
	} `json:"response"`
}

// Client fetches account data from the Steam Web API.
type Client struct {
	baseURL    string
	key        string
	steamID    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Steam Web API client for one account.
func NewClient(cfg Config, key, steamID string, httpClient *http.Client, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.APIURL, "/"),
		key:        key,
		steamID:    steamID,
		httpClient: httpClient,
		logger:     logger,
	}
}

// GetOwnedGames returns every game owned by the account, with app info and
// total playtime, in the order the API lists them.
func (c *Client) GetOwnedGames(ctx context.Context) ([]reconcile.OwnedGame, error) {
	u, err := url.Parse(c.baseURL + ownedGamesPath)
	if err != nil {
		return nil, fmt.Errorf("invalid Steam API URL: %w", err)
	}

	q := u.Query()
	q.Set("key", c.key)
	q.Set("steamid", c.steamID)
	q.Set("include_appinfo", "true")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug("Fetching owned games", zap.String("steamid", c.steamID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The URL carries the API key, keep it out of the message
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("failed to fetch owned games: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read owned games response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: expected data, received %s: %s", ErrInvalidResponse, resp.Status, snippet(body))
	}

	var parsed ownedGamesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: expected data, received: %s", ErrInvalidResponse, snippet(body))
	}
	if parsed.Response.Games == nil {
		return nil, fmt.Errorf("%w: no games listed (is the profile's game details visibility public?)", ErrInvalidResponse)
	}

	games := *parsed.Response.Games
	c.logger.Debug("Fetched owned games", zap.Int("count", len(games)))

	return games, nil
}

// snippet shortens a response body for an error message.
func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
