package tda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the production TD Ameritrade API endpoint.
const DefaultBaseURL = "https://api.tdameritrade.com/v1"

const defaultTimeout = 30 * time.Second

// Client wraps the TD Ameritrade REST API.
//
// The client ID and refresh token are fixed for the client's lifetime;
// the access token slot is mutable and replaced wholesale on refresh.
// A Client is not safe for concurrent use without external
// synchronization: installing a token is a plain write with no
// atomicity guarantee against in-flight calls.
type Client struct {
	baseURL      string
	clientID     string
	refreshToken string
	token        *AccessToken
	httpClient   *http.Client
	logger       zerolog.Logger
}

// NewClient creates a new TD Ameritrade client.
func NewClient(clientID, refreshToken string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if clientID == "" {
		return nil, fmt.Errorf("tda: client ID is required")
	}
	if refreshToken == "" {
		return nil, fmt.Errorf("tda: refresh token is required")
	}

	options := clientOptions{
		baseURL: DefaultBaseURL,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:      strings.TrimRight(options.baseURL, "/"),
		clientID:     clientID,
		refreshToken: refreshToken,
		token:        options.accessToken,
		httpClient:   httpClient,
		logger:       logger,
	}, nil
}

// SetAccessToken installs token as the client's bearer credential.
// Pass nil to clear it.
func (c *Client) SetAccessToken(token *AccessToken) {
	c.token = token
}

// AccessToken returns the currently installed token, or nil.
func (c *Client) AccessToken() *AccessToken {
	return c.token
}

// RefreshAccessToken exchanges the refresh token for a new access
// token. It does not mutate the client; convert the response with
// NewAccessToken and install it with SetAccessToken.
func (c *Client) RefreshAccessToken(ctx context.Context) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", c.refreshToken)
	form.Set("client_id", c.clientID)

	endpoint := c.baseURL + "/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("tda: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("url", endpoint).Msg("Refreshing access token")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp TokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &resp, nil
}

// GetAccount returns balances (and optionally positions and orders)
// for a single account.
func (c *Client) GetAccount(ctx context.Context, accountID string, params GetAccountParams) (*Account, error) {
	body, err := c.get(ctx, "/accounts/"+url.PathEscape(accountID), params.Values())
	if err != nil {
		return nil, err
	}

	var account Account
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &account, nil
}

// GetAccounts returns balances (and optionally positions and orders)
// for all linked accounts.
func (c *Client) GetAccounts(ctx context.Context, params GetAccountsParams) ([]Account, error) {
	body, err := c.get(ctx, "/accounts", params.Values())
	if err != nil {
		return nil, err
	}

	var accounts []Account
	if err := json.Unmarshal(body, &accounts); err != nil {
		return nil, &ParseError{Err: err}
	}
	return accounts, nil
}

// GetMovers returns the top movers for a market index such as "$DJI",
// "$COMPX" or "$SPX.X".
func (c *Client) GetMovers(ctx context.Context, index string, params GetMoversParams) ([]Mover, error) {
	body, err := c.get(ctx, "/marketdata/"+url.PathEscape(index)+"/movers", params.Values())
	if err != nil {
		return nil, err
	}

	var movers []Mover
	if err := json.Unmarshal(body, &movers); err != nil {
		return nil, &ParseError{Err: err}
	}
	return movers, nil
}

// GetPriceHistory returns OHLCV candles for a symbol.
func (c *Client) GetPriceHistory(ctx context.Context, symbol string, params GetPriceHistoryParams) (*PriceHistory, error) {
	body, err := c.get(ctx, "/marketdata/"+url.PathEscape(symbol)+"/pricehistory", params.Values())
	if err != nil {
		return nil, err
	}

	var history PriceHistory
	if err := json.Unmarshal(body, &history); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &history, nil
}

// get performs an authenticated GET request against the API.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.token == nil {
		return nil, ErrNoToken
	}

	requestURL := c.baseURL + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("tda: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token.Token)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("url", requestURL).Msg("Making TDA API request")

	return c.do(req)
}

// do performs the request and applies the uniform status handling: a
// transport failure is surfaced as a wrapped error, any non-200 status
// as a StatusError carrying the body verbatim. Nothing is retried.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tda: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tda: failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
