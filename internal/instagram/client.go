package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/utkarshdubey2008/InstaPoster/internal/config"
)

const (
	DefaultAuthURL  = "https://api.instagram.com/oauth/authorize"
	DefaultTokenURL = "https://api.instagram.com/oauth/access_token"
	DefaultGraphURL = "https://graph.instagram.com"

	oauthScope = "user_profile,user_media"

	// Graph API status_code value for a container that finished processing
	statusFinished = "FINISHED"
)

var (
	ErrTokenExchange   = errors.New("instagram token exchange failed")
	ErrIdentityFetch   = errors.New("instagram identity fetch failed")
	ErrContainerCreate = errors.New("instagram container creation failed")
	ErrPublish         = errors.New("instagram media publish failed")
)

// Identity is the connected account's Graph profile.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// API is the remote boundary for authorization and publishing. The session
// layer depends on this interface, not on the HTTP client.
type API interface {
	BuildAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchIdentity(ctx context.Context, accessToken string) (*Identity, error)
	CreateContainer(ctx context.Context, accessToken, videoURL, caption string) (string, error)
	CheckStatus(ctx context.Context, accessToken, containerID string) (bool, error)
	Publish(ctx context.Context, accessToken, containerID string) (string, error)
}

type Client struct {
	appID       string
	appSecret   string
	redirectURI string

	authURL  string
	tokenURL string
	graphURL string

	http *http.Client
}

var _ API = (*Client)(nil)

func NewClient(appID, appSecret, redirectURI string) *Client {
	return &Client{
		appID:       appID,
		appSecret:   appSecret,
		redirectURI: redirectURI,
		authURL:     DefaultAuthURL,
		tokenURL:    DefaultTokenURL,
		graphURL:    DefaultGraphURL,
		http:        &http.Client{Timeout: config.InstagramRequestTimeout},
	}
}

// NewClientWithBaseURLs overrides the Instagram endpoints, for tests against
// a local server.
func NewClientWithBaseURLs(appID, appSecret, redirectURI, authURL, tokenURL, graphURL string) *Client {
	c := NewClient(appID, appSecret, redirectURI)
	c.authURL = authURL
	c.tokenURL = tokenURL
	c.graphURL = graphURL
	return c
}

// BuildAuthURL is deterministic URL construction; no network call.
func (c *Client) BuildAuthURL(state string) string {
	params := url.Values{
		"client_id":     {c.appID},
		"redirect_uri":  {c.redirectURI},
		"scope":         {oauthScope},
		"response_type": {"code"},
		"state":         {state},
	}
	return c.authURL + "?" + params.Encode()
}

// ExchangeCode trades an authorization code for an access token. Codes are
// single-use, so there is no retry here.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	data := url.Values{
		"client_id":     {c.appID},
		"client_secret": {c.appSecret},
		"grant_type":    {"authorization_code"},
		"redirect_uri":  {c.redirectURI},
		"code":          {code},
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.postForm(ctx, c.tokenURL, data, &tokenResp); err != nil {
		log.Error().Err(err).Msg("instagram token exchange failed")
		return "", fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("%w: response missing access_token", ErrTokenExchange)
	}
	return tokenResp.AccessToken, nil
}

func (c *Client) FetchIdentity(ctx context.Context, accessToken string) (*Identity, error) {
	var identity Identity
	endpoint := c.graphURL + "/me?fields=id,username"
	if err := c.getBearer(ctx, endpoint, accessToken, &identity); err != nil {
		log.Error().Err(err).Msg("instagram identity fetch failed")
		return nil, fmt.Errorf("%w: %v", ErrIdentityFetch, err)
	}
	if identity.ID == "" {
		return nil, fmt.Errorf("%w: response missing id", ErrIdentityFetch)
	}
	return &identity, nil
}

// CreateContainer starts asynchronous ingestion of the media at videoURL and
// returns the container id.
func (c *Client) CreateContainer(ctx context.Context, accessToken, videoURL, caption string) (string, error) {
	data := url.Values{
		"media_type":   {"REELS"},
		"video_url":    {videoURL},
		"caption":      {caption},
		"access_token": {accessToken},
	}

	var containerResp struct {
		ID string `json:"id"`
	}
	if err := c.postForm(ctx, c.graphURL+"/me/media", data, &containerResp); err != nil {
		log.Error().Err(err).Msg("instagram container creation failed")
		return "", fmt.Errorf("%w: %v", ErrContainerCreate, err)
	}
	if containerResp.ID == "" {
		return "", fmt.Errorf("%w: response missing id", ErrContainerCreate)
	}
	return containerResp.ID, nil
}

// CheckStatus reports whether the container finished processing. Callers
// treat an error as "not yet ready" for that poll attempt.
func (c *Client) CheckStatus(ctx context.Context, accessToken, containerID string) (bool, error) {
	endpoint := fmt.Sprintf("%s/%s?fields=status_code", c.graphURL, containerID)

	var statusResp struct {
		StatusCode string `json:"status_code"`
	}
	if err := c.getBearer(ctx, endpoint, accessToken, &statusResp); err != nil {
		return false, err
	}
	return statusResp.StatusCode == statusFinished, nil
}

func (c *Client) Publish(ctx context.Context, accessToken, containerID string) (string, error) {
	data := url.Values{
		"creation_id":  {containerID},
		"access_token": {accessToken},
	}

	var publishResp struct {
		ID string `json:"id"`
	}
	if err := c.postForm(ctx, c.graphURL+"/me/media_publish", data, &publishResp); err != nil {
		log.Error().Err(err).Msg("instagram media publish failed")
		return "", fmt.Errorf("%w: %v", ErrPublish, err)
	}
	if publishResp.ID == "" {
		return "", fmt.Errorf("%w: response missing id", ErrPublish)
	}
	return publishResp.ID, nil
}

func (c *Client) postForm(ctx context.Context, endpoint string, data url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) getBearer(ctx context.Context, endpoint, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncateBody(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func truncateBody(body []byte) string {
	const max = 200
	if len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "..."
}
