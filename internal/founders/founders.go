package founders

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/cofounder-match/internal/compatibility"
)

const (
	userAgent = "spigell/cofounder-match"
	// Max value for listing per page.
	perPage = "100"

	profilesPath = "/profiles"
	mePath       = "/profiles/me"
	likesPath    = "/likes"

	defaultMaxRetries = 3
	defaultRetryBase  = 500 * time.Millisecond
	maxRetryDelay     = 10 * time.Second
)

// Source provides the current founder and the pool of candidates.
type Source interface {
	Me(ref string) (*compatibility.FounderProfile, error)
	Candidates() (*Profiles, error)
}

// Client talks to the founder profiles backend.
type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
	MaxRetries int
	RetryBase  time.Duration
}

func New(ctx context.Context, logger *zap.Logger, apiURL, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		ctx:    ctx,
		token:  token,
		APIURL: strings.TrimRight(apiURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:     logger,
		UserAgent:  userAgent,
		MaxRetries: defaultMaxRetries,
		RetryBase:  defaultRetryBase,
	}
}

// Me returns the founder ref points to, or the token owner when ref is empty.
func (c *Client) Me(ref string) (*compatibility.FounderProfile, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return c.GetProfile(c.APIURL + mePath)
	}
	return c.GetProfile(fmt.Sprintf("%s%s/%s", c.APIURL, profilesPath, url.PathEscape(ref)))
}

// GetProfile fetches and decodes a single founder profile.
func (c *Client) GetProfile(apiURL string) (*compatibility.FounderProfile, error) {
	var raw map[string]any
	if err := c.getJSON(apiURL, nil, &raw); err != nil {
		return nil, err
	}

	profile, err := DecodeProfile(raw)
	if err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	return profile, nil
}

// Candidates returns every founder listed for discovery. Items that cannot be
// decoded are logged and skipped.
func (c *Client) Candidates() (*Profiles, error) {
	q := url.Values{}
	q.Set("per_page", perPage)

	items, err := c.GetItems(c.APIURL+profilesPath, q)
	if err != nil {
		return nil, err
	}

	profiles, failures := DecodeProfiles(items)
	for _, failure := range failures {
		c.logger.Warn("skipping undecodable profile",
			zap.Int("index", failure.Index),
			zap.Error(failure.Err),
		)
	}

	return profiles, nil
}

// Like records a like for the candidate on the backend.
func (c *Client) Like(candidateID string) error {
	if strings.TrimSpace(candidateID) == "" {
		return fmt.Errorf("candidate id is required")
	}

	return c.postFormData(c.APIURL+likesPath, map[string]string{
		"founder_id": candidateID,
	})
}
