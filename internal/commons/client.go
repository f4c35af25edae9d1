package commons

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/http2"

	"github.com/knudmoeller/solar-system-rdf/api/schemas"
)

// DefaultEndpoint is the Commons MediaWiki API.
const DefaultEndpoint = "https://commons.wikimedia.org/w/api.php"

// Default HTTP settings, tuned for a sequential batch conversion rather than
// a high-concurrency workload.
const (
	DefaultRequestTimeout  = 30 * time.Second
	DefaultMaxIdleConns    = 10
	DefaultIdleConnTimeout = 30 * time.Second
)

// ErrMalformedResponse reports that the API answered but the expected
// page/imageinfo structure was missing. The conversion treats this as fatal.
var ErrMalformedResponse = errors.New("malformed imageinfo response")

// ClientConfig holds the HTTP settings for the Commons API client.
type ClientConfig struct {
	Endpoint       string
	UserAgent      string
	RequestTimeout time.Duration
	ForceHTTP2     bool

	MaxIdleConns    int
	IdleConnTimeout time.Duration

	Logger *zap.Logger
}

// NewDefaultClientConfig returns a configuration suitable for talking to the
// public Commons API.
func NewDefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Endpoint:        DefaultEndpoint,
		RequestTimeout:  DefaultRequestTimeout,
		MaxIdleConns:    DefaultMaxIdleConns,
		IdleConnTimeout: DefaultIdleConnTimeout,
	}
}

// Client resolves image metadata through the Commons imageinfo API.
type Client struct {
	hc        *http.Client
	endpoint  string
	userAgent string
	log       *zap.Logger
}

var _ schemas.ImageMetadataResolver = (*Client)(nil)

// NewClient builds a Commons API client from the given configuration. A nil
// configuration uses defaults.
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		cfg = NewDefaultClientConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid commons endpoint %q: %w", endpoint, err)
	}

	transport := &http.Transport{
		MaxIdleConns:    cfg.MaxIdleConns,
		IdleConnTimeout: cfg.IdleConnTimeout,
	}
	if cfg.ForceHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			return nil, fmt.Errorf("configuring http2 transport: %w", err)
		}
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return &Client{
		hc: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		endpoint:  endpoint,
		userAgent: cfg.UserAgent,
		log:       logger.Named("commons"),
	}, nil
}

// extValue tolerates the API's habit of serializing a few metadata values as
// bare numbers instead of strings.
type extValue struct {
	Value flexString `json:"value"`
}

type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(b)
	return nil
}

type imageInfo struct {
	ExtMetadata map[string]extValue `json:"extmetadata"`
}

type apiPage struct {
	ImageInfo []imageInfo `json:"imageinfo"`
}

type apiResponse struct {
	Query struct {
		Pages map[string]apiPage `json:"pages"`
	} `json:"query"`
}

// Resolve fetches the extended metadata block for one image and extracts the
// license and attribution fields. Each field is independently optional;
// absent fields come back empty.
func (c *Client) Resolve(ctx context.Context, imageName string) (*schemas.ImageMetadata, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("titles", "Image:"+imageName)
	q.Set("prop", "imageinfo")
	q.Set("iiprop", "extmetadata")
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building imageinfo request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying imageinfo for %q: %w", imageName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imageinfo query for %q returned status %d", imageName, resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding imageinfo for %q: %w", imageName, err)
	}

	if len(parsed.Query.Pages) == 0 {
		return nil, fmt.Errorf("%w: no pages for %q", ErrMalformedResponse, imageName)
	}

	// The contract is exactly one matched page; iterate deterministically in
	// case the API ever returns more.
	keys := make([]string, 0, len(parsed.Query.Pages))
	for k := range parsed.Query.Pages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	page := parsed.Query.Pages[keys[0]]

	if len(page.ImageInfo) == 0 {
		return nil, fmt.Errorf("%w: no imageinfo for %q", ErrMalformedResponse, imageName)
	}

	ext := page.ImageInfo[0].ExtMetadata
	meta := &schemas.ImageMetadata{
		LicenseShortName: string(ext["LicenseShortName"].Value),
		LicenseURL:       string(ext["LicenseUrl"].Value),
		Artist:           string(ext["Artist"].Value),
		Credit:           string(ext["Credit"].Value),
	}
	c.log.Debug("Resolved image metadata",
		zap.String("image", imageName),
		zap.String("license", meta.LicenseShortName))
	return meta, nil
}
