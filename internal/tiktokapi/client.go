// Package tiktokapi is the fallback metadata client used when the extraction
// tool is unavailable or yields nothing. It talks to the platform's web API
// over a session-scoped HTTP client and performs all optional-field
// defensiveness once, at the decode boundary.
package tiktokapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tiktoksage/tiksage/internal/errs"
	"github.com/tiktoksage/tiksage/internal/model"
)

// Session and request tuning
const (
	sessionAttempts = 2
	sessionBackoff  = 2 * time.Second
	requestTimeout  = 30 * time.Second

	defaultSiteURL = "https://www.tiktok.com"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

var videoIDPattern = regexp.MustCompile(`/video/(\d+)`)

// Client fetches per-video metadata from the platform's web API. A session
// (cookie state) must be established before the first Video call.
type Client struct {
	http    *http.Client
	siteURL string
	backoff time.Duration
	session bool
}

// NewClient creates a client. proxyURL is optional; an empty string uses the
// environment's default proxy handling.
func NewClient(proxyURL string) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 8
	transport.IdleConnTimeout = 30 * time.Second
	transport.ResponseHeaderTimeout = requestTimeout

	if proxyURL != "" {
		if parsed, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(parsed)
		} else {
			logrus.Warnf("Ignoring invalid proxy URL: %v", err)
		}
	}

	jar, _ := cookiejar.New(nil)
	return &Client{
		http: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
			Jar:       jar,
		},
		siteURL: defaultSiteURL,
		backoff: sessionBackoff,
	}
}

// EstablishSession primes the client's cookie state against the site,
// retrying up to sessionAttempts times with a fixed backoff. Failure after
// all attempts is a network error.
func (c *Client) EstablishSession(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= sessionAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(c.backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.touchSite(ctx); err != nil {
			lastErr = err
			logrus.Warnf("Session creation failed (attempt %d/%d): %v", attempt, sessionAttempts, err)
			continue
		}
		c.session = true
		return nil
	}
	return fmt.Errorf("establish session: %w: %v", errs.ErrNetwork, lastErr)
}

// touchSite performs the session-priming request
func (c *Client) touchSite(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.siteURL+"/", nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Video fetches and decodes metadata for one video URL. Every optional field
// in the response decodes to a zero value when absent; the only hard
// requirements are a parseable payload and at least one media address.
func (c *Client) Video(ctx context.Context, videoURL string) (*model.ResolvedMedia, error) {
	if !c.session {
		if err := c.EstablishSession(ctx); err != nil {
			return nil, err
		}
	}

	id := extractVideoID(videoURL)
	if id == "" {
		return nil, fmt.Errorf("no video id in %q: %w", videoURL, errs.ErrParse)
	}

	endpoint := fmt.Sprintf("%s/api/item/detail/?itemId=%s", c.siteURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", c.siteURL+"/")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch video metadata: %w: %v", errs.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch video metadata: %w: status %d", errs.ErrNetwork, resp.StatusCode)
	}

	var payload itemPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode video metadata: %w", errs.ErrParse)
	}

	media := payload.resolve()
	if media.DirectMediaURL == "" {
		return nil, fmt.Errorf("no media address in metadata for %s", videoURL)
	}
	return media, nil
}

// extractVideoID pulls the numeric item ID out of a canonical video URL
func extractVideoID(videoURL string) string {
	m := videoIDPattern.FindStringSubmatch(videoURL)
	if m == nil {
		return ""
	}
	return m[1]
}
