// Package letterboxd fetches film metadata from a Letterboxd film page.
// Everything here is best effort: any network, status or parse problem simply
// yields no metadata, never an error.
package letterboxd

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHost      = "letterboxd.com"
	defaultUserAgent = "movienight/1.0"

	// Letterboxd pages are a few hundred KB; cap reads well above that.
	maxBodyBytes = 4 << 20
)

// Metadata holds whatever could be extracted from a film page. Zero values
// mean "not found"; partial results are expected.
type Metadata struct {
	Title      string
	Synopsis   string
	PosterURL  string
	RuntimeMin int
	Director   string
}

var (
	ogTitleRe    = regexp.MustCompile(`<meta\s+property="og:title"\s+content="([^"]*)"`)
	ogDescRe     = regexp.MustCompile(`<meta\s+property="og:description"\s+content="([^"]*)"`)
	ogImageRe    = regexp.MustCompile(`<meta\s+property="og:image"\s+content="([^"]*)"`)
	ldDurationRe = regexp.MustCompile(`"duration"\s*:\s*"PT(\d+)M"`)
	ldDirectorRe = regexp.MustCompile(`"director"\s*:\s*\[\s*\{[^}]*?"name"\s*:\s*"([^"]+)"`)
)

// Client fetches film pages. The zero value is not usable; use NewClient.
type Client struct {
	httpClient *http.Client
	userAgent  string
	host       string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		userAgent:  defaultUserAgent,
		host:       defaultHost,
	}
}

// FetchMetadata issues a single GET against the film page and extracts what it
// can. Returns nil when the URL is not a Letterboxd film URL or the fetch
// fails; callers treat nil as "no metadata available".
func (c *Client) FetchMetadata(ctx context.Context, referenceURL string) *Metadata {
	if !c.validURL(referenceURL) {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, referenceURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil
	}

	return c.parse(string(body))
}

func (c *Client) validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == c.host || strings.HasSuffix(host, "."+c.host)
}

func (c *Client) parse(body string) *Metadata {
	meta := &Metadata{}

	if m := ogTitleRe.FindStringSubmatch(body); m != nil {
		title := m[1]
		// og:title carries a trailing site suffix after a bullet separator,
		// sometimes entity-encoded.
		for _, sep := range []string{"•", "&bull;"} {
			if idx := strings.Index(title, sep); idx >= 0 {
				title = title[:idx]
			}
		}
		meta.Title = strings.TrimSpace(title)
	}
	if m := ogDescRe.FindStringSubmatch(body); m != nil {
		meta.Synopsis = strings.TrimSpace(m[1])
	}
	if m := ogImageRe.FindStringSubmatch(body); m != nil {
		meta.PosterURL = c.absoluteURL(strings.TrimSpace(m[1]))
	}
	if m := ldDurationRe.FindStringSubmatch(body); m != nil {
		if mins, err := strconv.Atoi(m[1]); err == nil {
			meta.RuntimeMin = mins
		}
	}
	if m := ldDirectorRe.FindStringSubmatch(body); m != nil {
		meta.Director = strings.TrimSpace(m[1])
	}

	return meta
}

// absoluteURL rewrites protocol-relative and root-relative poster URLs to
// absolute ones on the canonical host.
func (c *Client) absoluteURL(raw string) string {
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	case strings.HasPrefix(raw, "/"):
		return "https://" + c.host + raw
	default:
		return raw
	}
}
