package mood

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/theimaginaryfoundation/mood-assistant/mood/logging"
)

const (
	DefaultVerseBaseURL  = "http://api.alquran.cloud/v1/ayah"
	DefaultVerseLanguage = "ar"

	// VersePlaceholder is shown whenever a verse cannot be fetched.
	VersePlaceholder = "📖 (تعذر جلب الآية)"
)

// maxVerseBody bounds how much of a verse response is read.
const maxVerseBody = 1 << 20

// VerseRefs maps each category to a fixed chapter:verse reference.
var VerseRefs = map[Category]string{
	Negative: "12:18",
	Neutral:  "13:28",
	Positive: "14:34",
}

// VerseFetcher returns display text for a category's verse. It never fails; on any problem it
// returns VersePlaceholder.
type VerseFetcher interface {
	FetchVerse(ctx context.Context, c Category) string
}

// VerseClient fetches verses from an alquran.cloud compatible API:
// GET {BaseURL}/{chapter}:{verse}/{Language}, reading data.text from the JSON body.
type VerseClient struct {
	BaseURL    string
	Language   string
	HTTPClient *http.Client
	Log        *logging.Logger
}

func NewVerseClient(baseURL, language string, log *logging.Logger) *VerseClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultVerseBaseURL
	}
	if strings.TrimSpace(language) == "" {
		language = DefaultVerseLanguage
	}
	return &VerseClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Language:   language,
		HTTPClient: &http.Client{},
		Log:        log.With("component", "verses"),
	}
}

// Ensure VerseClient implements VerseFetcher
var _ VerseFetcher = (*VerseClient)(nil)

func (c *VerseClient) FetchVerse(ctx context.Context, cat Category) string {
	ref, ok := VerseRefs[cat]
	if !ok {
		c.Log.Warn("no verse reference for category", "category", cat.String())
		return VersePlaceholder
	}
	return c.FetchVerseByRef(ctx, ref)
}

// FetchVerseByRef fetches the verse text for a "chapter:verse" reference.
func (c *VerseClient) FetchVerseByRef(ctx context.Context, ref string) string {
	text, err := c.fetch(ctx, ref)
	if err != nil {
		c.Log.Warn("verse fetch failed, using placeholder", "ref", ref, "error", err.Error())
		return VersePlaceholder
	}
	return text
}

func (c *VerseClient) fetch(ctx context.Context, ref string) (string, error) {
	url := fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.BaseURL, "/"), ref, c.Language)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxVerseBody))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("invalid JSON body (len=%d)", len(body))
	}
	text := gjson.GetBytes(body, "data.text")
	if !text.Exists() || strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("missing data.text in response")
	}

	c.Log.Debug("verse fetched", "ref", ref, "lang", c.Language)
	return strings.TrimSpace(text.String()), nil
}
