// Package pubmed provides a client for the NCBI E-utilities API, used to
// surface recent scientific publications for lead enrichment. Transport
// failures degrade to a fixed set of synthetic articles so callers never
// fail on an unreachable public API.
package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// toxicologyQueryTerms are the fixed search terms for the 3D in-vitro
// toxicology vertical.
var toxicologyQueryTerms = []string{
	`"3D cell culture"`,
	`"drug-induced liver injury"`,
	`"hepatic spheroids"`,
	`"organ-on-chip"`,
	`"in-vitro toxicology"`,
	`"preclinical safety"`,
	`"hepatotoxicity"`,
	`"microphysiological systems"`,
}

// Article is a single publication record.
type Article struct {
	PubMedID  string   `json:"pubmed_id"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Journal   string   `json:"journal"`
	PubDate   string   `json:"pub_date"`
	DOI       string   `json:"doi,omitempty"`
	URL       string   `json:"url"`
	Synthetic bool     `json:"synthetic,omitempty"`
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithRateLimit sets the requests-per-second limit. NCBI allows 3 req/s
// without an API key.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// Client calls the PubMed esearch and esummary endpoints.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a Client. The API key is optional; it only raises the
// permitted request rate.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(3, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchArticles searches publications matching the query, newest first,
// published within the last relDays days. Transport failures return the
// synthetic article set.
func (c *Client) SearchArticles(ctx context.Context, query string, maxResults, relDays int) ([]Article, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "pubmed: rate limit wait")
	}

	params := url.Values{
		"db":       {"pubmed"},
		"term":     {query},
		"retmax":   {strconv.Itoa(maxResults)},
		"retmode":  {"json"},
		"sort":     {"date"},
		"reldate":  {strconv.Itoa(relDays)},
		"datetype": {"pdat"},
	}

	var searchResp struct {
		ESearchResult struct {
			IDList []string `json:"idlist"`
		} `json:"esearchresult"`
	}
	if err := c.get(ctx, "/esearch.fcgi", params, &searchResp); err != nil {
		zap.L().Warn("pubmed: search failed, using synthetic articles", zap.Error(err))
		return syntheticArticles(), nil
	}

	ids := searchResp.ESearchResult.IDList
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > maxResults {
		ids = ids[:maxResults]
	}

	return c.fetchSummaries(ctx, ids)
}

// SearchToxicologyArticles searches for recent publications in the
// toxicology and 3D-model space (last two years).
func (c *Client) SearchToxicologyArticles(ctx context.Context, maxResults int) ([]Article, error) {
	query := strings.Join(toxicologyQueryTerms, " OR ")
	return c.SearchArticles(ctx, query, maxResults, 730)
}

// fetchSummaries resolves article IDs to summary records via esummary.
func (c *Client) fetchSummaries(ctx context.Context, ids []string) ([]Article, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "pubmed: rate limit wait")
	}

	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"json"},
	}

	var summaryResp struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := c.get(ctx, "/esummary.fcgi", params, &summaryResp); err != nil {
		zap.L().Warn("pubmed: summary fetch failed, using synthetic articles", zap.Error(err))
		return syntheticArticles(), nil
	}

	articles := make([]Article, 0, len(ids))
	for _, id := range ids {
		raw, ok := summaryResp.Result[id]
		if !ok {
			continue
		}
		var rec struct {
			Title   string `json:"title"`
			Source  string `json:"source"`
			PubDate string `json:"pubdate"`
			ELocID  string `json:"elocationid"`
			Authors []struct {
				Name string `json:"name"`
			} `json:"authors"`
		}
		if err := json.Unmarshal(raw, &rec); err != nil {
			zap.L().Warn("pubmed: skipping malformed summary record",
				zap.String("pubmed_id", id),
				zap.Error(err),
			)
			continue
		}

		authors := make([]string, 0, len(rec.Authors))
		for _, a := range rec.Authors {
			authors = append(authors, a.Name)
		}
		articles = append(articles, Article{
			PubMedID: id,
			Title:    rec.Title,
			Authors:  authors,
			Journal:  rec.Source,
			PubDate:  rec.PubDate,
			DOI:      rec.ELocID,
			URL:      fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", id),
		})
	}
	return articles, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return eris.Wrapf(err, "pubmed: build request %s", path)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return eris.Wrapf(err, "pubmed: GET %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("pubmed: GET %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return eris.Wrapf(err, "pubmed: decode %s response", path)
	}
	return nil
}

// syntheticArticles returns fixed placeholder publications for offline use.
func syntheticArticles() []Article {
	titles := []string{
		"3D Hepatic Spheroid Model for Drug-Induced Liver Injury Assessment",
		"Organ-on-Chip Technology for Preclinical Safety Evaluation",
		"Advanced In Vitro Models for Hepatotoxicity Prediction",
		"Microphysiological Systems in Toxicology: Current Status and Future Perspectives",
		"Integration of 3D Cell Culture Models in Drug Development Pipelines",
	}
	journals := []string{
		"Toxicology in Vitro",
		"Drug Metabolism and Disposition",
		"Journal of Pharmacological and Toxicological Methods",
		"ALTEX - Alternatives to Animal Experimentation",
		"Toxicological Sciences",
	}

	articles := make([]Article, len(titles))
	for i := range titles {
		id := fmt.Sprintf("1234567%d", i)
		articles[i] = Article{
			PubMedID:  id,
			Title:     titles[i],
			Authors:   []string{"Researcher A", "Researcher B"},
			Journal:   journals[i],
			PubDate:   "2025",
			DOI:       fmt.Sprintf("10.1234/tox.%d", i),
			URL:       fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", id),
			Synthetic: true,
		}
	}
	return articles
}
