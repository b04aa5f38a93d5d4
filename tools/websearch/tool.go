package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bububa/travel-agents/schema"
	"github.com/bububa/travel-agents/tools"
)

const DefaultBaseURL = "https://api.tavily.com"

// Input is the schema for a web search request against the Tavily API.
// Returns a list of search results with a short content snippet and URLs
// for further exploration.
type Input struct {
	schema.Base
	// Queries list of search queries.
	Queries []string `json:"queries" jsonschema:"title=queries,description=List of search queries." validate:"required"`
	// MaxResults limits the number of results per query.
	MaxResults int `json:"max_results,omitempty" jsonschema:"title=max_results,description=Maximum number of results per query."`
}

func NewInput(queries []string) *Input {
	return &Input{Queries: queries}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// SearchResultItem represents a single search result item
type SearchResultItem struct {
	schema.Base
	// URL the URL of the search result
	URL string `json:"url" jsonschema:"title=url,description=The URL of the search result" validate:"required,url"`
	// Title the title of the search result
	Title string `json:"title" jsonschema:"title=title,description=The title of the search result" validate:"required"`
	// Content the content snippet of the search result
	Content string `json:"content,omitempty" jsonschema:"title=content,description=The content snippet of the search result"`
	// PublishedDate the publication date when the engine reports one
	PublishedDate string `json:"published_date,omitempty" jsonschema:"title=published_date,description=The publication date of the search result"`
	// Query the query used to obtain this search result
	Query string `json:"query,omitempty" jsonschema:"title=query,description=The query used to obtain this search result"`
}

func (s SearchResultItem) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output represents the output of the web search tool.
type Output struct {
	schema.Base
	// Results list of search result items
	Results []SearchResultItem `json:"results,omitempty" jsonschema:"title=results,description=List of search result items"`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Title implements systemprompt.ContextProvider
func (s Output) Title() string {
	return "Web Search Results"
}

// Info implements systemprompt.ContextProvider
func (s Output) Info() string {
	parts := make([]string, 0, len(s.Results))
	for _, v := range s.Results {
		parts = append(parts, fmt.Sprintf("- [%s](%s): %s", v.Title, v.URL, v.Content))
	}
	return strings.Join(parts, "\n")
}

// searchRequest is the Tavily API request payload
type searchRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

// searchResponse is the Tavily API response payload
type searchResponse struct {
	Query   string             `json:"query"`
	Results []SearchResultItem `json:"results"`
}

type Config struct {
	tools.Config
	apiKey     string
	baseURL    string
	maxResults int
	httpClient *http.Client
}

// Search is a tool for querying the Tavily web search API.
type Search struct {
	Config
}

var _ tools.Tool[Input, Output] = (*Search)(nil)

func New(opts ...Option) *Search {
	ret := new(Search)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("WebSearchTool")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.maxResults == 0 {
		ret.maxResults = 10
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Run runs the web search tool synchronously with the given parameters
func (t *Search) Run(ctx context.Context, input *Input) (*Output, error) {
	maxResults := t.maxResults
	if input.MaxResults > 0 && input.MaxResults < maxResults {
		maxResults = input.MaxResults
	}
	out := new(Output)
	for _, query := range input.Queries {
		results, err := t.fetchSearchResults(ctx, query, maxResults)
		if err != nil {
			return nil, err
		}
		out.Results = append(out.Results, results...)
	}
	return out, nil
}

// fetchSearchResults queries the search API and returns the parsed results
func (t *Search) fetchSearchResults(ctx context.Context, query string, maxResults int) ([]SearchResultItem, error) {
	payload := searchRequest{
		APIKey:      t.apiKey,
		Query:       query,
		SearchDepth: "basic",
		MaxResults:  maxResults,
	}
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(&payload); err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/search", t.baseURL), buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error querying search engine: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from search engine: %d", httpResp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&searchResp); err != nil {
		return nil, err
	}
	results := make([]SearchResultItem, 0, len(searchResp.Results))
	for _, v := range searchResp.Results {
		if v.Title == "" || v.URL == "" {
			continue
		}
		v.Query = query
		results = append(results, v)
	}
	return results, nil
}
