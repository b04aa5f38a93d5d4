package webscraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"

	"github.com/bububa/travel-agents/schema"
	"github.com/bububa/travel-agents/tools"
)

// Input schema for the webpage scraper tool.
type Input struct {
	schema.Base
	// URL of the webpage to scrape.
	URL string `json:"url" jsonschema:"title=url,description=URL of the webpage to scrape." validate:"required,url"`
}

func NewInput(link string) *Input {
	return &Input{URL: link}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Metadata schema for webpage metadata
type Metadata struct {
	// Title is the title of the webpage.
	Title string `json:"title,omitempty" jsonschema:"title=title,description=The title of the webpage."`
	// Description is the meta description of the webpage.
	Description string `json:"description,omitempty" jsonschema:"title=description,description=The meta description of the webpage."`
	// SiteName is the name of the website.
	SiteName string `json:"sitename,omitempty" jsonschema:"title=sitename,description=The name of the website."`
	// Domain is the domain name of the website.
	Domain string `json:"domain,omitempty" jsonschema:"title=domain,description=The domain name of the website."`
}

// Output schema for the output of the webpage scraper tool.
type Output struct {
	schema.Base
	// Content the scraped content in markdown format.
	Content string `json:"content,omitempty" jsonschema:"title=content,description=The scraped content in markdown format."`
	// Metadata is metadata about the scraped webpage.
	Metadata *Metadata `json:"metadata,omitempty" jsonschema:"title=metadata,description=Metadata about the webpage."`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Title implements systemprompt.ContextProvider
func (s Output) Title() string {
	if s.Metadata != nil && s.Metadata.Title != "" {
		return fmt.Sprintf("Destination Guide: %s", s.Metadata.Title)
	}
	return "Destination Guide"
}

// Info implements systemprompt.ContextProvider
func (s Output) Info() string {
	return s.Content
}

type Config struct {
	tools.Config
	// userAgent User agent string to use for requests.
	userAgent string
	// maxContentLength maximum markdown length in bytes to keep.
	maxContentLength int
	httpClient       *http.Client
}

// Webscraper fetches a webpage and converts its main content to markdown.
type Webscraper struct {
	Config
}

var _ tools.Tool[Input, Output] = (*Webscraper)(nil)

func New(opts ...Option) *Webscraper {
	ret := new(Webscraper)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("WebscraperTool")
	}
	if ret.userAgent == "" {
		ret.userAgent = DefaultUserAgent
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Run runs the scraper synchronously with the given parameters
func (t *Webscraper) Run(ctx context.Context, input *Input) (*Output, error) {
	parsedURL, err := url.ParseRequestURI(input.URL)
	if err != nil {
		return nil, err
	}
	doc, err := t.fetch(ctx, input)
	if err != nil {
		return nil, err
	}
	mainContent := t.extractMainContent(doc)
	markdown, err := htmltomarkdown.ConvertString(
		mainContent,
		converter.WithDomain(fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)),
	)
	if err != nil {
		return nil, err
	}
	markdown = t.cleanMarkdownContent(markdown)
	if t.maxContentLength > 0 && len(markdown) > t.maxContentLength {
		markdown = markdown[:t.maxContentLength]
	}
	meta := new(Metadata)
	meta.Domain = parsedURL.Host
	t.extractMetadata(doc, meta)
	return &Output{Content: markdown, Metadata: meta}, nil
}

func (t *Webscraper) fetch(ctx context.Context, input *Input) (*goquery.Document, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, input.URL, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", t.userAgent)
	httpReq.Header.Set("Accept", DefaultAccept)
	httpReq.Header.Set("Connection", "keep-alive")
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()
	return goquery.NewDocumentFromReader(httpResp.Body)
}

// extractMetadata extracts metadata from the webpage
func (t *Webscraper) extractMetadata(doc *goquery.Document, meta *Metadata) {
	meta.Title = doc.Find("head title").Text()
	meta.Description, _ = doc.Find("meta[name='description']").Attr("content")
	meta.SiteName, _ = doc.Find("meta[property='og:site_name']").Attr("content")
}

// extractMainContent extracts the main content from the webpage using custom heuristics
func (t *Webscraper) extractMainContent(doc *goquery.Document) string {
	for _, tag := range []string{"script", "style", "nav", "header", "footer"} {
		doc.Find(tag).Remove()
	}
	contentCandidates := []string{
		"main",
		"#content, #main",
		".content, .main",
		"article",
		"body",
	}
	var mainContent string
	for _, selector := range contentCandidates {
		sel := doc.Find(selector)
		if sel.Length() > 0 {
			if txt, err := sel.Html(); err == nil {
				mainContent = txt
				break
			}
		}
	}
	if mainContent == "" {
		mainContent, _ = doc.Html()
	}
	return mainContent
}

// cleanMarkdownContent cleans up the markdown content by removing excessive
// whitespace and normalizing formatting
func (t *Webscraper) cleanMarkdownContent(content string) string {
	re := regexp.MustCompile(`\r?\n{2,}`)
	content = re.ReplaceAllString(content, "\n\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	content = strings.Join(lines, "\n")
	content = strings.TrimSpace(content) + "\n"
	return content
}
