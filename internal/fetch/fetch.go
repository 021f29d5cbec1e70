// Package fetch retrieves web pages and reduces them to plain text. Job
// postings are fetched over HTTP with retries, and pages that render with
// JavaScript can fall back to a headless browser.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests. Several job
// boards reject requests without a browser-like agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 5 << 20

// Result holds the raw and processed content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	Text        string
	ContentType string
	StatusCode  int
	// Rendered is true when the HTML came from the headless browser.
	Rendered bool
}

// Error represents an error during URL fetching.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	Retry     RetryPolicy
	// UseBrowser enables headless rendering when the fetched page has too
	// little text. Render defaults to WithBrowser.
	UseBrowser bool
	Render     func(ctx context.Context, url string) (string, error)
	Client     *http.Client
	Logger     *slog.Logger
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		Retry:     DefaultRetryPolicy(),
	}
}

func (o *Options) withDefaults() *Options {
	out := DefaultOptions()
	if o == nil {
		out.Logger = slog.New(slog.DiscardHandler)
		return out
	}
	*out = *o
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.UserAgent == "" {
		out.UserAgent = DefaultUserAgent
	}
	if out.Retry.Attempts <= 0 {
		out.Retry = DefaultRetryPolicy()
	}
	if out.Logger == nil {
		out.Logger = slog.New(slog.DiscardHandler)
	}
	return out
}

// URL retrieves HTML content from a URL, retrying transient failures.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	opts = opts.withDefaults()

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	return retry(ctx, opts.Retry, opts.Logger, func() (*Result, error) {
		return get(ctx, client, urlStr, opts)
	})
}

func get(ctx context.Context, client *http.Client, urlStr string, opts *Options) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode != http.StatusOK {
		return result, &Error{
			URL:        urlStr,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	return result, nil
}

// Page fetches a URL and extracts its text. When the text is shorter than
// MinContentLength and the browser fallback is enabled, the page is rendered
// headlessly and the longer of the two texts is kept.
func Page(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	opts = opts.withDefaults()

	result, err := URL(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}

	result.Text, err = ExtractText(result.HTML)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
	}

	if !opts.UseBrowser || !ShouldUseBrowser(result.Text) {
		return result, nil
	}

	render := opts.Render
	if render == nil {
		render = func(ctx context.Context, url string) (string, error) {
			return WithBrowser(ctx, url, BrowserTimeout, opts.Logger)
		}
	}

	opts.Logger.Info("page text too short, rendering in browser", "url", urlStr, "chars", len(result.Text))
	html, err := render(ctx, urlStr)
	if err != nil {
		opts.Logger.Warn("browser rendering failed", "url", urlStr, "error", err)
		return result, nil
	}

	text, err := ExtractText(html)
	if err != nil || len(text) <= len(result.Text) {
		return result, nil
	}

	result.HTML = html
	result.Text = text
	result.Rendered = true
	return result, nil
}
