package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the text length below which a fetched job page is
// assumed to be a client-rendered shell.
const MinContentLength = 500

// BrowserTimeout bounds a single headless render.
const BrowserTimeout = 30 * time.Second

// hydrationDelay gives job boards time to fill in the description after load.
const hydrationDelay = 2 * time.Second

// ShouldUseBrowser reports whether text is too thin to be a real posting.
func ShouldUseBrowser(text string) bool {
	return len(strings.TrimSpace(text)) < MinContentLength
}

var chromeFlags = []chromedp.ExecAllocatorOption{
	chromedp.Flag("headless", true),
	chromedp.Flag("disable-gpu", true),
	chromedp.Flag("no-sandbox", true),
	chromedp.Flag("disable-dev-shm-usage", true),
	chromedp.UserAgent(DefaultUserAgent),
}

// WithBrowser loads url in headless Chrome and returns the document HTML
// once it has hydrated. Chrome or Chromium must be on PATH.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	started := time.Now()

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromeFlags...)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout)
	defer cancelTimeout()

	var html string
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(hydrationDelay),
		chromedp.OuterHTML("html", &html),
	); err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	logger.Debug("rendered job page", "url", url, "bytes", len(html), "elapsed", time.Since(started))
	return html, nil
}
