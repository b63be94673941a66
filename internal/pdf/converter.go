package pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/mitra-sanitaer/backend/internal/render"
)

// =============================================================================
// Converter
// =============================================================================

// Converter transforms an HTML document into PDF bytes.
type Converter interface {
	Convert(ctx context.Context, html string) ([]byte, error)
}

// renderTimeout bounds a single conversion. A render that has not settled by
// then reports failure instead of hanging the request.
const renderTimeout = 30 * time.Second

// A4 paper in inches, with 1cm printed margins.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
	marginIn      = 0.394
)

// ChromeConverter converts HTML to PDF through a headless Chrome instance.
//
// Every call launches its own browser and tears it down on all exit paths,
// including render failure, so concurrent requests never share an engine and
// a crashed render cannot leak a process.
type ChromeConverter struct {
	company render.CompanyInfo

	// now is injectable for deterministic page footers in tests.
	now func() time.Time
}

// NewChromeConverter creates a converter stamping the company details into
// the running page header and footer.
func NewChromeConverter(company render.CompanyInfo) *ChromeConverter {
	return &ChromeConverter{
		company: company,
		now:     time.Now,
	}
}

// Convert loads the HTML into a fresh headless browser, waits for the page to
// settle, and prints it as paginated A4 with the configured header and footer.
func (c *ChromeConverter) Convert(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	printCtx := render.Context{Now: c.now(), Company: c.company}
	header := render.PrintHeader(printCtx)
	footer := render.PrintFooter(printCtx)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pdfBytes []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("get frame tree: %w", err)
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithMarginTop(marginIn).
				WithMarginBottom(marginIn).
				WithMarginLeft(marginIn).
				WithMarginRight(marginIn).
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(header).
				WithFooterTemplate(footer).
				Do(ctx)
			if err != nil {
				return fmt.Errorf("print to pdf: %w", err)
			}
			pdfBytes = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBytes, nil
}
