package pdfgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ErrRender indicates the markup could not be converted to PDF.
var ErrRender = errors.New("pdf rendering failed")

// Render stages reported by StageError.
const (
	StageMarkup  = "markup"
	StagePrepare = "prepare"
	StageBrowser = "browser"
	StagePrint   = "print"
)

// StageError tags a render failure with the step that failed. It matches
// ErrRender under errors.Is and unwraps to the underlying cause.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s at %s: %v", ErrRender, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func (e *StageError) Is(target error) bool { return target == ErrRender }

func stageErr(stage string, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// Generator converts rendered markup into PDF bytes.
type Generator interface {
	Generate(ctx context.Context, html string) ([]byte, error)
}

// Paper size in inches.
const (
	paperWidthA4  = 8.27
	paperHeightA4 = 11.69
)

const defaultRenderTimeout = 60 * time.Second

// ChromeRenderer prints HTML to PDF with a headless Chrome launched per call.
type ChromeRenderer struct {
	ExecPath string
	Timeout  time.Duration
}

// NewChromeRenderer constructs a renderer. An empty execPath lets chromedp
// locate the browser.
func NewChromeRenderer(execPath string, timeout time.Duration) *ChromeRenderer {
	if timeout <= 0 {
		timeout = defaultRenderTimeout
	}
	return &ChromeRenderer{ExecPath: execPath, Timeout: timeout}
}

// Generate renders html into an A4 PDF.
func (r *ChromeRenderer) Generate(ctx context.Context, html string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, stageErr(StageMarkup, errors.New("empty markup"))
	}

	doc, err := stageMarkup(html)
	if err != nil {
		return nil, stageErr(StagePrepare, err)
	}
	defer doc.cleanup()

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(doc.url()),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return nil, stageErr(StageBrowser, err)
	}

	var out []byte
	if err := chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		out, _, err = printA4().Do(ctx)
		return err
	})); err != nil {
		return nil, stageErr(StagePrint, err)
	}
	if len(out) == 0 {
		return nil, stageErr(StagePrint, errors.New("browser returned no bytes"))
	}
	return out, nil
}

func (r *ChromeRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := make([]chromedp.ExecAllocatorOption, 0, len(chromedp.DefaultExecAllocatorOptions)+4)
	opts = append(opts, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}
	return opts
}

func printA4() *page.PrintToPDFParams {
	return page.PrintToPDF().
		WithPrintBackground(true).
		WithPaperWidth(paperWidthA4).
		WithPaperHeight(paperHeightA4).
		WithPreferCSSPageSize(true)
}

// stagedMarkup is a letter written to disk so the browser loads it as a
// file and relative asset paths resolve.
type stagedMarkup struct {
	dir  string
	path string
}

func stageMarkup(html string) (*stagedMarkup, error) {
	dir, err := os.MkdirTemp("", "coverletter-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	path := filepath.Join(dir, "letter.html")
	if err := os.WriteFile(path, []byte(html), 0o600); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("write markup: %w", err)
	}
	return &stagedMarkup{dir: dir, path: path}, nil
}

func (s *stagedMarkup) url() string {
	return "file://" + filepath.ToSlash(s.path)
}

func (s *stagedMarkup) cleanup() {
	os.RemoveAll(s.dir)
}

var _ Generator = (*ChromeRenderer)(nil)
