package caseapi

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// letterCSS is inlined so the renderer works without any web asset
// directory next to the binary.
const letterCSS = `
body { font-family: Georgia, 'Times New Roman', serif; font-size: 11pt; color: #1c1917; line-height: 1.55; margin: 0; }
h1, h2, h3 { font-family: Helvetica, Arial, sans-serif; color: #111827; line-height: 1.25; }
h1 { font-size: 16pt; border-bottom: 2px solid #78350f; padding-bottom: 0.3rem; }
h2 { font-size: 13pt; margin-top: 1.4rem; }
h3 { font-size: 11.5pt; margin-top: 1.1rem; }
p { margin: 0.55rem 0; }
ul, ol { margin: 0.4rem 0 0.4rem 1.2rem; padding: 0; }
li { margin: 0.2rem 0; }
blockquote { margin: 0.8rem 0; padding: 0.4rem 0.8rem; border-left: 3px solid #b45309; background: #fef3c7; color: #78350f; }
table { width: 100%; border-collapse: collapse; font-size: 9.5pt; margin: 0.6rem 0; }
th, td { border: 1px solid #a8a29e; padding: 0.3rem 0.45rem; text-align: left; vertical-align: top; }
thead th { background: #f1f5f9; font-weight: 700; }
code { font-family: Menlo, Consolas, monospace; font-size: 9.5pt; background: #f5f5f4; padding: 0 0.2rem; }
html, body, * { -webkit-print-color-adjust: exact !important; print-color-adjust: exact !important; }
`

type ChromiumPDFRenderer struct {
	chromePath string
}

func NewChromiumPDFRenderer(chromePath string) *ChromiumPDFRenderer {
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	return &ChromiumPDFRenderer{chromePath: chromePath}
}

func (r *ChromiumPDFRenderer) Render(ctx context.Context, text string) ([]byte, error) {
	htmlDoc, err := buildHTML(text)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			footer := `<div style="width:100%;text-align:center;font-size:9px;color:#666;padding-right:8px;">` +
				`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<div></div>`).
				WithFooterTemplate(footer).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.75).
				WithMarginLeft(0.45).
				WithMarginRight(0.45).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	); err != nil {
		return nil, err
	}
	return pdf, nil
}

func buildHTML(text string) (string, error) {
	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(text), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	return "<!doctype html><html><head><meta charset='utf-8'><title>ClaimPilot</title>" +
		"<style>" + letterCSS + "</style></head><body>" +
		content.String() +
		"</body></html>", nil
}

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
