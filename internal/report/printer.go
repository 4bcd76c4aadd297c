// Package report renders a checker run as plain lines for a terminal.
package report

import (
	"fmt"
	"io"
	"strconv"

	"asset_checker/internal/domain/models"
)

// Printer writes the run report to out. The first write error is kept and
// later writes are dropped.
type Printer struct {
	out io.Writer
	err error
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Checking(pageURL string) {
	p.printf("Checking %s ...\n", pageURL)
}

func (p *Printer) PageFetched(page string, status int) {
	p.printf("%s -> %d\n", page, status)
}

func (p *Printer) PageFailed(page string, reason string) {
	p.printf("Failed to fetch %s: %s\n", page, reason)
}

func (p *Printer) Found(page string, count int) {
	p.printf("Found %d linked resources in %s\n", count, page)
}

func (p *Printer) Asset(result models.AssetResult) {
	p.printf("%s -> %s -> %s\n", result.Reference, result.URL, Status(result))
}

func (p *Printer) Done() {
	p.printf("\nDone.\n")
}

// Err returns the first error met while writing.
func (p *Printer) Err() error {
	return p.err
}

// Status is the numeric code, or ERROR when the probe got no response.
func Status(result models.AssetResult) string {
	if result.Failed() {
		return `ERROR`
	}
	return strconv.Itoa(result.StatusCode)
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.out, format, args...)
}
