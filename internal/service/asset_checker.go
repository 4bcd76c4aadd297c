package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"asset_checker/internal/domain/adaptors"
	"asset_checker/internal/domain/models"
	"asset_checker/internal/pkg/errors"
	"asset_checker/internal/pkg/metrics"

	log "github.com/sirupsen/logrus"
)

// Reporter receives the progress of a run in order.
type Reporter interface {
	Checking(pageURL string)
	PageFetched(page string, status int)
	PageFailed(page string, reason string)
	Found(page string, count int)
	Asset(result models.AssetResult)
	Done()
}

// Target names the server root and the page to check on it.
type Target struct {
	BaseURL string
	Page    string
}

// PageFetchError is returned by Run when the page itself is unreachable; it is
// the only failure that ends a run.
type PageFetchError struct {
	Page       string
	StatusCode int
	Err        error
}

func (e *PageFetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Page, errors.Cause(e.Err))
}

func (e *PageFetchError) Unwrap() error {
	return e.Err
}

type Checker struct {
	log       *log.Logger
	webClient adaptors.WebClient
	metrics   *metrics.Metrics
	reporter  Reporter
	baseURL   *url.URL
	page      string
}

func NewChecker(log *log.Logger, webClient adaptors.WebClient, m *metrics.Metrics, reporter Reporter, target Target) (*Checker, error) {
	baseURL, err := url.Parse(target.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, `failed to parse base url`)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, errors.New("base url is invalid")
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	return &Checker{
		log:       log,
		webClient: webClient,
		metrics:   m,
		reporter:  reporter,
		baseURL:   baseURL,
		page:      target.Page,
	}, nil
}

// PageURL is the absolute address of the checked page.
func (c *Checker) PageURL() string {
	return c.baseURL.String() + strings.TrimLeft(c.page, "/")
}

// Run fetches the page, then probes every reference it links to, one at a
// time. Per-asset failures are reported and never abort the run.
func (c *Checker) Run(ctx context.Context) error {
	c.log.Debug(`asset check started...`)
	c.reporter.Checking(c.PageURL())

	page := c.FetchPage(ctx)
	if page.Err != nil {
		reason := errors.Cause(page.Err).Error()
		c.log.WithError(page.Err).WithField(`url`, page.URL).Error(`failed to fetch page`)
		c.reporter.PageFailed(c.page, reason)
		return &PageFetchError{Page: c.page, StatusCode: page.StatusCode, Err: page.Err}
	}
	c.reporter.PageFetched(c.page, page.StatusCode)

	refs := ExtractReferences(DecodePage(page.Body))
	c.metrics.ReferencesFound.Set(float64(refs.Len()))
	c.reporter.Found(c.page, refs.Len())

	for ref := range refs.All() {
		if Skipped(ref) {
			c.log.WithField(`reference`, ref).Debug(`skipping reference`)
			c.metrics.ReferencesSkipped.Inc()
			continue
		}

		result := c.Probe(ctx, ref, Resolve(c.baseURL, ref))
		c.reporter.Asset(result)

		if err := ctx.Err(); err != nil {
			c.log.WithContext(ctx).Warnf(`check interrupted: %v`, err)
			return errors.Wrap(err, `check interrupted`)
		}
	}

	c.reporter.Done()
	c.log.Debug(`asset check ended...`)
	return nil
}

// FetchPage GETs the page. Statuses of 400 and above count as failures, the
// same as a refused connection.
func (c *Checker) FetchPage(ctx context.Context) models.PageResult {
	result := models.PageResult{URL: c.PageURL()}

	body, code, err := c.webClient.Do(ctx, result.URL, http.MethodGet)
	if err != nil {
		result.Err = errors.Wrap(err, `failed to get page`)
		return result
	}

	result.StatusCode = code
	if code >= http.StatusBadRequest {
		result.Err = errors.Errorf(`HTTP Error %d: %s`, code, http.StatusText(code))
		return result
	}

	result.Body = body
	return result
}

// Probe sends a HEAD request for resolved. Any error yields models.ProbeFailed.
func (c *Checker) Probe(ctx context.Context, ref string, resolved string) models.AssetResult {
	result := models.AssetResult{Reference: ref, URL: resolved}

	_, code, err := c.webClient.Do(ctx, resolved, http.MethodHead)
	if err != nil {
		result.StatusCode = models.ProbeFailed
		result.Err = err
		c.metrics.ProbesTotal.WithLabelValues(`ERROR`).Inc()
		c.log.WithError(err).WithField(`url`, resolved).Info(`probe failed`)
		return result
	}

	result.StatusCode = code
	c.metrics.ProbesTotal.WithLabelValues(strconv.Itoa(code)).Inc()
	return result
}
