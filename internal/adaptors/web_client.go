package adaptors

import (
	"context"
	"io"
	"net/http"
	"time"

	"asset_checker/internal/pkg/errors"
	"asset_checker/internal/pkg/metrics"

	log "github.com/sirupsen/logrus"
)

const userAgent = `asset_checker/1.0 (+local static site check)`

type WebClient struct {
	client  *http.Client
	metrics *metrics.Metrics
	log     *log.Logger
}

func NewWebClient(timeout time.Duration, m *metrics.Metrics, log *log.Logger) *WebClient {
	return &WebClient{
		client: &http.Client{
			Timeout:   timeout,
			Transport: m.InstrumentRoundTripper(http.DefaultTransport),
		},
		metrics: m,
		log:     log,
	}
}

// Do sends one request and reads the whole body. Any status code is returned
// as is; only requests that got no response at all produce an error.
func (w *WebClient) Do(ctx context.Context, url string, method string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		w.log.WithError(err).WithField(`url`, url).Debug(`failed to create request`)
		return nil, 0, errors.Wrap(err, `failed to create request`)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")

	resp, err := w.client.Do(req)
	if err != nil {
		if w.metrics != nil {
			w.metrics.HTTPClientErrorsTotal.WithLabelValues(method).Inc()
		}
		w.log.WithError(err).WithField(`url`, url).Debug(`request failed`)
		return nil, 0, errors.Wrap(err, `request failed`)
	}
	defer resp.Body.Close()

	bodyByte, err := io.ReadAll(resp.Body)
	if err != nil {
		w.log.Errorf(`failed to read response body. error: %v`, err)
		return nil, 0, errors.Wrap(err, `failed to read response body`)
	}

	w.log.WithFields(log.Fields{
		`method`: method,
		`url`:    url,
		`status`: resp.StatusCode,
		`bytes`:  len(bodyByte),
	}).Debug(`request completed`)

	return bodyByte, resp.StatusCode, nil
}
