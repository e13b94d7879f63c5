package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/eduinsight/console-client/internal/core/domain"
	"github.com/eduinsight/console-client/internal/metrics"
)

// filename=<value>, value possibly quoted, terminated by ';' or end of header.
var dispositionFilename = regexp.MustCompile(`(?i)filename=([^;]+)`)

// Download fetches a binary payload and writes it to the download directory.
// The filename comes from the content-disposition header when present,
// otherwise fallbackFilename. Returns the path of the saved file.
func (c *Client) Download(ctx context.Context, path, fallbackFilename string) (string, error) {
	c.busy.enter()
	defer c.busy.leave()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", fmt.Errorf("gateway: build download request: %w", err)
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	res, err := c.http.Do(req)
	if err != nil {
		metrics.DownloadsTotal.WithLabelValues("error").Inc()
		c.log.Warn().Err(err).Str("path", path).Msg("download transport failure")
		return "", domain.NewRequestError(0, "")
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		metrics.DownloadsTotal.WithLabelValues("error").Inc()
		return "", requestError(res.StatusCode, decodeEnvelope(res.Body))
	}

	name := extractFilename(res.Header.Get("Content-Disposition"), fallbackFilename)
	target := filepath.Join(c.downloadDir, name)

	f, err := os.Create(target)
	if err != nil {
		metrics.DownloadsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("gateway: create %s: %w", target, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, res.Body); err != nil {
		metrics.DownloadsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("gateway: save %s: %w", target, err)
	}

	metrics.DownloadsTotal.WithLabelValues("ok").Inc()
	c.log.Info().Str("file", target).Msg("report saved")
	return target, nil
}

// extractFilename parses a content-disposition header, stripping quotes.
// filepath.Base guards against path components smuggled into the header.
func extractFilename(disposition, fallback string) string {
	m := dispositionFilename.FindStringSubmatch(disposition)
	if m == nil {
		return fallback
	}
	name := strings.TrimSpace(strings.ReplaceAll(m[1], `"`, ""))
	if name == "" {
		return fallback
	}
	return filepath.Base(name)
}
