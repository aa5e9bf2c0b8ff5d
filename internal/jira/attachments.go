package jira

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/jira/internal/config"
)

// downloadChunkSize is the buffer size for streaming attachment content.
const downloadChunkSize = 1 << 20

// DownloadAttachment streams an attachment to outputFile. attachmentURL
// may be absolute or relative to the instance, like
// /rest/api/2/attachment/content/12345. An absolute URL must be on the
// instance's host, since the request carries the auth header. The parent
// directory of outputFile must already exist.
func (c *Client) DownloadAttachment(ctx context.Context, attachmentURL, outputFile string) error {
	target := attachmentURL
	if strings.HasPrefix(target, "http") {
		want := config.NormalizedHost(c.baseURL)
		if got := config.NormalizedHost(target); got != want {
			return fmt.Errorf("Attachment URL host %q does not match the Jira host %q", got, want)
		}
	} else {
		if !strings.HasPrefix(target, "/") {
			target = "/" + target
		}
		target = c.baseURL + target
	}

	dir := filepath.Dir(outputFile)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("Directory does not exist: %s", dir)
	}
	if info, err := os.Stat(outputFile); err == nil && !info.Mode().IsRegular() {
		return fmt.Errorf("Output path exists and is not a file: %s", outputFile)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ConnectionError{URL: c.baseURL, Cloud: c.cloud, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return parseAPIError(resp.StatusCode, data)
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputFile, err)
	}
	buf := make([]byte, downloadChunkSize)
	if _, err := io.CopyBuffer(out, resp.Body, buf); err != nil {
		_ = out.Close()
		return fmt.Errorf("writing %s: %w", outputFile, err)
	}
	return out.Close()
}
