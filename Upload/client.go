// Package Upload hands rendered checklists to the Drive web app.
package Upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/zeebo/xxh3"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const maxResponseBytes = 1 << 20

// Client posts payloads to the web app endpoint. Identical payloads
// submitted while one is in flight share that request and its result.
type Client struct {
	URL        string
	HTTPClient *http.Client
	log        *zap.Logger
	inflight   singleflight.Group
}

func NewClient(url string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		URL:        url,
		HTTPClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Submit uploads the payload once. There are no retries; any failure is a
// *TransportError. A caller that joins an in-flight upload gets the
// outcome of the request started under the first caller's context.
func (c *Client) Submit(ctx context.Context, p Payload) (*Response, error) {
	v, err, shared := c.inflight.Do(dedupeKey(p), func() (interface{}, error) {
		return c.post(ctx, p)
	})
	if shared {
		c.log.Info("joined in-flight upload", zap.String("file", p.FileName))
	}
	if err != nil {
		return nil, err
	}
	return v.(*Response), nil
}

// dedupeKey ignores the file name, which embeds the submit time.
func dedupeKey(p Payload) string {
	if p.Key != "" {
		return "k:" + p.Key
	}
	h := xxh3.New()
	_, _ = h.WriteString(p.ChecklistType)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(p.PDFData)
	return "p:" + strconv.FormatUint(h.Sum64(), 16)
}

func (c *Client) post(ctx context.Context, p Payload) (*Response, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, &TransportError{Message: fmt.Sprintf("error marshaling payload: %v", err), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.log.Warn("upload request failed", zap.String("file", p.FileName), zap.Error(err))
		return nil, &TransportError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Message: err.Error(), Err: err}
	}
	c.log.Info("upload answered",
		zap.String("file", p.FileName),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Message: responseMessage(resp, data)}
	}

	var result Response
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Message: responseMessage(resp, data), Err: err}
	}
	if result.Status != "success" {
		msg := result.Message
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %q", result.Status)
		}
		return nil, &TransportError{StatusCode: resp.StatusCode, Message: msg}
	}
	return &result, nil
}

// responseMessage extracts something readable from a response that is not
// the expected JSON.
func responseMessage(resp *http.Response, data []byte) string {
	if looksLikeHTML(resp.Header.Get("Content-Type"), data) {
		if msg := htmlMessage(data); msg != "" {
			return msg
		}
	}
	if msg := truncate(collapse(string(data))); msg != "" {
		return msg
	}
	return http.StatusText(resp.StatusCode)
}
