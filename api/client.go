package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/DSM-PICK/pick-cli/session"
)

const (
	healthCheckPath    = "/swagger-ui/index.html"
	healthCheckTimeout = 5 * time.Second

	headerRequestID = "X-Request-Id"
)

var (
	ErrEmptyBody = errors.New("response has no body")

	validate = validator.New()
)

// HTTPError is returned for every non-2xx response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// StatusCode extracts the status of an *HTTPError in err's chain.
func StatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}

// Request describes one call against the server.
type Request struct {
	Path   string
	Method string
	// Values are stringified with fmt.Sprint.
	Params map[string]any
	// An io.Reader is sent as-is; anything else non-nil is sent as JSON.
	Body   any
	Header http.Header
}

// Response is a successful result. Empty responses (204, Content-Length: 0 or
// no bytes at all) carry no Data and are never parsed.
type Response struct {
	StatusCode int
	Empty      bool
	Data       json.RawMessage
}

func (r *Response) Decode(v interface{}) error {
	if r.Empty {
		return ErrEmptyBody
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return errors.Wrap(err, "error unmarshalling response")
	}
	return nil
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Holder
}

func NewClient(baseURL string, holder *session.Holder, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if holder == nil {
		holder = session.NewHolder()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		session:    holder,
	}
}

func (c *Client) Session() *session.Holder {
	return c.session
}

// Do performs req and maps the outcome as described on Response and HTTPError.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.ContentLength == 0 {
		return &Response{StatusCode: resp.StatusCode, Empty: true}, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "error reading response")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return &Response{StatusCode: resp.StatusCode, Empty: true}, nil
	}
	return &Response{StatusCode: resp.StatusCode, Data: body}, nil
}

// Send performs req and discards any body.
func (c *Client) Send(ctx context.Context, req Request) error {
	_, err := c.Do(ctx, req)
	return err
}

// Fetch performs req and decodes the JSON result into a T.
func Fetch[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var out T
	resp, err := c.Do(ctx, req)
	if err != nil {
		return out, err
	}
	if err := resp.Decode(&out); err != nil {
		return out, errors.Wrapf(err, "%s %s", req.Method, req.Path)
	}
	return out, nil
}

// HealthCheck probes the server; any 2xx passes.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	resp, err := c.send(ctx, Request{Path: healthCheckPath, Method: http.MethodGet})
	if err != nil {
		return errors.Wrap(err, "server health check failed")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) send(ctx context.Context, req Request) (*http.Response, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	requestID := httpReq.Header.Get(headerRequestID)
	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.WithFields(log.Fields{"request_id": requestID, "method": httpReq.Method, "path": req.Path}).
			Debugf("request failed: %s", err)
		return nil, errors.Wrapf(err, "%s %s", httpReq.Method, req.Path)
	}
	log.WithFields(log.Fields{
		"request_id": requestID,
		"method":     httpReq.Method,
		"path":       req.Path,
		"status":     resp.StatusCode,
		"elapsed":    time.Since(started),
	}).Debug("request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	target := c.baseURL + req.Path
	if len(req.Params) > 0 {
		query := url.Values{}
		for key, value := range req.Params {
			query.Set(key, fmt.Sprint(value))
		}
		target += "?" + query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch b := req.Body.(type) {
	case nil:
	case io.Reader:
		body = b
	default:
		if err := validateBody(b); err != nil {
			return nil, err
		}
		jsonData, err := json.Marshal(b)
		if err != nil {
			return nil, errors.Wrap(err, "error marshalling request body")
		}
		body = bytes.NewReader(jsonData)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.Wrap(err, "error creating request")
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Del("Authorization")
	c.session.Auth().Apply(httpReq.Header)
	httpReq.Header.Set(headerRequestID, uuid.NewString())
	return httpReq, nil
}

// validateBody checks struct tags on request bodies; other values pass.
func validateBody(body any) error {
	if err := validate.Struct(body); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return nil
		}
		return errors.Wrap(err, "invalid request body")
	}
	return nil
}
