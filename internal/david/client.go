// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package david is a client for the DAVID functional annotation web
// service. It authenticates a registered identity, submits identifier
// lists and fetches clustered enrichment reports.
//
// Service state lives in the session cookie the service issues on
// authentication. The client keeps no per-session state of its own: the
// Session value returned by Authenticate is passed to every later call.
package david

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/pdiddy/enrichment-engine/internal/httputil"
	"github.com/pdiddy/enrichment-engine/pkg/types"
)

// DefaultEndpoint is the public DAVID SOAP endpoint.
const DefaultEndpoint = "https://davidbioinformatics.nih.gov/webservice/services/DAVIDWebService"

// MaxIdentifiers is the largest list the service accepts in one addList call.
const MaxIdentifiers = 3000

const (
	defaultTimeout         = 600 * time.Second
	defaultRequestInterval = 1 * time.Second
	defaultUserAgent       = "enrichment-engine/0.1"

	// maxResponseSize bounds how much of a response body is read.
	maxResponseSize = 64 << 20
)

// Client talks to the DAVID web service. It is safe for concurrent use.
type Client struct {
	endpoint   string
	userAgent  string
	maxRetries int
	http       *http.Client
	limiter    *rate.Limiter
	log        *logrus.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client built from the config.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger replaces the default logger.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithLimiter replaces the default request pacing.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// NewClient builds a client from cfg. Zero values fall back to defaults.
func NewClient(cfg types.ClientConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	interval := cfg.RequestInterval
	if interval <= 0 {
		interval = defaultRequestInterval
	}

	c := &Client{
		endpoint:   cfg.Endpoint,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
		http:       &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		log:        newLogger(cfg.LogLevel),
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newLogger(level string) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	if level != "" {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			l.SetLevel(lvl)
		}
	}
	return l
}

// Session is an authenticated conversation with the service. It is an
// immutable value; copies are safe to share.
type Session struct {
	Identity      string
	Authenticated time.Time
	cookies       []*http.Cookie
}

// ListHandle identifies a list submitted in a session.
type ListHandle struct {
	Name   string
	IDType string
	Size   int
	// MappedRatio is the fraction of submitted identifiers the service
	// recognized, as reported by addList.
	MappedRatio float64
}

// Authenticate opens a session for identity, the registered account
// (usually an email address).
func (c *Client) Authenticate(ctx context.Context, identity string) (*Session, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, &AuthError{Reason: "no identity given"}
	}

	returns, resp, fault, err := call[string](ctx, c, nil, "authenticate", identity)
	if err != nil {
		return nil, err
	}
	if fault != nil {
		return nil, &AuthError{Identity: identity, Reason: fault.message()}
	}
	if len(returns) == 0 || strings.TrimSpace(returns[0]) != "true" {
		return nil, &AuthError{Identity: identity, Reason: "identity is not registered with the service"}
	}

	c.log.WithField("identity", identity).Debug("authenticated")
	return &Session{
		Identity:      identity,
		Authenticated: time.Now(),
		cookies:       resp.Cookies(),
	}, nil
}

// listName and listType are the values every list is submitted with:
// a gene list (type 0) under a fixed name.
const (
	listName = "enrichment-engine"
	listType = 0
)

// AddList submits ids of the given identifier type to the session. It
// rejects empty and oversized lists with ErrValidation before contacting
// the service.
func (c *Client) AddList(ctx context.Context, sess *Session, ids []string, idType string) (ListHandle, error) {
	if err := requireSession(sess, "addList"); err != nil {
		return ListHandle{}, err
	}
	ids, err := ValidateIDs(ids)
	if err != nil {
		return ListHandle{}, err
	}
	if strings.TrimSpace(idType) == "" {
		return ListHandle{}, fmt.Errorf("%w: identifier type is empty", ErrValidation)
	}

	returns, _, fault, err := call[string](ctx, c, sess, "addList",
		strings.Join(ids, ", "), idType, listName, strconv.Itoa(listType))
	if err != nil {
		return ListHandle{}, err
	}
	if fault != nil {
		return ListHandle{}, &RemoteError{Op: "addList", Fault: fault.message()}
	}

	h := ListHandle{Name: listName, IDType: idType, Size: len(ids)}
	if len(returns) > 0 {
		h.MappedRatio, _ = strconv.ParseFloat(strings.TrimSpace(returns[0]), 64)
	}
	c.log.WithFields(logrus.Fields{
		"ids":    h.Size,
		"idType": idType,
		"mapped": h.MappedRatio,
	}).Debug("list added")
	return h, nil
}

func requireSession(sess *Session, op string) error {
	if sess == nil {
		return fmt.Errorf("%w: %s needs an authenticated session", ErrValidation, op)
	}
	return nil
}

// ValidateIDs trims ids, drops blanks, and checks the service's size
// limits. The returned slice is a new slice.
func ValidateIDs(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: identifier list is empty", ErrValidation)
	}
	if len(out) > MaxIdentifiers {
		return nil, fmt.Errorf("%w: %d identifiers exceeds the service limit of %d",
			ErrValidation, len(out), MaxIdentifiers)
	}
	return out, nil
}

// call sends one SOAP operation and decodes its <return> elements. HTTP
// and decoding failures come back as *RemoteError; a SOAP fault is
// returned separately so each operation can classify it.
func call[T any](ctx context.Context, c *Client, sess *Session, op string, args ...string) ([]T, *http.Response, *soapFault, error) {
	body, err := encodeRequest(op, args...)
	if err != nil {
		return nil, nil, nil, &RemoteError{Op: op, Err: err}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, nil, &RemoteError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, nil, nil, &RemoteError{Op: op, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", soapAction+op)
	req.Header.Set("User-Agent", c.userAgent)
	if sess != nil {
		for _, ck := range sess.cookies {
			req.AddCookie(ck)
		}
	}

	start := time.Now()
	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries, c.log)
	if err != nil {
		return nil, nil, nil, &RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, resp, nil, &RemoteError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	c.log.WithFields(logrus.Fields{
		"op":      op,
		"status":  resp.StatusCode,
		"bytes":   len(data),
		"elapsed": time.Since(start),
	}).Debug("service call")

	returns, fault, decodeErr := decodeResponse[T](data)
	if fault != nil {
		return nil, resp, fault, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, resp, nil, &RemoteError{Op: op, StatusCode: resp.StatusCode}
	}
	if decodeErr != nil {
		return nil, resp, nil, &RemoteError{Op: op, StatusCode: resp.StatusCode, Err: decodeErr}
	}
	return returns, resp, nil, nil
}
