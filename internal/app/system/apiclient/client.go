// Package apiclient talks to the tutoring marketplace REST backend.
//
// Every authenticated call carries the caller's session token as an OAuth2
// bearer credential. Per-request timeout and retry count come from the
// timeouts package and are both off by default.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/tutorhub/internal/app/system/timeouts"
	"github.com/dalemusser/tutorhub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Backend paths.
const (
	PathLogin                = "/auth/login"
	PathMe                   = "/auth/me"
	PathTutors               = "/users/teachers"
	PathStudents             = "/users/students"
	PathPendingTutors        = "/users/pending-teachers"
	PathBookings             = "/bookings"
	PathNotifications        = "/notifications"
	PathFeedbacks            = "/feedbacks"
	PathPaymentVerifications = "/payment-verifications"
)

// maxBody caps how much of a response is read.
const maxBody = 8 << 20

// Client is safe for concurrent use.
type Client struct {
	base *url.URL
	hc   *http.Client
	log  *zap.Logger
}

// Options configures a Client. The zero value is usable.
type Options struct {
	// HTTPClient supplies the underlying transport. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// New returns a client for the backend rooted at baseURL.
func New(baseURL string, opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("apiclient: base url %q must be http or https", baseURL)
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{base: u, hc: hc, log: log}, nil
}

// authed returns an http.Client that adds "Authorization: Bearer token".
func (c *Client) authed(token string) *http.Client {
	base := c.hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   base,
		},
		CheckRedirect: c.hc.CheckRedirect,
		Jar:           c.hc.Jar,
		Timeout:       c.hc.Timeout,
	}
}

// LoginResult is the body of a successful login. Fields are not checked
// here; an empty token or a missing user is for the caller to reject.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login exchanges credentials for a session token. It is not retried.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return LoginResult{}, err
	}
	var out LoginResult
	err = c.once(ctx, c.hc, http.MethodPost, PathLogin, body, &out)
	var se *StatusError
	if errors.As(err, &se) && (se.Status == http.StatusUnauthorized || se.Status == http.StatusBadRequest || se.Status == http.StatusForbidden) {
		se.kind = ErrInvalidCredentials
	}
	return out, err
}

// Me fetches the identity behind token. A user without a known role is
// malformed.
func (c *Client) Me(ctx context.Context, token string) (models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	if err := c.get(ctx, token, PathMe, &out); err != nil {
		return models.User{}, err
	}
	if out.User == nil || !out.User.Role.Valid() {
		return models.User{}, fmt.Errorf("%w: %s without user or role", ErrMalformed, PathMe)
	}
	return *out.User, nil
}

// Tutors fetches the approved tutor listing.
func (c *Client) Tutors(ctx context.Context, token string) ([]models.Tutor, error) {
	var out struct {
		Data *[]models.Tutor `json:"data"`
	}
	if err := c.get(ctx, token, PathTutors, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, fmt.Errorf("%w: %s without data", ErrMalformed, PathTutors)
	}
	return *out.Data, nil
}

// Students fetches all students. Admin only.
func (c *Client) Students(ctx context.Context, token string) ([]models.Student, error) {
	var out struct {
		Students *[]models.Student `json:"students"`
	}
	if err := c.get(ctx, token, PathStudents, &out); err != nil {
		return nil, err
	}
	if out.Students == nil {
		return nil, fmt.Errorf("%w: %s without students", ErrMalformed, PathStudents)
	}
	return *out.Students, nil
}

// PendingTutors fetches the tutor applications awaiting review. Admin only.
func (c *Client) PendingTutors(ctx context.Context, token string) ([]models.Tutor, error) {
	return list[models.Tutor](ctx, c, token, PathPendingTutors)
}

// Bookings fetches the bookings visible to the caller.
func (c *Client) Bookings(ctx context.Context, token string) ([]models.Booking, error) {
	return list[models.Booking](ctx, c, token, PathBookings)
}

// Notifications fetches the caller's notifications.
func (c *Client) Notifications(ctx context.Context, token string) ([]models.Notification, error) {
	return list[models.Notification](ctx, c, token, PathNotifications)
}

// Feedbacks fetches the feedback visible to the caller.
func (c *Client) Feedbacks(ctx context.Context, token string) ([]models.Feedback, error) {
	return list[models.Feedback](ctx, c, token, PathFeedbacks)
}

// PaymentVerifications fetches the payment review queue. Admin only.
func (c *Client) PaymentVerifications(ctx context.Context, token string) ([]models.PaymentVerification, error) {
	return list[models.PaymentVerification](ctx, c, token, PathPaymentVerifications)
}

// list fetches an endpoint whose body is a bare JSON array. null is
// malformed; [] is an empty list.
func list[T any](ctx context.Context, c *Client, token, path string) ([]T, error) {
	var out *[]T
	if err := c.get(ctx, token, path, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: %s returned null", ErrMalformed, path)
	}
	return *out, nil
}

// get performs an authenticated GET, retrying transport failures up to
// timeouts.Retries() times.
func (c *Client) get(ctx context.Context, token, path string, dst any) error {
	if token == "" {
		return fmt.Errorf("%w: no token", ErrUnauthorized)
	}
	hc := c.authed(token)
	attempts := timeouts.Retries() + 1

	var err error
	for i := 0; i < attempts; i++ {
		err = c.once(ctx, hc, http.MethodGet, path, nil, dst)
		if err == nil || !Retryable(err) || ctx.Err() != nil {
			return err
		}
		if i+1 < attempts {
			c.log.Debug("retrying backend request",
				zap.String("path", path),
				zap.Int("attempt", i+2),
				zap.Error(err))
		}
	}
	return err
}

// once performs a single round trip bounded by timeouts.Request().
func (c *Client) once(ctx context.Context, hc *http.Client, method, path string, body []byte, dst any) error {
	rctx, cancel := timeouts.WithTimeout(ctx, timeouts.Request(), c.log, method+" "+path)
	defer cancel()

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(rctx, method, c.base.String()+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		// A canceled caller is not a backend failure; a request timeout is.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.log.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return &StatusError{Method: method, Path: path, Status: resp.StatusCode, kind: kindFor(resp.StatusCode)}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: read body: %v", ErrTransport, method, path, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformed, method, path, err)
	}
	return nil
}

func kindFor(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	default:
		return ErrTransport
	}
}
