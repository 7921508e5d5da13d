package apiclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dalemusser/tutorhub/internal/app/system/apiclient"
	"github.com/dalemusser/tutorhub/internal/app/system/timeouts"
	"github.com/dalemusser/tutorhub/internal/domain/models"
	"github.com/dalemusser/tutorhub/internal/testutil"
	"go.uber.org/zap"
)

func newClient(t *testing.T, baseURL string) *apiclient.Client {
	t.Helper()
	c, err := apiclient.New(baseURL, apiclient.Options{Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestNew_RejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "ftp://x", "::nope"} {
		if _, err := apiclient.New(u, apiclient.Options{}); err == nil {
			t.Errorf("New(%q): expected error", u)
		}
	}
}

func TestLogin(t *testing.T) {
	b := testutil.NewBackend(t)
	c := newClient(t, b.URL())

	res, err := c.Login(context.Background(), testutil.AdminEmail, testutil.ValidPassword)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.Token != testutil.TokenFor(testutil.AdminEmail) {
		t.Errorf("token: got %q", res.Token)
	}
	if res.User == nil || res.User.Role != models.RoleAdmin {
		t.Errorf("user: got %+v", res.User)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	b := testutil.NewBackend(t)
	c := newClient(t, b.URL())

	_, err := c.Login(context.Background(), testutil.AdminEmail, "wrong")
	if !errors.Is(err, apiclient.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
	var se *apiclient.StatusError
	if !errors.As(err, &se) || se.Status != http.StatusUnauthorized {
		t.Errorf("expected StatusError 401, got %v", err)
	}
}

func TestLogin_ServerError(t *testing.T) {
	b := testutil.NewBackend(t)
	b.FailWith(apiclient.PathLogin, http.StatusInternalServerError)
	c := newClient(t, b.URL())

	_, err := c.Login(context.Background(), testutil.AdminEmail, testutil.ValidPassword)
	if !errors.Is(err, apiclient.ErrTransport) {
		t.Fatalf("got %v, want ErrTransport", err)
	}
}

func TestMe_SendsBearer(t *testing.T) {
	b := testutil.NewBackend(t)
	c := newClient(t, b.URL())

	u, err := c.Me(context.Background(), testutil.TokenFor(testutil.TutorEmail))
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if u.Email != testutil.TutorEmail || u.Role != models.RoleTutor {
		t.Errorf("Me: got %+v", u)
	}
}

func TestMe_BadToken(t *testing.T) {
	b := testutil.NewBackend(t)
	c := newClient(t, b.URL())

	_, err := c.Me(context.Background(), "expired")
	if !errors.Is(err, apiclient.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}
	if _, err := c.Me(context.Background(), ""); !errors.Is(err, apiclient.ErrUnauthorized) {
		t.Fatalf("empty token: got %v, want ErrUnauthorized", err)
	}
}

func TestMe_MissingRole(t *testing.T) {
	b := testutil.NewBackend(t)
	b.AddAccount(models.User{ID: "u-x", Email: "norole@test.com"})
	c := newClient(t, b.URL())

	_, err := c.Me(context.Background(), testutil.TokenFor("norole@test.com"))
	if !errors.Is(err, apiclient.ErrMalformed) {
		t.Fatalf("got %v, want ErrMalformed", err)
	}
}

func TestDataEndpoints(t *testing.T) {
	b := testutil.NewBackend(t)
	c := newClient(t, b.URL())
	ctx := context.Background()
	tok := testutil.TokenFor(testutil.AdminEmail)

	tutors, err := c.Tutors(ctx, tok)
	if err != nil || len(tutors) != len(testutil.Tutors()) {
		t.Errorf("Tutors: %d, %v", len(tutors), err)
	}
	students, err := c.Students(ctx, tok)
	if err != nil || len(students) != len(testutil.Students()) {
		t.Errorf("Students: %d, %v", len(students), err)
	}
	pending, err := c.PendingTutors(ctx, tok)
	if err != nil || len(pending) != len(testutil.PendingTutors()) {
		t.Errorf("PendingTutors: %d, %v", len(pending), err)
	}
	bookings, err := c.Bookings(ctx, tok)
	if err != nil || len(bookings) != len(testutil.Bookings()) {
		t.Errorf("Bookings: %d, %v", len(bookings), err)
	}
	notes, err := c.Notifications(ctx, tok)
	if err != nil || len(notes) != len(testutil.Notifications()) {
		t.Errorf("Notifications: %d, %v", len(notes), err)
	}
	fbs, err := c.Feedbacks(ctx, tok)
	if err != nil || len(fbs) != len(testutil.Feedbacks()) {
		t.Errorf("Feedbacks: %d, %v", len(fbs), err)
	}
	pvs, err := c.PaymentVerifications(ctx, tok)
	if err != nil || len(pvs) != len(testutil.PaymentVerifications()) {
		t.Errorf("PaymentVerifications: %d, %v", len(pvs), err)
	}
}

func TestDataEndpoints_EmptyIsNotMalformed(t *testing.T) {
	b := testutil.NewBackend(t)
	b.Bookings = []models.Booking{}
	c := newClient(t, b.URL())

	got, err := c.Bookings(context.Background(), testutil.TokenFor(testutil.StudentEmail))
	if err != nil {
		t.Fatalf("Bookings failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestMalformedBody(t *testing.T) {
	b := testutil.NewBackend(t)
	b.Malform(apiclient.PathTutors)
	c := newClient(t, b.URL())

	_, err := c.Tutors(context.Background(), testutil.TokenFor(testutil.AdminEmail))
	if !errors.Is(err, apiclient.ErrMalformed) {
		t.Fatalf("got %v, want ErrMalformed", err)
	}
}

func TestWrongEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()
	c := newClient(t, srv.URL)

	if _, err := c.Tutors(context.Background(), "tok"); !errors.Is(err, apiclient.ErrMalformed) {
		t.Errorf("Tutors: got %v, want ErrMalformed", err)
	}
	if _, err := c.Students(context.Background(), "tok"); !errors.Is(err, apiclient.ErrMalformed) {
		t.Errorf("Students: got %v, want ErrMalformed", err)
	}
	if _, err := c.Bookings(context.Background(), "tok"); !errors.Is(err, apiclient.ErrMalformed) {
		t.Errorf("Bookings: got %v, want ErrMalformed", err)
	}
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := newClient(t, url)

	_, err := c.Bookings(context.Background(), "tok")
	if !errors.Is(err, apiclient.ErrTransport) {
		t.Fatalf("got %v, want ErrTransport", err)
	}
}

func TestCanceledContext(t *testing.T) {
	b := testutil.NewBackend(t)
	release := b.Hold(apiclient.PathBookings)
	defer release()
	c := newClient(t, b.URL())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := c.Bookings(ctx, testutil.TokenFor(testutil.AdminEmail))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestRequestTimeout(t *testing.T) {
	timeouts.Configure(timeouts.Config{Request: 30 * time.Millisecond, Bootstrap: timeouts.Keep, Retries: timeouts.Keep})
	defer timeouts.Reset()

	b := testutil.NewBackend(t)
	release := b.Hold(apiclient.PathBookings)
	defer release()
	c := newClient(t, b.URL())

	_, err := c.Bookings(context.Background(), testutil.TokenFor(testutil.AdminEmail))
	if !errors.Is(err, apiclient.ErrTransport) {
		t.Fatalf("got %v, want ErrTransport", err)
	}
}

func TestRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()
	c := newClient(t, srv.URL)

	// No retries by default.
	if _, err := c.Bookings(context.Background(), "tok"); !errors.Is(err, apiclient.ErrTransport) {
		t.Fatalf("default: got %v, want ErrTransport", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("default attempts: got %d, want 1", hits.Load())
	}

	timeouts.Configure(timeouts.Config{Request: timeouts.Keep, Bootstrap: timeouts.Keep, Retries: 2})
	defer timeouts.Reset()
	hits.Store(0)

	if _, err := c.Bookings(context.Background(), "tok"); err != nil {
		t.Fatalf("with retries: %v", err)
	}
	if hits.Load() != 3 {
		t.Errorf("attempts: got %d, want 3", hits.Load())
	}
}

func TestNoRetryOnUnauthorized(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	c := newClient(t, srv.URL)

	timeouts.Configure(timeouts.Config{Request: timeouts.Keep, Bootstrap: timeouts.Keep, Retries: 3})
	defer timeouts.Reset()

	if _, err := c.Feedbacks(context.Background(), "tok"); !errors.Is(err, apiclient.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}
	if hits.Load() != 1 {
		t.Errorf("attempts: got %d, want 1", hits.Load())
	}
}
