package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dalemusser/tutorhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Backend is an in-process stand-in for the marketplace REST API. It
// serves the fixtures in this package, records every request path and can
// be told to fail, return garbage, or hang on a given path.
type Backend struct {
	Server *httptest.Server

	mu        sync.Mutex
	accounts  map[string]models.User // email -> user
	tokens    map[string]models.User // bearer token -> user
	calls     []string
	failures  map[string]int
	malformed map[string]bool
	holds     map[string]chan struct{}

	Tutors               []models.Tutor
	PendingTutors        []models.Tutor
	Students             []models.Student
	Bookings             []models.Booking
	Notifications        []models.Notification
	Feedbacks            []models.Feedback
	PaymentVerifications []models.PaymentVerification
}

// NewBackend starts a fake backend that is shut down when t ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		accounts:             map[string]models.User{},
		tokens:               map[string]models.User{},
		failures:             map[string]int{},
		malformed:            map[string]bool{},
		holds:                map[string]chan struct{}{},
		Tutors:               Tutors(),
		PendingTutors:        PendingTutors(),
		Students:             Students(),
		Bookings:             Bookings(),
		Notifications:        Notifications(),
		Feedbacks:            Feedbacks(),
		PaymentVerifications: PaymentVerifications(),
	}
	for _, u := range []models.User{AdminUser(), StudentUser(), TutorUser()} {
		b.AddAccount(u)
	}

	r := chi.NewRouter()
	r.Use(b.record)
	r.Post("/auth/login", b.login)
	r.Group(func(pr chi.Router) {
		pr.Use(b.requireBearer)
		pr.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
			u, _ := b.userFor(r)
			b.reply(w, r, map[string]any{"user": u})
		})
		pr.Get("/users/teachers", func(w http.ResponseWriter, r *http.Request) {
			b.reply(w, r, map[string]any{"data": b.Tutors})
		})
		pr.Get("/users/students", func(w http.ResponseWriter, r *http.Request) {
			b.reply(w, r, map[string]any{"students": b.Students})
		})
		pr.Get("/users/pending-teachers", func(w http.ResponseWriter, r *http.Request) {
			b.reply(w, r, b.PendingTutors)
		})
		pr.Get("/bookings", func(w http.ResponseWriter, r *http.Request) { b.reply(w, r, b.Bookings) })
		pr.Get("/notifications", func(w http.ResponseWriter, r *http.Request) { b.reply(w, r, b.Notifications) })
		pr.Get("/feedbacks", func(w http.ResponseWriter, r *http.Request) { b.reply(w, r, b.Feedbacks) })
		pr.Get("/payment-verifications", func(w http.ResponseWriter, r *http.Request) {
			b.reply(w, r, b.PaymentVerifications)
		})
	})

	b.Server = httptest.NewServer(r)
	t.Cleanup(func() {
		b.mu.Lock()
		for p, ch := range b.holds {
			close(ch)
			delete(b.holds, p)
		}
		b.mu.Unlock()
		b.Server.Close()
	})
	return b
}

// URL is the backend's base URL.
func (b *Backend) URL() string { return b.Server.URL }

// AddAccount registers u; it logs in with ValidPassword and its token is
// TokenFor(u.Email).
func (b *Backend) AddAccount(u models.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts[strings.ToLower(u.Email)] = u
	b.tokens[TokenFor(u.Email)] = u
}

// TokenFor is the bearer token the fake backend issues for email.
func TokenFor(email string) string {
	return "tok-" + strings.ToLower(email)
}

// Calls returns every request path seen, in order.
func (b *Backend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

// DataCalls returns the request paths outside /auth/.
func (b *Backend) DataCalls() []string {
	var out []string
	for _, c := range b.Calls() {
		if !strings.HasPrefix(c, "/auth/") {
			out = append(out, c)
		}
	}
	return out
}

// FailWith makes path answer with status.
func (b *Backend) FailWith(path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[path] = status
}

// Malform makes path answer 200 with a body that is not valid JSON.
func (b *Backend) Malform(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.malformed[path] = true
}

// Hold makes requests to path block until release is called or the client
// gives up.
func (b *Backend) Hold(path string) (release func()) {
	ch := make(chan struct{})
	b.mu.Lock()
	b.holds[path] = ch
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			if b.holds[path] == ch {
				delete(b.holds, path)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls = append(b.calls, r.URL.Path)
		status := b.failures[r.URL.Path]
		hold := b.holds[r.URL.Path]
		b.mu.Unlock()

		if hold != nil {
			select {
			case <-hold:
			case <-r.Context().Done():
				return
			}
		}
		if status != 0 {
			writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) userFor(r *http.Request) (models.User, bool) {
	tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return models.User{}, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.tokens[tok]
	return u, ok
}

func (b *Backend) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := b.userFor(r); !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad request"})
		return
	}
	b.mu.Lock()
	u, ok := b.accounts[strings.ToLower(in.Email)]
	b.mu.Unlock()
	if !ok || in.Password != ValidPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}
	b.reply(w, r, map[string]any{"token": TokenFor(u.Email), "user": u})
}

func (b *Backend) reply(w http.ResponseWriter, r *http.Request, v any) {
	b.mu.Lock()
	bad := b.malformed[r.URL.Path]
	b.mu.Unlock()
	if bad {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [`))
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
