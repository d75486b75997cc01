package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSessionRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	CreateSession(w, 42)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}

	uid, ok := ParseSession(req)
	if !ok || uid != 42 {
		t.Fatalf("ParseSession = (%d, %v), want (42, true)", uid, ok)
	}
}

func TestParseSessionRejectsTamperedCookie(t *testing.T) {
	w := httptest.NewRecorder()
	CreateSession(w, 42)
	c := w.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: c.Name, Value: "7." + c.Value[len("42."):]})

	if _, ok := ParseSession(req); ok {
		t.Fatal("tampered session cookie must not validate")
	}
}

func TestMiddlewareBasicFallback(t *testing.T) {
	SetCredentialChecker(func(_ context.Context, email, password string) (uint, bool) {
		if email == "a@b.example" && password == "s3cret" {
			return 7, true
		}
		return 0, false
	})
	defer SetCredentialChecker(nil)

	var got uint
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("a@b.example", "s3cret")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != 7 {
		t.Fatalf("expected user 7 from basic auth, got %d", got)
	}

	got = 0
	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.SetBasicAuth("a@b.example", "wrong")
	h.ServeHTTP(httptest.NewRecorder(), bad)
	if got != 0 {
		t.Fatalf("wrong password must not authenticate, got user %d", got)
	}
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	h := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for anonymous request")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/invoices", nil))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}
