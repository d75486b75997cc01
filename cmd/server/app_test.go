package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testApp(t *testing.T) *App {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return NewApp(db)
}

func TestLegacyEmployeeRoutesRedirect(t *testing.T) {
	app := testApp(t)

	cases := []struct {
		path string
		want string
	}{
		{"/employees", "/clients"},
		{"/employees/5", "/clients/5"},
		{"/employees/5/invoices/new", "/clients/5/invoices/new"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)

		if w.Code != http.StatusMovedPermanently {
			t.Errorf("GET %s: status = %d, want %d", tc.path, w.Code, http.StatusMovedPermanently)
		}
		if loc := w.Header().Get("Location"); loc != tc.want {
			t.Errorf("GET %s: Location = %q, want %q", tc.path, loc, tc.want)
		}
	}
}
