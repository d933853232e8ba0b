package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBrowserClientGet(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("<html>watch page</html>"))
	}))
	defer srv.Close()

	bc, err := NewBrowserClient()
	if err != nil {
		t.Fatalf("NewBrowserClient() error: %v", err)
	}

	body, status, err := bc.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if string(body) != "<html>watch page</html>" {
		t.Errorf("body = %q", body)
	}
	if !strings.HasPrefix(gotUA, "Mozilla/5.0") {
		t.Errorf("User-Agent = %q, want a browser string", gotUA)
	}
	if !strings.Contains(gotAccept, "text/html") {
		t.Errorf("Accept = %q, want an html accept header", gotAccept)
	}
}

func TestBrowserClientDoesNotFollowRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://consent.youtube.com/", http.StatusFound)
	}))
	defer srv.Close()

	bc, err := NewBrowserClient()
	if err != nil {
		t.Fatalf("NewBrowserClient() error: %v", err)
	}

	_, status, err := bc.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if status != http.StatusFound {
		t.Errorf("status = %d, want the redirect surfaced as 302", status)
	}
}
