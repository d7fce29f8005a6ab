package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckNewerVersion(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"v1.2.0"}`)
	got := CheckURL(context.Background(), srv.URL, "v1.1.0")
	if got == nil {
		t.Fatal("expected a result")
	}
	if got.LatestVersion != "1.2.0" {
		t.Errorf("LatestVersion = %q, want 1.2.0", got.LatestVersion)
	}
}

func TestCheckUpToDate(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"v1.1.0"}`)
	if got := CheckURL(context.Background(), srv.URL, "1.1.0"); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestCheckErrorsAreSilent(t *testing.T) {
	srv := releaseServer(t, http.StatusNotFound, `{"message":"Not Found"}`)
	if got := CheckURL(context.Background(), srv.URL, "1.0.0"); got != nil {
		t.Errorf("expected nil on 404, got %+v", got)
	}
	empty := releaseServer(t, http.StatusOK, `{}`)
	if got := CheckURL(context.Background(), empty.URL, "1.0.0"); got != nil {
		t.Errorf("expected nil for empty tag, got %+v", got)
	}
}
