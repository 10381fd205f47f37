// internal/transport/http2_test.go
package transport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestBuildHTTP2Client_RequiresTimeout(t *testing.T) {
	if _, err := BuildHTTP2Client(Config{}); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}

func TestBuildHTTP2Client_PlainHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()

	c, err := BuildHTTP2Client(Config{Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("BuildHTTP2Client() err=%v", err)
	}

	resp, err := c.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET err=%v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Fatalf("body = %q", body)
	}
	if c.Timeout != 2*time.Second {
		t.Fatalf("client timeout = %v", c.Timeout)
	}
}
