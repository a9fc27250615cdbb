package resend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/johnmikes100/concierge/internal/domain"
)

func TestMailerSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer re_test" {
			t.Fatalf("unexpected auth header: %s", got)
		}
		body, _ := io.ReadAll(r.Body)
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if payload["subject"] != "Hello" || !strings.Contains(string(body), `"to":["jane@example.com"]`) {
			t.Fatalf("unexpected payload: %s", body)
		}
		if !strings.Contains(string(body), `"filename":"summary.pdf"`) {
			t.Fatalf("attachment missing: %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
	}))
	defer srv.Close()

	m, err := New(Config{APIKey: "re_test", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	id, err := m.Send(context.Background(), domain.Email{
		From:        "Concierge <onboarding@resend.dev>",
		To:          []string{"jane@example.com"},
		Subject:     "Hello",
		HTML:        "<p>hi</p>",
		Attachments: []domain.Attachment{{Filename: "summary.pdf", Content: []byte("%PDF-1.3")}},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if id != "49a3999c-0ce1-4ea6-ab68-afcd6dc2e794" {
		t.Fatalf("unexpected id: %s", id)
	}
}

func TestMailerSendProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"statusCode":401,"name":"validation_error","message":"API key is invalid"}`))
	}))
	defer srv.Close()

	m, err := New(Config{APIKey: "", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := m.Send(context.Background(), domain.Email{To: []string{"x@example.com"}}); err == nil {
		t.Fatal("expected provider error")
	}
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	if _, err := New(Config{BaseURL: "://nope"}); err == nil {
		t.Fatal("expected url parse error")
	}
}
