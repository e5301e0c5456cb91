package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/pavelzar/mailpost/internal/models"
	"github.com/pavelzar/mailpost/internal/service"
)

// fakeNewsletterService implements NewsletterService for testing.
type fakeNewsletterService struct {
	publishErr error
	gotIssue   models.NewsletterIssue
	calls      int
}

func (f *fakeNewsletterService) Publish(ctx context.Context, issue models.NewsletterIssue) error {
	f.calls++
	f.gotIssue = issue
	return f.publishErr
}

const issueBody = `{"title":"Issue #1","content":{"html":"<p>news</p>","text":"news"}}`

func TestNewsletterHandler_Publish(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		service      *fakeNewsletterService
		expectedCode int
	}{
		{
			name:         "published",
			body:         issueBody,
			service:      &fakeNewsletterService{},
			expectedCode: http.StatusOK,
		},
		{
			name:         "invalid body",
			body:         `not json`,
			service:      &fakeNewsletterService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "fan-out failure",
			body:         issueBody,
			service:      &fakeNewsletterService{publishErr: &service.NotificationError{Err: errors.New("connection reset")}},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "snapshot failure",
			body:         issueBody,
			service:      &fakeNewsletterService{publishErr: &service.PersistenceError{Err: errors.New("db down")}},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/newsletters", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			h := &NewsletterHandler{NewsletterService: tt.service, Log: zap.NewNop()}
			h.Publish(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}
		})
	}
}

func TestNewsletterHandler_Publish_DecodesIssue(t *testing.T) {
	svc := &fakeNewsletterService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/newsletters", strings.NewReader(issueBody))
	h := &NewsletterHandler{NewsletterService: svc, Log: zap.NewNop()}
	h.Publish(rec, req)

	if svc.gotIssue.Title != "Issue #1" {
		t.Errorf("title = %q; want %q", svc.gotIssue.Title, "Issue #1")
	}
	if svc.gotIssue.Content.HTML != "<p>news</p>" || svc.gotIssue.Content.Text != "news" {
		t.Errorf("content = %+v; want both renderings decoded", svc.gotIssue.Content)
	}
}

func TestNewsletterHandler_Publish_BadBodySkipsFanOut(t *testing.T) {
	svc := &fakeNewsletterService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/newsletters", strings.NewReader(`{"title": 42}`))
	h := &NewsletterHandler{NewsletterService: svc, Log: zap.NewNop()}
	h.Publish(rec, req)

	if svc.calls != 0 {
		t.Errorf("Publish called %d times for an undecodable body; want 0", svc.calls)
	}
}
