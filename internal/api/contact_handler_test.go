package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-backend-go/internal/core"
	"portfolio-backend-go/internal/models"
)

type fakeMessageService struct {
	submitID  string
	submitErr error
	submitted []models.ContactRequest
	marked    []string
	messages  []*models.Message
}

func (f *fakeMessageService) Submit(_ context.Context, req models.ContactRequest) (string, error) {
	if f.submitErr != nil {
		return "", f.submitErr
	}
	f.submitted = append(f.submitted, req)
	return f.submitID, nil
}

func (f *fakeMessageService) List(context.Context, int) ([]*models.Message, error) {
	return f.messages, nil
}

func (f *fakeMessageService) MarkRead(_ context.Context, messageID string) {
	f.marked = append(f.marked, messageID)
}

func contactRouter(svc core.MessageService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewContactHandler(svc, zap.NewNop())
	router.POST("/api/v1/contact", handler.SubmitContact)
	return router
}

func TestSubmitContactSuccess(t *testing.T) {
	svc := &fakeMessageService{submitID: "message-1"}
	router := contactRouter(svc)

	body := `{"name":"Ada","email":"ada@example.com","message":"Hello"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}
	var resp ContactResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.ID != "message-1" {
		t.Errorf("id = %q, want message-1", resp.ID)
	}
	if len(svc.submitted) != 1 || svc.submitted[0].Name != "Ada" {
		t.Errorf("service received %+v", svc.submitted)
	}
}

func TestSubmitContactValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing email", body: `{"name":"Ada","message":"Hello"}`},
		{name: "malformed email", body: `{"name":"Ada","email":"not-an-email","message":"Hello"}`},
		{name: "missing message", body: `{"name":"Ada","email":"ada@example.com"}`},
		{name: "not json", body: `name=Ada`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeMessageService{submitID: "message-1"}
			router := contactRouter(svc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if len(svc.submitted) != 0 {
				t.Error("invalid bodies must not reach the service")
			}
		})
	}
}

func TestSubmitContactTimeout(t *testing.T) {
	svc := &fakeMessageService{submitErr: core.ErrSubmissionTimeout}
	router := contactRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(`{"name":"Ada","email":"ada@example.com","message":"Hello"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504; body %s", w.Code, w.Body.String())
	}
}
