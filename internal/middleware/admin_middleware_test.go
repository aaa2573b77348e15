package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"portfolio-backend-go/internal/identity"
)

func adminTestRouter(ident *identity.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if ident != nil {
			SetIdentity(c, ident)
		}
		c.Next()
	})
	router.GET("/admin/messages", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		ident      *identity.Identity
		wantStatus int
	}{
		{name: "no identity", ident: nil, wantStatus: http.StatusUnauthorized},
		{name: "regular user", ident: &identity.Identity{UID: "u1", Email: "x@y.com"}, wantStatus: http.StatusForbidden},
		{name: "admin", ident: &identity.Identity{UID: "u2", Email: "owner@site.com", Admin: true}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := adminTestRouter(tt.ident)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin/messages", nil)
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestCurrentIdentityAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, ok := CurrentIdentity(c); ok {
		t.Error("expected no identity on a fresh context")
	}
}
