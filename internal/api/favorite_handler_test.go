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
	"portfolio-backend-go/internal/identity"
	"portfolio-backend-go/internal/models"
)

type fakeFavoriteService struct {
	toggled   bool
	toggleErr error
	exists    bool
	favorites []*models.Favorite
	lastData  models.ProjectData
}

func (f *fakeFavoriteService) Toggle(_ context.Context, _ *identity.Identity, _ string, data models.ProjectData) (bool, error) {
	if f.toggleErr != nil {
		return false, f.toggleErr
	}
	f.lastData = data
	f.toggled = !f.toggled
	return f.toggled, nil
}

func (f *fakeFavoriteService) Check(context.Context, string, string) (bool, error) {
	return f.exists, nil
}

func (f *fakeFavoriteService) ListForUser(context.Context, string) ([]*models.Favorite, error) {
	return f.favorites, nil
}

func favoriteRouter(svc core.FavoriteService, ident *identity.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(identityStub(ident))
	handler := NewFavoriteHandler(svc, zap.NewNop())
	router.PUT("/api/v1/projects/:projectId/favorite", handler.ToggleFavorite)
	router.GET("/api/v1/projects/:projectId/favorite", handler.CheckFavorite)
	router.GET("/api/v1/favorites", handler.ListFavorites)
	return router
}

func TestToggleFavoriteRequiresIdentityAtHandler(t *testing.T) {
	router := favoriteRouter(&fakeFavoriteService{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/projects/proj-1/favorite", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestToggleFavoriteReportsNewState(t *testing.T) {
	svc := &fakeFavoriteService{}
	router := favoriteRouter(svc, &identity.Identity{UID: "u1"})

	body := `{"name":"Portfolio Site","role":"Developer","tech":"Go","year":"2024"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/projects/proj-1/favorite", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	var resp FavoriteStatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.ProjectID != "proj-1" || !resp.Favorited {
		t.Errorf("resp = %+v, want proj-1 favorited", resp)
	}
	if svc.lastData.Name != "Portfolio Site" {
		t.Errorf("project data not forwarded: %+v", svc.lastData)
	}
}

func TestToggleFavoriteEmptyBodyAllowed(t *testing.T) {
	svc := &fakeFavoriteService{}
	router := favoriteRouter(svc, &identity.Identity{UID: "u1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/projects/proj-1/favorite", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
}

func TestCheckFavorite(t *testing.T) {
	router := favoriteRouter(&fakeFavoriteService{exists: true}, &identity.Identity{UID: "u1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/proj-1/favorite", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp FavoriteStatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if !resp.Favorited {
		t.Error("expected favorited true")
	}
}

func TestListFavorites(t *testing.T) {
	favorites := []*models.Favorite{
		{ID: "proj-1", ProjectID: "proj-1", ProjectName: "One"},
		{ID: "proj-2", ProjectID: "proj-2", ProjectName: "Two"},
	}
	router := favoriteRouter(&fakeFavoriteService{favorites: favorites}, &identity.Identity{UID: "u1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/favorites", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp []*models.Favorite
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp) != 2 {
		t.Errorf("got %d favorites, want 2", len(resp))
	}
}
