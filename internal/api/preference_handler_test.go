package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/service"

	"github.com/gin-gonic/gin"
)

// stubPreferenceService records what Reset was asked to remove.
type stubPreferenceService struct {
	resetCalled bool
	resetKeys   []string
}

func (s *stubPreferenceService) Get(context.Context, domain.PrefIdentity, string) (*domain.UserPreference, error) {
	return nil, service.ErrPreferenceNotFound
}

func (s *stubPreferenceService) Set(_ context.Context, _ domain.PrefIdentity, key, value string) (*domain.UserPreference, error) {
	return &domain.UserPreference{Key: key, Value: value}, nil
}

func (s *stubPreferenceService) Remove(context.Context, domain.PrefIdentity, string) error {
	return nil
}

func (s *stubPreferenceService) List(context.Context, domain.PrefIdentity) ([]domain.UserPreference, error) {
	return nil, nil
}

func (s *stubPreferenceService) Reset(_ context.Context, _ domain.PrefIdentity, keys []string) error {
	s.resetCalled = true
	s.resetKeys = keys
	return nil
}

func newPreferenceRouter(svc service.PreferenceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextIdentityKey, domain.Identity{Kind: domain.IdentityTrainer, TrainerID: 1})
	})

	h := NewPreferenceHandler(svc)
	router.POST("/preferences/reset", h.Reset)
	return router
}

func TestResetPreferencesWithKeys(t *testing.T) {
	stub := &stubPreferenceService{}
	router := newPreferenceRouter(stub)

	w := postJSON(router, "/preferences/reset", `{"keys":["theme","lang"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if len(stub.resetKeys) != 2 {
		t.Errorf("reset keys = %v, want theme and lang", stub.resetKeys)
	}
}

func TestResetPreferencesEmptyBody(t *testing.T) {
	stub := &stubPreferenceService{}
	router := newPreferenceRouter(stub)

	// No body at all means "remove everything".
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/preferences/reset", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if !stub.resetCalled {
		t.Error("reset never reached the service")
	}
	if len(stub.resetKeys) != 0 {
		t.Errorf("reset keys = %v, want none", stub.resetKeys)
	}
}

func TestResetPreferencesMalformedBody(t *testing.T) {
	stub := &stubPreferenceService{}
	router := newPreferenceRouter(stub)

	w := postJSON(router, "/preferences/reset", `{"keys":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if stub.resetCalled {
		t.Error("malformed input must not reach the service")
	}
}
