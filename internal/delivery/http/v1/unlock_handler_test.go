package v1_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-jobreels-backend/internal/delivery/http/middleware"
	v1 "go-jobreels-backend/internal/delivery/http/v1"
	"go-jobreels-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubUnlockUsecase struct {
	unlockCalls int
}

func (s *stubUnlockUsecase) IsUnlocked(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func (s *stubUnlockUsecase) Unlock(_ context.Context, _, _ string, _ domain.UnlockReason) (bool, error) {
	s.unlockCalls++
	return true, nil
}

func (s *stubUnlockUsecase) Reset(_ context.Context, _ string) error {
	return nil
}

func newUnlockTestRouter(uc domain.UnlockUsecase, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())

	group := r.Group("/v1")
	group.Use(func(c *gin.Context) {
		c.Set(string(domain.KeyUserID), userID)
		c.Set(string(domain.KeyUserRole), role)
		c.Next()
	})
	v1.NewUnlockHandler(group, uc, false)
	return r
}

func postUnlock(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/unlocks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUnlockProfileOnlyAcceptsPayment(t *testing.T) {
	t.Run("application reason is rejected for any caller", func(t *testing.T) {
		for _, role := range []string{domain.RoleSeeker, domain.RoleEmployer} {
			uc := &stubUnlockUsecase{}
			router := newUnlockTestRouter(uc, "u1", role)

			w := postUnlock(t, router, `{"subject_id":"s1","reason":"APPLICATION"}`)
			assert.Equal(t, http.StatusForbidden, w.Code, "role %s", role)
			assert.Zero(t, uc.unlockCalls)
		}
	})

	t.Run("payment reason requires the employer role", func(t *testing.T) {
		uc := &stubUnlockUsecase{}
		router := newUnlockTestRouter(uc, "u1", domain.RoleSeeker)

		w := postUnlock(t, router, `{"subject_id":"s1","reason":"PAYMENT"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Zero(t, uc.unlockCalls)
	})

	t.Run("employer payment unlock succeeds", func(t *testing.T) {
		uc := &stubUnlockUsecase{}
		router := newUnlockTestRouter(uc, "e1", domain.RoleEmployer)

		w := postUnlock(t, router, `{"subject_id":"s1","reason":"PAYMENT"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, uc.unlockCalls)
	})
}
