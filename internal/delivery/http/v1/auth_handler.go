package v1

import (
	"net/http"

	"go-jobreels-backend/internal/delivery/http/response"
	"go-jobreels-backend/internal/domain"
	"go-jobreels-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

// NewAuthHandler registers auth and profile routes
func NewAuthHandler(protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	protected.POST("/auth/sync", handler.SyncUser)
	protected.GET("/me", handler.GetMe)
	protected.PATCH("/me/role", handler.SwitchRole)
}

// SyncUserRequest carries the profile fields the auth provider does not own
type SyncUserRequest struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"full_name"`
}

// SyncUser godoc
// @Summary      Sync the local user record
// @Description  Upserts the caller's user row from verified token claims
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      SyncUserRequest  true  "Profile data"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Router       /auth/sync [post]
// @Security     BearerAuth
func (h *AuthHandler) SyncUser(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	email := c.GetString(string(domain.KeyUserEmail))

	var req SyncUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user := &domain.User{
		ID:       userID,
		Email:    email,
		Username: req.Username,
		FullName: req.FullName,
	}
	if err := h.authUC.EnsureUserExists(c, user); err != nil {
		c.Error(err)
		return
	}

	current, err := h.authUC.GetCurrentUser(c, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User synced", current)
}

// GetMe godoc
// @Summary      Get current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /me [get]
// @Security     BearerAuth
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	user, err := h.authUC.GetCurrentUser(c, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User retrieved", user)
}

// SwitchRoleRequest selects the caller's browsing role
type SwitchRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=employer seeker"`
}

// SwitchRole godoc
// @Summary      Switch browsing role
// @Description  Flips the caller between employer and seeker
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      SwitchRoleRequest  true  "Target role"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Router       /me/role [patch]
// @Security     BearerAuth
func (h *AuthHandler) SwitchRole(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req SwitchRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	ctx := contextWithIdentity(c)
	user, err := h.authUC.SwitchRole(ctx, userID, req.Role)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Role updated", user)
}
