package v1

import (
	"net/http"

	"go-jobreels-backend/internal/delivery/http/response"
	"go-jobreels-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	interactionUC domain.InteractionUsecase
}

// NewInteractionHandler registers like/save routes
func NewInteractionHandler(protected *gin.RouterGroup, interactionUC domain.InteractionUsecase) {
	handler := &InteractionHandler{interactionUC: interactionUC}

	interactions := protected.Group("/interactions")
	{
		interactions.GET("", handler.GetInteractions)
		interactions.POST("/videos/:id/like", handler.ToggleLikeVideo)
		interactions.POST("/videos/:id/save", handler.ToggleSaveVideo)
		interactions.POST("/users/:username/like", handler.ToggleLikeUser)
		interactions.POST("/users/:username/save", handler.ToggleSaveUser)
	}
}

// ToggleResponse reports the membership state after a toggle
type ToggleResponse struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

// GetInteractions godoc
// @Summary      Get my likes and saves
// @Tags         interactions
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.InteractionSet}
// @Failure      401  {object}  response.Response
// @Router       /interactions [get]
// @Security     BearerAuth
func (h *InteractionHandler) GetInteractions(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	set, err := h.interactionUC.GetInteractions(c, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interactions retrieved", set)
}

func (h *InteractionHandler) toggle(c *gin.Context, id string, fn func(ctx *gin.Context, userID, id string) (bool, error)) {
	userID := c.GetString(string(domain.KeyUserID))

	active, err := fn(c, userID, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interaction toggled", ToggleResponse{ID: id, Active: active})
}

// ToggleLikeVideo godoc
// @Summary      Toggle video like
// @Tags         interactions
// @Produce      json
// @Param        id  path      string  true  "Video ID"
// @Success      200 {object}  response.Response{data=ToggleResponse}
// @Router       /interactions/videos/{id}/like [post]
// @Security     BearerAuth
func (h *InteractionHandler) ToggleLikeVideo(c *gin.Context) {
	h.toggle(c, c.Param("id"), func(ctx *gin.Context, userID, id string) (bool, error) {
		return h.interactionUC.ToggleLikeVideo(ctx, userID, id)
	})
}

// ToggleSaveVideo godoc
// @Summary      Toggle video save
// @Tags         interactions
// @Produce      json
// @Param        id  path      string  true  "Video ID"
// @Success      200 {object}  response.Response{data=ToggleResponse}
// @Router       /interactions/videos/{id}/save [post]
// @Security     BearerAuth
func (h *InteractionHandler) ToggleSaveVideo(c *gin.Context) {
	h.toggle(c, c.Param("id"), func(ctx *gin.Context, userID, id string) (bool, error) {
		return h.interactionUC.ToggleSaveVideo(ctx, userID, id)
	})
}

// ToggleLikeUser godoc
// @Summary      Toggle profile like
// @Tags         interactions
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  response.Response{data=ToggleResponse}
// @Router       /interactions/users/{username}/like [post]
// @Security     BearerAuth
func (h *InteractionHandler) ToggleLikeUser(c *gin.Context) {
	h.toggle(c, c.Param("username"), func(ctx *gin.Context, userID, id string) (bool, error) {
		return h.interactionUC.ToggleLikeUser(ctx, userID, id)
	})
}

// ToggleSaveUser godoc
// @Summary      Toggle profile save
// @Tags         interactions
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  response.Response{data=ToggleResponse}
// @Router       /interactions/users/{username}/save [post]
// @Security     BearerAuth
func (h *InteractionHandler) ToggleSaveUser(c *gin.Context) {
	h.toggle(c, c.Param("username"), func(ctx *gin.Context, userID, id string) (bool, error) {
		return h.interactionUC.ToggleSaveUser(ctx, userID, id)
	})
}
