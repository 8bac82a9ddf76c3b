package v1

import (
	"net/http"

	"go-jobreels-backend/internal/delivery/http/response"
	"go-jobreels-backend/internal/domain"
	"go-jobreels-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type UnlockHandler struct {
	unlockUC domain.UnlockUsecase
}

// NewUnlockHandler registers paywall routes. The reset route is only
// mounted when debug routes are enabled.
func NewUnlockHandler(protected *gin.RouterGroup, unlockUC domain.UnlockUsecase, enableDebug bool) {
	handler := &UnlockHandler{unlockUC: unlockUC}

	unlocks := protected.Group("/unlocks")
	{
		unlocks.GET("/:subjectId", handler.GetUnlockStatus)
		unlocks.POST("", handler.UnlockProfile)
		if enableDebug {
			unlocks.DELETE("", handler.ResetUnlocks)
		}
	}
}

// UnlockStatusResponse reports whether a profile is unlocked for the caller
type UnlockStatusResponse struct {
	SubjectID string `json:"subject_id"`
	Unlocked  bool   `json:"unlocked"`
}

// GetUnlockStatus godoc
// @Summary      Check unlock status
// @Description  Pure lookup: is this seeker profile unlocked for the caller
// @Tags         unlocks
// @Produce      json
// @Param        subjectId  path      string  true  "Seeker user ID"
// @Success      200        {object}  response.Response{data=UnlockStatusResponse}
// @Failure      401        {object}  response.Response
// @Router       /unlocks/{subjectId} [get]
// @Security     BearerAuth
func (h *UnlockHandler) GetUnlockStatus(c *gin.Context) {
	viewerID := c.GetString(string(domain.KeyUserID))
	subjectID := c.Param("subjectId")

	unlocked, err := h.unlockUC.IsUnlocked(c, viewerID, subjectID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Unlock status retrieved", UnlockStatusResponse{
		SubjectID: subjectID,
		Unlocked:  unlocked,
	})
}

// UnlockProfileRequest names the seeker to unlock and how
type UnlockProfileRequest struct {
	SubjectID string `json:"subject_id" binding:"required"`
	Reason    string `json:"reason" binding:"required,oneof=PAYMENT APPLICATION"`
}

// UnlockProfile godoc
// @Summary      Unlock a seeker profile
// @Description  Confirms through the payment gateway, then marks the profile unlocked for the caller. Idempotent.
// @Tags         unlocks
// @Accept       json
// @Produce      json
// @Param        body  body      UnlockProfileRequest  true  "Unlock request"
// @Success      200   {object}  response.Response{data=UnlockStatusResponse}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /unlocks [post]
// @Security     BearerAuth
func (h *UnlockHandler) UnlockProfile(c *gin.Context) {
	viewerID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	var req UnlockProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	// This endpoint only handles paid unlocks, and those are an employer
	// action. Application unlocks are granted by the apply flow.
	if domain.UnlockReason(req.Reason) != domain.UnlockReasonPayment {
		c.Error(apperror.Forbidden("Application unlocks are granted when applying to a job"))
		return
	}
	if role != domain.RoleEmployer {
		c.Error(apperror.Forbidden("Only employers can pay to unlock a profile"))
		return
	}

	unlocked, err := h.unlockUC.Unlock(c, viewerID, req.SubjectID, domain.UnlockReason(req.Reason))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile unlocked", UnlockStatusResponse{
		SubjectID: req.SubjectID,
		Unlocked:  unlocked,
	})
}

// ResetUnlocks godoc
// @Summary      Reset unlock state (debug)
// @Tags         unlocks
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /unlocks [delete]
// @Security     BearerAuth
func (h *UnlockHandler) ResetUnlocks(c *gin.Context) {
	viewerID := c.GetString(string(domain.KeyUserID))

	if err := h.unlockUC.Reset(c, viewerID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Unlock state cleared", nil)
}
