package v1

import (
	"fmt"
	"net/http"

	"go-jobreels-backend/internal/delivery/http/response"
	"go-jobreels-backend/internal/domain"
	"go-jobreels-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatUC   domain.ChatUsecase
	unlockUC domain.UnlockUsecase
	userUC   domain.AuthUsecase
}

// NewChatHandler registers chat routes
func NewChatHandler(protected *gin.RouterGroup, chatUC domain.ChatUsecase, unlockUC domain.UnlockUsecase, userUC domain.AuthUsecase) {
	handler := &ChatHandler{chatUC: chatUC, unlockUC: unlockUC, userUC: userUC}

	chats := protected.Group("/chats")
	{
		chats.GET("", handler.ListChats)
		chats.GET("/:id", handler.GetChat)
		chats.POST("/direct", handler.StartDirectChat)
		chats.POST("/apply", handler.ApplyToJob)
		chats.POST("/:id/messages", handler.SendMessage)
		chats.DELETE("/:id", handler.DeleteChat)
	}
}

// gateSeekerName truncates the seeker's name for employer viewers who have
// not unlocked the profile, so chat listings stay consistent with the feed.
func (h *ChatHandler) gateSeekerName(c *gin.Context, viewerID, role string, chat *domain.Chat) error {
	if role != domain.RoleEmployer {
		return nil
	}
	unlocked, err := h.unlockUC.IsUnlocked(c, viewerID, chat.SeekerID)
	if err != nil {
		return err
	}
	chat.SeekerName = domain.DisplayName(chat.SeekerName, "", domain.NameVisibility{
		ViewerRole:       role,
		IsAuthenticated:  true,
		IsUnlocked:       unlocked,
		HasResumeDetails: true,
	})
	return nil
}

// ListChats godoc
// @Summary      List my chats
// @Description  Chats where the caller is a participant, most recent first. Admins may pass viewer=all.
// @Tags         chats
// @Produce      json
// @Param        viewer  query     string  false  "Sentinel 'all' (admin only)"
// @Success      200     {object}  response.Response{data=[]domain.Chat}
// @Failure      401     {object}  response.Response
// @Router       /chats [get]
// @Security     BearerAuth
func (h *ChatHandler) ListChats(c *gin.Context) {
	viewerID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if c.Query("viewer") == domain.ViewerAll {
		if role != domain.RoleAdmin {
			c.Error(apperror.Forbidden("Only admins can list all chats"))
			return
		}
		viewerID = domain.ViewerAll
	}

	chats, err := h.chatUC.ListChats(c, viewerID)
	if err != nil {
		c.Error(err)
		return
	}
	if viewerID != domain.ViewerAll {
		for i := range chats {
			if err := h.gateSeekerName(c, viewerID, role, &chats[i]); err != nil {
				c.Error(err)
				return
			}
		}
	}
	response.Success(c, http.StatusOK, "Chats retrieved", chats)
}

// GetChat godoc
// @Summary      Get a chat thread
// @Tags         chats
// @Produce      json
// @Param        id  path      string  true  "Chat ID"
// @Success      200 {object}  response.Response{data=domain.Chat}
// @Failure      403 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /chats/{id} [get]
// @Security     BearerAuth
func (h *ChatHandler) GetChat(c *gin.Context) {
	viewerID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))
	if role == domain.RoleAdmin {
		viewerID = domain.ViewerAll
	}

	chat, err := h.chatUC.GetChat(c, viewerID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	if viewerID != domain.ViewerAll {
		if err := h.gateSeekerName(c, viewerID, role, chat); err != nil {
			c.Error(err)
			return
		}
	}
	response.Success(c, http.StatusOK, "Chat retrieved", chat)
}

// StartDirectChatRequest opens (or reuses) a thread and sends the first text
type StartDirectChatRequest struct {
	RecipientID   string `json:"recipient_id" binding:"required"`
	RecipientName string `json:"recipient_name"`
	Text          string `json:"text" binding:"required"`
}

// StartDirectChat godoc
// @Summary      Message a user directly
// @Description  Finds or creates the thread for the pair and appends the text as a regular message
// @Tags         chats
// @Accept       json
// @Produce      json
// @Param        body  body      StartDirectChatRequest  true  "Recipient and text"
// @Success      200   {object}  response.Response{data=domain.Chat}
// @Failure      400   {object}  response.Response
// @Router       /chats/direct [post]
// @Security     BearerAuth
func (h *ChatHandler) StartDirectChat(c *gin.Context) {
	callerID := c.GetString(string(domain.KeyUserID))
	callerRole := c.GetString(string(domain.KeyUserRole))

	var req StartDirectChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	caller, err := h.userUC.GetCurrentUser(c, callerID)
	if err != nil {
		c.Error(err)
		return
	}

	params := domain.FindOrCreateChatParams{}
	if callerRole == domain.RoleEmployer {
		params.EmployerID = callerID
		params.EmployerName = caller.FullName
		params.SeekerID = req.RecipientID
		params.SeekerName = req.RecipientName
	} else {
		params.SeekerID = callerID
		params.SeekerName = caller.FullName
		params.EmployerID = req.RecipientID
		params.EmployerName = req.RecipientName
	}

	chat, err := h.chatUC.FindOrCreateChat(c, params)
	if err != nil {
		c.Error(err)
		return
	}
	if _, err := h.chatUC.SendMessage(c, chat.ID, callerID, req.Text, false); err != nil {
		c.Error(err)
		return
	}

	chat, err = h.chatUC.GetChat(c, callerID, chat.ID)
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.gateSeekerName(c, callerID, callerRole, chat); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Message sent", chat)
}

// ApplyToJobRequest is the seeker-side application payload
type ApplyToJobRequest struct {
	EmployerID   string   `json:"employer_id" binding:"required"`
	EmployerName string   `json:"employer_name"`
	JobTitle     string   `json:"job_title" binding:"required"`
	Tags         []string `json:"tags"`
	Message      string   `json:"message"`
}

// ApplyToJob godoc
// @Summary      Apply to a job
// @Description  Routes the application through the shared thread for the pair, seeding a system message. Applying again reuses the thread.
// @Tags         chats
// @Accept       json
// @Produce      json
// @Param        body  body      ApplyToJobRequest  true  "Application data"
// @Success      200   {object}  response.Response{data=domain.Chat}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /chats/apply [post]
// @Security     BearerAuth
func (h *ChatHandler) ApplyToJob(c *gin.Context) {
	seekerID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleSeeker {
		c.Error(apperror.Forbidden("Only seekers can apply to jobs"))
		return
	}

	var req ApplyToJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	seeker, err := h.userUC.GetCurrentUser(c, seekerID)
	if err != nil {
		c.Error(err)
		return
	}

	message := req.Message
	if message == "" {
		message = fmt.Sprintf("Applied to %s", req.JobTitle)
	}

	chat, err := h.chatUC.FindOrCreateChat(c, domain.FindOrCreateChatParams{
		EmployerID:     req.EmployerID,
		SeekerID:       seekerID,
		EmployerName:   req.EmployerName,
		SeekerName:     seeker.FullName,
		InitialMessage: message,
		JobTitle:       req.JobTitle,
		Tags:           req.Tags,
	})
	if err != nil {
		c.Error(err)
		return
	}

	// Applying reveals the applicant to this employer.
	if _, err := h.unlockUC.Unlock(c, req.EmployerID, seekerID, domain.UnlockReasonApplication); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application sent", chat)
}

// SendMessageRequest appends one message to a thread
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// SendMessage godoc
// @Summary      Send a message
// @Tags         chats
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Chat ID"
// @Param        body  body      SendMessageRequest  true  "Message text"
// @Success      201   {object}  response.Response{data=domain.Message}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /chats/{id}/messages [post]
// @Security     BearerAuth
func (h *ChatHandler) SendMessage(c *gin.Context) {
	senderID := c.GetString(string(domain.KeyUserID))
	chatID := c.Param("id")

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	// The sender must be a participant; GetChat enforces that.
	if _, err := h.chatUC.GetChat(c, senderID, chatID); err != nil {
		c.Error(err)
		return
	}

	msg, err := h.chatUC.SendMessage(c, chatID, senderID, req.Text, false)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Message sent", msg)
}

// DeleteChat godoc
// @Summary      Delete a chat
// @Tags         chats
// @Produce      json
// @Param        id  path      string  true  "Chat ID"
// @Success      200 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /chats/{id} [delete]
// @Security     BearerAuth
func (h *ChatHandler) DeleteChat(c *gin.Context) {
	viewerID := c.GetString(string(domain.KeyUserID))
	if c.GetString(string(domain.KeyUserRole)) == domain.RoleAdmin {
		viewerID = domain.ViewerAll
	}
	chatID := c.Param("id")

	// Participant check before the destructive call.
	if _, err := h.chatUC.GetChat(c, viewerID, chatID); err != nil {
		c.Error(err)
		return
	}

	if err := h.chatUC.DeleteChat(c, chatID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Chat deleted", nil)
}
