package controller

import (
	"cyberlearn_backend/internal/service"
	"cyberlearn_backend/internal/util"
	"cyberlearn_backend/pkg/logger"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatController struct {
	Service *service.ChatService
	Hub     *service.ChatHub
}

func NewChatController(svc *service.ChatService, hub *service.ChatHub) *ChatController {
	return &ChatController{Service: svc, Hub: hub}
}

type chatRequest struct {
	SessionID string `json:"session_id" form:"session_id"`
	Message   string `json:"message" form:"message"`
}

// @Summary Ask the AI tutor
// @Description Parameters may be sent as query values or as a JSON body
// @Tags chat
// @Accept json
// @Produce json
// @Param session_id query string true "Session ID"
// @Param message query string true "Question"
// @Success 200 {object} service.ChatReply
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/chat-with-ai [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	var req chatRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Message == "" && ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	res, err := c.Service.Ask(ctx.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary Chat history of a session
// @Tags chat
// @Produce json
// @Param session_id path string true "Session ID"
// @Param limit query int false "Maximum messages" default(50)
// @Success 200 {object} service.ChatHistory
// @Router /api/chat-history/{session_id} [get]
func (c *ChatController) History(ctx *gin.Context) {
	limit := util.QueryInt(ctx.Query("limit"), service.DefaultHistoryLimit)
	res, err := c.Service.History(ctx.Request.Context(), ctx.Param("session_id"), limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary Websocket tutoring
// @Description Each text frame is a question, each reply a JSON frame {ai_response, message_id}
// @Tags chat
// @Param session_id query string true "Session ID"
// @Router /api/ws/chat [get]
func (c *ChatController) WebSocket(ctx *gin.Context) {
	sessionID := ctx.Query("session_id")
	if sessionID == "" {
		util.BadRequest(ctx, "session_id is required")
		return
	}
	if err := service.ServeWs(c.Hub, ctx.Writer, ctx.Request, sessionID); err != nil {
		if errors.Is(err, service.ErrWSUpgrade) {
			logger.Log.Warn("WebSocket upgrade failed", zap.String("sessionID", sessionID), zap.Error(err))
			return
		}
		util.HandleError(ctx, err)
	}
}
