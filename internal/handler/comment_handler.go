package handler

import (
	"net/http"

	"github.com/venturelab/venturehub/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *service.CommentService
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type CreateCommentReq struct {
	Content string `json:"content" binding:"required,max=1024"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	pageID, ok := paramID(c, "page_id")
	if !ok {
		return
	}
	var req CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	comment, err := h.svc.CreateComment(c.Request.Context(), userID(c), pageID, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) ListByPage(c *gin.Context) {
	pageID, ok := paramID(c, "page_id")
	if !ok {
		return
	}
	page, size := pageParams(c)
	comments, err := h.svc.ListByPage(c.Request.Context(), pageID, page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := paramID(c, "comment_id")
	if !ok {
		return
	}
	if err := h.svc.DeleteComment(c.Request.Context(), userID(c), commentID, false); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *CommentHandler) AdminDelete(c *gin.Context) {
	commentID, ok := paramID(c, "comment_id")
	if !ok {
		return
	}
	if err := h.svc.DeleteComment(c.Request.Context(), adminID(c), commentID, true); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
