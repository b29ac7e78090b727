package handler

import (
	"net/http"

	"github.com/venturelab/venturehub/internal/service"

	"github.com/gin-gonic/gin"
)

type PageLikeHandler struct {
	svc *service.PageLikeService
}

func NewPageLikeHandler(svc *service.PageLikeService) *PageLikeHandler {
	return &PageLikeHandler{svc: svc}
}

func (h *PageLikeHandler) Like(c *gin.Context) {
	pageID, ok := paramID(c, "page_id")
	if !ok {
		return
	}
	changed, err := h.svc.Like(c.Request.Context(), userID(c), pageID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

func (h *PageLikeHandler) Unlike(c *gin.Context) {
	pageID, ok := paramID(c, "page_id")
	if !ok {
		return
	}
	changed, err := h.svc.Unlike(c.Request.Context(), userID(c), pageID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

func (h *PageLikeHandler) Status(c *gin.Context) {
	pageID, ok := paramID(c, "page_id")
	if !ok {
		return
	}
	uid := userID(c)
	liked, err := h.svc.IsLiked(c.Request.Context(), uid, pageID)
	if err != nil {
		fail(c, err)
		return
	}
	count, err := h.svc.GetCount(c.Request.Context(), uid, pageID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked, "count": count})
}
