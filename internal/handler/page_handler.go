package handler

import (
	"net/http"

	"github.com/venturelab/venturehub/internal/service"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	svc *service.ModerationService
}

func NewPageHandler(svc *service.ModerationService) *PageHandler {
	return &PageHandler{svc: svc}
}

type CreatePageReq struct {
	Title   string   `json:"title" binding:"required,max=128"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags" binding:"max=10"`
}

// Create 成员在社区内提交页面，进入待审核队列
func (h *PageHandler) Create(c *gin.Context) {
	communityID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req CreatePageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	page, err := h.svc.CreatePage(c.Request.Context(), userID(c), communityID, req.Title, req.Content, req.Tags)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *PageHandler) Get(c *gin.Context) {
	pageID, ok := paramID(c, "page_id")
	if !ok {
		return
	}
	page, err := h.svc.GetPage(c.Request.Context(), pageID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *PageHandler) Approve(c *gin.Context) {
	communityID, ok := paramID(c, "id")
	if !ok {
		return
	}
	pageID, ok := paramID(c, "page_id")
	if !ok {
		return
	}
	if err := h.svc.ApprovePage(c.Request.Context(), adminID(c), communityID, pageID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *PageHandler) Reject(c *gin.Context) {
	communityID, ok := paramID(c, "id")
	if !ok {
		return
	}
	pageID, ok := paramID(c, "page_id")
	if !ok {
		return
	}
	if err := h.svc.RejectPage(c.Request.Context(), adminID(c), communityID, pageID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Remove 作者删除自己的页面
func (h *PageHandler) Remove(c *gin.Context) {
	communityID, ok := paramID(c, "id")
	if !ok {
		return
	}
	pageID, ok := paramID(c, "page_id")
	if !ok {
		return
	}
	if err := h.svc.RemovePage(c.Request.Context(), userID(c), communityID, pageID, false); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// AdminRemove 管理员下架页面
func (h *PageHandler) AdminRemove(c *gin.Context) {
	communityID, ok := paramID(c, "id")
	if !ok {
		return
	}
	pageID, ok := paramID(c, "page_id")
	if !ok {
		return
	}
	if err := h.svc.RemovePage(c.Request.Context(), adminID(c), communityID, pageID, true); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Search 按标签、标题、作者名检索已通过的页面
func (h *PageHandler) Search(c *gin.Context) {
	page, size := pageParams(c)
	crit := service.SearchCriteria{
		Tags:     c.QueryArray("tag"),
		Title:    c.Query("title"),
		Username: c.Query("author"),
	}
	pages, err := h.svc.SearchPages(c.Request.Context(), crit, page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

func (h *PageHandler) ListPending(c *gin.Context) {
	communityID, ok := paramID(c, "id")
	if !ok {
		return
	}
	page, size := pageParams(c)
	pending, err := h.svc.ListPending(c.Request.Context(), communityID, page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pending})
}
