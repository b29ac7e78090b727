package handler

import (
	"net/http"

	"github.com/venturelab/venturehub/internal/model"
	"github.com/venturelab/venturehub/internal/service"

	"github.com/gin-gonic/gin"
)

type MembershipHandler struct {
	svc *service.MembershipService
}

func NewMembershipHandler(svc *service.MembershipService) *MembershipHandler {
	return &MembershipHandler{svc: svc}
}

// Join 用户向社区提交加入申请
func (h *MembershipHandler) Join(c *gin.Context) {
	communityID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.RequestJoin(c.Request.Context(), userID(c), communityID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Leave 用户主动退出社区
func (h *MembershipHandler) Leave(c *gin.Context) {
	communityID, ok := paramID(c, "id")
	if !ok {
		return
	}
	uid := userID(c)
	if err := h.svc.Remove(c.Request.Context(), uid, communityID, uid, false); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *MembershipHandler) Approve(c *gin.Context) {
	communityID, ok := paramID(c, "id")
	if !ok {
		return
	}
	uid, ok := paramID(c, "user_id")
	if !ok {
		return
	}
	if err := h.svc.Approve(c.Request.Context(), adminID(c), communityID, uid); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *MembershipHandler) Reject(c *gin.Context) {
	communityID, ok := paramID(c, "id")
	if !ok {
		return
	}
	uid, ok := paramID(c, "user_id")
	if !ok {
		return
	}
	if err := h.svc.Reject(c.Request.Context(), adminID(c), communityID, uid); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *MembershipHandler) Remove(c *gin.Context) {
	communityID, ok := paramID(c, "id")
	if !ok {
		return
	}
	uid, ok := paramID(c, "user_id")
	if !ok {
		return
	}
	if err := h.svc.Remove(c.Request.Context(), adminID(c), communityID, uid, true); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// CheckMembership 查询当前用户在社区的成员状态
func (h *MembershipHandler) CheckMembership(c *gin.Context) {
	communityID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.CheckMembership(c.Request.Context(), userID(c), communityID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": model.MemberApproved})
}

func (h *MembershipHandler) ListMembers(c *gin.Context) {
	communityID, ok := paramID(c, "id")
	if !ok {
		return
	}
	page, size := pageParams(c)
	members, err := h.svc.ListMembers(c.Request.Context(), communityID, c.Query("status"), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h *MembershipHandler) MyCommunities(c *gin.Context) {
	ids, err := h.svc.ListUserCommunities(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"community_ids": ids})
}
