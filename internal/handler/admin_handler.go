package handler

import (
	"net/http"

	"github.com/venturelab/venturehub/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	pair, err := h.svc.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *AdminHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(adminID(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

type CreateAdminReq struct {
	Username    string   `json:"username" binding:"required,min=3,max=32"`
	Password    string   `json:"password" binding:"required,min=8"`
	Email       string   `json:"email" binding:"required,email"`
	Permissions []string `json:"permissions"`
}

func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req CreateAdminReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	admin, err := h.svc.CreateAdmin(c.Request.Context(), adminID(c), req.Username, req.Password, req.Email, req.Permissions)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": admin.ID, "username": admin.Username})
}

type UpdatePermissionsReq struct {
	Permissions []string `json:"permissions" binding:"required"`
}

func (h *AdminHandler) UpdatePermissions(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdatePermissionsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	if err := h.svc.UpdatePermissions(c.Request.Context(), adminID(c), id, req.Permissions); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
