package handler

import (
	"net/http"

	"github.com/venturelab/venturehub/internal/repository/redis"
	"github.com/venturelab/venturehub/internal/service"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	svc *service.EmailService
}

func NewEmailHandler(svc *service.EmailService) *EmailHandler {
	return &EmailHandler{svc: svc}
}

type SendCodeReq struct {
	Email string `json:"email" binding:"required,email"`
	Scope string `json:"scope" binding:"required,oneof=register reset"`
}

func (h *EmailHandler) SendCode(c *gin.Context) {
	var req SendCodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}

	scope := redis.ScopeRegister
	if req.Scope == "reset" {
		scope = redis.ScopeReset
	}
	if err := h.svc.SendCode(scope, req.Email); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
