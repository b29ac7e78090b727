package handler

import (
	"net/http"
	"strconv"

	"github.com/venturelab/venturehub/internal/errs"
	"github.com/venturelab/venturehub/internal/middleware"

	"github.com/gin-gonic/gin"
)

// fail 统一错误出口：分类映射状态码，消息原样透出
func fail(c *gin.Context, err error) {
	c.JSON(errs.HTTPStatus(err), gin.H{"msg": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"msg": msg})
}

func userID(c *gin.Context) uint64 {
	v, _ := c.Get(middleware.ContextUserIDKey)
	id, _ := v.(uint64)
	return id
}

func adminID(c *gin.Context) uint64 {
	v, _ := c.Get(middleware.ContextAdminIDKey)
	id, _ := v.(uint64)
	return id
}

func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))
	return page, size
}
