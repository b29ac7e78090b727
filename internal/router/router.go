package router

import (
	"github.com/venturelab/venturehub/internal/handler"
	"github.com/venturelab/venturehub/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers 路由依赖的全部处理器，由 main 组装后注入
type Handlers struct {
	User         *handler.UserHandler
	Email        *handler.EmailHandler
	Admin        *handler.AdminHandler
	Community    *handler.CommunityHandler
	Membership   *handler.MembershipHandler
	Page         *handler.PageHandler
	PageLike     *handler.PageLikeHandler
	Comment      *handler.CommentHandler
	Notification *handler.NotificationHandler
}

func InitRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	// 邮件相关接口
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/code", h.Email.SendCode)
	}

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", h.User.Register)
		userGroup.POST("/login", h.User.Login)
		userGroup.POST("/reset", h.User.ResetPassword)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", h.User.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/logout", h.User.Logout)
		authGroup.POST("/change-password", h.User.ChangePassword)
	}

	// 社区浏览接口，无需登录
	communityGroup := r.Group("/api/community")
	{
		communityGroup.GET("/list", h.Community.List)
		communityGroup.GET("/:id", h.Community.Get)
	}

	// 成员相关接口
	memberGroup := r.Group("/api/community")
	memberGroup.Use(middleware.AuthMiddleware())
	{
		memberGroup.POST("/:id/join", h.Membership.Join)
		memberGroup.POST("/:id/leave", h.Membership.Leave)
		memberGroup.GET("/:id/membership", h.Membership.CheckMembership)
		memberGroup.GET("/:id/members", h.Membership.ListMembers)
	}
	r.GET("/api/my/communities", middleware.AuthMiddleware(), h.Membership.MyCommunities)

	// 页面相关接口
	pageGroup := r.Group("/api/community")
	pageGroup.Use(middleware.AuthMiddleware())
	{
		pageGroup.POST("/:id/page", h.Page.Create)
		pageGroup.DELETE("/:id/page/:page_id", h.Page.Remove)
	}
	r.GET("/api/page/search", h.Page.Search)
	r.GET("/api/page/:page_id", h.Page.Get)

	// 点赞与评论接口
	likeGroup := r.Group("/api/page")
	likeGroup.Use(middleware.AuthMiddleware())
	{
		likeGroup.POST("/:page_id/like", h.PageLike.Like)
		likeGroup.DELETE("/:page_id/like", h.PageLike.Unlike)
		likeGroup.GET("/:page_id/like", h.PageLike.Status)
		likeGroup.POST("/:page_id/comment", h.Comment.Create)
		likeGroup.GET("/:page_id/comments", h.Comment.ListByPage)
	}
	r.DELETE("/api/comment/:comment_id", middleware.AuthMiddleware(), h.Comment.Delete)

	// 用户通知接口
	noticeGroup := r.Group("/api/notification")
	noticeGroup.Use(middleware.AuthMiddleware())
	{
		noticeGroup.GET("/", h.Notification.ListMine)
		noticeGroup.POST("/:id/read", h.Notification.MarkRead)
	}

	// 管理端接口
	r.POST("/api/admin/login", h.Admin.Login)
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AdminAuthMiddleware())
	{
		adminGroup.POST("/logout", h.Admin.Logout)
		adminGroup.POST("/create", h.Admin.CreateAdmin)
		adminGroup.PUT("/:id/permissions", h.Admin.UpdatePermissions)

		adminGroup.POST("/community", h.Community.Create)
		adminGroup.DELETE("/community/:id", h.Community.Delete)
		adminGroup.POST("/community/:id/admin", h.Community.AddAdmin)

		adminGroup.POST("/community/:id/member/:user_id/approve", h.Membership.Approve)
		adminGroup.POST("/community/:id/member/:user_id/reject", h.Membership.Reject)
		adminGroup.DELETE("/community/:id/member/:user_id", h.Membership.Remove)

		adminGroup.GET("/community/:id/page/pending", h.Page.ListPending)
		adminGroup.POST("/community/:id/page/:page_id/approve", h.Page.Approve)
		adminGroup.POST("/community/:id/page/:page_id/reject", h.Page.Reject)
		adminGroup.DELETE("/community/:id/page/:page_id", h.Page.AdminRemove)

		adminGroup.DELETE("/comment/:comment_id", h.Comment.AdminDelete)
		adminGroup.GET("/notification", h.Notification.AdminList)
		adminGroup.POST("/notification/:id/read", h.Notification.AdminMarkRead)
	}

	return r
}
