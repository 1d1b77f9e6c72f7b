package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"teamforge/internal/adapter/notification"
	"teamforge/internal/adapter/storage"
	"teamforge/internal/api/handler"
	"teamforge/internal/api/middleware"
	"teamforge/internal/pkg/config"
	"teamforge/internal/pkg/metrics"
	"teamforge/internal/repository"
	"teamforge/internal/service"
	"teamforge/pkg/utils"
)

// Dependencies 路由依赖的外部资源
type Dependencies struct {
	DB       *gorm.DB
	Uploader storage.Uploader
	Notifier notification.Notifier
	Limiter  middleware.Limiter // 为空时按配置创建
}

// Setup 设置路由
func Setup(cfg *config.Config, deps *Dependencies) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	utils.UseJSONFieldNames()

	r := gin.New()
	if cfg.Server.MaxUploadMB > 0 {
		r.MaxMultipartMemory = int64(cfg.Server.MaxUploadMB) << 20
	}

	// 全局中间件
	// SentryMiddleware 同时负责panic恢复
	r.Use(middleware.SentryMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(cfg.Metrics.Path))
		r.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	db := deps.DB

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	joinRequestRepo := repository.NewJoinRequestRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// 初始化Service
	authService := service.NewAuthService(&cfg.Auth, userRepo)
	userService := service.NewUserService(userRepo)
	profileService := service.NewProfileService(db, userRepo, profileRepo, deps.Uploader)
	levelService := service.NewLevelService(profileRepo)
	postService := service.NewPostService(db, postRepo, profileRepo, userRepo, deps.Uploader)
	teamService := service.NewTeamService(db, teamRepo)
	joinRequestService := service.NewJoinRequestService(db, teamRepo, joinRequestRepo, deps.Notifier)
	chatService := service.NewChatService(chatRepo)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService, &cfg.Auth)
	userHandler := handler.NewUserHandler(userService)
	profileHandler := handler.NewProfileHandler(profileService, levelService)
	postHandler := handler.NewPostHandler(postService)
	teamHandler := handler.NewTeamHandler(teamService, joinRequestService)
	chatHandler := handler.NewChatHandler(chatService)

	api := r.Group("/api")
	{
		// 认证相关(无需token), 注册与登录按IP限流
		public := api.Group("")
		if cfg.RateLimit.Enabled {
			limiter := deps.Limiter
			if limiter == nil {
				limiter = middleware.NewLimiter(&cfg.RateLimit)
			}
			public.Use(middleware.RateLimitMiddleware(limiter))
		}
		public.POST("/signup", authHandler.Signup)
		public.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)

		// 需要认证的路由
		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.GET("/auth/me", authHandler.GetMe)
			authed.GET("/search/user", userHandler.Search)
			authed.GET("/levels", profileHandler.Levels)

			// 个人资料
			groupProfile := authed.Group("/profile")
			{
				groupProfile.GET("/get-data", profileHandler.Get)              // 获取资料
				groupProfile.POST("/update", profileHandler.Update)            // 更新资料
				groupProfile.POST("/upload-photo", profileHandler.UploadPhoto) // 上传头像
			}

			// 动态
			groupPost := authed.Group("/post")
			groupPosts := authed.Group("/posts")
			{
				groupPost.POST("/create", postHandler.Create)            // 发帖
				groupPost.POST("/upload-media", postHandler.UploadMedia) // 上传图片/视频
				groupPosts.GET("/get", postHandler.ListByAuthor)         // 按作者查询
				groupPosts.GET("/feed", postHandler.Feed)                // 全部动态
				groupPosts.POST("/like", postHandler.Like)               // 点赞
				groupPosts.POST("/comment", postHandler.Comment)         // 评论
			}

			// 团队与加入申请
			groupTeams := authed.Group("/teams")
			{
				groupTeams.POST("/create", teamHandler.Create)                          // 创建团队
				groupTeams.GET("/all", teamHandler.ListPublic)                          // 公开团队
				groupTeams.GET("/created", teamHandler.ListCreated)                     // 我创建的
				groupTeams.GET("/joined", teamHandler.ListJoined)                       // 我加入的
				groupTeams.POST("/join-request", teamHandler.RequestJoin)               // 申请加入
				groupTeams.GET("/join-requests", teamHandler.ListJoinRequests)          // 待处理申请
				groupTeams.POST("/update-join-request", teamHandler.ResolveJoinRequest) // 处理申请
			}
			authed.GET("/team", teamHandler.GetByID) // 团队详情

			// 私信
			groupChat := authed.Group("/chat")
			{
				groupChat.POST("/send", chatHandler.Send)        // 发送
				groupChat.GET("/messages", chatHandler.Messages) // 会话消息
			}
		}
	}

	return r
}
