package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/venturelab/venturehub/internal/config"
	"github.com/venturelab/venturehub/internal/handler"
	"github.com/venturelab/venturehub/internal/model"
	"github.com/venturelab/venturehub/internal/pkg"
	"github.com/venturelab/venturehub/internal/policy"
	"github.com/venturelab/venturehub/internal/repository/mysql"
	"github.com/venturelab/venturehub/internal/repository/redis"
	"github.com/venturelab/venturehub/internal/router"
	"github.com/venturelab/venturehub/internal/service"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	// .env 不存在时忽略，生产环境直接用环境变量
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := pkg.NewLogger(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	pkg.InitJWT(cfg.JWTAccessSecret, cfg.JWTRefreshSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		log.Fatal("mysql init failed", zap.Error(err))
	}
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Fatal("redis init failed", zap.Error(err))
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Admin{},
		&model.Community{},
		&model.CommunityAdmin{},
		&model.CommunityMember{},
		&model.Page{},
		&model.CommunityPageLink{},
		&model.PageLike{},
		&model.Comment{},
		&model.Notification{},
		&model.ModerationOutbox{},
	); err != nil {
		log.Fatal("auto migrate failed", zap.Error(err))
	}

	// 存储层
	userRepo := &mysql.UserRepository{DB: mysql.DB}
	adminRepo := &mysql.AdminRepository{DB: mysql.DB}
	communityRepo := &mysql.CommunityRepository{DB: mysql.DB}
	memberRepo := &mysql.CommunityMemberRepository{DB: mysql.DB}
	pageRepo := &mysql.PageRepository{DB: mysql.DB}
	linkRepo := &mysql.CommunityPageLinkRepository{DB: mysql.DB}
	likeRepo := &mysql.PageLikeRepository{DB: mysql.DB}
	commentRepo := &mysql.CommentRepository{DB: mysql.DB}
	noticeRepo := &mysql.NotificationRepository{DB: mysql.DB}
	outboxRepo := &mysql.OutboxRepository{DB: mysql.DB}
	countRepo := &mysql.CommunityCountRepo{DB: mysql.DB}
	tokenRepo := &redis.TokenRepository{}

	smtpCfg := pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}

	authorizer := policy.New(adminRepo, communityRepo)
	sink := service.NewOutboxSink(outboxRepo)

	// 业务层
	emailSvc := service.NewEmailService(smtpCfg)
	userSvc := service.NewUserService(userRepo, tokenRepo, emailSvc)
	adminSvc := service.NewAdminService(adminRepo, tokenRepo)
	communitySvc := service.NewCommunityService(communityRepo, authorizer)
	notifier := service.NewNotificationService(noticeRepo, userRepo, communityRepo, smtpCfg, cfg.SMTPEnabled(), log)
	membershipSvc := service.NewMembershipService(memberRepo, communityRepo, authorizer, sink, notifier, log, cfg.StoreTimeout, cfg.CounterRetry)
	moderationSvc := service.NewModerationService(pageRepo, linkRepo, communityRepo, userRepo, membershipSvc, authorizer, sink, notifier, log, cfg.StoreTimeout, cfg.CounterRetry)
	likeSvc := service.NewPageLikeService(likeRepo, redis.NewLikeCacheRepository(), redis.NewDistLock())
	commentSvc := service.NewCommentService(commentRepo, pageRepo)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 审核事件经 outbox 转投 Kafka，连不上时降级为仅日志
	sender := service.LogSender(log)
	producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
		Brokers:      cfg.KafkaBrokers,
		Topic:        cfg.KafkaTopic,
		Async:        cfg.KafkaAsync,
		BatchTimeout: cfg.KafkaBatchTimeout,
	})
	if err != nil {
		log.Warn("kafka unavailable, relaying events to log only", zap.Error(err))
	} else {
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	relayer := service.NewOutboxRelayer(outboxRepo, sender, cfg.OutboxBatch, cfg.OutboxEvery, log)
	go relayer.Run(rootCtx)

	// 计数对账定时任务
	reconciler := service.NewCommunityCountReconciler(countRepo, cfg.OutboxBatch, log)
	c := cron.New()
	if _, err := c.AddFunc(cfg.ReconcileSpec, func() {
		ctx, cancel := context.WithTimeout(rootCtx, time.Minute)
		defer cancel()
		reconciler.ReconcileOnce(ctx)
	}); err != nil {
		log.Fatal("bad reconcile schedule", zap.Error(err))
	}
	c.Start()
	defer c.Stop()

	r := router.InitRouter(router.Handlers{
		User:         handler.NewUserHandler(userSvc),
		Email:        handler.NewEmailHandler(emailSvc),
		Admin:        handler.NewAdminHandler(adminSvc),
		Community:    handler.NewCommunityHandler(communitySvc),
		Membership:   handler.NewMembershipHandler(membershipSvc),
		Page:         handler.NewPageHandler(moderationSvc),
		PageLike:     handler.NewPageLikeHandler(likeSvc),
		Comment:      handler.NewCommentHandler(commentSvc),
		Notification: handler.NewNotificationHandler(notifier),
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr(),
		Handler: r,
	}
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-rootCtx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown not clean", zap.Error(err))
	}
}
