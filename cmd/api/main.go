package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"communityhub/internal/config"
	"communityhub/internal/handler"
	"communityhub/internal/pkg"
	"communityhub/internal/repository"
	"communityhub/internal/repository/memory"
	"communityhub/internal/repository/mysql"
	redisrepo "communityhub/internal/repository/redis"
	"communityhub/internal/router"
	"communityhub/internal/service"

	"go.uber.org/zap"
)

type repositories struct {
	users       repository.UserRepository
	roles       repository.RoleRepository
	communities repository.CommunityRepository
	members     repository.MemberRepository
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.Logging.Level)
	defer logger.Sync()

	repos, err := openRepositories(cfg)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}

	if cfg.Redis.Enabled {
		client, err := redisrepo.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("connect redis", zap.Error(err))
		}
		defer client.Close()
		repos.roles = redisrepo.NewRoleCache(client, repos.roles)
	}

	var events service.EventPublisher
	if cfg.Kafka.Enabled {
		producer := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		defer producer.Close()
		events = producer
	}

	var mail *pkg.SMTPConfig
	if cfg.SMTP.Enabled {
		mail = &pkg.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}
	}

	maker := pkg.NewTokenMaker(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	rbac := service.NewRBACService(repos.roles, repos.members)
	userSvc := service.NewUserService(repos.users, maker, mail, logger)
	roleSvc := service.NewRoleService(repos.roles)
	memberSvc := service.NewMemberService(repos.members, repos.communities, repos.users, repos.roles, rbac, events, logger)
	communitySvc := service.NewCommunityService(repos.communities, repos.members, repos.users, repos.roles, memberSvc, events, logger)

	// 预置两个特权角色，社区创建依赖 Community Admin
	if err := roleSvc.EnsureSeedRoles(context.Background()); err != nil {
		logger.Fatal("seed roles", zap.Error(err))
	}

	engine := router.New(cfg, logger, maker, router.Handlers{
		User:      handler.NewUserHandler(userSvc),
		Community: handler.NewCommunityHandler(communitySvc),
		Member:    handler.NewMemberHandler(memberSvc),
		Role:      handler.NewRoleHandler(roleSvc),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("stopped")
}

func openRepositories(cfg *config.Config) (*repositories, error) {
	if cfg.Database.Driver == "memory" {
		return &repositories{
			users:       memory.NewUserRepository(),
			roles:       memory.NewRoleRepository(),
			communities: memory.NewCommunityRepository(),
			members:     memory.NewMemberRepository(),
		}, nil
	}

	db, err := mysql.Open(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if err := mysql.AutoMigrate(db); err != nil {
		return nil, err
	}
	return &repositories{
		users:       mysql.NewUserRepository(db),
		roles:       mysql.NewRoleRepository(db),
		communities: mysql.NewCommunityRepository(db),
		members:     mysql.NewMemberRepository(db),
	}, nil
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = lvl
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
