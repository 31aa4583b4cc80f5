package router

import (
	"net/http"

	"communityhub/internal/config"
	"communityhub/internal/handler"
	"communityhub/internal/middleware"
	"communityhub/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	User      *handler.UserHandler
	Community *handler.CommunityHandler
	Member    *handler.MemberHandler
	Role      *handler.RoleHandler
}

// New wires the route groups. The bearer-gated groups sit behind the auth
// middleware; /v1/role takes no bearer token.
func New(cfg *config.Config, logger *zap.Logger, maker *pkg.TokenMaker, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	registry := prometheus.NewRegistry()
	r.Use(middleware.NewMetrics(registry).Handler())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/v1/auth")
	if cfg.RateLimit.Enabled {
		auth.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}
	{
		auth.POST("/signup", h.User.Signup)
		auth.POST("/signin", h.User.Signin)
		auth.GET("/me", middleware.Auth(maker), h.User.Me)
	}

	community := r.Group("/v1/community")
	community.Use(middleware.Auth(maker))
	{
		community.POST("", h.Community.Create)
		community.GET("", h.Community.GetAll)
		community.GET("/:id/members", h.Community.GetMembers)
		community.GET("/me/owner", h.Community.GetOwned)
		community.GET("/me/member", h.Community.GetJoined)
	}

	member := r.Group("/v1/member")
	member.Use(middleware.Auth(maker))
	{
		member.POST("", h.Member.Add)
		member.DELETE("/:id", h.Member.Remove)
	}

	role := r.Group("/v1/role")
	{
		role.POST("", h.Role.Create)
		role.GET("", h.Role.GetAll)
	}

	return r
}
