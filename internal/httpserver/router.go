package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"minitweet/internal/handler"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	tweetHandler *handler.TweetHandler,
	followHandler *handler.FollowHandler,
	healthHandler *handler.HealthHandler,
	authn Authenticator,
	logger *zap.Logger,
) *Router {
	r := gin.New()
	r.Use(gin.Recovery(), TraceMiddleware(), RequestLogger(logger))

	// Health endpoints
	r.GET("/healthz", healthHandler.Healthz)
	r.HEAD("/healthz", healthHandler.Healthz)
	r.GET("/readyz", healthHandler.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.GET("/ping", healthHandler.Ping)
	r.POST("/sign-up", authHandler.SignUp)
	r.POST("/login", authHandler.Login)
	r.GET("/timeline/:user_id", tweetHandler.Timeline)

	// Protected
	auth := r.Group("/")
	auth.Use(AuthMiddleware(authn))
	{
		auth.POST("/tweet", tweetHandler.Post)
		auth.GET("/timeline", tweetHandler.MyTimeline)
		auth.POST("/follow", followHandler.Follow)
		auth.POST("/unfollow", followHandler.Unfollow)
		auth.POST("/logout", authHandler.Logout)
	}

	return &Router{Engine: r}
}
