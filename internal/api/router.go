package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openagora/agora/internal/cache"
	"github.com/openagora/agora/internal/db"
	"github.com/openagora/agora/internal/forum"
	"github.com/openagora/agora/pkg/config"
	"github.com/openagora/agora/pkg/logging"
)

// Router sets up API routes
type Router struct {
	posts    *forum.PostService
	votes    *forum.VoteService
	topics   *forum.TopicService
	comments *forum.CommentService
	reports  *forum.ReportService

	database *db.DB
	cache    *cache.Cache
	auth     *config.AuthConfig
	logger   *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, redisCache *cache.Cache, authCfg *config.AuthConfig) *Router {
	votes := forum.NewVoteService(database.DB)

	return &Router{
		posts:    forum.NewPostService(database.DB, redisCache, votes),
		votes:    votes,
		topics:   forum.NewTopicService(database.DB),
		comments: forum.NewCommentService(database.DB, votes),
		reports:  forum.NewReportService(database.DB, redisCache),
		database: database,
		cache:    redisCache,
		auth:     authCfg,
		logger:   logging.GetLogger().With(zap.String("component", "api-router")),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(RequestID(), RequestLogger())

	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	v1 := engine.Group("/api/v1")

	// Read endpoints: authentication optional, used only to overlay the
	// caller's own votes.
	optional := v1.Group("", Auth(r.auth.JWTSecret, false))
	optional.GET("/posts", r.getFeed)
	optional.GET("/posts/search", r.searchPosts)
	optional.GET("/posts/:id", r.getPost)
	optional.GET("/posts/:id/comments", r.listComments)
	optional.GET("/topics", r.listTopics)

	// Write endpoints: authentication required.
	required := v1.Group("", Auth(r.auth.JWTSecret, true))
	required.POST("/posts", r.createPost)
	required.PUT("/posts/:id", r.updatePost)
	required.DELETE("/posts/:id", r.deletePost)
	required.POST("/posts/:id/vote", r.votePost)
	required.POST("/posts/:id/report", r.reportPost)
	required.POST("/posts/:id/comments", r.createComment)
	required.PUT("/comments/:id", r.updateComment)
	required.DELETE("/comments/:id", r.deleteComment)
	required.POST("/comments/:id/vote", r.voteComment)
	required.POST("/comments/:id/report", r.reportComment)
	required.POST("/topics", r.createTopic)
	required.DELETE("/topics/:id", r.deleteTopic)
	required.GET("/reports", r.listReports)
	required.PUT("/reports/:id", r.resolveReport)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	status := "OK"
	code := http.StatusOK

	if err := r.database.Health(c.Request.Context()); err != nil {
		status = "DEGRADED"
		code = http.StatusServiceUnavailable
		r.logger.Error("database health check failed", zap.Error(err))
	}

	c.JSON(code, gin.H{
		"status":  status,
		"service": "agora-api",
	})
}
