package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openagora/agora/internal/forum"
)

// listTopics handles GET /api/v1/topics
func (r *Router) listTopics(c *gin.Context) {
	includeInactive, _ := strconv.ParseBool(c.DefaultQuery("include_inactive", "false"))

	topics, err := r.topics.List(c.Request.Context(), !includeInactive)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

// createTopic handles POST /api/v1/topics
func (r *Router) createTopic(c *gin.Context) {
	var req forum.TopicCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actorID, actorRole := actor(c)
	topic, err := r.topics.Create(c.Request.Context(), actorID, actorRole, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTopicResponse(topic))
}

// deleteTopic handles DELETE /api/v1/topics/:id
func (r *Router) deleteTopic(c *gin.Context) {
	topicID, ok := pathID(c)
	if !ok {
		return
	}

	actorID, actorRole := actor(c)
	if err := r.topics.Delete(c.Request.Context(), actorID, actorRole, topicID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
