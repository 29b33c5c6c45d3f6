package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openagora/agora/internal/forum"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageParams reads limit/offset query parameters with clamping.
func pageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// getFeed handles GET /api/v1/posts
func (r *Router) getFeed(c *gin.Context) {
	limit, offset := pageParams(c)
	topicID, _ := strconv.ParseInt(c.DefaultQuery("topic_id", "0"), 10, 64)

	params := forum.FeedParams{
		Sort:    c.DefaultQuery("sort", "hot"),
		TopicID: topicID,
		// Fetch one extra row to learn whether another page exists.
		Limit:  limit + 1,
		Offset: offset,
	}

	feed, err := r.posts.Feed(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}

	hasMore := len(feed) > limit
	if hasMore {
		feed = feed[:limit]
	}

	actorID, _ := actor(c)
	if err := r.posts.AttachUserVotes(c.Request.Context(), actorID, feed); err != nil {
		r.logger.Warn("vote overlay failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":    feed,
		"has_more": hasMore,
		"limit":    limit,
		"offset":   offset,
	})
}

// searchPosts handles GET /api/v1/posts/search
func (r *Router) searchPosts(c *gin.Context) {
	limit, offset := pageParams(c)

	results, err := r.posts.Search(c.Request.Context(), c.Query("q"), limit+1, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	hasMore := len(results) > limit
	if hasMore {
		results = results[:limit]
	}

	actorID, _ := actor(c)
	if err := r.posts.AttachUserVotes(c.Request.Context(), actorID, results); err != nil {
		r.logger.Warn("vote overlay failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":    results,
		"has_more": hasMore,
		"limit":    limit,
		"offset":   offset,
	})
}

// getPost handles GET /api/v1/posts/:id
func (r *Router) getPost(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}

	post, err := r.posts.Get(c.Request.Context(), postID)
	if err != nil {
		writeError(c, err)
		return
	}

	actorID, _ := actor(c)

	// Authors viewing their own post don't inflate the counter.
	if !post.UserID.Valid || post.UserID.Int64 != actorID {
		if err := r.posts.IncrementViewCount(c.Request.Context(), postID); err != nil {
			r.logger.Warn("view count increment failed", zap.Int64("post_id", postID), zap.Error(err))
		} else {
			post.ViewCount++
		}
	}

	userVote := 0
	if actorID > 0 {
		votes, err := r.votes.VotesForPosts(c.Request.Context(), actorID, []int64{postID})
		if err != nil {
			r.logger.Warn("vote overlay failed", zap.Error(err))
		} else {
			userVote = votes[postID]
		}
	}

	c.JSON(http.StatusOK, toPostResponse(post, userVote))
}

// createPost handles POST /api/v1/posts
func (r *Router) createPost(c *gin.Context) {
	var req forum.PostCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actorID, _ := actor(c)
	post, err := r.posts.Create(c.Request.Context(), actorID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPostResponse(post, 0))
}

// updatePost handles PUT /api/v1/posts/:id
func (r *Router) updatePost(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}

	var req forum.PostUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actorID, _ := actor(c)
	post, err := r.posts.Update(c.Request.Context(), actorID, postID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	userVote := 0
	if votes, err := r.votes.VotesForPosts(c.Request.Context(), actorID, []int64{postID}); err == nil {
		userVote = votes[postID]
	}

	c.JSON(http.StatusOK, toPostResponse(post, userVote))
}

// deletePost handles DELETE /api/v1/posts/:id
func (r *Router) deletePost(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}

	actorID, actorRole := actor(c)
	if err := r.posts.Delete(c.Request.Context(), actorID, actorRole, postID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// votePost handles POST /api/v1/posts/:id/vote
func (r *Router) votePost(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Value int `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actorID, _ := actor(c)
	result, err := r.votes.SubmitVote(c.Request.Context(), actorID, postID, req.Value)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
