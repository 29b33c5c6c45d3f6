package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type commentRequest struct {
	Content string `json:"content"`
}

// listComments handles GET /api/v1/posts/:id/comments
func (r *Router) listComments(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	limit, offset := pageParams(c)

	actorID, _ := actor(c)
	comments, votes, err := r.comments.ListByPost(c.Request.Context(), actorID, postID, limit+1, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	hasMore := len(comments) > limit
	if hasMore {
		comments = comments[:limit]
	}

	out := make([]commentResponse, len(comments))
	for i := range comments {
		out[i] = toCommentResponse(&comments[i], votes[comments[i].ID])
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": out,
		"has_more": hasMore,
		"limit":    limit,
		"offset":   offset,
	})
}

// createComment handles POST /api/v1/posts/:id/comments
func (r *Router) createComment(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actorID, _ := actor(c)
	comment, err := r.comments.Create(c.Request.Context(), actorID, postID, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(comment, 0))
}

// updateComment handles PUT /api/v1/comments/:id
func (r *Router) updateComment(c *gin.Context) {
	commentID, ok := pathID(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actorID, _ := actor(c)
	comment, err := r.comments.Update(c.Request.Context(), actorID, commentID, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}

	userVote := 0
	if votes, err := r.votes.VotesForComments(c.Request.Context(), actorID, []int64{commentID}); err == nil {
		userVote = votes[commentID]
	}

	c.JSON(http.StatusOK, toCommentResponse(comment, userVote))
}

// deleteComment handles DELETE /api/v1/comments/:id
func (r *Router) deleteComment(c *gin.Context) {
	commentID, ok := pathID(c)
	if !ok {
		return
	}

	actorID, actorRole := actor(c)
	if err := r.comments.Delete(c.Request.Context(), actorID, actorRole, commentID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// voteComment handles POST /api/v1/comments/:id/vote
func (r *Router) voteComment(c *gin.Context) {
	commentID, ok := pathID(c)
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
	result, err := r.votes.SubmitCommentVote(c.Request.Context(), actorID, commentID, req.Value)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
