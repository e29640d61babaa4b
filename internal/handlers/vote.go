package handlers

import (
	"errors"
	"net/http"

	"github.com/EmirhanSalman/dijital-pati-sub000/internal/db"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/models"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	ledger *services.VoteLedger
}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{
		ledger: services.NewVoteLedger(db.DB),
	}
}

type voteRequest struct {
	// 1 = upvote, -1 = downvote, 0 = clear the current vote
	VoteType int `json:"voteType"`
}

// Vote applies the caller's vote on a post. Casting the stored direction
// again removes it (toggle-off); casting the opposite flips it. The
// response carries the post's fresh score so the client can reconcile
// any optimistic update.
func (h *VoteHandler) Vote(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Fail(c, http.StatusUnauthorized, "login required")
		return
	}

	var post models.Post
	if err := db.DB.Where("pid = ?", c.Param("pid")).First(&post).Error; err != nil {
		Fail(c, http.StatusNotFound, "post not found")
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.ledger.Apply(post.ID, user.ID, req.VoteType); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDirection):
			Fail(c, http.StatusBadRequest, "voteType must be 1, -1 or 0")
		case errors.Is(err, services.ErrPostNotFound):
			Fail(c, http.StatusNotFound, "post not found")
		case errors.Is(err, services.ErrVoteConflict):
			Fail(c, http.StatusConflict, "please try again")
		default:
			Fail(c, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	score, err := h.ledger.Score(post.ID)
	if err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	userVote, err := h.ledger.UserVote(post.ID, user.ID)
	if err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	OK(c, gin.H{"score": score, "userVote": userVote})
}

// Show returns the post's score and the viewer's own vote (null when
// anonymous or not voted).
func (h *VoteHandler) Show(c *gin.Context) {
	var post models.Post
	if err := db.DB.Where("pid = ?", c.Param("pid")).First(&post).Error; err != nil {
		Fail(c, http.StatusNotFound, "post not found")
		return
	}

	score, err := h.ledger.Score(post.ID)
	if err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	var userVote *int
	if user := CurrentUser(c); user != nil {
		userVote, err = h.ledger.UserVote(post.ID, user.ID)
		if err != nil {
			Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"score": score, "userVote": userVote})
}
