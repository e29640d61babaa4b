package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/EmirhanSalman/dijital-pati-sub000/internal/db"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/middleware"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/models"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/services"
	"github.com/EmirhanSalman/dijital-pati-sub000/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const storiesPerPage = 30

// topCandidatePool bounds how many recent posts the "top" sort ranks in
// memory. Ranking in Go keeps the score derivation in one aggregate
// query instead of a per-row SQL power() expression.
const topCandidatePool = 200

type StoryHandler struct {
	ledger      *services.VoteLedger
	mailService *services.MailService
}

func NewStoryHandler() *StoryHandler {
	return &StoryHandler{
		ledger:      services.NewVoteLedger(db.DB),
		mailService: services.NewMailService(),
	}
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Topic   string `json:"topic"`
	PetPid  string `json:"petPid"`
}

type createCommentRequest struct {
	Content  string `json:"content"`
	ParentID *uint  `json:"parentId"`
}

type reportRequest struct {
	Reason string `json:"reason"`
}

// fillCommentCounts batch-fills comment counts for a page of posts.
func fillCommentCounts(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	db.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}

// fillScores derives each post's score from the votes table in one
// aggregate query. Scores are never read from a stored counter.
func (h *StoryHandler) fillScores(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}
	scores, err := h.ledger.ScoresForPosts(postIDs)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].Score = scores[posts[i].ID]
	}
	return nil
}

// List returns a page of posts. sort=new orders by submission time;
// sort=top ranks the recent candidate pool by the gravity formula over
// derived scores.
func (h *StoryHandler) List(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}

	query := db.DB.Model(&models.Post{}).Preload("User").Preload("Topic")

	if topicName := c.Query("topic"); topicName != "" {
		var topic models.Topic
		if err := db.DB.Where("name = ?", topicName).First(&topic).Error; err != nil {
			Fail(c, http.StatusNotFound, "topic not found")
			return
		}
		query = query.Where("topic_id = ?", topic.ID)
	}

	var posts []models.Post
	if c.DefaultQuery("sort", "top") == "new" {
		offset := (page - 1) * storiesPerPage
		if err := query.Order("created_at DESC").Offset(offset).Limit(storiesPerPage).Find(&posts).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		if err := h.fillScores(posts); err != nil {
			Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
	} else {
		if err := query.Order("created_at DESC").Limit(topCandidatePool).Find(&posts).Error; err != nil {
			Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		if err := h.fillScores(posts); err != nil {
			Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		sort.SliceStable(posts, func(i, j int) bool {
			return utils.CalculateRank(posts[i].Score, posts[i].CreatedAt) >
				utils.CalculateRank(posts[j].Score, posts[j].CreatedAt)
		})
		start := (page - 1) * storiesPerPage
		if start > len(posts) {
			start = len(posts)
		}
		end := start + storiesPerPage
		if end > len(posts) {
			end = len(posts)
		}
		posts = posts[start:end]
	}

	fillCommentCounts(posts)

	c.JSON(http.StatusOK, gin.H{"posts": posts, "page": page})
}

func (h *StoryHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		Fail(c, http.StatusBadRequest, "title is required")
		return
	}

	topicName := req.Topic
	if topicName == "" {
		topicName = "general"
	}
	var topic models.Topic
	if err := db.DB.Where("name = ?", topicName).First(&topic).Error; err != nil {
		Fail(c, http.StatusBadRequest, "unknown topic")
		return
	}

	post := models.Post{
		Pid:     utils.GeneratePid(8),
		UserID:  user.ID,
		TopicID: topic.ID,
		Title:   req.Title,
		Content: req.Content,
	}

	// Linking a pet is only allowed for the author's own pets.
	if req.PetPid != "" {
		var pet models.Pet
		if err := db.DB.Where("pid = ? AND user_id = ?", req.PetPid, user.ID).First(&pet).Error; err != nil {
			Fail(c, http.StatusBadRequest, "pet not found or not yours")
			return
		}
		post.PetID = &pet.ID
	}

	if err := db.DB.Create(&post).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	OK(c, gin.H{"pid": post.Pid})
}

func (h *StoryHandler) Detail(c *gin.Context) {
	var post models.Post
	err := db.DB.Preload("User").Preload("Topic").Preload("Pet").
		Where("pid = ?", c.Param("pid")).First(&post).Error
	if err != nil {
		Fail(c, http.StatusNotFound, "post not found")
		return
	}

	db.DB.Model(&post).UpdateColumn("views", gorm.Expr("views + ?", 1))

	score, err := h.ledger.Score(post.ID)
	if err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	post.Score = score

	var userVote *int
	if user := CurrentUser(c); user != nil {
		userVote, err = h.ledger.UserVote(post.ID, user.ID)
		if err != nil {
			Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
	}

	var comments []models.Comment
	db.DB.Preload("User").Where("post_id = ?", post.ID).
		Order("created_at ASC").Find(&comments)

	var commentCount int64
	db.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount)
	post.CommentCount = int(commentCount)

	c.JSON(http.StatusOK, gin.H{
		"post":        post,
		"contentHtml": utils.RenderMarkdownCached(post.Content),
		"userVote":    userVote,
		"comments":    comments,
	})
}

func (h *StoryHandler) CreateComment(c *gin.Context) {
	user := CurrentUser(c)

	var post models.Post
	if err := db.DB.Preload("User").Where("pid = ?", c.Param("pid")).First(&post).Error; err != nil {
		Fail(c, http.StatusNotFound, "post not found")
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		Fail(c, http.StatusBadRequest, "comment content is required")
		return
	}

	comment := models.Comment{
		Cid:     utils.GeneratePid(8),
		PostID:  post.ID,
		UserID:  user.ID,
		Content: req.Content,
	}

	var parent *models.Comment
	if req.ParentID != nil {
		var p models.Comment
		if err := db.DB.Preload("User").Where("id = ? AND post_id = ?", *req.ParentID, post.ID).First(&p).Error; err != nil {
			Fail(c, http.StatusBadRequest, "parent comment not found")
			return
		}
		parent = &p
		comment.ParentID = req.ParentID
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	h.notifyComment(user, &post, parent, &comment)

	OK(c, gin.H{"cid": comment.Cid})
}

// notifyComment writes notification rows and fires best-effort mail to
// the post author or the parent comment's author. Self-replies are
// skipped.
func (h *StoryHandler) notifyComment(actor *models.User, post *models.Post, parent *models.Comment, comment *models.Comment) {
	postLink := fmt.Sprintf("/p/%s#comment-%s", post.Pid, comment.Cid)

	if parent != nil && parent.UserID != actor.ID {
		notification := models.Notification{
			UserID:  parent.UserID,
			ActorID: &actor.ID,
			Type:    models.NotificationTypeReplyComment,
			Reason:  fmt.Sprintf("%s replied to your comment on \"%s\"", actor.Username, post.Title),
		}
		db.DB.Create(&notification)
		h.mailService.SendCommentNotification(parent.User.Email, actor.Username, post.Title, comment.Content, postLink)
		return
	}

	if parent == nil && post.UserID != actor.ID {
		notification := models.Notification{
			UserID:  post.UserID,
			ActorID: &actor.ID,
			Type:    models.NotificationTypeCommentPost,
			Reason:  fmt.Sprintf("%s commented on your post \"%s\"", actor.Username, post.Title),
		}
		db.DB.Create(&notification)
		h.mailService.SendCommentNotification(post.User.Email, actor.Username, post.Title, comment.Content, postLink)
	}
}

func (h *StoryHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)

	var post models.Post
	if err := db.DB.Where("pid = ?", c.Param("pid")).First(&post).Error; err != nil {
		Fail(c, http.StatusNotFound, "post not found")
		return
	}
	if post.UserID != user.ID && user.Role != "admin" {
		Fail(c, http.StatusForbidden, "not your post")
		return
	}

	// Votes and comments go with the post; deleting them here keeps the
	// derived score honest even when the driver has FK enforcement off.
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	OK(c, nil)
}

func (h *StoryHandler) DeleteComment(c *gin.Context) {
	user := CurrentUser(c)

	var comment models.Comment
	if err := db.DB.Where("cid = ?", c.Param("cid")).First(&comment).Error; err != nil {
		Fail(c, http.StatusNotFound, "comment not found")
		return
	}
	if comment.UserID != user.ID && user.Role != "admin" {
		Fail(c, http.StatusForbidden, "not your comment")
		return
	}

	if err := db.DB.Delete(&comment).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	OK(c, nil)
}

// ReportPost files a moderation report and notifies every admin.
func (h *StoryHandler) ReportPost(c *gin.Context) {
	user := CurrentUser(c)

	var post models.Post
	if err := db.DB.Where("pid = ?", c.Param("pid")).First(&post).Error; err != nil {
		Fail(c, http.StatusNotFound, "post not found")
		return
	}

	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Reason == "" {
		Fail(c, http.StatusBadRequest, "report reason is required")
		return
	}

	h.fileReport(c, user, "post", post.ID, post.Pid, fmt.Sprintf("the post \"%s\"", post.Title), req.Reason)
}

func (h *StoryHandler) ReportComment(c *gin.Context) {
	user := CurrentUser(c)

	var comment models.Comment
	if err := db.DB.Preload("Post").Where("cid = ?", c.Param("cid")).First(&comment).Error; err != nil {
		Fail(c, http.StatusNotFound, "comment not found")
		return
	}

	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Reason == "" {
		Fail(c, http.StatusBadRequest, "report reason is required")
		return
	}

	h.fileReport(c, user, "comment", comment.ID, comment.Post.Pid, "a comment", req.Reason)
}

func (h *StoryHandler) fileReport(c *gin.Context, user *models.User, itemType string, itemID uint, itemPid, itemDesc, reason string) {
	report := models.Report{
		UserID:   user.ID,
		ItemType: itemType,
		ItemID:   itemID,
		ItemPid:  itemPid,
		Reason:   reason,
	}
	if err := db.DB.Create(&report).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	go func() {
		var admins []models.User
		if err := db.DB.Where("role = ?", "admin").Find(&admins).Error; err != nil {
			return
		}
		for _, admin := range admins {
			notification := models.Notification{
				UserID:  admin.ID,
				ActorID: &user.ID,
				Type:    models.NotificationTypeReport,
				Reason:  fmt.Sprintf("%s reported %s: %s", user.Username, itemDesc, reason),
			}
			db.DB.Create(&notification)
		}
	}()

	OK(c, nil)
}

// ListTopics returns the available forum topics.
func (h *StoryHandler) ListTopics(c *gin.Context) {
	var topics []models.Topic
	if err := db.DB.Order("id ASC").Find(&topics).Error; err != nil {
		Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

// unreadCount is exposed for handlers that want to echo the badge count.
func unreadCount(c *gin.Context) int64 {
	if count, ok := c.Get(middleware.UnreadCountKey); ok {
		return count.(int64)
	}
	return 0
}
