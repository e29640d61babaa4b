package services

import (
	"errors"
	"fmt"

	"github.com/EmirhanSalman/dijital-pati-sub000/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Vote directions. 0 is never stored; a request for 0 means "clear my vote".
const (
	VoteUp     = 1
	VoteDown   = -1
	VoteRemove = 0
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrInvalidDirection = errors.New("invalid vote direction")
	ErrVoteConflict     = errors.New("vote changed concurrently, please retry")
)

// VoteLedger keeps at most one directional vote per (post, user) pair and
// derives a post's score as the sum of all directions. It holds no state
// of its own between calls; every decision is made against the votes
// table through single-row atomic statements, so concurrent requests for
// the same pair serialize on the (post_id, user_id) unique index instead
// of an application-level check-then-act.
type VoteLedger struct {
	db *gorm.DB
}

func NewVoteLedger(gdb *gorm.DB) *VoteLedger {
	return &VoteLedger{db: gdb}
}

// Apply transitions the caller's vote on a post:
//
//	absent + d   -> insert d
//	absent + 0   -> no-op
//	d + 0        -> delete
//	d + d        -> delete (casting the same direction again cancels it)
//	d + (-d)     -> flip to -d
//
// requested must be one of VoteUp, VoteDown, VoteRemove.
func (l *VoteLedger) Apply(postID, userID uint, requested int) error {
	if requested != VoteUp && requested != VoteDown && requested != VoteRemove {
		return ErrInvalidDirection
	}

	var count int64
	if err := l.db.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return fmt.Errorf("check post: %w", err)
	}
	if count == 0 {
		return ErrPostNotFound
	}

	if requested == VoteRemove {
		// Delete-if-present; deleting an absent row is a no-op.
		if err := l.db.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&models.Vote{}).Error; err != nil {
			return fmt.Errorf("remove vote: %w", err)
		}
		return nil
	}

	// The insert is the arbiter: the unique index on (post_id, user_id)
	// guarantees at most one row wins when two requests race. If the row
	// already exists, resolve the toggle with conditional single-row
	// writes; if both miss, the row changed under us and we retry once.
	for attempt := 0; attempt < 2; attempt++ {
		res := l.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(&models.Vote{
			PostID: postID,
			UserID: userID,
			Value:  requested,
		})
		if res.Error != nil {
			return fmt.Errorf("insert vote: %w", res.Error)
		}
		if res.RowsAffected == 1 {
			return nil // no prior vote, inserted
		}

		// Same direction already stored: toggle off.
		del := l.db.Where("post_id = ? AND user_id = ? AND value = ?", postID, userID, requested).
			Delete(&models.Vote{})
		if del.Error != nil {
			return fmt.Errorf("toggle vote off: %w", del.Error)
		}
		if del.RowsAffected == 1 {
			return nil
		}

		// Opposite direction stored: flip in place.
		upd := l.db.Model(&models.Vote{}).
			Where("post_id = ? AND user_id = ? AND value = ?", postID, userID, -requested).
			Update("value", requested)
		if upd.Error != nil {
			return fmt.Errorf("flip vote: %w", upd.Error)
		}
		if upd.RowsAffected == 1 {
			return nil
		}

		// The existing row vanished between statements (concurrent
		// toggle-off). One retry re-runs the insert path.
	}

	return ErrVoteConflict
}

// Score returns the sum of all vote directions for a post, 0 when no
// votes exist. It is always recomputed from the vote rows; there is no
// counter to drift.
func (l *VoteLedger) Score(postID uint) (int, error) {
	var score int
	err := l.db.Model(&models.Vote{}).
		Where("post_id = ?", postID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&score).Error
	if err != nil {
		return 0, fmt.Errorf("sum votes: %w", err)
	}
	return score, nil
}

// UserVote returns the caller's current direction on a post, or nil when
// no vote exists. nil and a stored value are deliberately distinct types
// so "no vote" can never be mistaken for a numeric zero.
func (l *VoteLedger) UserVote(postID, userID uint) (*int, error) {
	var vote models.Vote
	err := l.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load vote: %w", err)
	}
	value := vote.Value
	return &value, nil
}

// ScoresForPosts batch-computes scores for a post listing in one query.
func (l *VoteLedger) ScoresForPosts(postIDs []uint) (map[uint]int, error) {
	scores := make(map[uint]int, len(postIDs))
	if len(postIDs) == 0 {
		return scores, nil
	}

	type row struct {
		PostID uint
		Total  int
	}
	var rows []row
	err := l.db.Model(&models.Vote{}).
		Select("post_id, SUM(value) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("sum votes: %w", err)
	}

	for _, r := range rows {
		scores[r.PostID] = r.Total
	}
	return scores, nil
}
