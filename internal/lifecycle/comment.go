package lifecycle

import (
	"fmt"
	"log/slog"

	"inkwell/internal/models"
)

// CommentState is one moderation stage of a comment. Rejected and both
// deleted stages are terminal.
type CommentState interface {
	Status() models.CommentStatus
	Approve(c *models.Comment) (Effect, error)
	Reject(c *models.Comment, reason string) (Effect, error)
	DeleteByUser(c *models.Comment) (Effect, error)
	DeleteByAdmin(c *models.Comment, reason string) (Effect, error)
}

// CommentStateFor resolves a persisted status code to its state.
func CommentStateFor(status models.CommentStatus) (CommentState, error) {
	switch status {
	case models.CommentStatusPending:
		return pendingComment{commentBase{models.CommentStatusPending}}, nil
	case models.CommentStatusApproved:
		return approvedComment{commentBase{models.CommentStatusApproved}}, nil
	case models.CommentStatusRejected:
		return terminalComment{commentBase{models.CommentStatusRejected}}, nil
	case models.CommentStatusUserDeleted:
		return terminalComment{commentBase{models.CommentStatusUserDeleted}}, nil
	case models.CommentStatusAdminDeleted:
		return terminalComment{commentBase{models.CommentStatusAdminDeleted}}, nil
	default:
		return nil, fmt.Errorf("%w: comment status %q", ErrUnknownStatus, status)
	}
}

// commentBase denies every transition; states embed it and override the
// transitions legal from their stage.
type commentBase struct {
	status models.CommentStatus
}

func (b commentBase) Status() models.CommentStatus { return b.status }

func (b commentBase) Approve(*models.Comment) (Effect, error) {
	return conflict(string(b.status), OpApprove)
}

func (b commentBase) Reject(*models.Comment, string) (Effect, error) {
	return conflict(string(b.status), OpReject)
}

func (b commentBase) DeleteByUser(*models.Comment) (Effect, error) {
	return conflict(string(b.status), OpDeleteByUser)
}

func (b commentBase) DeleteByAdmin(*models.Comment, string) (Effect, error) {
	return conflict(string(b.status), OpDeleteByAdmin)
}

type pendingComment struct{ commentBase }

func (pendingComment) Approve(c *models.Comment) (Effect, error) {
	c.Status = models.CommentStatusApproved
	return EffectTransitioned, nil
}

func (pendingComment) Reject(c *models.Comment, reason string) (Effect, error) {
	c.Status = models.CommentStatusRejected
	c.AuditReason = &reason
	return EffectTransitioned, nil
}

func (pendingComment) DeleteByUser(c *models.Comment) (Effect, error) {
	c.Status = models.CommentStatusUserDeleted
	return EffectTransitioned, nil
}

func (pendingComment) DeleteByAdmin(c *models.Comment, reason string) (Effect, error) {
	c.Status = models.CommentStatusAdminDeleted
	c.AuditReason = &reason
	return EffectTransitioned, nil
}

type approvedComment struct{ commentBase }

func (approvedComment) Approve(c *models.Comment) (Effect, error) {
	slog.Debug("approve no-op: comment already approved", "comment_id", c.ID)
	return EffectNone, nil
}

func (approvedComment) DeleteByUser(c *models.Comment) (Effect, error) {
	c.Status = models.CommentStatusUserDeleted
	return EffectTransitioned, nil
}

func (approvedComment) DeleteByAdmin(c *models.Comment, reason string) (Effect, error) {
	c.Status = models.CommentStatusAdminDeleted
	c.AuditReason = &reason
	return EffectTransitioned, nil
}

// terminalComment covers rejected and deleted comments: every transition
// fails with a state conflict.
type terminalComment struct{ commentBase }
