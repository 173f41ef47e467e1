// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package lifecycle

import (
	"fmt"
	"log/slog"
	"time"

	"inkwell/internal/models"
)

// ArticleState is one lifecycle stage of an article. Every transition either
// mutates the article in place and reports EffectTransitioned, no-ops with
// EffectNone when already satisfied, or fails with a state conflict.
type ArticleState interface {
	Status() models.ArticleStatus
	Publish(a *models.Article) (Effect, error)
	Archive(a *models.Article) (Effect, error)
	Unarchive(a *models.Article) (Effect, error)
	DeleteByUser(a *models.Article) (Effect, error)
	DeleteByAdmin(a *models.Article, reason string) (Effect, error)
}

// ArticleStateFor resolves a persisted status code to its state.
func ArticleStateFor(status models.ArticleStatus) (ArticleState, error) {
	switch status {
	case models.ArticleStatusDraft:
		return newDraftArticle(), nil
	case models.ArticleStatusPublished:
		return newPublishedArticle(), nil
	case models.ArticleStatusArchived:
		return newArchivedArticle(), nil
	case models.ArticleStatusDeleted:
		return newDeletedArticle(), nil
	default:
		return nil, fmt.Errorf("%w: article status %q", ErrUnknownStatus, status)
	}
}

// articleBase denies every transition; states embed it and override the
// transitions legal from their stage.
type articleBase struct {
	status models.ArticleStatus
}

func (b articleBase) Status() models.ArticleStatus { return b.status }

func (b articleBase) Publish(*models.Article) (Effect, error) {
	return conflict(string(b.status), OpPublish)
}

func (b articleBase) Archive(*models.Article) (Effect, error) {
	return conflict(string(b.status), OpArchive)
}

func (b articleBase) Unarchive(*models.Article) (Effect, error) {
	return conflict(string(b.status), OpUnarchive)
}

func (b articleBase) DeleteByUser(*models.Article) (Effect, error) {
	return conflict(string(b.status), OpDeleteByUser)
}

func (b articleBase) DeleteByAdmin(*models.Article, string) (Effect, error) {
	return conflict(string(b.status), OpDeleteByAdmin)
}

// markArticleDeleted applies the terminal soft-delete mutation shared by
// the user and admin delete transitions.
func markArticleDeleted(a *models.Article, reason *string) (Effect, error) {
	a.Status = models.ArticleStatusDeleted
	a.AuditReason = reason
	return EffectTransitioned, nil
}

type draftArticle struct{ articleBase }

func newDraftArticle() draftArticle {
	return draftArticle{articleBase{models.ArticleStatusDraft}}
}

func (draftArticle) Publish(a *models.Article) (Effect, error) {
	now := time.Now()
	a.Status = models.ArticleStatusPublished
	if a.PublishedAt == nil {
		a.PublishedAt = &now
	}
	return EffectTransitioned, nil
}

func (draftArticle) DeleteByUser(a *models.Article) (Effect, error) {
	return markArticleDeleted(a, nil)
}

func (draftArticle) DeleteByAdmin(a *models.Article, reason string) (Effect, error) {
	return markArticleDeleted(a, &reason)
}

type publishedArticle struct{ articleBase }

func newPublishedArticle() publishedArticle {
	return publishedArticle{articleBase{models.ArticleStatusPublished}}
}

func (publishedArticle) Publish(a *models.Article) (Effect, error) {
	slog.Debug("publish no-op: article already published", "article_id", a.ID)
	return EffectNone, nil
}

func (publishedArticle) Archive(a *models.Article) (Effect, error) {
	a.Status = models.ArticleStatusArchived
	return EffectTransitioned, nil
}

func (publishedArticle) DeleteByUser(a *models.Article) (Effect, error) {
	return markArticleDeleted(a, nil)
}

func (publishedArticle) DeleteByAdmin(a *models.Article, reason string) (Effect, error) {
	return markArticleDeleted(a, &reason)
}

type archivedArticle struct{ articleBase }

func newArchivedArticle() archivedArticle {
	return archivedArticle{articleBase{models.ArticleStatusArchived}}
}

func (archivedArticle) Archive(a *models.Article) (Effect, error) {
	slog.Debug("archive no-op: article already archived", "article_id", a.ID)
	return EffectNone, nil
}

// Unarchive restores the article to published without touching the original
// publication timestamp.
func (archivedArticle) Unarchive(a *models.Article) (Effect, error) {
	a.Status = models.ArticleStatusPublished
	return EffectTransitioned, nil
}

func (archivedArticle) DeleteByUser(a *models.Article) (Effect, error) {
	return markArticleDeleted(a, nil)
}

func (archivedArticle) DeleteByAdmin(a *models.Article, reason string) (Effect, error) {
	return markArticleDeleted(a, &reason)
}

// deletedArticle is terminal: every transition fails.
type deletedArticle struct{ articleBase }

func newDeletedArticle() deletedArticle {
	return deletedArticle{articleBase{models.ArticleStatusDeleted}}
}
