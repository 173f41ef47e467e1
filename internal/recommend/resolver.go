// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package recommend finds articles related to a given article. The resolver
// tries three tiers in fixed priority order — vector similarity, shared
// category, global recency — and each tier is independently guarded: an
// error logs and falls through to the next tier. The caller always gets a
// list, possibly empty, never an error.
package recommend

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// ArticleReader is the persistence read path the resolver depends on.
type ArticleReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Article, error)
	ListPublishedExcept(ctx context.Context, exclude uuid.UUID, limit int) ([]models.Article, error)
	ListPublishedByCategoryExcept(ctx context.Context, categoryID, exclude uuid.UUID, limit int) ([]models.Article, error)
}

// ArticleVector pairs an article id with its similarity vector.
type ArticleVector struct {
	ArticleID uuid.UUID
	Vector    []float32
}

// VectorReader is the embeddings read path.
type VectorReader interface {
	VectorOf(ctx context.Context, articleID uuid.UUID) ([]float32, error)
	PublishedVectors(ctx context.Context) ([]ArticleVector, error)
}

// ResultCache memoizes resolver output per article. Implementations are
// best-effort; a miss or failure just means the tiers run again.
type ResultCache interface {
	Get(ctx context.Context, articleID uuid.UUID, limit int) ([]models.Article, bool)
	Set(ctx context.Context, articleID uuid.UUID, limit int, items []models.Article)
}

// Resolver resolves related articles with tiered degradation.
type Resolver struct {
	articles ArticleReader
	vectors  VectorReader
	cache    ResultCache // may be nil
	logger   *slog.Logger
}

// New creates a resolver. cache may be nil to disable memoization.
func New(articles ArticleReader, vectors VectorReader, cache ResultCache, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{articles: articles, vectors: vectors, cache: cache, logger: logger}
}

// FindRelated returns up to limit articles related to the given one,
// nearest first. It never returns an error: the worst case is an empty
// slice after all three tiers came up dry.
func (r *Resolver) FindRelated(ctx context.Context, articleID uuid.UUID, limit int) []models.Article {
	if limit <= 0 {
		return []models.Article{}
	}

	if r.cache != nil {
		if items, ok := r.cache.Get(ctx, articleID, limit); ok {
			return items
		}
	}

	items := r.bySimilarity(ctx, articleID, limit)
	if items == nil {
		items = r.byCategory(ctx, articleID, limit)
	}
	if items == nil {
		items = r.byRecency(ctx, articleID, limit)
	}
	if items == nil {
		items = []models.Article{}
	}

	if r.cache != nil && len(items) > 0 {
		r.cache.Set(ctx, articleID, limit, items)
	}
	return items
}

// bySimilarity is tier 1: order published articles by vector distance to
// the item's own vector. Returns nil to signal fall-through.
func (r *Resolver) bySimilarity(ctx context.Context, articleID uuid.UUID, limit int) []models.Article {
	self, err := r.vectors.VectorOf(ctx, articleID)
	if err != nil {
		r.logger.Warn("recommendation tier 1 failed: load vector",
			"article_id", articleID, "error", err)
		return nil
	}
	if self == nil {
		return nil
	}

	candidates, err := r.vectors.PublishedVectors(ctx)
	if err != nil {
		r.logger.Warn("recommendation tier 1 failed: load candidates",
			"article_id", articleID, "error", err)
		return nil
	}

	ranked := rankBySimilarity(self, candidates, articleID, limit)
	if len(ranked) == 0 {
		return nil
	}

	items, err := r.articles.FindByIDs(ctx, ranked)
	if err != nil {
		r.logger.Warn("recommendation tier 1 failed: load articles",
			"article_id", articleID, "error", err)
		return nil
	}
	if len(items) == 0 {
		return nil
	}
	return items
}

// byCategory is tier 2: recent articles sharing the item's category.
func (r *Resolver) byCategory(ctx context.Context, articleID uuid.UUID, limit int) []models.Article {
	self, err := r.articles.FindByID(ctx, articleID)
	if err != nil {
		r.logger.Warn("recommendation tier 2 failed: load article",
			"article_id", articleID, "error", err)
		return nil
	}
	if self == nil || self.CategoryID == nil {
		return nil
	}

	items, err := r.articles.ListPublishedByCategoryExcept(ctx, *self.CategoryID, articleID, limit)
	if err != nil {
		r.logger.Warn("recommendation tier 2 failed: list category",
			"article_id", articleID, "category_id", *self.CategoryID, "error", err)
		return nil
	}
	if len(items) == 0 {
		return nil
	}
	return items
}

// byRecency is tier 3: the most recent publicly visible articles.
func (r *Resolver) byRecency(ctx context.Context, articleID uuid.UUID, limit int) []models.Article {
	items, err := r.articles.ListPublishedExcept(ctx, articleID, limit)
	if err != nil {
		r.logger.Warn("recommendation tier 3 failed: list recent",
			"article_id", articleID, "error", err)
		return nil
	}
	return items
}
