package embedder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// ArticleSource loads the article text to embed.
type ArticleSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
}

// VectorStore persists generated vectors.
type VectorStore interface {
	UpsertVector(ctx context.Context, articleID uuid.UUID, vector []float32) error
}

// Service generates and persists an embedding for an article. It is the
// write path behind the embedding-trigger event handler; read paths go
// straight to the embeddings store.
type Service struct {
	client   *Client
	articles ArticleSource
	vectors  VectorStore
	logger   *slog.Logger
}

// NewService wires the embedding write path.
func NewService(client *Client, articles ArticleSource, vectors VectorStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, articles: articles, vectors: vectors, logger: logger}
}

// RequestEmbedding fetches the article, embeds its title and summary, and
// stores the vector. Callers bound the context; exceeding it is an error
// like any other and the caller decides whether to swallow it.
func (s *Service) RequestEmbedding(ctx context.Context, articleID uuid.UUID) error {
	if !s.client.IsConfigured() {
		s.logger.Debug("embedding skipped: service not configured", "article_id", articleID)
		return nil
	}

	article, err := s.articles.FindByID(ctx, articleID)
	if err != nil {
		return fmt.Errorf("load article %s: %w", articleID, err)
	}
	if article == nil {
		return fmt.Errorf("article %s not found", articleID)
	}

	// Title plus summary is enough signal for similarity and stays well
	// under typical input limits.
	input := article.Title + "\n\n" + article.Summary

	vector, err := s.client.Embed(ctx, input)
	if err != nil {
		return fmt.Errorf("embed article %s: %w", articleID, err)
	}

	if err := s.vectors.UpsertVector(ctx, articleID, vector); err != nil {
		return fmt.Errorf("store vector for %s: %w", articleID, err)
	}

	s.logger.Info("embedding stored", "article_id", articleID, "dimensions", len(vector))
	return nil
}
