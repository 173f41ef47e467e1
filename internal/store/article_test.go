package store

import (
	"context"
	"testing"

	"inkwell/internal/models"
)

func TestArticleCreateAndFind(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	articles := NewArticleStore(db)
	ctx := context.Background()

	author, err := users.Create(ctx, "store-article@test.local", "password123", "store-article-author", models.RoleAuthor)
	if err != nil {
		t.Fatalf("create author: %v", err)
	}
	t.Cleanup(func() {
		cleanArticles(t, db, "store-test-article")
		cleanUsers(t, db, "store-article@test.local")
	})

	created, err := articles.Create(ctx, &models.Article{
		AuthorID:     author.ID,
		Title:        "Store Test Article",
		Slug:         "store-test-article",
		RawBody:      "# Hello\n\nBody text.",
		RenderedBody: "<h1>Hello</h1>\n<p>Body text.</p>",
		Summary:      "Body text.",
		Outline:      []models.OutlineEntry{{Level: 1, Text: "Hello", ID: "hello"}},
		Status:       models.ArticleStatusDraft,
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	if created.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected generated id")
	}

	found, err := articles.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find article: %v", err)
	}
	if found == nil {
		t.Fatal("expected article, got nil")
	}
	if found.Status != models.ArticleStatusDraft {
		t.Errorf("status = %q, want draft", found.Status)
	}
	if len(found.Outline) != 1 || found.Outline[0].ID != "hello" {
		t.Errorf("outline did not round-trip: %+v", found.Outline)
	}

	// Drafts are not visible by slug.
	bySlug, err := articles.FindBySlug(ctx, "store-test-article")
	if err != nil {
		t.Fatalf("find by slug: %v", err)
	}
	if bySlug != nil {
		t.Error("draft should not be found by slug")
	}
}

func TestArticleUpdateConflict(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	articles := NewArticleStore(db)
	ctx := context.Background()

	author, err := users.Create(ctx, "store-conflict@test.local", "password123", "store-conflict-author", models.RoleAuthor)
	if err != nil {
		t.Fatalf("create author: %v", err)
	}
	t.Cleanup(func() {
		cleanArticles(t, db, "store-conflict-article")
		cleanUsers(t, db, "store-conflict@test.local")
	})

	created, err := articles.Create(ctx, &models.Article{
		AuthorID: author.ID,
		Title:    "Conflict",
		Slug:     "store-conflict-article",
		RawBody:  "one",
		Status:   models.ArticleStatusDraft,
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}

	// Two loads of the same row; the second write loses.
	first := *created
	second := *created

	first.RawBody = "two"
	if err := articles.Update(ctx, &first); err != nil {
		t.Fatalf("first update: %v", err)
	}

	second.RawBody = "three"
	if err := articles.Update(ctx, &second); err != ErrConflict {
		t.Errorf("stale update err = %v, want ErrConflict", err)
	}

	// The winning write refreshed its updated_at and can write again.
	first.RawBody = "four"
	if err := articles.Update(ctx, &first); err != nil {
		t.Errorf("follow-up update: %v", err)
	}
}
