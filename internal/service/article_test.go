package service

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"inkwell/internal/events"
	"inkwell/internal/lifecycle"
	"inkwell/internal/models"
)

type fakeArticles struct {
	byID    map[uuid.UUID]*models.Article
	updated int
}

func newFakeArticles() *fakeArticles {
	return &fakeArticles{byID: make(map[uuid.UUID]*models.Article)}
}

func (f *fakeArticles) FindByID(_ context.Context, id uuid.UUID) (*models.Article, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeArticles) Create(_ context.Context, a *models.Article) (*models.Article, error) {
	a.ID = uuid.New()
	stored := *a
	f.byID[a.ID] = &stored
	cp := stored
	return &cp, nil
}

func (f *fakeArticles) Update(_ context.Context, a *models.Article) error {
	stored := *a
	f.byID[a.ID] = &stored
	f.updated++
	return nil
}

func (f *fakeArticles) add(a *models.Article) *models.Article {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.byID[a.ID] = a
	return a
}

type fakeBus struct {
	published []events.Event
}

func (f *fakeBus) Publish(ev events.Event) {
	f.published = append(f.published, ev)
}

func (f *fakeBus) ofType(t events.Type) []events.Event {
	var out []events.Event
	for _, ev := range f.published {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestArticleCreateRunsPipeline(t *testing.T) {
	articles := newFakeArticles()
	bus := &fakeBus{}
	svc := NewArticleService(articles, bus, testLogger())
	author := uuid.New()

	a, err := svc.Create(context.Background(), author, ArticleInput{
		Title:   "My First Post",
		RawBody: "# Intro\n\nSome text here. <script>alert(1)</script>",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Status != models.ArticleStatusDraft {
		t.Errorf("status = %q, want draft", a.Status)
	}
	if a.Slug != "my-first-post" {
		t.Errorf("slug = %q", a.Slug)
	}
	if strings.Contains(a.RenderedBody, "<script>") {
		t.Error("rendered body kept script tag")
	}
	if len(a.Outline) != 1 || a.Outline[0].Text != "Intro" {
		t.Errorf("outline = %+v", a.Outline)
	}
	if a.Summary == "" {
		t.Error("summary not generated")
	}
	if len(bus.published) != 0 {
		t.Errorf("draft create published %d events", len(bus.published))
	}
}

func TestArticlePublishEmitsOnce(t *testing.T) {
	articles := newFakeArticles()
	bus := &fakeBus{}
	svc := NewArticleService(articles, bus, testLogger())
	author := uuid.New()

	a := articles.add(&models.Article{AuthorID: author, Status: models.ArticleStatusDraft})

	pub, err := svc.Publish(context.Background(), a.ID, author)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if pub.Status != models.ArticleStatusPublished {
		t.Errorf("status = %q", pub.Status)
	}
	if pub.PublishedAt == nil {
		t.Error("PublishedAt not set")
	}
	if n := len(bus.ofType(events.TypeArticlePublished)); n != 1 {
		t.Fatalf("published events = %d, want 1", n)
	}

	// Second publish is a no-op: no persist, no event.
	before := articles.updated
	again, err := svc.Publish(context.Background(), a.ID, author)
	if err != nil {
		t.Fatalf("re-publish: %v", err)
	}
	if !again.PublishedAt.Equal(*pub.PublishedAt) {
		t.Error("re-publish changed PublishedAt")
	}
	if articles.updated != before {
		t.Error("re-publish persisted")
	}
	if n := len(bus.ofType(events.TypeArticlePublished)); n != 1 {
		t.Errorf("published events after re-publish = %d, want 1", n)
	}
}

func TestArticleArchiveCycle(t *testing.T) {
	articles := newFakeArticles()
	bus := &fakeBus{}
	svc := NewArticleService(articles, bus, testLogger())
	author := uuid.New()
	ctx := context.Background()

	a := articles.add(&models.Article{AuthorID: author, Status: models.ArticleStatusDraft})
	if _, err := svc.Publish(ctx, a.ID, author); err != nil {
		t.Fatalf("publish: %v", err)
	}
	firstPublished := *articles.byID[a.ID].PublishedAt

	if _, err := svc.Archive(ctx, a.ID, author); err != nil {
		t.Fatalf("archive: %v", err)
	}
	back, err := svc.Unarchive(ctx, a.ID, author)
	if err != nil {
		t.Fatalf("unarchive: %v", err)
	}
	if back.Status != models.ArticleStatusPublished {
		t.Errorf("status after unarchive = %q", back.Status)
	}
	if !back.PublishedAt.Equal(firstPublished) {
		t.Error("unarchive changed the original publication time")
	}
	if n := len(bus.ofType(events.TypeArticlePublished)); n != 1 {
		t.Errorf("unarchive emitted a publish event, total = %d", n)
	}
}

func TestArticleIllegalTransition(t *testing.T) {
	articles := newFakeArticles()
	svc := NewArticleService(articles, &fakeBus{}, testLogger())
	author := uuid.New()

	a := articles.add(&models.Article{AuthorID: author, Status: models.ArticleStatusDraft})

	_, err := svc.Archive(context.Background(), a.ID, author)
	if !lifecycle.IsStateConflict(err) {
		t.Fatalf("archive draft err = %v, want state conflict", err)
	}
	if articles.updated != 0 {
		t.Error("failed transition persisted")
	}
}

func TestArticleUpdateForbiddenForOtherAuthors(t *testing.T) {
	articles := newFakeArticles()
	bus := &fakeBus{}
	svc := NewArticleService(articles, bus, testLogger())
	author := uuid.New()

	a := articles.add(&models.Article{
		AuthorID: author,
		Status:   models.ArticleStatusPublished,
		RawBody:  "original",
	})

	_, err := svc.Update(context.Background(), a.ID, uuid.New(), ArticleInput{Title: "x", RawBody: "y"})
	if err != ErrForbidden {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if articles.byID[a.ID].RawBody != "original" {
		t.Error("rejected update mutated stored article")
	}
}

func TestArticleEditPublishedEmitsEdited(t *testing.T) {
	articles := newFakeArticles()
	bus := &fakeBus{}
	svc := NewArticleService(articles, bus, testLogger())
	author := uuid.New()

	a := articles.add(&models.Article{
		AuthorID: author,
		Status:   models.ArticleStatusPublished,
		Slug:     "stable-slug",
	})

	updated, err := svc.Update(context.Background(), a.ID, author, ArticleInput{
		Title:   "New Title",
		RawBody: "new body",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "stable-slug" {
		t.Errorf("published slug changed to %q", updated.Slug)
	}
	if n := len(bus.ofType(events.TypeArticleEdited)); n != 1 {
		t.Errorf("edited events = %d, want 1", n)
	}
}

func TestArticleDeleteIsTerminal(t *testing.T) {
	articles := newFakeArticles()
	svc := NewArticleService(articles, &fakeBus{}, testLogger())
	author := uuid.New()
	ctx := context.Background()

	a := articles.add(&models.Article{AuthorID: author, Status: models.ArticleStatusPublished})

	if _, err := svc.DeleteByUser(ctx, a.ID, author); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if articles.byID[a.ID].Status != models.ArticleStatusDeleted {
		t.Errorf("status = %q", articles.byID[a.ID].Status)
	}

	// Repeat delete fails rather than no-ops.
	if _, err := svc.DeleteByUser(ctx, a.ID, author); !lifecycle.IsStateConflict(err) {
		t.Errorf("second delete err = %v, want state conflict", err)
	}
	// So does editing.
	if _, err := svc.Update(ctx, a.ID, author, ArticleInput{Title: "t", RawBody: "b"}); !lifecycle.IsStateConflict(err) {
		t.Errorf("edit deleted err = %v, want state conflict", err)
	}
}

func TestArticleAdminDeleteRecordsReason(t *testing.T) {
	articles := newFakeArticles()
	svc := NewArticleService(articles, &fakeBus{}, testLogger())

	a := articles.add(&models.Article{AuthorID: uuid.New(), Status: models.ArticleStatusPublished})

	if _, err := svc.DeleteByAdmin(context.Background(), a.ID, "tos violation"); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	got := articles.byID[a.ID]
	if got.AuditReason == nil || *got.AuditReason != "tos violation" {
		t.Errorf("audit reason = %v", got.AuditReason)
	}
}

func TestArticleLikeRequiresPublished(t *testing.T) {
	articles := newFakeArticles()
	bus := &fakeBus{}
	svc := NewArticleService(articles, bus, testLogger())
	reader := uuid.New()
	ctx := context.Background()

	draft := articles.add(&models.Article{AuthorID: uuid.New(), Status: models.ArticleStatusDraft})
	if err := svc.Like(ctx, draft.ID, reader); !lifecycle.IsStateConflict(err) {
		t.Errorf("like draft err = %v, want state conflict", err)
	}

	live := articles.add(&models.Article{AuthorID: uuid.New(), Status: models.ArticleStatusPublished})
	if err := svc.Like(ctx, live.ID, reader); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := svc.Unlike(ctx, live.ID, reader); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if len(bus.ofType(events.TypeArticleLiked)) != 1 || len(bus.ofType(events.TypeArticleUnliked)) != 1 {
		t.Errorf("like/unlike events = %d/%d", len(bus.ofType(events.TypeArticleLiked)), len(bus.ofType(events.TypeArticleUnliked)))
	}
}
