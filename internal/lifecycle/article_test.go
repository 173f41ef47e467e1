package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

func draft() *models.Article {
	return &models.Article{ID: uuid.New(), Status: models.ArticleStatusDraft}
}

func mustArticleState(t *testing.T, status models.ArticleStatus) ArticleState {
	t.Helper()
	st, err := ArticleStateFor(status)
	if err != nil {
		t.Fatalf("ArticleStateFor(%q): %v", status, err)
	}
	return st
}

// TestPublishFromDraft verifies the draft → published transition sets the
// publication timestamp exactly once.
func TestPublishFromDraft(t *testing.T) {
	a := draft()
	st := mustArticleState(t, a.Status)

	eff, err := st.Publish(a)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if eff != EffectTransitioned {
		t.Error("expected EffectTransitioned")
	}
	if a.Status != models.ArticleStatusPublished {
		t.Errorf("status: got %q, want published", a.Status)
	}
	if a.PublishedAt == nil {
		t.Fatal("expected published_at to be set")
	}
}

// TestPublishIdempotent verifies that publishing an already-published
// article neither changes it nor reports a transition.
func TestPublishIdempotent(t *testing.T) {
	a := draft()
	first := mustArticleState(t, a.Status)
	if _, err := first.Publish(a); err != nil {
		t.Fatalf("first publish: %v", err)
	}
	publishedAt := *a.PublishedAt

	again := mustArticleState(t, a.Status)
	eff, err := again.Publish(a)
	if err != nil {
		t.Fatalf("second publish: %v", err)
	}
	if eff != EffectNone {
		t.Error("expected EffectNone on repeated publish")
	}
	if a.Status != models.ArticleStatusPublished {
		t.Errorf("status changed: %q", a.Status)
	}
	if !a.PublishedAt.Equal(publishedAt) {
		t.Errorf("published_at changed: %v -> %v", publishedAt, a.PublishedAt)
	}
}

// TestArchiveUnarchiveCycle verifies published → archived → published and
// that unarchive preserves the original publication timestamp.
func TestArchiveUnarchiveCycle(t *testing.T) {
	a := draft()
	if _, err := mustArticleState(t, a.Status).Publish(a); err != nil {
		t.Fatalf("publish: %v", err)
	}
	publishedAt := *a.PublishedAt
	time.Sleep(time.Millisecond)

	if _, err := mustArticleState(t, a.Status).Archive(a); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if a.Status != models.ArticleStatusArchived {
		t.Fatalf("status after archive: %q", a.Status)
	}

	// Second archive is a no-op.
	eff, err := mustArticleState(t, a.Status).Archive(a)
	if err != nil {
		t.Fatalf("repeated archive: %v", err)
	}
	if eff != EffectNone {
		t.Error("expected EffectNone on repeated archive")
	}

	if _, err := mustArticleState(t, a.Status).Unarchive(a); err != nil {
		t.Fatalf("unarchive: %v", err)
	}
	if a.Status != models.ArticleStatusPublished {
		t.Errorf("status after unarchive: %q", a.Status)
	}
	if !a.PublishedAt.Equal(publishedAt) {
		t.Errorf("unarchive changed published_at: %v -> %v", publishedAt, a.PublishedAt)
	}
}

// TestIllegalArticleTransitions verifies that forbidden jumps fail with a
// state conflict naming the current state and operation.
func TestIllegalArticleTransitions(t *testing.T) {
	tests := []struct {
		name   string
		status models.ArticleStatus
		invoke func(ArticleState, *models.Article) error
		op     string
	}{
		{
			name:   "draft cannot archive",
			status: models.ArticleStatusDraft,
			invoke: func(st ArticleState, a *models.Article) error { _, err := st.Archive(a); return err },
			op:     OpArchive,
		},
		{
			name:   "draft cannot unarchive",
			status: models.ArticleStatusDraft,
			invoke: func(st ArticleState, a *models.Article) error { _, err := st.Unarchive(a); return err },
			op:     OpUnarchive,
		},
		{
			name:   "published cannot unarchive",
			status: models.ArticleStatusPublished,
			invoke: func(st ArticleState, a *models.Article) error { _, err := st.Unarchive(a); return err },
			op:     OpUnarchive,
		},
		{
			name:   "archived cannot publish directly",
			status: models.ArticleStatusArchived,
			invoke: func(st ArticleState, a *models.Article) error { _, err := st.Publish(a); return err },
			op:     OpPublish,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &models.Article{ID: uuid.New(), Status: tt.status}
			st := mustArticleState(t, tt.status)

			err := tt.invoke(st, a)
			var sc *StateConflictError
			if !errors.As(err, &sc) {
				t.Fatalf("expected StateConflictError, got %v", err)
			}
			if sc.Current != string(tt.status) || sc.Operation != tt.op {
				t.Errorf("conflict: got (%q, %q), want (%q, %q)",
					sc.Current, sc.Operation, tt.status, tt.op)
			}
			if a.Status != tt.status {
				t.Errorf("status mutated on illegal transition: %q", a.Status)
			}
		})
	}
}

// TestDeletedArticleIsTerminal verifies that every transition fails once an
// article is deleted.
func TestDeletedArticleIsTerminal(t *testing.T) {
	a := draft()
	if _, err := mustArticleState(t, a.Status).DeleteByUser(a); err != nil {
		t.Fatalf("delete: %v", err)
	}
	st := mustArticleState(t, a.Status)

	ops := map[string]func() error{
		OpPublish:       func() error { _, err := st.Publish(a); return err },
		OpArchive:       func() error { _, err := st.Archive(a); return err },
		OpUnarchive:     func() error { _, err := st.Unarchive(a); return err },
		OpDeleteByUser:  func() error { _, err := st.DeleteByUser(a); return err },
		OpDeleteByAdmin: func() error { _, err := st.DeleteByAdmin(a, "x"); return err },
	}
	for op, invoke := range ops {
		if err := invoke(); !IsStateConflict(err) {
			t.Errorf("%s on deleted article: expected state conflict, got %v", op, err)
		}
	}
}

// TestDeleteByAdminSetsAuditReason verifies the audit reason is recorded
// on admin deletion and absent on user deletion.
func TestDeleteByAdminSetsAuditReason(t *testing.T) {
	a := draft()
	if _, err := mustArticleState(t, a.Status).DeleteByAdmin(a, "tos violation"); err != nil {
		t.Fatalf("delete by admin: %v", err)
	}
	if a.AuditReason == nil || *a.AuditReason != "tos violation" {
		t.Errorf("audit reason: got %v, want %q", a.AuditReason, "tos violation")
	}

	b := draft()
	if _, err := mustArticleState(t, b.Status).DeleteByUser(b); err != nil {
		t.Fatalf("delete by user: %v", err)
	}
	if b.AuditReason != nil {
		t.Errorf("audit reason should be absent on user delete, got %q", *b.AuditReason)
	}
}

// TestArticleStateForUnknown verifies unknown status codes resolve to an
// error rather than a state.
func TestArticleStateForUnknown(t *testing.T) {
	if _, err := ArticleStateFor(models.ArticleStatus("bogus")); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
}
