package models

import "testing"

// TestArticleIsPublished verifies that IsPublished returns true only for
// the "published" status.
func TestArticleIsPublished(t *testing.T) {
	tests := []struct {
		name   string
		status ArticleStatus
		want   bool
	}{
		{name: "published", status: ArticleStatusPublished, want: true},
		{name: "draft", status: ArticleStatusDraft, want: false},
		{name: "archived", status: ArticleStatusArchived, want: false},
		{name: "deleted", status: ArticleStatusDeleted, want: false},
		{name: "empty status", status: ArticleStatus(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Article{Status: tt.status}
			if got := a.IsPublished(); got != tt.want {
				t.Errorf("Article{Status: %q}.IsPublished() = %v, want %v",
					tt.status, got, tt.want)
			}
		})
	}
}

// TestArticleIsDeleted verifies soft-delete detection.
func TestArticleIsDeleted(t *testing.T) {
	a := &Article{Status: ArticleStatusDeleted}
	if !a.IsDeleted() {
		t.Error("expected IsDeleted() = true for deleted status")
	}
	a.Status = ArticleStatusPublished
	if a.IsDeleted() {
		t.Error("expected IsDeleted() = false for published status")
	}
}
