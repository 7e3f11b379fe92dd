package models

import "testing"

func TestPost(t *testing.T) {
	t.Run("NewPost defaults to committed", func(t *testing.T) {
		post := NewPost("/hello", "Hello", "EBK", "False", "1970-01-01", "body")

		if !post.Committed() {
			t.Error("new posts should be marked committed")
		}
		if post.ID() != 0 {
			t.Errorf("expected unsaved id 0, got %d", post.ID())
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name    string
			post    *Post
			wantErr bool
		}{
			{name: "valid", post: NewPost("/hello", "Hello", "EBK", "False", "1970-01-01", "")},
			{name: "missing url", post: NewPost("", "Hello", "EBK", "False", "1970-01-01", ""), wantErr: true},
			{name: "blank url", post: NewPost("   ", "Hello", "EBK", "False", "1970-01-01", ""), wantErr: true},
			{name: "blank title", post: NewPost("/hello", "", "EBK", "False", "1970-01-01", "")},
			{name: "blank author", post: NewPost("/hello", "Hello", "", "False", "1970-01-01", "")},
			{name: "blank date", post: NewPost("/hello", "Hello", "EBK", "", "", "")},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if err := tt.post.Validate(); (err != nil) != tt.wantErr {
					t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			})
		}
	})

	t.Run("IsDraft", func(t *testing.T) {
		tc := map[string]bool{
			"False": false,
			"True":  true,
			"true":  true,
			"1":     true,
			"0":     false,
			"":      false,
			"maybe": false,
		}

		for draft, want := range tc {
			post := NewPost("/x", "X", "EBK", draft, "1970-01-01", "")
			if got := post.IsDraft(); got != want {
				t.Errorf("IsDraft(%q) = %v, want %v", draft, got, want)
			}
			if post.Draft() != draft {
				t.Errorf("Draft() should keep stored text %q, got %q", draft, post.Draft())
			}
		}
	})

	t.Run("NewPostDetail never returns nil slices", func(t *testing.T) {
		post := NewPost("/hello", "Hello", "EBK", "False", "1970-01-01", "body")
		post.SetID(7)

		detail := NewPostDetail(post, nil, nil)
		if detail.ID != 7 || detail.URL != "/hello" {
			t.Errorf("unexpected detail: %+v", detail)
		}
		if detail.Categories == nil || detail.Tags == nil {
			t.Error("expected empty, non-nil taxonomy slices")
		}
	})
}
