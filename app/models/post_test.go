package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostVisibleAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	published := Category{Publication: Publication{IsPublished: true}}
	hidden := Category{Publication: Publication{IsPublished: false}}

	tests := []struct {
		name string
		post Post
		want bool
	}{
		{
			name: "published post in published category",
			post: Post{
				PubDate:     now.Add(-time.Hour),
				Category:    &published,
				Publication: Publication{IsPublished: true},
			},
			want: true,
		},
		{
			name: "pub date equal to now counts as visible",
			post: Post{
				PubDate:     now,
				Category:    &published,
				Publication: Publication{IsPublished: true},
			},
			want: true,
		},
		{
			name: "future pub date hides the post",
			post: Post{
				PubDate:     now.Add(time.Minute),
				Category:    &published,
				Publication: Publication{IsPublished: true},
			},
			want: false,
		},
		{
			name: "unpublished post is hidden",
			post: Post{
				PubDate:     now.Add(-time.Hour),
				Category:    &published,
				Publication: Publication{IsPublished: false},
			},
			want: false,
		},
		{
			name: "post without category is never visible",
			post: Post{
				PubDate:     now.Add(-time.Hour),
				Category:    nil,
				Publication: Publication{IsPublished: true},
			},
			want: false,
		},
		{
			name: "post in hidden category is hidden",
			post: Post{
				PubDate:     now.Add(-time.Hour),
				Category:    &hidden,
				Publication: Publication{IsPublished: true},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.post.VisibleAt(now))
		})
	}
}

func TestPostBecomesVisibleOncePubDatePasses(t *testing.T) {
	category := Category{Publication: Publication{IsPublished: true}}
	post := Post{
		PubDate:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Category:    &category,
		Publication: Publication{IsPublished: true},
	}

	assert.False(t, post.VisibleAt(post.PubDate.Add(-time.Second)))
	assert.True(t, post.VisibleAt(post.PubDate))
	assert.True(t, post.VisibleAt(post.PubDate.Add(time.Second)))
}

func TestPostOwnerID(t *testing.T) {
	post := Post{AuthorID: 42}
	assert.Equal(t, uint(42), post.OwnerID())
}
