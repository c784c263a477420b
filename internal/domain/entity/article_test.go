package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestArticle_Struct(t *testing.T) {
	now := time.Now()
	published := now.Add(-time.Hour)

	article := Article{
		ID:          1,
		Slug:        "bmw-m5-review",
		Title:       "BMW M5 Review",
		BodyHTML:    "<p>body</p>",
		IsPublished: true,
		PublishedAt: &published,
		CreatedAt:   now,
		UpdatedAt:   now,
		ViewCount:   120,
	}

	assert.Equal(t, int64(1), article.ID)
	assert.Equal(t, "bmw-m5-review", article.Slug)
	assert.Equal(t, "BMW M5 Review", article.Title)
	assert.Equal(t, "<p>body</p>", article.BodyHTML)
	assert.True(t, article.IsPublished)
	assert.Equal(t, published, *article.PublishedAt)
	assert.Equal(t, int64(120), article.ViewCount)
}

func TestArticle_DisplaySource(t *testing.T) {
	yes := true
	no := false

	tests := []struct {
		name    string
		article Article
		want    bool
	}{
		{
			name:    "no source name",
			article: Article{},
			want:    false,
		},
		{
			name:    "source name without flag",
			article: Article{SourceName: "Autocar"},
			want:    true,
		},
		{
			name:    "flag explicitly true",
			article: Article{SourceName: "Autocar", ShowSource: &yes},
			want:    true,
		},
		{
			name:    "flag explicitly false",
			article: Article{SourceName: "Autocar", ShowSource: &no},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.article.DisplaySource())
		})
	}
}

func TestArticle_TagIDs(t *testing.T) {
	article := Article{
		Tags: []Tag{
			{ID: 3, Name: "BMW"},
			{ID: 7, Name: "Sedan"},
		},
	}

	assert.Equal(t, []int64{3, 7}, article.TagIDs())

	var empty Article
	assert.Nil(t, empty.TagIDs())
}

func TestArticle_Validate(t *testing.T) {
	tests := []struct {
		name    string
		article Article
		wantErr bool
	}{
		{
			name:    "valid",
			article: Article{Title: "Title", Slug: "title"},
			wantErr: false,
		},
		{
			name:    "missing title",
			article: Article{Slug: "title"},
			wantErr: true,
		},
		{
			name:    "bad slug",
			article: Article{Title: "Title", Slug: "Not A Slug"},
			wantErr: true,
		},
		{
			name:    "bad source url",
			article: Article{Title: "Title", SourceURL: "ftp://example.com/a"},
			wantErr: true,
		},
		{
			name:    "empty slug allowed, backend generates one",
			article: Article{Title: "Title"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.article.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
