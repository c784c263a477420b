package repository

import (
	"context"

	"fresh-motors-web/internal/domain/entity"
)

type TagRepository interface {
	List(ctx context.Context) ([]*entity.Tag, error)
	Get(ctx context.Context, id int64) (*entity.Tag, error)
	Create(ctx context.Context, tag *entity.Tag) (*entity.Tag, error)
	Update(ctx context.Context, tag *entity.Tag) (*entity.Tag, error)
	Delete(ctx context.Context, id int64) error
}

type TagGroupRepository interface {
	List(ctx context.Context) ([]*entity.TagGroup, error)
	Create(ctx context.Context, group *entity.TagGroup) (*entity.TagGroup, error)
	Update(ctx context.Context, group *entity.TagGroup) (*entity.TagGroup, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
}
