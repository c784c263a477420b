package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"fresh-motors-web/internal/common/pagination"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/infra/notifier"
	"fresh-motors-web/internal/repository"
	"fresh-motors-web/internal/utils/text"
)

// excerptLength is the rune budget for derived card excerpts.
const excerptLength = 200

// relatedLimit is how many related articles a detail page shows.
const relatedLimit = 4

// Service provides article use cases. Repo is required; Comments and
// Specs are optional collaborators for detail page assembly and may be
// nil in contexts that never render a detail page.
type Service struct {
	Repo     repository.ArticleRepository
	Comments repository.CommentRepository
	Specs    repository.VehicleSpecRepository
	Logger   *slog.Logger

	// MediaBase is the public backend origin that relative media URLs
	// are rebased onto.
	MediaBase string

	// Events, when set, hears about articles going live. Channels log
	// their own delivery failures.
	Events notifier.Notifier
}

// Detail is everything an article page renders.
type Detail struct {
	Article  *entity.Article
	Comments []*entity.Comment
	Related  []*entity.Article
	Spec     *entity.VehicleSpec
}

// Page is one page of article cards plus pagination metadata.
type Page struct {
	Articles   []*entity.Article
	Pagination pagination.Metadata
}

// Detail loads an article by slug together with its approved comments,
// related articles and vehicle spec sheet. The article itself is
// required; the side sections fail soft, so a degraded backend yields a
// page without comments rather than an error page.
// Returns entity.ErrNotFound when no article carries the slug.
func (s *Service) Detail(ctx context.Context, slug string) (*Detail, error) {
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	art, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get article by slug: %w", err)
	}
	s.enrichArticle(art)

	d := &Detail{Article: art}

	g, gctx := errgroup.WithContext(ctx)

	if s.Comments != nil {
		g.Go(func() error {
			comments, err := s.Comments.ListApproved(gctx, art.ID)
			if err != nil {
				s.logSoftFailure("load comments", slug, err)
				return nil
			}
			d.Comments = comments
			return nil
		})
	}

	g.Go(func() error {
		related, err := s.Repo.Related(gctx, art.ID, relatedLimit)
		if err != nil {
			s.logSoftFailure("load related articles", slug, err)
			return nil
		}
		for _, r := range related {
			s.enrichCard(r)
		}
		d.Related = related
		return nil
	})

	if s.Specs != nil {
		g.Go(func() error {
			spec, err := s.Specs.GetByArticle(gctx, art.ID)
			if err != nil {
				// Most articles have no sheet; only real failures log.
				if !isNotFound(err) {
					s.logSoftFailure("load vehicle spec", slug, err)
				}
				return nil
			}
			d.Spec = spec
			return nil
		})
	}

	// 各セクションはエラーを飲み込むため Wait は常に nil を返す。
	_ = g.Wait()

	return d, nil
}

// Page loads one page of articles for index, category, tag and search
// surfaces.
func (s *Service) Page(ctx context.Context, filters repository.ArticleFilters, params pagination.Params) (*Page, error) {
	offset := pagination.CalculateOffset(params.Page, params.Limit)

	listing, err := s.Repo.List(ctx, filters, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	for _, a := range listing.Articles {
		s.enrichCard(a)
	}

	return &Page{
		Articles: listing.Articles,
		Pagination: pagination.Metadata{
			Total:      listing.Total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: pagination.CalculateTotalPages(listing.Total, params.Limit),
		},
	}, nil
}

// Get retrieves one article by ID for the admin editor, enriched the
// same way the public page sees it.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}
	art, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	s.enrichArticle(art)
	return art, nil
}

// Slugs returns every published slug with its last modification time.
func (s *Service) Slugs(ctx context.Context) ([]repository.ArticleRef, error) {
	refs, err := s.Repo.Slugs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list article slugs: %w", err)
	}
	return refs, nil
}

// Create validates editor input and submits a new article.
func (s *Service) Create(ctx context.Context, art *entity.Article) (*entity.Article, error) {
	if err := art.Validate(); err != nil {
		return nil, err
	}
	created, err := s.Repo.Create(ctx, art)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return created, nil
}

// Update validates editor input and submits changed article fields.
func (s *Service) Update(ctx context.Context, art *entity.Article) (*entity.Article, error) {
	if art.ID <= 0 {
		return nil, ErrInvalidArticleID
	}
	if err := art.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.Repo.Update(ctx, art)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return updated, nil
}

// Delete removes an article.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidArticleID
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// SetPublished flips the publish state of an article. Going live is
// announced to Events; unpublishing is not.
func (s *Service) SetPublished(ctx context.Context, id int64, published bool) error {
	if id <= 0 {
		return ErrInvalidArticleID
	}
	if err := s.Repo.SetPublished(ctx, id, published); err != nil {
		return fmt.Errorf("set article published: %w", err)
	}

	if published && s.Events != nil {
		_ = s.Events.Notify(ctx, notifier.Event{
			Kind:  notifier.KindArticlePublished,
			Title: fmt.Sprintf("Статья #%d", id),
			URL:   fmt.Sprintf("/admin/articles/%d/edit", id),
		})
	}

	return nil
}

// RecordView bumps the backend view counter. Handlers call this off the
// request path; a failed count is lost, not retried.
func (s *Service) RecordView(ctx context.Context, id int64) {
	if id <= 0 {
		return
	}
	if err := s.Repo.IncrementView(ctx, id); err != nil {
		if s.Logger != nil {
			s.Logger.Debug("view count increment failed",
				slog.Int64("article_id", id),
				slog.Any("error", err),
			)
		}
	}
}

// enrichArticle fills derived display fields of a full article: reading
// time when the backend omits it, an excerpt when none was written, and
// browser-resolvable media URLs.
func (s *Service) enrichArticle(a *entity.Article) {
	if a == nil {
		return
	}

	if a.ReadingTime == 0 && a.BodyHTML != "" {
		a.ReadingTime = ReadingTime(a.BodyHTML)
	}
	if a.Excerpt == "" && a.BodyHTML != "" {
		a.Excerpt = text.Excerpt(ExtractText(a.BodyHTML), excerptLength)
	}
	a.BodyHTML = RewriteBodyHTML(a.BodyHTML, s.MediaBase)
	a.CoverURL = FixMediaURL(a.CoverURL, s.MediaBase)
}

// enrichCard fills the subset of derived fields list cards need. Body
// HTML stays untouched because cards never render it.
func (s *Service) enrichCard(a *entity.Article) {
	if a == nil {
		return
	}
	if a.ReadingTime == 0 && a.BodyHTML != "" {
		a.ReadingTime = ReadingTime(a.BodyHTML)
	}
	if a.Excerpt == "" && a.BodyHTML != "" {
		a.Excerpt = text.Excerpt(ExtractText(a.BodyHTML), excerptLength)
	}
	a.CoverURL = FixMediaURL(a.CoverURL, s.MediaBase)
}

func (s *Service) logSoftFailure(what, slug string, err error) {
	if s.Logger == nil {
		return
	}
	s.Logger.Warn("detail section degraded",
		slog.String("section", what),
		slog.String("article_slug", slug),
		slog.Any("error", err),
	)
}

func isNotFound(err error) bool {
	return errors.Is(err, entity.ErrNotFound)
}
