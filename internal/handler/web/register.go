package web

import (
	"log/slog"
	"net/http"

	"fresh-motors-web/internal/cache"
	"fresh-motors-web/internal/common/pagination"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/session"
	"fresh-motors-web/internal/seo"
	accUC "fresh-motors-web/internal/usecase/account"
	anaUC "fresh-motors-web/internal/usecase/analytics"
	artUC "fresh-motors-web/internal/usecase/article"
	engUC "fresh-motors-web/internal/usecase/engagement"
	genUC "fresh-motors-web/internal/usecase/generation"
	setUC "fresh-motors-web/internal/usecase/sitesettings"
	subUC "fresh-motors-web/internal/usecase/subscriber"
	tagUC "fresh-motors-web/internal/usecase/tagview"
	specUC "fresh-motors-web/internal/usecase/vehiclespec"
)

// Site bundles everything the public page handlers draw on. One instance
// is shared by all handlers; registration fans it out.
type Site struct {
	Render     *Renderer
	Articles   *artUC.Service
	Engagement *engUC.Service
	Settings   *setUC.Service
	Categories *cache.Entry[[]*entity.Category]
	SEO        *seo.Builder
	Sitemap    *cache.Entry[[]byte]
	Feed       *cache.Entry[[]byte]
	Pagination pagination.Config
	Logger     *slog.Logger
}

// Admin bundles the services behind the /admin area.
type Admin struct {
	Render      *Renderer
	Sessions    *session.Manager
	Accounts    *accUC.Service
	Articles    *artUC.Service
	Tags        *tagUC.Service
	Subscribers *subUC.Service
	Engagement  *engUC.Service
	Analytics   *anaUC.Service
	Generation  *genUC.Service
	Specs       *specUC.Service
	Settings    *setUC.Service
	Categories  *cache.Entry[[]*entity.Category]
	Pagination  pagination.Config
	Logger      *slog.Logger
}

// RegisterPublic mounts the reader-facing pages, the SEO documents and
// the embedded static assets. All public routes are GET; the interactive
// bits on these pages talk to /api/ui via fetch.
func RegisterPublic(mux *http.ServeMux, s *Site) {
	mux.Handle("GET /{$}", HomeHandler{s})
	mux.Handle("GET /news", NewsHandler{s})
	mux.Handle("GET /news/{slug}", ArticleHandler{s})
	mux.Handle("GET /category/{slug}", CategoryHandler{s})
	mux.Handle("GET /tag/{slug}", TagHandler{s})
	mux.Handle("GET /search", SearchHandler{s})
	mux.Handle("GET /favorites", FavoritesHandler{s})
	mux.Handle("GET /subscribe/confirm", SubscribeConfirmHandler{s})
	mux.Handle("GET /unsubscribe", UnsubscribeHandler{s})

	mux.Handle("GET /robots.txt", RobotsHandler{s})
	mux.Handle("GET /sitemap.xml", SitemapHandler{s})
	mux.Handle("GET /feed.xml", FeedHandler{s})

	mux.Handle("GET /static/", StaticHandler())

	// 登録済みパターンに一致しないパスは描画された404ページへ
	mux.Handle("/", NotFoundHandler{s})
}

// RegisterAdmin mounts the admin area. The session middleware in front of
// these routes guarantees a verified editor session in the context; only
// the login page is reachable without one.
func RegisterAdmin(mux *http.ServeMux, a *Admin) {
	mux.Handle("GET  /admin/login", LoginPageHandler{a})
	mux.Handle("POST /admin/login", LoginSubmitHandler{a})
	mux.Handle("POST /admin/logout", LogoutHandler{a})

	mux.Handle("GET  /admin", DashboardHandler{a})

	mux.Handle("GET  /admin/articles", AdminArticlesHandler{a})
	mux.Handle("GET  /admin/articles/new", ArticleNewHandler{a})
	mux.Handle("POST /admin/articles", ArticleCreateHandler{a})
	mux.Handle("GET  /admin/articles/{id}/edit", ArticleEditHandler{a})
	mux.Handle("POST /admin/articles/{id}", ArticleUpdateHandler{a})
	mux.Handle("POST /admin/articles/{id}/delete", ArticleDeleteHandler{a})
	mux.Handle("POST /admin/articles/{id}/publish", ArticlePublishHandler{a})

	mux.Handle("GET  /admin/articles/{id}/specs", SpecFormHandler{a})
	mux.Handle("POST /admin/articles/{id}/specs", SpecSaveHandler{a})
	mux.Handle("POST /admin/articles/{id}/specs/extract", SpecExtractHandler{a})

	mux.Handle("GET  /admin/generate", GenerateFormHandler{a})
	mux.Handle("POST /admin/generate", GenerateSubmitHandler{a})
	mux.Handle("GET  /admin/generate/{taskID}", GenerateProgressHandler{a})

	mux.Handle("GET  /admin/tags", AdminTagsHandler{a})
	mux.Handle("POST /admin/tags", TagCreateHandler{a})
	mux.Handle("POST /admin/tags/{id}", TagUpdateHandler{a})
	mux.Handle("POST /admin/tags/{id}/delete", TagDeleteHandler{a})
	mux.Handle("POST /admin/tag-groups", GroupCreateHandler{a})
	mux.Handle("POST /admin/tag-groups/{id}", GroupUpdateHandler{a})
	mux.Handle("POST /admin/tag-groups/{id}/delete", GroupDeleteHandler{a})

	mux.Handle("GET  /admin/subscribers", SubscribersHandler{a})
	mux.Handle("GET  /admin/subscribers/export", SubscribersExportHandler{a})
	mux.Handle("POST /admin/subscribers/{id}/delete", SubscriberDeleteHandler{a})

	mux.Handle("GET  /admin/comments", CommentsModerationHandler{a})
	mux.Handle("POST /admin/comments/{id}/approve", CommentApproveHandler{a})
	mux.Handle("POST /admin/comments/{id}/delete", CommentDeleteHandler{a})

	mux.Handle("GET  /admin/settings", SettingsFormHandler{a})
	mux.Handle("POST /admin/settings", SettingsSaveHandler{a})

	mux.Handle("GET  /admin/profile", ProfileFormHandler{a})
	mux.Handle("POST /admin/profile", ProfileUpdateHandler{a})
	mux.Handle("POST /admin/profile/password", PasswordChangeHandler{a})
}
