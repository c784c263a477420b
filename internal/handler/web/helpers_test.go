package web_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"fresh-motors-web/internal/cache"
	"fresh-motors-web/internal/common/pagination"
	"fresh-motors-web/internal/config"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/session"
	"fresh-motors-web/internal/handler/web"
	"fresh-motors-web/internal/repository"
	"fresh-motors-web/internal/seo"
	accUC "fresh-motors-web/internal/usecase/account"
	anaUC "fresh-motors-web/internal/usecase/analytics"
	artUC "fresh-motors-web/internal/usecase/article"
	engUC "fresh-motors-web/internal/usecase/engagement"
	setUC "fresh-motors-web/internal/usecase/sitesettings"
	"fresh-motors-web/tests/fixtures"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/* ───────── モック実装 ───────── */

type stubArticleRepo struct {
	bySlug  map[string]*entity.Article
	listing []*entity.Article
	related []*entity.Article
	refs    []repository.ArticleRef

	listErr error

	lastFilters repository.ArticleFilters
	listCalls   int

	// viewed receives the article ids of IncrementView calls. Buffered
	// so fire-and-forget senders never block when nobody reads it.
	viewed chan int64
}

func newStubArticles() *stubArticleRepo {
	return &stubArticleRepo{
		bySlug: map[string]*entity.Article{},
		viewed: make(chan int64, 4),
	}
}

func (s *stubArticleRepo) GetBySlug(_ context.Context, slug string) (*entity.Article, error) {
	if art, ok := s.bySlug[slug]; ok {
		// サービス側がderived fieldsを書き込むのでコピーを返す
		out := *art
		return &out, nil
	}
	return nil, entity.ErrNotFound
}

func (s *stubArticleRepo) GetByID(_ context.Context, id int64) (*entity.Article, error) {
	for _, art := range s.bySlug {
		if art.ID == id {
			out := *art
			return &out, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (s *stubArticleRepo) List(_ context.Context, filters repository.ArticleFilters, offset, limit int) (*repository.ArticleListing, error) {
	s.listCalls++
	s.lastFilters = filters
	if s.listErr != nil {
		return nil, s.listErr
	}

	items := s.listing
	if offset >= len(items) {
		items = nil
	} else {
		items = items[offset:]
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return &repository.ArticleListing{Articles: items, Total: int64(len(s.listing))}, nil
}

func (s *stubArticleRepo) Related(_ context.Context, _ int64, _ int) ([]*entity.Article, error) {
	return s.related, nil
}

func (s *stubArticleRepo) Slugs(_ context.Context) ([]repository.ArticleRef, error) {
	return s.refs, nil
}

func (s *stubArticleRepo) IncrementView(_ context.Context, id int64) error {
	select {
	case s.viewed <- id:
	default:
	}
	return nil
}

// 以下は未使用だが、インターフェースを満たすために実装
func (s *stubArticleRepo) Create(_ context.Context, a *entity.Article) (*entity.Article, error) {
	return a, nil
}
func (s *stubArticleRepo) Update(_ context.Context, a *entity.Article) (*entity.Article, error) {
	return a, nil
}
func (s *stubArticleRepo) Delete(_ context.Context, _ int64) error { return nil }
func (s *stubArticleRepo) SetPublished(_ context.Context, _ int64, _ bool) error {
	return nil
}

type stubCommentRepo struct {
	approved []*entity.Comment
}

func (s *stubCommentRepo) ListApproved(_ context.Context, _ int64) ([]*entity.Comment, error) {
	return s.approved, nil
}

// 以下は未使用だが、インターフェースを満たすために実装
func (s *stubCommentRepo) ListPending(_ context.Context, _, _ int) ([]*entity.Comment, int64, error) {
	return nil, 0, nil
}
func (s *stubCommentRepo) Create(_ context.Context, c *entity.Comment) (*entity.Comment, error) {
	return c, nil
}
func (s *stubCommentRepo) Approve(_ context.Context, _ int64) error { return nil }
func (s *stubCommentRepo) Delete(_ context.Context, _ int64) error  { return nil }

type stubSettingsRepo struct {
	settings *entity.SiteSettings
	err      error
}

func (s *stubSettingsRepo) Get(_ context.Context) (*entity.SiteSettings, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.settings, nil
}

func (s *stubSettingsRepo) Update(_ context.Context, settings *entity.SiteSettings) (*entity.SiteSettings, error) {
	s.settings = settings
	return settings, nil
}

type stubFavoriteRepo struct {
	articles    []*entity.Article
	lastVisitor string
}

func (s *stubFavoriteRepo) ListByVisitor(_ context.Context, visitorID string) ([]*entity.Article, error) {
	s.lastVisitor = visitorID
	return s.articles, nil
}

func (s *stubFavoriteRepo) Toggle(_ context.Context, _ int64, _ string) (bool, int64, error) {
	return false, 0, nil
}

type stubSubscriberRepo struct {
	confirmErr error
	unsubErr   error

	confirmed    []string
	unsubscribed []string
}

func (s *stubSubscriberRepo) Confirm(_ context.Context, token string) error {
	if s.confirmErr != nil {
		return s.confirmErr
	}
	s.confirmed = append(s.confirmed, token)
	return nil
}

func (s *stubSubscriberRepo) Unsubscribe(_ context.Context, token string) error {
	if s.unsubErr != nil {
		return s.unsubErr
	}
	s.unsubscribed = append(s.unsubscribed, token)
	return nil
}

// 以下は未使用だが、インターフェースを満たすために実装
func (s *stubSubscriberRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Subscriber, int64, error) {
	return nil, 0, nil
}
func (s *stubSubscriberRepo) Subscribe(_ context.Context, _ string) (*entity.Subscriber, error) {
	return nil, nil
}
func (s *stubSubscriberRepo) Delete(_ context.Context, _ int64) error { return nil }

type stubAccountRepo struct {
	creds    *repository.Credentials
	loginErr error

	lastEmail    string
	lastPassword string
}

func (s *stubAccountRepo) Login(_ context.Context, email, password string) (*repository.Credentials, error) {
	s.lastEmail, s.lastPassword = email, password
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.creds, nil
}

// 以下は未使用だが、インターフェースを満たすために実装
func (s *stubAccountRepo) CurrentUser(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}
func (s *stubAccountRepo) UpdateProfile(_ context.Context, _ string, _ repository.ProfileUpdate) (*entity.User, error) {
	return nil, nil
}
func (s *stubAccountRepo) ChangePassword(_ context.Context, _, _, _ string) error { return nil }

type stubAnalyticsRepo struct {
	summary *entity.AnalyticsSummary
	err     error
}

func (s *stubAnalyticsRepo) Summary(_ context.Context) (*entity.AnalyticsSummary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.summary, nil
}

/* ───────── テスト用の組み立て ───────── */

// siteFixture wires the public page handlers exactly like main does:
// real services and the embedded templates over stubbed repositories.
type siteFixture struct {
	articles    *stubArticleRepo
	comments    *stubCommentRepo
	favorites   *stubFavoriteRepo
	subscribers *stubSubscriberRepo
	settings    *stubSettingsRepo

	sitemapXML []byte
	sitemapErr error
	feedXML    []byte
	feedErr    error

	mux *http.ServeMux
}

func newSiteFixture(t *testing.T) *siteFixture {
	t.Helper()

	render, err := web.NewRenderer("", testLogger())
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	f := &siteFixture{
		articles:    newStubArticles(),
		comments:    &stubCommentRepo{},
		favorites:   &stubFavoriteRepo{},
		subscribers: &stubSubscriberRepo{},
		settings:    &stubSettingsRepo{settings: fixtures.Settings()},
	}

	categories := cache.NewEntry("categories", time.Minute, func(context.Context) ([]*entity.Category, error) {
		return []*entity.Category{{ID: 1, Slug: "test-drives", Name: "Тест-драйвы"}}, nil
	})

	site := &web.Site{
		Render: render,
		Articles: &artUC.Service{
			Repo:     f.articles,
			Comments: f.comments,
			Logger:   testLogger(),
		},
		Engagement: &engUC.Service{
			Articles:    f.articles,
			Comments:    f.comments,
			Favorites:   f.favorites,
			Subscribers: f.subscribers,
			Logger:      testLogger(),
		},
		Settings:   setUC.NewService(f.settings, time.Minute, testLogger()),
		Categories: categories,
		SEO: seo.NewBuilder(&config.SiteConfig{
			BaseURL:     "https://freshmotors.ru",
			Environment: "production",
			Version:     "test",
		}),
		Sitemap: cache.NewEntry("sitemap", time.Minute, func(context.Context) ([]byte, error) {
			return f.sitemapXML, f.sitemapErr
		}),
		Feed: cache.NewEntry("feed", time.Minute, func(context.Context) ([]byte, error) {
			return f.feedXML, f.feedErr
		}),
		Pagination: pagination.DefaultConfig(),
		Logger:     testLogger(),
	}

	f.mux = http.NewServeMux()
	web.RegisterPublic(f.mux, site)
	return f
}

func (f *siteFixture) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

// adminFixture wires the admin area behind the session middleware, the
// way setupRoutes mounts it.
type adminFixture struct {
	accounts  *stubAccountRepo
	analytics *stubAnalyticsRepo
	articles  *stubArticleRepo
	settings  *stubSettingsRepo

	sessions *session.Manager
	area     http.Handler
}

// testSessionSecret satisfies the manager's minimum length; 値は任意。
const testSessionSecret = "0123456789abcdef0123456789abcdef"

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	render, err := web.NewRenderer("", testLogger())
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	secCfg := config.DefaultSecurityConfig()
	sessions, err := session.NewManager([]byte(testSessionSecret), secCfg, false)
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}

	f := &adminFixture{
		accounts:  &stubAccountRepo{},
		analytics: &stubAnalyticsRepo{summary: &entity.AnalyticsSummary{}},
		articles:  newStubArticles(),
		settings:  &stubSettingsRepo{settings: fixtures.Settings()},
		sessions:  sessions,
	}

	admin := &web.Admin{
		Render:   render,
		Sessions: sessions,
		Accounts: &accUC.Service{Repo: f.accounts, Security: secCfg},
		Articles: &artUC.Service{
			Repo:   f.articles,
			Logger: testLogger(),
		},
		Analytics:  anaUC.NewService(f.analytics),
		Settings:   setUC.NewService(f.settings, time.Minute, testLogger()),
		Pagination: pagination.DefaultConfig(),
		Logger:     testLogger(),
	}

	mux := http.NewServeMux()
	web.RegisterAdmin(mux, admin)
	f.area = sessions.Middleware(secCfg.GetPublicEndpoints())(mux)
	return f
}

// login issues a session cookie for a user of the given role, the same
// way a successful login would.
func (f *adminFixture) login(t *testing.T, role string) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	err := f.sessions.Issue(rec, &repository.Credentials{
		AccessToken: "backend-token",
		ExpiresIn:   3600,
		User: &entity.User{
			ID:    1,
			Email: "maria@freshmotors.ru",
			Name:  "Мария",
			Role:  role,
		},
	})
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	for _, c := range rec.Result().Cookies() {
		if c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

// browse performs a browser-shaped request against the admin area.
func (f *adminFixture) browse(method, path string, cookie *http.Cookie, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Accept", "text/html")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	f.area.ServeHTTP(rec, req)
	return rec
}
