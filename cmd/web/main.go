package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"fresh-motors-web/internal/cache"
	"fresh-motors-web/internal/common/pagination"
	"fresh-motors-web/internal/config"
	"fresh-motors-web/internal/feeds"
	"fresh-motors-web/internal/infra/apiclient"
	"fresh-motors-web/internal/infra/notifier"
	"fresh-motors-web/internal/infra/preview"
	"fresh-motors-web/internal/infra/progress"
	"fresh-motors-web/internal/infra/youtube"
	"fresh-motors-web/internal/observability/logging"
	"fresh-motors-web/internal/observability/tracing"
	"fresh-motors-web/internal/seo"
	"fresh-motors-web/internal/sitemap"
	pkgconfig "fresh-motors-web/pkg/config"
	pkgratelimit "fresh-motors-web/pkg/ratelimit"
	"fresh-motors-web/pkg/security/csp"

	accUC "fresh-motors-web/internal/usecase/account"
	anaUC "fresh-motors-web/internal/usecase/analytics"
	artUC "fresh-motors-web/internal/usecase/article"
	engUC "fresh-motors-web/internal/usecase/engagement"
	genUC "fresh-motors-web/internal/usecase/generation"
	setUC "fresh-motors-web/internal/usecase/sitesettings"
	subUC "fresh-motors-web/internal/usecase/subscriber"
	tagUC "fresh-motors-web/internal/usecase/tagview"
	specUC "fresh-motors-web/internal/usecase/vehiclespec"

	hhttp "fresh-motors-web/internal/handler/http"
	"fresh-motors-web/internal/handler/http/article"
	"fresh-motors-web/internal/handler/http/engagement"
	"fresh-motors-web/internal/handler/http/middleware"
	"fresh-motors-web/internal/handler/http/requestid"
	"fresh-motors-web/internal/handler/http/session"
	"fresh-motors-web/internal/handler/http/taxonomy"
	"fresh-motors-web/internal/handler/http/visitor"
	"fresh-motors-web/internal/handler/web"

	_ "fresh-motors-web/docs" // swagger docs
)

// @title           Fresh Motors Web API
// @version         1.0
// @description     Fresh Motors 自動車ニュースサイトのフロントエンドサービス
// @description     公開ページのスクリプトが利用する /api/ui エンドポイント群を提供します。

// @contact.name   API Support
// @contact.url    https://github.com/fresh-motors/fresh-motors-web
// @contact.email  support@fresh-motors.app

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /

func main() {
	logger := initLogger()

	siteCfg := loadSiteConfig(logger)
	backendCfg := loadBackendConfig(logger)
	securityCfg := loadSecurityConfig(logger)
	redirectsCfg := loadRedirectsConfig(logger)
	secret := loadSessionSecret(logger, securityCfg)

	shutdownTracer := tracing.Init("fresh-motors-web")
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(flushCtx); err != nil {
			logger.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	components := setupServer(logger, siteCfg, backendCfg, securityCfg, redirectsCfg, secret)

	runServer(logger, components, siteCfg)
}

// initLogger builds the process logger and installs it as the slog
// default so library code without a logger handle stays consistent.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// loadSiteConfig loads the canonical site identity or refuses to start.
func loadSiteConfig(logger *slog.Logger) *config.SiteConfig {
	cfg, err := config.LoadSiteConfig()
	if err != nil {
		logger.Error("site configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}

// loadBackendConfig loads the backend API connection settings or refuses
// to start.
func loadBackendConfig(logger *slog.Logger) *config.BackendConfig {
	cfg, err := config.LoadBackendConfig()
	if err != nil {
		logger.Error("backend configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}

// loadSecurityConfig loads the YAML security policy. A missing file is
// not an error: the built-in defaults apply.
func loadSecurityConfig(logger *slog.Logger) *config.SecurityConfig {
	path := pkgconfig.GetEnvString("SECURITY_CONFIG_PATH", "configs/security.yaml")
	cfg, err := config.LoadSecurityConfig(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("no security policy file, using defaults", slog.String("path", path))
			return config.DefaultSecurityConfig()
		}
		logger.Error("security policy invalid", slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}

// loadRedirectsConfig loads the legacy redirect map. A missing file just
// means the service runs without it.
func loadRedirectsConfig(logger *slog.Logger) *config.RedirectsConfig {
	path := pkgconfig.GetEnvString("REDIRECTS_PATH", "configs/redirects.yaml")
	cfg, err := config.LoadRedirectsConfig(path)
	if err != nil {
		logger.Error("redirect map invalid", slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.Len() > 0 {
		logger.Info("legacy redirects loaded", slog.Int("count", cfg.Len()))
	}
	return cfg
}

// loadSessionSecret validates the session signing secret at startup.
// This prevents the server from starting with an empty or weak secret.
func loadSessionSecret(logger *slog.Logger, cfg *config.SecurityConfig) []byte {
	envName := cfg.GetSessionSecretEnv()
	secret := os.Getenv(envName)
	if secret == "" {
		logger.Error("session secret must be set", slog.String("env", envName))
		os.Exit(1)
	}
	// セキュリティ: 最小32文字（256ビット）を強制
	if len(secret) < 32 {
		logger.Error("session secret must be at least 32 characters (256 bits)", slog.String("env", envName))
		os.Exit(1)
	}
	// セキュリティ: よくある弱い秘密鍵を拒否
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("session secret must not be a common weak value", slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
	return []byte(secret)
}

// ServerComponents holds what runServer needs beyond the handler: the
// background workers started after boot and stopped on shutdown.
type ServerComponents struct {
	Handler   http.Handler
	Renderer  *web.Renderer
	Refresher *cache.Refresher
	Warmer    *sitemap.Warmer
	Addr      string
}

// setupServer wires the full object graph: API client, repository
// adapters, usecases, caches, renderer, routes and middleware.
func setupServer(
	logger *slog.Logger,
	siteCfg *config.SiteConfig,
	backendCfg *config.BackendConfig,
	securityCfg *config.SecurityConfig,
	redirectsCfg *config.RedirectsConfig,
	secret []byte,
) *ServerComponents {
	api := apiclient.New(backendCfg)

	articles := apiclient.NewArticlesClient(api)
	comments := apiclient.NewCommentsClient(api)
	ratings := apiclient.NewRatingsClient(api)
	favorites := apiclient.NewFavoritesClient(api)
	subscribers := apiclient.NewSubscribersClient(api)
	tags := apiclient.NewTagsClient(api)
	tagGroups := apiclient.NewTagGroupsClient(api)
	categories := apiclient.NewCategoriesClient(api)
	accounts := apiclient.NewAccountClient(api)
	settings := apiclient.NewSettingsClient(api)
	analytics := apiclient.NewAnalyticsClient(api)
	generation := apiclient.NewGenerationClient(api)
	specs := apiclient.NewVehicleSpecsClient(api)

	// 共有キャッシュ。リフレッシャーが期限前に温め直す
	cacheTTL := pkgconfig.GetEnvDuration("CACHE_TTL", 5*time.Minute)
	settingsSvc := setUC.NewService(settings, cacheTTL, logger)
	categoriesEntry := cache.NewEntry("categories", cacheTTL, categories.List)

	sitemapSvc := sitemap.NewService(siteCfg, articles, categories, logger)
	sitemapEntry := cache.NewEntry("sitemap", cacheTTL, sitemapSvc.Build)

	feedSvc := feeds.NewService(siteCfg, articles, settingsSvc.Cached, logger)
	feedEntry := cache.NewEntry("feed", cacheTTL, feedSvc.Build)

	refresher := cache.NewRefresher(
		pkgconfig.GetEnvString("SITEMAP_REFRESH_CRON", "*/10 * * * *"),
		pkgconfig.GetEnvDuration("CACHE_REFRESH_TIMEOUT", 2*time.Minute),
		logger,
		settingsSvc.Entry(), categoriesEntry, sitemapEntry, feedEntry,
	)

	warmer := sitemap.NewWarmer(articles, backendCfg.WarmRPS, logger)

	secure := strings.HasPrefix(siteCfg.BaseURL, "https://")
	sessions, err := session.NewManager(secret, securityCfg, secure)
	if err != nil {
		logger.Error("session manager setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	renderer, err := web.NewRenderer(os.Getenv("TEMPLATES_DIR"), logger)
	if err != nil {
		logger.Error("template parsing failed", slog.Any("error", err))
		os.Exit(1)
	}

	previewCfg, err := preview.LoadConfigFromEnv()
	if err != nil {
		logger.Error("preview configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}

	// 編集イベントのチャット通知。Webhook未設定ならNoOp
	events := notifier.New(notifier.LoadConfigFromEnv(siteCfg.BaseURL), logger)

	artSvc := &artUC.Service{
		Repo:      articles,
		Comments:  comments,
		Specs:     specs,
		Logger:    logger,
		MediaBase: backendCfg.PublicBaseURL,
		Events:    events,
	}
	engSvc := &engUC.Service{
		Articles:    articles,
		Comments:    comments,
		Ratings:     ratings,
		Favorites:   favorites,
		Subscribers: subscribers,
		Logger:      logger,
		Events:      events,
	}
	genSvc := &genUC.Service{
		Repo:    generation,
		Watcher: progress.NewWatcher(backendCfg, logger),
		YouTube: youtube.NewClient(logger),
		Preview: preview.NewService(previewCfg, logger),
		Logger:  logger,
		Events:  events,
	}

	paginationCfg := pagination.LoadFromEnv()

	site := &web.Site{
		Render:     renderer,
		Articles:   artSvc,
		Engagement: engSvc,
		Settings:   settingsSvc,
		Categories: categoriesEntry,
		SEO:        seo.NewBuilder(siteCfg),
		Sitemap:    sitemapEntry,
		Feed:       feedEntry,
		Pagination: paginationCfg,
		Logger:     logger,
	}
	admin := &web.Admin{
		Render:      renderer,
		Sessions:    sessions,
		Accounts:    &accUC.Service{Repo: accounts, Security: securityCfg},
		Articles:    artSvc,
		Tags:        &tagUC.Service{Tags: tags, Groups: tagGroups},
		Subscribers: &subUC.Service{Repo: subscribers},
		Engagement:  engSvc,
		Analytics:   anaUC.NewService(analytics),
		Generation:  genSvc,
		Specs:       &specUC.Service{Repo: specs},
		Settings:    settingsSvc,
		Categories:  categoriesEntry,
		Pagination:  paginationCfg,
		Logger:      logger,
	}

	caches := []hhttp.CacheEntry{settingsSvc.Entry(), categoriesEntry, sitemapEntry, feedEntry}
	rootHandler := setupRoutes(logger, site, admin, engSvc, sessions, securityCfg, api, caches, siteCfg.Version)
	handler := applyMiddleware(logger, rootHandler, backendCfg, redirectsCfg, secure)

	return &ServerComponents{
		Handler:   handler,
		Renderer:  renderer,
		Refresher: refresher,
		Warmer:    warmer,
		Addr:      ":" + pkgconfig.GetEnvString("PORT", "3000"),
	}
}

// setupRoutes registers all HTTP routes: public pages, the session-gated
// admin area, the /api/ui JSON endpoints and the operational surface.
func setupRoutes(
	logger *slog.Logger,
	site *web.Site,
	admin *web.Admin,
	engSvc *engUC.Service,
	sessions *session.Manager,
	securityCfg *config.SecurityConfig,
	api *apiclient.Client,
	caches []hhttp.CacheEntry,
	version string,
) http.Handler {
	publicMux := http.NewServeMux()
	web.RegisterPublic(publicMux, site)

	// 管理画面はセッション検証の内側。ログインページだけ素通し
	adminMux := http.NewServeMux()
	web.RegisterAdmin(adminMux, admin)
	adminArea := sessions.Middleware(securityCfg.GetPublicEndpoints())(adminMux)

	// ページスクリプトが叩くJSON API。匿名投稿系なのでIP単位のレート制限を挟む
	uiLimiter := pkgratelimit.New(pkgratelimit.Config{
		Limit:   pkgconfig.GetEnvInt("RATE_LIMIT_RPM", 60),
		Window:  time.Minute,
		Metrics: pkgratelimit.NewPrometheusMetrics(prometheus.DefaultRegisterer),
	})
	apiMux := http.NewServeMux()
	article.Register(apiMux, site.Articles, site.Pagination)
	engagement.Register(apiMux, engSvc)
	taxonomy.Register(apiMux, site.Categories, admin.Tags)
	uiAPI := middleware.NewRateLimit(uiLimiter, newIPExtractor(logger, securityCfg)).Middleware(apiMux)

	rootMux := http.NewServeMux()
	rootMux.Handle("/admin", adminArea)
	rootMux.Handle("/admin/", adminArea)
	rootMux.Handle("/api/ui/", uiAPI)

	// 死活・監視・ドキュメント
	rootMux.Handle("GET /healthz", &hhttp.LiveHandler{})
	rootMux.Handle("GET /readyz", &hhttp.ReadyHandler{Backend: api, Caches: caches, Version: version})
	rootMux.Handle("GET /metrics", hhttp.MetricsHandler())
	rootMux.Handle("/swagger/", httpSwagger.WrapHandler)

	rootMux.Handle("/", publicMux)

	// タイムアウトのResponseWriterはhijackできないので、WSブリッジだけ
	// その外側に掛ける。セッション検証は通す。
	timed := hhttp.Timeout(pkgconfig.GetEnvDuration("REQUEST_TIMEOUT", 15*time.Second))(rootMux)
	outer := http.NewServeMux()
	outer.Handle("GET /admin/generate/{taskID}/ws",
		sessions.Middleware(nil)(web.GenerateStreamHandler{Admin: admin}))
	outer.Handle("/", timed)
	return outer
}

// newIPExtractor picks the client IP strategy from the security policy.
// Without trusted proxies the TCP peer address is used, which cannot be
// spoofed by the client.
func newIPExtractor(logger *slog.Logger, cfg *config.SecurityConfig) middleware.IPExtractor {
	cidrs := cfg.GetTrustedProxies()
	if len(cidrs) == 0 {
		logger.Info("rate limiting keyed by RemoteAddr (proxy headers ignored)")
		return &middleware.RemoteAddrExtractor{}
	}
	proxyCfg, err := middleware.NewTrustedProxyConfig(cidrs)
	if err != nil {
		logger.Error("trusted proxy configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("rate limiting in trusted proxy mode", slog.Int("trusted_proxies_count", len(cidrs)))
	return middleware.NewTrustedProxyExtractor(*proxyCfg)
}

// applyMiddleware wraps the handler with the global middleware chain.
// Order: Redirects → Request ID → Tracing → Recovery → Logging → Input
// Validation → Body Limit → CSP → Metrics → Visitor Cookie
func applyMiddleware(
	logger *slog.Logger,
	handler http.Handler,
	backendCfg *config.BackendConfig,
	redirectsCfg *config.RedirectsConfig,
	secure bool,
) http.Handler {
	cspMiddleware := middleware.CSP(middleware.CSPConfig{
		DefaultPolicy: csp.PagePolicy(backendCfg.PublicBaseURL),
		PathPolicies: map[string]*csp.Builder{
			"/api/ui/":  csp.APIPolicy(),
			"/swagger/": csp.SwaggerUIPolicy(),
		},
	})

	// Apply in reverse order (innermost to outermost)
	chain := handler
	chain = visitor.Middleware(secure)(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = cspMiddleware(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.Redirects(redirectsCfg)(chain)
	return chain
}

// runServer starts the background workers and the HTTP server, then
// handles graceful shutdown.
func runServer(logger *slog.Logger, components *ServerComponents, siteCfg *config.SiteConfig) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 初回スイープが終わるまでreadyzはdegradedを返す。配信開始は待たない
	go func() {
		components.Refresher.RunOnce(ctx)
		components.Warmer.Run(ctx)
	}()
	if err := components.Refresher.Start(); err != nil {
		logger.Error("refresh schedule invalid", slog.Any("error", err))
		os.Exit(1)
	}

	// TEMPLATES_DIR無しではすぐ戻る
	go func() {
		if err := components.Renderer.Watch(ctx); err != nil {
			logger.Warn("template watcher stopped", slog.Any("error", err))
		}
	}()

	srv := &http.Server{
		Addr:              components.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", components.Addr),
			slog.String("environment", siteCfg.Environment),
			slog.String("version", siteCfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// Cancel background goroutines (refresher sweep, warm crawl, watcher)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	components.Refresher.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
