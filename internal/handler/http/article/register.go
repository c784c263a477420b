package article

import (
	"net/http"

	"fresh-motors-web/internal/common/pagination"
	artUC "fresh-motors-web/internal/usecase/article"
)

// Register mounts the article card endpoints on mux. The caller puts
// the IP rate limiter in front of this subtree.
func Register(mux *http.ServeMux, svc *artUC.Service, cfg pagination.Config) {
	mux.Handle("GET /api/ui/articles", ListHandler{Svc: svc, PaginationCfg: cfg})
	mux.Handle("GET /api/ui/articles/search", SearchHandler{Svc: svc, PaginationCfg: cfg})
}
