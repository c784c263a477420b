package taxonomy

import (
	"net/http"

	"fresh-motors-web/internal/cache"
	"fresh-motors-web/internal/domain/entity"
	tagUC "fresh-motors-web/internal/usecase/tagview"
)

// Register mounts the taxonomy endpoints on mux. The caller puts the IP
// rate limiter in front of this subtree.
func Register(mux *http.ServeMux, categories *cache.Entry[[]*entity.Category], tags *tagUC.Service) {
	mux.Handle("GET /api/ui/categories", CategoriesHandler{Categories: categories})
	mux.Handle("GET /api/ui/tags", TagsHandler{Svc: tags})
}
