package taxonomy

import (
	"net/http"
	"strings"

	"fresh-motors-web/internal/handler/http/respond"
	tagUC "fresh-motors-web/internal/usecase/tagview"
)

type TagsHandler struct {
	Svc *tagUC.Service
}

// ServeHTTP タグ一覧取得
// @Summary      タグ一覧取得
// @Description  グループ分けされたタグ一覧を返します。letterを指定すると先頭文字で絞り込みます（0-9は数字始まり）。
// @Tags         taxonomy
// @Produce      json
// @Param        letter query string false "先頭文字フィルタ（0-9で数字始まり）"
// @Success      200 {object} taxonomy.TagsResponse
// @Failure      502 {object} respond.ErrorResponse "backend unavailable"
// @Router       /api/ui/tags [get]
func (h TagsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Svc.Overview(r.Context())
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	// 文字フィルタは表示のみに効き、文字ストリップは全タグから作る
	letters := tagUC.Letters(overview.All())
	letter := strings.TrimSpace(r.URL.Query().Get("letter"))
	narrowed := overview.Narrow(letter)

	resp := TagsResponse{
		Letters:   letters,
		Groups:    make([]TagGroupDTO, 0, len(narrowed.Groups)),
		Ungrouped: toTagDTOs(narrowed.Ungrouped),
	}
	for _, grp := range narrowed.Groups {
		resp.Groups = append(resp.Groups, TagGroupDTO{
			ID:   grp.ID,
			Name: grp.Name,
			Tags: toTagDTOs(narrowed.ByGroup[grp.ID]),
		})
	}
	if resp.Letters == nil {
		resp.Letters = []string{}
	}

	respond.JSON(w, http.StatusOK, resp)
}
