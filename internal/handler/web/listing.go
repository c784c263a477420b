package web

import (
	"net/http"
	"strings"

	"fresh-motors-web/internal/common/pagination"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/repository"
)

// listData feeds the shared article list template used by the news
// index, category, tag and search pages. BasePath and Query let the
// pager partial rebuild page links.
type listData struct {
	Chrome
	Heading    string
	Lede       string
	Articles   []*entity.Article
	Pagination pagination.Metadata
	BasePath   string
	Query      string
}

// NewsHandler renders the paginated article index at /news.
type NewsHandler struct {
	Site *Site
}

func (h NewsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	settings := h.Site.Settings.Current(ctx)
	meta := h.Site.SEO.ForPage("Новости", "", "/news", settings)
	chrome := chromeFor(r, settings, h.Site.Categories, meta)

	params := pagination.ParsePage(r, h.Site.Pagination)
	page, err := h.Site.Articles.Page(ctx,
		repository.ArticleFilters{PublishedOnly: true}, params)
	if err != nil {
		renderError(w, r, h.Site.Render, h.Site.Logger, chrome, err)
		return
	}

	h.Site.Render.Render(w, http.StatusOK, "news_list", listData{
		Chrome:     chrome,
		Heading:    "Новости",
		Articles:   page.Articles,
		Pagination: page.Pagination,
		BasePath:   "/news",
	})
}

// CategoryHandler renders the article list of one category. The category
// itself resolves from the cached navigation list; an unknown slug is a
// 404, not an empty list.
type CategoryHandler struct {
	Site *Site
}

func (h CategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	settings := h.Site.Settings.Current(ctx)
	slug := r.PathValue("slug")

	cat := h.findCategory(r, slug)
	if cat == nil {
		chrome := chromeFor(r, settings, h.Site.Categories, h.Site.SEO.ForPage("", "", r.URL.Path, settings))
		renderError(w, r, h.Site.Render, h.Site.Logger, chrome, entity.ErrNotFound)
		return
	}

	meta := h.Site.SEO.ForPage(cat.Name, cat.Description, "/category/"+cat.Slug, settings)
	chrome := chromeFor(r, settings, h.Site.Categories, meta)

	params := pagination.ParsePage(r, h.Site.Pagination)
	page, err := h.Site.Articles.Page(ctx,
		repository.ArticleFilters{CategorySlug: slug, PublishedOnly: true}, params)
	if err != nil {
		renderError(w, r, h.Site.Render, h.Site.Logger, chrome, err)
		return
	}

	h.Site.Render.Render(w, http.StatusOK, "news_list", listData{
		Chrome:     chrome,
		Heading:    cat.Name,
		Lede:       cat.Description,
		Articles:   page.Articles,
		Pagination: page.Pagination,
		BasePath:   "/category/" + cat.Slug,
	})
}

func (h CategoryHandler) findCategory(r *http.Request, slug string) *entity.Category {
	cats, err := h.Site.Categories.Get(r.Context())
	if err != nil {
		return nil
	}
	for _, c := range cats {
		if c.Slug == slug {
			return c
		}
	}
	return nil
}

// TagHandler renders the article list of one tag.
type TagHandler struct {
	Site *Site
}

func (h TagHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	settings := h.Site.Settings.Current(ctx)
	slug := r.PathValue("slug")

	meta := h.Site.SEO.ForPage("Тег: "+slug, "", "/tag/"+slug, settings)
	chrome := chromeFor(r, settings, h.Site.Categories, meta)

	params := pagination.ParsePage(r, h.Site.Pagination)
	page, err := h.Site.Articles.Page(ctx,
		repository.ArticleFilters{TagSlug: slug, PublishedOnly: true}, params)
	if err != nil {
		renderError(w, r, h.Site.Render, h.Site.Logger, chrome, err)
		return
	}

	// タグの表示名は記事側のタグリストから拾う。記事ゼロならslugのまま。
	heading := "Тег: " + slug
	if name := tagDisplayName(page.Articles, slug); name != "" {
		heading = "Тег: " + name
		chrome.Meta.Title = strings.Replace(chrome.Meta.Title, slug, name, 1)
	}

	h.Site.Render.Render(w, http.StatusOK, "news_list", listData{
		Chrome:     chrome,
		Heading:    heading,
		Articles:   page.Articles,
		Pagination: page.Pagination,
		BasePath:   "/tag/" + slug,
	})
}

// tagDisplayName finds the human name of a tag slug in a list of
// articles that carry it.
func tagDisplayName(articles []*entity.Article, slug string) string {
	for _, a := range articles {
		for _, t := range a.Tags {
			if t.Slug == slug {
				return t.Name
			}
		}
	}
	return ""
}

// SearchHandler renders full-text search results. Search pages are kept
// out of the index: crawlable search results breed infinite URL spaces.
type SearchHandler struct {
	Site *Site
}

func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	settings := h.Site.Settings.Current(ctx)
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	meta := h.Site.SEO.ForPage("Поиск", "", "/search", settings)
	meta.Robots = "noindex, follow"
	chrome := chromeFor(r, settings, h.Site.Categories, meta)

	data := listData{
		Chrome:   chrome,
		Heading:  "Поиск",
		BasePath: "/search",
		Query:    query,
	}

	if query != "" {
		params := pagination.ParsePage(r, h.Site.Pagination)
		page, err := h.Site.Articles.Page(ctx,
			repository.ArticleFilters{Query: query, PublishedOnly: true}, params)
		if err != nil {
			renderError(w, r, h.Site.Render, h.Site.Logger, chrome, err)
			return
		}
		data.Articles = page.Articles
		data.Pagination = page.Pagination
	}

	h.Site.Render.Render(w, http.StatusOK, "news_list", data)
}
