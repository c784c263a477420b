// Package fixtures provides reusable test data builders for handler and
// usecase tests. Shared builders keep generated articles consistent
// across test suites and spare each test a dozen-field struct literal.
package fixtures

import (
	"fmt"
	"strings"
	"time"

	"fresh-motors-web/internal/domain/entity"
)

// baseTime anchors every generated timestamp so fixtures stay
// deterministic between runs.
var baseTime = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

// carModels are the vehicles generated articles rotate through.
var carModels = []string{
	"LADA Vesta NG",
	"Geely Monjaro",
	"Chery Tiggo 8 Pro Max",
	"Haval Jolion",
	"Omoda C5",
	"Exeed VX",
	"Changan UNI-K",
	"Москвич 3е",
}

// bodySentences is the copy pool article bodies are assembled from.
var bodySentences = []string{
	"Кроссовер получил обновлённую переднюю оптику и решётку радиатора в новом фирменном стиле.",
	"Под капотом установлен турбомотор объёмом полтора литра, работающий в паре с вариатором.",
	"Подвеска уверенно отрабатывает неровности, а на трассе автомобиль держит курс без подруливаний.",
	"В салоне преобладают мягкие материалы, центральный экран отзывается на нажатия без задержек.",
	"Расход топлива в смешанном цикле по итогам недели теста составил восемь литров на сто километров.",
	"Багажник вмещает пятьсот литров, а при сложенных сиденьях объём вырастает почти втрое.",
	"Дилеры уже принимают заказы, первые машины обещают привезти до конца квартала.",
	"Система помощи водителю включает адаптивный круиз-контроль и удержание в полосе.",
	"Шумоизоляция моторного щита заметно улучшена по сравнению с прошлым поколением.",
	"Зимний пакет с подогревом руля и лобового стекла входит уже в базовую комплектацию.",
	"Клиренс в двести миллиметров позволяет не думать о бордюрах и разбитых просёлках.",
	"Коробка передач переключается плавно, задумчивость проявляется только при резком ускорении.",
	"Мультимедиа поддерживает беспроводное подключение смартфона и обновляется по воздуху.",
	"Гарантия производителя составляет пять лет или сто пятьдесят тысяч километров пробега.",
	"По итогам теста автомобиль оставил впечатление добротно собранной и продуманной машины.",
}

// TextOptions configures generated running copy.
type TextOptions struct {
	// Length is the approximate rune count. Targets of 500 runes and up
	// land within ±10%; shorter targets may overshoot by one sentence.
	Length int
}

// Text generates running Russian automotive copy close to the target
// length. Use it where a test needs realistic long-form input, such as
// spec extraction or excerpt shaping.
//
// Example:
//
//	body := fixtures.Text(fixtures.TextOptions{Length: 2000})
func Text(opts TextOptions) string {
	var builder strings.Builder
	currentLength := 0
	sentenceIndex := 0

	for {
		sentence := bodySentences[sentenceIndex%len(bodySentences)]
		sentenceIndex++

		sentenceLength := len([]rune(sentence))
		if currentLength > 0 {
			sentenceLength++ // раз切りのスペース分
		}
		potentialLength := currentLength + sentenceLength

		// 目標の90%に達したら、110%を超える追加はせず打ち切る
		if currentLength >= int(float64(opts.Length)*0.9) {
			if potentialLength > int(float64(opts.Length)*1.1) {
				break
			}
		}

		if currentLength > 0 {
			builder.WriteString(" ")
		}
		builder.WriteString(sentence)
		currentLength = len([]rune(builder.String()))

		if currentLength >= opts.Length {
			break
		}
	}

	return builder.String()
}

// BodyHTML builds article body markup of the given paragraph count, the
// way the backend serves it: sanitized paragraphs, nothing else.
func BodyHTML(paragraphs int) string {
	var builder strings.Builder
	for i := 0; i < paragraphs; i++ {
		builder.WriteString("<p>")
		builder.WriteString(bodySentences[(i*2)%len(bodySentences)])
		builder.WriteString(" ")
		builder.WriteString(bodySentences[(i*2+1)%len(bodySentences)])
		builder.WriteString("</p>\n")
	}
	return builder.String()
}

// Article returns a published article whose fields all derive from id,
// so repeated calls agree and tests can predict slugs and titles.
//
// Example:
//
//	art := fixtures.Article(7)
//	// art.Slug == "test-drive-7", art.Title == "Тест-драйв Москвич 3е"
func Article(id int64) *entity.Article {
	model := carModels[int(id)%len(carModels)]
	publishedAt := baseTime.Add(-time.Duration(id) * 24 * time.Hour)

	return &entity.Article{
		ID:           id,
		Slug:         fmt.Sprintf("test-drive-%d", id),
		Title:        "Тест-драйв " + model,
		Subtitle:     "Первые впечатления от недели за рулём",
		BodyHTML:     BodyHTML(3),
		Excerpt:      bodySentences[int(id)%len(bodySentences)],
		CoverURL:     fmt.Sprintf("https://cdn.freshmotors.ru/covers/%d.jpg", id),
		Category:     &entity.Category{ID: 1, Slug: "test-drives", Name: "Тест-драйвы"},
		Tags:         []entity.Tag{{ID: 1, Slug: "crossovers", Name: "Кроссоверы"}},
		IsPublished:  true,
		PublishedAt:  &publishedAt,
		CreatedAt:    publishedAt.Add(-2 * time.Hour),
		UpdatedAt:    publishedAt,
		ViewCount:    100 * id,
		RatingAvg:    4.2,
		RatingCount:  17,
		CommentCount: 3,
		ReadingTime:  4,
	}
}

// Draft returns an unpublished article: no publication time, no
// engagement counters yet.
func Draft(id int64) *entity.Article {
	art := Article(id)
	art.IsPublished = false
	art.PublishedAt = nil
	art.ViewCount = 0
	art.RatingAvg = 0
	art.RatingCount = 0
	art.CommentCount = 0
	return art
}

// Articles returns n published articles with ids 1..n, newest first,
// matching the backend's published_at DESC ordering.
func Articles(n int) []*entity.Article {
	out := make([]*entity.Article, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Article(int64(i)))
	}
	return out
}

// commentAuthors rotates the names approved comments carry.
var commentAuthors = []string{"Иван", "Мария", "Сергей", "Ольга"}

// ApprovedComments returns n approved comments on the given article,
// oldest first, the order the public page renders them in.
func ApprovedComments(articleID int64, n int) []*entity.Comment {
	out := make([]*entity.Comment, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &entity.Comment{
			ID:         int64(1000 + i),
			ArticleID:  articleID,
			Author:     commentAuthors[i%len(commentAuthors)],
			Body:       fmt.Sprintf("Отличный обзор, жду продолжения! (%d)", i+1),
			IsApproved: true,
			CreatedAt:  baseTime.Add(time.Duration(i) * time.Hour),
		})
	}
	return out
}

// Settings returns site settings with every public feature switched on,
// the configuration most page tests want.
func Settings() *entity.SiteSettings {
	return &entity.SiteSettings{
		SiteName:       "Fresh Motors",
		Tagline:        "Автомобильные новости",
		Description:    "Новости автопрома, тест-драйвы и обзоры новинок",
		ContactEmail:   "info@freshmotors.ru",
		CommentsOpen:   true,
		RatingsOpen:    true,
		FavoritesOpen:  true,
		SubscribesOpen: true,
	}
}
