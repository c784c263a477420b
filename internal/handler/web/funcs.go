package web

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/infra/youtube"
)

// ruMonths are the genitive month names used in running dates
// ("2 января 2026").
var ruMonths = [12]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"rudate":     formatRuDate,
		"rudatetime": formatRuDateTime,
		"plural":     pluralRu,
		"rawhtml":    rawHTML,
		"seq":        seq,
		"trim":       strings.TrimSpace,
		"stepname":   entity.GenerationStepName,
		"ytembed":    youTubeEmbedURL,
	}
}

// formatRuDate renders a date the way the site shows publication dates.
// time.Format only speaks English month names.
func formatRuDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d %s %d", t.Day(), ruMonths[t.Month()-1], t.Year())
}

// formatRuDateTime adds the clock time for admin listings.
func formatRuDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s, %02d:%02d", formatRuDate(t), t.Hour(), t.Minute())
}

// pluralRu picks the Russian plural form: one (1 комментарий), few
// (2 комментария), many (5 комментариев). Rules follow the standard
// 11-14 exception.
func pluralRu(n int64, one, few, many string) string {
	mod100 := n % 100
	if mod100 >= 11 && mod100 <= 14 {
		return fmt.Sprintf("%d %s", n, many)
	}
	switch n % 10 {
	case 1:
		return fmt.Sprintf("%d %s", n, one)
	case 2, 3, 4:
		return fmt.Sprintf("%d %s", n, few)
	default:
		return fmt.Sprintf("%d %s", n, many)
	}
}

// rawHTML marks backend-rendered article HTML as safe. Only ever applied
// to BodyHTML, which the backend sanitizes before serving.
func rawHTML(s string) template.HTML {
	return template.HTML(s)
}

// seq counts 1..n for star widgets.
func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// youTubeEmbedURL converts any recognized YouTube link into its
// embeddable player URL. An unparseable link yields "" and the template
// skips the player block.
func youTubeEmbedURL(raw string) string {
	id, err := youtube.ParseVideoID(raw)
	if err != nil {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}
