package entity

// SiteSettings is the site-wide configuration record edited in the admin
// area and read by every public page. Public rendering falls back to
// built-in defaults when the backend is unreachable.
type SiteSettings struct {
	SiteName       string `json:"site_name"`
	Tagline        string `json:"tagline,omitempty"`
	Description    string `json:"description,omitempty"`
	LogoURL        string `json:"logo_url,omitempty"`
	ContactEmail   string `json:"contact_email,omitempty"`
	TelegramURL    string `json:"telegram_url,omitempty"`
	YouTubeURL     string `json:"youtube_url,omitempty"`
	VKURL          string `json:"vk_url,omitempty"`
	AnalyticsID    string `json:"analytics_id,omitempty"`
	CommentsOpen   bool   `json:"comments_enabled"`
	RatingsOpen    bool   `json:"ratings_enabled"`
	FavoritesOpen  bool   `json:"favorites_enabled"`
	SubscribesOpen bool   `json:"subscriptions_enabled"`
}

// DefaultSettings returns the fallback used when the settings resource
// cannot be fetched. Feature toggles default to on so a backend hiccup
// never hides site chrome.
func DefaultSettings() *SiteSettings {
	return &SiteSettings{
		SiteName:       "Fresh Motors",
		Tagline:        "Автомобильные новости",
		CommentsOpen:   true,
		RatingsOpen:    true,
		FavoritesOpen:  true,
		SubscribesOpen: true,
	}
}

// AnalyticsSummary is the dashboard payload served by the backend:
// pre-aggregated counters for the admin overview page.
type AnalyticsSummary struct {
	TotalArticles    int64          `json:"total_articles"`
	PublishedCount   int64          `json:"published_count"`
	DraftCount       int64          `json:"draft_count"`
	TotalViews       int64          `json:"total_views"`
	TotalComments    int64          `json:"total_comments"`
	PendingComments  int64          `json:"pending_comments"`
	TotalSubscribers int64          `json:"total_subscribers"`
	ConfirmedSubs    int64          `json:"confirmed_subscribers"`
	TopArticles      []TopArticle   `json:"top_articles,omitempty"`
	ViewsByDay       []DayViewCount `json:"views_by_day,omitempty"`
}

// TopArticle is one row of the most-viewed table.
type TopArticle struct {
	ID        int64  `json:"id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	ViewCount int64  `json:"views_count"`
}

// DayViewCount is one point of the daily views series.
type DayViewCount struct {
	Day   string `json:"day"`
	Views int64  `json:"views"`
}
