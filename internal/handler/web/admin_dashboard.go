package web

import (
	"net/http"

	anaUC "fresh-motors-web/internal/usecase/analytics"
)

type dashboardData struct {
	Chrome
	Dash        *anaUC.Dashboard
	Unavailable bool
}

// DashboardHandler renders the admin overview: content counters, top
// articles and the daily views chart. Analytics going dark degrades to a
// notice; the rest of the admin stays usable.
type DashboardHandler struct {
	Admin *Admin
}

func (h DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data := dashboardData{Chrome: h.Admin.chrome(r, "Обзор")}

	dash, err := h.Admin.Analytics.Overview(r.Context())
	if err != nil {
		data.Unavailable = true
	} else {
		data.Dash = dash
	}

	h.Admin.Render.Render(w, http.StatusOK, "admin_dashboard", data)
}
