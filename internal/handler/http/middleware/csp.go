package middleware

import (
	"net/http"
	"strings"

	"fresh-motors-web/pkg/security/csp"
)

// CSPConfig selects which Content-Security-Policy each path prefix gets.
// Pages need YouTube embeds and backend media; the JSON API and the
// Swagger UI each get their own policy.
type CSPConfig struct {
	// Enabled turns the header off entirely, for bisecting CSP
	// breakage in development.
	Enabled bool

	// DefaultPolicy applies when no path prefix matches.
	DefaultPolicy *csp.Builder

	// PathPolicies maps path prefixes to policies. The longest
	// matching prefix wins.
	//
	// Example:
	//   "/api/":     csp.APIPolicy(),
	//   "/swagger/": csp.SwaggerUIPolicy(),
	PathPolicies map[string]*csp.Builder

	// ReportOnly switches to Content-Security-Policy-Report-Only,
	// used while rolling a tightened policy out over live templates.
	ReportOnly bool
}

// compiledPolicy is a policy serialized once at startup. csp.Builder is
// not safe for concurrent use, so requests only ever see these strings.
type compiledPolicy struct {
	header string
	value  string
}

// CSP applies Content-Security-Policy headers chosen per request path.
func CSP(config CSPConfig) func(http.Handler) http.Handler {
	if !config.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}

	compiled := make(map[string]compiledPolicy, len(config.PathPolicies))
	for prefix, policy := range config.PathPolicies {
		compiled[prefix] = compilePolicy(policy, config.ReportOnly)
	}
	fallback := compilePolicy(config.DefaultPolicy, config.ReportOnly)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			policy := selectPolicy(compiled, fallback, r.URL.Path)
			if policy.value != "" {
				w.Header().Set(policy.header, policy.value)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func compilePolicy(policy *csp.Builder, reportOnly bool) compiledPolicy {
	if policy == nil {
		return compiledPolicy{}
	}
	if reportOnly {
		policy.ReportOnly(true)
	}
	return compiledPolicy{header: policy.HeaderName(), value: policy.Build()}
}

// selectPolicy picks the policy with the longest matching path prefix,
// falling back to the default.
func selectPolicy(compiled map[string]compiledPolicy, fallback compiledPolicy, path string) compiledPolicy {
	longest := ""
	matched := fallback
	for prefix, policy := range compiled {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(longest) {
			longest = prefix
			matched = policy
		}
	}
	return matched
}
