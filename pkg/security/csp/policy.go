// Package csp builds Content-Security-Policy header values for the
// rendered site. Pages embed backend-hosted media and YouTube players,
// so the page policy is built per deployment from the configured API
// origin instead of being a single static string.
package csp

import (
	"strings"
)

// Builder assembles a Content-Security-Policy value directive by
// directive. Not safe for concurrent use; build policies once at startup
// and reuse the resulting string.
type Builder struct {
	directives map[string][]string
	reportOnly bool
}

// NewBuilder returns an empty policy builder.
func NewBuilder() *Builder {
	return &Builder{directives: make(map[string][]string)}
}

// Directive sets a named directive, replacing any previous sources.
func (b *Builder) Directive(name string, sources ...string) *Builder {
	b.directives[name] = sources
	return b
}

// DefaultSrc sets the default-src fallback directive.
func (b *Builder) DefaultSrc(sources ...string) *Builder {
	return b.Directive("default-src", sources...)
}

// ScriptSrc sets the script-src directive.
func (b *Builder) ScriptSrc(sources ...string) *Builder {
	return b.Directive("script-src", sources...)
}

// StyleSrc sets the style-src directive.
func (b *Builder) StyleSrc(sources ...string) *Builder {
	return b.Directive("style-src", sources...)
}

// ImgSrc sets the img-src directive.
func (b *Builder) ImgSrc(sources ...string) *Builder {
	return b.Directive("img-src", sources...)
}

// MediaSrc sets the media-src directive.
func (b *Builder) MediaSrc(sources ...string) *Builder {
	return b.Directive("media-src", sources...)
}

// FontSrc sets the font-src directive.
func (b *Builder) FontSrc(sources ...string) *Builder {
	return b.Directive("font-src", sources...)
}

// ConnectSrc sets the connect-src directive.
func (b *Builder) ConnectSrc(sources ...string) *Builder {
	return b.Directive("connect-src", sources...)
}

// FrameSrc sets the frame-src directive.
func (b *Builder) FrameSrc(sources ...string) *Builder {
	return b.Directive("frame-src", sources...)
}

// FrameAncestors sets the frame-ancestors directive.
func (b *Builder) FrameAncestors(sources ...string) *Builder {
	return b.Directive("frame-ancestors", sources...)
}

// FormAction sets the form-action directive.
func (b *Builder) FormAction(sources ...string) *Builder {
	return b.Directive("form-action", sources...)
}

// BaseUri sets the base-uri directive.
func (b *Builder) BaseUri(sources ...string) *Builder {
	return b.Directive("base-uri", sources...)
}

// ObjectSrc sets the object-src directive.
func (b *Builder) ObjectSrc(sources ...string) *Builder {
	return b.Directive("object-src", sources...)
}

// ReportOnly switches the policy to report-only delivery.
func (b *Builder) ReportOnly(enabled bool) *Builder {
	b.reportOnly = enabled
	return b
}

// directiveOrder fixes the serialization order so the header is stable
// across restarts and readable in devtools.
var directiveOrder = []string{
	"default-src",
	"script-src",
	"style-src",
	"img-src",
	"media-src",
	"font-src",
	"connect-src",
	"frame-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
	"report-uri",
}

// Build serializes the policy into a header value.
func (b *Builder) Build() string {
	if len(b.directives) == 0 {
		return ""
	}

	var parts []string
	for _, directive := range directiveOrder {
		if sources, ok := b.directives[directive]; ok && len(sources) > 0 {
			parts = append(parts, directive+" "+strings.Join(sources, " "))
		}
	}
	return strings.Join(parts, "; ")
}

// HeaderName returns the header the policy should be sent under.
func (b *Builder) HeaderName() string {
	if b.reportOnly {
		return "Content-Security-Policy-Report-Only"
	}
	return "Content-Security-Policy"
}

// PagePolicy returns the policy for rendered site pages. Article bodies
// embed images and video hosted on the backend (apiOrigin) and YouTube
// players; page scripts talk to the same origin only, including the
// generation progress WebSocket.
func PagePolicy(apiOrigin string) *Builder {
	imgSources := []string{"'self'", "data:", "https://i.ytimg.com"}
	mediaSources := []string{"'self'"}
	if apiOrigin != "" {
		imgSources = append(imgSources, apiOrigin)
		mediaSources = append(mediaSources, apiOrigin)
	}
	return NewBuilder().
		DefaultSrc("'self'").
		ScriptSrc("'self'").
		StyleSrc("'self'", "'unsafe-inline'").
		ImgSrc(imgSources...).
		MediaSrc(mediaSources...).
		FontSrc("'self'").
		ConnectSrc("'self'", "ws:", "wss:").
		FrameSrc("https://www.youtube.com", "https://www.youtube-nocookie.com").
		FrameAncestors("'none'").
		FormAction("'self'").
		BaseUri("'self'").
		ObjectSrc("'none'")
}

// APIPolicy returns the restrictive policy for JSON endpoints, which
// never render HTML.
func APIPolicy() *Builder {
	return NewBuilder().
		DefaultSrc("'none'").
		ConnectSrc("'self'").
		FrameAncestors("'none'").
		BaseUri("'self'").
		FormAction("'self'")
}

// SwaggerUIPolicy returns the policy for the bundled Swagger UI, which
// needs inline scripts, data images and blob spec loading to work.
func SwaggerUIPolicy() *Builder {
	return NewBuilder().
		DefaultSrc("'self'").
		ScriptSrc("'self'", "'unsafe-inline'").
		StyleSrc("'self'", "'unsafe-inline'").
		ImgSrc("'self'", "data:").
		FontSrc("'self'", "data:").
		ConnectSrc("'self'", "blob:").
		FrameAncestors("'none'").
		BaseUri("'self'").
		FormAction("'self'").
		ObjectSrc("'none'")
}
