package notifier

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	pkgconfig "fresh-motors-web/pkg/config"
)

// Config selects and tunes the notification channels. With no webhook
// configured the service runs on the no-op notifier and events go
// nowhere.
type Config struct {
	// DiscordWebhookURL is the Discord channel webhook. Empty disables
	// the channel. Env: DISCORD_WEBHOOK_URL, gated by DISCORD_ENABLED.
	DiscordWebhookURL string

	// SlackWebhookURL is the Slack Incoming Webhook. Empty disables the
	// channel. Env: SLACK_WEBHOOK_URL, gated by SLACK_ENABLED.
	SlackWebhookURL string

	// Timeout bounds one webhook HTTP request.
	// Env: NOTIFY_TIMEOUT. Default: 10s
	Timeout time.Duration

	// DeliveryTimeout bounds one event delivery end to end, retries and
	// rate limiter waits included.
	// Env: NOTIFY_DELIVERY_TIMEOUT. Default: 60s
	DeliveryTimeout time.Duration

	// SiteURL is the canonical origin prepended to site-relative event
	// links before they reach a chat client.
	SiteURL string
}

// DefaultConfig returns delivery defaults with every channel off.
func DefaultConfig() Config {
	return Config{
		Timeout:         10 * time.Second,
		DeliveryTimeout: 60 * time.Second,
	}
}

// LoadConfigFromEnv loads notification settings from the environment.
// Channels stay off unless explicitly enabled.
//
// Environment variables:
//   - DISCORD_ENABLED, DISCORD_WEBHOOK_URL
//   - SLACK_ENABLED, SLACK_WEBHOOK_URL
//   - NOTIFY_TIMEOUT: duration, e.g. "10s"
//   - NOTIFY_DELIVERY_TIMEOUT: duration, e.g. "60s"
func LoadConfigFromEnv(siteURL string) Config {
	def := DefaultConfig()
	cfg := Config{
		Timeout:         pkgconfig.GetEnvDuration("NOTIFY_TIMEOUT", def.Timeout),
		DeliveryTimeout: pkgconfig.GetEnvDuration("NOTIFY_DELIVERY_TIMEOUT", def.DeliveryTimeout),
		SiteURL:         strings.TrimSuffix(siteURL, "/"),
	}

	if pkgconfig.GetEnvBool("DISCORD_ENABLED", false) {
		cfg.DiscordWebhookURL = pkgconfig.GetEnvString("DISCORD_WEBHOOK_URL", "")
	}
	if pkgconfig.GetEnvBool("SLACK_ENABLED", false) {
		cfg.SlackWebhookURL = pkgconfig.GetEnvString("SLACK_WEBHOOK_URL", "")
	}

	return cfg
}

// New builds the notifier chain from cfg: every configured channel
// behind an async fan-out. A webhook URL that does not match the
// expected host shape disables that channel with a warning instead of
// failing startup.
func New(cfg Config, logger *slog.Logger) Notifier {
	var channels Multi

	if cfg.DiscordWebhookURL != "" {
		if validWebhook(cfg.DiscordWebhookURL, "discord.com", "/api/webhooks/") {
			channels = append(channels, NewDiscordNotifier(cfg, logger))
		} else {
			logger.Warn("discord webhook URL rejected, channel disabled")
		}
	}
	if cfg.SlackWebhookURL != "" {
		if validWebhook(cfg.SlackWebhookURL, "hooks.slack.com", "/services/") {
			channels = append(channels, NewSlackNotifier(cfg, logger))
		} else {
			logger.Warn("slack webhook URL rejected, channel disabled")
		}
	}

	if len(channels) == 0 {
		return NewNoOpNotifier()
	}

	logger.Info("event notifications enabled", slog.Int("channels", len(channels)))
	return NewAsync(channels, cfg.DeliveryTimeout, logger)
}

// validWebhook reports whether raw is an https URL on the expected host
// and path prefix.
func validWebhook(raw, host, pathPrefix string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "https" && u.Host == host && strings.HasPrefix(u.Path, pathPrefix)
}
