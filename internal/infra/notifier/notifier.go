// Package notifier delivers editorial events to team chat webhooks.
// When something happens that the editors want to hear about right away
// (an article going live, a comment landing in the moderation queue),
// the producing service emits an Event and the configured channels post
// it to Discord or Slack.
//
// Channels handle rate limiting and retries internally. Delivery runs
// behind the Async wrapper, so a slow webhook never delays the page
// response that produced the event.
package notifier

import (
	"context"
	"errors"
	"time"
)

// Kind classifies an editorial event. Channels pick message headings
// and colors from it.
type Kind string

const (
	KindArticlePublished   Kind = "article_published"
	KindCommentSubmitted   Kind = "comment_submitted"
	KindGenerationFinished Kind = "generation_finished"
	KindGenerationFailed   Kind = "generation_failed"
)

// Event is one editorial occurrence worth a chat message.
type Event struct {
	Kind   Kind
	Title  string    // headline, usually the article title
	Detail string    // secondary text, may be empty
	URL    string    // link target; site-relative links get absolutized
	At     time.Time // when it happened; zero means now
}

// Notifier delivers events to one channel.
// Implementations handle rate limiting, retries and error logging internally.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Multi fans one event out to every channel in the slice. A failing
// channel does not stop the others; the joined error reports all
// failures.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
