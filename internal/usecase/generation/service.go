// Package generation coordinates the AI article pipeline from the admin
// side: validate the request, resolve source metadata for the confirmation
// step, submit the task and watch its progress stream. The pipeline itself
// runs on the backend; nothing is generated here.
package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/infra/notifier"
	"fresh-motors-web/internal/infra/preview"
	"fresh-motors-web/internal/infra/progress"
	"fresh-motors-web/internal/infra/youtube"
	"fresh-motors-web/internal/repository"
)

// Service provides generation use cases. YouTube and Preview serve the
// pre-submit confirmation card and may be nil in consumers that only
// submit (cmd/generate).
type Service struct {
	Repo    repository.GenerationRepository
	Watcher *progress.Watcher
	YouTube *youtube.Client
	Preview *preview.Service
	Logger  *slog.Logger

	// Events, when set, hears about tasks reaching a terminal state.
	// Channels log their own delivery failures.
	Events notifier.Notifier
}

// SourceInfo is the confirmation card shown before submitting: what the
// pipeline will consume, as resolved from the pasted URL.
type SourceInfo struct {
	Kind      string
	URL       string
	Title     string
	SiteName  string
	Author    string
	Thumbnail string
	Excerpt   string
}

// Resolve validates the pasted URL for the given kind and fetches its
// metadata: oEmbed for YouTube sources, readability preview for
// translation sources. Metadata failures degrade to a card with only the
// URL; validation failures are errors.
func (s *Service) Resolve(ctx context.Context, kind, rawURL string) (*SourceInfo, error) {
	req := entity.GenerationRequest{Kind: kind, SourceURL: rawURL}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	info := &SourceInfo{Kind: kind, URL: rawURL}

	switch kind {
	case entity.GenerationFromYouTube:
		if s.YouTube == nil {
			return info, nil
		}
		video, err := s.YouTube.Lookup(ctx, rawURL)
		if err != nil {
			if errors.Is(err, youtube.ErrNotYouTubeURL) {
				return nil, &entity.ValidationError{Field: "source_url", Message: "not a YouTube URL"}
			}
			s.Logger.Warn("generation: video lookup failed, submitting blind",
				slog.String("url", rawURL),
				slog.Any("error", err))
			return info, nil
		}
		info.Title = video.Title
		info.Author = video.AuthorName
		info.SiteName = "YouTube"
		info.Thumbnail = video.ThumbnailURL
		info.URL = video.URL

	case entity.GenerationFromTranslation:
		if s.Preview == nil {
			return info, nil
		}
		p, err := s.Preview.Fetch(ctx, rawURL)
		if err != nil {
			s.Logger.Warn("generation: source preview failed, submitting blind",
				slog.String("url", rawURL),
				slog.Any("error", err))
			return info, nil
		}
		info.Title = p.Title
		info.SiteName = p.SiteName
		info.Author = p.Byline
		info.Thumbnail = p.Image
		info.Excerpt = p.Excerpt
	}

	return info, nil
}

// Submit validates and starts a generation task.
func (s *Service) Submit(ctx context.Context, req *entity.GenerationRequest) (*entity.GenerationTask, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	task, err := s.Repo.Start(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("start generation: %w", err)
	}
	if task.TaskID == "" {
		return nil, fmt.Errorf("%w: backend returned no task id", entity.ErrBackendUnavailable)
	}
	return task, nil
}

// Status polls the task state over REST. Used as a fallback when the
// progress socket cannot be established.
func (s *Service) Status(ctx context.Context, taskID string) (*entity.GenerationTask, error) {
	if taskID == "" {
		return nil, fmt.Errorf("%w: task id is required", entity.ErrInvalidInput)
	}
	task, err := s.Repo.Status(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("poll generation %s: %w", taskID, err)
	}
	return task, nil
}

// Watch streams progress events to onEvent until the task completes,
// fails, or ctx ends. Returns the terminal event. A terminal outcome is
// announced to Events; a dropped stream is not, since the task may still
// be running.
func (s *Service) Watch(ctx context.Context, taskID string, onEvent func(entity.ProgressEvent)) (*entity.ProgressEvent, error) {
	if taskID == "" {
		return nil, fmt.Errorf("%w: task id is required", entity.ErrInvalidInput)
	}
	if s.Watcher == nil {
		return nil, fmt.Errorf("%w: progress watching not configured", entity.ErrBackendUnavailable)
	}

	final, err := s.Watcher.Watch(ctx, taskID, onEvent)
	if err != nil && !errors.Is(err, progress.ErrGenerationFailed) {
		return final, err
	}

	if s.Events != nil && final != nil {
		_ = s.Events.Notify(ctx, taskOutcomeEvent(taskID, final))
	}
	return final, err
}

// taskOutcomeEvent shapes the chat message for a finished task. The
// stream carries no article title, so the task id identifies it.
func taskOutcomeEvent(taskID string, final *entity.ProgressEvent) notifier.Event {
	ev := notifier.Event{
		Title: fmt.Sprintf("Задача %s", taskID),
		URL:   "/admin/generate",
	}

	if final.Failed() {
		ev.Kind = notifier.KindGenerationFailed
		ev.Detail = final.Error
		return ev
	}

	ev.Kind = notifier.KindGenerationFinished
	ev.Detail = final.Message
	if final.ArticleID > 0 {
		ev.URL = fmt.Sprintf("/admin/articles/%d/edit", final.ArticleID)
	}
	return ev
}
