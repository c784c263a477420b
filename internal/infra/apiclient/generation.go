package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"fresh-motors-web/internal/domain/entity"
)

// GenerationClient implements repository.GenerationRepository against the
// backend's article generation endpoints. Progress streaming happens over
// the WebSocket watcher, not through this client.
type GenerationClient struct {
	*Client
}

// NewGenerationClient creates a generation repository backed by the REST API.
func NewGenerationClient(c *Client) *GenerationClient {
	return &GenerationClient{Client: c}
}

// Start submits a generation task and returns its id for progress streaming.
func (g *GenerationClient) Start(ctx context.Context, req *entity.GenerationRequest) (*entity.GenerationTask, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var task entity.GenerationTask
	if err := g.post(ctx, "/generation/", req, &task); err != nil {
		return nil, fmt.Errorf("start generation: %w", err)
	}
	if task.TaskID == "" {
		return nil, fmt.Errorf("%w: backend returned no task id", entity.ErrBackendUnavailable)
	}
	return &task, nil
}

// Status polls the task state. Used as a fallback when the progress socket
// cannot be established.
func (g *GenerationClient) Status(ctx context.Context, taskID string) (*entity.GenerationTask, error) {
	if taskID == "" {
		return nil, fmt.Errorf("%w: task id is empty", entity.ErrInvalidInput)
	}
	var task entity.GenerationTask
	if err := g.get(ctx, "/generation/"+url.PathEscape(taskID)+"/", nil, &task); err != nil {
		return nil, fmt.Errorf("get generation status %q: %w", taskID, err)
	}
	return &task, nil
}
