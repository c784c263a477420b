package entity

import "fmt"

// Generation kinds accepted by the backend task endpoint.
const (
	GenerationFromYouTube     = "youtube"
	GenerationFromTranslation = "translation"
)

// GenerationRequest is the payload submitted to start an article
// generation task on the backend.
type GenerationRequest struct {
	Kind       string `json:"kind"`
	SourceURL  string `json:"source_url"`
	CategoryID int64  `json:"category_id,omitempty"`
	Publish    bool   `json:"publish,omitempty"`
}

// Validate checks the generation form input.
func (r *GenerationRequest) Validate() error {
	if r.Kind != GenerationFromYouTube && r.Kind != GenerationFromTranslation {
		return &ValidationError{Field: "kind", Message: "kind must be youtube or translation"}
	}
	if err := ValidateURL(r.SourceURL); err != nil {
		return err
	}
	return nil
}

// GenerationTask identifies a running backend generation job.
type GenerationTask struct {
	TaskID    string `json:"task_id"`
	Kind      string `json:"kind"`
	SourceURL string `json:"source_url"`
	Status    string `json:"status,omitempty"`
}

// Boundaries of the fixed step enum carried by progress events.
const (
	GenerationStepMin = 1
	GenerationStepMax = 9
)

// generationStepNames maps each pipeline step to its display name. The
// step set is fixed by the backend protocol; names are presentation only.
var generationStepNames = map[int]string{
	1: "Queued",
	2: "Fetching source",
	3: "Extracting content",
	4: "Translating",
	5: "Writing draft",
	6: "Selecting images",
	7: "Extracting vehicle specs",
	8: "Optimizing for search",
	9: "Publishing",
}

// GenerationStepName returns the display name of a pipeline step, or a
// numbered placeholder for values outside the known enum.
func GenerationStepName(step int) string {
	if name, ok := generationStepNames[step]; ok {
		return name
	}
	return fmt.Sprintf("Step %d", step)
}

// ProgressEvent is one inbound message of the generation WebSocket stream:
// { step: 1-9, progress: 0-100, message, article_id?, error? }.
// The schema is owned by the backend and consumed as-is.
type ProgressEvent struct {
	Step      int    `json:"step"`
	Progress  int    `json:"progress"`
	Message   string `json:"message,omitempty"`
	ArticleID int64  `json:"article_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Done reports task completion. Only the final step at full progress
// completes a task; progress 100 on an earlier step means the step
// finished, not the pipeline.
func (e *ProgressEvent) Done() bool {
	return e.Step == GenerationStepMax && e.Progress >= 100
}

// Failed reports whether the event carries a terminal error.
func (e *ProgressEvent) Failed() bool {
	return e.Error != ""
}

// StepName returns the display name of the event's step.
func (e *ProgressEvent) StepName() string {
	return GenerationStepName(e.Step)
}
