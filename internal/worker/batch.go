package worker

import (
	"context"

	"github.com/stijnwollerich/sparksmetrics-website/internal/model"
	"github.com/stijnwollerich/sparksmetrics-website/internal/score"
)

// ScoreJob re-scores one published article. The scorer is pure, so jobs
// run concurrently without coordination.
type ScoreJob struct {
	Slug        string
	Title       string
	Description string
	Keyword     string
	HTML        string
	Scorer      *score.Scorer
}

// Execute runs the scoring job
func (j *ScoreJob) Execute(ctx context.Context) Result {
	total, breakdown := j.Scorer.Calculate(j.HTML, j.Title, j.Description, j.Keyword)
	return &ScoreResult{
		Slug:      j.Slug,
		Title:     j.Title,
		Score:     total,
		Breakdown: breakdown,
	}
}

// ScoreResult is the outcome of a scoring job
type ScoreResult struct {
	Slug      string
	Title     string
	Score     int
	Breakdown model.ScoreBreakdown
	Error     error
}

// GetError returns the error from the score result
func (r *ScoreResult) GetError() error {
	return r.Error
}

// BatchScorer scores many articles concurrently
type BatchScorer struct {
	concurrency int
}

// NewBatchScorer creates a batch scorer
func NewBatchScorer(concurrency int) *BatchScorer {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &BatchScorer{concurrency: concurrency}
}

// Process runs all jobs through a worker pool and returns their results
func (b *BatchScorer) Process(ctx context.Context, jobs []*ScoreJob) []*ScoreResult {
	if len(jobs) == 0 {
		return []*ScoreResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	// Feed the queue from its own goroutine so Wait can drain results
	// while jobs larger than the buffers are still being submitted
	go func() {
		for _, job := range jobs {
			pool.Submit(job)
		}
		pool.Finish()
	}()

	results := pool.Wait()
	scoreResults := make([]*ScoreResult, 0, len(results))
	for _, r := range results {
		scoreResults = append(scoreResults, r.(*ScoreResult))
	}
	return scoreResults
}
