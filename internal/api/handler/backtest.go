// internal/api/handler/backtest.go
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/smaquant/smaquant/internal/api/job"
	"github.com/smaquant/smaquant/internal/api/response"
	"github.com/smaquant/smaquant/internal/backtest"
	"github.com/smaquant/smaquant/internal/core"
	"github.com/smaquant/smaquant/internal/metrics"
)

const (
	backtestTimeout = 5 * time.Minute
	dateLayout      = "2006-01-02"
)

// Narrator turns a backtest result into a plain-language summary.
type Narrator interface {
	Summarize(ctx context.Context, result *backtest.Result) (string, error)
}

// Archiver persists completed backtest results.
type Archiver interface {
	SaveResult(ctx context.Context, result *backtest.Result) (string, error)
}

// BacktestRequest is the request body for starting a backtest.
type BacktestRequest struct {
	Symbol      string `json:"symbol"`
	Start       string `json:"start"`
	End         string `json:"end"`
	ShortWindow int    `json:"short_window"`
	LongWindow  int    `json:"long_window"`
}

// BacktestResponse is the completed-job payload.
type BacktestResponse struct {
	Result      *backtest.Result `json:"result"`
	Narrative   string           `json:"narrative,omitempty"`
	ArchivePath string           `json:"archive_path,omitempty"`
}

// BacktestHandler handles backtest API requests. Jobs run asynchronously;
// clients poll the job status endpoint for the result.
type BacktestHandler struct {
	jobStore   *job.Store
	backtester *backtest.Backtester
	narrator   Narrator          // optional
	archiver   Archiver          // optional
	registry   *metrics.Registry // optional
	defaults   WindowDefaults
	logger     *zap.Logger
}

// WindowDefaults supplies SMA windows when the request omits them.
type WindowDefaults struct {
	Short int
	Long  int
}

// Option configures a BacktestHandler.
type Option func(*BacktestHandler)

// WithNarrator attaches a narrative generator.
func WithNarrator(n Narrator) Option {
	return func(h *BacktestHandler) { h.narrator = n }
}

// WithArchiver attaches a result archive.
func WithArchiver(a Archiver) Option {
	return func(h *BacktestHandler) { h.archiver = a }
}

// WithMetrics attaches a metrics registry.
func WithMetrics(r *metrics.Registry) Option {
	return func(h *BacktestHandler) { h.registry = r }
}

// NewBacktestHandler creates a new backtest handler.
func NewBacktestHandler(
	jobStore *job.Store,
	backtester *backtest.Backtester,
	defaults WindowDefaults,
	logger *zap.Logger,
	opts ...Option,
) *BacktestHandler {
	h := &BacktestHandler{
		jobStore:   jobStore,
		backtester: backtester,
		defaults:   defaults,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Create starts a new backtest job.
func (h *BacktestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body BacktestRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrConfigInvalid, err))
		return
	}

	req, err := h.toRequest(body)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	j := h.jobStore.Create("backtest")

	// Copy the ID before starting the goroutine to avoid a race on the job
	jobID := j.ID
	status := j.Status

	go h.runBacktest(jobID, req)

	response.JSON(w, http.StatusAccepted, map[string]any{
		"job_id": jobID,
		"status": status,
	})
}

// toRequest validates the body and fills in window defaults.
func (h *BacktestHandler) toRequest(body BacktestRequest) (backtest.Request, error) {
	req := backtest.Request{
		Symbol:      body.Symbol,
		ShortWindow: body.ShortWindow,
		LongWindow:  body.LongWindow,
	}
	if req.ShortWindow == 0 && req.LongWindow == 0 {
		req.ShortWindow = h.defaults.Short
		req.LongWindow = h.defaults.Long
	}

	var err error
	if req.Start, err = time.Parse(dateLayout, body.Start); err != nil {
		return req, core.WrapError(core.ErrConfigInvalid, err)
	}
	if req.End, err = time.Parse(dateLayout, body.End); err != nil {
		return req, core.WrapError(core.ErrConfigInvalid, err)
	}

	return req, req.Validate()
}

// runBacktest executes the backtest and updates job status.
func (h *BacktestHandler) runBacktest(jobID string, req backtest.Request) {
	h.jobStore.Update(jobID, func(j *job.Job) {
		j.Status = job.StatusRunning
	})
	if h.registry != nil {
		h.registry.JobStarted()
		defer h.registry.JobFinished()
	}

	ctx, cancel := context.WithTimeout(context.Background(), backtestTimeout)
	defer cancel()

	start := time.Now()
	result, err := h.backtester.Run(ctx, req)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		if h.registry != nil {
			h.registry.RecordBacktest("error", elapsed, 0)
		}
		h.logger.Warn("backtest job failed",
			zap.String("job_id", jobID),
			zap.String("symbol", req.Symbol),
			zap.Error(err))
		h.jobStore.Update(jobID, func(j *job.Job) {
			j.Status = job.StatusFailed
			j.Error = core.WrapError(core.ErrBacktestFailed, err)
		})
		return
	}

	if h.registry != nil {
		h.registry.RecordBacktest("success", elapsed, len(result.Records))
		for _, m := range result.Markers {
			h.registry.RecordSignal(string(m.Action))
		}
	}

	resp := &BacktestResponse{Result: result}

	if h.narrator != nil {
		summary, nerr := h.narrator.Summarize(ctx, result)
		if nerr != nil {
			h.logger.Warn("narrative generation failed",
				zap.String("job_id", jobID), zap.Error(nerr))
		} else {
			resp.Narrative = summary
		}
	}

	if h.archiver != nil {
		path, aerr := h.archiver.SaveResult(ctx, result)
		if aerr != nil {
			h.logger.Warn("archiving result failed",
				zap.String("job_id", jobID), zap.Error(aerr))
		} else {
			resp.ArchivePath = path
		}
	}

	h.jobStore.Update(jobID, func(j *job.Job) {
		j.Status = job.StatusComplete
		j.Progress = 100
		j.Result = resp
	})
}

// GetStatus returns the status of a backtest job.
func (h *BacktestHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	j, err := h.jobStore.Get(jobID)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	resp := map[string]any{
		"job_id":   j.ID,
		"status":   j.Status,
		"progress": j.Progress,
	}

	if j.Status == job.StatusComplete {
		resp["result"] = j.Result
	}
	if j.Status == job.StatusFailed && j.Error != nil {
		resp["error"] = map[string]string{
			"code":    j.Error.Code,
			"message": j.Error.Message,
		}
	}

	response.JSON(w, http.StatusOK, resp)
}

// List returns all known jobs.
func (h *BacktestHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.jobStore.List())
}
