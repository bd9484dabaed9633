package workers

import (
	"time"

	"api/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunTracker records worker cycles in the worker_runs table so operators
// can tell when a singleton worker last ran and how it ended.
type RunTracker struct {
	DB *gorm.DB
}

func (t *RunTracker) StartRun(workerName string) (*models.WorkerRun, error) {
	run := models.WorkerRun{
		WorkerName: workerName,
		Status:     models.WorkerRunStatusRunning,
		StartedAt:  time.Now(),
	}
	if err := t.DB.Create(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (t *RunTracker) CompleteRun(run *models.WorkerRun) {
	t.endRun(run, models.WorkerRunStatusCompleted)
}

func (t *RunTracker) FailRun(run *models.WorkerRun) {
	t.endRun(run, models.WorkerRunStatusFailed)
}

func (t *RunTracker) endRun(run *models.WorkerRun, status models.WorkerRunStatus) {
	now := time.Now()
	err := t.DB.Model(run).Updates(map[string]interface{}{
		"status":   status,
		"ended_at": now,
	}).Error
	if err != nil {
		zap.L().Error("Failed to close worker run",
			zap.String("worker", run.WorkerName),
			zap.String("status", string(status)),
			zap.Error(err))
	}
}
