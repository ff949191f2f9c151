// Package scheduler wires the daily pipeline run onto a cron schedule.
package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"MarketETL/internal/pipeline"
)

// Scheduler manages the cron-driven pipeline runs.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline
}

// NewScheduler creates a new Scheduler.
func NewScheduler(p *pipeline.Pipeline) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: p,
	}
}

// RegisterAll registers the daily batch task.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the daily batch immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily batch")
	if err := s.Pipeline.Run(); err != nil {
		log.Printf("[ERROR] daily batch: %v", err)
	}
}
