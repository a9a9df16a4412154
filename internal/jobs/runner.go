package jobs

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

// CronJob is a named task with a cron schedule.
type CronJob interface {
	ID() string
	Schedule() string
	Run()
}

// TaskExecutor runs cron jobs, skipping a tick when the previous run of
// the same job is still going.
type TaskExecutor struct {
	cron    *cron.Cron
	jobs    []CronJob
	running mapset.Set[string]
	mu      sync.Mutex
}

func NewTaskExecutor(jobs []CronJob) *TaskExecutor {
	return &TaskExecutor{
		cron:    cron.New(),
		jobs:    jobs,
		running: mapset.NewSet[string](),
	}
}

// Run schedules the jobs. Each job runs in its own goroutine inside the cron.
func (t *TaskExecutor) Run() {
	for _, job := range t.jobs {
		err := t.cron.AddFunc(job.Schedule(), func() {
			t.mu.Lock()
			if t.running.Contains(job.ID()) {
				t.mu.Unlock()
				logrus.Warnf("task %s is already running", job.ID())
				return
			}
			t.running.Add(job.ID())
			t.mu.Unlock()

			defer func() {
				t.mu.Lock()
				defer t.mu.Unlock()
				t.running.Remove(job.ID())
			}()

			job.Run()
		})

		if err != nil {
			logrus.Errorf("failed to add task %s to cron: %v", job.ID(), err)
			panic(err)
		}
	}

	t.cron.Start()
}

func (t *TaskExecutor) Stop() {
	logrus.Infof("stopping all tasks")
	t.cron.Stop()
}
