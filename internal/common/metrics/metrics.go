// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	ApplicationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recruitment_applications_total",
			Help: "Apply attempts by outcome",
		},
		[]string{"result"},
	)

	StatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recruitment_status_transitions_total",
			Help: "Application status transitions",
		},
		[]string{"from", "to"},
	)

	JobsClosed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recruitment_jobs_closed_total",
			Help: "Jobs closed, by reason",
		},
		[]string{"reason"},
	)

	SkillTestCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recruitment_skill_test_cache_lookups_total",
			Help: "Skill test cache lookups by result",
		},
		[]string{"result"},
	)
)
