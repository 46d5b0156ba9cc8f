package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"delivery-coordinator/internal/config"
	"delivery-coordinator/internal/jobs"
	"delivery-coordinator/internal/logx"
	"delivery-coordinator/internal/repository"
)

type auditorIn struct {
	dig.In

	Config *config.Config
	Repo   *repository.QueryRepo
	Gauge  prometheus.Gauge `name:"courier_availability_violations"`
	Logger logx.Logger
}

func newAuditor(in auditorIn) *jobs.AvailabilityAuditor {
	return jobs.NewAvailabilityAuditor(in.Repo, in.Gauge, in.Config.Audit.Schedule, in.Config.Delivery.OperationTimeout, in.Logger)
}

func registerJobs(container *dig.Container) error {
	return provideAll(container, newAuditor)
}
