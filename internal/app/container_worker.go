package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"delivery-coordinator/internal/config"
	"delivery-coordinator/internal/logx"
	"delivery-coordinator/internal/service/delivery"
	"delivery-coordinator/internal/service/statusevents"
	"delivery-coordinator/internal/transport/kafka"
)

type processorIn struct {
	dig.In

	Delivery *delivery.Service
	Results  *prometheus.CounterVec `name:"courier_status_events_total"`
	Logger   logx.Logger
}

func newStatusProcessor(in processorIn) *statusevents.Processor {
	return statusevents.NewProcessor(in.Delivery, in.Results, in.Logger)
}

func newStatusConsumer(cfg *config.Config, logger logx.Logger, p *statusevents.Processor) (*kafka.Consumer, error) {
	return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.StatusTopic, makeStatusKafka(p))
}

func registerWorker(container *dig.Container) error {
	return provideAll(container, newStatusProcessor, newStatusConsumer)
}
