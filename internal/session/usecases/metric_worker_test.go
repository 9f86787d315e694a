package usecases_test

import (
	"context"

	apparatus "leverbox/internal/apparatus/domain"
	"leverbox/internal/infra/async"
	"leverbox/internal/session/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

var _ = ginkgo.Describe("MetricWorker", func() {
	var (
		reader   *sdkmetric.ManualReader
		broker   *async.LocalBroker
		cancel   context.CancelFunc
		finished chan struct{}
	)

	collect := func() map[string]metricdata.Metrics {
		var rm metricdata.ResourceMetrics
		gomega.Expect(reader.Collect(context.Background(), &rm)).To(gomega.Succeed())
		byName := map[string]metricdata.Metrics{}
		for _, scope := range rm.ScopeMetrics {
			for _, m := range scope.Metrics {
				byName[m.Name] = m
			}
		}
		return byName
	}

	sumOf := func(m metricdata.Metrics) int64 {
		sum, ok := m.Data.(metricdata.Sum[int64])
		if !ok {
			return 0
		}
		var total int64
		for _, point := range sum.DataPoints {
			total += point.Value
		}
		return total
	}

	ginkgo.BeforeEach(func() {
		reader = sdkmetric.NewManualReader()
		otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
		broker = async.NewLocalBroker()

		worker, err := usecases.NewMetricWorker(broker, 2)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		finished = make(chan struct{})
		go worker.Run(ctx, func() { close(finished) })
	})

	ginkgo.AfterEach(func() {
		cancel()
		gomega.Eventually(finished).Should(gomega.BeClosed())
	})

	ginkgo.It("should count events and dispensed units", func() {
		observer := usecases.NewBrokerObserver(broker)
		observer.Observe(apparatus.Event{Kind: apparatus.EventSynchPull, Role: apparatus.RoleMaster, TotalSynchPullCount: 1})
		observer.Observe(apparatus.Event{Kind: apparatus.EventReward, Role: apparatus.RoleMaster})
		observer.Observe(apparatus.Event{Kind: apparatus.EventReward, Role: apparatus.RoleMaster})

		gomega.Eventually(func() int64 {
			return sumOf(collect()["leverbox.box.events.total"])
		}).Should(gomega.Equal(int64(3)))
		gomega.Expect(sumOf(collect()["leverbox.reward.units.total"])).To(gomega.Equal(int64(4)))
	})

	ginkgo.It("should track the current goal", func() {
		observer := usecases.NewBrokerObserver(broker)
		observer.Observe(apparatus.Event{Kind: apparatus.EventModeChanged, Role: apparatus.RoleTraining, Mode: apparatus.ModeTwo, Goal: 3})

		gomega.Eventually(func() []metricdata.DataPoint[int64] {
			gauge, _ := collect()["leverbox.goal"].Data.(metricdata.Gauge[int64])
			return gauge.DataPoints
		}).Should(gomega.ContainElement(gomega.HaveField("Value", int64(3))))
	})
})
