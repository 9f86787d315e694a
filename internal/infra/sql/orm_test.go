package sql_test

import (
	"context"
	"time"

	"leverbox/internal/infra/sql"

	"github.com/google/uuid"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type testRecord struct {
	ID   uint `gorm:"primaryKey"`
	Kind string
}

var _ = ginkgo.Describe("ORM", func() {
	var (
		orm sql.ORM
		ctx context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		orm, err = sql.NewMemoryORM(uuid.NewString(), 2*time.Second)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(orm.AutoMigrate(&testRecord{})).To(gomega.Succeed())
		ctx = context.Background()
	})

	ginkgo.When("counting an empty table", func() {
		ginkgo.It("should complete within the configured timeout", func() {
			var count int64
			err := orm.WithContext(ctx).Model(&testRecord{}).Count(&count).Error()
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(count).To(gomega.Equal(int64(0)))
		})
	})

	ginkgo.When("records are stored", func() {
		ginkgo.BeforeEach(func() {
			for _, kind := range []string{"reward", "reward", "synch_pull"} {
				gomega.Expect(orm.WithContext(ctx).Create(&testRecord{Kind: kind}).Error()).To(gomega.Succeed())
			}
		})

		ginkgo.It("should filter and order them", func() {
			var records []testRecord
			err := orm.WithContext(ctx).Where("kind = ?", "reward").Order("id desc").Limit(1).Find(&records).Error()
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(records).To(gomega.HaveLen(1))
			gomega.Expect(records[0].ID).To(gomega.Equal(uint(2)))
		})

		ginkgo.It("should aggregate them by group", func() {
			var rows []struct {
				Kind  string
				Total int64
			}
			err := orm.WithContext(ctx).Model(&testRecord{}).
				Select("kind, count(*) as total").Group("kind").Order("kind").Scan(&rows).Error()
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(rows).To(gomega.HaveLen(2))
			gomega.Expect(rows[0].Kind).To(gomega.Equal("reward"))
			gomega.Expect(rows[0].Total).To(gomega.Equal(int64(2)))
		})
	})

	ginkgo.When("two handles share a name", func() {
		ginkgo.It("should see the same data", func() {
			name := uuid.NewString()
			first, err := sql.NewMemoryORM(name, 0)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(first.AutoMigrate(&testRecord{})).To(gomega.Succeed())
			gomega.Expect(first.Create(&testRecord{Kind: "reward"}).Error()).To(gomega.Succeed())

			second, err := sql.NewMemoryORM(name, 0)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			var count int64
			gomega.Expect(second.Model(&testRecord{}).Count(&count).Error()).To(gomega.Succeed())
			gomega.Expect(count).To(gomega.Equal(int64(1)))
		})
	})

	ginkgo.When("the caller is traced", func() {
		ginkgo.It("should record one client span per statement", func() {
			recorder := tracetest.NewSpanRecorder()
			provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
			previous := otel.GetTracerProvider()
			otel.SetTracerProvider(provider)
			defer otel.SetTracerProvider(previous)

			traced, parent := provider.Tracer("test").Start(ctx, "GET /v1/trials")
			gomega.Expect(orm.WithContext(traced).Create(&testRecord{Kind: "reward"}).Error()).To(gomega.Succeed())
			parent.End()

			names := []string{}
			for _, span := range recorder.Ended() {
				names = append(names, span.Name())
			}
			gomega.Expect(names).To(gomega.ConsistOf("sqlite.create", "GET /v1/trials"))
		})
	})
})
