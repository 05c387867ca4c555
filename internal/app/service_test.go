package service_test

import (
	"context"
	"testing"
	"time"

	service "github.com/Kartik-0-8/buildathon/internal/app"
	"github.com/Kartik-0-8/buildathon/internal/domain/matching"
	"github.com/Kartik-0-8/buildathon/internal/domain/ranking"
	"github.com/Kartik-0-8/buildathon/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithWorkerCount(8),
			service.WithQueueSize(50_000),
			service.WithDedupeSize(25_000),
			service.WithShardCount(2),
			service.WithPeerWeights(matching.PeerWeights{Skills: 60, Interests: 25, Level: 15, Rating: 15}),
			service.WithHiringWeights(matching.HiringWeights{Skills: 65, Domain: 20, Experience: 15}),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithWorkerCount(2))
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And it should be marked as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
			})

			Convey("And starting again should be a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithWorkerCount(2))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
			})

			Convey("And stopping again should be safe", func() {
				So(svc.Stop, ShouldNotPanic)
			})
		})
	})
}

func TestService_Dedupe(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithWorkerCount(1), service.WithDedupeSize(10))
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When recording an update id twice", func() {
			first := svc.SeenAndRecord(ctx, "update-1")
			second := svc.SeenAndRecord(ctx, "update-1")

			Convey("Then only the second call reports it as seen", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(svc.Size(), ShouldEqual, 1)
			})
		})

		Convey("When unrecording an update id", func() {
			So(svc.SeenAndRecord(ctx, "update-2"), ShouldBeFalse)
			svc.Unrecord(ctx, "update-2")

			Convey("Then it can be recorded again", func() {
				So(svc.SeenAndRecord(ctx, "update-2"), ShouldBeFalse)
			})
		})
	})
}

func TestService_QueriesBeforeIngestion(t *testing.T) {
	Convey("Given a started service with no profiles", t, func() {
		svc := service.New(service.WithWorkerCount(1))
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When querying teammates for an unknown id", func() {
			_, err := svc.Teammates(ctx, "nobody", ranking.Filters{}, 10)

			Convey("Then it should report not found", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When querying candidates for an unknown id", func() {
			_, err := svc.Candidates(ctx, "nobody", ranking.Filters{}, 10)

			Convey("Then it should report not found", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
