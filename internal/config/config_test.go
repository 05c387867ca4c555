package config_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/Kartik-0-8/buildathon/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 100_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 500_000)
			convey.So(cfg.ShardCount, convey.ShouldEqual, 16)
			convey.So(cfg.MaxMatchLimit, convey.ShouldEqual, 100)
		})

		convey.Convey("Then the scoring weights should sum to the peer scale", func() {
			convey.So(cfg.PeerSkillWeight, convey.ShouldEqual, 45)
			convey.So(cfg.PeerInterestWeight, convey.ShouldEqual, 25)
			convey.So(cfg.PeerLevelWeight, convey.ShouldEqual, 15)
			convey.So(cfg.PeerRatingWeight, convey.ShouldEqual, 15)
			convey.So(cfg.HiringSkillWeight, convey.ShouldEqual, 65)
			convey.So(cfg.HiringDomainWeight, convey.ShouldEqual, 20)
			convey.So(cfg.HiringExperienceWeight, convey.ShouldEqual, 15)
		})
	})
}
