package service_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/jatinorwot/sports-rank/internal/app"
	"github.com/jatinorwot/sports-rank/internal/domain/model"
	"github.com/jatinorwot/sports-rank/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func observation(frameID, groupID string) model.FrameObservation {
	return model.FrameObservation{
		FrameID:     frameID,
		GroupID:     groupID,
		ImageWidth:  1920,
		ImageHeight: 1080,
		Quality: model.QualitySignals{
			OverallVariance: 500,
			SubjectVariance: 500,
			MeanLuminance:   120,
			LuminanceStdDev: 25,
		},
	}
}

// waitForCount polls the service until the store has seen n frames.
func waitForCount(svc *service.Service, n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if stats := svc.GetStats(); stats["totalFrames"] == n {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a service with default options", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithWorkerCount(2), service.WithQueueSize(100))

		Convey("Start then Stop completes cleanly", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil) // idempotent
			svc.Stop()
		})

		Convey("An unknown sport fails startup", func() {
			bad := service.New(service.WithSport("curling"))
			So(bad.Start(ctx), ShouldNotBeNil)
		})

		Convey("Invalid base weights fail startup", func() {
			bad := service.New(service.WithBaseWeights(map[string]float64{
				"peak_action_score": 0.9,
				"ball_interaction":  0.9,
			}))
			So(bad.Start(ctx), ShouldNotBeNil)
		})
	})
}

func TestServicePipeline(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithWorkerCount(2), service.WithQueueSize(100))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("Enqueued frames flow through to the rankings", func() {
			const frames = 5
			for i := 0; i < frames; i++ {
				id := fmt.Sprintf("frame_%03d.jpg", i)
				So(svc.SeenAndRecord(ctx, id), ShouldBeFalse)
				So(svc.Enqueue(ctx, observation(id, "match_a")), ShouldBeTrue)
			}
			So(waitForCount(svc, frames, 5*time.Second), ShouldBeTrue)

			ranked, err := svc.Rankings(ctx)
			So(err, ShouldBeNil)
			So(ranked, ShouldHaveLength, frames)
			for i, r := range ranked {
				So(r.Rank, ShouldEqual, i+1)
			}

			Convey("And per-frame lookup carries the full score vector", func() {
				one, err := svc.Rank(ctx, "frame_000.jpg")
				So(err, ShouldBeNil)
				So(one.FrameID, ShouldEqual, "frame_000.jpg")
				So(one.Scores, ShouldHaveLength, len(model.Metrics))
			})

			Convey("And group reads see the same population", func() {
				So(svc.Groups(ctx), ShouldResemble, []string{"match_a"})

				group, err := svc.GroupRankings(ctx, "match_a")
				So(err, ShouldBeNil)
				So(group, ShouldHaveLength, frames)

				top, err := svc.TopN(ctx, 2)
				So(err, ShouldBeNil)
				So(top, ShouldHaveLength, 2)
			})

			Convey("And the CSV export covers every frame", func() {
				var buf bytes.Buffer
				So(svc.Export(ctx, &buf, ""), ShouldBeNil)

				lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
				So(lines, ShouldHaveLength, frames+1) // header + rows
				So(lines[0], ShouldStartWith, "frame_id,group_id,rank,final_score")
			})

			Convey("And a group export contains only that group", func() {
				var buf bytes.Buffer
				So(svc.Export(ctx, &buf, "match_a"), ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
				So(lines, ShouldHaveLength, frames+1)

				buf.Reset()
				So(svc.Export(ctx, &buf, "no_such_group"), ShouldBeNil)
				lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
				So(lines, ShouldHaveLength, 1) // header only
			})
		})

		Convey("Duplicate submissions are flagged", func() {
			So(svc.SeenAndRecord(ctx, "dup.jpg"), ShouldBeFalse)
			So(svc.SeenAndRecord(ctx, "dup.jpg"), ShouldBeTrue)
			So(svc.Size(), ShouldBeGreaterThanOrEqualTo, 1)

			Convey("Unrecord opens the id for retry", func() {
				svc.Unrecord(ctx, "dup.jpg")
				So(svc.SeenAndRecord(ctx, "dup.jpg"), ShouldBeFalse)
			})
		})

		Convey("GetStats reports the running configuration", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldBeTrue)
			So(stats["sport"], ShouldEqual, "pickleball")
			So(stats["workerCount"], ShouldEqual, 2)
		})
	})
}
