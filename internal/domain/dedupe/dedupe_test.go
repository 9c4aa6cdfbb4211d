package dedupe_test

import (
	"context"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jatinorwot/sports-rank/internal/domain/dedupe"
)

func TestSeenAndRecord(t *testing.T) {
	Convey("Given a fresh deduper", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper()

		Convey("The first sighting records, the second reports seen", func() {
			So(d.SeenAndRecord(ctx, "frame_001.jpg"), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, "frame_001.jpg"), ShouldBeTrue)
			So(d.Size(), ShouldEqual, 1)
		})

		Convey("Distinct ids are tracked independently", func() {
			So(d.SeenAndRecord(ctx, "a.jpg"), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, "b.jpg"), ShouldBeFalse)
			So(d.Size(), ShouldEqual, 2)
		})
	})
}

func TestUnrecord(t *testing.T) {
	Convey("Given a recorded id", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper()
		So(d.SeenAndRecord(ctx, "retry.jpg"), ShouldBeFalse)

		Convey("Unrecord makes the id submittable again", func() {
			d.Unrecord(ctx, "retry.jpg")
			So(d.Size(), ShouldEqual, 0)
			So(d.SeenAndRecord(ctx, "retry.jpg"), ShouldBeFalse)
		})

		Convey("Unrecording an unknown id is a no-op", func() {
			d.Unrecord(ctx, "never_seen.jpg")
			So(d.Size(), ShouldEqual, 1)
		})
	})
}

func TestEviction(t *testing.T) {
	Convey("Given a deduper bounded to three ids", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

		for i := 0; i < 3; i++ {
			So(d.SeenAndRecord(ctx, fmt.Sprintf("frame_%03d.jpg", i)), ShouldBeFalse)
		}

		Convey("A fourth id evicts the oldest", func() {
			So(d.SeenAndRecord(ctx, "frame_003.jpg"), ShouldBeFalse)

			So(d.Size(), ShouldEqual, 3)
			So(d.SeenAndRecord(ctx, "frame_000.jpg"), ShouldBeFalse) // evicted, so fresh again
		})

		Convey("Unrecorded ids do not count toward the bound", func() {
			d.Unrecord(ctx, "frame_001.jpg")
			So(d.SeenAndRecord(ctx, "frame_003.jpg"), ShouldBeFalse)

			// frame_000 and frame_002 must survive: the bound was not hit.
			So(d.SeenAndRecord(ctx, "frame_000.jpg"), ShouldBeTrue)
			So(d.SeenAndRecord(ctx, "frame_002.jpg"), ShouldBeTrue)
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))

		Convey("Nothing is ever evicted", func() {
			for i := 0; i < 100; i++ {
				So(d.SeenAndRecord(ctx, fmt.Sprintf("frame_%03d.jpg", i)), ShouldBeFalse)
			}
			So(d.Size(), ShouldEqual, 100)
			So(d.SeenAndRecord(ctx, "frame_000.jpg"), ShouldBeTrue)
		})
	})
}
