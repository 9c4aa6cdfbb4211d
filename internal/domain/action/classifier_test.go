package action_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jatinorwot/sports-rank/internal/domain/action"
	"github.com/jatinorwot/sports-rank/internal/domain/model"
	"github.com/jatinorwot/sports-rank/internal/domain/pose"
)

func TestClassifyCascade(t *testing.T) {
	Convey("Given the rule cascade", t, func() {
		c := action.NewClassifier()

		Convey("No detected pose yields none with zero confidence", func() {
			label := c.Classify(pose.Features{Detected: false})
			So(label.Action, ShouldEqual, model.ActionNone)
			So(label.Confidence, ShouldEqual, 0)
		})

		Convey("Both wrists high near the top classifies as serve", func() {
			label := c.Classify(pose.Features{
				Detected:       true,
				LeftWristHigh:  true,
				RightWristHigh: true,
				HighestWristY:  0.15,
			})
			So(label.Action, ShouldEqual, model.ActionServe)
			So(label.Confidence, ShouldEqual, 0.8)
		})

		Convey("Both wrists high but not near the top falls through", func() {
			label := c.Classify(pose.Features{
				Detected:       true,
				LeftWristHigh:  true,
				RightWristHigh: true,
				HighestWristY:  0.45,
			})
			So(label.Action, ShouldNotEqual, model.ActionServe)
		})

		Convey("Only the right wrist high classifies as forehand", func() {
			label := c.Classify(pose.Features{Detected: true, RightWristHigh: true})
			So(label.Action, ShouldEqual, model.ActionForehand)
			So(label.Confidence, ShouldEqual, 0.7)
		})

		Convey("Only the left wrist high classifies as backhand", func() {
			label := c.Classify(pose.Features{Detected: true, LeftWristHigh: true})
			So(label.Action, ShouldEqual, model.ActionBackhand)
			So(label.Confidence, ShouldEqual, 0.7)
		})

		Convey("Wide low stance classifies as lunge", func() {
			label := c.Classify(pose.Features{
				Detected:     true,
				StanceWidth:  0.35,
				LowestAnkleY: 0.9,
			})
			So(label.Action, ShouldEqual, model.ActionLunge)
			So(label.Confidence, ShouldEqual, 0.6)
		})

		Convey("Wide stance without the low ankles classifies as ready position", func() {
			label := c.Classify(pose.Features{
				Detected:     true,
				StanceWidth:  0.35,
				LowestAnkleY: 0.6,
			})
			So(label.Action, ShouldEqual, model.ActionReadyPosition)
			So(label.Confidence, ShouldEqual, 0.5)
		})

		Convey("Nothing matching falls back to general movement", func() {
			label := c.Classify(pose.Features{Detected: true})
			So(label.Action, ShouldEqual, model.ActionGeneralMovement)
			So(label.Confidence, ShouldEqual, 0.3)
		})

		Convey("Earlier rules win over later ones", func() {
			// Serve conditions plus lunge conditions: serve is more specific.
			label := c.Classify(pose.Features{
				Detected:       true,
				LeftWristHigh:  true,
				RightWristHigh: true,
				HighestWristY:  0.1,
				StanceWidth:    0.5,
				LowestAnkleY:   0.95,
			})
			So(label.Action, ShouldEqual, model.ActionServe)
		})
	})
}
