package ranking_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jatinorwot/sports-rank/internal/domain/model"
	"github.com/jatinorwot/sports-rank/internal/domain/ranking"
)

func result(frameID, groupID string, score float64) *model.FrameResult {
	return &model.FrameResult{
		FrameID:    frameID,
		GroupID:    groupID,
		FinalScore: score,
		Scores:     model.NewScoreVector(),
	}
}

func TestRankOrdering(t *testing.T) {
	Convey("Given a batch with distinct scores", t, func() {
		e := ranking.NewEngine()
		results := []*model.FrameResult{
			result("c.jpg", "g1", 4.2),
			result("a.jpg", "g1", 9.1),
			result("b.jpg", "g2", 7.3),
		}

		Convey("The combined ranking is score-descending with dense ranks", func() {
			out := e.Rank(results)

			So(out.Combined, ShouldHaveLength, 3)
			So(out.Combined[0].Result.FrameID, ShouldEqual, "a.jpg")
			So(out.Combined[1].Result.FrameID, ShouldEqual, "b.jpg")
			So(out.Combined[2].Result.FrameID, ShouldEqual, "c.jpg")
			for i, entry := range out.Combined {
				So(entry.Rank, ShouldEqual, i+1)
				So(entry.Scope, ShouldEqual, ranking.ScopeCombined)
			}
		})

		Convey("The input slice is left untouched", func() {
			e.Rank(results)
			So(results[0].FrameID, ShouldEqual, "c.jpg")
		})
	})
}

func TestRankTies(t *testing.T) {
	Convey("Given frames with identical scores", t, func() {
		e := ranking.NewEngine()
		results := []*model.FrameResult{
			result("z.jpg", "g1", 5.0),
			result("a.jpg", "g1", 5.0),
			result("m.jpg", "g1", 5.0),
		}

		Convey("Ascending frame_id breaks the tie and ranks stay dense", func() {
			out := e.Rank(results)

			So(out.Combined[0].Result.FrameID, ShouldEqual, "a.jpg")
			So(out.Combined[1].Result.FrameID, ShouldEqual, "m.jpg")
			So(out.Combined[2].Result.FrameID, ShouldEqual, "z.jpg")
			So(out.Combined[0].Rank, ShouldEqual, 1)
			So(out.Combined[1].Rank, ShouldEqual, 2)
			So(out.Combined[2].Rank, ShouldEqual, 3)
		})

		Convey("Two runs over a shuffled copy agree exactly", func() {
			shuffled := []*model.FrameResult{results[2], results[0], results[1]}
			first := e.Rank(results)
			second := e.Rank(shuffled)

			for i := range first.Combined {
				So(second.Combined[i].Result.FrameID, ShouldEqual, first.Combined[i].Result.FrameID)
				So(second.Combined[i].Rank, ShouldEqual, first.Combined[i].Rank)
			}
		})
	})
}

func TestRankGroups(t *testing.T) {
	Convey("Given frames spread over groups", t, func() {
		e := ranking.NewEngine()
		results := []*model.FrameResult{
			result("a.jpg", "g1", 9.0),
			result("b.jpg", "g2", 8.0),
			result("c.jpg", "g1", 7.0),
			result("d.jpg", "g2", 6.0),
		}

		Convey("Each group gets its own dense ranking in combined order", func() {
			out := e.Rank(results)

			So(out.ByGroup, ShouldHaveLength, 2)

			g1 := out.ByGroup["g1"]
			So(g1, ShouldHaveLength, 2)
			So(g1[0].Result.FrameID, ShouldEqual, "a.jpg")
			So(g1[0].Rank, ShouldEqual, 1)
			So(g1[1].Result.FrameID, ShouldEqual, "c.jpg")
			So(g1[1].Rank, ShouldEqual, 2)
			So(g1[0].Scope, ShouldEqual, ranking.ScopePerGroup)

			g2 := out.ByGroup["g2"]
			So(g2[0].Result.FrameID, ShouldEqual, "b.jpg")
			So(g2[1].Result.FrameID, ShouldEqual, "d.jpg")
		})

		Convey("Group restricts to the requested group only", func() {
			entries := e.Group(results, "g2")

			So(entries, ShouldHaveLength, 2)
			So(entries[0].Result.FrameID, ShouldEqual, "b.jpg")
			So(entries[1].Result.FrameID, ShouldEqual, "d.jpg")
		})

		Convey("An unknown group yields no entries", func() {
			So(e.Group(results, "g9"), ShouldBeEmpty)
		})
	})
}

func TestRankEmpty(t *testing.T) {
	Convey("Given no results", t, func() {
		e := ranking.NewEngine()
		out := e.Rank(nil)

		So(out.Combined, ShouldBeEmpty)
		So(out.ByGroup, ShouldBeEmpty)
	})
}

func TestLess(t *testing.T) {
	Convey("Given the ordering comparator", t, func() {
		hi := result("b.jpg", "g1", 9.0)
		lo := result("a.jpg", "g1", 3.0)
		tie := result("a.jpg", "g1", 9.0)

		So(ranking.Less(hi, lo), ShouldBeTrue)
		So(ranking.Less(lo, hi), ShouldBeFalse)
		So(ranking.Less(tie, hi), ShouldBeTrue) // same score, smaller frame_id
		So(ranking.Less(hi, tie), ShouldBeFalse)
	})
}
