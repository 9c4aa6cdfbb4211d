package quality_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jatinorwot/sports-rank/internal/domain/model"
	"github.com/jatinorwot/sports-rank/internal/domain/quality"
)

func TestSharpness(t *testing.T) {
	Convey("Given Laplacian variances", t, func() {
		a := quality.NewAnalyzer()

		Convey("Variance maps linearly and clamps at 10", func() {
			s := a.Analyze(model.QualitySignals{OverallVariance: 450, SubjectVariance: 1500})
			So(s.OverallSharpness, ShouldAlmostEqual, 4.5)
			So(s.SubjectSharpness, ShouldEqual, 10.0)
		})

		Convey("Zero variance scores zero", func() {
			s := a.Analyze(model.QualitySignals{})
			So(s.OverallSharpness, ShouldEqual, 0)
			So(s.SubjectSharpness, ShouldEqual, 0)
		})
	})
}

func TestExposure(t *testing.T) {
	Convey("Given mean luminance tiers", t, func() {
		a := quality.NewAnalyzer()

		cases := []struct {
			luminance float64
			want      float64
		}{
			{120, 9.0}, // well exposed
			{30, 6.0},  // dim but usable
			{225, 6.0}, // bright but usable
			{10, 3.0},  // crushed shadows
			{250, 3.0}, // blown highlights
		}
		for _, c := range cases {
			s := a.Analyze(model.QualitySignals{MeanLuminance: c.luminance})
			So(s.Exposure, ShouldEqual, c.want)
		}
	})
}

func TestContrast(t *testing.T) {
	Convey("Given luminance standard deviations", t, func() {
		a := quality.NewAnalyzer()

		So(a.Analyze(model.QualitySignals{LuminanceStdDev: 25}).Contrast, ShouldAlmostEqual, 5.0)
		So(a.Analyze(model.QualitySignals{LuminanceStdDev: 80}).Contrast, ShouldEqual, 10.0)
	})
}

func TestComposition(t *testing.T) {
	Convey("Given composition geometry", t, func() {
		a := quality.NewAnalyzer()

		Convey("Missing geometry scores neutral everywhere", func() {
			s := a.Analyze(model.QualitySignals{})
			So(s.Composition, ShouldAlmostEqual, 6.0)
		})

		Convey("A well placed subject with room to move scores high", func() {
			s := a.Analyze(model.QualitySignals{
				Framing:     &model.FramingGeometry{AreaRatio: 0.2, TouchingEdges: 0},
				Composition: &model.CompositionGeometry{ThirdsDistance: 0.05, ActionMargin: 0.4},
			})
			// framing 9, thirds 9, action space 9, two neutral optionals.
			So(s.Composition, ShouldAlmostEqual, (9.0+9.0+9.0+6.0+6.0)/5)
		})

		Convey("A subject cut off by the edges takes the framing penalty", func() {
			s := a.Analyze(model.QualitySignals{
				Framing: &model.FramingGeometry{AreaRatio: 0.2, TouchingEdges: 2},
			})
			So(s.Composition, ShouldAlmostEqual, (4.0+6.0+6.0+6.0+6.0)/5)
		})

		Convey("Supplied diagonal and negative space replace their neutrals", func() {
			diag, neg := 8.0, 2.0
			s := a.Analyze(model.QualitySignals{
				Composition: &model.CompositionGeometry{
					ThirdsDistance: 0.5,
					ActionMargin:   0.05,
					Diagonal:       &diag,
					NegativeSpace:  &neg,
				},
			})
			// framing neutral 6, thirds 5, action space 5, then 8 and 2.
			So(s.Composition, ShouldAlmostEqual, (6.0+5.0+5.0+8.0+2.0)/5)
		})
	})
}

func TestTechnicalQuality(t *testing.T) {
	Convey("Given the technical inputs", t, func() {
		a := quality.NewAnalyzer()

		s := a.Analyze(model.QualitySignals{
			SubjectVariance: 800, // subject sharpness 8
			MeanLuminance:   120, // exposure 9
			LuminanceStdDev: 20,  // contrast 4
		})
		So(s.TechnicalQuality, ShouldAlmostEqual, (8.0+9.0+4.0)/3)
	})
}
