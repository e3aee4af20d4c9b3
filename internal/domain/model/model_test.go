package model_test

import (
	"testing"

	"github.com/okian/waterradar/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given profile and metric names", t, func() {
		Convey("Profiles match case-insensitively", func() {
			p, ok := model.ParseProfile(" kid ")
			So(ok, ShouldBeTrue)
			So(p, ShouldEqual, model.ProfileKid)

			_, ok = model.ParseProfile("Marathon")
			So(ok, ShouldBeFalse)
			So(model.Profile("everyday").Valid(), ShouldBeFalse)
			So(model.ProfileEveryday.Valid(), ShouldBeTrue)
		})

		Convey("Metrics match case-insensitively", func() {
			m, ok := model.ParseMetric("NA")
			So(ok, ShouldBeTrue)
			So(m, ShouldEqual, model.MetricSodium)

			_, ok = model.ParseMetric("fe")
			So(ok, ShouldBeFalse)
		})

		Convey("Confidence ranks high above medium above low", func() {
			So(model.ConfidenceHigh.Rank(), ShouldBeGreaterThan, model.ConfidenceMedium.Rank())
			So(model.ConfidenceMedium.Rank(), ShouldBeGreaterThan, model.ConfidenceLow.Rank())
			So(model.Confidence("").Rank(), ShouldEqual, model.ConfidenceLow.Rank())
		})
	})
}

func TestWaterCoverage(t *testing.T) {
	Convey("Given a water without potassium", t, func() {
		w := model.Water{
			ID:        "volvic",
			PH:        model.Float(7),
			TDS:       model.Float(130),
			Calcium:   model.Float(12),
			Magnesium: model.Float(8),
			Sodium:    model.Float(12),
			Chloride:  model.Float(15),
		}

		Convey("Then it still has the minimum set", func() {
			So(w.HasMinimum(), ShouldBeTrue)
			c := w.Coverage()
			So(c.Count, ShouldEqual, 6)
			So(c.Total, ShouldEqual, 7)
			So(c.Missing(), ShouldEqual, 1)
			So(c.Ratio(), ShouldAlmostEqual, 6.0/7.0)
		})

		Convey("Then known values are returned and unknown ones are not zeroed", func() {
			v, ok := w.Value(model.MetricTDS)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 130)

			_, ok = w.Value(model.MetricPotassium)
			So(ok, ShouldBeFalse)
			So(w.Known(model.MetricPotassium), ShouldBeFalse)
		})

		Convey("When a minimum metric is dropped", func() {
			w.Chloride = nil

			Convey("Then the minimum is lost", func() {
				So(w.HasMinimum(), ShouldBeFalse)
				So(w.Coverage().Count, ShouldEqual, 5)
			})
		})

		Convey("And a zero value is still known", func() {
			w.Potassium = model.Float(0)
			So(w.Known(model.MetricPotassium), ShouldBeTrue)
			So(w.Coverage().Count, ShouldEqual, 7)
		})
	})

	Convey("Given an empty coverage", t, func() {
		So(model.Coverage{}.Ratio(), ShouldEqual, 0)
	})
}
