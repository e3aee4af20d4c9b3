package reference_test

import (
	"testing"

	"github.com/okian/waterradar/internal/domain/model"
	"github.com/okian/waterradar/internal/domain/reference"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPerLiter(t *testing.T) {
	Convey("Given the reference table", t, func() {
		Convey("Then minerals are spread over two liters", func() {
			So(reference.PerLiter(model.MetricCalcium), ShouldEqual, 400)
			So(reference.PerLiter(model.MetricMagnesium), ShouldEqual, 187.5)
			So(reference.PerLiter(model.MetricPotassium), ShouldEqual, 1000)
			So(reference.PerLiter(model.MetricSodium), ShouldEqual, 750)
			So(reference.PerLiter(model.MetricChloride), ShouldEqual, 400)
		})

		Convey("Then pH and TDS are used directly", func() {
			So(reference.PerLiter(model.MetricPH), ShouldEqual, 7.5)
			So(reference.PerLiter(model.MetricTDS), ShouldEqual, 150)
		})

		Convey("Then every tracked metric has an entry", func() {
			for _, m := range model.Metrics {
				e, ok := reference.Lookup(m)
				So(ok, ShouldBeTrue)
				So(e.Title, ShouldNotBeEmpty)
			}
		})

		Convey("Then an unknown metric has no reference", func() {
			So(reference.PerLiter(model.Metric("zn")), ShouldEqual, 0)
		})
	})
}

func TestMetricStatus(t *testing.T) {
	Convey("Given metric values", t, func() {
		Convey("When the value is unknown", func() {
			So(reference.MetricStatus(model.MetricCalcium, nil), ShouldEqual, reference.StatusUnknown)
		})

		Convey("When the value is close to the daily reference", func() {
			So(reference.MetricStatus(model.MetricCalcium, model.Float(700)), ShouldEqual, reference.StatusDaily)
		})

		Convey("When the value is moderately off", func() {
			So(reference.MetricStatus(model.MetricCalcium, model.Float(400)), ShouldEqual, reference.StatusRotate)
		})

		Convey("When the value is far off", func() {
			So(reference.MetricStatus(model.MetricCalcium, model.Float(80)), ShouldEqual, reference.StatusTherapeutic)
		})

		Convey("When TDS is inside the dead zone", func() {
			So(reference.MetricStatus(model.MetricTDS, model.Float(290)), ShouldEqual, reference.StatusDaily)
		})

		Convey("When collecting statuses for a record", func() {
			w := model.Water{PH: model.Float(7.4)}
			st := reference.Statuses(w)
			So(st, ShouldHaveLength, len(model.Metrics))
			So(st[model.MetricPH], ShouldEqual, reference.StatusDaily)
			So(st[model.MetricSodium], ShouldEqual, reference.StatusUnknown)
		})
	})
}
