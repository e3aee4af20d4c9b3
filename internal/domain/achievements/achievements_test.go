package achievements_test

import (
	"testing"

	"github.com/okian/waterradar/internal/domain/achievements"
	"github.com/okian/waterradar/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultRegistry(t *testing.T) {
	Convey("Given the default rules", t, func() {
		reg := achievements.Default()

		Convey("When a still low-mineral water is evaluated", func() {
			w := model.Water{
				PH: model.Float(7.4), TDS: model.Float(60), Calcium: model.Float(10), Magnesium: model.Float(3),
				Sodium: model.Float(5), Potassium: model.Float(1), Chloride: model.Float(8), Sparkling: model.Bool(false),
			}

			Convey("Then it earns daily, coffee and still", func() {
				So(reg.Tags(w), ShouldResemble, []achievements.Tag{
					achievements.TagDaily, achievements.TagCoffee, achievements.TagStill,
				})
			})
		})

		Convey("When a sparkling therapeutic water is evaluated", func() {
			w := model.Water{
				Group: model.GroupTherapeutic, TDS: model.Float(5500), Sodium: model.Float(1200),
				Sparkling: model.Bool(true),
			}

			Convey("Then it earns therapeutic, sport and sparkling", func() {
				So(reg.Tags(w), ShouldResemble, []achievements.Tag{
					achievements.TagTherapeutic, achievements.TagSport, achievements.TagSparkling,
				})
			})
		})

		Convey("When coffee data is incomplete", func() {
			w := model.Water{PH: model.Float(7.5), TDS: model.Float(60), Sparkling: model.Bool(false)}
			So(reg.Tags(w), ShouldNotContain, achievements.TagCoffee)
		})

		Convey("When sparkling is unknown", func() {
			tags := reg.Tags(model.Water{})
			So(tags, ShouldNotContain, achievements.TagSparkling)
			So(tags, ShouldNotContain, achievements.TagStill)
			So(tags, ShouldBeEmpty)
		})

		Convey("When potassium alone is high", func() {
			So(reg.Tags(model.Water{Potassium: model.Float(2)}), ShouldContain, achievements.TagSport)
		})
	})

	Convey("Given a custom registry", t, func() {
		reg := achievements.NewRegistry(
			achievements.Rule{Tag: "alkaline", When: func(w model.Water) bool { return w.PH != nil && *w.PH >= 8 }},
			achievements.Rule{Tag: "alkaline", When: func(model.Water) bool { return true }},
			achievements.Rule{Tag: "broken"},
		)

		Convey("Then each tag is reported once and nil predicates are dropped", func() {
			So(reg.Tags(model.Water{PH: model.Float(8.2)}), ShouldResemble, []achievements.Tag{"alkaline"})
			So(reg.Evaluate(model.Water{}), ShouldHaveLength, 1)
		})
	})
}
