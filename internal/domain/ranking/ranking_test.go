package ranking_test

import (
	"testing"

	"github.com/okian/waterradar/internal/domain/model"
	"github.com/okian/waterradar/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func full(id, brand string, group model.Group, conf model.Confidence, ph, tds, ca, mg, na, k, cl float64) model.Water {
	return model.Water{
		ID: id, BrandName: brand, Group: group, Confidence: conf,
		PH: model.Float(ph), TDS: model.Float(tds), Calcium: model.Float(ca), Magnesium: model.Float(mg),
		Sodium: model.Float(na), Potassium: model.Float(k), Chloride: model.Float(cl),
	}
}

var (
	evian   = full("evian", "Evian", model.GroupEurope, model.ConfidenceHigh, 7.2, 345, 80, 26, 6.5, 1.0, 10)
	pelle   = full("sanpellegrino", "San Pellegrino", model.GroupEurope, model.ConfidenceHigh, 7.8, 915, 160, 50, 33, 2.0, 49)
	borjomi = full("borjomi", "Borjomi", model.GroupTherapeutic, model.ConfidenceHigh, 6.6, 5500, 120, 50, 1200, 35, 600)
	volvic  = full("volvic", "Volvic", model.GroupEurope, model.ConfidenceMedium, 7.0, 130, 12, 8, 12, 6, 15)
	baikal  = full("baikal", "Байкал (Baikal)", model.GroupRussia, model.ConfidenceLow, 7.2, 120, 25, 8, 4, 1, 5)
	panna   = model.Water{
		ID: "acqua_panna_partial", BrandName: "Acqua Panna (partial)", Group: model.GroupEurope,
		Confidence: model.ConfidenceLow, PH: model.Float(8.0), TDS: model.Float(190),
	}
)

func ids(in []ranking.Scored) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = s.Water.ID
	}
	return out
}

func TestCompare(t *testing.T) {
	Convey("Given a default ranker", t, func() {
		r := ranking.New()

		Convey("When a partial record meets a complete one", func() {
			Convey("Then the complete record ranks first despite a lower score", func() {
				So(r.Scorer().Score(panna, model.ProfileEveryday).Score, ShouldBeGreaterThan,
					r.Scorer().Score(evian, model.ProfileEveryday).Score)
				So(r.Compare(panna, evian, model.ProfileEveryday), ShouldEqual, 1)
				So(r.Compare(evian, panna, model.ProfileEveryday), ShouldEqual, -1)
			})

			Convey("And the hard rule holds under every profile", func() {
				for _, p := range model.Profiles {
					for _, w := range []model.Water{evian, pelle, borjomi, volvic, baikal} {
						So(r.Compare(w, panna, p), ShouldBeLessThan, 0)
					}
				}
			})
		})

		Convey("When both records are complete", func() {
			Convey("Then the higher score wins", func() {
				So(r.Compare(baikal, volvic, model.ProfileEveryday), ShouldEqual, -1)
			})
		})

		Convey("When scores tie", func() {
			noK := borjomi
			noK.ID = "borjomi-no-k"
			noK.Potassium = nil

			Convey("Then higher coverage wins", func() {
				So(r.Compare(borjomi, noK, model.ProfileEveryday), ShouldEqual, -1)
			})

			Convey("Then higher confidence wins", func() {
				low := evian
				low.ID, low.BrandName, low.Confidence = "a", "Aaa", model.ConfidenceLow
				So(r.Compare(evian, low, model.ProfileEveryday), ShouldEqual, -1)
			})

			Convey("Then brand names decide last", func() {
				So(r.Compare(borjomi, evian, model.ProfileEveryday), ShouldEqual, -1)
				So(r.Compare(evian, evian, model.ProfileEveryday), ShouldEqual, 0)
			})
		})

		Convey("When names contain accents", func() {
			Convey("Then collation is locale-aware", func() {
				So(r.CompareNames("Évian", "Zeta"), ShouldBeLessThan, 0)
				So(r.CompareNames("Zeta", "Évian"), ShouldBeGreaterThan, 0)
				So(r.CompareNames("Same", "Same"), ShouldEqual, 0)
			})
		})
	})
}

func TestSort(t *testing.T) {
	Convey("Given the seed waters", t, func() {
		r := ranking.New()
		in := []model.Water{panna, evian, pelle, borjomi, volvic, baikal}

		Convey("When sorting under Everyday", func() {
			out := r.Sort(in, model.ProfileEveryday)

			Convey("Then the ranking follows the comparison chain", func() {
				So(ids(out), ShouldResemble, []string{
					"baikal", "volvic", "borjomi", "evian", "sanpellegrino", "acqua_panna_partial",
				})
				So(in[0].ID, ShouldEqual, "acqua_panna_partial")
			})
		})

		Convey("When sorting any permutation", func() {
			rev := []model.Water{baikal, volvic, borjomi, pelle, evian, panna}

			Convey("Then the order is the same", func() {
				So(ids(r.Sort(rev, model.ProfileEveryday)), ShouldResemble, ids(r.Sort(in, model.ProfileEveryday)))
			})
		})

		Convey("When sorting an empty list", func() {
			So(r.Sort(nil, model.ProfileEveryday), ShouldBeEmpty)
		})
	})
}

func TestPickWinner(t *testing.T) {
	Convey("Given a default ranker", t, func() {
		r := ranking.New()

		Convey("When the selection mixes therapeutic and daily waters", func() {
			w, ok := r.PickWinner([]model.Water{borjomi, evian}, model.ProfileEveryday)

			Convey("Then the therapeutic water never wins", func() {
				So(ok, ShouldBeTrue)
				So(w.Water.ID, ShouldEqual, "evian")
			})
		})

		Convey("When every selected water is therapeutic", func() {
			w, ok := r.PickWinner([]model.Water{borjomi}, model.ProfileEveryday)

			Convey("Then the pool falls back to all of them", func() {
				So(ok, ShouldBeTrue)
				So(w.Water.ID, ShouldEqual, "borjomi")
			})
		})

		Convey("When a partial record outscores a complete one", func() {
			w, ok := r.PickWinner([]model.Water{panna, volvic}, model.ProfileEveryday)

			Convey("Then only records with minimum metrics are eligible", func() {
				So(ok, ShouldBeTrue)
				So(w.Water.ID, ShouldEqual, "volvic")
			})
		})

		Convey("When no record has minimum metrics", func() {
			other := model.Water{ID: "o", BrandName: "Other", TDS: model.Float(100)}
			w, ok := r.PickWinner([]model.Water{other, panna}, model.ProfileEveryday)

			Convey("Then the best ranked partial record wins", func() {
				So(ok, ShouldBeTrue)
				So(w.Water.ID, ShouldEqual, "acqua_panna_partial")
			})
		})

		Convey("When the selection is empty", func() {
			_, ok := r.PickWinner(nil, model.ProfileEveryday)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestRotationPlan(t *testing.T) {
	Convey("Given a default ranker", t, func() {
		r := ranking.New()

		Convey("When two daily waters are selected with a therapeutic one", func() {
			plan := r.RotationPlan([]model.Water{borjomi, evian, baikal}, model.ProfileEveryday)

			Convey("Then the plan alternates the two best non-therapeutic waters", func() {
				So(plan, ShouldHaveLength, ranking.RotationDays)
				So(plan[0].Day, ShouldEqual, 1)
				So(plan[0].Water.ID, ShouldEqual, "baikal")
				So(plan[1].Water.ID, ShouldEqual, "evian")
				So(plan[6].Water.ID, ShouldEqual, "baikal")
			})
		})

		Convey("When a single water is selected", func() {
			plan := r.RotationPlan([]model.Water{volvic}, model.ProfileEveryday)

			Convey("Then it fills every day", func() {
				for _, d := range plan {
					So(d.Water.ID, ShouldEqual, "volvic")
				}
			})
		})

		Convey("When nothing is selected", func() {
			So(r.RotationPlan(nil, model.ProfileEveryday), ShouldBeNil)
		})
	})
}
