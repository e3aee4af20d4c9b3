package importer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/okian/waterradar/internal/adapters/importer"
	"github.com/okian/waterradar/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseJSON(t *testing.T) {
	Convey("Given JSON text", t, func() {
		Convey("When an envelope holds a comma-decimal pH", func() {
			ws, err := importer.ParseJSON(`{"waters":[{"id":"x","brand_name":"X","ph":"7,2"}]}`)

			Convey("Then one record is produced with pH 7.2 and defaults", func() {
				So(err, ShouldBeNil)
				So(ws, ShouldHaveLength, 1)
				So(*ws[0].PH, ShouldEqual, 7.2)
				So(ws[0].TDS, ShouldBeNil)
				So(ws[0].Group, ShouldEqual, model.GroupEurope)
				So(ws[0].Confidence, ShouldEqual, model.ConfidenceLow)
			})
		})

		Convey("When the text is not JSON", func() {
			_, err := importer.ParseJSON("not json")

			Convey("Then a parse error is returned", func() {
				So(errors.Is(err, importer.ErrParse), ShouldBeTrue)
			})
		})

		Convey("When the text is empty", func() {
			_, err := importer.ParseJSON("")

			Convey("Then a parse error is returned", func() {
				So(errors.Is(err, importer.ErrParse), ShouldBeTrue)
			})
		})

		Convey("When a bare array uses synonym keys", func() {
			ws, err := importer.ParseJSON(`[
				{"slug":"a","name":"A","countryCode":"de","tds":"oops","tds_mg_l":null,"gas":"yes","region":"russia","confidence":"HIGH","source":"official"},
				{"code":"b","brand":"B","ca":12.5,"sparkling":false}
			]`)

			Convey("Then the synonyms are resolved", func() {
				So(err, ShouldBeNil)
				So(ws, ShouldHaveLength, 2)
				So(ws[0].ID, ShouldEqual, "a")
				So(ws[0].BrandName, ShouldEqual, "A")
				So(ws[0].Flag, ShouldEqual, "🇩🇪")
				So(ws[0].TDS, ShouldBeNil)
				So(*ws[0].Sparkling, ShouldBeTrue)
				So(ws[0].Group, ShouldEqual, model.GroupRussia)
				So(ws[0].Confidence, ShouldEqual, model.ConfidenceHigh)
				So(ws[0].SourceType, ShouldEqual, model.SourceOfficial)
				So(ws[1].ID, ShouldEqual, "b")
				So(*ws[1].Calcium, ShouldEqual, 12.5)
				So(*ws[1].Sparkling, ShouldBeFalse)
			})
		})

		Convey("When items lack identity or are not objects", func() {
			b, err := importer.Parse(importer.FormatJSON, `{"data":[{"id":"x"},{"brand_name":"Y"},42,{"id":"z","brand_name":"Z"}]}`)

			Convey("Then they are dropped and counted", func() {
				So(err, ShouldBeNil)
				So(b.Records, ShouldHaveLength, 1)
				So(b.Records[0].ID, ShouldEqual, "z")
				So(b.Rejected, ShouldEqual, 3)
			})
		})

		Convey("When a valid object carries no item array", func() {
			ws, err := importer.ParseJSON(`{"other":[1,2]}`)

			Convey("Then the result is empty without error", func() {
				So(err, ShouldBeNil)
				So(ws, ShouldBeEmpty)
			})
		})
	})
}

func TestParseCSV(t *testing.T) {
	Convey("Given CSV text", t, func() {
		Convey("When headers vary in case and cells use quotes and comma decimals", func() {
			text := "\ufeffID,Brand_Name,country_code,pH,TDS,na_mg_l,notes\n" +
				"evian,Evian,FR,\"7,2\",345,6.5,\"Alps, France\"\n" +
				",Nameless,FR,7,100,1,\n" +
				"short,Short\n"
			b, err := importer.Parse(importer.FormatCSV, text)

			Convey("Then rows are read by header name and bad rows are counted", func() {
				So(err, ShouldBeNil)
				So(b.Records, ShouldHaveLength, 2)
				So(b.Rejected, ShouldEqual, 1)

				e := b.Records[0]
				So(e.ID, ShouldEqual, "evian")
				So(*e.PH, ShouldEqual, 7.2)
				So(*e.TDS, ShouldEqual, 345)
				So(*e.Sodium, ShouldEqual, 6.5)
				So(e.Notes, ShouldEqual, "Alps, France")
				So(e.Flag, ShouldEqual, "🇫🇷")

				s := b.Records[1]
				So(s.ID, ShouldEqual, "short")
				So(s.Coverage().Count, ShouldEqual, 0)
			})
		})

		Convey("When only a header is present", func() {
			ws, err := importer.ParseCSV("id,brand_name,ph\n")

			Convey("Then the result is empty without error", func() {
				So(err, ShouldBeNil)
				So(ws, ShouldBeEmpty)
			})
		})

		Convey("When the header has no identity columns", func() {
			_, err := importer.ParseCSV("foo,bar\n1,2\n")

			Convey("Then a parse error is returned", func() {
				So(errors.Is(err, importer.ErrParse), ShouldBeTrue)
			})
		})

		Convey("When the text is empty", func() {
			_, err := importer.ParseCSV("")

			Convey("Then a parse error is returned", func() {
				So(errors.Is(err, importer.ErrParse), ShouldBeTrue)
			})
		})
	})
}

func TestFormat(t *testing.T) {
	Convey("Given format names", t, func() {
		f, err := importer.ParseFormat(" JSON ")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, importer.FormatJSON)

		f, err = importer.ParseFormat("")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, importer.FormatAuto)

		_, err = importer.ParseFormat("xml")
		So(errors.Is(err, importer.ErrUnsupportedFormat), ShouldBeTrue)

		_, err = importer.Parse(importer.Format("xml"), "")
		So(errors.Is(err, importer.ErrUnsupportedFormat), ShouldBeTrue)
	})

	Convey("Given text to detect", t, func() {
		So(importer.DetectFormat("  [{}]"), ShouldEqual, importer.FormatJSON)
		So(importer.DetectFormat(`{"waters":[]}`), ShouldEqual, importer.FormatJSON)
		So(importer.DetectFormat("id,brand_name"), ShouldEqual, importer.FormatCSV)

		b, err := importer.Parse(importer.FormatAuto, `[{"id":"x","brand_name":"X"}]`)
		So(err, ShouldBeNil)
		So(b.Format, ShouldEqual, importer.FormatJSON)
		So(b.Records, ShouldHaveLength, 1)
	})
}

func TestMerge(t *testing.T) {
	Convey("Given a base dataset and an incoming batch", t, func() {
		base := []model.Water{
			{ID: "a", BrandName: "A"},
			{ID: "b", BrandName: "B"},
		}
		incoming := []model.Water{
			{ID: "c", BrandName: "C"},
			{ID: "a", BrandName: "A2"},
		}

		Convey("When they are merged", func() {
			out := importer.Merge(base, incoming)

			Convey("Then matching ids are replaced in place and new ids appended", func() {
				So(out, ShouldHaveLength, 3)
				So(out[0].BrandName, ShouldEqual, "A2")
				So(out[1].ID, ShouldEqual, "b")
				So(out[2].ID, ShouldEqual, "c")
				So(base[0].BrandName, ShouldEqual, "A")
			})

			Convey("Then merging the same batch again changes nothing", func() {
				So(importer.Merge(out, incoming), ShouldResemble, out)
			})
		})

		Convey("When the batch is empty", func() {
			So(importer.Merge(base, nil), ShouldResemble, base)
		})
	})
}

func TestExportRoundTrip(t *testing.T) {
	Convey("Given normalized records", t, func() {
		ws := []model.Water{
			{
				ID: "borjomi", BrandName: "Borjomi", CountryCode: "GE", Flag: "🇬🇪",
				Group: model.GroupTherapeutic, PH: model.Float(6.6), TDS: model.Float(5500),
				Calcium: model.Float(100), Magnesium: model.Float(50), Sodium: model.Float(1250),
				Potassium: model.Float(40), Chloride: model.Float(450), Sparkling: model.Bool(true),
				SourceType: model.SourceOfficial, Confidence: model.ConfidenceHigh, Notes: "Salty, therapeutic",
			},
			{
				ID: "partial", BrandName: "Partial", Flag: "🌍", Group: model.GroupEurope,
				PH: model.Float(8), SourceType: model.SourceSeed, Confidence: model.ConfidenceLow,
			},
		}

		Convey("When exported as JSON and parsed back", func() {
			b, err := importer.ExportJSON(ws)
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"category": "Therapeutic"`)
			back, err := importer.ParseJSON(string(b))

			Convey("Then the records are equal", func() {
				So(err, ShouldBeNil)
				So(back, ShouldResemble, ws)
			})
		})

		Convey("When exported as CSV and parsed back", func() {
			text, err := importer.ExportCSV(ws)
			So(err, ShouldBeNil)
			So(strings.SplitN(text, "\n", 2)[0], ShouldStartWith, "id,brand_name")
			back, err := importer.ParseCSV(text)

			Convey("Then the records are equal", func() {
				So(err, ShouldBeNil)
				So(back, ShouldResemble, ws)
			})
		})
	})
}
