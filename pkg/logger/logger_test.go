package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initialized with a writer", func() {
			var buf bytes.Buffer
			So(InitWithWriter(&buf), ShouldBeNil)

			Convey("Then records go to that writer with fields and source", func() {
				Get().Info(context.Background(), "imported", String("format", "csv"), Int("accepted", 3), Bool("partial", false))
				out := buf.String()
				So(out, ShouldContainSubstring, "msg=imported")
				So(out, ShouldContainSubstring, "format=csv")
				So(out, ShouldContainSubstring, "accepted=3")
				So(out, ShouldContainSubstring, "partial=false")
				So(out, ShouldContainSubstring, "source=")
				So(out, ShouldContainSubstring, "logger_test.go")
			})

			Convey("Then debug records are filtered until the level drops", func() {
				Get().Debug(context.Background(), "hidden")
				So(buf.String(), ShouldNotContainSubstring, "hidden")

				So(SetLevelString("DEBUG"), ShouldBeNil)
				Get().Debug(context.Background(), "shown")
				So(buf.String(), ShouldContainSubstring, "shown")
			})

			Convey("Then named loggers tag their component", func() {
				Named("importer").Warn(context.Background(), "skipped", Error(errors.New("boom")))
				So(buf.String(), ShouldContainSubstring, "component=importer")
				So(buf.String(), ShouldContainSubstring, "error=boom")
			})
		})

		Convey("When given a nil writer", func() {
			Convey("Then initialization fails", func() {
				So(InitWithWriter(nil), ShouldNotBeNil)
			})
		})

		Convey("When Init is called", func() {
			So(Init(), ShouldBeNil)
			So(Get(), ShouldNotBeNil)
			So(Sync(), ShouldBeNil)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		for _, name := range []string{"debug", "info", "", "warn", "warning", "error"} {
			So(SetLevelString(name), ShouldBeNil)
		}
		So(levelVar.Level(), ShouldEqual, slog.LevelError)

		err := SetLevelString("loud")
		So(errors.Is(err, ErrUnknownLevel), ShouldBeTrue)
		SetLevel(slog.LevelInfo)
	})
}

func TestStandaloneLoggers(t *testing.T) {
	Convey("Given a standalone logger", t, func() {
		var buf bytes.Buffer
		l := New(&buf, slog.LevelWarn)
		l.Info(context.Background(), "quiet")
		l.Error(context.Background(), "loud", Float64("score", 2.5))

		So(buf.String(), ShouldNotContainSubstring, "quiet")
		So(buf.String(), ShouldContainSubstring, "score=2.5")
	})

	Convey("Given a nop logger", t, func() {
		So(func() { Nop().Error(context.Background(), "x", Any("k", 1)) }, ShouldNotPanic)
	})
}
