package log

import (
	"bytes"
	"testing"

	"github.com/clipwave/clipwave/filesystem"
	"github.com/clipwave/clipwave/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Nothing is emitted", func() {
			var buf bytes.Buffer
			logger.SetOutput(&buf)
			Info("hidden")
			So(buf.Len(), ShouldEqual, 0)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Structured fields end up in the output", func() {
			var buf bytes.Buffer
			viper.Set(key.LogsJson, true)
			configure(&buf)
			WithFields(Fields{"video": "v1"}).Warn("like lookup failed")
			So(buf.String(), ShouldContainSubstring, `"video":"v1"`)
			So(buf.String(), ShouldContainSubstring, "like lookup failed")
		})

		Convey("An unknown level falls back to info", func() {
			var buf bytes.Buffer
			viper.Set(key.LogsLevel, "loud")
			configure(&buf)
			Debug("skipped")
			So(buf.Len(), ShouldEqual, 0)
			Info("kept")
			So(buf.String(), ShouldContainSubstring, "kept")
		})
	})
}
