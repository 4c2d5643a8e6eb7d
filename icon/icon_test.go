package icon

import (
	"testing"

	"github.com/clipwave/clipwave/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given every registered icon", t, func() {
		Convey("It renders for each variant", func() {
			for _, variant := range AvailableVariants() {
				viper.Set(key.IconsVariant, variant)
				for i := range icons {
					So(Get(i), ShouldNotBeEmpty)
				}
			}
		})

		Convey("An unknown variant renders nothing", func() {
			viper.Set(key.IconsVariant, "sparkles")
			So(Get(Like), ShouldBeEmpty)
		})

		Convey("Like and Liked differ", func() {
			viper.Set(key.IconsVariant, plain)
			So(Get(Like), ShouldNotEqual, Get(Liked))
		})
	})
}
