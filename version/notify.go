package version

import (
	"fmt"

	"github.com/clipwave/clipwave/color"
	"github.com/clipwave/clipwave/constant"
	"github.com/clipwave/clipwave/icon"
	"github.com/clipwave/clipwave/key"
	"github.com/clipwave/clipwave/style"
	"github.com/clipwave/clipwave/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release exists. Failed lookups are
// silent.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking for a new version...", icon.Get(icon.Progress)))
	latest, err := Latest()
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint(ReleasePage(latest)),
	)
}
