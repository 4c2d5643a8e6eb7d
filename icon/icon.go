// Package icon renders UI symbols in the variant chosen by icons.variant.
package icon

import (
	"github.com/clipwave/clipwave/key"
	"github.com/spf13/viper"
)

const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

// AvailableVariants lists every accepted value of icons.variant.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain}
}

type iconDef struct {
	emoji string
	nerd  string
	plain string
}

func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	default:
		return ""
	}
}

// Get returns the symbol for i in the configured variant.
func Get(i Icon) string {
	return icons[i].Get()
}
