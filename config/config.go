// Package config registers every clipwave setting and loads them through viper.
package config

import (
	"path/filepath"
	"strings"

	"github.com/clipwave/clipwave/constant"
	"github.com/clipwave/clipwave/filesystem"
	"github.com/clipwave/clipwave/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Path is where clipwave.toml lives.
func Path() string {
	return filepath.Join(where.Config(), constant.Clipwave+".toml")
}

// Setup binds env vars, applies defaults and reads clipwave.toml if present.
func Setup() error {
	viper.SetConfigName(constant.Clipwave)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Clipwave)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// Persist writes the current settings, creating the file when needed.
func Persist() error {
	err := viper.WriteConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return viper.SafeWriteConfig()
	}
	return err
}
