// Package filesystem is the single afero handle every package reads and writes through.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active filesystem.
func API() afero.Afero {
	return backend
}

// SetFs replaces the active filesystem.
func SetFs(fs afero.Fs) {
	backend = afero.Afero{Fs: fs}
}

func SetOsFs() {
	SetFs(afero.NewOsFs())
}

// SetMemMapFs switches to an in-memory filesystem. Tests call it from init.
func SetMemMapFs() {
	SetFs(afero.NewMemMapFs())
}
