package filesystem

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

// GacheFs lets gache caches persist through afero. A nil Fs follows the
// active backend, so SetMemMapFs also covers caches created earlier.
type GacheFs struct {
	Fs afero.Fs
}

func (g *GacheFs) fs() afero.Fs {
	if g.Fs != nil {
		return g.Fs
	}
	return API()
}

func (g *GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return g.fs().OpenFile(name, flag, perm)
}

func (g *GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return g.fs().MkdirAll(path, perm)
}
