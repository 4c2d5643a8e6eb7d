// Package cache prunes stale files clipwave leaves in its cache directory.
package cache

import (
	"os"
	"time"

	"github.com/clipwave/clipwave/filesystem"
	"github.com/clipwave/clipwave/log"
)

// TTL is how long an untouched cache file is kept.
const TTL = 7 * 24 * time.Hour

var now = time.Now

// Prune removes regular files under dir last modified more than ttl ago
// and returns how many were removed. Unreadable entries are skipped.
func Prune(dir string, ttl time.Duration) int {
	fs := filesystem.API()
	cutoff := now().Add(-ttl)

	var removed int
	_ = fs.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !info.ModTime().Before(cutoff) {
			return nil
		}

		if err := fs.Remove(path); err != nil {
			log.WithFields(log.Fields{"path": path}).WithError(err).Warn("prune cache file")
			return nil
		}
		removed++
		return nil
	})

	return removed
}

// CollectGarbage prunes dir in the background.
func CollectGarbage(dir string) {
	go func() {
		if n := Prune(dir, TTL); n > 0 {
			log.Infof("pruned %d stale cache files", n)
		}
	}()
}
