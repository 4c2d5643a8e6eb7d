// Package version looks up the latest published release.
package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/clipwave/clipwave/filesystem"
	"github.com/clipwave/clipwave/network"
	"github.com/clipwave/clipwave/util"
	"github.com/clipwave/clipwave/where"
	"github.com/metafates/gache"
)

// ReleasesURL is the GitHub endpoint for the newest release.
var ReleasesURL = "https://api.github.com/repos/clipwave/clipwave/releases/latest"

// ReleasePage is where a release can be downloaded.
func ReleasePage(version string) string {
	return "https://github.com/clipwave/clipwave/releases/tag/v" + version
}

var (
	versionCacher *gache.Cache[string]
	cacherOnce    sync.Once
)

func cache() *gache.Cache[string] {
	cacherOnce.Do(func() {
		versionCacher = gache.New[string](&gache.Options{
			Path:       filepath.Join(where.Cache(), "version.json"),
			Lifetime:   time.Hour * 24 * 2,
			FileSystem: &filesystem.GacheFs{},
		})
	})
	return versionCacher
}

// Latest returns the newest release version without the leading v. The
// answer is cached for two days.
func Latest() (string, error) {
	cached, expired, err := cache().Get()
	if err != nil {
		return "", err
	}
	if !expired && cached != "" {
		return cached, nil
	}

	resp, err := network.Client.Get(ReleasesURL)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases: %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	version := strings.TrimPrefix(release.TagName, "v")
	if version == "" {
		return "", errors.New("empty tag name")
	}

	_ = cache().Set(version)
	return version, nil
}
