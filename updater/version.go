package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"

	"github.com/DSM-PICK/pick-cli/config"
)

var ErrVersionCheck = errors.New("version check failed")

// IsNewer reports whether latest is strictly greater than current in semver
// order. A leading "v" is optional on both.
func IsNewer(latest, current string) (bool, error) {
	l, c := canonical(latest), canonical(current)
	if !semver.IsValid(l) || !semver.IsValid(c) {
		return false, errors.Wrapf(ErrVersionCheck, "cannot compare %q with %q", latest, current)
	}
	return semver.Compare(l, c) > 0, nil
}

func canonical(version string) string {
	version = strings.TrimSpace(version)
	if version != "" && !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return version
}

// CurrentVersion is the version stamped at link time, or the module version
// recorded by `go install`. It is empty for local development builds.
func CurrentVersion() string {
	if config.Version != "" && config.Version != "Dev" {
		return config.Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return ""
}

type proxyInfo struct {
	Version string `json:"Version"`
}

// LatestVersion asks the module proxy for the latest published version.
func LatestVersion(ctx context.Context, client *http.Client, proxyURL, modulePath string) (string, error) {
	escaped, err := module.EscapePath(modulePath)
	if err != nil {
		return "", errors.Wrapf(err, "escaping %s", modulePath)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s/@latest", proxyURL, escaped), nil)
	if err != nil {
		return "", errors.Wrap(err, "creating proxy request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "querying module proxy")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", errors.Errorf("module proxy: HTTP %d", resp.StatusCode)
	}
	var info proxyInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", errors.Wrap(err, "decoding module proxy response")
	}
	if info.Version == "" {
		return "", errors.New("module proxy returned no version")
	}
	return info.Version, nil
}
