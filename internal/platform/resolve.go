package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Get returns the Target for the given platform version of the SDK at
// sdkDir. An empty version selects the most recent one.
func Get(sdkDir, ndkDir, version string, opts ...Option) (*Target, error) {
	root := filepath.Join(sdkDir, "platforms")
	if st, err := os.Stat(root); err != nil || !st.IsDir() {
		return nil, fmt.Errorf("%w: %s is not an SDK, it has no platforms directory", ErrConfig, sdkDir)
	}

	platforms, err := listPlatforms(root)
	if err != nil {
		return nil, err
	}

	if version == "" {
		version = Latest(platforms)
		if version == "" {
			return nil, fmt.Errorf("%w: no platforms installed in %s", ErrConfig, sdkDir)
		}
	}

	dir, ok := platforms[version]
	if !ok {
		return nil, fmt.Errorf("%w: target %q not found in %q", ErrTargetNotFound, version, sdkDir)
	}
	return New(version, sdkDir, ndkDir, dir, opts...)
}

// listPlatforms maps version suffixes to platform directories, e.g.
// "10" to /sdk/platforms/android-10.
func listPlatforms(root string) (map[string]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	platforms := make(map[string]string)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		i := strings.LastIndex(e.Name(), "-")
		if i < 0 {
			continue
		}
		platforms[e.Name()[i+1:]] = filepath.Join(root, e.Name())
	}
	return platforms, nil
}

// Latest picks the greatest version by string comparison, so "9" wins
// over "10".
func Latest(platforms map[string]string) string {
	versions := make([]string, 0, len(platforms))
	for v := range platforms {
		versions = append(versions, v)
	}
	if len(versions) == 0 {
		return ""
	}
	sort.Strings(versions)
	return versions[len(versions)-1]
}
