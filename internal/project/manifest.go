package project

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
)

// Manifest holds the parts of AndroidManifest.xml the build needs.
type Manifest struct {
	Package     string
	VersionCode int
	VersionName string
	Android     struct {
		MinSDK    string
		TargetSDK string
	}
}

type xmlManifest struct {
	XMLName     xml.Name `xml:"manifest"`
	Package     string   `xml:"package,attr"`
	VersionCode string   `xml:"http://schemas.android.com/apk/res/android versionCode,attr"`
	VersionName string   `xml:"http://schemas.android.com/apk/res/android versionName,attr"`
	UsesSDK     struct {
		MinSDK    string `xml:"http://schemas.android.com/apk/res/android minSdkVersion,attr"`
		TargetSDK string `xml:"http://schemas.android.com/apk/res/android targetSdkVersion,attr"`
	} `xml:"uses-sdk"`
}

func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var x xmlManifest
	if err := xml.Unmarshal(data, &x); err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}

	m := Manifest{Package: x.Package, VersionName: x.VersionName}
	if x.VersionCode != "" {
		if m.VersionCode, err = strconv.Atoi(x.VersionCode); err != nil {
			return Manifest{}, fmt.Errorf("%s: bad versionCode %q", path, x.VersionCode)
		}
	}
	m.Android.MinSDK = x.UsesSDK.MinSDK
	m.Android.TargetSDK = x.UsesSDK.TargetSDK
	return m, nil
}
