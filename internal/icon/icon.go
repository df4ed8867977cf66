// Package icon extracts a bundle's icon as a PNG data URI.
package icon

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"howett.net/plist"
)

// DebugMode enables debug logging
var DebugMode = false

// debugLog logs a message if debug mode is enabled
func debugLog(format string, args ...interface{}) {
	if DebugMode {
		fmt.Fprintf(os.Stderr, "[ICON] "+format+"\n", args...)
	}
}

// variantOrder lists the icon variants tried, best first: 128x128@2x,
// legacy 128x128 RGBA, then 32x32@2x. Anything else in the container is
// never used; a decode failure falls through to the next variant.
var variantOrder = []string{"ic13", "it32", "ic12"}

const dataURIPrefix = "data:image/png;base64,"

// Extract locates, decodes and re-encodes the icon for the bundle at the
// given path, returned as a PNG data URI. Every failure along the chain
// (missing plist, missing field, missing resource, unparsable container,
// no usable variant, encode failure) reads as absence: callers cannot tell
// "no icon" apart from "malformed bundle". No caching; each call re-reads
// the bundle from disk.
func Extract(bundlePath string) (string, bool) {
	iconPath, ok := resourcePath(bundlePath)
	if !ok {
		return "", false
	}

	data, err := os.ReadFile(iconPath)
	if err != nil {
		debugLog("read %s: %v", iconPath, err)
		return "", false
	}
	fam, err := parseFamily(data)
	if err != nil {
		debugLog("parse %s: %v", iconPath, err)
		return "", false
	}

	for _, variant := range variantOrder {
		img, err := fam.decode(variant)
		if err != nil {
			continue
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			debugLog("encode %s %s: %v", iconPath, variant, err)
			continue
		}
		return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), true
	}

	debugLog("%s: none of %v present", iconPath, variantOrder)
	return "", false
}

// resourcePath reads the bundle's Info.plist and resolves CFBundleIconFile
// under Contents/Resources, appending .icns when the name carries no
// extension.
func resourcePath(bundlePath string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(bundlePath, "Contents", "Info.plist"))
	if err != nil {
		debugLog("read plist for %s: %v", bundlePath, err)
		return "", false
	}

	var info struct {
		IconFile string `plist:"CFBundleIconFile"`
	}
	if _, err := plist.Unmarshal(data, &info); err != nil {
		debugLog("decode plist for %s: %v", bundlePath, err)
		return "", false
	}
	if info.IconFile == "" {
		return "", false
	}

	name := info.IconFile
	if filepath.Ext(name) == "" {
		name += ".icns"
	}
	return filepath.Join(bundlePath, "Contents", "Resources", name), true
}
