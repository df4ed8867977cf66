// Package scanner discovers installed .app bundles and assigns each a
// display category.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"appdeck/internal/category"
	"appdeck/internal/models"
	"appdeck/internal/overrides"
)

// DebugMode enables debug logging
var DebugMode = false

// debugLog logs a message if debug mode is enabled
func debugLog(format string, args ...interface{}) {
	if DebugMode {
		fmt.Fprintf(os.Stderr, "[SCANNER] "+format+"\n", args...)
	}
}

const bundleExt = ".app"

// DefaultRoots are the fixed locations checked for application bundles,
// in scan order.
func DefaultRoots() []string {
	return []string{
		"/Applications",
		"/System/Applications",
		"/System/Applications/Utilities",
	}
}

// Scanner lists application bundles from a fixed set of root directories.
// Each Scan call is independent: overrides are re-read and the whole record
// list is rebuilt.
type Scanner struct {
	roots     []string
	overrides *overrides.Store
	rules     []category.Rule // extra rules evaluated before the built-ins
}

// New creates a Scanner. With no roots given the default macOS application
// directories are used.
func New(store *overrides.Store, roots ...string) *Scanner {
	if store == nil {
		store = overrides.New("")
	}
	if len(roots) == 0 {
		roots = DefaultRoots()
	}
	return &Scanner{roots: roots, overrides: store}
}

// SetRules installs extra category rules from the settings file.
func (s *Scanner) SetRules(rules []category.Rule) {
	s.rules = rules
}

// Scan walks the roots in order and returns all visible bundles sorted by
// name, case-insensitively. Roots that are missing or unreadable contribute
// no entries. IDs count up in discovery order and are not renumbered by the
// final sort.
func (s *Scanner) Scan() []models.AppRecord {
	ovs := s.overrides.Load()

	var apps []models.AppRecord
	id := 0

	for _, root := range s.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			debugLog("skipping root %s: %v", root, err)
			continue
		}

		for _, entry := range entries {
			name, ok := bundleName(entry.Name())
			if !ok {
				continue
			}

			path := filepath.Join(root, entry.Name())
			cat := category.GuessWith(s.rules, name)
			if ov, found := ovs[path]; found && ov.Category != nil {
				cat = *ov.Category
			}

			apps = append(apps, models.AppRecord{
				ID:       strconv.Itoa(id),
				Name:     name,
				Path:     path,
				Category: cat,
			})
			id++
		}
		debugLog("root %s: %d bundles so far", root, len(apps))
	}

	sort.Slice(apps, func(i, j int) bool {
		return strings.ToLower(apps[i].Name) < strings.ToLower(apps[j].Name)
	})
	return apps
}

// bundleName returns the display name for a directory entry, or false when
// the entry is not a visible .app bundle. Hidden bundles and entries whose
// whole name is the extension are excluded.
func bundleName(entryName string) (string, bool) {
	if !strings.HasSuffix(entryName, bundleExt) {
		return "", false
	}
	stem := strings.TrimSuffix(entryName, bundleExt)
	if stem == "" || strings.HasPrefix(stem, ".") {
		return "", false
	}
	return stem, true
}
