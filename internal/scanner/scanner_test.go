package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"appdeck/internal/category"
	"appdeck/internal/overrides"
)

// makeRoot creates a scan root populated with the given entries. Names
// ending in .app become directories, everything else a plain file.
func makeRoot(t *testing.T, entries ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range entries {
		path := filepath.Join(root, name)
		if filepath.Ext(name) == ".app" {
			if err := os.Mkdir(path, 0755); err != nil {
				t.Fatalf("mkdir %s error = %v", name, err)
			}
		} else {
			if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
				t.Fatalf("write %s error = %v", name, err)
			}
		}
	}
	return root
}

func testStore(t *testing.T) *overrides.Store {
	t.Helper()
	return overrides.New(filepath.Join(t.TempDir(), "config.json"))
}

func TestNew_DefaultRoots(t *testing.T) {
	s := New(testStore(t))
	if len(s.roots) != 3 {
		t.Fatalf("expected 3 default roots, got %d", len(s.roots))
	}
	if s.roots[0] != "/Applications" {
		t.Errorf("first root = %q, want /Applications", s.roots[0])
	}
}

func TestScan_FiltersAndSorts(t *testing.T) {
	root := makeRoot(t, "Zeta.app", "alpha.app", ".hidden.app", "notanapp.txt")

	apps := New(testStore(t), root).Scan()

	if len(apps) != 2 {
		t.Fatalf("expected 2 records, got %d", len(apps))
	}
	if apps[0].Name != "alpha" || apps[1].Name != "Zeta" {
		t.Errorf("sort order = [%s, %s], want [alpha, Zeta]", apps[0].Name, apps[1].Name)
	}
}

func TestScan_IDsAssignedBeforeSort(t *testing.T) {
	// os.ReadDir lists in lexical order, so Zeta.app is discovered before
	// alpha.app ('Z' < 'a' in ASCII) and gets the lower id. The name sort
	// then reorders the records without renumbering.
	root := makeRoot(t, "Zeta.app", "alpha.app")

	apps := New(testStore(t), root).Scan()

	if len(apps) != 2 {
		t.Fatalf("expected 2 records, got %d", len(apps))
	}
	if apps[0].Name != "alpha" || apps[0].ID != "1" {
		t.Errorf("alpha = id %q, want 1", apps[0].ID)
	}
	if apps[1].Name != "Zeta" || apps[1].ID != "0" {
		t.Errorf("Zeta = id %q, want 0", apps[1].ID)
	}
}

func TestScan_IDsContinueAcrossRoots(t *testing.T) {
	root1 := makeRoot(t, "Aaa.app")
	root2 := makeRoot(t, "Bbb.app", "Ccc.app")

	apps := New(testStore(t), root1, root2).Scan()

	if len(apps) != 3 {
		t.Fatalf("expected 3 records, got %d", len(apps))
	}
	wantIDs := map[string]string{"Aaa": "0", "Bbb": "1", "Ccc": "2"}
	for _, app := range apps {
		if app.ID != wantIDs[app.Name] {
			t.Errorf("%s id = %q, want %q", app.Name, app.ID, wantIDs[app.Name])
		}
	}
}

func TestScan_MissingRootContributesNothing(t *testing.T) {
	root := makeRoot(t, "Real.app")

	apps := New(testStore(t), "/no/such/dir", root).Scan()

	if len(apps) != 1 {
		t.Fatalf("expected 1 record, got %d", len(apps))
	}
	// The unreadable first root still consumed no ids.
	if apps[0].ID != "0" {
		t.Errorf("id = %q, want 0", apps[0].ID)
	}
}

func TestScan_GuessesCategories(t *testing.T) {
	root := makeRoot(t, "Safari.app", "Xcode.app", "Notes.app")

	apps := New(testStore(t), root).Scan()

	want := map[string]string{"Safari": "Internet", "Xcode": "Development", "Notes": "Other"}
	for _, app := range apps {
		if app.Category != want[app.Name] {
			t.Errorf("%s category = %q, want %q", app.Name, app.Category, want[app.Name])
		}
	}
}

func TestScan_OverrideWinsOverGuess(t *testing.T) {
	root := makeRoot(t, "Safari.app")
	store := testStore(t)
	store.Save(filepath.Join(root, "Safari.app"), "Work")

	apps := New(store, root).Scan()

	if len(apps) != 1 {
		t.Fatalf("expected 1 record, got %d", len(apps))
	}
	if apps[0].Category != "Work" {
		t.Errorf("category = %q, want Work", apps[0].Category)
	}
}

func TestScan_OverrideForOtherPathIgnored(t *testing.T) {
	root := makeRoot(t, "Safari.app")
	store := testStore(t)
	store.Save("/somewhere/else/Safari.app", "Work")

	apps := New(store, root).Scan()

	if apps[0].Category != "Internet" {
		t.Errorf("category = %q, want Internet (override keyed on a different path)", apps[0].Category)
	}
}

func TestScan_NoRecursionIntoSubdirectories(t *testing.T) {
	root := makeRoot(t, "Top.app")
	nested := filepath.Join(root, "Folder", "Nested.app")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir error = %v", err)
	}

	apps := New(testStore(t), root).Scan()

	if len(apps) != 1 || apps[0].Name != "Top" {
		t.Fatalf("expected only Top, got %d records", len(apps))
	}
}

func TestScan_CustomRulesApply(t *testing.T) {
	root := makeRoot(t, "Steam.app")
	s := New(testStore(t), root)
	s.SetRules([]category.Rule{{Label: "Games", Keywords: []string{"steam"}}})

	apps := s.Scan()

	if apps[0].Category != "Games" {
		t.Errorf("category = %q, want Games", apps[0].Category)
	}
}

func TestBundleName(t *testing.T) {
	tests := []struct {
		entry string
		name  string
		ok    bool
	}{
		{"Safari.app", "Safari", true},
		{"My App.app", "My App", true},
		{".hidden.app", "", false},
		{".app", "", false},
		{"notes.txt", "", false},
		{"Safari", "", false},
	}
	for _, tt := range tests {
		name, ok := bundleName(tt.entry)
		if name != tt.name || ok != tt.ok {
			t.Errorf("bundleName(%q) = (%q, %v), want (%q, %v)", tt.entry, name, ok, tt.name, tt.ok)
		}
	}
}
