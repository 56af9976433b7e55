package integrations

import (
	"sort"
	"strings"
	"testing"
)

func TestRegistryGetUnknownListsValidNames(t *testing.T) {
	r := NewDefault()

	_, err := r.Get("nonexistent")
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}
	if !strings.Contains(err.Error(), "nonexistent") {
		t.Errorf("error should name the unknown tool, got %q", err)
	}
	for _, name := range r.Names() {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error should list valid name %q, got %q", name, err)
		}
	}
}

func TestRegistryDefault(t *testing.T) {
	r := NewDefault()

	def := r.GetDefault()
	if def == nil {
		t.Fatal("default adapter must exist")
	}
	if def.Name() != DefaultTool {
		t.Errorf("default = %q, want %q", def.Name(), DefaultTool)
	}
}

func TestRegistryHas(t *testing.T) {
	r := NewDefault()
	if !r.Has("cursor") {
		t.Error("expected cursor to be registered")
	}
	if r.Has("emacs") {
		t.Error("unexpected adapter emacs")
	}
}

func TestRegistryListSortedAndComplete(t *testing.T) {
	r := NewDefault()
	infos := r.List()

	want := []string{"claude-code", "codex", "continue", "copilot", "cursor", "kiro", "opencode", "roo", "windsurf"}
	if len(infos) != len(want) {
		t.Fatalf("len(List()) = %d, want %d", len(infos), len(want))
	}
	if !sort.SliceIsSorted(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name }) {
		t.Error("List() must be sorted by name")
	}
	for i, info := range infos {
		if info.Name != want[i] {
			t.Errorf("List()[%d].Name = %q, want %q", i, info.Name, want[i])
		}
		if info.DisplayName == "" {
			t.Errorf("%s has no display name", info.Name)
		}
	}
}

func TestCapabilitiesReported(t *testing.T) {
	r := NewDefault()

	for _, info := range r.List() {
		c := info.Capabilities
		if !c.SlashCommands && !c.WorkflowFiles && !c.SeparateReferences && !c.FileGlobs && !c.SharedFile {
			t.Errorf("%s reports no capabilities", info.Name)
		}
	}

	for _, name := range []string{"codex", "opencode", "copilot", "windsurf"} {
		a, err := r.Get(name)
		if err != nil {
			t.Fatal(err)
		}
		if !a.Capabilities().SharedFile {
			t.Errorf("%s must report the shared-file capability", name)
		}
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	if _, err := NewRegistry(NewCursor(), NewCursor()); err == nil {
		t.Fatal("expected duplicate-name error")
	}
}

func TestMarkerFileConvention(t *testing.T) {
	r := NewDefault()
	for _, info := range r.List() {
		a, err := r.Get(info.Name)
		if err != nil {
			t.Fatal(err)
		}
		marker := a.MarkerFile()
		if info.Name == DefaultTool {
			// Historical exception: the first release shipped a bare marker name.
			if marker != ".skilldock" {
				t.Errorf("claude-code marker = %q, want legacy .skilldock", marker)
			}
			continue
		}
		if marker != ".skilldock-"+info.Name {
			t.Errorf("%s marker = %q, want .skilldock-%s", info.Name, marker, info.Name)
		}
	}
}
