package capability

import (
	"errors"
	"strings"
	"testing"
)

func TestDescribeRendersCapabilities(t *testing.T) {
	catalog := NewCatalog([]Descriptor{
		{
			Name:        "add",
			Description: "Add two numbers",
			Params: []Param{
				{Name: "a", Kind: KindInteger},
				{Name: "b", Kind: KindInteger},
			},
		},
		{
			Name:        "ping",
			Description: "Check server liveness",
		},
	})

	got := catalog.Describe()
	want := "1. add(a: integer, b: integer) - Add two numbers\n" +
		"2. ping() - no parameters"
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestDescribeSubstitutesPlaceholders(t *testing.T) {
	catalog := NewCatalog([]Descriptor{
		{Name: "", Description: "", Params: []Param{{Name: "x", Kind: KindString}}},
		{Name: "mystery", Params: []Param{{Name: "y", Kind: KindNumber}}},
	})

	got := catalog.Describe()
	if !strings.Contains(got, "1. capability_0(x: string) - No description available") {
		t.Errorf("missing placeholder rendering for unnamed capability:\n%s", got)
	}
	if !strings.Contains(got, "2. mystery(y: number) - No description available") {
		t.Errorf("missing description placeholder:\n%s", got)
	}
}

func TestDescribeRendersSchemaErrorLine(t *testing.T) {
	catalog := NewCatalog([]Descriptor{
		{Name: "good", Description: "works"},
		{Name: "bad", SchemaErr: errors.New("unreadable schema")},
		{Name: "alsogood", Description: "works too"},
	})

	got := catalog.Describe()
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), got)
	}
	if lines[1] != "2. Error processing capability" {
		t.Errorf("expected error line for bad capability, got %q", lines[1])
	}
	// A broken schema must not abort the rest of the listing.
	if !strings.HasPrefix(lines[2], "3. alsogood()") {
		t.Errorf("expected third capability to render, got %q", lines[2])
	}
}

func TestCatalogLookup(t *testing.T) {
	catalog := NewCatalog([]Descriptor{
		{Name: "first"},
		{Name: "second"},
	})

	if catalog.Count() != 2 {
		t.Errorf("expected 2 capabilities, got %d", catalog.Count())
	}
	if !catalog.Has("second") {
		t.Error("expected catalog to contain second")
	}
	if _, ok := catalog.Get("missing"); ok {
		t.Error("expected lookup miss for unknown name")
	}
	d, ok := catalog.Get("first")
	if !ok || d.Name != "first" {
		t.Errorf("unexpected lookup result: %+v ok=%v", d, ok)
	}

	names := catalog.Names()
	if len(names) != 2 || names[0] != "first" || names[1] != "second" {
		t.Errorf("expected listing order preserved, got %v", names)
	}
}
