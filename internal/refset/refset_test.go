package refset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/kozaktomas/face-bench/internal/recognizer"
)

// stubEncoder returns canned encodings by file name, ignoring content.
type stubEncoder struct {
	byName map[string][]float32
}

func (s stubEncoder) Encode(ctx context.Context, path string) ([]float32, error) {
	vec, ok := s.byName[filepath.Base(path)]
	if !ok {
		return nil, fmt.Errorf("no encoding for %s", path)
	}
	return vec, nil
}

func testSet(t *testing.T) *Set {
	t.Helper()
	set, err := New([]Identity{
		{Name: "ana", Encoding: []float32{1, 0, 0}},
		{Name: "petr", Encoding: []float32{0, 1, 0}},
		{Name: "marie", Encoding: []float32{0, 0, 1}},
	})
	if err != nil {
		t.Fatalf("failed to build set: %v", err)
	}
	return set
}

func TestNew_EmptySet(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("expected error for empty reference set")
	}
}

func TestNew_EmptyEncoding(t *testing.T) {
	_, err := New([]Identity{{Name: "ana"}})
	if err == nil {
		t.Error("expected error for identity without encoding")
	}
}

func TestIdentify_NearestWithinTolerance(t *testing.T) {
	set := testSet(t)

	name, distance, ok := set.Identify([]float32{0.9, 0.1, 0}, 0.6)
	if !ok {
		t.Fatal("expected a match")
	}
	if name != "ana" {
		t.Errorf("expected ana, got %s", name)
	}
	if distance <= 0 || distance > 0.6 {
		t.Errorf("unexpected distance: %f", distance)
	}
}

func TestIdentify_BeyondTolerance(t *testing.T) {
	set := testSet(t)

	_, distance, ok := set.Identify([]float32{0.5, 0.5, 0.5}, 0.1)
	if ok {
		t.Errorf("expected no match at distance %f with tolerance 0.1", distance)
	}
}

func TestIdentify_BoundaryDistanceMatches(t *testing.T) {
	set := testSet(t)

	// Probe at distance exactly 0.5 from ana. The comparison is inclusive,
	// matching the standalone encoding check.
	probe := []float32{1, 0.5, 0}
	name, distance, ok := set.Identify(probe, 0.5)
	if !ok {
		t.Fatalf("expected a match at distance %f with tolerance 0.5", distance)
	}
	if name != "ana" {
		t.Errorf("expected ana, got %s", name)
	}
	if want := recognizer.Match(probe, []float32{1, 0, 0}, 0.5); !want {
		t.Error("encoding check disagrees with identify")
	}
}

func TestIdentify_ZeroToleranceFallsBack(t *testing.T) {
	set := testSet(t)

	// Distance ~0.14 is within the default tolerance of 0.6.
	if _, _, ok := set.Identify([]float32{0.9, 0.1, 0}, 0); !ok {
		t.Error("expected fallback to default tolerance")
	}
}

func TestSetNamesAndSize(t *testing.T) {
	set := testSet(t)

	if set.Size() != 3 {
		t.Errorf("expected size 3, got %d", set.Size())
	}

	names := set.Names()
	expected := []string{"ana", "petr", "marie"}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("expected name %q at %d, got %q", expected[i], i, names[i])
		}
	}
}

func TestLoad_FromDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Ana.jpg", "Petr_Novák.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("img"), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	enc := stubEncoder{byName: map[string][]float32{
		"Ana.jpg":        {1, 0},
		"Petr_Novák.jpg": {0, 1},
	}}

	set, err := Load(context.Background(), dir, enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if set.Size() != 2 {
		t.Fatalf("expected 2 identities, got %d", set.Size())
	}

	name, _, ok := set.Identify([]float32{0.05, 0.95}, 0.6)
	if !ok || name != "petr novak" {
		t.Errorf("expected petr novak, got %q (ok=%v)", name, ok)
	}
}

func TestLoad_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(context.Background(), dir, stubEncoder{}); err == nil {
		t.Error("expected error for directory with no reference images")
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	if _, err := Load(context.Background(), "/nonexistent/refs", stubEncoder{}); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestLoad_EncoderFailureRejected(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "blurry.jpg"), []byte("img"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	// No registered encoding, so the stub fails like a face-less reference.
	if _, err := Load(context.Background(), dir, stubEncoder{}); err == nil {
		t.Error("expected reference encoding failure to be rejected")
	}
}

func TestIdentityName(t *testing.T) {
	cases := []struct {
		path string
		name string
	}{
		{"refs/Ana.jpg", "ana"},
		{"refs/Petr_Novák.png", "petr novak"},
		{"/data/faces/jean-claude.jpeg", "jean claude"},
		{"Jiří.bmp", "jiri"},
	}

	for _, c := range cases {
		if got := IdentityName(c.path); got != c.name {
			t.Errorf("IdentityName(%q): expected %q, got %q", c.path, c.name, got)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"Jiří", "jiri"},
		{"petr_novak", "petr novak"},
		{"Jean-Claude", "jean claude"},
		{"  ", ""},
	}

	for _, c := range cases {
		if got := normalizeName(c.in); got != c.out {
			t.Errorf("normalizeName(%q): expected %q, got %q", c.in, c.out, got)
		}
	}
}
