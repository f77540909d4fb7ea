// Package refset holds the reference set of known faces. Encodings are
// indexed in an HNSW graph so identifying a probe face is a nearest-neighbor
// lookup instead of a scan over every known person.
package refset

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/coder/hnsw"

	"github.com/kozaktomas/face-bench/internal/dataset"
	"github.com/kozaktomas/face-bench/internal/recognizer"
)

const maxNeighbors = 16

// Encoder produces a face encoding for an image on disk.
type Encoder interface {
	Encode(ctx context.Context, path string) ([]float32, error)
}

// Identity is one known person: a display name and a face encoding.
type Identity struct {
	Name     string
	Encoding []float32
}

// Set is an immutable reference set. Safe for concurrent lookups.
type Set struct {
	mu         sync.RWMutex
	graph      *hnsw.Graph[int]
	identities []Identity
}

// New builds a reference set from known identities.
func New(identities []Identity) (*Set, error) {
	if len(identities) == 0 {
		return nil, errors.New("reference set is empty")
	}

	g := hnsw.NewGraph[int]()
	g.M = maxNeighbors
	g.Ml = 1.0 / float64(maxNeighbors)
	g.Distance = hnsw.EuclideanDistance

	for i, id := range identities {
		if len(id.Encoding) == 0 {
			return nil, fmt.Errorf("identity %q has an empty encoding", id.Name)
		}
		g.Add(hnsw.MakeNode(i, id.Encoding))
	}

	return &Set{graph: g, identities: identities}, nil
}

// Load scans a directory of reference images, encodes each one and builds
// the set. The identity name is derived from the file name, so a directory
// holding ana.jpg and petr_novak.jpg yields identities "ana" and
// "petr novak". Images where no face is found are rejected: a reference
// image without a face is a setup mistake, not a per-item condition.
func Load(ctx context.Context, dir string, enc Encoder) (*Set, error) {
	files, err := dataset.Scan(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan reference directory: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no reference images in %s", dir)
	}

	identities := make([]Identity, 0, len(files))
	for _, path := range files {
		vec, err := enc.Encode(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to encode reference image %s: %w", path, err)
		}
		identities = append(identities, Identity{
			Name:     IdentityName(path),
			Encoding: vec,
		})
	}

	return New(identities)
}

// Identify finds the reference identity nearest to the probe encoding.
// ok is false when the set is empty or the nearest neighbor is farther than
// the tolerance.
func (s *Set) Identify(vec []float32, tolerance float64) (string, float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	neighbors := s.graph.Search(vec, 1)
	if len(neighbors) == 0 {
		return "", 0, false
	}

	n := neighbors[0]
	distance := recognizer.EuclideanDistance(vec, n.Value)
	if !recognizer.Match(vec, n.Value, tolerance) {
		return "", distance, false
	}
	return s.identities[n.Key].Name, distance, true
}

// Size returns the number of reference identities.
func (s *Set) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.identities)
}

// Names returns the identity names in load order.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.identities))
	for i, id := range s.identities {
		names[i] = id.Name
	}
	return names
}

// IdentityName derives a display name from a reference image path:
// "refs/Petr_Novák.jpg" becomes "petr novak".
func IdentityName(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return normalizeName(stem)
}
