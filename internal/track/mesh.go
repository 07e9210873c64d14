package track

import (
	"math"

	"github.com/cxd309/lapsim/internal/simerr"
)

// boundaryTol is the relative tolerance used to decide that regular stepping
// has landed on a section boundary.
const boundaryTol = 1e-9

// Point is one mesh position along the track.
type Point struct {
	Section SectionName `json:"section"`
	Kind    Kind        `json:"kind"`
	DX      float64     `json:"dx"` // metres from the previous point; 0 for the first
	X       float64     `json:"x"`  // metres from the start line
	Radius  float64     `json:"r"`  // metres; 0 on straights
}

// Mesh is the ordered sequence of points covering a track end to end.
// Points[0] is the start-of-track marker at x = 0.
type Mesh struct {
	Points   []Point
	MeshSize float64
}

// Len returns the number of mesh points.
func (m Mesh) Len() int { return len(m.Points) }

// LastIndexOf returns the index of the last point tagged with name, or -1.
func (m Mesh) LastIndexOf(name SectionName) int {
	for i := len(m.Points) - 1; i >= 0; i-- {
		if m.Points[i].Section == name {
			return i
		}
	}
	return -1
}

// NewMesh discretises t into points spaced at most meshSize apart.
//
// Each section is walked from its cumulative start in steps of exactly
// meshSize while the next step stays within the section; if the last point
// falls short of the section end, one shorter trailing step lands on it.
// Every section boundary therefore appears exactly once. Turns with a zero
// radius are given defaultRadius.
func NewMesh(t Track, meshSize, defaultRadius float64) (Mesh, error) {
	if !(meshSize > 0) || math.IsInf(meshSize, 0) {
		return Mesh{}, simerr.Configf("mesh_size", "must be positive and finite, got %g", meshSize)
	}
	if err := t.Validate(); err != nil {
		return Mesh{}, err
	}

	radii := make([]float64, len(t.Sections))
	for i, s := range t.Sections {
		if s.IsStraight() {
			continue
		}
		radii[i] = s.Radius
		if radii[i] == 0 {
			if !(defaultRadius > 0) || math.IsInf(defaultRadius, 0) {
				return Mesh{}, simerr.Configf("t1 radius", "turn %q needs a positive default radius, got %g", s.Name, defaultRadius)
			}
			radii[i] = defaultRadius
		}
	}

	first := t.Sections[0]
	points := make([]Point, 0, estimatePoints(t, meshSize))
	points = append(points, Point{Section: first.Name, Kind: first.Kind, X: 0, DX: 0, Radius: radii[0]})

	start := 0.0
	for i, s := range t.Sections {
		end := start + s.Length
		tol := boundaryTol * math.Max(1, s.Length)
		prev := start

		emit := func(x float64) {
			points = append(points, Point{Section: s.Name, Kind: s.Kind, DX: x - prev, X: x, Radius: radii[i]})
			prev = x
		}

		steps := int(math.Floor(s.Length/meshSize + boundaryTol))
		for k := 1; k <= steps; k++ {
			x := start + float64(k)*meshSize
			if math.Abs(x-end) <= tol {
				x = end
			}
			emit(x)
		}
		if end-prev > tol {
			emit(end)
		}
		start = end
	}

	return Mesh{Points: points, MeshSize: meshSize}, nil
}

func estimatePoints(t Track, meshSize float64) int {
	n := 1
	for _, s := range t.Sections {
		n += int(math.Ceil(s.Length/meshSize)) + 1
	}
	return n
}
