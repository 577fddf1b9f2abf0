// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package shading

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/internal/debug/memfile"
)

// recordingHandler collects diagnostic events for inspection.
type recordingHandler struct {
	events []string
}

func (h *recordingHandler) Send(event string, payload map[string]any) {
	h.events = append(h.events, event)
}

func TestBuildIRAxial(t *testing.T) {
	s := &Type2{
		ColorSpace: color.SpaceDeviceGray,
		P0:         vec.Vec2{X: 0, Y: 0},
		P1:         vec.Vec2{X: 100, Y: 0},
		F:          grayRamp,
	}
	ir, err := BuildIR(s, matrix.Identity, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ir.Kind != IRRadialAxial {
		t.Fatalf("ir.Kind = %d, want IRRadialAxial", ir.Kind)
	}
	g := ir.RadialAxial
	if g.Radial {
		t.Error("axial shading produced a radial IR")
	}
	// TMin = TMax = 0 selects the default domain [0, 1]
	if len(g.ColorStops) != gradientSamples+3 {
		t.Errorf("got %d colour stops, want %d", len(g.ColorStops), gradientSamples+3)
	}
	if g.P0 != s.P0 || g.P1 != s.P1 {
		t.Error("gradient endpoints differ from the shading coordinates")
	}
}

func TestBuildIRRadial(t *testing.T) {
	s := &Type3{
		ColorSpace:  color.SpaceDeviceGray,
		Center1:     vec.Vec2{X: 50, Y: 50},
		R1:          0,
		Center2:     vec.Vec2{X: 50, Y: 50},
		R2:          25,
		F:           grayRamp,
		ExtendStart: true,
		ExtendEnd:   true,
	}
	ir, err := BuildIR(s, matrix.Identity, nil)
	if err != nil {
		t.Fatal(err)
	}
	g := ir.RadialAxial
	if !g.Radial {
		t.Fatal("radial shading produced an axial IR")
	}
	if g.R0 != 0 || g.R1 != 25 {
		t.Errorf("radii = %g, %g, want 0, 25", g.R0, g.R1)
	}
}

func TestBuildIRType4(t *testing.T) {
	// a triangle strip: flag 1 reuses the second and third vertex
	s := &Type4{
		ColorSpace:        color.SpaceDeviceRGB,
		BitsPerCoordinate: 16,
		BitsPerComponent:  8,
		BitsPerFlag:       8,
		Decode:            []float64{0, 100, 0, 100, 0, 1, 0, 1, 0, 1},
		Vertices: []Type4Vertex{
			{X: 0, Y: 0, Flag: 0, Color: []float64{1, 0, 0}},
			{X: 100, Y: 0, Flag: 0, Color: []float64{0, 1, 0}},
			{X: 50, Y: 100, Flag: 0, Color: []float64{0, 0, 1}},
			{X: 100, Y: 100, Flag: 1, Color: []float64{1, 1, 1}},
		},
	}
	ir, err := BuildIR(s, matrix.Identity, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ir.Kind != IRMesh {
		t.Fatalf("ir.Kind = %d, want IRMesh", ir.Kind)
	}
	m := ir.Mesh

	if len(m.Coords) != 8 {
		t.Fatalf("len(Coords) = %d, want 8", len(m.Coords))
	}
	if len(m.Colors) != 12 {
		t.Fatalf("len(Colors) = %d, want 12", len(m.Colors))
	}
	if len(m.Figures) != 1 {
		t.Fatalf("got %d figures, want 1", len(m.Figures))
	}

	fig := m.Figures[0]
	if fig.Kind != FigureTriangles {
		t.Fatalf("figure kind = %d, want FigureTriangles", fig.Kind)
	}
	wantCoords := []int32{0, 2, 4, 2, 4, 6}
	wantColors := []int32{0, 3, 6, 3, 6, 9}
	if diff := cmp.Diff(wantCoords, fig.Coords); diff != "" {
		t.Errorf("coords (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantColors, fig.Colors); diff != "" {
		t.Errorf("colors (-want +got):\n%s", diff)
	}

	if m.Bounds != [4]float64{0, 0, 100, 100} {
		t.Errorf("bounds = %v", m.Bounds)
	}
}

func TestBuildIRType4Invariants(t *testing.T) {
	s := &Type4{
		ColorSpace:        color.SpaceDeviceRGB,
		BitsPerCoordinate: 16,
		BitsPerComponent:  8,
		BitsPerFlag:       8,
		Decode:            []float64{0, 100, 0, 100, 0, 1, 0, 1, 0, 1},
		Vertices: []Type4Vertex{
			{X: 0, Y: 0, Flag: 0, Color: []float64{1, 0, 0}},
			{X: 100, Y: 0, Flag: 0, Color: []float64{0, 1, 0}},
			{X: 50, Y: 100, Flag: 0, Color: []float64{0, 0, 1}},
			{X: 100, Y: 100, Flag: 2, Color: []float64{1, 1, 1}},
			{X: 0, Y: 100, Flag: 1, Color: []float64{0, 0, 0}},
		},
	}
	ir, err := BuildIR(s, matrix.Identity, nil)
	if err != nil {
		t.Fatal(err)
	}
	m := ir.Mesh
	fig := m.Figures[0]

	if len(fig.Coords)%3 != 0 {
		t.Errorf("triangle index count %d is not a multiple of 3", len(fig.Coords))
	}
	numCoords := int32(len(m.Coords))
	numColors := int32(len(m.Colors))
	for i, idx := range fig.Coords {
		if idx < 0 || idx >= numCoords || idx%2 != 0 {
			t.Errorf("coord offset %d at %d out of range or misaligned", idx, i)
		}
	}
	for i, idx := range fig.Colors {
		if idx < 0 || idx >= numColors || idx%3 != 0 {
			t.Errorf("colour offset %d at %d out of range or misaligned", idx, i)
		}
	}
}

func TestBuildIRType5(t *testing.T) {
	s := &Type5{
		ColorSpace:        color.SpaceDeviceRGB,
		BitsPerCoordinate: 16,
		BitsPerComponent:  8,
		VerticesPerRow:    3,
		Decode:            []float64{0, 200, 0, 100, 0, 1, 0, 1, 0, 1},
		Vertices: []Type5Vertex{
			{X: 0, Y: 0, Color: []float64{1, 0, 0}},
			{X: 100, Y: 0, Color: []float64{0, 1, 0}},
			{X: 200, Y: 0, Color: []float64{0, 0, 1}},
			{X: 0, Y: 100, Color: []float64{1, 1, 0}},
			{X: 100, Y: 100, Color: []float64{0, 1, 1}},
			{X: 200, Y: 100, Color: []float64{1, 0, 1}},
		},
	}
	ir, err := BuildIR(s, matrix.Identity, nil)
	if err != nil {
		t.Fatal(err)
	}
	m := ir.Mesh
	if len(m.Figures) != 1 {
		t.Fatalf("got %d figures, want 1", len(m.Figures))
	}
	fig := m.Figures[0]
	if fig.Kind != FigureLattice {
		t.Fatalf("figure kind = %d, want FigureLattice", fig.Kind)
	}
	if fig.VerticesPerRow != 3 {
		t.Errorf("VerticesPerRow = %d, want 3", fig.VerticesPerRow)
	}
	rows := len(fig.Coords) / fig.VerticesPerRow
	if rows*fig.VerticesPerRow != len(fig.Coords) {
		t.Errorf("%d indices do not fill %d-wide rows", len(fig.Coords), fig.VerticesPerRow)
	}
	if rows != 2 {
		t.Errorf("rows = %d, want 2", rows)
	}
}

// unitSquarePatch returns a type 6 patch whose boundary follows the unit
// square scaled by s, with straight edges.
func unitSquarePatch(s float64) Type6Patch {
	pts := [12]vec.Vec2{
		{X: 0, Y: 0}, {X: 1. / 3, Y: 0}, {X: 2. / 3, Y: 0}, {X: 1, Y: 0},
		{X: 1, Y: 1. / 3}, {X: 1, Y: 2. / 3}, {X: 1, Y: 1}, {X: 2. / 3, Y: 1},
		{X: 1. / 3, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 2. / 3}, {X: 0, Y: 1. / 3},
	}
	for i := range pts {
		pts[i].X *= s
		pts[i].Y *= s
	}
	return Type6Patch{
		Flag:          0,
		ControlPoints: pts,
		CornerColors: [][]float64{
			{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1},
		},
	}
}

func TestBuildIRType6(t *testing.T) {
	s := &Type6{
		ColorSpace:        color.SpaceDeviceRGB,
		BitsPerCoordinate: 16,
		BitsPerComponent:  8,
		BitsPerFlag:       8,
		Decode:            []float64{0, 1, 0, 1, 0, 1, 0, 1, 0, 1},
		Patches:           []Type6Patch{unitSquarePatch(1)},
	}
	ir, err := BuildIR(s, matrix.Identity, nil)
	if err != nil {
		t.Fatal(err)
	}
	m := ir.Mesh

	// the single patch covers the whole mesh, so subdivision is maximal:
	// a (maxSplit+1) x (maxSplit+1) lattice
	wantVerts := (maxSplit + 1) * (maxSplit + 1)
	if len(m.Coords) != 2*wantVerts {
		t.Fatalf("len(Coords) = %d, want %d", len(m.Coords), 2*wantVerts)
	}
	if len(m.Figures) != 1 || m.Figures[0].Kind != FigureLattice {
		t.Fatal("patch was not converted to a single lattice figure")
	}
	fig := m.Figures[0]
	if fig.VerticesPerRow != maxSplit+1 {
		t.Errorf("VerticesPerRow = %d, want %d", fig.VerticesPerRow, maxSplit+1)
	}

	// corner colours survive tessellation exactly
	corner := func(vertIdx int) [3]byte {
		off := fig.Colors[vertIdx]
		return [3]byte{m.Colors[off], m.Colors[off+1], m.Colors[off+2]}
	}
	n := maxSplit + 1
	cases := []struct {
		idx  int
		want [3]byte
	}{
		{0, [3]byte{255, 0, 0}},
		{maxSplit, [3]byte{0, 255, 0}},
		{n*n - 1, [3]byte{0, 0, 255}},
		{maxSplit * n, [3]byte{255, 255, 255}},
	}
	for _, c := range cases {
		if got := corner(c.idx); got != c.want {
			t.Errorf("corner %d colour = %v, want %v", c.idx, got, c.want)
		}
	}

	if m.Bounds != [4]float64{0, 0, 1, 1} {
		t.Errorf("bounds = %v", m.Bounds)
	}
}

func TestBuildIRType7Degenerate(t *testing.T) {
	// all 16 control points on one line; tessellation must stay finite
	var pts [16]vec.Vec2
	for i := range pts {
		pts[i] = vec.Vec2{X: float64(i), Y: float64(i)}
	}
	s := &Type7{
		ColorSpace:        color.SpaceDeviceRGB,
		BitsPerCoordinate: 16,
		BitsPerComponent:  8,
		BitsPerFlag:       8,
		Decode:            []float64{0, 16, 0, 16, 0, 1, 0, 1, 0, 1},
		Patches: []Type7Patch{{
			Flag:          0,
			ControlPoints: pts,
			CornerColors:  [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1}},
		}},
	}
	ir, err := BuildIR(s, matrix.Identity, nil)
	if err != nil {
		t.Fatal(err)
	}
	m := ir.Mesh
	for i, v := range m.Coords {
		if math.IsNaN(float64(v)) {
			t.Fatalf("Coords[%d] is NaN", i)
		}
	}

	// the bounds agree with the corner extents
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, idx := range []int{0, 3, 6, 9} {
		minX = math.Min(minX, pts[idx].X)
		maxX = math.Max(maxX, pts[idx].X)
		minY = math.Min(minY, pts[idx].Y)
		maxY = math.Max(maxY, pts[idx].Y)
	}
	if m.Bounds != [4]float64{minX, minY, maxX, maxY} {
		t.Errorf("bounds = %v, want [%g %g %g %g]", m.Bounds, minX, minY, maxX, maxY)
	}
}

func TestBuildIRMonotoneIndices(t *testing.T) {
	s := &Type6{
		ColorSpace:        color.SpaceDeviceRGB,
		BitsPerCoordinate: 16,
		BitsPerComponent:  8,
		BitsPerFlag:       8,
		Decode:            []float64{0, 2, 0, 2, 0, 1, 0, 1, 0, 1},
		Patches:           []Type6Patch{unitSquarePatch(1), unitSquarePatch(2)},
	}
	ir, err := BuildIR(s, matrix.Identity, nil)
	if err != nil {
		t.Fatal(err)
	}
	m := ir.Mesh
	if len(m.Figures) != 2 {
		t.Fatalf("got %d figures, want 2", len(m.Figures))
	}
	var prev int32 = -1
	for _, fig := range m.Figures {
		for _, idx := range fig.Coords {
			if idx <= prev {
				t.Fatalf("coord offset %d does not increase after %d", idx, prev)
			}
			prev = idx
		}
	}
}

func TestBuildIRDummy(t *testing.T) {
	h := &recordingHandler{}
	s := &Type4{
		ColorSpace:        color.SpaceDeviceRGB,
		BitsPerCoordinate: 16,
		BitsPerComponent:  8,
		BitsPerFlag:       8,
		Decode:            []float64{0, 100, 0, 100, 0, 1, 0, 1, 0, 1},
		Vertices: []Type4Vertex{
			{X: 0, Y: 0, Flag: 3, Color: []float64{1, 0, 0}},
		},
	}
	ir, err := BuildIR(s, matrix.Identity, h)
	if err != nil {
		t.Fatal(err)
	}
	if ir.Kind != IRDummy {
		t.Fatalf("ir.Kind = %d, want IRDummy", ir.Kind)
	}
	if len(h.events) != 1 || h.events[0] != "UnsupportedFeature" {
		t.Errorf("events = %v, want one UnsupportedFeature", h.events)
	}
}

func TestParseShadingUnsupportedType(t *testing.T) {
	buf, _ := memfile.NewPDFWriter(pdf.V2_0, nil)
	dict := pdf.Dict{
		"ShadingType": pdf.Integer(99),
		"ColorSpace":  pdf.Name("DeviceRGB"),
	}

	h := &recordingHandler{}
	ir, err := ParseShading(buf, dict, matrix.Identity, h)
	if err != nil {
		t.Fatal(err)
	}
	if ir.Kind != IRDummy {
		t.Fatalf("ir.Kind = %d, want IRDummy", ir.Kind)
	}
	if len(h.events) != 1 || h.events[0] != "UnsupportedFeature" {
		t.Errorf("events = %v, want one UnsupportedFeature", h.events)
	}
}

func TestParseShadingAxial(t *testing.T) {
	buf, _ := memfile.NewPDFWriter(pdf.V2_0, nil)
	rm := pdf.NewResourceManager(buf)

	orig := &Type2{
		ColorSpace: color.SpaceDeviceGray,
		P0:         vec.Vec2{X: 0, Y: 0},
		P1:         vec.Vec2{X: 100, Y: 0},
		F:          grayRamp,
	}
	embedded, _, err := orig.Embed(rm)
	if err != nil {
		t.Fatal(err)
	}
	ref := buf.Alloc()
	if err := buf.Put(ref, embedded); err != nil {
		t.Fatal(err)
	}

	ir, err := ParseShading(buf, ref, matrix.Identity, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ir.Kind != IRRadialAxial {
		t.Fatalf("ir.Kind = %d, want IRRadialAxial", ir.Kind)
	}
	if ir.RadialAxial.P1 != orig.P1 {
		t.Errorf("P1 = %v, want %v", ir.RadialAxial.P1, orig.P1)
	}
}

func TestPackRoundTrip(t *testing.T) {
	var b meshBuilder
	pts := []vec.Vec2{{X: 1.5, Y: -2}, {X: 3, Y: 4}, {X: -0.25, Y: 1e6}}
	cols := [][3]byte{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	for i := range pts {
		b.addVertex(pts[i], cols[i])
	}
	packed := b.pack()

	for i, p := range pts {
		if float64(packed.Coords[2*i]) != float64(float32(p.X)) ||
			float64(packed.Coords[2*i+1]) != float64(float32(p.Y)) {
			t.Errorf("vertex %d: packed coords differ beyond float32 rounding", i)
		}
		if [3]byte{packed.Colors[3*i], packed.Colors[3*i+1], packed.Colors[3*i+2]} != cols[i] {
			t.Errorf("vertex %d: packed colours differ", i)
		}
	}
}
