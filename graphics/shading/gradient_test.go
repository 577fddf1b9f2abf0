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

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/function"
	"seehuhn.de/go/pdf/graphics/color"
)

// grayRamp is the identity gradient function t -> gray(t).
var grayRamp = &function.Type2{
	XMin: 0, XMax: 1,
	C0: []float64{0},
	C1: []float64{1},
	N:  1,
}

func TestGradientStopsNoExtend(t *testing.T) {
	stops, err := sampleGradientStops(grayRamp, color.SpaceDeviceGray, 0, 1, false, false, nil)
	if err != nil {
		t.Fatal(err)
	}

	// 11 samples plus one synthetic stop at each end
	if len(stops) != gradientSamples+3 {
		t.Fatalf("got %d stops, want %d", len(stops), gradientSamples+3)
	}

	if !stops[0].Transparent || stops[0].Offset != 0 {
		t.Errorf("stops[0] = %+v, want transparent stop at 0", stops[0])
	}
	if stops[1].Offset != extendEpsilon || stops[1].Color != "#000000" {
		t.Errorf("stops[1] = %+v, want #000000 at epsilon", stops[1])
	}
	last := len(stops) - 1
	if !stops[last].Transparent || stops[last].Offset != 1 {
		t.Errorf("stops[%d] = %+v, want transparent stop at 1", last, stops[last])
	}
	if stops[last-1].Offset != 1-extendEpsilon || stops[last-1].Color != "#FFFFFF" {
		t.Errorf("stops[%d] = %+v, want #FFFFFF at 1-epsilon", last-1, stops[last-1])
	}

	// interior samples at i/10, strictly increasing gray levels
	prev := ""
	for i := 2; i <= last-2; i++ {
		wantOffset := float64(i-1) / gradientSamples
		if math.Abs(stops[i].Offset-wantOffset) > 1e-12 {
			t.Errorf("stops[%d].Offset = %g, want %g", i, stops[i].Offset, wantOffset)
		}
		if stops[i].Color <= prev {
			t.Errorf("stops[%d].Color = %q does not increase", i, stops[i].Color)
		}
		prev = stops[i].Color
	}
}

func TestGradientStopsWithExtend(t *testing.T) {
	stops, err := sampleGradientStops(grayRamp, color.SpaceDeviceGray, 0, 1, true, true, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(stops) != gradientSamples+1 {
		t.Fatalf("got %d stops, want %d", len(stops), gradientSamples+1)
	}
	if stops[0].Offset != 0 || stops[0].Color != "#000000" {
		t.Errorf("stops[0] = %+v, want #000000 at 0", stops[0])
	}
	if stops[len(stops)-1].Offset != 1 || stops[len(stops)-1].Color != "#FFFFFF" {
		t.Errorf("last stop = %+v, want #FFFFFF at 1", stops[len(stops)-1])
	}
}

func TestGradientStopsBackground(t *testing.T) {
	stops, err := sampleGradientStops(grayRamp, color.SpaceDeviceGray, 0, 1, false, true, []float64{0.5})
	if err != nil {
		t.Fatal(err)
	}
	if stops[0].Transparent {
		t.Error("stops[0] is transparent despite a Background entry")
	}
	if stops[0].Color == "" {
		t.Error("stops[0] has no colour")
	}
}

func TestGradientStopsEmptyDomain(t *testing.T) {
	stops, err := sampleGradientStops(grayRamp, color.SpaceDeviceGray, 1, 1, false, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if stops != nil {
		t.Errorf("got %d stops for an empty domain, want none", len(stops))
	}
}

func TestGradientStopsSubDomain(t *testing.T) {
	stops, err := sampleGradientStops(grayRamp, color.SpaceDeviceGray, 0.25, 0.75, true, true, nil)
	if err != nil {
		t.Fatal(err)
	}
	// offsets still span [0, 1]; the colours come from the sub-domain
	if stops[0].Offset != 0 || stops[len(stops)-1].Offset != 1 {
		t.Error("stop offsets do not span [0, 1]")
	}
	if stops[0].Color == "#000000" {
		t.Error("first stop samples t=0 instead of t=0.25")
	}
}

func TestCheckRadialCircles(t *testing.T) {
	cases := []struct {
		name    string
		c1      vec.Vec2
		r1      float64
		c2      vec.Vec2
		r2      float64
		wantErr bool
	}{
		{
			name: "concentric nested",
			c1:   vec.Vec2{X: 50, Y: 50}, r1: 10,
			c2: vec.Vec2{X: 50, Y: 50}, r2: 40,
		},
		{
			name: "point source inside",
			c1:   vec.Vec2{X: 50, Y: 50}, r1: 0,
			c2: vec.Vec2{X: 55, Y: 50}, r2: 25,
		},
		{
			name: "disjoint circles",
			c1:   vec.Vec2{X: 0, Y: 0}, r1: 10,
			c2: vec.Vec2{X: 20, Y: 0}, r2: 5,
			wantErr: true,
		},
		{
			name: "overlapping, neither contains",
			c1:   vec.Vec2{X: 0, Y: 0}, r1: 10,
			c2: vec.Vec2{X: 8, Y: 0}, r2: 10,
			wantErr: true,
		},
		{
			name: "negative radius",
			c1:   vec.Vec2{X: 0, Y: 0}, r1: -1,
			c2: vec.Vec2{X: 0, Y: 0}, r2: 5,
			wantErr: true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := checkRadialCircles(c.c1, c.r1, c.c2, c.r2)
			if (err != nil) != c.wantErr {
				t.Errorf("checkRadialCircles() = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}

func TestHexColor(t *testing.T) {
	if got := hexColor([3]byte{0x12, 0xAB, 0x00}); got != "#12AB00" {
		t.Errorf("hexColor = %q", got)
	}
}
