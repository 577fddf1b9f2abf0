// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
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

package function

import (
	"fmt"
	"math"

	"seehuhn.de/go/pdf"
)

// Type2 is an exponential interpolation function (PDF 2.0, 7.10.3):
// f(x) = C0 + x^N * (C1 - C0).
type Type2 struct {
	XMin, XMax float64
	Range      []float64 // optional
	C0, C1     []float64
	N          float64
}

var _ pdf.Function = (*Type2)(nil)

func (f *Type2) FunctionType() int { return 2 }

func (f *Type2) Shape() (m, n int) {
	n = len(f.C0)
	if n == 0 {
		n = 1
	}
	return 1, n
}

func (f *Type2) GetDomain() []float64 { return []float64{f.XMin, f.XMax} }

func (f *Type2) validate() error {
	if !isRange(f.XMin, f.XMax) {
		return fmt.Errorf("function: invalid Type2 domain")
	}
	c0, c1 := f.c0(), f.c1()
	if len(c0) != len(c1) {
		return fmt.Errorf("function: Type2 C0/C1 length mismatch")
	}
	if f.N != math.Trunc(f.N) && f.XMin < 0 {
		return fmt.Errorf("function: Type2 N must be an integer when domain is negative")
	}
	return nil
}

func (f *Type2) c0() []float64 {
	if f.C0 == nil {
		return []float64{0}
	}
	return f.C0
}

func (f *Type2) c1() []float64 {
	if f.C1 == nil {
		return []float64{1}
	}
	return f.C1
}

func (f *Type2) Apply(out []float64, in ...float64) {
	x := clip(in[0], f.XMin, f.XMax)
	xn := math.Pow(x, f.N)
	c0, c1 := f.c0(), f.c1()
	for i := range out {
		out[i] = c0[i] + xn*(c1[i]-c0[i])
	}
	clipToRange(f.Range, out)
}

func (f *Type2) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	if err := f.validate(); err != nil {
		return nil, pdf.Unused{}, err
	}
	dict := pdf.Dict{
		"FunctionType": pdf.Integer(2),
		"Domain":       floatsToArray([]float64{f.XMin, f.XMax}),
		"N":            pdf.Real(f.N),
	}
	if f.C0 != nil {
		dict["C0"] = floatsToArray(f.C0)
	}
	if f.C1 != nil {
		dict["C1"] = floatsToArray(f.C1)
	}
	if f.Range != nil {
		dict["Range"] = floatsToArray(f.Range)
	}
	return dict, pdf.Unused{}, nil
}
