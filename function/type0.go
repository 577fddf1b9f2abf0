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

	"seehuhn.de/go/pdf"
)

// Type0 is a sampled function (PDF 2.0, 7.10.2): a multi-dimensional array
// of evenly-spaced samples, indexed by the encoded input coordinates and
// interpolated at evaluation time.
type Type0 struct {
	Domain        []float64
	Range         []float64
	Size          []int
	BitsPerSample int
	UseCubic      bool
	Encode        []float64
	Decode        []float64
	Samples       []byte
}

var _ pdf.Function = (*Type0)(nil)

func (f *Type0) FunctionType() int { return 0 }

func (f *Type0) Shape() (m, n int) {
	return len(f.Size), len(f.Range) / 2
}

func (f *Type0) GetDomain() []float64 { return f.Domain }

// repair truncates Domain, Range, Encode and Decode to even length and
// restores the PDF defaults where possible, so that malformed dictionaries
// still produce a usable (if degenerate) function.
func (f *Type0) repair() {
	if len(f.Domain)%2 != 0 {
		f.Domain = f.Domain[:len(f.Domain)-1]
	}
	if len(f.Domain) == 0 {
		f.Domain = []float64{0, 1}
	}
	if len(f.Range)%2 != 0 {
		f.Range = f.Range[:len(f.Range)-1]
	}
	if len(f.Encode)%2 != 0 {
		f.Encode = f.Encode[:len(f.Encode)-1]
	}
	if len(f.Decode)%2 != 0 {
		f.Decode = f.Decode[:len(f.Decode)-1]
	}
}

func (f *Type0) validate() error {
	switch f.BitsPerSample {
	case 1, 2, 4, 8, 12, 16, 24, 32:
	default:
		return fmt.Errorf("function: invalid BitsPerSample %d", f.BitsPerSample)
	}
	m := len(f.Size)
	if m == 0 || len(f.Domain) != 2*m {
		return fmt.Errorf("function: Size/Domain length mismatch")
	}
	for _, s := range f.Size {
		if s < 1 {
			return fmt.Errorf("function: Size entries must be >= 1")
		}
	}
	n := len(f.Range) / 2
	if n == 0 || len(f.Range)%2 != 0 {
		return fmt.Errorf("function: invalid Range")
	}
	if f.Encode != nil && len(f.Encode) != 2*m {
		return fmt.Errorf("function: Encode length mismatch")
	}
	if f.Decode != nil && len(f.Decode) != len(f.Range) {
		return fmt.Errorf("function: Decode length mismatch")
	}
	return nil
}

func (f *Type0) encodeRange(i int) (lo, hi float64) {
	if f.Encode != nil {
		return f.Encode[2*i], f.Encode[2*i+1]
	}
	return 0, float64(f.Size[i] - 1)
}

func (f *Type0) decodeRange(i int) (lo, hi float64) {
	if f.Decode != nil {
		return f.Decode[2*i], f.Decode[2*i+1]
	}
	return f.Range[2*i], f.Range[2*i+1]
}

// maxSampleValue returns the largest raw value a sample of f.BitsPerSample
// bits can hold.
func (f *Type0) maxSampleValue() float64 {
	return float64(uint64(1)<<uint(f.BitsPerSample) - 1)
}

// extractSampleAtIndex reads the raw (undecoded) sample at linear position
// i, treating Samples as a flat sequence of BitsPerSample-wide big-endian
// unsigned integers packed MSB-first across byte boundaries.
func (f *Type0) extractSampleAtIndex(i int) float64 {
	return float64(readBitsAt(f.Samples, i*f.BitsPerSample, f.BitsPerSample))
}

// readBitsAt reads numBits bits starting at bitOffset from data, MSB-first,
// packed across byte boundaries. The loop reads one bit per iteration, so
// numBits may be up to 64; bits past the end of data read as zero.
func readBitsAt(data []byte, bitOffset, numBits int) uint64 {
	var v uint64
	for i := 0; i < numBits; i++ {
		bit := bitOffset + i
		byteIdx := bit / 8
		if byteIdx >= len(data) {
			v <<= 1
			continue
		}
		bitIdx := 7 - uint(bit%8)
		b := (data[byteIdx] >> bitIdx) & 1
		v = v<<1 | uint64(b)
	}
	return v
}

// numOutputs returns the number of output components.
func (f *Type0) numOutputs() int { return len(f.Range) / 2 }

// sampleAt returns the decoded value of output component outIdx at the
// given integer grid coordinates.
func (f *Type0) sampleAt(coord []int, outIdx int) float64 {
	m := len(f.Size)
	n := f.numOutputs()

	idx := 0
	stride := 1
	for i := 0; i < m; i++ {
		c := coord[i]
		if c < 0 {
			c = 0
		}
		if c > f.Size[i]-1 {
			c = f.Size[i] - 1
		}
		idx += c * stride
		stride *= f.Size[i]
	}
	linear := idx*n + outIdx

	raw := f.extractSampleAtIndex(linear)
	lo, hi := f.decodeRange(outIdx)
	return interpolate(raw, 0, f.maxSampleValue(), lo, hi)
}

// Apply evaluates the sampled function using multilinear interpolation
// between the 2^m neighbouring grid points, or cubic spline interpolation
// if Order 3 was requested (PDF 2.0, 7.10.2).
func (f *Type0) Apply(out []float64, in ...float64) {
	x := clipToDomain(f.Domain, in)
	m := len(f.Size)
	n := f.numOutputs()

	e := make([]float64, m)
	lo := make([]int, m)
	frac := make([]float64, m)
	for i := 0; i < m; i++ {
		encLo, encHi := f.encodeRange(i)
		ev := interpolate(x[i], f.Domain[2*i], f.Domain[2*i+1], encLo, encHi)
		ev = clip(ev, 0, float64(f.Size[i]-1))
		e[i] = ev
		lo[i] = int(ev)
		if lo[i] > f.Size[i]-2 && f.Size[i] > 1 {
			lo[i] = f.Size[i] - 2
		}
		if lo[i] < 0 {
			lo[i] = 0
		}
		frac[i] = ev - float64(lo[i])
	}

	// cubic interpolation is only defined along a single axis; functions
	// with more inputs fall back to multilinear interpolation
	if f.UseCubic && m == 1 {
		f.applyCubic(out, lo[0], frac[0])
		clipToRange(f.Range, out)
		return
	}

	coord := make([]int, m)
	for outIdx := 0; outIdx < n; outIdx++ {
		var sum float64
		corners := 1 << uint(m)
		for c := 0; c < corners; c++ {
			weight := 1.0
			for i := 0; i < m; i++ {
				bit := (c >> uint(i)) & 1
				if f.Size[i] == 1 {
					coord[i] = 0
					continue
				}
				if bit == 1 {
					coord[i] = lo[i] + 1
					weight *= frac[i]
				} else {
					coord[i] = lo[i]
					weight *= 1 - frac[i]
				}
			}
			if weight == 0 {
				continue
			}
			sum += weight * f.sampleAt(coord, outIdx)
		}
		out[outIdx] = sum
	}
	clipToRange(f.Range, out)
}

// applyCubic evaluates a one-dimensional sampled function with cubic
// spline interpolation: a Hermite segment between the samples at lo and
// lo+1, with Catmull-Rom tangents m_i = (p[i+1] - p[i-1])/2 and the end
// samples duplicated beyond the boundaries.  This matches the Order 3
// behaviour of Ghostscript's gsfunc0.c.
func (f *Type0) applyCubic(out []float64, lo int, t float64) {
	h00 := (1 + 2*t) * (1 - t) * (1 - t)
	h10 := t * (1 - t) * (1 - t)
	h01 := t * t * (3 - 2*t)
	h11 := t * t * (t - 1)

	coord := make([]int, 1)
	sample := func(i, outIdx int) float64 {
		coord[0] = i // sampleAt clamps to the grid
		return f.sampleAt(coord, outIdx)
	}
	for outIdx := 0; outIdx < f.numOutputs(); outIdx++ {
		p0 := sample(lo, outIdx)
		p1 := sample(lo+1, outIdx)
		m0 := (p1 - sample(lo-1, outIdx)) / 2
		m1 := (sample(lo+2, outIdx) - p0) / 2
		out[outIdx] = h00*p0 + h10*m0 + h01*p1 + h11*m1
	}
}

func (f *Type0) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	if err := f.validate(); err != nil {
		return nil, pdf.Unused{}, err
	}

	dict := pdf.Dict{
		"FunctionType":  pdf.Integer(0),
		"Domain":        floatsToArray(f.Domain),
		"Range":         floatsToArray(f.Range),
		"Size":          intsToArray(f.Size),
		"BitsPerSample": pdf.Integer(f.BitsPerSample),
	}
	if f.Encode != nil {
		dict["Encode"] = floatsToArray(f.Encode)
	}
	if f.Decode != nil {
		dict["Decode"] = floatsToArray(f.Decode)
	}
	if f.UseCubic {
		dict["Order"] = pdf.Integer(3)
	}

	ref := rm.Out.Alloc()
	w, err := rm.Out.OpenStream(ref, dict)
	if err != nil {
		return nil, pdf.Unused{}, err
	}
	if _, err := w.Write(f.Samples); err != nil {
		return nil, pdf.Unused{}, err
	}
	if err := w.Close(); err != nil {
		return nil, pdf.Unused{}, err
	}
	return ref, pdf.Unused{}, nil
}

func floatsToArray(vals []float64) pdf.Array {
	arr := make(pdf.Array, len(vals))
	for i, v := range vals {
		arr[i] = pdf.Real(v)
	}
	return arr
}

func intsToArray(vals []int) pdf.Array {
	arr := make(pdf.Array, len(vals))
	for i, v := range vals {
		arr[i] = pdf.Integer(v)
	}
	return arr
}
