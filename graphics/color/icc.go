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

package color

import (
	"encoding/binary"
	"fmt"
	"io"

	"seehuhn.de/go/pdf"
)

// icc profile header field offsets (ICC.1:2010, 7.2).
const (
	iccHeaderSize       = 128
	iccOffsetSize       = 0
	iccOffsetColorSpace = 16
	iccOffsetSignature  = 36
)

// iccDataColorSpace reports the number of colour components implied by the
// four-byte "data colour space" signature found at offset 16 of an ICC
// profile header.
func iccDataColorSpace(sig [4]byte) (n int, ok bool) {
	switch string(sig[:]) {
	case "GRAY":
		return 1, true
	case "RGB ":
		return 3, true
	case "CMYK":
		return 4, true
	case "CMY ":
		return 3, true
	case "Lab ":
		return 3, true
	case "XYZ ":
		return 3, true
	default:
		return 0, false
	}
}

// parseICCHeader extracts the number of colour components from an ICC
// profile's 128-byte header.
func parseICCHeader(profile []byte) (n int, err error) {
	if len(profile) < iccHeaderSize {
		return 0, fmt.Errorf("color: ICC profile too short")
	}
	var sig [4]byte
	copy(sig[:], profile[iccOffsetSignature:iccOffsetSignature+4])
	if string(sig[:]) != "acsp" {
		return 0, fmt.Errorf("color: not an ICC profile (bad signature)")
	}
	var cs [4]byte
	copy(cs[:], profile[iccOffsetColorSpace:iccOffsetColorSpace+4])
	n, ok := iccDataColorSpace(cs)
	if !ok {
		return 0, fmt.Errorf("color: unsupported ICC data colour space %q", cs)
	}
	return n, nil
}

// SpaceICCBased is a colour space defined by an ICC profile (PDF 2.0, 8.6.5.5).
type SpaceICCBased struct {
	N         int
	Ranges    []float64 // 2*N, optional in the file but always populated here
	Alternate Space
	Profile   []byte
}

// ICCBased creates a colour space described by an ICC colour profile.  The
// alternate space is used when the profile cannot be interpreted; it may
// be nil, in which case a DeviceGray/RGB/CMYK space matching N is used.
func ICCBased(profile []byte, alternate Space) (*SpaceICCBased, error) {
	n, err := parseICCHeader(profile)
	if err != nil {
		return nil, err
	}
	if alternate == nil {
		switch n {
		case 1:
			alternate = SpaceDeviceGray
		case 4:
			alternate = SpaceDeviceCMYK
		default:
			alternate = SpaceDeviceRGB
		}
	}
	ranges := make([]float64, 2*n)
	for i := 0; i < n; i++ {
		ranges[2*i] = 0
		ranges[2*i+1] = 1
	}
	return &SpaceICCBased{N: n, Ranges: ranges, Alternate: alternate, Profile: profile}, nil
}

func (s *SpaceICCBased) Family() pdf.Name   { return "ICCBased" }
func (s *SpaceICCBased) NumComponents() int { return s.N }

func (s *SpaceICCBased) NewColor(values []float64) (Color, error) {
	return s.New(values)
}

// New returns the colour with the given component values, interpreted
// through the profile's alternate space.
func (s *SpaceICCBased) New(values []float64) (Color, error) {
	if len(values) != s.N {
		return nil, fmt.Errorf("color: ICCBased needs %d components, got %d", s.N, len(values))
	}
	alt, err := s.Alternate.NewColor(values)
	if err != nil {
		return nil, err
	}
	return colorICCBased{Values: append([]float64(nil), values...), space: s, alt: alt}, nil
}

// Embed writes the ICC profile as a PDF stream object with the /N and
// /Range entries required by PDF 2.0, 8.6.5.5.
func (s *SpaceICCBased) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	dict := pdf.Dict{
		"N":     pdf.Integer(s.N),
		"Range": floatsToArray(s.Ranges),
	}
	if s.Alternate != nil && s.Alternate != SpaceDeviceGray && s.Alternate != SpaceDeviceRGB && s.Alternate != SpaceDeviceCMYK {
		altObj, err := rm.Embed(s.Alternate)
		if err != nil {
			return nil, pdf.Unused{}, err
		}
		dict["Alternate"] = altObj
	}

	ref := rm.Out.Alloc()
	w, err := rm.Out.OpenStream(ref, dict)
	if err != nil {
		return nil, pdf.Unused{}, err
	}
	if _, err := w.Write(s.Profile); err != nil {
		return nil, pdf.Unused{}, err
	}
	if err := w.Close(); err != nil {
		return nil, pdf.Unused{}, err
	}

	arr := pdf.Array{pdf.Name("ICCBased"), ref}
	return arr, pdf.Unused{}, nil
}

type colorICCBased struct {
	Values []float64
	space  *SpaceICCBased
	alt    Color
}

func (c colorICCBased) ToXYZ() (X, Y, Z float64)  { return c.alt.ToXYZ() }
func (c colorICCBased) RGBA() (r, g, b, a uint32) { return c.alt.RGBA() }

func extractICCBased(x *pdf.Extractor, arr pdf.Array) (Space, error) {
	if len(arr) < 2 {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("color: malformed ICCBased")}
	}
	native, err := pdf.Resolve(x.R, arr[1])
	if err != nil {
		return nil, err
	}
	stream, ok := native.(*pdf.Stream)
	if !ok {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("color: ICCBased stream expected, got %T", native)}
	}
	r, err := pdf.DecodeStream(x.R, stream, 0)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	profile, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	n, err := pdf.GetInteger(x.R, stream.Dict["N"])
	if err != nil {
		return nil, err
	}

	var alternate Space
	if altObj, ok := stream.Dict["Alternate"]; ok {
		alternate, err = ExtractSpace(x, altObj)
		if err != nil {
			return nil, err
		}
	}

	space, err := ICCBased(profile, alternate)
	if err != nil {
		return nil, err
	}
	if int(n) != 0 && int(n) != space.N {
		space.N = int(n)
	}
	if rng, err := pdf.GetFloatArray(x.R, stream.Dict["Range"]); err == nil && rng != nil {
		space.Ranges = rng
	}
	return space, nil
}

// spaceSRGB is a built-in shorthand for the standard sRGB ICC profile,
// used when the actual profile bytes do not need to round-trip through a
// file (PDF readers may substitute their own built-in sRGB profile).
type spaceSRGB struct{}

func (spaceSRGB) Family() pdf.Name   { return "ICCBased" }
func (spaceSRGB) NumComponents() int { return 3 }
func (spaceSRGB) NewColor(values []float64) (Color, error) {
	return SpaceDeviceRGB.NewColor(values)
}
func (spaceSRGB) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	s, err := ICCBased(sRGBv4, SpaceDeviceRGB)
	if err != nil {
		return nil, pdf.Unused{}, err
	}
	return s.Embed(rm)
}

// sRGBv2 and sRGBv4 are minimal synthetic ICC profile headers describing
// the standard 3-component RGB data colour space, used as stand-ins for
// the well-known built-in sRGB profiles.
var sRGBv2 = buildMinimalICCHeader(0x02100000, "RGB ")
var sRGBv4 = buildMinimalICCHeader(0x04300000, "RGB ")

func buildMinimalICCHeader(version uint32, dataColorSpace string) []byte {
	buf := make([]byte, iccHeaderSize)
	binary.BigEndian.PutUint32(buf[iccOffsetSize:], uint32(len(buf)))
	binary.BigEndian.PutUint32(buf[8:], version)
	copy(buf[iccOffsetColorSpace:], dataColorSpace)
	copy(buf[20:], "XYZ ")
	copy(buf[iccOffsetSignature:], "acsp")
	return buf
}
