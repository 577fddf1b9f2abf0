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
	"io"

	"seehuhn.de/go/pdf"
)

// Extract reads a PDF function object, dispatching on its FunctionType
// entry (PDF 2.0, 7.10).
func Extract(x *pdf.Extractor, obj pdf.Object) (pdf.Function, error) {
	if ref, ok := obj.(pdf.Reference); ok {
		if cached, ok := x.GetCached(ref); ok {
			if fn, ok := cached.(pdf.Function); ok {
				return fn, nil
			}
		}
	}

	native, err := pdf.Resolve(x.R, obj)
	if err != nil {
		return nil, err
	}
	fn, err := extractFunction(x, native)
	if err != nil {
		return nil, err
	}

	if ref, ok := obj.(pdf.Reference); ok {
		x.PutCached(ref, fn)
	}
	return fn, nil
}

func extractFunction(x *pdf.Extractor, native pdf.Native) (pdf.Function, error) {
	var dict pdf.Dict
	var body io.Reader

	switch obj := native.(type) {
	case pdf.Dict:
		dict = obj
	case *pdf.Stream:
		dict = obj.Dict
		r, err := pdf.DecodeStream(x.R, obj, 0)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		body = r
	default:
		return nil, &pdf.MalformedFileError{
			Err: fmt.Errorf("function: expected dict or stream, got %T", native),
		}
	}

	ft, err := pdf.GetInteger(x.R, dict["FunctionType"])
	if err != nil {
		return nil, err
	}

	domain, err := pdf.GetFloatArray(x.R, dict["Domain"])
	if err != nil {
		return nil, err
	}

	switch ft {
	case 0:
		return extractType0(x, dict, domain, body)
	case 2:
		return extractType2(x, dict, domain)
	case 3:
		return extractType3(x, dict, domain)
	case 4:
		return extractType4(x, dict, domain, body)
	default:
		return nil, &pdf.MalformedFileError{
			Err: fmt.Errorf("function: unsupported FunctionType %d", ft),
		}
	}
}

func extractType0(x *pdf.Extractor, dict pdf.Dict, domain []float64, body io.Reader) (pdf.Function, error) {
	if body == nil {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("function: Type0 requires a stream")}
	}
	rng, err := pdf.GetFloatArray(x.R, dict["Range"])
	if err != nil {
		return nil, err
	}
	sizeArr, err := pdf.GetArray(x.R, dict["Size"])
	if err != nil {
		return nil, err
	}
	size := make([]int, len(sizeArr))
	for i, s := range sizeArr {
		n, err := pdf.GetInteger(x.R, s)
		if err != nil {
			return nil, err
		}
		size[i] = int(n)
	}
	bps, err := pdf.GetInteger(x.R, dict["BitsPerSample"])
	if err != nil {
		return nil, err
	}
	encode, err := pdf.GetFloatArray(x.R, dict["Encode"])
	if err != nil {
		return nil, err
	}
	decode, err := pdf.GetFloatArray(x.R, dict["Decode"])
	if err != nil {
		return nil, err
	}
	order, err := pdf.GetInteger(x.R, dict["Order"])
	if err != nil {
		return nil, err
	}

	samples, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	return &Type0{
		Domain:        domain,
		Range:         rng,
		Size:          size,
		BitsPerSample: int(bps),
		UseCubic:      order == 3,
		Encode:        encode,
		Decode:        decode,
		Samples:       samples,
	}, nil
}

func extractType2(x *pdf.Extractor, dict pdf.Dict, domain []float64) (pdf.Function, error) {
	rng, err := pdf.GetFloatArray(x.R, dict["Range"])
	if err != nil {
		return nil, err
	}
	c0, err := pdf.GetFloatArray(x.R, dict["C0"])
	if err != nil {
		return nil, err
	}
	c1, err := pdf.GetFloatArray(x.R, dict["C1"])
	if err != nil {
		return nil, err
	}
	n, err := pdf.GetReal(x.R, dict["N"])
	if err != nil {
		return nil, err
	}

	if len(domain) != 2 {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("function: Type2 requires a single-input Domain")}
	}
	return &Type2{
		XMin:  domain[0],
		XMax:  domain[1],
		Range: rng,
		C0:    c0,
		C1:    c1,
		N:     float64(n),
	}, nil
}

func extractType3(x *pdf.Extractor, dict pdf.Dict, domain []float64) (pdf.Function, error) {
	rng, err := pdf.GetFloatArray(x.R, dict["Range"])
	if err != nil {
		return nil, err
	}
	bounds, err := pdf.GetFloatArray(x.R, dict["Bounds"])
	if err != nil {
		return nil, err
	}
	encode, err := pdf.GetFloatArray(x.R, dict["Encode"])
	if err != nil {
		return nil, err
	}
	fnArr, err := pdf.GetArray(x.R, dict["Functions"])
	if err != nil {
		return nil, err
	}

	functions := make([]pdf.Function, len(fnArr))
	for i, obj := range fnArr {
		sub, err := Extract(x, obj)
		if err != nil {
			return nil, err
		}
		functions[i] = sub
	}

	if len(domain) != 2 {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("function: Type3 requires a single-input Domain")}
	}
	return &Type3{
		XMin:      domain[0],
		XMax:      domain[1],
		Range:     rng,
		Functions: functions,
		Bounds:    bounds,
		Encode:    encode,
	}, nil
}

func extractType4(x *pdf.Extractor, dict pdf.Dict, domain []float64, body io.Reader) (pdf.Function, error) {
	if body == nil {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("function: Type4 requires a stream")}
	}
	rng, err := pdf.GetFloatArray(x.R, dict["Range"])
	if err != nil {
		return nil, err
	}
	program, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	return &Type4{
		Domain:  domain,
		Range:   rng,
		Program: string(program),
	}, nil
}
