// Public domain.

// Package hgdata reads photometric observation tables.
//
// A table is plain text, one observation per line, fields separated by
// white space or commas.  Blank lines and lines starting with # are
// ignored.  The fields of a line depend on the Layout:
//
//	Phase:      angle mag [err]
//	Distances:  mag r delta rObs [err]
//	Vectors:    mag sx sy sz ox oy oz [err]
//
// For Phase, mag is taken as already reduced and angle is in the unit chosen
// by the caller.  For Distances and Vectors, mag is apparent magnitude; the
// phase angle is computed, in degrees, and mag is reduced to unit distances.
// Vectors are the sun-object vector s and the observer-object vector o.
package hgdata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/soniakeys/coord"
	"github.com/spf13/cast"

	"github.com/soniakeys/hg1g2/internal/geom"
	"github.com/soniakeys/hg1g2/internal/hgfit"
)

// Layout selects the fields of a table line.
type Layout int

const (
	Phase Layout = iota
	Distances
	Vectors
)

var layoutNames = [...]string{"phase", "distances", "vectors"}

// nFields is the number of required fields per layout.
var nFields = [...]int{2, 4, 7}

func (l Layout) String() string {
	if l < 0 || int(l) >= len(layoutNames) {
		return fmt.Sprintf("Layout(%d)", int(l))
	}
	return layoutNames[l]
}

// ParseLayout parses a layout name.
func ParseLayout(s string) (Layout, error) {
	for i, n := range layoutNames {
		if strings.EqualFold(s, n) {
			return Layout(i), nil
		}
	}
	return 0, fmt.Errorf("%w: layout %q", ErrFormat, s)
}

// ErrFormat is returned for table lines that cannot be parsed.
var ErrFormat = errors.New("hgdata: invalid table")

// Table is a parsed observation table.
type Table struct {
	Points  []hgfit.Point
	Errors  hgfit.Errors // unspecified unless every line gives an error
	Degrees bool         // unit of Points[i].Angle
}

// Read reads a table.  Degrees gives the angle unit of a Phase layout
// and is ignored for other layouts, which always produce degrees.
func Read(r io.Reader, layout Layout, degrees bool) (*Table, error) {
	if layout < Phase || layout > Vectors {
		return nil, fmt.Errorf("%w: layout %d", ErrFormat, layout)
	}
	need := nFields[layout]
	t := &Table{Degrees: degrees || layout != Phase}
	var errs []float64
	lineNum := 0
	for sc := bufio.NewScanner(r); ; {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, err
			}
			break
		}
		lineNum++
		l := strings.TrimSpace(sc.Text())
		if l == "" || l[0] == '#' {
			continue
		}
		f := strings.FieldsFunc(l, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(f) != need && len(f) != need+1 {
			return nil, fmt.Errorf("%w: line %d: %d fields, want %d or %d",
				ErrFormat, lineNum, len(f), need, need+1)
		}
		v := make([]float64, len(f))
		for i, s := range f {
			x, err := cast.ToFloat64E(s)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, lineNum, err)
			}
			v[i] = x
		}
		p, err := point(layout, v)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		t.Points = append(t.Points, p)
		if len(v) > need {
			errs = append(errs, v[need])
		}
	}
	switch {
	case len(errs) == len(t.Points) && len(errs) > 0:
		t.Errors = hgfit.ErrorsFromSlice(errs)
	case len(errs) > 0:
		return nil, fmt.Errorf("%w: errors given on %d of %d lines",
			ErrFormat, len(errs), len(t.Points))
	}
	return t, nil
}

func point(layout Layout, v []float64) (hgfit.Point, error) {
	switch layout {
	case Distances:
		psi, err := geom.PhaseAngle(v[1], v[2], v[3])
		if err != nil {
			return hgfit.Point{}, err
		}
		return hgfit.Point{Angle: psi.Deg(), Mag: geom.ReducedMag(v[0], v[1], v[2])}, nil
	case Vectors:
		sov := &coord.Cart{X: v[1], Y: v[2], Z: v[3]}
		oov := &coord.Cart{X: v[4], Y: v[5], Z: v[6]}
		psi, r, delta, err := geom.PhaseAngleVec(sov, oov)
		if err != nil {
			return hgfit.Point{}, err
		}
		return hgfit.Point{Angle: psi.Deg(), Mag: geom.ReducedMag(v[0], r, delta)}, nil
	}
	return hgfit.Point{Angle: v[0], Mag: v[1]}, nil
}

// ReadFile reads a table from a named file, or from standard input if fn
// is "-".
func ReadFile(fn string, layout Layout, degrees bool) (*Table, error) {
	if fn == "-" {
		return Read(os.Stdin, layout, degrees)
	}
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, layout, degrees)
}
