package lattice

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/wildstyl3r/subnucleon/internal/dipole"
	"github.com/wildstyl3r/subnucleon/internal/wilson"
)

// shorter lines are treated as empty
const minLineLength = 10

const fieldsPerLine = 2 + 18

type Site struct {
	X, Y float64
	M    wilson.Matrix
}

// Grid stores Wilson lines on a rectangular lattice. Matrices are flattened as
// xIndex*len(ys) + yIndex.
type Grid struct {
	xs, ys []float64
	lines  []wilson.Matrix
}

// Load reads a Wilson line file. Each data line holds x, y and the 3×3 matrix
// as Re Im pairs for elements (0,0), (0,1), (0,2), (1,0), ...
// Coordinates are expected in scan order with x outermost: an axis value is
// recorded only when it is greater than the last one seen on that axis.
func Load(path string) (*Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &dipole.ResourceError{Path: path, Err: err}
	}
	defer file.Close()

	var sites []Site
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if len(line) < minLineLength || line[0] == '#' {
			continue
		}
		site, err := parseSite(line)
		if err != nil {
			return nil, &dipole.ResourceError{Path: path, Line: lineNo, Err: err}
		}
		sites = append(sites, site)
	}
	if err := scanner.Err(); err != nil {
		return nil, &dipole.ResourceError{Path: path, Err: fmt.Errorf("error reading file: %w", err)}
	}

	g, err := newGrid(sites)
	if err != nil {
		return nil, &dipole.ResourceError{Path: path, Err: err}
	}
	log.Printf("Loaded %d Wilson lines from file %s, grid size %d x %d", len(g.lines), path, len(g.xs), len(g.ys))
	return g, nil
}

func parseSite(line string) (Site, error) {
	parts := strings.Fields(line)
	if len(parts) < fieldsPerLine {
		return Site{}, fmt.Errorf("expected %d numbers, got %d", fieldsPerLine, len(parts))
	}
	values := make([]float64, fieldsPerLine)
	for i := range values {
		v, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return Site{}, fmt.Errorf("error parsing float in column %d: %w", i+1, err)
		}
		values[i] = v
	}
	s := Site{X: values[0], Y: values[1]}
	for row := range 3 {
		for col := range 3 {
			k := 2 + 2*(3*row+col)
			s.M[row][col] = complex(values[k], values[k+1])
		}
	}
	return s, nil
}

func newGrid(sites []Site) (*Grid, error) {
	if len(sites) == 0 {
		return nil, errors.New("no Wilson lines found")
	}
	g := &Grid{lines: make([]wilson.Matrix, 0, len(sites))}
	for _, s := range sites {
		g.lines = append(g.lines, s.M)
		if len(g.xs) == 0 || s.X > g.xs[len(g.xs)-1] {
			g.xs = append(g.xs, s.X)
		}
		if len(g.ys) == 0 || s.Y > g.ys[len(g.ys)-1] {
			g.ys = append(g.ys, s.Y)
		}
	}

	// the flattened index is only meaningful for a full x-major scan
	nx, ny := len(g.xs), len(g.ys)
	if nx*ny != len(sites) {
		return nil, fmt.Errorf("irregular grid: %d sites for %d x %d coordinates", len(sites), nx, ny)
	}
	for k, s := range sites {
		if s.X != g.xs[k/ny] || s.Y != g.ys[k%ny] {
			return nil, fmt.Errorf("irregular grid: site %d at (%g, %g), expected (%g, %g)", k+1, s.X, s.Y, g.xs[k/ny], g.ys[k%ny])
		}
	}
	return g, nil
}

func (g *Grid) Dims() (nx, ny int) {
	return len(g.xs), len(g.ys)
}

func (g *Grid) Len() int {
	return len(g.lines)
}

func (g *Grid) At(xIndex, yIndex int) wilson.Matrix {
	return g.lines[xIndex*len(g.ys)+yIndex]
}

func (g *Grid) MinX() float64 { return g.xs[0] }
func (g *Grid) MaxX() float64 { return g.xs[len(g.xs)-1] }
func (g *Grid) MinY() float64 { return g.ys[0] }
func (g *Grid) MaxY() float64 { return g.ys[len(g.ys)-1] }

// XStep is the distance between the first two x coordinates, 0 for a single column.
func (g *Grid) XStep() float64 {
	return step(g.xs)
}

func (g *Grid) YStep() float64 {
	return step(g.ys)
}

func step(coords []float64) float64 {
	if len(coords) < 2 {
		return 0
	}
	return coords[1] - coords[0]
}

// Nearest returns the matrix stored closest to (x, y), axis by axis.
func (g *Grid) Nearest(x, y float64) wilson.Matrix {
	return g.At(FindIndex(x, g.xs), FindIndex(y, g.ys))
}
