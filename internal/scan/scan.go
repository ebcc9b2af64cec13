// Package scan evaluates dipole amplitudes over grids of positions for
// inspection and plotting.
package scan

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/wildstyl3r/subnucleon/internal/constants"
	"github.com/wildstyl3r/subnucleon/internal/dipole"
	"github.com/wildstyl3r/subnucleon/internal/lattice"
	"github.com/wildstyl3r/subnucleon/internal/nucleus"
)

// Row is one output line.
type Row []float64

// Block is a run of rows sharing the outer scan coordinate. Written blocks are
// separated by a blank line.
type Block []Row

var (
	NucleusColumns  = []string{"y", "x", "N(0,p)", "N(p,p)", "1-ReTrU(p)/Nc"}
	ProfileColumns  = []string{"b", "N"}
	SatScaleColumns = []string{"y", "x", "Qs^2"}
)

// scanXpom is passed to targets that ignore x_pomeron.
const scanXpom = 0.01

// Nucleus scans the lattice at the centres of its cells. Each block holds one
// y value; within a block x increases.
func Nucleus(model *lattice.Model, threads int) []Block {
	g := model.Grid()
	ys := cellCenters(g.MinY(), g.MaxY(), g.YStep())
	xs := cellCenters(g.MinX(), g.MaxX(), g.XStep())
	origin := [2]float64{0, 0}

	return evaluate(len(ys), threads, func(i int) Block {
		block := make(Block, 0, len(xs))
		for _, x := range xs {
			p := [2]float64{x, ys[i]}
			block = append(block, Row{
				ys[i],
				x,
				model.Amplitude(scanXpom, origin, p),
				model.Amplitude(scanXpom, p, p),
				1. - real(model.Trace(p))/constants.Nc,
			})
		}
		return block
	})
}

// Profile is the amplitude of a dipole of size r oriented along x and centred
// at (b, 0), for each b.
func Profile(target dipole.Amplitude, xpom, r float64, bs []float64, threads int) Block {
	blocks := evaluate(len(bs), threads, func(i int) Block {
		q1 := [2]float64{bs[i] + 0.5*r, 0}
		q2 := [2]float64{bs[i] - 0.5*r, 0}
		return Block{{bs[i], target.Amplitude(xpom, q1, q2)}}
	})
	profile := make(Block, 0, len(bs))
	for _, b := range blocks {
		profile = append(profile, b...)
	}
	return profile
}

// SaturationMap tabulates Q_s^2 on a points x points square [-max, max]^2.
func SaturationMap(g *nucleus.Glauber, xpom, max float64, points, threads int) []Block {
	axis := floats.Span(make([]float64, points), -max, max)
	return evaluate(points, threads, func(i int) Block {
		block := make(Block, 0, points)
		for _, x := range axis {
			block = append(block, Row{axis[i], x, g.SaturationScale(xpom, math.Hypot(x, axis[i]))})
		}
		return block
	})
}

// Impacts returns n impact parameters evenly covering [0, max].
func Impacts(max float64, n int) []float64 {
	return floats.Span(make([]float64, n), 0, max)
}

// cellCenters lists min+step/2, min+3step/2, ... below max-step/2.
func cellCenters(min, max, step float64) []float64 {
	if step <= 0 {
		return nil
	}
	var centers []float64
	for i := 0; ; i++ {
		c := min + step*(float64(i)+0.5)
		if c >= max-0.5*step {
			return centers
		}
		centers = append(centers, c)
	}
}

// evaluate runs job(0..n-1) on a pool of workers and returns the blocks in job
// order.
func evaluate(n, threads int, job func(i int) Block) []Block {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	results := make([]Block, n)

	var wg sync.WaitGroup
	jobs := make(chan int, n)
	for i := range n {
		jobs <- i
	}
	close(jobs)

	for range min(threads, max(n, 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = job(i)
			}
		}()
	}
	wg.Wait()
	return results
}
