package scan

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/wildstyl3r/subnucleon/internal/utils"
)

// WriteRows writes header lines prefixed by "# ", then the blocks as
// whitespace separated columns with a blank line after each block.
func WriteRows(w io.Writer, header []string, blocks []Block) error {
	bw := bufio.NewWriter(w)
	for _, line := range header {
		if _, err := fmt.Fprintf(bw, "# %s\n", line); err != nil {
			return err
		}
	}
	for _, block := range blocks {
		for _, row := range block {
			if _, err := bw.WriteString(formatRow(row, " ") + "\n"); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatRow(row Row, sep string) string {
	fields := make([]string, len(row))
	for i, v := range row {
		fields[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(fields, sep)
}

// Labeled prefixes every row of the blocks with label, the first CSV column.
func Labeled(label string, blocks []Block) utils.CSV {
	var data utils.CSV
	for _, block := range blocks {
		for _, row := range block {
			record := make([]string, 0, len(row)+1)
			record = append(record, label)
			for _, v := range row {
				record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
			}
			data = append(data, record)
		}
	}
	return data
}

// WriteCSV stores labeled rows of several targets in one file, targets in
// natural order and rows of a target in scan order.
func WriteCSV(data utils.CSV, makeDir bool, path, subpath, name string, columns []string) error {
	return utils.WriteAsCSV(data, makeDir, path, subpath, name, append([]string{"target"}, columns...))
}

// grid exposes a column of a block scan as plotter.GridXYZ. Blocks are rows
// of the heatmap (column 0 is y), rows of a block its columns (column 1 is x).
type grid struct {
	blocks []Block
	column int
}

func (g grid) Dims() (c, r int)  { return len(g.blocks[0]), len(g.blocks) }
func (g grid) Z(c, r int) float64 { return g.blocks[r][c][g.column] }
func (g grid) X(c int) float64    { return g.blocks[0][c][1] }
func (g grid) Y(r int) float64    { return g.blocks[r][0][0] }

// Heatmap renders one column of a two dimensional scan to an image file; the
// format follows the file extension.
func Heatmap(blocks []Block, column int, title, file string) error {
	if len(blocks) < 2 || len(blocks[0]) < 2 {
		return fmt.Errorf("heatmap needs at least a 2x2 scan, got %d blocks", len(blocks))
	}
	for _, b := range blocks {
		if len(b) != len(blocks[0]) {
			return fmt.Errorf("heatmap needs blocks of equal length")
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x [GeV^-1]"
	p.Y.Label.Text = "y [GeV^-1]"

	h := plotter.NewHeatMap(grid{blocks: blocks, column: column}, palette.Heat(64, 1))
	p.Add(h)

	return p.Save(6*vg.Inch, 6*vg.Inch, file)
}

// Summary reports the mean and standard deviation of a column and the row
// holding its maximum.
func Summary(blocks []Block, column int) (mean, std float64, argmax Row) {
	var values []float64
	var rows []Row
	for _, block := range blocks {
		for _, row := range block {
			values = append(values, row[column])
			rows = append(rows, row)
		}
	}
	if len(values) == 0 {
		return 0, 0, nil
	}
	mean, variance := utils.MeanAndVariance(values, false)
	return mean, math.Sqrt(variance), rows[utils.Argmax(values)]
}
