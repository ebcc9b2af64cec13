package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/wildstyl3r/subnucleon/internal/config"
	"github.com/wildstyl3r/subnucleon/internal/dipole"
	"github.com/wildstyl3r/subnucleon/internal/lattice"
	"github.com/wildstyl3r/subnucleon/internal/nucleus"
	"github.com/wildstyl3r/subnucleon/internal/scan"
	"github.com/wildstyl3r/subnucleon/internal/target"
	"github.com/wildstyl3r/subnucleon/internal/utils"
)

const (
	modeNucleus  = "nucleus"
	modeProfile  = "profile"
	modeSatScale = "satscale"
)

func main() {
	_ = godotenv.Load(".env")

	defaultInput := "targets"
	if env := os.Getenv("SUBNUCLEON_CONFIG"); env != "" {
		defaultInput = env
	}
	var configFileNamePointer = flag.String("input", defaultInput, "target configuration in toml format")
	var mode = flag.String("mode", modeProfile, "scan to run: nucleus (ipglasma lattice), profile or satscale (glauber)")
	var threads = flag.Int("threads", -1, "number of workers, overrides the configuration (0: one per CPU)")
	var saveCSV = flag.Bool("csv", false, "also save all targets to one csv file")
	var savePNG = flag.Bool("png", false, "save two dimensional scans as png heatmaps")
	var verbose = flag.Bool("v", false, "print resolved target parameters")
	flag.Parse()

	switch *mode {
	case modeNucleus, modeProfile, modeSatScale:
	default:
		fatal(dipole.Configurationf("unknown mode %q", *mode))
	}

	startTime := time.Now()
	runID := uuid.New().String()
	fmt.Printf("Current time: %s\n", startTime.UTC().Format(time.UnixDate))
	fmt.Printf("Run %s\n", runID)

	cfg, meta, err := config.LoadConfig(*configFileNamePointer)
	if err != nil {
		fatal(err)
	}
	cfg.SetVerbosity(*verbose)

	outputPath := "."
	if cfg.OutputDir != "" && cfg.OutputDir != "." {
		if err := os.MkdirAll(cfg.OutputDir, 0750); err != nil {
			fatal(err)
		}
		outputPath = cfg.OutputDir
	}

	var table csvTable
	for _, name := range utils.NaturalKeys(cfg.Targets) {
		fmt.Println("\n" + name)
		parameters, err := cfg.Target(name, &meta)
		if err != nil {
			fatal(err)
		}
		if *threads >= 0 {
			parameters.Threads = *threads
		}
		if parameters.Verbose() {
			fmt.Printf("%+v\n", parameters)
		}

		amp, err := target.New(parameters)
		if err != nil {
			fatal(err)
		}
		fmt.Println(amp.InfoStr())

		targetStart := time.Now()
		blocks, columns, err := run(*mode, amp, parameters)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", name, err)
			continue
		}
		if parameters.Verbose() {
			fmt.Printf("scan took %v\n", time.Since(targetStart))
		}

		file, err := utils.OpenFile(cfg.MakeDir, outputPath, *mode, name, ".dat")
		if err != nil {
			fatal(err)
		}
		header := []string{"run " + runID, amp.InfoStr(), strings.Join(columns, " ")}
		err = scan.WriteRows(file, header, blocks)
		file.Close()
		if err != nil {
			fatal(err)
		}
		println(*mode + " saved")

		last := len(columns) - 1
		mean, std, peak := scan.Summary(blocks, last)
		fmt.Printf("%s: mean %g, std %g, maximum at %v\n", columns[last], mean, std, peak)

		if *saveCSV {
			table.add(name, blocks, columns)
		}
		if *savePNG && *mode != modeProfile {
			png := utils.OutputPath(cfg.MakeDir, outputPath, *mode, name, ".png")
			if err := scan.Heatmap(blocks, last, amp.InfoStr(), png); err != nil {
				println("unable to save heatmap: ", err.Error())
			} else {
				println("heatmap saved")
			}
		}
	}

	if *saveCSV && len(table.rows) > 0 {
		if err := scan.WriteCSV(table.rows, false, outputPath, *mode, *configFileNamePointer, table.columns); err != nil {
			fatal(err)
		}
		println("csv saved")
	}
	fmt.Printf("Elapsed time: %v\n", time.Since(startTime))
}

// csvTable gathers the rows of every scanned target for one csv file.
type csvTable struct {
	rows    utils.CSV
	columns []string
}

func (t *csvTable) add(name string, blocks []scan.Block, columns []string) {
	t.rows = append(t.rows, scan.Labeled(name, blocks)...)
	t.columns = columns
}

func run(mode string, amp dipole.Amplitude, p config.TargetParameters) ([]scan.Block, []string, error) {
	switch mode {
	case modeNucleus:
		model, ok := amp.(*lattice.Model)
		if !ok {
			return nil, nil, dipole.Configurationf("nucleus scan needs an ipglasma target")
		}
		return scan.Nucleus(model, p.Threads), scan.NucleusColumns, nil
	case modeSatScale:
		g, ok := amp.(*nucleus.Glauber)
		if !ok {
			return nil, nil, dipole.Configurationf("saturation scale map needs a glauber target")
		}
		return scan.SaturationMap(g, p.Xpom, p.SatScaleMax, p.SatScalePoints, p.Threads), scan.SatScaleColumns, nil
	}
	bs := scan.Impacts(p.BMax, p.BPoints)
	return []scan.Block{scan.Profile(amp, p.Xpom, p.DipoleSize, bs, p.Threads)}, scan.ProfileColumns, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
