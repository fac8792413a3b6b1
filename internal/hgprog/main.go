// Public domain.

// Package hgprog implements the hg1g2 command.
package hgprog

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/soniakeys/exit"
	xrand "golang.org/x/exp/rand"

	"github.com/soniakeys/hg1g2/internal/basis"
	"github.com/soniakeys/hg1g2/internal/hgdata"
	"github.com/soniakeys/hg1g2/internal/hgfit"
	"github.com/soniakeys/hg1g2/internal/uncert"
)

const versionString = "hg1g2 version 0.1 Go source."
const copyrightString = "Public domain."

func Main() {
	defer exit.Handler()

	cfg, files := parseCommandLine()
	if err := run(cfg, files, os.Stdout); err != nil {
		exit.Log(err)
	}
}

func parseCommandLine() (*config, []string) {
	cfg := defaultConfig()
	dh := flag.Bool("h", false, "")
	dv := flag.Bool("v", false, "")
	fc := flag.String("c", "", "")
	fm := flag.String("m", cfg.model, "")
	fl := flag.String("l", cfg.layout.String(), "")
	fr := flag.Bool("rad", false, "")
	fu := flag.Bool("u", false, "")
	fn := flag.Int("n", cfg.samples, "")
	fe := flag.Float64("e", 0, "")
	fs := flag.Uint64("s", 0, "")
	flag.Usage = func() {
		os.Stderr.WriteString(`
Usage: hg1g2 [options] <obsfile> ...   fit phase curves of observations in files
       hg1g2 [options] -               fit observations from stdin
       hg1g2 -h                        display help
       hg1g2 -v                        display version and copyright

Options:
       -c <config-file>
       -m hg1g2|hg12|both     model to fit
       -l phase|distances|vectors  table layout
       -rad                   phase angles in radians
       -e <mag-err>           magnitude error for all points
       -u                     estimate uncertainty
       -n <samples>           Monte Carlo samples
       -s <seed>              random seed, 0 for time based
`)
	}
	flag.Parse()
	switch {
	case *dh:
		printHelp()
		os.Exit(0)
	case *dv:
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		fmt.Println("Basis", basis.Version)
		os.Exit(0)
	case flag.NArg() < 1:
		flag.Usage()
		os.Exit(1)
	}
	// config file first, then flags given explicitly override it.
	if *fc > "" {
		if err := cfg.readFile(*fc); err != nil {
			exit.Log(err)
		}
	}
	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "m":
			cfg.model = *fm
		case "l":
			if cfg.layout, err = hgdata.ParseLayout(*fl); err != nil {
				exit.Log(err)
			}
		case "rad":
			cfg.degrees = !*fr
		case "u":
			cfg.uncertainty = *fu
		case "n":
			cfg.samples = *fn
		case "e":
			cfg.magErr = *fe
		case "s":
			cfg.seed = *fs
			cfg.repeatable = *fs != 0
		}
	})
	if err = cfg.validate(); err != nil {
		exit.Log(err)
	}
	return cfg, flag.Args()
}

type job struct {
	fn  string
	rch chan string
}

// run fits each file and writes results to w in the order of files.
//
// Files are processed concurrently.  A dispatcher hands
// each job a private result channel, queues the channel for printing, and
// passes the job to the next free worker.
func run(cfg *config, files []string, w io.Writer) error {
	fitter := hgfit.New(nil, cfg.families)

	prCh := make(chan chan string, len(files))
	jobCh := make(chan *job)
	go func() {
		for _, fn := range files {
			rch := make(chan string, 1)
			jobCh <- &job{fn, rch}
			prCh <- rch
		}
		close(jobCh)
		close(prCh)
	}()

	nWorkers := runtime.GOMAXPROCS(0)
	if nWorkers > len(files) {
		nWorkers = len(files)
	}
	for n := 0; n < nWorkers; n++ {
		go worker(cfg, fitter, jobCh)
	}
	for rch := range prCh {
		if _, err := io.WriteString(w, <-rch); err != nil {
			return err
		}
	}
	return nil
}

func worker(cfg *config, fitter *hgfit.Fitter, jobCh chan *job) {
	rnd := xrand.New(&xrand.PCGSource{})
	if !cfg.repeatable {
		rnd.Seed(uint64(time.Now().UnixNano()))
	}
	for j := range jobCh {
		if cfg.repeatable {
			rnd.Seed(cfg.seed)
		}
		j.rch <- solve(cfg, fitter, rnd, j.fn)
	}
}

// solve fits a single file and formats the result.  Errors are reported
// in the result rather than stopping other files.
func solve(cfg *config, fitter *hgfit.Fitter, rnd *xrand.Rand, fn string) string {
	var b strings.Builder
	name := fn
	if fn == "-" {
		name = "input stream"
	}
	tab, err := hgdata.ReadFile(fn, cfg.layout, cfg.degrees)
	if err != nil {
		fmt.Fprintf(&b, "%s: %v\n", name, err)
		return b.String()
	}
	fmt.Fprintf(&b, "%s: %d observations\n", name, len(tab.Points))
	errs := cfg.magErrors(tab)

	var est *uncert.Estimator
	if cfg.uncertainty {
		if est, err = uncert.New(rnd, cfg.samples); err != nil {
			fmt.Fprintf(&b, "  %v\n", err)
			return b.String()
		}
	}
	if cfg.model != modelHG12 {
		r, err := fitter.FitHG1G2(tab.Points, errs, tab.Degrees)
		report(&b, fitter, est, tab, r, err, "H, G1, G2", []string{"H", "G1", "G2"})
	}
	if cfg.model != modelHG1G2 {
		r, err := fitter.FitHG12(tab.Points, errs, tab.Degrees)
		report(&b, fitter, est, tab, r, err, "H, G12", []string{"H", "G12"})
	}
	return b.String()
}

func report(b *strings.Builder, fitter *hgfit.Fitter, est *uncert.Estimator,
	tab *hgdata.Table, r *hgfit.Result, err error, title string, cols []string) {
	if err != nil {
		fmt.Fprintf(b, "  %-10s %v\n", title, err)
		return
	}
	fmt.Fprintf(b, "  %-10s", title)
	for _, p := range r.Params {
		fmt.Fprintf(b, " %8.4f", p)
	}
	if _, rms, err := fitter.Residuals(r, tab.Points, tab.Degrees); err == nil {
		fmt.Fprintf(b, "  rms %.3f", rms)
	}
	if r.Family >= 0 {
		fmt.Fprintf(b, "  family %d", r.Family)
	}
	b.WriteByte('\n')
	if est == nil {
		return
	}
	s, err := est.Estimate(r.Params, r.Cov)
	if err != nil {
		fmt.Fprintf(b, "  %v\n", err)
		return
	}
	fmt.Fprintf(b, "  %-10s", "")
	for _, c := range cols {
		fmt.Fprintf(b, " %8s", c)
	}
	b.WriteByte('\n')
	for i, row := range s.Table() {
		fmt.Fprintf(b, "  %-10s", uncert.RowNames[i])
		for _, v := range row {
			fmt.Fprintf(b, " %8.4f", v)
		}
		b.WriteByte('\n')
	}
}

func printHelp() {
	fmt.Println(`
Hg1g2 fits the H, G1, G2 and H, G12 phase curve systems to asteroid
photometry and optionally estimates parameter uncertainty by Monte Carlo
sampling of the fit covariance.

Input files are text tables, one observation per line:
   phase       angle mag [err]
   distances   mag r delta sun-observer [err]
   vectors     mag sx sy sz ox oy oz [err]

Config file (YAML) keys:
   model        hg1g2, hg12 or both
   layout       phase, distances or vectors
   degrees      true or false
   uncertainty  true or false
   samples      Monte Carlo sample count
   repeatable   true or false
   seed         random seed for repeatable runs
   magErr       magnitude error for all points
   families     H, G12 calibration table, list of {b1, b0, g1, g0}

For full documentation:
   go doc github.com/soniakeys/hg1g2`)
}
