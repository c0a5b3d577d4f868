package main

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"

	"github.com/voxelbrain/goptions"

	"github.com/jolespin/keggprofiler/batch"
	"github.com/jolespin/keggprofiler/catalogio"
	"github.com/jolespin/keggprofiler/config"
	"github.com/jolespin/keggprofiler/enrichment"
	"github.com/jolespin/keggprofiler/tableio"
)

// profileCoverageFlags declares the profile-coverage subcommand's flags.
type profileCoverageFlags struct {
	KOs       string        `goptions:"--kos, obligatory, description='KO list input (one per line, or genome_id<TAB>ko table)'"`
	Name      string        `goptions:"--name, description='genome id for a single-column --kos file'"`
	OutputDir string        `goptions:"--output-dir, obligatory, description='directory to write coverage.tsv.gz, step_coverage.tsv.gz and enrichment.tsv.gz'"`
	Database  string        `goptions:"--database, obligatory, description='path to a catalog built by build-catalog'"`
	IndexName string        `goptions:"--index-name, description='row-index column name in the output tables, overrides the profile'"`
	NJobs     int           `goptions:"--n-jobs, description='genome-level parallelism; a non-zero value overrides the profile, whose default 0 means unbounded'"`
	Config    string        `goptions:"--config, description='optional TOML profile overriding built-in defaults'"`
	Method    string        `goptions:"--method, description='FDR correction method (benjamini-hochberg or benjamini-yekutieli), overrides the profile'"`
	Tolerance float64       `goptions:"--tolerance, description='FDR significance threshold; a non-zero value overrides the profile, whose default 0 marks no module significant'"`
	Verbose   bool          `goptions:"-v, --verbose, description='debug-level logging'"`
	Help      goptions.Help `goptions:"-h, --help, description='show this help'"`
}

func profileCoverageMain() {
	var opts profileCoverageFlags
	if err := goptions.Parse(&opts); err != nil {
		goptions.PrintHelp()
		os.Exit(1)
	}
	setVerbosity(opts.Verbose)

	profile := config.Default()
	if opts.Config != "" {
		var err error
		profile, err = config.LoadTOML(opts.Config)
		exitOnError(err)
	}
	if opts.IndexName != "" {
		profile.IndexName = opts.IndexName
	}
	if opts.NJobs != 0 {
		profile.NJobs = opts.NJobs
	}
	if opts.Method != "" {
		profile.FDRMethod = config.ParseMethod(opts.Method)
	}
	if opts.Tolerance != 0 {
		profile.Tolerance = opts.Tolerance
	}

	cat, err := catalogio.DecodeFile(opts.Database)
	exitOnError(err)

	genomes, err := tableio.ReadKOList(opts.KOs)
	exitOnError(err)
	if opts.Name != "" {
		if kos, ok := genomes[""]; ok {
			delete(genomes, "")
			genomes[opts.Name] = kos
		}
	}

	result, err := batch.Run(context.Background(), genomes, cat, batch.Options{NJobs: profile.NJobs})
	exitOnError(err)

	enrichmentResults := make(map[string][]enrichment.Result, len(result.Genomes))
	for _, g := range result.Genomes {
		res, err := enrichment.Test(genomes[g], cat, enrichment.Options{
			Method:    profile.FDRMethod,
			Tolerance: profile.Tolerance,
		})
		exitOnError(err)
		enrichmentResults[g] = res
	}

	exitOnError(os.MkdirAll(opts.OutputDir, 0o755))
	exitOnError(writeGzipTSV(filepath.Join(opts.OutputDir, "coverage.tsv.gz"), func(w *gzip.Writer) error {
		return tableio.WriteCoverageTSV(w, profile.IndexName, result)
	}))
	exitOnError(writeGzipTSV(filepath.Join(opts.OutputDir, "step_coverage.tsv.gz"), func(w *gzip.Writer) error {
		return tableio.WriteStepCoverageTSV(w, profile.IndexName, result)
	}))
	exitOnError(writeGzipTSV(filepath.Join(opts.OutputDir, "enrichment.tsv.gz"), func(w *gzip.Writer) error {
		return tableio.WriteEnrichmentTSV(w, profile.IndexName, result.Genomes, enrichmentResults)
	}))
}

func writeGzipTSV(path string, write func(*gzip.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if err := write(gz); err != nil {
		gz.Close()
		return err
	}

	return gz.Close()
}
