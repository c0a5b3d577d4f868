package main

import (
	"fmt"
	"os"

	"github.com/voxelbrain/goptions"

	"github.com/jolespin/keggprofiler/catalog"
	"github.com/jolespin/keggprofiler/catalogio"
	"github.com/jolespin/keggprofiler/config"
	"github.com/jolespin/keggprofiler/tableio"
)

// buildCatalogFlags declares the build-catalog subcommand's flags using
// the voxelbrain/goptions struct-tag convention (grounded on
// wayneeseguin-graft/cmd/graft/main.go).
type buildCatalogFlags struct {
	Definitions         string        `goptions:"--definitions, obligatory, description='TSV of module_id, definition_string'"`
	Names               string        `goptions:"--names, description='TSV of module_id, name'"`
	Classes             string        `goptions:"--classes, description='TSV of module_id, class_string'"`
	Output              string        `goptions:"--output, obligatory, description='path to write the compiled catalog'"`
	Download            bool          `goptions:"--download, description='fetch module definitions from KEGG (unsupported in this build)'"`
	IntermediateDir     string        `goptions:"--intermediate-dir, description='accepted but unused: this build writes no intermediate files'"`
	NoIntermediateFiles bool          `goptions:"--no-intermediate-files, description='accepted but unused: this build writes no intermediate files'"`
	VersionTag          string        `goptions:"--version-tag, description='database version tag written alongside the catalog'"`
	Force               bool          `goptions:"--force, description='exit 0 even if some modules failed to parse'"`
	Config              string        `goptions:"--config, description='optional TOML profile overriding built-in defaults'"`
	NJobs               int           `goptions:"--n-jobs, description='module-level build parallelism; a non-zero value overrides the profile, whose default 0 means unbounded'"`
	Verbose             bool          `goptions:"-v, --verbose, description='debug-level logging'"`
	Help                goptions.Help `goptions:"-h, --help, description='show this help'"`
}

func buildCatalogMain() {
	var opts buildCatalogFlags
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
	if opts.NJobs != 0 {
		profile.NJobs = opts.NJobs
	}

	if opts.Download {
		exitOnError(catalogio.ErrDownloadUnsupported)
	}

	defs, err := tableio.ReadPairTSV(opts.Definitions)
	exitOnError(err)

	names := map[string]string{}
	if opts.Names != "" {
		names, err = tableio.ReadPairTSV(opts.Names)
		exitOnError(err)
	}

	classes := map[string]string{}
	if opts.Classes != "" {
		classes, err = tableio.ReadPairTSV(opts.Classes)
		exitOnError(err)
	}

	cat, failures := catalog.BuildConcurrent(defs, names, classes, profile.NJobs)
	if len(failures) > 0 {
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "kegg-profiler: module %s: %v\n", f.ModuleID, f.Err)
		}
		if !opts.Force {
			os.Exit(1)
		}
	}

	exitOnError(catalogio.EncodeFile(opts.Output, cat))

	if opts.VersionTag != "" {
		exitOnError(catalogio.WriteVersionFile(opts.Output+".version", opts.VersionTag))
	}
}
