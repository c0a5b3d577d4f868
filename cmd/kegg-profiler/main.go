// Command kegg-profiler provides two subcommands: build-catalog compiles
// module definitions into a serialized catalog, and profile-coverage
// evaluates a KO list against that catalog and writes the coverage,
// step-coverage and enrichment tables.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/jolespin/keggprofiler/internal/obslog"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	os.Args = append([]string{os.Args[0]}, os.Args[2:]...)

	switch cmd {
	case "build-catalog":
		buildCatalogMain()
	case "profile-coverage":
		profileCoverageMain()
	default:
		fmt.Fprintf(os.Stderr, "kegg-profiler: unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: kegg-profiler <build-catalog|profile-coverage> [flags]")
}

func exitOnError(err error) {
	if err == nil {
		return
	}
	obslog.For("cli").WithError(err).Error("command failed")
	os.Exit(1)
}

func setVerbosity(verbose bool) {
	if verbose {
		obslog.SetLevel(logrus.DebugLevel)
	}
}
