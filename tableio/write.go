package tableio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/jolespin/keggprofiler/batch"
	"github.com/jolespin/keggprofiler/enrichment"
)

// WriteCoverageTSV writes the dense genomes x modules coverage table: a
// named row-index column followed by one column per module id, missing
// modules encoded as 0.0.
func WriteCoverageTSV(w io.Writer, indexName string, res *batch.Result) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(indexName)
	for _, mid := range res.Modules {
		bw.WriteByte('\t')
		bw.WriteString(mid)
	}
	bw.WriteByte('\n')

	for _, g := range res.Genomes {
		bw.WriteString(g)
		row := res.Data[g]
		for _, mid := range res.Modules {
			bw.WriteByte('\t')
			cov := row[mid].Coverage
			bw.WriteString(strconv.FormatFloat(cov, 'f', -1, 64))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// WriteStepCoverageTSV writes the two-level-header step-coverage table:
// for each module, one column per 1-based step index along the widest
// most-complete-path any genome produced for it; genomes with a shorter
// (or absent) path are zero-padded.
func WriteStepCoverageTSV(w io.Writer, indexName string, res *batch.Result) error {
	bw := bufio.NewWriter(w)

	width := make(map[string]int, len(res.Modules))
	for _, mid := range res.Modules {
		for _, g := range res.Genomes {
			if n := len(res.Data[g][mid].StepCoverage); n > width[mid] {
				width[mid] = n
			}
		}
	}

	// Upper header row: module id, repeated once per step column.
	bw.WriteString(indexName)
	for _, mid := range res.Modules {
		for step := 0; step < width[mid]; step++ {
			bw.WriteByte('\t')
			bw.WriteString(mid)
		}
	}
	bw.WriteByte('\n')

	// Lower header row: 1-based step index under each module's columns.
	bw.WriteByte('\t')
	var stepHeaders []string
	for _, mid := range res.Modules {
		for step := 1; step <= width[mid]; step++ {
			stepHeaders = append(stepHeaders, strconv.Itoa(step))
		}
	}
	bw.WriteString(strings.Join(stepHeaders, "\t"))
	bw.WriteByte('\n')

	for _, g := range res.Genomes {
		bw.WriteString(g)
		row := res.Data[g]
		for _, mid := range res.Modules {
			sc := row[mid].StepCoverage
			for step := 0; step < width[mid]; step++ {
				bw.WriteByte('\t')
				if step < len(sc) {
					bw.WriteString(strconv.Itoa(sc[step]))
				} else {
					bw.WriteString("0")
				}
			}
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// WriteEnrichmentTSV writes one row per (genome, module) enrichment
// result: row-index column, module id, p-value, FDR-adjusted p-value,
// and a 0/1 significance flag. genomes fixes the row order; each
// genome's results are written in the order enrichment.Test returned
// them (module id ascending).
func WriteEnrichmentTSV(w io.Writer, indexName string, genomes []string, results map[string][]enrichment.Result) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(indexName)
	bw.WriteString("\tmodule_id\tp_value\tfdr\tsignificant\n")

	for _, g := range genomes {
		for _, r := range results[g] {
			bw.WriteString(g)
			bw.WriteByte('\t')
			bw.WriteString(r.ModuleID)
			bw.WriteByte('\t')
			bw.WriteString(strconv.FormatFloat(r.PValue, 'g', -1, 64))
			bw.WriteByte('\t')
			bw.WriteString(strconv.FormatFloat(r.FDR, 'g', -1, 64))
			bw.WriteByte('\t')
			if r.Significant {
				bw.WriteString("1")
			} else {
				bw.WriteString("0")
			}
			bw.WriteByte('\n')
		}
	}

	return bw.Flush()
}
