// Package summary computes per-marker genotype statistics from the class
// masks of a PLINK dataset. Nothing is filtered; every marker is reported.
package summary

import (
	"fmt"
	"math"

	"github.com/carbocation/plink"
	"github.com/carbocation/plink/hwe"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Source is the part of *plink.Dataset that summaries are computed from.
type Source interface {
	MarkerCount() int
	Marker(i int) (plink.Marker, error)
	Classes(m int) (plink.GenotypeClasses, error)
}

type MarkerSummary struct {
	Marker plink.Marker
	Counts plink.GenotypeCounts

	A1Frequency float64 // Among called alleles
	MAF         float64
	CallRate    float64
	HWEExactP   float64
}

// ForMarker summarizes marker m. Frequencies are NaN when no sample has a call.
func ForMarker(src Source, m int) (MarkerSummary, error) {
	marker, err := src.Marker(m)
	if err != nil {
		return MarkerSummary{}, err
	}

	classes, err := src.Classes(m)
	if err != nil {
		return MarkerSummary{}, err
	}

	return fromCounts(marker, classes.Counts()), nil
}

func fromCounts(marker plink.Marker, c plink.GenotypeCounts) MarkerSummary {
	out := MarkerSummary{
		Marker:    marker,
		Counts:    c,
		HWEExactP: 1,
	}

	total := c.Called() + c.Missing
	called := c.Called()

	if total > 0 {
		out.CallRate = float64(called) / float64(total)
	}

	if called == 0 {
		out.A1Frequency, out.MAF = math.NaN(), math.NaN()
		return out
	}

	out.A1Frequency = float64(2*c.Hom1+c.Het) / float64(2*called)
	out.MAF = out.A1Frequency
	if out.MAF > 0.5 {
		out.MAF = 1 - out.MAF
	}

	out.HWEExactP = hwe.Exact(int64(c.Hom1), int64(c.Het), int64(c.Hom2))

	return out
}

// ForDataset summarizes every marker, in marker order.
func ForDataset(src Source) ([]MarkerSummary, error) {
	out := make([]MarkerSummary, 0, src.MarkerCount())

	for m := 0; m < src.MarkerCount(); m++ {
		row, err := ForMarker(src, m)
		if err != nil {
			return nil, fmt.Errorf("marker %d: %w", m, err)
		}
		out = append(out, row)
	}

	return out, nil
}

type Overall struct {
	Markers      int
	MeanCallRate float64
	MedianMAF    float64 // Over markers with at least one call
}

// Overview aggregates marker summaries.
func Overview(rows []MarkerSummary) (Overall, error) {
	out := Overall{Markers: len(rows)}
	if len(rows) == 0 {
		return out, nil
	}

	callRates := make([]float64, 0, len(rows))
	mafs := make(stats.Float64Data, 0, len(rows))
	for _, row := range rows {
		callRates = append(callRates, row.CallRate)
		if row.Counts.Called() > 0 {
			mafs = append(mafs, row.MAF)
		}
	}

	out.MeanCallRate = stat.Mean(callRates, nil)

	out.MedianMAF = math.NaN()
	if len(mafs) > 0 {
		median, err := mafs.Median()
		if err != nil {
			return out, err
		}
		out.MedianMAF = median
	}

	return out, nil
}
