// Package ped writes a PLINK binary fileset back out as a legacy text
// .ped/.map pair, and reads such pairs back in for comparison.
package ped

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/carbocation/plink"
)

// Extensions of the text fileset members.
const (
	ExtMAP = ".map"
	ExtPED = ".ped"
)

// Source is the part of *plink.Dataset that the exporter reads.
type Source interface {
	Samples() []plink.Sample
	Markers() []plink.Marker
	Call(sample, marker int) (plink.Genotype, error)
}

// Export writes <path>.map and <path>.ped from src. All columns are tab
// separated, and each genotype is written as two allele columns.
func Export(src Source, path string) error {
	markers := src.Markers()

	if err := writeFile(path+ExtMAP, func(w *bufio.Writer) error {
		return WriteMAP(w, markers)
	}); err != nil {
		return err
	}

	return writeFile(path+ExtPED, func(w *bufio.Writer) error {
		return WritePED(w, src)
	})
}

func writeFile(path string, write func(*bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return pfx.Err(err)
	}

	if err := f.Close(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// WriteMAP writes one chromosome/ID/cM/position line per marker.
func WriteMAP(w io.Writer, markers []plink.Marker) error {
	bw := bufio.NewWriter(w)

	for _, m := range markers {
		bw.WriteString(m.Chromosome)
		bw.WriteByte('\t')
		bw.WriteString(m.ID)
		bw.WriteByte('\t')
		bw.WriteString(strconv.FormatFloat(m.Centimorgans, 'g', -1, 64))
		bw.WriteByte('\t')
		bw.WriteString(strconv.FormatInt(m.Position, 10))
		if err := bw.WriteByte('\n'); err != nil {
			return pfx.Err(err)
		}
	}

	return flush(bw)
}

// WritePED writes one line per sample: the six .fam columns followed by two
// allele columns per marker, in marker order.
func WritePED(w io.Writer, src Source) error {
	bw := bufio.NewWriter(w)
	markers := src.Markers()

	for s, sample := range src.Samples() {
		bw.WriteString(sample.FamilyID)
		bw.WriteByte('\t')
		bw.WriteString(sample.IndividualID)
		bw.WriteByte('\t')
		bw.WriteString(sample.FatherID)
		bw.WriteByte('\t')
		bw.WriteString(sample.MotherID)
		bw.WriteByte('\t')
		bw.WriteString(strconv.Itoa(int(sample.Sex)))
		bw.WriteByte('\t')
		bw.WriteString(strconv.Itoa(int(sample.Phenotype)))

		for m, marker := range markers {
			call, err := src.Call(s, m)
			if err != nil {
				return err
			}

			first, second := Alleles(marker, call)
			bw.WriteByte('\t')
			bw.WriteString(first)
			bw.WriteByte('\t')
			bw.WriteString(second)
		}

		if err := bw.WriteByte('\n'); err != nil {
			return pfx.Err(err)
		}
	}

	return flush(bw)
}

// Alleles spells out a call as the pair of allele strings used in .ped files.
// Missing calls are written as "0 0".
func Alleles(m plink.Marker, g plink.Genotype) (string, string) {
	switch g {
	case plink.HomozygousA1:
		return m.Allele1, m.Allele1
	case plink.Heterozygous:
		return m.Allele1, m.Allele2
	case plink.HomozygousA2:
		return m.Allele2, m.Allele2
	}

	return "0", "0"
}

func flush(bw *bufio.Writer) error {
	if err := bw.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
