// Package plinktest writes small PLINK binary filesets for tests.
package plinktest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/carbocation/plink"
)

// Fixture describes a fileset. Genotypes is indexed [marker][sample].
type Fixture struct {
	Samples   []plink.Sample
	Markers   []plink.Marker
	Genotypes [][]plink.Genotype
}

// Pack encodes one marker's calls in SNP-major .bed layout.
func Pack(calls []plink.Genotype) []byte {
	out := make([]byte, (len(calls)+3)/4)
	for s, g := range calls {
		out[s/4] |= byte(g&0b11) << (2 * uint(s%4))
	}
	return out
}

// Write creates <dir>/<name>.fam, .bim and .bed and returns the base path.
func Write(t testing.TB, dir, name string, fx Fixture) string {
	t.Helper()

	base := filepath.Join(dir, name)

	if err := writeLines(base+plink.ExtFAM, len(fx.Samples), func(i int) string {
		s := fx.Samples[i]
		return fmt.Sprintf("%s %s %s %s %d %d", s.FamilyID, s.IndividualID, s.FatherID, s.MotherID, s.Sex, s.Phenotype)
	}); err != nil {
		t.Fatal(err)
	}

	if err := writeLines(base+plink.ExtBIM, len(fx.Markers), func(i int) string {
		m := fx.Markers[i]
		return fmt.Sprintf("%s\t%s\t%s\t%d\t%s\t%s", m.Chromosome, m.ID,
			strconv.FormatFloat(m.Centimorgans, 'g', -1, 64), m.Position, m.Allele1, m.Allele2)
	}); err != nil {
		t.Fatal(err)
	}

	bed := []byte{0x6c, 0x1b, 0x01}
	for _, calls := range fx.Genotypes {
		bed = append(bed, Pack(calls)...)
	}
	if err := os.WriteFile(base+plink.ExtBED, bed, 0644); err != nil {
		t.Fatal(err)
	}

	return base
}

func writeLines(path string, n int, line func(int) string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for i := 0; i < n; i++ {
		if _, err := fmt.Fprintln(w, line(i)); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Cycle returns the nSamples x nMarkers fixture used across the tests. Calls
// cycle through all four genotypes so every code appears in every marker.
func Cycle(nSamples, nMarkers int) Fixture {
	fx := Fixture{}

	for i := 0; i < nSamples; i++ {
		fx.Samples = append(fx.Samples, plink.Sample{
			FamilyID:     fmt.Sprintf("FAM%d", i/3),
			IndividualID: fmt.Sprintf("IND%d", i),
			FatherID:     "0",
			MotherID:     "0",
			Sex:          uint8(i%3),
			Phenotype:    []int8{1, 2, -9, 0}[i%4],
		})
	}

	for m := 0; m < nMarkers; m++ {
		fx.Markers = append(fx.Markers, plink.Marker{
			Chromosome:   strconv.Itoa(m%22 + 1),
			ID:           fmt.Sprintf("rs%03d", m+1),
			Centimorgans: float64(m) * 1.1,
			Position:     int64(123455 + m),
			Allele1:      []string{"A", "C", "G", "TT"}[m%4],
			Allele2:      []string{"G", "T", "A", "C"}[m%4],
		})

		calls := make([]plink.Genotype, nSamples)
		for s := range calls {
			calls[s] = plink.Genotype((s + 3*m + 3) % 4)
		}
		fx.Genotypes = append(fx.Genotypes, calls)
	}

	return fx
}
