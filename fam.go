package plink

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
)

// FAM streams Samples out of a .fam file.
type FAM struct {
	path    string
	file    io.ReadCloser
	scanner *bufio.Scanner
	line    int
	err     error
}

// OpenFAM opens a .fam file. path may be the fileset's base path or the .fam
// file itself, which may be compressed.
func OpenFAM(path string) (*FAM, error) {
	return openFAM(path, nil)
}

func openFAM(path string, client *storage.Client) (*FAM, error) {
	fam := &FAM{
		path: resolve(path, ExtFAM),
	}

	file, err := openText(fam.path, client)
	if err != nil {
		return nil, err
	}
	fam.file = file
	fam.scanner = bufio.NewScanner(file)

	return fam, nil
}

func (f *FAM) Close() error {
	return f.file.Close()
}

func (f *FAM) Err() error {
	if f.err != nil {
		return f.err
	}

	return f.scanner.Err()
}

// Read returns the next Sample, or nil at the end of the file or on error.
func (f *FAM) Read() *Sample {
	if f.err != nil {
		return nil
	}

	for f.scanner.Scan() {
		f.line++

		cols := strings.Fields(f.scanner.Text())
		if len(cols) == 0 {
			continue
		}

		sample, msg, err := parseSample(cols)
		if msg != "" {
			f.err = &FormatError{Path: f.path, Line: f.line, Msg: msg, Err: err}
			return nil
		}

		return sample
	}

	return nil
}

// parseSample builds a Sample from the whitespace-split columns of a .fam (or
// the first six columns of a .ped) line. On failure it returns a description
// of the problem and, where there is one, the underlying parse error.
func parseSample(cols []string) (*Sample, string, error) {
	if len(cols) < famPhenotype+1 {
		return nil, fmt.Sprintf("expected %d columns, found %d", famPhenotype+1, len(cols)), nil
	}

	sex, err := strconv.ParseUint(cols[famSex], 10, 8)
	if err != nil {
		return nil, "bad sex code", err
	}

	pheno, err := strconv.ParseInt(cols[famPhenotype], 10, 8)
	if err != nil {
		return nil, "bad phenotype", err
	}

	return &Sample{
		FamilyID:     cols[famFamilyID],
		IndividualID: cols[famIndividualID],
		FatherID:     cols[famFatherID],
		MotherID:     cols[famMotherID],
		Sex:          uint8(sex),
		Phenotype:    int8(pheno),
	}, "", nil
}

// ParseSample parses the leading six .fam columns of a whitespace-split line.
func ParseSample(cols []string) (Sample, error) {
	s, msg, err := parseSample(cols)
	if msg != "" {
		return Sample{}, &FormatError{Msg: msg, Err: err}
	}

	return *s, nil
}

// ReadSamples reads every Sample of a .fam file, in file order.
func ReadSamples(path string) ([]Sample, error) {
	return readSamples(path, nil)
}

func readSamples(path string, client *storage.Client) ([]Sample, error) {
	f, err := openFAM(path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	samples := make([]Sample, 0)
	for v := f.Read(); v != nil; v = f.Read() {
		samples = append(samples, *v)
	}
	if err := f.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}
