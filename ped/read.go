package ped

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/carbocation/plink"
)

// How much of a file is sampled to guess its delimiter.
const sniffBytes = 16 * 1024

// Entry is one decoded .ped line.
type Entry struct {
	Sample    plink.Sample
	Genotypes []plink.Genotype // One per marker, in .map order
}

// tokenReader yields the whitespace-separated tokens of each non-empty line of
// a tab- or space-delimited PLINK text file.
type tokenReader struct {
	path string
	file io.ReadCloser
	csv  *csv.Reader
}

func openTokens(path string) (*tokenReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	rc, err := plink.MaybeDecompressReadCloser(f)
	if err != nil {
		return nil, pfx.Err(err)
	}

	br := bufio.NewReaderSize(rc, sniffBytes)
	head, err := br.Peek(sniffBytes)
	if err != nil && !errors.Is(err, io.EOF) {
		rc.Close()
		return nil, pfx.Err(err)
	}

	r := csv.NewReader(br)
	r.Comma = plink.DetermineDelimiter(bytes.NewReader(head))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true

	return &tokenReader{path: path, file: rc, csv: r}, nil
}

func (t *tokenReader) Close() error {
	return t.file.Close()
}

// next returns the tokens of the next record and its 1-based line number. At
// the end of the file it returns io.EOF.
func (t *tokenReader) next() ([]string, int, error) {
	record, err := t.csv.Read()
	if err != nil {
		if err == io.EOF {
			return nil, 0, err
		}
		return nil, 0, pfx.Err(fmt.Errorf("%s: %w", t.path, err))
	}
	line, _ := t.csv.FieldPos(0)

	// Runs of delimiters and mixed tab/space layouts leave empty or
	// composite fields behind.
	tokens := make([]string, 0, len(record))
	for _, field := range record {
		tokens = append(tokens, strings.Fields(field)...)
	}

	return tokens, line, nil
}

// ReadMAP reads the markers of a .map file. Alleles are not part of the
// format and are left empty.
func ReadMAP(path string) ([]plink.Marker, error) {
	t, err := openTokens(path)
	if err != nil {
		return nil, err
	}
	defer t.Close()

	markers := make([]plink.Marker, 0)
	for {
		tokens, line, err := t.next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if len(tokens) == 0 {
			continue
		}

		if len(tokens) < 4 {
			return nil, &plink.FormatError{Path: path, Line: line, Msg: fmt.Sprintf("expected 4 columns, found %d", len(tokens))}
		}

		cm, err := strconv.ParseFloat(tokens[2], 64)
		if err != nil {
			return nil, &plink.FormatError{Path: path, Line: line, Msg: "bad centimorgan position", Err: err}
		}

		pos, err := strconv.ParseInt(tokens[3], 10, 64)
		if err != nil {
			return nil, &plink.FormatError{Path: path, Line: line, Msg: "bad base-pair position", Err: err}
		}

		markers = append(markers, plink.Marker{
			Chromosome:   tokens[0],
			ID:           tokens[1],
			Centimorgans: cm,
			Position:     pos,
		})
	}

	return markers, nil
}

// ReadPED reads a .ped file whose genotype columns follow markers. The
// markers must carry their alleles (e.g., from the .bim) so that allele pairs
// can be turned back into calls.
func ReadPED(path string, markers []plink.Marker) ([]Entry, error) {
	t, err := openTokens(path)
	if err != nil {
		return nil, err
	}
	defer t.Close()

	want := 6 + 2*len(markers)

	entries := make([]Entry, 0)
	for {
		tokens, line, err := t.next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if len(tokens) == 0 {
			continue
		}

		if len(tokens) != want {
			return nil, &plink.FormatError{Path: path, Line: line, Msg: fmt.Sprintf("expected %d columns, found %d", want, len(tokens))}
		}

		sample, err := plink.ParseSample(tokens[:6])
		if err != nil {
			var fe *plink.FormatError
			if errors.As(err, &fe) {
				fe.Path, fe.Line = path, line
			}
			return nil, err
		}

		entry := Entry{Sample: sample, Genotypes: make([]plink.Genotype, len(markers))}
		for m, marker := range markers {
			first, second := tokens[6+2*m], tokens[7+2*m]

			call, ok := Call(marker, first, second)
			if !ok {
				return nil, &plink.FormatError{Path: path, Line: line, Msg: fmt.Sprintf("alleles %s/%s do not match marker %s (%s/%s)",
					first, second, marker.ID, marker.Allele1, marker.Allele2)}
			}
			entry.Genotypes[m] = call
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// Call is the inverse of Alleles. "0 0" is always read as missing.
func Call(m plink.Marker, first, second string) (plink.Genotype, bool) {
	switch {
	case first == "0" && second == "0":
		return plink.Missing, true
	case first == m.Allele1 && second == m.Allele1:
		return plink.HomozygousA1, true
	case first == m.Allele2 && second == m.Allele2:
		return plink.HomozygousA2, true
	case first == m.Allele1 && second == m.Allele2,
		first == m.Allele2 && second == m.Allele1:
		return plink.Heterozygous, true
	}

	return 0, false
}
