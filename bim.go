package plink

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
)

// BIM streams Markers out of a .bim file.
type BIM struct {
	path    string
	file    io.ReadCloser
	scanner *bufio.Scanner
	line    int
	err     error
}

// OpenBIM opens a .bim file. path may be the fileset's base path or the .bim
// file itself, which may be compressed.
func OpenBIM(path string) (*BIM, error) {
	return openBIM(path, nil)
}

func openBIM(path string, client *storage.Client) (*BIM, error) {
	bim := &BIM{
		path: resolve(path, ExtBIM),
	}

	file, err := openText(bim.path, client)
	if err != nil {
		return nil, err
	}
	bim.file = file
	bim.scanner = bufio.NewScanner(file)

	return bim, nil
}

func (b *BIM) Close() error {
	return b.file.Close()
}

func (b *BIM) Err() error {
	if b.err != nil {
		return b.err
	}

	return b.scanner.Err()
}

// Read returns the next Marker, or nil at the end of the file or on error.
// Check Err to tell the two apart.
func (b *BIM) Read() *Marker {
	if b.err != nil {
		return nil
	}

	for b.scanner.Scan() {
		b.line++

		cols := strings.Fields(b.scanner.Text())
		if len(cols) == 0 {
			continue
		}

		if len(cols) < bimAllele2+1 {
			return b.fail(fmt.Sprintf("expected %d columns, found %d", bimAllele2+1, len(cols)), nil)
		}

		row := &Marker{
			Chromosome: cols[bimChromosome],
			ID:         cols[bimVariantID],
			Allele1:    cols[bimAllele1],
			Allele2:    cols[bimAllele2],
		}

		cm, err := strconv.ParseFloat(cols[bimCentimorgans], 64)
		if err != nil {
			return b.fail("bad centimorgan position", err)
		}
		row.Centimorgans = cm

		pos, err := strconv.ParseInt(cols[bimPosition], 10, 64)
		if err != nil {
			return b.fail("bad base-pair position", err)
		}
		row.Position = pos

		return row
	}

	return nil
}

func (b *BIM) fail(msg string, err error) *Marker {
	b.err = &FormatError{Path: b.path, Line: b.line, Msg: msg, Err: err}
	return nil
}

// ReadMarkers reads every Marker of a .bim file, in file order.
func ReadMarkers(path string) ([]Marker, error) {
	return readMarkers(path, nil)
}

func readMarkers(path string, client *storage.Client) ([]Marker, error) {
	b, err := openBIM(path, client)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	markers := make([]Marker, 0)
	for v := b.Read(); v != nil; v = b.Read() {
		markers = append(markers, *v)
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	return markers, nil
}
