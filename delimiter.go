package plink

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter guesses whether a PLINK text file is tab or space
// delimited by sampling the beginning of r. PLINK only ever writes one of
// the two, so any other guess from the detector falls back to tab.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()

	for _, candidate := range d.DetectDelimiter(r, '"') {
		if candidate == "\t" || candidate == " " {
			return rune(candidate[0])
		}
	}

	return '\t'
}
