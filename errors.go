package plink

import "fmt"

// FormatError reports a malformed line in a .fam, .bim, .ped or .map file.
type FormatError struct {
	Path string
	Line int // 1-based
	Msg  string
	Err  error // Underlying parse error, if any
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s:%d: %s: %v", e.Path, e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

func (e *FormatError) Unwrap() error { return e.Err }

// UnsupportedFormatError is returned when a .bed file does not start with the
// SNP-major magic bytes 0x6c 0x1b 0x01. Sample-major files (third byte 0x00)
// are reported with this error rather than being decoded.
type UnsupportedFormatError struct {
	Path  string
	Magic []byte
}

func (e *UnsupportedFormatError) Error() string {
	if len(e.Magic) == len(bedMagic) && e.Magic[0] == bedMagic[0] && e.Magic[1] == bedMagic[1] && e.Magic[2] == 0x00 {
		return fmt.Sprintf("%s: sample-major .bed files are not supported; recode to SNP-major", e.Path)
	}
	return fmt.Sprintf("%s: not a SNP-major .bed file (header % x)", e.Path, e.Magic)
}

// DimensionMismatchError is returned when the .bed data region is too small to
// hold the number of samples and markers declared by the .fam and .bim files.
type DimensionMismatchError struct {
	Path     string
	Samples  int
	Markers  int
	Expected int64 // Minimum number of data bytes after the header
	Actual   int64
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: %d samples x %d markers needs %d data bytes, file has %d",
		e.Path, e.Samples, e.Markers, e.Expected, e.Actual)
}

// IndexError is returned when a sample or marker index is outside [0, count).
// The dataset remains usable.
type IndexError struct {
	Kind  string // "sample" or "marker"
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0, %d)", e.Kind, e.Index, e.Count)
}

// NotFoundError is returned by identifier lookups that match nothing.
type NotFoundError struct {
	Kind string // "sample" or "marker"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}
