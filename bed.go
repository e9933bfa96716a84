package plink

import (
	"bytes"
	"os"

	"cloud.google.com/go/storage"
	"github.com/bits-and-blooms/bitset"
	"github.com/carbocation/pfx"
)

// The first two bytes identify a PLINK .bed file. The third selects SNP-major
// mode, which is the only layout supported.
var bedMagic = []byte{0x6c, 0x1b, 0x01}

// BED is a read-only view of the packed genotype matrix in a SNP-major .bed
// file. Each marker occupies BytesPerMarker consecutive bytes; within a byte,
// the first sample is in the lowest two bits. A BED is safe for concurrent
// use until Close is called.
type BED struct {
	path           string
	nSamples       int
	nMarkers       int
	bytesPerMarker int
	data           []byte // Packed genotypes, header excluded
	release        func() error
}

// OpenBED maps the .bed file at path (or the base path of its fileset), which
// must hold at least nSamples x nMarkers genotypes.
func OpenBED(path string, nSamples, nMarkers int) (*BED, error) {
	return openBED(path, nSamples, nMarkers, nil)
}

func openBED(path string, nSamples, nMarkers int, client *storage.Client) (*BED, error) {
	path = resolve(path, ExtBED)

	src, size, err := openRandomAccess(path, client)
	if err != nil {
		return nil, err
	}

	b, err := newBED(path, src, size, nSamples, nMarkers)
	if err != nil {
		src.Close()
		return nil, err
	}

	return b, nil
}

// newBED validates the header and dimensions of src. On error, the caller
// still owns src.
func newBED(path string, src ReaderAtCloser, size int64, nSamples, nMarkers int) (*BED, error) {
	headerLen := int64(len(bedMagic))
	if size < headerLen {
		// Whatever could be read is only used to describe the rejected file.
		header := make([]byte, size)
		n, _ := src.ReadAt(header, 0)
		return nil, &UnsupportedFormatError{Path: path, Magic: header[:n]}
	}

	header := make([]byte, headerLen)
	if n, err := src.ReadAt(header, 0); n < len(header) {
		return nil, pfx.Err(err)
	}
	if !bytes.Equal(header, bedMagic) {
		return nil, &UnsupportedFormatError{Path: path, Magic: header}
	}

	bytesPerMarker := (nSamples + 3) / 4
	need := int64(bytesPerMarker) * int64(nMarkers)
	if size-headerLen < need {
		return nil, &DimensionMismatchError{
			Path:     path,
			Samples:  nSamples,
			Markers:  nMarkers,
			Expected: need,
			Actual:   size - headerLen,
		}
	}

	b := &BED{
		path:           path,
		nSamples:       nSamples,
		nMarkers:       nMarkers,
		bytesPerMarker: bytesPerMarker,
	}

	if f, ok := src.(*os.File); ok {
		mapped, err := mmapFile(f, size)
		if err != nil {
			return nil, pfx.Err(err)
		}
		b.data = mapped[headerLen : headerLen+need]
		b.release = func() error {
			err := munmapFile(mapped)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			return err
		}
		return b, nil
	}

	// Remote objects can't be mapped, so the genotype block is fetched whole.
	buf := make([]byte, need)
	if n, err := src.ReadAt(buf, headerLen); int64(n) < need {
		return nil, pfx.Err(err)
	}
	b.data = buf
	b.release = src.Close

	return b, nil
}

// Close releases the mapping and the underlying file. Slices previously
// returned by MarkerBytes must not be used afterwards.
func (b *BED) Close() error {
	if b.release == nil {
		return nil
	}

	err := b.release()
	b.release = nil
	b.data = nil

	return err
}

func (b *BED) Path() string        { return b.path }
func (b *BED) Samples() int        { return b.nSamples }
func (b *BED) Markers() int        { return b.nMarkers }
func (b *BED) BytesPerMarker() int { return b.bytesPerMarker }

func (b *BED) checkSample(s int) error {
	if s < 0 || s >= b.nSamples {
		return &IndexError{Kind: "sample", Index: s, Count: b.nSamples}
	}
	return nil
}

func (b *BED) checkMarker(m int) error {
	if m < 0 || m >= b.nMarkers {
		return &IndexError{Kind: "marker", Index: m, Count: b.nMarkers}
	}
	return nil
}

// code is the 2-bit genotype of sample s at marker m. Indices must be valid.
func (b *BED) code(s, m int) byte {
	return (b.data[m*b.bytesPerMarker+s/4] >> (2 * uint(s%4))) & 0b11
}

// Genotype returns the A2 and A1 bits for sample s at marker m.
func (b *BED) Genotype(s, m int) (a2, a1 bool, err error) {
	g, err := b.Call(s, m)
	if err != nil {
		return false, false, err
	}

	return g.A2(), g.A1(), nil
}

// Call returns the decoded genotype for sample s at marker m.
func (b *BED) Call(s, m int) (Genotype, error) {
	if err := b.checkSample(s); err != nil {
		return 0, err
	}
	if err := b.checkMarker(m); err != nil {
		return 0, err
	}

	return Genotype(b.code(s, m)), nil
}

// MarkerBytes returns the packed bytes of marker m. The slice aliases the
// mapping and must not be modified.
func (b *BED) MarkerBytes(m int) ([]byte, error) {
	if err := b.checkMarker(m); err != nil {
		return nil, err
	}

	start := m * b.bytesPerMarker
	return b.data[start : start+b.bytesPerMarker : start+b.bytesPerMarker], nil
}

// Planes splits marker m into its A1 and A2 bit-planes, one bit per sample.
func (b *BED) Planes(m int) (a1, a2 *bitset.BitSet, err error) {
	block, err := b.MarkerBytes(m)
	if err != nil {
		return nil, nil, err
	}

	a1 = bitset.New(uint(b.nSamples))
	a2 = bitset.New(uint(b.nSamples))

	for i, packed := range block {
		// Homozygous A1 is all zero bits and by far the most common byte.
		if packed == 0 {
			continue
		}

		for k := 0; k < 4; k++ {
			s := 4*i + k
			if s >= b.nSamples {
				break
			}

			code := packed >> (2 * uint(k))
			if code&0b01 != 0 {
				a1.Set(uint(s))
			}
			if code&0b10 != 0 {
				a2.Set(uint(s))
			}
		}
	}

	return a1, a2, nil
}

// Classes returns the hom1/het/hom2/missing masks for marker m.
func (b *BED) Classes(m int) (GenotypeClasses, error) {
	a1, a2, err := b.Planes(m)
	if err != nil {
		return GenotypeClasses{}, err
	}

	return ClassesFromPlanes(a1, a2), nil
}

// MarkerCalls decodes every sample's genotype at marker m.
func (b *BED) MarkerCalls(m int) ([]Genotype, error) {
	block, err := b.MarkerBytes(m)
	if err != nil {
		return nil, err
	}

	calls := make([]Genotype, b.nSamples)
	for s := range calls {
		calls[s] = Genotype((block[s/4] >> (2 * uint(s%4))) & 0b11)
	}

	return calls, nil
}
