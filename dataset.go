package plink

import (
	"cloud.google.com/go/storage"
	"github.com/bits-and-blooms/bitset"
)

type sampleKey struct {
	FamilyID     string
	IndividualID string
}

// Dataset is an opened PLINK binary fileset: the samples of the .fam, the
// markers of the .bim and the genotype matrix of the .bed. Sample and marker
// indices are 0-based and follow file order. Genotype access is read-only and
// safe from concurrent goroutines; Close must be called when done.
type Dataset struct {
	Path string // Base path, without extension

	samples []Sample
	markers []Marker
	bed     *BED

	// First occurrence of each identifier, in file order.
	sampleLookup map[sampleKey]int
	markerLookup map[string]int
}

// Open loads the fileset at path. path may be the base path or the name of
// any of the .bed, .bim or .fam members. The .fam and .bim may be compressed
// (chr1.fam.gz and so on); the .bed must not be.
func Open(path string) (*Dataset, error) {
	return OpenWithClient(path, nil)
}

// OpenWithClient is like Open, but gs:// paths are read with client. Remote
// .bed files are fetched into memory since they cannot be mapped.
func OpenWithClient(path string, client *storage.Client) (*Dataset, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	base := BasePath(path)

	samples, err := readSamples(locateText(base, ExtFAM, client), client)
	if err != nil {
		return nil, err
	}

	markers, err := readMarkers(locateText(base, ExtBIM, client), client)
	if err != nil {
		return nil, err
	}

	bed, err := openBED(base+ExtBED, len(samples), len(markers), client)
	if err != nil {
		return nil, err
	}

	d := &Dataset{
		Path:         base,
		samples:      samples,
		markers:      markers,
		bed:          bed,
		sampleLookup: make(map[sampleKey]int, len(samples)),
		markerLookup: make(map[string]int, len(markers)),
	}

	for i, s := range samples {
		key := sampleKey{FamilyID: s.FamilyID, IndividualID: s.IndividualID}
		if _, exists := d.sampleLookup[key]; !exists {
			d.sampleLookup[key] = i
		}
	}

	for i, m := range markers {
		if _, exists := d.markerLookup[m.ID]; !exists {
			d.markerLookup[m.ID] = i
		}
	}

	return d, nil
}

func (d *Dataset) Close() error {
	return d.bed.Close()
}

func (d *Dataset) SampleCount() int { return len(d.samples) }
func (d *Dataset) MarkerCount() int { return len(d.markers) }

// Samples returns a copy of the samples in .fam order.
func (d *Dataset) Samples() []Sample {
	out := make([]Sample, len(d.samples))
	copy(out, d.samples)
	return out
}

// Markers returns a copy of the markers in .bim order.
func (d *Dataset) Markers() []Marker {
	out := make([]Marker, len(d.markers))
	copy(out, d.markers)
	return out
}

func (d *Dataset) Sample(i int) (Sample, error) {
	if err := d.bed.checkSample(i); err != nil {
		return Sample{}, err
	}
	return d.samples[i], nil
}

func (d *Dataset) Marker(i int) (Marker, error) {
	if err := d.bed.checkMarker(i); err != nil {
		return Marker{}, err
	}
	return d.markers[i], nil
}

// SampleIndex returns the index of the first sample with the given family
// and individual IDs.
func (d *Dataset) SampleIndex(familyID, individualID string) (int, error) {
	if i, exists := d.sampleLookup[sampleKey{FamilyID: familyID, IndividualID: individualID}]; exists {
		return i, nil
	}

	return -1, &NotFoundError{Kind: "sample", ID: familyID + " " + individualID}
}

// MarkerIndex returns the index of the first marker with the given ID.
func (d *Dataset) MarkerIndex(id string) (int, error) {
	if i, exists := d.markerLookup[id]; exists {
		return i, nil
	}

	return -1, &NotFoundError{Kind: "marker", ID: id}
}

// Genotype returns the (A2, A1) bits for sample s at marker m.
func (d *Dataset) Genotype(s, m int) (a2, a1 bool, err error) {
	return d.bed.Genotype(s, m)
}

func (d *Dataset) Call(s, m int) (Genotype, error) {
	return d.bed.Call(s, m)
}

func (d *Dataset) MarkerCalls(m int) ([]Genotype, error) {
	return d.bed.MarkerCalls(m)
}

func (d *Dataset) Planes(m int) (a1, a2 *bitset.BitSet, err error) {
	return d.bed.Planes(m)
}

func (d *Dataset) Classes(m int) (GenotypeClasses, error) {
	return d.bed.Classes(m)
}

func (d *Dataset) MarkerBytes(m int) ([]byte, error) {
	return d.bed.MarkerBytes(m)
}
