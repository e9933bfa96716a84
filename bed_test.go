package plink

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeBED(t *testing.T, header []byte, data ...byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.bed")
	if err := os.WriteFile(path, append(append([]byte{}, header...), data...), 0644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestBEDDecodeTable(t *testing.T) {
	// Samples 0-3 in the first byte, lowest bits first; sample 4 alone in the
	// second byte with its padding left at zero.
	path := writeBED(t, bedMagic, 0b11_10_01_00, 0b00_00_00_10)

	b, err := OpenBED(path, 5, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	for s, expected := range []struct {
		a2, a1 bool
		call   Genotype
	}{
		{false, false, HomozygousA1},
		{false, true, Missing},
		{true, false, Heterozygous},
		{true, true, HomozygousA2},
		{true, false, Heterozygous},
	} {
		a2, a1, err := b.Genotype(s, 0)
		if err != nil {
			t.Fatal(err)
		}
		if a2 != expected.a2 || a1 != expected.a1 {
			t.Errorf("Sample %d: got (%v, %v), expected (%v, %v)", s, a2, a1, expected.a2, expected.a1)
		}

		call, err := b.Call(s, 0)
		if err != nil {
			t.Fatal(err)
		}
		if call != expected.call {
			t.Errorf("Sample %d: got %s, expected %s", s, call, expected.call)
		}
	}
}

func TestBEDMarkerOffsets(t *testing.T) {
	// 6 samples need 2 bytes per marker. Marker 1 is all heterozygous.
	path := writeBED(t, bedMagic,
		0x00, 0x00,
		0b10_10_10_10, 0b00_00_10_10,
		0xff, 0x0f,
	)

	b, err := OpenBED(path, 6, 3)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	if b.BytesPerMarker() != 2 {
		t.Fatalf("BytesPerMarker: got %d, expected 2", b.BytesPerMarker())
	}

	for m, expected := range []Genotype{HomozygousA1, Heterozygous, HomozygousA2} {
		calls, err := b.MarkerCalls(m)
		if err != nil {
			t.Fatal(err)
		}
		for s, call := range calls {
			if call != expected {
				t.Errorf("Marker %d sample %d: got %s, expected %s", m, s, call, expected)
			}
		}
	}

	raw, err := b.MarkerBytes(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 2 || raw[0] != 0xff || raw[1] != 0x0f {
		t.Errorf("MarkerBytes(2): got % x", raw)
	}
}

func TestBEDRejectsHeaders(t *testing.T) {
	for name, header := range map[string][]byte{
		"sample-major": {0x6c, 0x1b, 0x00},
		"bad-magic":    {0x6c, 0x1c, 0x01},
		"truncated":    {0x6c, 0x1b},
		"empty":        {},
	} {
		path := writeBED(t, header)

		_, err := OpenBED(path, 0, 0)
		var target *UnsupportedFormatError
		if !errors.As(err, &target) {
			t.Errorf("%s: expected UnsupportedFormatError, got %v", name, err)
			continue
		}
		if !bytes.Equal(target.Magic, header) {
			t.Errorf("%s: got magic % x, expected % x", name, target.Magic, header)
		}
	}
}

func TestBEDTooSmall(t *testing.T) {
	path := writeBED(t, bedMagic, 0x00, 0x00, 0x00)

	_, err := OpenBED(path, 5, 2)
	var target *DimensionMismatchError
	if !errors.As(err, &target) {
		t.Fatalf("Expected DimensionMismatchError, got %v", err)
	}
	if target.Expected != 4 || target.Actual != 3 {
		t.Errorf("Got expected=%d actual=%d", target.Expected, target.Actual)
	}
}

func TestBEDTrailingBytes(t *testing.T) {
	path := writeBED(t, bedMagic, 0x02, 0xaa, 0xbb)

	b, err := OpenBED(path, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	if call, _ := b.Call(0, 0); call != Heterozygous {
		t.Errorf("Got %s", call)
	}
}

func TestBEDIndexError(t *testing.T) {
	path := writeBED(t, bedMagic, 0x00)

	b, err := OpenBED(path, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	for _, idx := range [][2]int{{-1, 0}, {3, 0}, {0, 1}, {0, -1}} {
		_, _, err := b.Genotype(idx[0], idx[1])
		var target *IndexError
		if !errors.As(err, &target) {
			t.Errorf("%v: expected IndexError, got %v", idx, err)
		}
	}

	if _, _, err := b.Planes(1); err == nil {
		t.Error("Planes(1) should fail")
	}

	// The matrix is still usable after a failed lookup.
	if _, _, err := b.Genotype(2, 0); err != nil {
		t.Error(err)
	}
}

func TestClassesPartitionSamples(t *testing.T) {
	// 7 samples; the padding in the final byte is set to make sure it never
	// leaks into the planes.
	path := writeBED(t, bedMagic, 0b01_11_10_00, 0b11_10_01_11)

	b, err := OpenBED(path, 7, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	a1, a2, err := b.Planes(0)
	if err != nil {
		t.Fatal(err)
	}
	if a1.Len() != 7 || a2.Len() != 7 {
		t.Fatalf("Plane lengths: %d, %d", a1.Len(), a2.Len())
	}

	classes := ClassesFromPlanes(a1, a2)
	counts := classes.Counts()
	if counts.Hom1+counts.Het+counts.Hom2+counts.Missing != 7 {
		t.Fatalf("Counts do not partition 7 samples: %+v", counts)
	}

	expected := GenotypeCounts{Hom1: 1, Het: 2, Hom2: 2, Missing: 2}
	if counts != expected {
		t.Errorf("Got %+v, expected %+v", counts, expected)
	}

	for s := 0; s < 7; s++ {
		call, err := b.Call(s, 0)
		if err != nil {
			t.Fatal(err)
		}

		if a1.Test(uint(s)) != call.A1() || a2.Test(uint(s)) != call.A2() {
			t.Errorf("Sample %d: planes disagree with %s", s, call)
		}

		sets := map[Genotype]bool{
			HomozygousA1: classes.Hom1.Test(uint(s)),
			Heterozygous: classes.Het.Test(uint(s)),
			HomozygousA2: classes.Hom2.Test(uint(s)),
			Missing:      classes.Missing.Test(uint(s)),
		}
		for g, set := range sets {
			if set != (g == call) {
				t.Errorf("Sample %d (%s): class %s membership is %v", s, call, g, set)
			}
		}
	}
}
