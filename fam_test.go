package plink

import (
	"errors"
	"testing"
)

func TestReadSamples(t *testing.T) {
	path := writeText(t, "test.fam", "FAM1 IND1 0 0 1 -9\n"+
		"FAM1\tIND2\tIND1\tIND3\t2\t2\n"+
		"FAM2 IND3 0 0 0 1\n")

	samples, err := ReadSamples(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(samples) != 3 {
		t.Fatalf("Got %d samples", len(samples))
	}

	expected := Sample{FamilyID: "FAM1", IndividualID: "IND2", FatherID: "IND1", MotherID: "IND3", Sex: SexFemale, Phenotype: 2}
	if samples[1] != expected {
		t.Errorf("Got %+v, expected %+v", samples[1], expected)
	}

	if samples[0].Phenotype != -9 || samples[0].Sex != SexMale {
		t.Errorf("Got %+v", samples[0])
	}
}

func TestReadSamplesLookingCompressed(t *testing.T) {
	// Family IDs that start like a bzip2 or zip header are still plain text.
	for _, fid := range []string{"BZh1", "BZh9x", "PK"} {
		path := writeText(t, "test.fam", fid+" IND1 0 0 1 1\n")

		samples, err := ReadSamples(path)
		if err != nil {
			t.Fatalf("%s: %v", fid, err)
		}
		if len(samples) != 1 || samples[0].FamilyID != fid {
			t.Errorf("%s: got %+v", fid, samples)
		}
	}
}

func TestReadSamplesFormatErrors(t *testing.T) {
	for name, contents := range map[string]string{
		"columns":   "FAM1 IND1 0 0 1\n",
		"sex":       "FAM1 IND1 0 0 M 1\n",
		"phenotype": "FAM1 IND1 0 0 1 1.5\n",
		"overflow":  "FAM1 IND1 0 0 1 300\n",
	} {
		path := writeText(t, "test.fam", contents)

		_, err := ReadSamples(path)
		var target *FormatError
		if !errors.As(err, &target) {
			t.Errorf("%s: expected FormatError, got %v", name, err)
		}
	}
}

func TestParseSample(t *testing.T) {
	s, err := ParseSample([]string{"F", "I", "0", "0", "1", "2", "A", "G"})
	if err != nil {
		t.Fatal(err)
	}
	if s.FamilyID != "F" || s.IndividualID != "I" || s.Phenotype != 2 {
		t.Errorf("Got %+v", s)
	}

	if _, err := ParseSample([]string{"F"}); err == nil {
		t.Error("Expected an error for a short line")
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := ReadSamples("/nonexistent/path/x"); err == nil {
		t.Error("Expected an error")
	}
}
