package plink

import "github.com/bits-and-blooms/bitset"

// Genotype is a decoded .bed call. Its value is the raw 2-bit code, with the
// A1 bit in the low position and the A2 bit in the high position.
type Genotype byte

const (
	HomozygousA1 Genotype = 0b00
	Missing      Genotype = 0b01
	Heterozygous Genotype = 0b10
	HomozygousA2 Genotype = 0b11
)

// GenotypeFromBits assembles a Genotype from its two bits.
func GenotypeFromBits(a2, a1 bool) Genotype {
	var g Genotype
	if a1 {
		g |= 0b01
	}
	if a2 {
		g |= 0b10
	}
	return g
}

func (g Genotype) A1() bool { return g&0b01 != 0 }
func (g Genotype) A2() bool { return g&0b10 != 0 }

func (g Genotype) String() string {
	switch g {
	case HomozygousA1:
		return "HOMOZYGOUS_A1"
	case Missing:
		return "MISSING"
	case Heterozygous:
		return "HETEROZYGOUS"
	case HomozygousA2:
		return "HOMOZYGOUS_A2"
	}
	return "INVALID"
}

// GenotypeClasses holds one bit per sample for each of the four calls at a
// single marker. Exactly one of the four sets has a given sample's bit set.
type GenotypeClasses struct {
	Hom1    *bitset.BitSet
	Het     *bitset.BitSet
	Hom2    *bitset.BitSet
	Missing *bitset.BitSet
}

// ClassesFromPlanes derives the four call masks from the A1 and A2
// bit-planes of one marker. Both planes must have the same length.
func ClassesFromPlanes(a1, a2 *bitset.BitSet) GenotypeClasses {
	return GenotypeClasses{
		Hom1:    a1.Union(a2).Complement(),
		Het:     a2.Difference(a1),
		Hom2:    a1.Intersection(a2),
		Missing: a1.Difference(a2),
	}
}

type GenotypeCounts struct {
	Hom1    int
	Het     int
	Hom2    int
	Missing int
}

// Called is the number of non-missing calls.
func (c GenotypeCounts) Called() int {
	return c.Hom1 + c.Het + c.Hom2
}

func (c GenotypeClasses) Counts() GenotypeCounts {
	return GenotypeCounts{
		Hom1:    int(c.Hom1.Count()),
		Het:     int(c.Het.Count()),
		Hom2:    int(c.Hom2.Count()),
		Missing: int(c.Missing.Count()),
	}
}
