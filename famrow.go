package plink

// Map columns in the FAM file to their positions
const (
	famFamilyID int = iota
	famIndividualID
	famFatherID
	famMotherID
	famSex
	famPhenotype
)

// Sex codes
const (
	SexUnknown uint8 = 0
	SexMale    uint8 = 1
	SexFemale  uint8 = 2
)

// Sample is one line of a .fam file. Parent IDs of "0" mean the parent is not
// in the dataset. A phenotype of 1 is a control, 2 a case, and 0 or -9 missing.
type Sample struct {
	FamilyID     string
	IndividualID string
	FatherID     string
	MotherID     string
	Sex          uint8
	Phenotype    int8
}
