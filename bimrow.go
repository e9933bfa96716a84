package plink

// Map columns in the BIM file to their positions
const (
	bimChromosome int = iota
	bimVariantID
	bimCentimorgans
	bimPosition
	bimAllele1
	bimAllele2
)

type Marker struct {
	Chromosome   string
	ID           string // E.g., RSID
	Centimorgans float64
	Position     int64  // Base-pair coordinate
	Allele1      string // Can contain > 1 character
	Allele2      string // Can contain > 1 character
}
