package cards

// Basic land names.
const (
	Plains   = "Plains"
	Island   = "Island"
	Swamp    = "Swamp"
	Mountain = "Mountain"
	Forest   = "Forest"
	Wastes   = "Wastes"
)

// BasicLandNames lists every basic land name, including the colorless Wastes.
var BasicLandNames = []string{Plains, Island, Swamp, Mountain, Forest, Wastes}

// BasicLandName returns the basic land that produces the given color.
// Anything that is not W, U, B, R or G maps to Wastes.
func BasicLandName(color string) string {
	switch color {
	case ColorWhite:
		return Plains
	case ColorBlue:
		return Island
	case ColorBlack:
		return Swamp
	case ColorRed:
		return Mountain
	case ColorGreen:
		return Forest
	default:
		return Wastes
	}
}

// IsBasicLandName reports whether name is a basic land name.
func IsBasicLandName(name string) bool {
	for _, n := range BasicLandNames {
		if n == name {
			return true
		}
	}
	return false
}

// NewBasicLand builds the card record for the basic land of a color.
func NewBasicLand(color string) Card {
	name := BasicLandName(color)
	typeLine := "Basic Land — " + name
	if name == Wastes {
		typeLine = "Basic Land"
	}
	return Card{
		Name:     name,
		TypeLine: typeLine,
		Rarity:   RarityCommon,
	}
}
