package models

// Position is the axis-aligned bounding box of a detected region, in pixel
// coordinates with (X, Y) at the top-left corner.
type Position struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Tooth pairs a sequential label with the region it was assigned to.
// Numbers are positional ("Tooth 1" is the leftmost region), not FDI or
// Universal notation.
type Tooth struct {
	Number   string   `json:"number"`
	Position Position `json:"position"`
}

// Annotations is the structured descriptor produced by one pipeline
// invocation. Teeth are listed in the order the detector discovered them.
type Annotations struct {
	TeethCount int     `json:"teeth_count"`
	Teeth      []Tooth `json:"teeth"`
}
