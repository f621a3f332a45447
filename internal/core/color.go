package core

// Color is a semantic colour for a screen cell.
// The platform layer maps each value to a terminal colour.
type Color uint8

// Palette used by the games. ColorDefault leaves the terminal colour alone.
const (
	ColorDefault Color = iota
	ColorSky
	ColorFloor
	ColorBall
	ColorFace
	ColorSlowEnemy
	ColorFastEnemy
	ColorStem
	ColorPopup
	ColorChainPopup
	ColorText
	ColorDim
)
