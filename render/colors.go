package render

import "github.com/gdamore/tcell/v2"

// RGB color definitions for board layers
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbFloor      = tcell.NewRGBColor(60, 62, 80)    // Dim dot on passable cells
	RgbBorder     = tcell.NewRGBColor(90, 90, 110)   // Outer ring
	RgbObstacle   = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbStart      = tcell.NewRGBColor(50, 255, 50)   // Bright Green
	RgbGoal       = tcell.NewRGBColor(255, 80, 80)   // Normal Red
	RgbMarker     = tcell.NewRGBColor(255, 255, 0)   // Bright Yellow
	RgbCursor     = tcell.NewRGBColor(255, 165, 0)   // Orange

	// Status bar
	RgbStatusText  = tcell.NewRGBColor(0, 0, 0)       // Dark text for status
	RgbStatusBg    = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbStatusFail  = tcell.NewRGBColor(200, 50, 50)   // Red for failed search
	RgbStatusFound = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbRulesText   = tcell.NewRGBColor(180, 180, 180)
)
