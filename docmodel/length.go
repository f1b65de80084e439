package docmodel

import "math"

// Length is an absolute length in English Metric Units (EMU), the unit
// used by OOXML for page geometry and drawing sizes.
type Length int64

// EMU conversion factors.
const (
	EMUsPerInch Length = 914400
	EMUsPerCm   Length = 360000
	EMUsPerMm   Length = 36000
)

// Default page geometry used when a section has no usable values.
const (
	// A4PageWidth is 210 mm.
	A4PageWidth Length = 210 * EMUsPerMm
	// A4PageHeight is 297 mm.
	A4PageHeight Length = 297 * EMUsPerMm
	// DefaultMargin is 1 cm, applied to all four sides.
	DefaultMargin Length = EMUsPerCm
)

// Cm returns a Length of v centimeters.
func Cm(v float64) Length {
	return Length(math.Round(v * float64(EMUsPerCm)))
}

// Mm returns a Length of v millimeters.
func Mm(v float64) Length {
	return Length(math.Round(v * float64(EMUsPerMm)))
}

// Inch returns a Length of v inches.
func Inch(v float64) Length {
	return Length(math.Round(v * float64(EMUsPerInch)))
}

// Centimeters returns the length in centimeters.
func (l Length) Centimeters() float64 {
	return float64(l) / float64(EMUsPerCm)
}
