package shape

// Tuning constants carried over from the behavior users already rely on.
// The exact values are deliberate even though the original rationale is
// undocumented; treat them as part of the visual contract.
const (
	// AspectRatio is the height:width ratio of a character cell. Horizontal
	// extents of circles and diamonds are scaled by it so curves look round
	// on a terminal.
	AspectRatio = 2

	// StepTieMargin is the overlap-count margin inside which a step line's
	// two candidate orientations are considered equivalent and the caller's
	// orientation bias wins.
	StepTieMargin = 2

	// SwitchAspectNum and SwitchAspectDen encode the 1.5 bounding-box
	// aspect ratio beyond which a switch line is forced to put its middle
	// segment along the shorter axis.
	SwitchAspectNum = 3
	SwitchAspectDen = 2
)
