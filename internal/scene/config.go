package scene

// Population defaults.
const (
	DefaultShapeCount = 20
	BoundsHalfWidth   = 5.0
	MinShapeSize      = 0.3
	MaxShapeSize      = 0.8
	SpeedRange        = 0.05 // velocity per axis in [-SpeedRange/2, SpeedRange/2]
	RotationGain      = 0.02 // radians per frame per unit of normalized bass
)

// Camera defaults.
const (
	CameraFOV  = 75.0 // vertical, degrees
	CameraNear = 0.1
	CameraFar  = 1000.0
	CameraZ    = 10.0
)

// Mesh tessellation for spheres.
const (
	SphereWidthSegments  = 16
	SphereHeightSegments = 16
)
