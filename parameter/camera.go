package parameter

// Camera used for aim projection and terminal rendering
const (
	// CameraZ is the camera depth, looking down -Z
	CameraZ = 10.0

	// CameraFOV is the vertical field of view in degrees
	CameraFOV = 60.0

	// AimPlaneZ is the depth at which the pointer ray picks the aim target
	AimPlaneZ = -50.0

	// CellAspect is the height/width ratio of a terminal cell
	CellAspect = 2.0
)

// ViewAspect is the default viewport width/height used for aim projection
const ViewAspect = 16.0 / 9.0
