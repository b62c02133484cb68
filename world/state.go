// Package world holds the scroll-driven scene: its state, the two update rules
// that mutate it, the virtual page that turns wheel input into a scroll offset,
// and the Sim that ties them to the renderer.
package world

// CameraState is the camera position. Only MoveCamera writes it.
type CameraState struct {
	X, Y, Z float64
}

// Rotation is an accumulated Euler rotation in radians. It only ever grows; there
// is no reset and no wraparound.
type Rotation struct {
	X, Y, Z float64
}

func (r Rotation) Add(d Rotation) Rotation {
	return Rotation{X: r.X + d.X, Y: r.Y + d.Y, Z: r.Z + d.Z}
}

// State is everything the update rules read and write.
type State struct {
	Camera CameraState
	Torus  Rotation
	Moon   Rotation
}

// InitialCameraZ is where the camera sits before any scroll.
const InitialCameraZ = 30

func NewState() State {
	return State{Camera: CameraState{Z: InitialCameraZ}}
}
