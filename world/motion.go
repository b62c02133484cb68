package world

// Scroll-to-camera factors: camera = t * factor, with t the page top offset
// (zero or negative).
const (
	CameraZPerScroll  = -0.01
	CameraXYPerScroll = -0.0002
)

var (
	// MoonSpin is added to the moon on every scroll event.
	MoonSpin = Rotation{X: 0.05, Y: 0.075, Z: 0.05}
	// TorusSpin is added to the torus on every frame.
	TorusSpin = Rotation{X: 0.01, Y: 0.005, Z: 0.01}
)

// MoveCamera maps the distance scrolled from the top of the page to the camera
// position and spins the moon one step. The spin happens on every call, whatever
// the offset.
func MoveCamera(st *State, t float64) {
	st.Moon = st.Moon.Add(MoonSpin)

	st.Camera.Z = t * CameraZPerScroll
	st.Camera.X = t * CameraXYPerScroll
	st.Camera.Y = t * CameraXYPerScroll
}

// AdvanceFrame applies one frame of torus rotation.
func AdvanceFrame(st *State) {
	st.Torus = st.Torus.Add(TorusSpin)
}
