package gfx

// Scene is a collection of objects and lights to render.
type Scene struct {
	Background    Color
	BackgroundMap *Texture

	Ambient AmbientLight
	Lights  []PointLight

	objects []*Object
}

// NewScene returns an empty scene with a black background and no lights.
func NewScene() *Scene {
	return &Scene{Background: Black}
}

// Add appends objects in draw order. Nil objects are ignored.
func (s *Scene) Add(objs ...*Object) {
	for _, o := range objs {
		if o != nil {
			s.objects = append(s.objects, o)
		}
	}
}

// Remove drops o from the scene; it reports whether o was present.
func (s *Scene) Remove(o *Object) bool {
	for i, cur := range s.objects {
		if cur == o {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return true
		}
	}
	return false
}

// AddLight appends a point light.
func (s *Scene) AddLight(l PointLight) {
	s.Lights = append(s.Lights, l)
}

// Objects returns the scene's objects in draw order. The slice must not be modified.
func (s *Scene) Objects() []*Object { return s.objects }

// Find returns the first object with the given name, or nil.
func (s *Scene) Find(name string) *Object {
	for _, o := range s.objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// SetVisible toggles every object whose name is in names.
func (s *Scene) SetVisible(visible bool, names ...string) {
	for _, o := range s.objects {
		for _, n := range names {
			if o.Name == n {
				o.Visible = visible
			}
		}
	}
}
