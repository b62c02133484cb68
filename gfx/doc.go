// Package gfx is a small, predictable software 3D engine for the scene demo.
//
// It covers what the demo needs and nothing more: meshes built from a few
// parametric geometries, basic (unlit) and standard (lit) materials with an optional
// texture map, point and ambient lights, a perspective camera with orbit controls,
// and a textured or flat background.
//
// Pipeline (fixed):
//
//	Scene → Model/View/Projection → Near-plane clipping → Rasterization → Target.
//
// The renderer draws into a caller-provided Target and reuses its scratch buffers
// between frames. Vector and matrix math is mathgl's mgl32 (column-major, OpenGL
// conventions); rotations are Euler angles in XYZ order.
package gfx
