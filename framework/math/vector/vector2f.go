package vector

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type Vector2f struct {
	X, Y float32
}

func NewVec2f(x, y float32) Vector2f {
	return Vector2f{x, y}
}

func (v Vector2f) Add(v1 Vector2f) Vector2f {
	return Vector2f{v.X + v1.X, v.Y + v1.Y}
}

func (v Vector2f) Sub(v1 Vector2f) Vector2f {
	return Vector2f{v.X - v1.X, v.Y - v1.Y}
}

func (v Vector2f) Scl(mag float32) Vector2f {
	return Vector2f{v.X * mag, v.Y * mag}
}

func (v Vector2f) Dot(v1 Vector2f) float32 {
	return v.AsMgl().Dot(v1.AsMgl())
}

// Cross returns the z component of the 3D cross product of v and v1.
func (v Vector2f) Cross(v1 Vector2f) float32 {
	return v.X*v1.Y - v.Y*v1.X
}

func (v Vector2f) Len() float32 {
	return v.AsMgl().Len()
}

func (v Vector2f) Dst(v1 Vector2f) float32 {
	return v.Sub(v1).Len()
}

func (v Vector2f) Lerp(v1 Vector2f, t float32) Vector2f {
	return Vector2f{v.X + (v1.X-v.X)*t, v.Y + (v1.Y-v.Y)*t}
}

func (v Vector2f) AsMgl() mgl32.Vec2 {
	return mgl32.Vec2{v.X, v.Y}
}

func (v Vector2f) String() string {
	return fmt.Sprintf("%.2f:%.2f", v.X, v.Y)
}
