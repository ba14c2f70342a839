package gamemath

import "math"

// Vector is a 2D vector.
type Vector struct {
	X, Y float64
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * s.
func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// Length returns the Euclidean norm.
func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Knockback is the launch produced by a hit.
type Knockback struct {
	Distance float64
	Angle    float64 // radians
	Velocity Vector  // (Distance·cos Angle, Distance·sin Angle)
}

// angleBias is the distance contributed per degree of launch angle.
const angleBias = 0.1

// ComputeKnockback returns the launch for a hit of the given power against
// a defender of the given weight. Heavier defenders fly less; steeper angles
// add a little distance. Negative power and weight are treated as zero.
//
// The result depends only on its inputs.
func ComputeKnockback(power, weight, angleDegrees float64) Knockback {
	if power < 0 {
		power = 0
	}
	if weight < 0 {
		weight = 0
	}
	weightMultiplier := 1 / (1 + weight/100)
	distance := power*weightMultiplier + angleDegrees*angleBias
	angle := angleDegrees * math.Pi / 180

	return Knockback{
		Distance: distance,
		Angle:    angle,
		Velocity: Vector{
			X: distance * math.Cos(angle),
			Y: distance * math.Sin(angle),
		},
	}
}
