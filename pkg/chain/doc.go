// Package chain generates toy polymer backbones as ordered sequences of
// labeled 3D points.
//
// # Overview
//
// A chain is grown one unit at a time. Each unit is placed at the current
// position, then the position advances by one unit step in the XY plane along
// the current heading and by exactly one unit along Z. After every step the
// heading turns by the bond angle plus a uniform perturbation whose
// half-width is the rigidity:
//
//	heading += bondAngle + U(-rigidity, +rigidity)
//
// The heading update happens after the point is emitted, so the first point
// is always the origin and point i reflects the turns of steps 0..i-1.
//
// A rigidity of zero never touches the random source, so results are
// bit-for-bit reproducible. With a positive rigidity the default source is
// the unseeded global generator from math/rand/v2; pass [WithSeed] or
// [WithSource] for reproducible jitter.
//
// # Usage
//
//	c, err := chain.Generate(5, 120, 0)
//	if err != nil {
//	    return err
//	}
//	for _, p := range c {
//	    fmt.Println(p.Label, p.X, p.Y, p.Z)
//	}
//
// Order matters: consecutive points are bonded, see [Chain.Bonds].
package chain
