// Package integrators advances a [physics.Registry] in fixed time steps.
//
// [SymplecticEuler] is the semi-implicit Euler scheme: it is first order but
// keeps orbits bounded far better than explicit Euler at the same step size.
package integrators
