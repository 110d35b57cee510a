// Package balloon implements a 2D soft-body "water balloon": a disc of
// point masses connected by viscoelastic springs, integrated with
// semi-implicit Euler and resolved against a ground plane.
//
// A [State] is built once from [Params] and then advanced one frame at a
// time:
//
//	st, err := balloon.New(balloon.DefaultParams())
//	if err != nil { ... }
//	st.Step(dt)
//	for p := range st.Positions() { ... }
//
// Clicking inside the balloon (or hitting it with a fired bullet) ruptures
// the spring network, after which the particles fly apart ballistically.
// Rupture is one-way; see [State.HandleClick].
//
// # Stability
//
// The integrator is stable only while stiffness, damping and the timestep
// stay in a jointly stable regime (roughly sqrt(k/m)*dt < 1). Step clamps
// dt to Params.MaxDt to survive frame hitches, nothing more.
package balloon
