// Package sim drives a gravitational session on behalf of a host.
//
// [Simulator] is loop-agnostic: a render loop calls [Simulator.Tick] once per
// frame, a batch command calls [Simulator.Run], and input handlers call
// [Simulator.AddBody] or [Simulator.AddRandomBody] in between. All of these
// take the simulator's lock, so the registry always has a single writer.
package sim
