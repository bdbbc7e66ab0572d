// Package viz renders a running n-body session in the terminal.
//
// The package is a pure consumer of simulator frames built on Bubble Tea:
//
//   - [Model]: the live viewer, ticking the simulator once per frame
//   - [Canvas]: braille pixel canvas with per-body colouring
//   - [Camera]: perspective projection of 3D positions onto the canvas
//   - [Recorder]: GIF capture of the canvas
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	N     - Add a random body
//	R     - Reset to the configured bodies
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
package viz
