// Package analysis resolves function extents in DOL images and drives
// disassembly, call tracing and control flow recovery over them.
package analysis

const (
	// MaxStringLength bounds C string recovery for annotations.
	MaxStringLength = 256

	// MinStringLength is the shortest run accepted as a string reference.
	MinStringLength = 2

	// DefaultMaxInstructions caps the heuristic scan for one function.
	DefaultMaxInstructions = 4096

	// DefaultMaxFunctions caps the number of functions a trace visits.
	DefaultMaxFunctions = 256

	instructionSize = 4
)
