package ggmesh

import (
	"errors"

	"github.com/gogpu/ggmesh/internal/driver"
)

// Errors surfaced by draw operations. Shader and program failures are
// fatal to the single draw that hit them and are never retried
// internally: generated source is deterministic, so a retry without a
// code fix would fail identically. Degenerate geometry (NaN positions,
// zero-area or fully offscreen bounds) is not an error; those draws
// are silently skipped.
var (
	// ErrNoGPU indicates no usable GPU device could be acquired.
	ErrNoGPU = driver.ErrNoGPU

	// ErrShaderCompile indicates the shader compiler rejected
	// generated source; the wrapped error carries the diagnostic.
	ErrShaderCompile = driver.ErrShaderCompile

	// ErrProgramLink indicates compiled stages failed to link.
	ErrProgramLink = driver.ErrProgramLink

	// ErrMissingUniform indicates a uniform the draw logic requires
	// was not present in the linked program, signaling a mismatch
	// between shader generation and draw orchestration.
	ErrMissingUniform = errors.New("ggmesh: uniform not found in program")

	// ErrInvalidMesh indicates structurally malformed mesh data.
	ErrInvalidMesh = errors.New("ggmesh: malformed mesh")

	// ErrNilSurface indicates a nil destination pixmap.
	ErrNilSurface = errors.New("ggmesh: nil destination surface")

	// ErrGradientStops indicates a gradient with more stops than the
	// shader uniform block can carry.
	ErrGradientStops = errors.New("ggmesh: too many gradient stops")

	// ErrInvalidSize indicates non-positive render dimensions.
	ErrInvalidSize = errors.New("ggmesh: invalid render size")
)
