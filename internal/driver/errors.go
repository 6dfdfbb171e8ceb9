package driver

import "errors"

var (
	// ErrNoGPU is returned when no usable GPU device can be acquired.
	ErrNoGPU = errors.New("driver: no GPU device available")

	// ErrShaderCompile is returned when the shader compiler rejects
	// generated source. The wrapped error carries the compiler
	// diagnostic. Source generation is deterministic, so a retry
	// without a code fix would fail identically.
	ErrShaderCompile = errors.New("driver: shader compilation failed")

	// ErrProgramLink is returned when compiled stages fail to link
	// into a pipeline.
	ErrProgramLink = errors.New("driver: program link failed")

	// ErrDeviceDestroyed is returned when a destroyed device is used.
	ErrDeviceDestroyed = errors.New("driver: device destroyed")
)
