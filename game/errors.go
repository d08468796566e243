package game

import "fmt"

// AssetLoadError aborts Setup when a mesh cannot be loaded.
type AssetLoadError struct {
	Asset string
	Err   error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("failed to load asset %s: %v", e.Asset, e.Err)
}

func (e *AssetLoadError) Unwrap() error { return e.Err }

// FrameError reports a panic recovered while running one frame. The loop
// keeps going after it.
type FrameError struct {
	Frame uint64
	Cause interface{}
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Cause)
}

// Unwrap exposes the panic value when it was an error.
func (e *FrameError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}
