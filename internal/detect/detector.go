package detect

import "context"

// Detection is a single object reported by the detector. Confidence and Box
// are carried through for logging; the ledger only consumes the label.
type Detection struct {
	Label      string     `json:"label"`
	Confidence float64    `json:"confidence"`
	Box        [4]float64 `json:"box"`
}

// Detector runs object detection over an image stored on disk.
type Detector interface {
	Detect(ctx context.Context, imagePath string) ([]Detection, error)
}

// Status describes the detector subsystem after the startup probe. It is
// resolved once and injected; handlers never touch a process-global model.
type Status struct {
	Available bool // the inference backend is configured and reachable
	Loaded    bool // the backend reported its model as loaded
}

// Ready reports whether uploads can be run through detection. Anything short
// of Ready is degraded mode: uploads are stored but not counted.
func (s Status) Ready() bool {
	return s.Available && s.Loaded
}
