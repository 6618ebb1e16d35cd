package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"plastictrack/internal/domain"
)

// YOLOClient invokes an ultralytics sidecar over HTTP. The sidecar owns the
// model weights and the Python runtime; this client only ships image paths
// and decodes results, so no ledger lock is ever held across inference.
type YOLOClient struct {
	baseURL string
	client  *http.Client
	imgsz   int
	conf    float64
}

// NewYOLOClient builds a client for the sidecar at baseURL. An empty baseURL
// yields a client whose probe reports the detector as uninitialized.
func NewYOLOClient(baseURL string, timeout time.Duration, imgsz int, conf float64) *YOLOClient {
	return &YOLOClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		imgsz:   imgsz,
		conf:    conf,
	}
}

type detectRequest struct {
	Path          string  `json:"path"`
	ImageSize     int     `json:"imgsz"`
	MinConfidence float64 `json:"conf"`
}

type detectResponse struct {
	Detections []Detection `json:"detections"`
}

// Detect runs the sidecar's model over the stored image at imagePath.
func (c *YOLOClient) Detect(ctx context.Context, imagePath string) ([]Detection, error) {
	if c == nil || c.baseURL == "" {
		return nil, domain.ErrDetectorUnavailable
	}

	payload, err := json.Marshal(detectRequest{Path: imagePath, ImageSize: c.imgsz, MinConfidence: c.conf})
	if err != nil {
		return nil, fmt.Errorf("detect: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/detect", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("detect: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detect: call sidecar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("detect: sidecar returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("detect: decode response: %w", err)
	}
	return out.Detections, nil
}

type sidecarHealth struct {
	ModelLoaded          bool `json:"model_loaded"`
	UltralyticsAvailable bool `json:"ultralytics_available"`
}

// Probe checks the sidecar once at startup and maps the outcome onto the
// detector states: no base URL means uninitialized, an unreachable or failing
// sidecar means failed, otherwise the sidecar's own readiness is reported.
func (c *YOLOClient) Probe(ctx context.Context) Status {
	if c == nil || c.baseURL == "" {
		return Status{}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return Status{}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Status{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Status{Available: true}
	}
	var health sidecarHealth
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return Status{Available: true}
	}
	return Status{Available: health.UltralyticsAvailable, Loaded: health.ModelLoaded}
}
