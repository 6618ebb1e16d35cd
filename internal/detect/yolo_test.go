package detect

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"plastictrack/internal/domain"
)

func TestYOLOClientDetect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/detect" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req detectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Path != "/uploads/a@x.com/01-02-2025/img.jpg" {
			t.Errorf("unexpected path: %q", req.Path)
		}
		if req.ImageSize != 640 || req.MinConfidence != 0.25 {
			t.Errorf("unexpected invocation params: imgsz=%d conf=%v", req.ImageSize, req.MinConfidence)
		}
		json.NewEncoder(w).Encode(detectResponse{Detections: []Detection{
			{Label: "plastic bottle", Confidence: 0.91},
			{Label: "person", Confidence: 0.88},
		}})
	}))
	defer srv.Close()

	c := NewYOLOClient(srv.URL, 5*time.Second, 640, 0.25)
	got, err := c.Detect(context.Background(), "/uploads/a@x.com/01-02-2025/img.jpg")
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if len(got) != 2 || got[0].Label != "plastic bottle" || got[1].Label != "person" {
		t.Fatalf("unexpected detections: %#v", got)
	}
}

func TestYOLOClientDetectSidecarError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "inference blew up", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewYOLOClient(srv.URL, 5*time.Second, 640, 0.25)
	if _, err := c.Detect(context.Background(), "img.jpg"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestYOLOClientDetectUnconfigured(t *testing.T) {
	c := NewYOLOClient("", 5*time.Second, 640, 0.25)
	_, err := c.Detect(context.Background(), "img.jpg")
	if !errors.Is(err, domain.ErrDetectorUnavailable) {
		t.Fatalf("expected ErrDetectorUnavailable, got %v", err)
	}
}

func TestYOLOClientDetectDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(detectResponse{})
	}))
	defer srv.Close()

	c := NewYOLOClient(srv.URL, 5*time.Second, 640, 0.25)
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	_, err := c.Detect(ctx, "img.jpg")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestYOLOClientProbe(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		want    Status
	}{
		{
			name: "ready",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{
					"status": "ok", "model_loaded": true, "ultralytics_available": true,
				})
			},
			want: Status{Available: true, Loaded: true},
		},
		{
			name: "model missing",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{
					"status": "ok", "model_loaded": false, "ultralytics_available": true,
				})
			},
			want: Status{Available: true, Loaded: false},
		},
		{
			name: "sidecar failing",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			want: Status{Available: true, Loaded: false},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			c := NewYOLOClient(srv.URL, 5*time.Second, 640, 0.25)
			if got := c.Probe(context.Background()); got != tc.want {
				t.Fatalf("Probe = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestYOLOClientProbeUnconfigured(t *testing.T) {
	c := NewYOLOClient("", 5*time.Second, 640, 0.25)
	if got := c.Probe(context.Background()); got.Ready() || got.Available {
		t.Fatalf("Probe on unconfigured client = %+v, want uninitialized", got)
	}
}

func TestYOLOClientProbeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // deliberately down

	c := NewYOLOClient(srv.URL, time.Second, 640, 0.25)
	if got := c.Probe(context.Background()); got.Available || got.Loaded {
		t.Fatalf("Probe against closed server = %+v, want unavailable", got)
	}
}
