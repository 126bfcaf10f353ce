package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sensor_station/internal/models"
	"sensor_station/internal/service"
)

func TestTelemetryEndpoints_PublicReadout(t *testing.T) {
	mon := &mockMonitoring{reading: models.SensorReading{Temperature: 23.4, Humidity: 61.2, Timestamp: 1700000000}, ok: true}
	net := &mockNetwork{state: "link_up", link: models.LinkInfo{IP: "192.168.4.1", SSID: "SENSOR-STATION", Channel: 1, Open: true}}
	s := &service.Service{
		Monitoring: mon,
		Network:    net,
	}
	r := newTestRouter(s)

	// GET /api/v1/telemetry is public: no Authorization header needed
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/telemetry", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("telemetry status=%d, body=%s", w.Code, w.Body.String())
	}
	var reading models.SensorReading
	if err := json.Unmarshal(w.Body.Bytes(), &reading); err != nil {
		t.Fatalf("unmarshal reading: %v", err)
	}
	if reading.Temperature != 23.4 || reading.Humidity != 61.2 || reading.Timestamp != 1700000000 {
		t.Fatalf("unexpected reading: %+v", reading)
	}

	// GET /api/v1/network → state string plus link info
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/network", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("network status=%d, body=%s", w.Code, w.Body.String())
	}
	var netResp struct {
		State string          `json:"state"`
		Link  models.LinkInfo `json:"link"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &netResp); err != nil {
		t.Fatalf("unmarshal network: %v", err)
	}
	if netResp.State != "link_up" || netResp.Link.IP != "192.168.4.1" || !netResp.Link.Open {
		t.Fatalf("unexpected network response: %+v", netResp)
	}

	// GET /health → {"status":"ok"}
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
	var hm map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &hm)
	if hm["status"] != statusOK {
		t.Fatalf("health body: %s", w.Body.String())
	}

	// GET /favicon.ico → empty 200
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/favicon.ico", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.Len() != 0 {
		t.Fatalf("favicon status=%d, body len=%d", w.Code, w.Body.Len())
	}
}

func TestTelemetryEndpoint_ServesFallbackWhileDegraded(t *testing.T) {
	// The handler never exposes degradation as an error; the fallback record
	// comes back as a normal 200.
	mon := &mockMonitoring{reading: models.SensorReading{Temperature: 25, Humidity: 60, Timestamp: 1700000050}, ok: false}
	s := &service.Service{Monitoring: mon}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/telemetry", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("degraded telemetry status=%d, body=%s", w.Code, w.Body.String())
	}
	var reading models.SensorReading
	_ = json.Unmarshal(w.Body.Bytes(), &reading)
	if reading.Temperature != 25 || reading.Humidity != 60 {
		t.Fatalf("unexpected fallback reading: %+v", reading)
	}
}

func TestIndexPage_ServedAtRootAndAlias(t *testing.T) {
	s := &service.Service{}
	r := newTestRouter(s)

	for _, path := range []string{"/", "/index.html"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Fatalf("%s content type: %s", path, ct)
		}
		if !strings.Contains(w.Body.String(), "/api/v1/telemetry") {
			t.Fatalf("%s page does not poll the telemetry endpoint", path)
		}
	}
}
