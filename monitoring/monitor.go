// Package monitoring turns a running simulation into an HTTP server so the
// translation statistics can be inspected while the address stream is being
// processed.
package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"

	"github.com/sarchlab/vmsim/vm/mmu"
)

// Monitor exposes a simulation's translation statistics over HTTP.
type Monitor struct {
	mmu        *mmu.Comp
	portNumber int
	url        string
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor. Ports below 1000 are
// rejected and a random port is used instead.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterMMU registers the translator to be monitored.
func (m *Monitor) RegisterMMU(c *mmu.Comp) {
	m.mmu = c
}

// StartServer starts the monitoring server. It returns once the server is
// listening; serving happens in a background goroutine.
func (m *Monitor) StartServer() error {
	if m.mmu == nil {
		panic("no mmu registered with the monitor")
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/stats", m.listStats)
	r.HandleFunc("/api/config", m.listConfig)

	actualPort := ":0"
	if m.portNumber > 0 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return fmt.Errorf("monitor: %w", err)
	}

	port := listener.Addr().(*net.TCPAddr).Port
	m.url = fmt.Sprintf("http://localhost:%d/api/stats", port)

	fmt.Fprintf(os.Stderr,
		"Monitoring simulation with http://localhost:%d\n", port)

	go func() {
		err := http.Serve(listener, r)
		if err != nil {
			panic(err)
		}
	}()

	return nil
}

// OpenBrowser opens the statistics page in the default browser.
func (m *Monitor) OpenBrowser() {
	err := browser.OpenURL(m.url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open browser: %s\n", err)
	}
}

type statsResponse struct {
	Translations  uint64  `json:"translations"`
	TLBHits       uint64  `json:"tlb_hits"`
	TLBMisses     uint64  `json:"tlb_misses"`
	TLBHitRate    float64 `json:"tlb_hit_rate"`
	PageFaults    uint64  `json:"page_faults"`
	PageFaultRate float64 `json:"page_fault_rate"`
}

func (m *Monitor) listStats(w http.ResponseWriter, _ *http.Request) {
	stats := m.mmu.Stats()

	rsp := statsResponse{
		Translations:  stats.Translations,
		TLBHits:       stats.TLBHits,
		TLBMisses:     stats.TLBMisses,
		TLBHitRate:    stats.TLBHitRate(),
		PageFaults:    stats.PageFaults,
		PageFaultRate: stats.PageFaultRate(),
	}

	writeJSON(w, rsp)
}

type configResponse struct {
	NumFrames   int `json:"num_frames"`
	TLBCapacity int `json:"tlb_capacity"`
}

func (m *Monitor) listConfig(w http.ResponseWriter, _ *http.Request) {
	rsp := configResponse{
		NumFrames:   m.mmu.NumFrames(),
		TLBCapacity: m.mmu.TLBCapacity(),
	}

	writeJSON(w, rsp)
}

func writeJSON(w http.ResponseWriter, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		panic(err)
	}

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(data)
	if err != nil {
		panic(err)
	}
}
