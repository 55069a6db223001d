// Package simulation drives the translator over an address stream and
// reports per-address results and end-of-run statistics.
package simulation

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/vmsim/datarecording"
	"github.com/sarchlab/vmsim/vm"
	"github.com/sarchlab/vmsim/vm/mmu"
)

// A Simulation owns everything needed for one run: the translator, the
// output writer, and, when tracing is enabled, the data recorder.
type Simulation struct {
	id       string
	mmu      *mmu.Comp
	out      io.Writer
	recorder datarecording.DataRecorder
}

// A translationRecord is one row of the trace database.
type translationRecord struct {
	Seq          uint64
	VirtualAddr  uint32
	PhysicalAddr uint32
	Value        int8
	TLBHit       bool
	PageFault    bool
}

// A summaryRecord holds the end-of-run statistics in the trace database.
type summaryRecord struct {
	RunID         string
	Translations  uint64
	TLBHits       uint64
	TLBHitRate    float64
	PageFaults    uint64
	PageFaultRate float64
}

// ID returns the run's unique ID.
func (s *Simulation) ID() string {
	return s.id
}

// MMU returns the translator driven by the simulation.
func (s *Simulation) MMU() *mmu.Comp {
	return s.mmu
}

// Run processes the address stream to exhaustion, strictly in order. Each
// line must hold one decimal address in [0, 65535]. Any read, parse, or
// backing-store failure terminates the run; no summary is emitted after a
// failure.
func (s *Simulation) Run(input io.Reader) error {
	scanner := bufio.NewScanner(input)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		addr, err := parseAddress(line)
		if err != nil {
			return err
		}

		trans, err := s.mmu.Translate(addr)
		if err != nil {
			return err
		}

		s.report(trans)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading addresses: %w", err)
	}

	s.reportSummary()

	return nil
}

// Terminate releases the simulation's resources. It must be called once the
// run is over.
func (s *Simulation) Terminate() {
	if s.recorder != nil {
		s.recorder.Close()
	}
}

func parseAddress(line string) (vm.VAddr, error) {
	value, err := strconv.ParseUint(line, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", line, err)
	}

	if value > vm.MaxAddress {
		return 0, fmt.Errorf("address %d is outside the 16-bit range", value)
	}

	return vm.VAddr(value), nil
}

func (s *Simulation) report(trans mmu.Translation) {
	fmt.Fprintf(s.out, "Virtual address: %d Physical address: %d Value: %d\n",
		trans.VAddr, trans.PAddr, trans.Value)

	if s.recorder == nil {
		return
	}

	stats := s.mmu.Stats()
	s.recorder.InsertData("translations", translationRecord{
		Seq:          stats.Translations,
		VirtualAddr:  uint32(trans.VAddr),
		PhysicalAddr: trans.PAddr,
		Value:        trans.Value,
		TLBHit:       trans.TLBHit,
		PageFault:    trans.PageFault,
	})
}

func (s *Simulation) reportSummary() {
	stats := s.mmu.Stats()

	fmt.Fprintf(s.out, "Number of Translated Addresses = %d\n",
		stats.Translations)
	fmt.Fprintf(s.out, "Page Faults = %d\n", stats.PageFaults)
	fmt.Fprintf(s.out, "Page Fault Rate = %v\n", stats.PageFaultRate())
	fmt.Fprintf(s.out, "TLB Hits = %d\n", stats.TLBHits)
	fmt.Fprintf(s.out, "TLB Hit Rate = %v\n", stats.TLBHitRate())

	if s.recorder != nil {
		s.recorder.InsertData("run_summary", summaryRecord{
			RunID:         s.id,
			Translations:  stats.Translations,
			TLBHits:       stats.TLBHits,
			TLBHitRate:    stats.TLBHitRate(),
			PageFaults:    stats.PageFaults,
			PageFaultRate: stats.PageFaultRate(),
		})
	}
}
