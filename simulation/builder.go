package simulation

import (
	"io"
	"os"

	"github.com/rs/xid"

	"github.com/sarchlab/vmsim/datarecording"
	"github.com/sarchlab/vmsim/vm/mmu"
)

// A Builder can build simulations.
type Builder struct {
	mmu       *mmu.Comp
	out       io.Writer
	tracing   bool
	tracePath string
}

// MakeBuilder returns a new Builder with default configurations.
func MakeBuilder() Builder {
	return Builder{
		out: os.Stdout,
	}
}

// WithMMU sets the translator the simulation drives.
func (b Builder) WithMMU(c *mmu.Comp) Builder {
	b.mmu = c
	return b
}

// WithOutput sets the writer that receives per-address results and the
// summary.
func (b Builder) WithOutput(out io.Writer) Builder {
	b.out = out
	return b
}

// WithTracing enables recording every translation into a SQLite database at
// path. An empty path derives the database name from the run ID.
func (b Builder) WithTracing(path string) Builder {
	b.tracing = true
	b.tracePath = path
	return b
}

// Build builds a new Simulation.
func (b Builder) Build() *Simulation {
	if b.mmu == nil {
		panic("simulation requires an mmu")
	}

	s := &Simulation{
		id:  xid.New().String(),
		mmu: b.mmu,
		out: b.out,
	}

	if b.tracing {
		path := b.tracePath
		if path == "" {
			path = "vmsim_" + s.id
		}

		s.recorder = datarecording.New(path)
		s.recorder.CreateTable("translations", translationRecord{})
		s.recorder.CreateTable("run_summary", summaryRecord{})
	}

	return s
}
