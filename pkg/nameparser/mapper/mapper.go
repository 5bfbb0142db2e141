// Package mapper holds the classification passes of the name parser.
//
// A mapper receives a slot sequence and returns a sequence of the same
// length in which some still-unclassified tokens have been replaced by
// parts. Slots that an earlier mapper already claimed are never touched, so
// the order of a pipeline decides which pass wins a contested token.
package mapper

import "github.com/cognicore/nameparser/pkg/nameparser/part"

// Mapper is one classification pass.
type Mapper interface {
	Map(seq part.Sequence) part.Sequence
}

// Func adapts a plain function to the Mapper interface.
type Func func(seq part.Sequence) part.Sequence

// Map calls f.
func (f Func) Map(seq part.Sequence) part.Sequence { return f(seq) }

// Pipeline runs mappers in order; each one sees the output of the previous.
type Pipeline struct {
	mappers []Mapper
}

// NewPipeline creates a pipeline from an ordered list of mappers.
func NewPipeline(mappers ...Mapper) *Pipeline {
	return &Pipeline{mappers: mappers}
}

// Run passes seq through every mapper. The input is not modified.
func (p *Pipeline) Run(seq part.Sequence) part.Sequence {
	out := seq.Clone()
	for _, m := range p.mappers {
		out = m.Map(out)
	}
	return out
}

// Mappers returns the configured passes in order.
func (p *Pipeline) Mappers() []Mapper {
	return p.mappers
}
