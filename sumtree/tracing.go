package sumtree

import "github.com/npillmayer/schuko/tracing"

// T returns the trace channel for the sumtree package.
func T() tracing.Trace {
	return tracing.Select("sumtree")
}
