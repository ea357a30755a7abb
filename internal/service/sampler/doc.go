// Package sampler implements diskled-sampler: it polls the diskstats source
// and writes the in-progress I/O count to its output, one line per tick.
package sampler
