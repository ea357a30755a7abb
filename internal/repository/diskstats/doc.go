// Package diskstats reads the block device statistics source.
//
// Only the first line is used: it summarizes the first disk. The line is
// decoded by position into a fixed-arity Record; field names follow
// Documentation/admin-guide/iostats.rst.
package diskstats
