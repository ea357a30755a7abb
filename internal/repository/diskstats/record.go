package diskstats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// recordFields is the number of leading fields decoded from a line.
// Newer kernels append discard and flush statistics, which are ignored.
const recordFields = 14

// ErrMalformedRecord is returned when a line cannot be decoded.
var ErrMalformedRecord = errors.New("malformed diskstats record")

// Record is the decoded first line of the statistics source.
type Record struct {
	Major  uint32
	Minor  uint32
	Device string

	ReadsCompleted uint64
	ReadsMerged    uint64
	SectorsRead    uint64
	ReadTimeMs     uint64

	WritesCompleted uint64
	WritesMerged    uint64
	SectorsWritten  uint64
	WriteTimeMs     uint64

	// IOsInProgress is the only field that goes back to zero; the rest are cumulative.
	IOsInProgress    uint64
	IOTimeMs         uint64
	WeightedIOTimeMs uint64
}

// ParseRecord decodes a whitespace-separated diskstats line by field position.
func ParseRecord(line string) (*Record, error) {
	fields := strings.Fields(line)
	if len(fields) < recordFields {
		return nil, fmt.Errorf("%w: want at least %d fields, got %d", ErrMalformedRecord, recordFields, len(fields))
	}

	major, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: major: %w", ErrMalformedRecord, err)
	}

	minor, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: minor: %w", ErrMalformedRecord, err)
	}

	var counters [recordFields - 3]uint64

	for i := range counters {
		counters[i], err = strconv.ParseUint(fields[i+3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: field %d: %w", ErrMalformedRecord, i+4, err)
		}
	}

	return &Record{
		Major:            uint32(major),
		Minor:            uint32(minor),
		Device:           fields[2],
		ReadsCompleted:   counters[0],
		ReadsMerged:      counters[1],
		SectorsRead:      counters[2],
		ReadTimeMs:       counters[3],
		WritesCompleted:  counters[4],
		WritesMerged:     counters[5],
		SectorsWritten:   counters[6],
		WriteTimeMs:      counters[7],
		IOsInProgress:    counters[8],
		IOTimeMs:         counters[9],
		WeightedIOTimeMs: counters[10],
	}, nil
}
