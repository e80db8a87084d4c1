package idgen

import "time"

const datetimeLayout = "2006-01-02 15:04:05.000"

// Components is a decoded ID.
type Components struct {
	ID              ID    `json:"id"`
	Timestamp       int64 `json:"timestamp"`        // milliseconds since the Unix epoch
	TimestampOffset int64 `json:"timestamp_offset"` // milliseconds since the custom epoch
	NodeID          int64 `json:"node_id"`
	Sequence        int64 `json:"sequence"`
}

// Time returns the UTC time the ID was issued, at millisecond precision.
func (c Components) Time() time.Time {
	return time.UnixMilli(c.Timestamp).UTC()
}

// Datetime renders Time as "YYYY-MM-DD hh:mm:ss.mmm".
func (c Components) Datetime() string {
	return c.Time().Format(datetimeLayout)
}

// Parse decomposes id using this generator's layout and epoch. Every bit pattern decodes.
func (s *Snowflake) Parse(id ID) Components {
	offset, nodeID, sequence := s.layout.decompose(id)
	return Components{
		ID:              id,
		Timestamp:       offset + s.epoch,
		TimestampOffset: offset,
		NodeID:          nodeID,
		Sequence:        sequence,
	}
}
