// Package questid implements the compact 64-bit quest identifier used
// throughout the DefaultQuests dialect: two signed 32-bit halves packed
// into a single unsigned 64-bit value.
package questid

import "strconv"

// ID is a quest or questline identifier. Historically BetterQuesting
// addresses quests with two 32-bit integers (high/low); ID packs them into
// a single u64 so it can be used directly as a map key and compared with
// the natural unsigned ordering.
type ID uint64

// FromParts builds an ID from a signed high and low 32-bit half. high is
// sign-extended to 64 bits; low is zero-extended.
func FromParts(high, low int32) ID {
	hi := uint64(int64(high))
	lo := uint64(uint32(low))
	return ID((hi << 32) | lo)
}

// FromU64 wraps an already-combined 64-bit value.
func FromU64(v uint64) ID {
	return ID(v)
}

// AsU64 returns the combined value.
func (id ID) AsU64() uint64 {
	return uint64(id)
}

// HighPart returns the high half as a signed 32-bit integer.
func (id ID) HighPart() int32 {
	return int32(uint32(uint64(id) >> 32))
}

// LowPart returns the low half as a signed 32-bit integer.
func (id ID) LowPart() int32 {
	return int32(uint32(id))
}

// HighU32 returns the high half as an unsigned 32-bit integer.
func (id ID) HighU32() uint32 {
	return uint32(uint64(id) >> 32)
}

// LowU32 returns the low half as an unsigned 32-bit integer.
func (id ID) LowU32() uint32 {
	return uint32(id)
}

// String renders the id as its decimal u64 value, suitable for logging.
// Parse accepts this form back.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Parse accepts either a decimal u64 ("12345") or a "high:low" pair
// ("18:42") and returns the corresponding ID.
func Parse(s string) (ID, bool) {
	for i, r := range s {
		if r == ':' {
			high, err := strconv.ParseInt(s[:i], 10, 32)
			if err != nil {
				return 0, false
			}
			low, err := strconv.ParseInt(s[i+1:], 10, 32)
			if err != nil {
				return 0, false
			}
			return FromParts(int32(high), int32(low)), true
		}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return FromU64(v), true
}

// Less provides the total ordering by unsigned 64-bit value, convenient for
// sort.Slice callbacks.
func Less(a, b ID) bool {
	return uint64(a) < uint64(b)
}
