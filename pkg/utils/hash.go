package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
)

// FrameHash returns the xxhash of a frame.
func FrameHash(frame []uint8) uint64 {
	return xxhash.Sum64(frame)
}

// FrameHashString formats FrameHash as 16 hex digits, the format
// accepted by ParseFrameHash.
func FrameHashString(frame []uint8) string {
	return fmt.Sprintf("%016x", FrameHash(frame))
}

// ParseFrameHash parses a hash printed by FrameHashString, with or
// without a 0x prefix.
func ParseFrameHash(s string) (uint64, error) {
	h, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frame hash %q: %w", s, err)
	}
	return h, nil
}
