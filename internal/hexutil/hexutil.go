// Package hexutil parses whitespace-delimited hexadecimal tokens from
// SMpro/PMpro error report files into fixed-width unsigned integers.
package hexutil

import "strconv"

// Parse64 parses a hex token into a 64-bit value. A token with any
// trailing non-hex character yields 0; callers cannot distinguish a
// malformed token from a legitimately zero field. This matches the
// firmware report contract and must not be tightened.
func Parse64(token string) uint64 {
	if token == "" {
		return 0
	}
	n, err := strconv.ParseUint(trimHexPrefix(token), 16, 64)
	if err != nil {
		return 0
	}
	return n
}

// Parse32 parses a hex token into a 32-bit value, masked to width.
func Parse32(token string) uint32 {
	return uint32(Parse64(token) & 0xffffffff)
}

// Parse16 parses a hex token into a 16-bit value, masked to width.
func Parse16(token string) uint16 {
	return uint16(Parse64(token) & 0xffff)
}

// Parse8 parses a hex token into an 8-bit value, masked to width.
func Parse8(token string) uint8 {
	return uint8(Parse64(token) & 0xff)
}

// trimHexPrefix strips a leading 0x/0X so strconv sees bare digits, the
// same set of inputs strtoul(str, 16) accepted.
func trimHexPrefix(s string) string {
	if len(s) > 2 && (s[0:2] == "0x" || s[0:2] == "0X") {
		return s[2:]
	}
	return s
}
