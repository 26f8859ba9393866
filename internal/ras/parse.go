package ras

import (
	"strings"

	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/hexutil"
)

// ErrorRecord is one parsed bus error report line: core, memory, PCIe and
// SoC errors share this layout. Wide records (ECC detail) append four
// 64-bit misc words.
type ErrorRecord struct {
	ErrType  uint8
	SubType  uint8
	Instance uint16
	Status   uint32
	Address  uint64
	Misc     [4]uint64
	Wide     bool
}

// Key is the occurrence table key for this record.
func (r ErrorRecord) Key() uint16 {
	return uint16(r.ErrType)<<8 | uint16(r.SubType)
}

// Socket extracts the socket index from the top two instance bits.
func (r ErrorRecord) Socket() uint16 {
	return (r.Instance & 0xc000) >> 14
}

// SubInstance extracts the low 14 instance bits identifying the resource
// within the socket.
func (r ErrorRecord) SubInstance() uint16 {
	return r.Instance & 0x3fff
}

// FirmwareRecord is one parsed SMpro/PMpro internal error report line.
type FirmwareRecord struct {
	SubType   uint8
	ImageCode uint8
	Dir       uint8
	Location  uint8
	ErrCode   uint16
	Data      uint32
}

// EventRecord is one parsed hardware event report line: the event kind
// and a 16-bit assertion bitmask over its sub-resources.
type EventRecord struct {
	Type uint8
	Data uint16
}

// ParseErrorLine splits a bus error report line into its fields. Lines
// with fewer than 5 tokens are dropped. Nine or more tokens mark a wide
// record carrying the misc words.
func ParseErrorLine(line string) (ErrorRecord, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 5 {
		return ErrorRecord{}, false
	}

	rec := ErrorRecord{
		ErrType:  hexutil.Parse8(tokens[0]),
		SubType:  hexutil.Parse8(tokens[1]),
		Instance: hexutil.Parse16(tokens[2]),
		Status:   hexutil.Parse32(tokens[3]),
		Address:  hexutil.Parse64(tokens[4]),
	}
	if len(tokens) >= 9 {
		rec.Wide = true
		for i := 0; i < 4; i++ {
			rec.Misc[i] = hexutil.Parse64(tokens[5+i])
		}
	}
	return rec, true
}

// ParseFirmwareLine splits an SMpro/PMpro internal error report line.
// Lines with fewer than 6 tokens are dropped.
func ParseFirmwareLine(line string) (FirmwareRecord, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 6 {
		return FirmwareRecord{}, false
	}
	return FirmwareRecord{
		SubType:   hexutil.Parse8(tokens[0]),
		ImageCode: hexutil.Parse8(tokens[1]),
		Dir:       hexutil.Parse8(tokens[2]),
		Location:  hexutil.Parse8(tokens[3]),
		ErrCode:   hexutil.Parse16(tokens[4]),
		Data:      hexutil.Parse32(tokens[5]),
	}, true
}

// ParseEventLine splits a hardware event report line. Lines with fewer
// than 2 tokens are dropped.
func ParseEventLine(line string) (EventRecord, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return EventRecord{}, false
	}
	return EventRecord{
		Type: hexutil.Parse8(tokens[0]),
		Data: hexutil.Parse16(tokens[1]),
	}, true
}
