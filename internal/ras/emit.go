package ras

import "fmt"

// Ampere IANA enterprise number, little-endian, prefixed to every OEM SEL
// payload.
const (
	ianaByte1 = 0x3A
	ianaByte2 = 0xCD
	ianaByte3 = 0x00
)

// selDataSize is the fixed OEM SEL payload length.
const selDataSize = 12

// selMessage is the text accompanying every OEM SEL submission.
const selMessage = "OEM RAS error:"

// Event data byte flags marking which event data bytes carry OEM content.
const (
	eventData1 = 0x80
	eventData3 = 0x20
)

// Component nibbles for VRD event payloads.
const (
	socComponent  = 0x00
	coreComponent = 0x01
	dimmComponent = 0x02
)

// NewSELPayload returns a 12-byte OEM payload with the unused bytes
// 0xFF-filled and the IANA prefix in place.
func NewSELPayload() []byte {
	data := make([]byte, selDataSize)
	for i := range data {
		data[i] = 0xFF
	}
	data[0] = ianaByte1
	data[1] = ianaByte2
	data[2] = ianaByte3
	return data
}

// errorPayload packs a bus error record: sensor identity, raw error
// type/subtype, and the 16-bit instance split across two bytes.
func errorPayload(src ErrorSource, rec ErrorRecord) []byte {
	data := NewSELPayload()
	data[3] = src.ErrType
	data[4] = src.ErrNum
	data[5] = rec.ErrType
	data[6] = rec.SubType
	data[7] = uint8(rec.Instance >> 8)
	data[8] = uint8(rec.Instance & 0xff)
	return data
}

// firmwarePayload packs an SMpro/PMpro internal error record. The
// direction bit shares byte 5 with the sensor-specific event type;
// socket, subtype and image are nibble-packed into byte 6; the error code
// and data word follow little-endian.
func firmwarePayload(src ErrorSource, rec FirmwareRecord) []byte {
	data := NewSELPayload()
	data[3] = src.ErrType
	data[4] = src.ErrNum
	data[5] = (rec.Dir << 7) | ierrSensorSpecific
	data[6] = (uint8(src.Socket)&0x1)<<7 | (rec.SubType&0x7)<<4 | (rec.ImageCode & 0xf)
	data[7] = rec.Location
	data[8] = uint8(rec.ErrCode & 0xff)
	data[9] = uint8(rec.ErrCode >> 8)
	data[10] = uint8(rec.Data & 0xff)
	data[11] = uint8((rec.Data >> 8) & 0xff)
	return data
}

// eventPayload packs one event transition. Byte 5 carries the assertion
// direction in bit 7 alongside the reading type; bytes 7 and 8 identify
// the sub-resource per event category.
func eventPayload(src EventSource, asserted bool, b7, b8 uint8) []byte {
	dir := uint8(dirAsserted)
	if !asserted {
		dir = dirDeasserted
	}
	data := NewSELPayload()
	data[3] = src.EventType
	data[4] = src.EventNum
	data[5] = (dir << 7) | src.ReadType
	data[6] = 0x1 | eventData1 | eventData3
	data[7] = b7
	data[8] = b8
	return data
}

// alertID renders a Redfish message registry ID.
func alertID(registry string, critical bool) string {
	sev := "Warning"
	if critical {
		sev = "Critical"
	}
	return fmt.Sprintf("OpenBMC.0.1.%s.%s", registry, sev)
}

// Format renders the occurrence message template with the socket and,
// for two-parameter templates, the sub-instance. The parameter count is
// carried by the table entry, so template and argument list cannot drift
// apart.
func (o Occurrence) Format(socket, subInstance uint16) string {
	s := fmt.Sprintf("%d", socket)
	if o.Params == 1 {
		return fmt.Sprintf(o.Template, s)
	}
	return fmt.Sprintf(o.Template, s, fmt.Sprintf("%d", subInstance))
}
