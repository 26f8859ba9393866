package ras

// Human-readable string tables for SMpro/PMpro internal error records.
// All lookups are bounds-checked; an out-of-range index renders as an
// "Unknown ..." placeholder rather than failing the record.

// Firmware error type byte of the SEL payload.
const (
	smproIErrType = 0
	pmproIErrType = 1
)

// Internal error sub types.
const (
	firmwareWarning   = 1
	firmwareError     = 2
	firmwareErrorData = 4
)

// Direction codes shared by internal errors and hardware events.
const (
	dirEnter      = 0
	dirExit       = 1
	dirAsserted   = 0
	dirDeasserted = 1
)

const ierrSensorSpecific = 0x71

var firmwareDirections = []string{
	"Enter",
	"Exit",
}

var firmwareImages = []string{
	"Boot ROM",
	"SMpro RO Firmware",
	"SMpro RW Firmware",
	"PMpro RO Firmware",
	"PMpro RW Firmware",
	"ATF BL1",
	"ATF BL2",
	"ATF BL31",
	"ATF BL32",
	"UEFI Firmware",
}

var firmwareLocations = []string{
	"Initialization",
	"Clock Setup",
	"Voltage Regulator Setup",
	"PCIe Root Complex Setup",
	"DDR Initialization",
	"DDR Training",
	"Mesh Setup",
	"Core Power Sequence",
	"RAS Configuration",
	"Thermal Setup",
	"Power Management",
	"I2C Transport",
	"Mailbox Handling",
	"Secure Boot Verification",
	"NVPARAM Access",
	"Runtime Service",
}

var firmwareErrorCodes = []string{
	"None",
	"Invalid Parameter",
	"Hardware Timeout",
	"Hardware Fault",
	"I2C Bus Hang",
	"PLL Lock Failure",
	"Voltage Out Of Range",
	"DDR Training Failure",
	"DIMM SPD Read Failure",
	"Mesh Init Failure",
	"PCIe Link Training Failure",
	"Firmware Image Corrupted",
	"Firmware Authentication Failure",
	"Mailbox Protocol Error",
	"NVPARAM Checksum Error",
	"Watchdog Reset",
	"Thermal Trip",
	"Power Budget Exceeded",
	"Internal Assertion",
	"Resource Exhausted",
}

func firmwareDirection(code uint8) string {
	if int(code) < len(firmwareDirections) {
		return firmwareDirections[code]
	}
	return "Unknown Action"
}

func firmwareImage(code uint8) string {
	if int(code) < len(firmwareImages) {
		return firmwareImages[code]
	}
	return "Unknown Image"
}

func firmwareLocation(code uint8) string {
	if int(code) < len(firmwareLocations) {
		return firmwareLocations[code]
	}
	return "Unknown location"
}

func firmwareErrorCode(code uint16) string {
	if int(code) < len(firmwareErrorCodes) {
		return firmwareErrorCodes[code]
	}
	return "Unknown Error"
}
