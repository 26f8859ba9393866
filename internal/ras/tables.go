package ras

// IPMI sensor type codes used in OEM SEL records.
const (
	sensorTypeTemp  = 0x03
	sensorTypeState = 0x05
	sensorTypeCore  = 0x07
	sensorTypeMem   = 0x0C
	sensorTypeOther = 0x12
	sensorTypePCIe  = 0x13
	sensorTypeSMPM  = 0xCA
)

// Sensor numbers for RAS errors.
const (
	ceCoreIErr  = 139
	ueCoreIErr  = 140
	ceOtherIErr = 141
	ueOtherIErr = 142
	ceMemIErr   = 151
	ueMemIErr   = 168
	cePCIeIErr  = 191
	uePCIeIErr  = 202
	smproIErr   = 147
	pmproIErr   = 148
)

// Sensor numbers for hardware events, per socket.
const (
	s0DIMMHot       = 160
	s0VRDHot        = 180
	s0VRDWarnFault  = 181
	s0DIMM2xRefresh = 162
	s1DIMMHot       = 161
	s1VRDHot        = 183
	s1VRDWarnFault  = 184
	s1DIMM2xRefresh = 163
)

// ErrorCategory indexes the per-socket error report categories. The order
// matches the report type byte emitted by SMpro/PMpro firmware reports.
type ErrorCategory uint8

const (
	ErrCoreUE ErrorCategory = iota
	ErrMemUE
	ErrPCIeUE
	ErrOtherUE
	ErrCoreCE
	ErrMemCE
	ErrPCIeCE
	ErrOtherCE
	ErrSMpro
	ErrPMpro
)

// Uncorrectable reports whether the category is a UE class that must raise
// the fault marker.
func (c ErrorCategory) Uncorrectable() bool {
	switch c {
	case ErrCoreUE, ErrMemUE, ErrPCIeUE, ErrOtherUE:
		return true
	}
	return false
}

// Firmware reports whether the category carries the narrower SMpro/PMpro
// internal record schema instead of the bus error schema.
func (c ErrorCategory) Firmware() bool {
	return c == ErrSMpro || c == ErrPMpro
}

// EventCategory indexes the hardware event kinds. The values double as the
// type byte of event report lines.
type EventCategory uint8

const (
	EventVRDWarnFault EventCategory = iota
	EventVRDHot
	EventDIMMHot
	EventDIMM2xRefresh
)

// ErrorSource is one row of the static error report table: a per-socket,
// per-category report file and the SEL/Redfish identity of its records.
type ErrorSource struct {
	Socket    int
	Category  ErrorCategory
	Label     string
	ErrType   uint8 // SEL sensor type
	ErrNum    uint8 // SEL sensor number
	Name      string
	MessageID string // Redfish registry entry
}

// EventSource is one row of the static event report table. Row is the
// dense index into the per-row assertion masks.
type EventSource struct {
	Row       int
	Socket    int
	Category  EventCategory
	Label     string
	EventType uint8 // SEL sensor type
	ReadType  uint8 // SEL event/reading type
	EventNum  uint8 // SEL sensor number
	Name      string
	MessageID string
}

// SEL event/reading type codes.
const (
	tempReadType   = 0x5
	statusReadType = 0x3
)

const (
	// NumErrorSources is 2 sockets x 10 categories.
	NumErrorSources = 20
	// NumEventSources is 2 sockets x 4 event kinds.
	NumEventSources = 8
)

var errorSourceTable = []ErrorSource{
	{0, ErrCoreUE, "error_core_ue", sensorTypeCore, ueCoreIErr, "UE_CPU_IError", "CPUError"},
	{0, ErrMemUE, "error_mem_ue", sensorTypeMem, ueMemIErr, "UE_Memory_IErr", "MemoryECCUncorrectable"},
	{0, ErrPCIeUE, "error_pcie_ue", sensorTypePCIe, uePCIeIErr, "UE_PCIE_IErr", "PCIeFatalUncorrectableInternal"},
	{0, ErrOtherUE, "error_other_ue", sensorTypeOther, ueOtherIErr, "UE_SoC_IErr", "AmpereCritical"},
	{1, ErrCoreUE, "error_core_ue", sensorTypeCore, ueCoreIErr, "UE_CPU_IError", "CPUError"},
	{1, ErrMemUE, "error_mem_ue", sensorTypeMem, ueMemIErr, "UE_Memory_IErr", "MemoryECCUncorrectable"},
	{1, ErrPCIeUE, "error_pcie_ue", sensorTypePCIe, uePCIeIErr, "UE_PCIE_IErr", "PCIeFatalUncorrectableInternal"},
	{1, ErrOtherUE, "error_other_ue", sensorTypeOther, ueOtherIErr, "UE_SoC_IErr", "AmpereCritical"},
	{0, ErrCoreCE, "error_core_ce", sensorTypeCore, ceCoreIErr, "CE_CPU_IError", "CPUError"},
	{0, ErrMemCE, "error_mem_ce", sensorTypeMem, ceMemIErr, "CE_Memory_IErr", "MemoryECCCorrectable"},
	{0, ErrPCIeCE, "error_pcie_ce", sensorTypePCIe, cePCIeIErr, "CE_PCIE_IErr", "PCIeFatalECRCError"},
	{0, ErrOtherCE, "error_other_ce", sensorTypeOther, ceOtherIErr, "CE_SoC_IErr", "AmpereCritical"},
	{1, ErrCoreCE, "error_core_ce", sensorTypeCore, ceCoreIErr, "CE_CPU_IError", "CPUError"},
	{1, ErrMemCE, "error_mem_ce", sensorTypeMem, ceMemIErr, "CE_Memory_IErr", "MemoryECCCorrectable"},
	{1, ErrPCIeCE, "error_pcie_ce", sensorTypePCIe, cePCIeIErr, "CE_PCIE_IErr", "PCIeFatalECRCError"},
	{1, ErrOtherCE, "error_other_ce", sensorTypeOther, ceOtherIErr, "CE_SoC_IErr", "AmpereCritical"},
	{0, ErrSMpro, "error_smpro", sensorTypeSMPM, smproIErr, "SMPRO_IErr", "AmpereCritical"},
	{0, ErrPMpro, "error_pmpro", sensorTypeSMPM, pmproIErr, "PMPRO_IErr", "AmpereCritical"},
	{1, ErrSMpro, "error_smpro", sensorTypeSMPM, smproIErr, "SMPRO_IErr", "AmpereCritical"},
	{1, ErrPMpro, "error_pmpro", sensorTypeSMPM, pmproIErr, "PMPRO_IErr", "AmpereCritical"},
}

var eventSourceTable = []EventSource{
	{0, 0, EventVRDWarnFault, "event_vrd_warn_fault", sensorTypeState, statusReadType, s0VRDWarnFault, "VR_WarnFault", "AmpereWarning"},
	{1, 0, EventVRDHot, "event_vrd_hot", sensorTypeTemp, tempReadType, s0VRDHot, "VR_HOT", "AmpereWarning"},
	{2, 0, EventDIMMHot, "event_dimm_hot", sensorTypeTemp, tempReadType, s0DIMMHot, "DIMM_HOT", "AmpereWarning"},
	{3, 1, EventVRDWarnFault, "event_vrd_warn_fault", sensorTypeState, statusReadType, s1VRDWarnFault, "VR_WarnFault", "AmpereWarning"},
	{4, 1, EventVRDHot, "event_vrd_hot", sensorTypeTemp, tempReadType, s1VRDHot, "VR_HOT", "AmpereWarning"},
	{5, 1, EventDIMMHot, "event_dimm_hot", sensorTypeTemp, tempReadType, s1DIMMHot, "DIMM_HOT", "AmpereWarning"},
	{6, 0, EventDIMM2xRefresh, "event_dimm_2x_refresh", sensorTypeMem, statusReadType, s0DIMM2xRefresh, "DIMM_2X_REFRESH_RATE", "AmpereWarning"},
	{7, 1, EventDIMM2xRefresh, "event_dimm_2x_refresh", sensorTypeMem, statusReadType, s1DIMM2xRefresh, "DIMM_2X_REFRESH_RATE", "AmpereWarning"},
}

// Occurrence describes a bus error occurrence keyed by errType<<8|subType:
// the affected component and the alert message template. Params selects
// the one-arg (socket) or two-arg (socket + sub-instance) template form.
type Occurrence struct {
	Params    int
	Component string
	Template  string
}

// Occurrence keys with a decodable DIMM index in the sub-instance field.
const (
	mcuErrRecord1 = 0x0101
	mcuErrRecord2 = 0x0102
	overflowKey   = 0xffff
)

var occurrenceTable = map[uint16]Occurrence{
	0x0000: {2, "CPM Snoop-Logic", "Socket%s CPM%s"},
	0x0001: {2, "CPM Core 0", "Socket%s CPM%s"},
	0x0002: {2, "CPM Core 1", "Socket%s CPM%s"},
	0x0101: {2, "MCU ERR Record 1 (DRAM CE)", "Socket%s MCU%s"},
	0x0102: {2, "MCU ERR Record 2 (DRAM UE)", "Socket%s MCU%s"},
	0x0103: {2, "MCU ERR Record 3 (CHI Fault)", "Socket%s MCU%s"},
	0x0104: {2, "MCU ERR Record 4 (SRAM CE)", "Socket%s MCU%s"},
	0x0105: {2, "MCU ERR 5 (SRAM UE)", "Socket%s MCU%s"},
	0x0106: {2, "MCU ERR 6 (DMC recovery)", "Socket%s MCU%s"},
	0x0107: {2, "MCU Link ERR", "Socket%s MCU%s"},
	0x0200: {2, "Mesh XP", "Socket%s instance:%s"},
	0x0201: {2, "Mesh HNI", "Socket%s instance:%s"},
	0x0202: {2, "Mesh HNF", "Socket%s instance:%s"},
	0x0204: {2, "Mesh CXG", "Socket%s instance:%s"},
	0x0300: {2, "2P AER ERR", "Socket%s Link%s"},
	0x0400: {2, "2P ALI ERR", "Socket%s Link%s"},
	0x0500: {1, "GIC ERR 0", "Socket%s"},
	0x0501: {1, "GIC ERR 1", "Socket%s"},
	0x0502: {1, "GIC ERR 2", "Socket%s"},
	0x0503: {1, "GIC ERR 3", "Socket%s"},
	0x0504: {1, "GIC ERR 4", "Socket%s"},
	0x0505: {1, "GIC ERR 5", "Socket%s"},
	0x0506: {1, "GIC ERR 6", "Socket%s"},
	0x0507: {1, "GIC ERR 7", "Socket%s"},
	0x0508: {1, "GIC ERR 8", "Socket%s"},
	0x0509: {1, "GIC ERR 9", "Socket%s"},
	0x050a: {1, "GIC ERR 10", "Socket%s"},
	0x050b: {1, "GIC ERR 11", "Socket%s"},
	0x050c: {1, "GIC ERR 12", "Socket%s"},
	0x0600: {2, "SMMU TBU0", "Socket%s Root complex:%s"},
	0x0601: {2, "SMMU TBU1", "Socket%s Root complex:%s"},
	0x0602: {2, "SMMU TBU2", "Socket%s Root complex:%s"},
	0x0603: {2, "SMMU TBU3", "Socket%s Root complex:%s"},
	0x0604: {2, "SMMU TBU4", "Socket%s Root complex:%s"},
	0x0605: {2, "SMMU TBU5", "Socket%s Root complex:%s"},
	0x0606: {2, "SMMU TBU6", "Socket%s Root complex:%s"},
	0x0607: {2, "SMMU TBU7", "Socket%s Root complex:%s"},
	0x0608: {2, "SMMU TBU8", "Socket%s Root complex:%s"},
	0x0609: {2, "SMMU TBU9", "Socket%s Root complex:%s"},
	0x0664: {2, "SMMU TCU", "Socket%s Root complex:%s"},
	0x0700: {2, "PCIe AER Root Port", "Socket%s Root complex:%s"},
	0x0701: {2, "PCIe AER Device", "Socket%s Root complex:%s"},
	0x0800: {2, "PCIe HB RCA", "Socket%s Root complex:%s"},
	0x0801: {2, "PCIe HB RCA", "Socket%s Root complex:%s"},
	0x0808: {2, "PCIe RASDP Error ", "Socket%s Root complex:%s"},
	0x0900: {1, "OCM ERR 0 (ECC Fault)", "Socket%s"},
	0x0901: {1, "OCM ERR 1 (ERR Recovery)", "Socket%s"},
	0x0902: {1, "OCM ERR 2 (Data Poisoned)", "Socket%s"},
	0x0a00: {1, "SMpro ERR 0 (ECC Fault)", "Socket%s"},
	0x0a01: {1, "SMpro ERR 1 (ERR Recovery)", "Socket%s"},
	0x0a02: {1, "SMpro MPA_ERR", "Socket%s"},
	0x0b00: {1, "PMpro ERR 0 (ECC Fault)", "Socket%s"},
	0x0b01: {1, "PMpro ERR 1 (ERR Recovery)", "Socket%s"},
	0x0b02: {1, "PMpro MPA_ERR", "Socket%s"},
	0x0c00: {1, "ATF firmware EL3", "Socket%s"},
	0x0c01: {1, "ATF firmware SPM", "Socket%s"},
	0x0c02: {1, "ATF firmware Secure Partition ", "Socket%s"},
	0x0d00: {1, "SMpro firmware RAS_MSG_ERR", "Socket%s"},
	0x0e00: {1, "PMpro firmware RAS_MSG_ERR", "Socket%s"},
	0x3f00: {1, "BERT Default", "Socket%s"},
	0x3f01: {1, "BERT Watchdog", "Socket%s"},
	0x3f02: {1, "BERT ATF Fatal", "Socket%s"},
	0x3f03: {1, "BERT SMpro Fatal", "Socket%s"},
	0x3f04: {1, "BERT PMpro Fatal", "Socket%s"},
	0xffff: {1, "Overflow", "Socket%s"},
}
