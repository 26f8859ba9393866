// Package ras decodes the SMpro/PMpro RAS error and event reports of an
// Ampere Altra platform and forwards them as OEM SEL records and Redfish
// alerts. Reports are line-oriented hex dumps under per-socket sysfs
// directories, polled while the host is running.
package ras

import (
	"fmt"
	"log/slog"

	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/faultflag"
	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/hwmon"
	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/metric"
	"github.com/google/uuid"
)

// SELSink receives OEM SEL payloads. Implementations must not block the
// sweep beyond their own pacing; delivery failures are theirs to log.
type SELSink interface {
	AddOEM(message string, data []byte)
}

// AlertSink receives Redfish message IDs with their positional arguments.
type AlertSink interface {
	Send(messageID string, args ...string)
}

// ReportTree resolves a socket/label pair to a report file path, or ""
// when that socket was not discovered.
type ReportTree interface {
	Path(socket int, label string) string
}

// Monitor drives one full decode pass over all error and event sources.
// It is not safe for concurrent sweeps; the poller serializes calls.
type Monitor struct {
	reg   *Registry
	tree  ReportTree
	sel   SELSink
	alert AlertSink
	fault *faultflag.Marker
	read  func(path string) []string
}

// MonitorConfig carries the monitor's collaborators.
type MonitorConfig struct {
	Tree  ReportTree
	SEL   SELSink
	Alert AlertSink
	Fault *faultflag.Marker

	// ReadLines overrides report file reading, for tests.
	ReadLines func(path string) []string
}

// NewMonitor assembles a Monitor around a registry.
func NewMonitor(reg *Registry, cfg MonitorConfig) *Monitor {
	read := cfg.ReadLines
	if read == nil {
		read = hwmon.ReadLines
	}
	return &Monitor{
		reg:   reg,
		tree:  cfg.Tree,
		sel:   cfg.SEL,
		alert: cfg.Alert,
		fault: cfg.Fault,
		read:  read,
	}
}

// Sweep performs one full pass: every error source row, then every event
// source row. Malformed lines and missing files are skipped; a sweep
// never fails.
func (m *Monitor) Sweep() {
	for _, src := range m.reg.ErrorSources() {
		path := m.tree.Path(src.Socket, src.Label)
		if path == "" {
			continue
		}
		for _, line := range m.read(path) {
			if src.Category.Firmware() {
				m.handleFirmwareLine(src, line)
			} else {
				m.handleErrorLine(src, line)
			}
		}
	}

	for _, src := range m.reg.EventSources() {
		path := m.tree.Path(src.Socket, src.Label)
		if path == "" {
			continue
		}
		for _, line := range m.read(path) {
			m.handleEventLine(src, line)
		}
	}
}

// handleErrorLine decodes and forwards one bus error record.
func (m *Monitor) handleErrorLine(src ErrorSource, line string) {
	rec, ok := ParseErrorLine(line)
	if !ok {
		return
	}
	metric.ErrorRecords.Inc()

	// ff/ff marks a report table overflow: the sub-instance is unknown,
	// only the socket of the source row is carried forward.
	if rec.ErrType == 0xff && rec.SubType == 0xff {
		rec.Instance = uint16(src.Socket) << 14
	}

	id := uuid.NewString()
	slog.Debug("bus error record",
		"id", id,
		"socket", src.Socket,
		"source", src.Label,
		"key", fmt.Sprintf("%#04x", rec.Key()),
		"instance", fmt.Sprintf("%#04x", rec.Instance),
	)

	m.sel.AddOEM(selMessage, errorPayload(src, rec))
	m.emitErrorAlert(src, rec)
}

// emitErrorAlert renders the Redfish side of a bus error. The argument
// layout diverges per category; memory errors additionally emit an ECC
// detail message with the decoded bank/row/column.
func (m *Monitor) emitErrorAlert(src ErrorSource, rec ErrorRecord) {
	socket := rec.Socket()
	inst := rec.SubInstance()

	var comp, msg string
	if occ, ok := m.reg.Occurrence(rec.Key()); ok {
		comp = occ.Component
		msg = occ.Format(socket, inst)
	}

	// Overflow routes to the generic critical registry and reports no
	// sub-instance. Note an overflowed UE source does not raise the
	// fault marker: the overflow record replaces the lost ones.
	if rec.Key() == overflowKey {
		m.alert.Send(alertID("AmpereCritical", true),
			fmt.Sprintf("%s: %s", src.Name, comp), msg)
		return
	}

	msgID := alertID(src.MessageID, true)
	switch src.Category {
	case ErrCoreUE, ErrCoreCE:
		m.alert.Send(msgID, fmt.Sprintf("%s: %s %s", src.Name, comp, msg))

	case ErrMemUE, ErrMemCE:
		m.emitMemoryAlert(src, rec, msgID, socket, inst)

	case ErrPCIeUE, ErrPCIeCE:
		m.alert.Send(msgID,
			fmt.Sprintf("%d", socket), fmt.Sprintf("%d", inst), "0")

	case ErrOtherUE, ErrOtherCE:
		m.alert.Send(msgID, fmt.Sprintf("%s: %s", src.Name, comp), msg)
	}

	if src.Category.Uncorrectable() {
		m.fault.Set()
	}
}

// emitMemoryAlert sends the DIMM-level alert and the ECC detail alert.
// The DIMM index is only decodable for the two MCU DRAM record types; all
// other memory occurrences report DIMM and rank as 255 (unknown).
func (m *Monitor) emitMemoryAlert(src ErrorSource, rec ErrorRecord, msgID string, socket, inst uint16) {
	rank := (rec.Address >> 20) & 0xF
	bank := (rec.Misc[0] >> 32) & 0xF
	row := (rec.Misc[0] >> 10) & 0x3ffff
	col := (rec.Misc[0] & 0x3ff) << 3

	channel := fmt.Sprintf("%x", inst&0x7ff)
	key := rec.Key()
	if key == mcuErrRecord1 || key == mcuErrRecord2 {
		m.alert.Send(msgID,
			fmt.Sprintf("%d", socket),
			channel,
			fmt.Sprintf("%d", (inst&0x3800)>>11),
			fmt.Sprintf("%d", rank))
	} else {
		m.alert.Send(msgID,
			fmt.Sprintf("%d", socket), channel, "255", "255")
	}

	eccID := "OpenBMC.0.1.MemoryExtendedECCCEData.Warning"
	if src.Category == ErrMemUE {
		eccID = "OpenBMC.0.1.MemoryExtendedECCUEData.Critical"
	}
	m.alert.Send(eccID,
		fmt.Sprintf("%d", bank), fmt.Sprintf("%d", row), fmt.Sprintf("%d", col))
}

// handleFirmwareLine decodes and forwards one SMpro/PMpro internal error.
func (m *Monitor) handleFirmwareLine(src ErrorSource, line string) {
	rec, ok := ParseFirmwareLine(line)
	if !ok {
		return
	}
	metric.ErrorRecords.Inc()

	id := uuid.NewString()
	slog.Debug("firmware error record",
		"id", id,
		"socket", src.Socket,
		"source", src.Label,
		"subtype", rec.SubType,
		"errcode", fmt.Sprintf("%#04x", rec.ErrCode),
	)

	m.sel.AddOEM(selMessage, firmwarePayload(src, rec))

	comp := fmt.Sprintf("S%d_%s: %s %s %s with",
		src.Socket, src.Name,
		firmwareImage(rec.ImageCode),
		firmwareDirection(rec.Dir),
		firmwareLocation(rec.Location))

	switch rec.SubType {
	case firmwareWarning:
		m.alert.Send(alertID(src.MessageID, false),
			comp, fmt.Sprintf("Warning %s.", firmwareErrorCode(rec.ErrCode)))
	case firmwareError:
		m.alert.Send(alertID(src.MessageID, true),
			comp, fmt.Sprintf("Error %s.", firmwareErrorCode(rec.ErrCode)))
	default:
		m.alert.Send(alertID(src.MessageID, true),
			comp, fmt.Sprintf("Error %s, data 0x%08x.", firmwareErrorCode(rec.ErrCode), rec.Data))
	}
}

// handleEventLine dispatches one event record to its category handler.
// The handler is selected by the type byte of the line, not by the source
// row; the row only supplies the mask slot and SEL identity.
func (m *Monitor) handleEventLine(src EventSource, line string) {
	rec, ok := ParseEventLine(line)
	if !ok {
		return
	}

	switch EventCategory(rec.Type) {
	case EventVRDWarnFault:
		m.emitVRDEvent(src, rec, vrdWarnFaultRails)
	case EventVRDHot:
		m.emitVRDEvent(src, rec, vrdHotRails)
	case EventDIMMHot:
		m.emitDIMMHotEvent(src, rec)
	case EventDIMM2xRefresh:
		m.emitDIMM2xRefreshEvent(src, rec)
	}
}

// vrdRail maps one assertion bit to a voltage rail. The two VRD event
// categories deliberately use disjoint bit layouts.
type vrdRail struct {
	bit       int
	component uint8
	rail      uint8
}

var vrdHotRails = []vrdRail{
	{0, socComponent, 0},
	{4, coreComponent, 1},
	{5, coreComponent, 2},
	{6, coreComponent, 3},
	{8, dimmComponent, 1},
	{9, dimmComponent, 2},
	{10, dimmComponent, 3},
	{11, dimmComponent, 4},
}

var vrdWarnFaultRails = []vrdRail{
	{0, socComponent, 0},
	{1, coreComponent, 1},
	{2, coreComponent, 2},
	{3, coreComponent, 3},
	{4, dimmComponent, 1},
	{5, dimmComponent, 2},
	{6, dimmComponent, 3},
	{7, dimmComponent, 4},
}

func (r vrdRail) describe(eventName string, socket int) string {
	switch r.component {
	case coreComponent:
		return fmt.Sprintf("Event %s at CORE_VRD%d of Socket %d", eventName, r.rail, socket)
	case dimmComponent:
		return fmt.Sprintf("Event %s at DIMM_VRD%d of Socket %d", eventName, r.rail, socket)
	default:
		return fmt.Sprintf("Event %s at SoC_VRD of Socket %d", eventName, socket)
	}
}

// emitVRDEvent reports rail-level transitions for both VRD categories.
func (m *Monitor) emitVRDEvent(src EventSource, rec EventRecord, rails []vrdRail) {
	bits := make([]int, len(rails))
	for i, r := range rails {
		bits[i] = r.bit
	}

	for _, tr := range m.reg.Update(src.Row, rec.Data, bits) {
		var rail vrdRail
		for _, r := range rails {
			if r.bit == tr.Bit {
				rail = r
				break
			}
		}

		b7 := rail.component<<4 | uint8(src.Socket)
		m.emitEvent(src, tr.Asserted, b7, rail.rail, rail.describe(src.Name, src.Socket))
	}
}

// emitDIMMHotEvent reports per-DIMM transitions: sixteen bits covering
// two DIMMs on each of eight channels. Bytes 7/8 carry the one-hot bit
// mask split low/high.
func (m *Monitor) emitDIMMHotEvent(src EventSource, rec EventRecord) {
	bits := make([]int, 16)
	for i := range bits {
		bits[i] = i
	}

	for _, tr := range m.reg.Update(src.Row, rec.Data, bits) {
		channel := tr.Bit % 8
		dimm := tr.Bit / 8
		mask := uint16(1) << tr.Bit
		comp := fmt.Sprintf("Event %s at DIMM%d of channel %d of Socket %d",
			src.Name, dimm, channel, src.Socket)
		m.emitEvent(src, tr.Asserted, uint8(mask&0xff), uint8(mask>>8), comp)
	}
}

// emitDIMM2xRefreshEvent reports per-channel transitions over the eight
// DIMM channels.
func (m *Monitor) emitDIMM2xRefreshEvent(src EventSource, rec EventRecord) {
	bits := make([]int, 8)
	for i := range bits {
		bits[i] = i
	}

	for _, tr := range m.reg.Update(src.Row, rec.Data, bits) {
		comp := fmt.Sprintf("Event %s at DIMM channel %d of Socket %d",
			src.Name, tr.Bit, src.Socket)
		m.emitEvent(src, tr.Asserted, uint8(src.Socket), uint8(tr.Bit), comp)
	}
}

// emitEvent delivers one event transition to both sinks.
func (m *Monitor) emitEvent(src EventSource, asserted bool, b7, b8 uint8, comp string) {
	metric.EventTransitions.Inc()
	id := uuid.NewString()
	state := "Deasserted."
	if asserted {
		state = "Asserted."
	}
	slog.Debug("event transition",
		"id", id,
		"socket", src.Socket,
		"event", src.Name,
		"state", state,
	)

	m.sel.AddOEM(selMessage, eventPayload(src, asserted, b7, b8))
	m.alert.Send(alertID(src.MessageID, false), comp, state)
}
