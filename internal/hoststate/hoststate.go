// Package hoststate tracks whether the managed host is powered on, via
// the phosphor state manager's CurrentHostState property.
package hoststate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

const (
	hostService   = "xyz.openbmc_project.State.Host"
	hostPath      = "/xyz/openbmc_project/state/host0"
	hostInterface = "xyz.openbmc_project.State.Host"
	hostProperty  = "CurrentHostState"
	runningValue  = "xyz.openbmc_project.State.Host.HostState.Running"
)

// Current reads the host power state once. Absence of the state manager
// is an error; the caller decides whether to treat it as powered off.
func Current(conn *dbus.Conn) (bool, error) {
	obj := conn.Object(hostService, hostPath)
	v, err := obj.GetProperty(hostInterface + "." + hostProperty)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", hostProperty, err)
	}
	s, ok := v.Value().(string)
	if !ok {
		return false, fmt.Errorf("%s has type %T, want string", hostProperty, v.Value())
	}
	return s == runningValue, nil
}

// Watch subscribes to host power transitions. The returned channel
// carries true for running and false for any other state, and closes
// when ctx is done. Signals that do not change CurrentHostState are
// filtered out.
func Watch(ctx context.Context, conn *dbus.Conn) (<-chan bool, error) {
	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus.Properties"),
		dbus.WithMatchMember("PropertiesChanged"),
		dbus.WithMatchArg0Namespace(hostInterface),
	); err != nil {
		return nil, fmt.Errorf("adding host state match: %w", err)
	}

	signals := make(chan *dbus.Signal, 16)
	conn.Signal(signals)

	states := make(chan bool, 1)
	go func() {
		defer close(states)
		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-signals:
				if !ok {
					return
				}
				running, ok := decodeHostState(sig)
				if !ok {
					continue
				}
				slog.Info("host power state changed", "running", running)
				select {
				case states <- running:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return states, nil
}

// decodeHostState extracts CurrentHostState from a PropertiesChanged
// body: (interface, changed properties, invalidated properties).
func decodeHostState(sig *dbus.Signal) (running, ok bool) {
	if len(sig.Body) < 2 {
		return false, false
	}
	iface, ok := sig.Body[0].(string)
	if !ok || iface != hostInterface {
		return false, false
	}
	changed, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return false, false
	}
	v, present := changed[hostProperty]
	if !present {
		return false, false
	}
	s, ok := v.Value().(string)
	if !ok {
		return false, false
	}
	return s == runningValue, true
}
