// tempevent records a high temperature or over temperature notification
// from the SCP as one SEL entry plus one Redfish alert. It is invoked by
// the thermal event hooks, once per event.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/godbus/dbus/v5"

	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/ras"
	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/redfish"
	"github.com/ampere-openbmc/ampere-platform-mgmt/internal/sel"
)

const selText = "Hightemp/Overtemp Event"

func usage() {
	prog := os.Args[0]
	fmt.Fprintf(os.Stderr, "%s logs a Hightemp/Overtemp event from the SCP.\n"+
		"Usage:\n"+
		"  %s Hightemp start   log the start of a hightemp event\n"+
		"  %s Hightemp stop    log the end of a hightemp event\n"+
		"  %s Overtemp         log an overtemp event\n",
		prog, prog, prog, prog)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		usage()
		os.Exit(1)
	}
	message := strings.Join(flag.Args(), " ")

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error connecting to system bus: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	sel.NewLogger(conn).AddOEM(selText, ras.NewSELPayload())
	redfish.NewNotifier().Send("OpenBMC.0.1.AmpereCritical.Critical",
		fmt.Sprintf("%s Event", message), "Critical")
}
