// Command midiports lists MIDI output ports and can send a short test
// pattern, for picking the portName to put in config.json.
package main

import (
	"fmt"
	"os"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	// _ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"morsepi/midi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "test":
		if len(os.Args) < 3 {
			fmt.Println("usage: midiports test <port-name>")
			return
		}
		testPort(os.Args[2])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  midiports list              list MIDI output ports")
	fmt.Println("  midiports test <port-name>  send SOS gate notes to a port")
}

func listPorts() {
	type result struct {
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{outs: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		fmt.Println("=== MIDI Output Ports ===")
		for i, p := range r.outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("Timed out enumerating MIDI ports")
	}
}

func testPort(name string) {
	port := midi.FindOutPort(name)
	if port == nil {
		fmt.Printf("No output port matching %q\n", name)
		return
	}
	fmt.Printf("Using output: %s\n", port.String())

	send, err := gomidi.SendTo(port)
	if err != nil {
		fmt.Printf("Error opening port: %v\n", err)
		return
	}

	// Three short, three long, three short
	note := midi.NoteForVoltage(4.333)
	dit := 60 * time.Millisecond
	for _, d := range []time.Duration{dit, dit, dit, 3 * dit, 3 * dit, 3 * dit, dit, dit, dit} {
		send(gomidi.NoteOn(0, note, 100))
		time.Sleep(d)
		send(gomidi.NoteOff(0, note))
		time.Sleep(dit)
	}
	fmt.Println("Done")
}
