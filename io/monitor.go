package io

import (
	"github.com/sirupsen/logrus"

	"github.com/ezrec/bbvm/ram"
)

// Monitor routes trap requests to the device attached to the trap code.
// Requests for codes without a device are ignored.
type Monitor struct {
	Verbose bool // If set, enables verbose logging.

	Serviced  int // Requests passed to a device.
	Unhandled int // Requests without a device.
	Failed    int // Requests the device could not complete.

	device map[uint16]Device
}

// Attach a device to a trap code. A nil device detaches the code.
func (mon *Monitor) Attach(code uint16, dev Device) {
	if dev == nil {
		delete(mon.device, code)
		return
	}
	if mon.device == nil {
		mon.device = make(map[uint16]Device)
	}
	mon.device[code] = dev
}

// Device returns the device attached to a trap code.
func (mon *Monitor) Device(code uint16) (dev Device, err error) {
	dev, ok := mon.device[code]
	if !ok {
		err = ErrDeviceMissing
	}
	return
}

// Rewind rewinds all attached devices, and clears the counters.
func (mon *Monitor) Rewind() {
	for _, dev := range mon.device {
		dev.Rewind()
	}
	mon.Serviced = 0
	mon.Unhandled = 0
	mon.Failed = 0
}

// Trap services a trap request. Device failures are logged and dropped;
// they never stop the machine.
func (mon *Monitor) Trap(code uint16, payload uint16, mem ram.Reader) {
	dev, err := mon.Device(code)
	if err != nil {
		mon.Unhandled++
		if mon.Verbose {
			logrus.WithField("code", code).Debug("monitor: ignored")
		}
		return
	}

	mon.Serviced++
	err = dev.Service(payload, mem)
	if err != nil {
		mon.Failed++
		if mon.Verbose {
			logrus.WithFields(logrus.Fields{
				"code":    code,
				"payload": payload,
			}).WithError(err).Debug("monitor: device failed")
		}
	}
}
