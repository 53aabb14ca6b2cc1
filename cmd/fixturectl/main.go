// Command fixturectl sets fixture colours over the device's serial port.
//
//	fixturectl -port /dev/ttyACM0 -led 7 -rgb 255,128,0
//	fixturectl -led 2 -rgbw 0,0,0,255
//	fixturectl -raw '{"led":1,"r":10}'
package main

import (
	"flag"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/tarm/serial"

	"fixturecode-go/hostlink"
	"fixturecode-go/types"
)

var (
	portName  = flag.String("port", "/dev/ttyACM0", "device serial port")
	baud      = flag.Int("baud", 115200, "baud rate")
	timeout   = flag.Duration("timeout", 2*time.Second, "read timeout per reply")
	waitReady = flag.Bool("wait-ready", false, "wait for the device's ready announcement first")
	led       = flag.Uint("led", uint(types.FixtureAll), "fixture mask: 1, 2, 4 or a sum")
	rgb       = flag.String("rgb", "", "r,g,b colour converted to RGBW")
	rgbw      = flag.String("rgbw", "", "r,g,b,w channel levels sent as-is")
	raw       = flag.String("raw", "", "send this document verbatim")
)

func main() {
	flag.Parse()

	port, err := serial.OpenPort(&serial.Config{Name: *portName, Baud: *baud, ReadTimeout: *timeout})
	if err != nil {
		glog.Exitf("open %s: %v", *portName, err)
	}
	defer port.Close()
	glog.V(1).Infof("opened %s at %d baud", *portName, *baud)

	c := hostlink.NewClient(port)
	if *waitReady {
		if err := c.WaitReady(); err != nil {
			glog.Exitf("waiting for ready: %v", err)
		}
		glog.Info("device ready")
	}

	if err := run(c); err != nil {
		glog.Exit(err)
	}
	if c.Skipped > 0 {
		glog.V(1).Infof("skipped %d non-reply lines", c.Skipped)
	}
}

func run(c *hostlink.Client) error {
	mask := types.FixtureMask(*led)
	switch {
	case *raw != "":
		return c.SendRaw([]byte(*raw))
	case *rgbw != "":
		v, err := parseLevels(*rgbw, 4)
		if err != nil {
			return err
		}
		return c.Send(types.Command{LED: mask, Color: types.Color{R: v[0], G: v[1], B: v[2], W: v[3]}})
	case *rgb != "":
		v, err := parseLevels(*rgb, 3)
		if err != nil {
			return err
		}
		glog.V(1).Infof("rgb %v -> %+v", v, hostlink.RGBToRGBW(v[0], v[1], v[2]))
		return c.SetRGB(mask, v[0], v[1], v[2])
	}
	return c.Send(types.Command{LED: mask})
}

// parseLevels splits "a,b,c" into n values in 0..255.
func parseLevels(s string, n int) ([]uint8, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, &usageError{"want " + strconv.Itoa(n) + " comma-separated levels, got " + strconv.Quote(s)}
	}
	out := make([]uint8, n)
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return nil, &usageError{"level " + strconv.Quote(p) + " is not in 0..255"}
		}
		out[i] = uint8(v)
	}
	return out, nil
}

type usageError struct{ msg string }

func (e *usageError) Error() string { return "usage: " + e.msg }
