// Package capture supplies recognition frames to the scan session.
//
// The core never touches hardware; it consumes Source implementations that
// deliver already-decoded strings and text blocks. A replay source feeds
// recorded or piped detections at a configurable rate, and a udev netlink
// monitor reports barcode-scanner hotplug so the CLI can react to devices
// appearing without polling.
package capture
