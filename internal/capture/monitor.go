package capture

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/pilebones/go-udev/netlink"

	"libriscan/internal/logging"
	"libriscan/internal/services"
)

// DeviceMonitor listens for udev netlink events and reports when a USB
// barcode scanner (a HID keyboard-class device) is attached, so a watch
// session can begin without polling. Handheld scanners type their decoded
// digits; the monitor only signals presence, it does not read input.
type DeviceMonitor struct {
	logger  *slog.Logger
	handler func(ctx context.Context, device string)
	device  string

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
}

// NewDeviceMonitor creates a monitor that invokes handler for each attach
// event. When device is non-empty, events for other device nodes are
// ignored.
func NewDeviceMonitor(logger *slog.Logger, device string, handler func(ctx context.Context, device string)) *DeviceMonitor {
	return &DeviceMonitor{
		logger:  logging.NewComponentLogger(logger, "device-monitor"),
		handler: handler,
		device:  strings.TrimSpace(device),
	}
}

// Start begins listening for udev netlink events. A failure to reach the
// netlink socket is reported as a capture-unavailable error; the caller can
// still scan from replay input.
func (m *DeviceMonitor) Start(ctx context.Context) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return services.Wrap(services.ErrCaptureUnavailable, "capture", "monitor",
			"connect to netlink socket", err)
	}

	m.conn = conn
	m.quit = make(chan struct{})
	m.running = true

	quit := m.quit
	go m.monitorLoop(ctx, quit)

	m.logger.Info("device monitor started",
		logging.String(logging.FieldEventType, "device_monitor_started"),
		logging.String("device", m.device),
	)
	return nil
}

// Stop shuts down the monitor.
func (m *DeviceMonitor) Stop() {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}

	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.running = false

	m.logger.Info("device monitor stopped",
		logging.String(logging.FieldEventType, "device_monitor_stopped"),
	)
}

// Running reports whether the monitor is active.
func (m *DeviceMonitor) Running() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *DeviceMonitor) monitorLoop(ctx context.Context, quit <-chan struct{}) {
	queue := make(chan netlink.UEvent)
	errs := make(chan error)

	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return
	}

	monitorQuit := conn.Monitor(queue, errs, m.buildMatcher())

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			m.handleEvent(ctx, uevent)
		case err := <-errs:
			m.logger.Warn("device monitor error",
				logging.Error(err),
				logging.String(logging.FieldEventType, "device_monitor_error"),
			)
		}
	}
}

// buildMatcher matches HID keyboard-class input devices being attached,
// which is how handheld barcode scanners enumerate.
func (m *DeviceMonitor) buildMatcher() netlink.Matcher {
	action := "add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM":         "input",
			"ID_INPUT_KEYBOARD": "1",
		},
	})
	return rules
}

func (m *DeviceMonitor) handleEvent(ctx context.Context, uevent netlink.UEvent) {
	devname := strings.TrimSpace(uevent.Env["DEVNAME"])
	if devname == "" {
		return
	}
	if m.device != "" && devname != m.device {
		m.logger.Debug("ignoring event for non-configured device",
			logging.String("device", devname),
			logging.String("configured_device", m.device),
		)
		return
	}

	m.logger.Info("scanner device attached",
		logging.String(logging.FieldEventType, "scanner_attached"),
		logging.String("device", devname),
		logging.String("action", string(uevent.Action)),
	)

	if m.handler != nil {
		m.handler(ctx, devname)
	}
}
