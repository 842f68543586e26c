// internal/protocol/usb_connection.go
package protocol

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/google/gousb"
	"go.uber.org/zap"

	"receipt-service/internal/model"
)

// USBConnection implements DeviceProtocol for USB printers
type USBConnection struct {
	statsRecorder
	config   *USBConfig
	ctx      *gousb.Context
	device   *gousb.Device
	cfg      *gousb.Config
	intf     *gousb.Interface
	outEndpt *gousb.OutEndpoint
	logger   *zap.Logger
	mutex    sync.RWMutex
}

// usbTarget is where a printer's bulk OUT endpoint lives
type usbTarget struct {
	config   int
	intf     int
	alt      int
	endpoint int
}

// NewUSBConnection creates a new USB connection
func NewUSBConnection(config *USBConfig, logger *zap.Logger) DeviceProtocol {
	return &USBConnection{
		config: config,
		logger: logger.With(
			zap.String("protocol", "usb"),
			zap.String("vendor_id", config.VendorID),
			zap.String("product_id", config.ProductID),
		),
	}
}

// Open finds the device and claims its printer interface
func (uc *USBConnection) Open(ctx context.Context) error {
	uc.mutex.Lock()
	defer uc.mutex.Unlock()

	if uc.outEndpt != nil {
		return nil
	}

	uc.ctx = gousb.NewContext()

	device, target, err := uc.findAndOpenDevice()
	if err != nil {
		uc.recordError()
		uc.ctx.Close()
		uc.ctx = nil
		return err
	}

	// The kernel printer driver usually owns the interface
	if err := device.SetAutoDetach(true); err != nil {
		uc.logger.Warn("Failed to enable kernel driver auto detach", zap.Error(err))
	}

	cfg, err := device.Config(target.config)
	if err != nil {
		uc.release(device, nil, nil)
		return fmt.Errorf("failed to select USB configuration %d: %w", target.config, err)
	}

	intf, err := cfg.Interface(target.intf, target.alt)
	if err != nil {
		uc.release(device, cfg, nil)
		return fmt.Errorf("failed to claim interface %d: %w", target.intf, err)
	}

	outEndpt, err := intf.OutEndpoint(target.endpoint)
	if err != nil {
		uc.release(device, cfg, intf)
		return fmt.Errorf("failed to get out endpoint %d: %w", target.endpoint, err)
	}

	uc.device = device
	uc.cfg = cfg
	uc.intf = intf
	uc.outEndpt = outEndpt
	uc.setConnected(true)

	uc.logger.Debug("USB connection opened",
		zap.Int("interface", target.intf),
		zap.Int("endpoint", target.endpoint),
	)
	return nil
}

func (uc *USBConnection) release(device *gousb.Device, cfg *gousb.Config, intf *gousb.Interface) {
	if intf != nil {
		intf.Close()
	}
	if cfg != nil {
		cfg.Close()
	}
	if device != nil {
		device.Close()
	}
	if uc.ctx != nil {
		uc.ctx.Close()
		uc.ctx = nil
	}
}

// Close releases the interface, device and USB context
func (uc *USBConnection) Close() error {
	uc.mutex.Lock()
	defer uc.mutex.Unlock()

	if uc.outEndpt == nil {
		return nil
	}

	uc.release(uc.device, uc.cfg, uc.intf)
	uc.device = nil
	uc.cfg = nil
	uc.intf = nil
	uc.outEndpt = nil
	uc.setConnected(false)

	uc.logger.Debug("USB connection closed")
	return nil
}

// IsOpen returns whether the connection is open
func (uc *USBConnection) IsOpen() bool {
	uc.mutex.RLock()
	defer uc.mutex.RUnlock()
	return uc.outEndpt != nil
}

// Write sends data on the bulk OUT endpoint
func (uc *USBConnection) Write(ctx context.Context, data []byte) error {
	uc.mutex.RLock()
	defer uc.mutex.RUnlock()

	if uc.outEndpt == nil {
		return fmt.Errorf("USB connection not open")
	}

	if uc.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.config.Timeout)
		defer cancel()
	}

	n, err := uc.outEndpt.WriteContext(ctx, data)
	if err != nil {
		uc.recordError()
		uc.logger.Error("USB write failed", zap.Error(err))
		return fmt.Errorf("failed to write to USB device: %w", err)
	}
	if n != len(data) {
		uc.recordError()
		return fmt.Errorf("incomplete write: wrote %d of %d bytes", n, len(data))
	}

	uc.recordWrite(n)
	uc.logger.Debug("USB write completed", zap.Int("bytes", n))
	return nil
}

// GetProtocolType returns the protocol type
func (uc *USBConnection) GetProtocolType() model.ConnectionType {
	return model.ConnectionTypeUSB
}

// parseHexID parses hex ID string (0x1234 or 1234)
func parseHexID(hexStr string) (gousb.ID, error) {
	hexStr = strings.TrimPrefix(strings.ToLower(hexStr), "0x")
	id, err := strconv.ParseUint(hexStr, 16, 16)
	if err != nil {
		return 0, err
	}
	return gousb.ID(id), nil
}

// printerTarget finds the first bulk OUT endpoint on an interface matching
// the wanted class. An endpoint number of zero means any.
func printerTarget(desc *gousb.DeviceDesc, anyClass bool, endpoint int) (usbTarget, bool) {
	for _, cfgNum := range slices.Sorted(maps.Keys(desc.Configs)) {
		for _, intf := range desc.Configs[cfgNum].Interfaces {
			for _, alt := range intf.AltSettings {
				if !anyClass && alt.Class != gousb.ClassPrinter {
					continue
				}
				for _, addr := range slices.Sorted(maps.Keys(alt.Endpoints)) {
					ep := alt.Endpoints[addr]
					if ep.Direction != gousb.EndpointDirectionOut || ep.TransferType != gousb.TransferTypeBulk {
						continue
					}
					if endpoint != 0 && ep.Number != endpoint {
						continue
					}
					return usbTarget{config: cfgNum, intf: intf.Number, alt: alt.Alternate, endpoint: ep.Number}, true
				}
			}
		}
	}
	return usbTarget{}, false
}

// findAndOpenDevice opens the configured device, or the first printer class
// device when no IDs are configured
func (uc *USBConnection) findAndOpenDevice() (*gousb.Device, usbTarget, error) {
	byID := uc.config.VendorID != ""
	var vendorID, productID gousb.ID
	if byID {
		var err error
		if vendorID, err = parseHexID(uc.config.VendorID); err != nil {
			return nil, usbTarget{}, fmt.Errorf("invalid vendor ID: %w", err)
		}
		if productID, err = parseHexID(uc.config.ProductID); err != nil {
			return nil, usbTarget{}, fmt.Errorf("invalid product ID: %w", err)
		}
	}

	var (
		target usbTarget
		found  bool
	)
	devices, err := uc.ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if byID && (desc.Vendor != vendorID || desc.Product != productID) {
			return false
		}
		t, ok := printerTarget(desc, byID, uc.config.Endpoint)
		if ok && !found {
			target, found = t, true
		}
		return ok
	})

	// OpenDevices can return opened devices together with an error
	if len(devices) == 0 {
		if err != nil {
			return nil, usbTarget{}, fmt.Errorf("failed to enumerate USB devices: %w", err)
		}
		if byID {
			return nil, usbTarget{}, fmt.Errorf("USB device not found (VID: %04X, PID: %04X)", uint16(vendorID), uint16(productID))
		}
		return nil, usbTarget{}, fmt.Errorf("no USB printer found")
	}

	for _, d := range devices[1:] {
		d.Close()
	}
	if len(devices) > 1 {
		uc.logger.Warn("Multiple matching USB devices found, using first one")
	}

	return devices[0], target, nil
}
