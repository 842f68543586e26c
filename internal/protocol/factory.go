// internal/protocol/factory.go
package protocol

import (
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	ierr "receipt-service/internal/errors"
	"receipt-service/internal/model"
)

var validBaudRates = []int{1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200}

// CreateProtocol creates an unopened connection for the configured transport
func CreateProtocol(cfg Config, logger *zap.Logger) (DeviceProtocol, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case model.ConnectionTypeSerial:
		return createSerialProtocol(cfg.Serial, logger), nil
	case model.ConnectionTypeUSB:
		return createUSBProtocol(cfg.USB, logger), nil
	default:
		return createTCPProtocol(cfg.TCP, logger), nil
	}
}

// createSerialProtocol creates a serial protocol
func createSerialProtocol(cfg SerialConfig, logger *zap.Logger) DeviceProtocol {
	cfg.BaudRate = lo.Ternary(cfg.BaudRate == 0, 9600, cfg.BaudRate)
	cfg.DataBits = lo.Ternary(cfg.DataBits == 0, 8, cfg.DataBits)
	cfg.StopBits = lo.Ternary(cfg.StopBits == 0, 1, cfg.StopBits)
	cfg.Parity = lo.Ternary(cfg.Parity == "", "none", cfg.Parity)
	cfg.Timeout = lo.Ternary(cfg.Timeout == 0, 5*time.Second, cfg.Timeout)

	logger.Debug("Creating serial protocol",
		zap.String("port", cfg.Port),
		zap.Int("baud_rate", cfg.BaudRate),
	)

	return NewSerialConnection(&cfg, logger)
}

// createUSBProtocol creates a USB protocol
func createUSBProtocol(cfg USBConfig, logger *zap.Logger) DeviceProtocol {
	cfg.Timeout = lo.Ternary(cfg.Timeout == 0, 5*time.Second, cfg.Timeout)

	logger.Debug("Creating USB protocol",
		zap.String("vendor_id", cfg.VendorID),
		zap.String("product_id", cfg.ProductID),
		zap.Int("endpoint", cfg.Endpoint),
	)

	return NewUSBConnection(&cfg, logger)
}

// createTCPProtocol creates a TCP protocol
func createTCPProtocol(cfg TCPConfig, logger *zap.Logger) DeviceProtocol {
	cfg.Port = lo.Ternary(cfg.Port == 0, 9100, cfg.Port) // raw printing port
	cfg.Timeout = lo.Ternary(cfg.Timeout == 0, 10*time.Second, cfg.Timeout)
	cfg.WriteTimeout = lo.Ternary(cfg.WriteTimeout == 0, 30*time.Second, cfg.WriteTimeout)

	logger.Debug("Creating TCP protocol",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
	)

	return NewTCPConnection(&cfg, logger)
}

// ValidateConfig validates configuration for the selected transport
func ValidateConfig(cfg Config) error {
	switch cfg.Type {
	case model.ConnectionTypeSerial:
		return validateSerialConfig(cfg.Serial)
	case model.ConnectionTypeUSB:
		return validateUSBConfig(cfg.USB)
	case model.ConnectionTypeTCP:
		return validateTCPConfig(cfg.TCP)
	default:
		return ierr.NewErrorf("unsupported connection type: %s", cfg.Type).
			WithHint("connection type must be USB, TCP or SERIAL").
			Mark(ierr.ErrValidation)
	}
}

// validateSerialConfig validates serial configuration
func validateSerialConfig(cfg SerialConfig) error {
	if cfg.Port == "" {
		return ierr.NewError("serial port is required").Mark(ierr.ErrValidation)
	}
	if cfg.BaudRate != 0 && !lo.Contains(validBaudRates, cfg.BaudRate) {
		return ierr.NewErrorf("invalid baud rate: %d", cfg.BaudRate).
			WithHintf("baud rate must be one of %v", validBaudRates).
			Mark(ierr.ErrValidation)
	}
	if cfg.StopBits != 0 && cfg.StopBits != 1 && cfg.StopBits != 2 {
		return ierr.NewErrorf("invalid stop bits: %d", cfg.StopBits).Mark(ierr.ErrValidation)
	}
	if cfg.Parity != "" && !lo.Contains([]string{"none", "odd", "even"}, cfg.Parity) {
		return ierr.NewErrorf("invalid parity: %s", cfg.Parity).Mark(ierr.ErrValidation)
	}
	return nil
}

// validateUSBConfig validates USB configuration
func validateUSBConfig(cfg USBConfig) error {
	if (cfg.VendorID == "") != (cfg.ProductID == "") {
		return ierr.NewError("USB vendor_id and product_id must be set together").
			WithHint("leave both empty to use the first printer class device").
			Mark(ierr.ErrValidation)
	}
	for _, id := range []string{cfg.VendorID, cfg.ProductID} {
		if id == "" {
			continue
		}
		if _, err := parseHexID(id); err != nil {
			return ierr.WithError(err).
				WithMessagef("invalid USB id %q", id).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// validateTCPConfig validates TCP configuration
func validateTCPConfig(cfg TCPConfig) error {
	if cfg.Host == "" {
		return ierr.NewError("TCP host is required").Mark(ierr.ErrValidation)
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return ierr.NewErrorf("invalid port number: %d", cfg.Port).Mark(ierr.ErrValidation)
	}
	return nil
}
