// internal/protocol/connection.go
package protocol

import (
	"time"

	"receipt-service/internal/model"
)

// Config selects and configures the printer transport
type Config struct {
	Type   model.ConnectionType `mapstructure:"type" validate:"required,oneof=USB TCP SERIAL"`
	USB    USBConfig            `mapstructure:"usb"`
	TCP    TCPConfig            `mapstructure:"tcp"`
	Serial SerialConfig         `mapstructure:"serial"`
}

// SerialConfig represents serial connection configuration
type SerialConfig struct {
	Port     string        `mapstructure:"port" json:"port"`
	BaudRate int           `mapstructure:"baud_rate" json:"baud_rate"`
	DataBits int           `mapstructure:"data_bits" json:"data_bits"`
	StopBits int           `mapstructure:"stop_bits" json:"stop_bits"`
	Parity   string        `mapstructure:"parity" json:"parity"`
	Timeout  time.Duration `mapstructure:"timeout" json:"timeout"`
}

// USBConfig represents USB connection configuration. Empty IDs select the
// first device exposing a printer class interface.
type USBConfig struct {
	VendorID  string        `mapstructure:"vendor_id" json:"vendor_id"`
	ProductID string        `mapstructure:"product_id" json:"product_id"`
	Endpoint  int           `mapstructure:"endpoint" json:"endpoint"`
	Timeout   time.Duration `mapstructure:"timeout" json:"timeout"`
}

// TCPConfig represents TCP connection configuration
type TCPConfig struct {
	Host         string        `mapstructure:"host" json:"host"`
	Port         int           `mapstructure:"port" json:"port"`
	KeepAlive    bool          `mapstructure:"keep_alive" json:"keep_alive"`
	Timeout      time.Duration `mapstructure:"timeout" json:"timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" json:"write_timeout"`
}
