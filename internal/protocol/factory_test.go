package protocol

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/google/gousb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
	"go.uber.org/zap"

	ierr "receipt-service/internal/errors"
	"receipt-service/internal/model"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"tcp", Config{Type: model.ConnectionTypeTCP, TCP: TCPConfig{Host: "10.0.0.5"}}, false},
		{"tcp without host", Config{Type: model.ConnectionTypeTCP}, true},
		{"tcp bad port", Config{Type: model.ConnectionTypeTCP, TCP: TCPConfig{Host: "h", Port: 70000}}, true},
		{"usb auto", Config{Type: model.ConnectionTypeUSB}, false},
		{"usb ids", Config{Type: model.ConnectionTypeUSB, USB: USBConfig{VendorID: "0x04b8", ProductID: "0e15"}}, false},
		{"usb vendor only", Config{Type: model.ConnectionTypeUSB, USB: USBConfig{VendorID: "04b8"}}, true},
		{"usb bad id", Config{Type: model.ConnectionTypeUSB, USB: USBConfig{VendorID: "zz", ProductID: "0e15"}}, true},
		{"serial", Config{Type: model.ConnectionTypeSerial, Serial: SerialConfig{Port: "/dev/ttyUSB0", BaudRate: 19200}}, false},
		{"serial without port", Config{Type: model.ConnectionTypeSerial}, true},
		{"serial bad baud", Config{Type: model.ConnectionTypeSerial, Serial: SerialConfig{Port: "COM3", BaudRate: 1234}}, true},
		{"serial bad stop bits", Config{Type: model.ConnectionTypeSerial, Serial: SerialConfig{Port: "COM3", StopBits: 3}}, true},
		{"unknown type", Config{Type: "BLUETOOTH"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCreateProtocolDefaults(t *testing.T) {
	logger := zap.NewNop()

	p, err := CreateProtocol(Config{Type: model.ConnectionTypeTCP, TCP: TCPConfig{Host: "printer.local"}}, logger)
	require.NoError(t, err)
	tcp := p.(*TCPConnection)
	assert.Equal(t, 9100, tcp.config.Port)
	assert.Equal(t, model.ConnectionTypeTCP, p.GetProtocolType())
	assert.False(t, p.IsOpen())

	p, err = CreateProtocol(Config{Type: model.ConnectionTypeSerial, Serial: SerialConfig{Port: "/dev/ttyS0"}}, logger)
	require.NoError(t, err)
	sc := p.(*SerialConnection)
	assert.Equal(t, 9600, sc.config.BaudRate)
	assert.Equal(t, 8, sc.config.DataBits)
	assert.Equal(t, "none", sc.config.Parity)

	p, err = CreateProtocol(Config{Type: model.ConnectionTypeUSB}, logger)
	require.NoError(t, err)
	assert.Equal(t, model.ConnectionTypeUSB, p.GetProtocolType())
}

func TestSerialMode(t *testing.T) {
	mode := serialMode(&SerialConfig{BaudRate: 9600, DataBits: 8, StopBits: 1, Parity: "none"})
	assert.Equal(t, serial.OneStopBit, mode.StopBits)
	assert.Equal(t, serial.NoParity, mode.Parity)

	mode = serialMode(&SerialConfig{BaudRate: 115200, DataBits: 7, StopBits: 2, Parity: "even"})
	assert.Equal(t, serial.TwoStopBits, mode.StopBits)
	assert.Equal(t, serial.EvenParity, mode.Parity)
	assert.Equal(t, 115200, mode.BaudRate)
}

func TestParseHexID(t *testing.T) {
	id, err := parseHexID("0x04B8")
	require.NoError(t, err)
	assert.Equal(t, gousb.ID(0x04b8), id)

	id, err = parseHexID("0e15")
	require.NoError(t, err)
	assert.Equal(t, gousb.ID(0x0e15), id)

	_, err = parseHexID("12345")
	assert.Error(t, err)
}

func TestPrinterTarget(t *testing.T) {
	desc := &gousb.DeviceDesc{
		Configs: map[int]gousb.ConfigDesc{
			1: {
				Number: 1,
				Interfaces: []gousb.InterfaceDesc{
					{
						Number: 0,
						AltSettings: []gousb.InterfaceSetting{{
							Number: 0,
							Class:  gousb.ClassVendorSpec,
							Endpoints: map[gousb.EndpointAddress]gousb.EndpointDesc{
								0x01: {Address: 0x01, Number: 1, Direction: gousb.EndpointDirectionOut, TransferType: gousb.TransferTypeBulk},
							},
						}},
					},
					{
						Number: 1,
						AltSettings: []gousb.InterfaceSetting{{
							Number:    1,
							Alternate: 0,
							Class:     gousb.ClassPrinter,
							Endpoints: map[gousb.EndpointAddress]gousb.EndpointDesc{
								0x82: {Address: 0x82, Number: 2, Direction: gousb.EndpointDirectionIn, TransferType: gousb.TransferTypeBulk},
								0x03: {Address: 0x03, Number: 3, Direction: gousb.EndpointDirectionOut, TransferType: gousb.TransferTypeBulk},
							},
						}},
					},
				},
			},
		},
	}

	target, ok := printerTarget(desc, false, 0)
	require.True(t, ok)
	assert.Equal(t, usbTarget{config: 1, intf: 1, alt: 0, endpoint: 3}, target)

	// explicit IDs accept any interface class
	target, ok = printerTarget(desc, true, 0)
	require.True(t, ok)
	assert.Equal(t, 0, target.intf)

	_, ok = printerTarget(desc, false, 5)
	assert.False(t, ok)
}

func TestTCPConnectionWrite(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	addr := ln.Addr().(*net.TCPAddr)
	p, err := CreateProtocol(Config{
		Type: model.ConnectionTypeTCP,
		TCP:  TCPConfig{Host: "127.0.0.1", Port: addr.Port},
	}, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	require.Error(t, p.Write(ctx, []byte{0x1B, 0x40}), "write before open")

	require.NoError(t, p.Open(ctx))
	assert.True(t, p.IsOpen())
	require.NoError(t, p.Write(ctx, []byte{0x1B, 0x40, 0x0A}))
	require.NoError(t, p.Close())
	assert.False(t, p.IsOpen())

	select {
	case data := <-received:
		assert.Equal(t, []byte{0x1B, 0x40, 0x0A}, data)
	case <-time.After(5 * time.Second):
		t.Fatal("printer did not receive data")
	}

	stats := p.Stats()
	assert.Equal(t, int64(3), stats.BytesWritten)
	assert.Equal(t, int64(1), stats.WriteCount)
	assert.False(t, stats.IsConnected)
}

func TestTCPConnectionOpenFails(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	p, err := CreateProtocol(Config{
		Type: model.ConnectionTypeTCP,
		TCP:  TCPConfig{Host: "127.0.0.1", Port: port, Timeout: time.Second},
	}, zap.NewNop())
	require.NoError(t, err)

	assert.Error(t, p.Open(context.Background()))
	assert.Equal(t, int64(1), p.Stats().ErrorCount)
}
