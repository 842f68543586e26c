// internal/protocol/protocol.go
package protocol

import (
	"context"
	"sync"
	"time"

	"receipt-service/internal/model"
)

// DeviceProtocol is a write-oriented byte pipe to a printer
type DeviceProtocol interface {
	// Connection lifecycle
	Open(ctx context.Context) error
	Close() error
	IsOpen() bool

	// Data communication
	Write(ctx context.Context, data []byte) error

	// Protocol information
	GetProtocolType() model.ConnectionType
	Stats() ProtocolStats
}

// ProtocolStats provides protocol-level statistics for one connection
type ProtocolStats struct {
	BytesWritten int64     `json:"bytes_written"`
	WriteCount   int64     `json:"write_count"`
	ErrorCount   int64     `json:"error_count"`
	LastActivity time.Time `json:"last_activity"`
	IsConnected  bool      `json:"is_connected"`
}

// statsRecorder is embedded by every connection
type statsRecorder struct {
	mu    sync.Mutex
	stats ProtocolStats
}

func (s *statsRecorder) recordWrite(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.BytesWritten += int64(n)
	s.stats.WriteCount++
	s.stats.LastActivity = time.Now()
}

func (s *statsRecorder) recordError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.ErrorCount++
}

func (s *statsRecorder) setConnected(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.IsConnected = v
	if v {
		s.stats.LastActivity = time.Now()
	}
}

// Stats returns a snapshot of the connection statistics
func (s *statsRecorder) Stats() ProtocolStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
