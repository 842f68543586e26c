// internal/service/printer_service.go
package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"receipt-service/internal/config"
	"receipt-service/internal/driver/escpos"
	ierr "receipt-service/internal/errors"
	"receipt-service/internal/model"
	"receipt-service/internal/protocol"
	"receipt-service/internal/render"
	"receipt-service/internal/utils"
	"receipt-service/pkg/driver"
)

const (
	printSuccessMessage  = "Receipt printed successfully"
	drawerSuccessMessage = "Cash drawer opened successfully"
)

// DeviceFactory creates an unopened connection to the printer
type DeviceFactory func() (protocol.DeviceProtocol, error)

// PrinterService renders receipts and sends them to the configured printer.
// Calls are independent; concurrent prints to one device are not serialized.
type PrinterService struct {
	renderer  *render.Renderer
	newDevice DeviceFactory
	config    *config.Config
	previews  *cache.Cache
	events    driver.EventHandler
	logger    *utils.ServiceLogger
	now       func() time.Time
}

var _ driver.ReceiptPrinter = (*PrinterService)(nil)

// NewPrinterService creates a new printer service instance
func NewPrinterService(
	renderer *render.Renderer,
	newDevice DeviceFactory,
	config *config.Config,
	events driver.EventHandler,
	logger *zap.Logger,
) *PrinterService {
	var previews *cache.Cache
	if ttl := config.Printer.PreviewCacheTTL; ttl > 0 {
		previews = cache.New(ttl, 2*ttl)
	}

	return &PrinterService{
		renderer:  renderer,
		newDevice: newDevice,
		config:    config,
		previews:  previews,
		events:    events,
		logger:    utils.NewServiceLogger(logger, "printer-service"),
		now:       time.Now,
	}
}

// ConfiguredDevice returns a DeviceFactory for the configured connection
func ConfiguredDevice(cfg protocol.Config, logger *zap.Logger) DeviceFactory {
	return func() (protocol.DeviceProtocol, error) {
		return protocol.CreateProtocol(cfg, logger)
	}
}

// GetImage renders data to PNG bytes without touching the printer
func (s *PrinterService) GetImage(data *model.ReceiptData) ([]byte, error) {
	return s.renderer.RenderPNG(data)
}

// Preview is GetImage with results cached by content
func (s *PrinterService) Preview(data *model.ReceiptData) ([]byte, error) {
	if s.previews == nil {
		return s.GetImage(data)
	}

	key, err := contentKey(data)
	if err != nil {
		return s.GetImage(data)
	}

	if cached, ok := s.previews.Get(key); ok {
		return cached.([]byte), nil
	}

	img, err := s.GetImage(data)
	if err != nil {
		return nil, err
	}
	s.previews.SetDefault(key, img)
	return img, nil
}

func contentKey(data *model.ReceiptData) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// Print renders data and prints it: open device, render, round trip the
// image through a temp PNG, send the raster job, close, delete the file.
func (s *PrinterService) Print(ctx context.Context, data *model.ReceiptData, options model.PrintOptions) (*model.PrintResult, error) {
	jobID := uuid.New().String()
	jl := utils.NewJobLogger(s.logger.Logger, "print", jobID)

	density := options.Density
	if density == "" {
		density = s.config.Printer.Density
	}
	if density == "" {
		density = model.DefaultDensity
	}

	jl.Start(zap.String("density", string(density)), zap.Int("items", len(data.Items)))
	s.publish(jobID, model.EventPrintStarted, "INFO", map[string]interface{}{"density": density})

	err := s.print(ctx, jl, data, density, options.OpenDrawer)
	if err != nil {
		jl.Error(err)
		s.publish(jobID, model.EventPrintFailed, "ERROR", map[string]interface{}{
			"error": err.Error(),
			"code":  ierr.Code(err),
		})
		return nil, err
	}

	jl.Success()
	s.publish(jobID, model.EventPrintCompleted, "INFO", nil)
	return &model.PrintResult{Success: true, Message: printSuccessMessage, JobID: jobID}, nil
}

func (s *PrinterService) print(ctx context.Context, jl *utils.JobLogger, data *model.ReceiptData, density model.Density, openDrawer bool) error {
	if err := density.Validate(); err != nil {
		return err
	}

	var kick []byte
	if openDrawer {
		k, err := escpos.ParseKickCode(s.config.Printer.DrawerKick)
		if err != nil {
			return err
		}
		kick = k
	}

	dir, err := s.config.Printer.ResolveTempDir()
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	dev, err := s.openDevice(ctx)
	if err != nil {
		return err
	}
	closed := false
	defer func() {
		if !closed {
			if cerr := dev.Close(); cerr != nil {
				jl.Step("close after failure", zap.Error(cerr))
			}
		}
	}()
	jl.Step("device opened")

	raster, err := s.renderer.RenderPNG(data)
	if err != nil {
		return err
	}
	jl.Step("rendered", zap.Int("png_bytes", len(raster)))

	path := filepath.Join(dir, fmt.Sprintf("receipt_%d.png", s.now().UnixMilli()))
	if err := os.WriteFile(path, raster, 0o600); err != nil {
		return ierr.WithError(err).
			WithMessage("failed to write temp image").
			Mark(ierr.ErrFilesystem)
	}
	removed := false
	defer func() {
		if !removed {
			if rerr := os.Remove(path); rerr != nil {
				jl.Step("remove after failure", zap.Error(rerr))
			}
		}
	}()

	stored, err := os.ReadFile(path)
	if err != nil {
		return ierr.WithError(err).
			WithMessage("failed to read temp image").
			Mark(ierr.ErrFilesystem)
	}
	img, err := png.Decode(bytes.NewReader(stored))
	if err != nil {
		return ierr.WithError(err).
			WithMessage("failed to decode temp image").
			Mark(ierr.ErrRender)
	}

	job, err := escpos.BuildPrintJob(img, density, kick)
	if err != nil {
		return err
	}

	if err := dev.Write(ctx, job); err != nil {
		return ierr.WithError(err).
			WithMessage("failed to send print job").
			WithHint("Check that the printer is online and has paper").
			Mark(ierr.ErrDevice)
	}
	jl.Step("job written", zap.Int("job_bytes", len(job)))

	closed = true
	if err := dev.Close(); err != nil {
		return ierr.WithError(err).
			WithMessage("failed to close printer").
			Mark(ierr.ErrDevice)
	}

	removed = true
	if err := os.Remove(path); err != nil {
		return ierr.WithError(err).
			WithMessage("failed to delete temp image").
			Mark(ierr.ErrFilesystem)
	}
	return nil
}

// OpenCashDrawer sends a drawer pulse. An empty kick code uses the configured
// pulse, or the standard one.
func (s *PrinterService) OpenCashDrawer(ctx context.Context, options model.DrawerOptions) (*model.PrintResult, error) {
	jobID := uuid.New().String()
	jl := utils.NewJobLogger(s.logger.Logger, "drawer", jobID)
	jl.Start(zap.Bool("custom_kick", options.KickCode != ""))

	err := s.openDrawer(ctx, jl, options)
	if err != nil {
		jl.Error(err)
		s.publish(jobID, model.EventDrawerFailed, "ERROR", map[string]interface{}{
			"error": err.Error(),
			"code":  ierr.Code(err),
		})
		return nil, err
	}

	jl.Success()
	s.publish(jobID, model.EventDrawerOpened, "INFO", nil)
	return &model.PrintResult{Success: true, Message: drawerSuccessMessage, JobID: jobID}, nil
}

func (s *PrinterService) openDrawer(ctx context.Context, jl *utils.JobLogger, options model.DrawerOptions) error {
	code := options.KickCode
	if code == "" {
		code = s.config.Printer.DrawerKick
	}
	kick, err := escpos.ParseKickCode(code)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	dev, err := s.openDevice(ctx)
	if err != nil {
		return err
	}

	if err := dev.Write(ctx, kick); err != nil {
		if cerr := dev.Close(); cerr != nil {
			jl.Step("close after failure", zap.Error(cerr))
		}
		return ierr.WithError(err).
			WithMessage("failed to send drawer pulse").
			Mark(ierr.ErrDevice)
	}

	if err := dev.Close(); err != nil {
		return ierr.WithError(err).
			WithMessage("failed to close printer").
			Mark(ierr.ErrDevice)
	}
	return nil
}

func (s *PrinterService) openDevice(ctx context.Context) (protocol.DeviceProtocol, error) {
	dev, err := s.newDevice()
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to create printer connection").
			Mark(ierr.ErrDevice)
	}

	dl := utils.NewDeviceLogger(s.logger.Logger, dev.GetProtocolType())
	if err := dev.Open(ctx); err != nil {
		dl.LogConnection("open", err)
		return nil, ierr.WithError(err).
			WithMessage("failed to open printer").
			WithHint("Check the printer connection and power").
			Mark(ierr.ErrDevice)
	}
	dl.LogConnection("open", nil)
	return dev, nil
}

func (s *PrinterService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if t := s.config.Device.OperationTimeout; t > 0 {
		return context.WithTimeout(ctx, t)
	}
	return ctx, func() {}
}

func (s *PrinterService) publish(jobID string, eventType model.EventType, severity string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	s.events.OnJobEvent(model.JobEvent{
		JobID:     jobID,
		EventType: eventType,
		Data:      data,
		Timestamp: s.now(),
		Severity:  severity,
	})
}
