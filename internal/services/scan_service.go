package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/deploymenttheory/go-encdetect/internal/interfaces"
	"github.com/deploymenttheory/go-encdetect/internal/types"
)

// DefaultScanStride is the distance between sampled regions during a
// whole-image scan. Volume boundaries sit on sector multiples, so a
// 1 MiB stride keeps scans cheap while still landing on partition starts.
const DefaultScanStride = 1024 * 1024

// RegionResult pairs one sampled offset with its verdict.
type RegionResult struct {
	Offset int64
	Result types.DetectionResult
}

// ScanReport aggregates the verdicts of a whole-image scan. Exactly one
// entry per sampled region; unreadable regions carry their fail-open
// verdict instead of aborting the scan.
type ScanReport struct {
	ReportID       string
	ImageSize      uint64
	Stride         int64
	GeneratedAt    time.Time
	Regions        []RegionResult
	EncryptedCount int
}

// ScanService walks an image at a fixed stride and runs encryption
// detection on every region. This is the batch role the detector serves
// when the volume-system walker has failed to recognize any structure.
type ScanService struct {
	detector *DetectionService
	stride   int64
	limit    int
}

// NewScanService creates a ScanService. A non-positive stride falls back
// to DefaultScanStride. limit caps the number of sampled regions; zero
// means unlimited.
func NewScanService(detector *DetectionService, stride int64, limit int) *ScanService {
	if stride <= 0 {
		stride = DefaultScanStride
	}
	return &ScanService{
		detector: detector,
		stride:   stride,
		limit:    limit,
	}
}

// Scan samples the image at offsets 0, stride, 2*stride, ... and collects
// one verdict per region. It never fails: per-region read problems are
// already absorbed by the detector.
func (s *ScanService) Scan(image interfaces.ImageReader) *ScanReport {
	report := &ScanReport{
		ReportID:    uuid.New().String(),
		Stride:      s.stride,
		GeneratedAt: time.Now().UTC(),
	}
	if image == nil {
		return report
	}

	report.ImageSize = image.Size()
	for offset := int64(0); uint64(offset) < report.ImageSize; offset += s.stride {
		if s.limit > 0 && len(report.Regions) >= s.limit {
			break
		}
		result := s.detector.DetectEncryption(image, offset)
		if result.IsEncrypted {
			report.EncryptedCount++
		}
		report.Regions = append(report.Regions, RegionResult{Offset: offset, Result: result})
	}
	return report
}
