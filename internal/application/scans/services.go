package scans

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/bryanwahyu/securewatch/internal/application"
	"github.com/bryanwahyu/securewatch/internal/domain/risk"
	domain "github.com/bryanwahyu/securewatch/internal/domain/scans"
)

// Service implements use-cases untuk Scan.
// The analyzers are pure and stateless; the repository and evidence store
// are the only collaborators that touch the outside world.
type Service struct {
	Repo     domain.Repository
	URLs     *risk.URLAnalyzer
	Media    *risk.MediaAnalyzer
	Evidence domain.EvidenceStore // optional
	Clock    application.Clock
}

//
// ==== USE CASES ====
//

type ScanURLCommand struct {
	UserID string
	URL    string
}

type ScanMediaCommand struct {
	UserID      string
	Filename    string
	Media       risk.MediaType
	FileSize    int64
	ContentType string
	Content     io.Reader // optional; stored as evidence when a store is wired
}

// ScanURL runs the phishing pipeline and persists the outcome. The
// pipeline never fails; a persistence failure is logged and absorbed so
// the caller still gets the completed analysis.
func (s *Service) ScanURL(ctx context.Context, cmd ScanURLCommand) (*domain.Scan, error) {
	analysis := s.URLs.Analyze(cmd.URL)
	scan := s.newScan(cmd.UserID, risk.TypePhishing, cmd.URL, analysis)
	s.persist(ctx, scan)
	return scan, nil
}

// ScanMedia runs the deepfake pipeline. When evidence storage is wired
// and content was provided, the upload happens first so the record can
// carry the object URL; an upload failure is absorbed the same way a
// persistence failure is.
func (s *Service) ScanMedia(ctx context.Context, cmd ScanMediaCommand) (*domain.Scan, error) {
	analysis := s.Media.Analyze(cmd.Filename, cmd.Media, cmd.FileSize)
	scan := s.newScan(cmd.UserID, risk.TypeDeepfake, cmd.Filename, analysis)

	if s.Evidence != nil && cmd.Content != nil {
		contentType := cmd.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		key := fmt.Sprintf("%s/%s/%s-%s", cmd.UserID, risk.TypeDeepfake, scan.ID, cmd.Filename)
		url, err := s.Evidence.Put(ctx, key, cmd.Content, cmd.FileSize, contentType)
		if err != nil {
			log.Printf("evidence upload failed user=%s scan=%s: %v", cmd.UserID, scan.ID, err)
		} else {
			scan.EvidenceURL = url
		}
	}

	s.persist(ctx, scan)
	return scan, nil
}

func (s *Service) newScan(userID string, t risk.ScanType, input string, a risk.Analysis) *domain.Scan {
	id := fmt.Sprintf("%s-%s", uuid.New().String(), t)
	return &domain.Scan{
		ID:        domain.ScanID(id),
		UserID:    userID,
		Type:      t,
		Input:     input,
		RiskScore: a.Score,
		RiskLevel: a.Level,
		Verdict:   a.Verdict,
		Details:   a.Details,
		CreatedAt: s.Clock.Now(),
	}
}

// persist degrades to a logged no-op on write failure; the record store
// is a thin collaborator and must not fail a completed scan.
func (s *Service) persist(ctx context.Context, scan *domain.Scan) {
	if err := s.Repo.Save(ctx, scan); err != nil {
		log.Printf("scan save failed user=%s scan=%s: %v", scan.UserID, scan.ID, err)
	}
}

// Latest ambil N scan terakhir; degrades to empty on read failure.
func (s *Service) Latest(ctx context.Context, userID string, limit int) []*domain.Scan {
	list, err := s.Repo.Latest(ctx, userID, limit)
	if err != nil {
		log.Printf("scan history read failed user=%s: %v", userID, err)
		return nil
	}
	return list
}

// History returns a filtered page of the user's scans.
func (s *Service) History(ctx context.Context, userID string, page, pageSize int, filters map[string]interface{}) (domain.PaginatedResult, error) {
	return s.Repo.Paginate(ctx, userID, page, pageSize, filters)
}

// Get ambil 1 scan by id
func (s *Service) Get(ctx context.Context, userID string, id domain.ScanID) (*domain.Scan, error) {
	return s.Repo.Get(ctx, userID, id)
}

// Delete removes one record owned by the user.
func (s *Service) Delete(ctx context.Context, userID string, id domain.ScanID) error {
	return s.Repo.Delete(ctx, userID, id)
}

// ClearHistory wipes the user's partition.
func (s *Service) ClearHistory(ctx context.Context, userID string) error {
	return s.Repo.DeleteAll(ctx, userID)
}

// Stats recomputes the dashboard aggregate from the full collection;
// degrades to zeroes on read failure.
func (s *Service) Stats(ctx context.Context, userID string) domain.Stats {
	list, err := s.Repo.All(ctx, userID)
	if err != nil {
		log.Printf("stats read failed user=%s: %v", userID, err)
		return domain.Stats{}
	}
	return domain.CalculateStats(list)
}

// ExportCSV streams the user's full history in the dashboard's export
// format, most recent first.
func (s *Service) ExportCSV(ctx context.Context, userID string, w io.Writer) error {
	list, err := s.Repo.All(ctx, userID)
	if err != nil {
		return err
	}
	return domain.WriteCSV(w, list)
}
