package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"callcenter/internal/models"
	"callcenter/internal/repositories"
)

var (
	ErrRetailerExists  = errors.New("retailer already exists")
	ErrInvalidRetailer = errors.New("invalid retailer")
)

type RetailerService struct {
	Repo repositories.RetailerRepository
	now  func() time.Time
}

func NewRetailerService(repo repositories.RetailerRepository) *RetailerService {
	return &RetailerService{Repo: repo, now: time.Now}
}

func (s *RetailerService) Create(ctx context.Context, r *models.Retailer) error {
	r.RetailerID = strings.TrimSpace(r.RetailerID)
	if r.RetailerID == "" {
		return fmt.Errorf("%w: retailer_id is required", ErrInvalidRetailer)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRetailer)
	}
	existing, err := s.Repo.GetByRetailerID(ctx, r.RetailerID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrRetailerExists
	}

	if r.AccountStatus == "" {
		r.AccountStatus = models.AccountActive
	}
	if r.CashInMode == "" {
		r.CashInMode = models.CashInEnabled
	}
	if r.DeviceModel == "" {
		r.DeviceModel = models.DeviceApp
	}
	if r.WalletStatus == "" {
		r.WalletStatus = models.WalletActive
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	return s.Repo.Create(ctx, r)
}

// Get looks a retailer up in the directory; nil means no such retailer.
func (s *RetailerService) Get(ctx context.Context, retailerID string) (*models.Retailer, error) {
	return s.Repo.GetByRetailerID(ctx, strings.TrimSpace(retailerID))
}

// Search filters by name or retailer id and orders per q.Sort
// (balance_desc when unset).
func (s *RetailerService) Search(ctx context.Context, q models.RetailerQuery) ([]models.Retailer, error) {
	all, err := s.Repo.List(ctx, q.AgentID)
	if err != nil {
		return nil, err
	}
	sortBy := q.Sort
	if sortBy == "" {
		sortBy = models.SortBalanceDesc
	}
	return SortRetailers(MatchRetailers(all, q.Term), sortBy), nil
}

// LogCall stamps the retailer's last call date.
func (s *RetailerService) LogCall(ctx context.Context, retailerID string) (*models.Retailer, error) {
	r, err := s.Get(ctx, retailerID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrRetailerNotFound
	}
	now := s.now()
	if err := s.Repo.UpdateLastCallDate(ctx, r.RetailerID, now); err != nil {
		return nil, err
	}
	r.LastCallDate = &now
	return r, nil
}
