package usecase

import (
	"context"
	"errors"

	"medconnect/internal/converter"
	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
	"medconnect/internal/domain/repository"
	"medconnect/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrSupplyNotFound    = errors.New("supply not found")
	ErrInsufficientStock = entity.ErrInsufficientStock
	ErrZeroDelta         = errors.New("delta must not be zero")
)

type SupplyUsecase interface {
	List(ctx context.Context, category string) ([]dto.SupplyResponse, error)
	LowStock(ctx context.Context) ([]dto.SupplyResponse, error)
	Get(ctx context.Context, id string) (*dto.SupplyResponse, error)
	Create(ctx context.Context, req *dto.SupplyRequest) (*dto.SupplyResponse, error)
	Update(ctx context.Context, id string, req *dto.SupplyRequest) (*dto.SupplyResponse, error)
	AdjustQuantity(ctx context.Context, id string, delta int) (*dto.SupplyResponse, error)
	Delete(ctx context.Context, id string) error
}

type supplyUsecase struct {
	log        *logrus.Logger
	supplyRepo repository.SupplyRepository
	statsCache service.StatsCache
}

func NewSupplyUsecase(log *logrus.Logger, supplyRepo repository.SupplyRepository, statsCache service.StatsCache) SupplyUsecase {
	return &supplyUsecase{
		log:        log,
		supplyRepo: supplyRepo,
		statsCache: statsCache,
	}
}

func (u *supplyUsecase) List(ctx context.Context, category string) ([]dto.SupplyResponse, error) {
	supplies, err := u.supplyRepo.FindAll(ctx, &entity.SupplyFilter{Category: category})
	if err != nil {
		u.log.Warnf("Failed to list supplies: %+v", err)
		return nil, err
	}
	return converter.SuppliesToResponses(supplies), nil
}

func (u *supplyUsecase) LowStock(ctx context.Context) ([]dto.SupplyResponse, error) {
	supplies, err := u.supplyRepo.FindAll(ctx, &entity.SupplyFilter{LowStock: true})
	if err != nil {
		u.log.Warnf("Failed to list low stock supplies: %+v", err)
		return nil, err
	}
	return converter.SuppliesToResponses(supplies), nil
}

func (u *supplyUsecase) Get(ctx context.Context, id string) (*dto.SupplyResponse, error) {
	supply, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.SupplyToResponse(supply), nil
}

func (u *supplyUsecase) Create(ctx context.Context, req *dto.SupplyRequest) (*dto.SupplyResponse, error) {
	supply := &entity.Supply{}
	if err := applySupplyRequest(supply, req); err != nil {
		return nil, err
	}

	if err := u.supplyRepo.Create(ctx, supply); err != nil {
		u.log.Warnf("Failed to create supply: %+v", err)
		return nil, err
	}
	u.invalidateStats(ctx)
	return converter.SupplyToResponse(supply), nil
}

func (u *supplyUsecase) Update(ctx context.Context, id string, req *dto.SupplyRequest) (*dto.SupplyResponse, error) {
	supply, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applySupplyRequest(supply, req); err != nil {
		return nil, err
	}

	if err := u.supplyRepo.Update(ctx, supply); err != nil {
		u.log.Warnf("Failed to update supply %s: %+v", id, err)
		return nil, err
	}
	u.invalidateStats(ctx)
	return converter.SupplyToResponse(supply), nil
}

// AdjustQuantity applies a signed stock movement. Going below zero is refused.
func (u *supplyUsecase) AdjustQuantity(ctx context.Context, id string, delta int) (*dto.SupplyResponse, error) {
	if delta == 0 {
		return nil, ErrZeroDelta
	}

	supply, err := u.supplyRepo.AdjustQuantity(ctx, id, delta)
	if err != nil {
		if errors.Is(err, entity.ErrInsufficientStock) {
			return nil, ErrInsufficientStock
		}
		u.log.Warnf("Failed to adjust supply %s: %+v", id, err)
		return nil, err
	}
	if supply == nil {
		return nil, ErrSupplyNotFound
	}

	if supply.IsLowStock() {
		u.log.Infof("Supply low on stock: id=%s, name=%s, quantity=%d, min=%d", supply.ID, supply.Name, supply.Quantity, supply.MinQuantity)
	}
	u.invalidateStats(ctx)
	return converter.SupplyToResponse(supply), nil
}

func (u *supplyUsecase) Delete(ctx context.Context, id string) error {
	if _, err := u.find(ctx, id); err != nil {
		return err
	}
	if err := u.supplyRepo.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete supply %s: %+v", id, err)
		return err
	}
	u.invalidateStats(ctx)
	return nil
}

func (u *supplyUsecase) find(ctx context.Context, id string) (*entity.Supply, error) {
	supply, err := u.supplyRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find supply %s: %+v", id, err)
		return nil, err
	}
	if supply == nil {
		return nil, ErrSupplyNotFound
	}
	return supply, nil
}

// invalidateStats drops the caller's cached dashboard, which carries the
// low-stock count for admins.
func (u *supplyUsecase) invalidateStats(ctx context.Context) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return
	}
	if err := u.statsCache.Invalidate(ctx, a.ID); err != nil {
		u.log.Warnf("Failed to invalidate dashboard stats: %+v", err)
	}
}

func applySupplyRequest(s *entity.Supply, req *dto.SupplyRequest) error {
	if req.UnitCost.IsNegative() {
		return ErrInvalidAmount
	}
	expiry, err := parseOptionalDate(req.ExpiryDate)
	if err != nil {
		return err
	}

	s.Name = req.Name
	s.Category = req.Category
	s.Quantity = req.Quantity
	s.MinQuantity = req.MinQuantity
	s.Unit = req.Unit
	s.UnitCost = req.UnitCost
	s.Supplier = req.Supplier
	s.ExpiryDate = expiry
	s.Location = req.Location
	return nil
}
