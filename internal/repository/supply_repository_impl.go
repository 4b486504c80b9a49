package repository

import (
	"context"
	"errors"
	"time"

	"medconnect/internal/domain/entity"
	domainRepo "medconnect/internal/domain/repository"
	"medconnect/internal/infrastructure/docstore"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const suppliesCollection = "supplies"

// supplyDoc is the stored shape; money is kept as a decimal string.
type supplyDoc struct {
	Name        string     `firestore:"name"`
	Category    string     `firestore:"category"`
	Quantity    int        `firestore:"quantity"`
	MinQuantity int        `firestore:"min_quantity"`
	Unit        string     `firestore:"unit"`
	UnitCost    string     `firestore:"unit_cost"`
	Supplier    string     `firestore:"supplier"`
	ExpiryDate  *time.Time `firestore:"expiry_date"`
	Location    string     `firestore:"location"`
	CreatedAt   time.Time  `firestore:"created_at"`
	UpdatedAt   time.Time  `firestore:"updated_at"`
}

func newSupplyDoc(s *entity.Supply) supplyDoc {
	return supplyDoc{
		Name:        s.Name,
		Category:    s.Category,
		Quantity:    s.Quantity,
		MinQuantity: s.MinQuantity,
		Unit:        s.Unit,
		UnitCost:    s.UnitCost.String(),
		Supplier:    s.Supplier,
		ExpiryDate:  s.ExpiryDate,
		Location:    s.Location,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (d supplyDoc) toEntity(id string) (entity.Supply, error) {
	cost := decimal.Zero
	if d.UnitCost != "" {
		var err error
		if cost, err = decimal.NewFromString(d.UnitCost); err != nil {
			return entity.Supply{}, err
		}
	}
	return entity.Supply{
		ID:          id,
		Name:        d.Name,
		Category:    d.Category,
		Quantity:    d.Quantity,
		MinQuantity: d.MinQuantity,
		Unit:        d.Unit,
		UnitCost:    cost,
		Supplier:    d.Supplier,
		ExpiryDate:  d.ExpiryDate,
		Location:    d.Location,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

func decodeSupply(snap *firestore.DocumentSnapshot) (entity.Supply, error) {
	var doc supplyDoc
	if err := snap.DataTo(&doc); err != nil {
		return entity.Supply{}, err
	}
	return doc.toEntity(snap.Ref.ID)
}

type supplyRepository struct {
	client *firestore.Client
	log    *logrus.Logger
}

func NewSupplyRepository(client *firestore.Client, log *logrus.Logger) domainRepo.SupplyRepository {
	return &supplyRepository{client: client, log: log}
}

func (r *supplyRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(suppliesCollection)
}

func (r *supplyRepository) Create(ctx context.Context, supply *entity.Supply) error {
	ref := r.collection().NewDoc()
	now := time.Now().UTC()
	supply.ID = ref.ID
	supply.CreatedAt = now
	supply.UpdatedAt = now

	_, err := ref.Create(ctx, newSupplyDoc(supply))
	return err
}

func (r *supplyRepository) FindByID(ctx context.Context, id string) (*entity.Supply, error) {
	snap, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	supply, err := decodeSupply(snap)
	if err != nil {
		return nil, err
	}
	return &supply, nil
}

// FindAll orders by name. The low-stock filter compares two fields, which the
// store cannot express, so it is applied after the query.
func (r *supplyRepository) FindAll(ctx context.Context, filter *entity.SupplyFilter) ([]entity.Supply, error) {
	query := r.collection().Query
	if filter != nil && filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}

	ordered := func(ctx context.Context) ([]entity.Supply, error) {
		return docstore.Collect(query.OrderBy("name", firestore.Asc).Documents(ctx), decodeSupply)
	}
	unordered := func(ctx context.Context) ([]entity.Supply, error) {
		return docstore.Collect(query.Documents(ctx), decodeSupply)
	}

	supplies, err := docstore.QueryWithFallback(ctx, r.log, suppliesCollection, ordered, unordered,
		func(a, b entity.Supply) bool { return a.Name < b.Name })
	if err != nil {
		return nil, err
	}

	if filter == nil || !filter.LowStock {
		return supplies, nil
	}
	low := make([]entity.Supply, 0, len(supplies))
	for _, s := range supplies {
		if s.IsLowStock() {
			low = append(low, s)
		}
	}
	return low, nil
}

func (r *supplyRepository) Update(ctx context.Context, supply *entity.Supply) error {
	supply.UpdatedAt = time.Now().UTC()
	_, err := r.collection().Doc(supply.ID).Set(ctx, newSupplyDoc(supply))
	return err
}

// AdjustQuantity reads and writes inside one transaction so concurrent
// adjustments never lose an update. A missing supply yields (nil, nil).
func (r *supplyRepository) AdjustQuantity(ctx context.Context, id string, delta int) (*entity.Supply, error) {
	ref := r.collection().Doc(id)
	var updated *entity.Supply

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		supply, err := decodeSupply(snap)
		if err != nil {
			return err
		}

		supply.Quantity += delta
		if supply.Quantity < 0 {
			return entity.ErrInsufficientStock
		}
		supply.UpdatedAt = time.Now().UTC()

		updated = &supply
		return tx.Update(ref, []firestore.Update{
			{Path: "quantity", Value: supply.Quantity},
			{Path: "updated_at", Value: supply.UpdatedAt},
		})
	})
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, nil
		}
		if errors.Is(err, entity.ErrInsufficientStock) {
			return nil, entity.ErrInsufficientStock
		}
		return nil, err
	}
	return updated, nil
}

func (r *supplyRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection().Doc(id).Delete(ctx)
	return err
}
