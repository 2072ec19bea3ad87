package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/ErlanBelekov/bookstore-catalog/internal/domain"
	"github.com/hashicorp/go-memdb"
)

type SellerRepository struct {
	store *Store
}

func (r *SellerRepository) Create(_ context.Context, s *domain.Seller) (*domain.Seller, error) {
	var created *domain.Seller
	err := r.store.write(func(txn *memdb.Txn) error {
		if err := ensureEmailFree(txn, s.Email, 0); err != nil {
			return err
		}

		rec := *s
		rec.ID = r.store.seq.sellers.Add(1)
		if err := txn.Insert(tableSellers, &rec); err != nil {
			return fmt.Errorf("insert seller: %w", err)
		}
		created = cloneSeller(&rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetForUpdate reads through a write transaction. memdb admits one writer at
// a time, so inside InTx the seller cannot gain books until the commit.
func (r *SellerRepository) GetForUpdate(_ context.Context, id int64) (*domain.Seller, error) {
	var found *domain.Seller
	err := r.store.write(func(txn *memdb.Txn) error {
		s, err := sellerByID(txn, id)
		if err != nil {
			return err
		}
		found = cloneSeller(s)
		return nil
	})
	return found, err
}

func (r *SellerRepository) GetByID(_ context.Context, id int64) (*domain.Seller, error) {
	var found *domain.Seller
	err := r.store.read(func(txn *memdb.Txn) error {
		s, err := sellerByID(txn, id)
		if err != nil {
			return err
		}
		found = cloneSeller(s)
		return nil
	})
	return found, err
}

func (r *SellerRepository) FindByEmail(_ context.Context, email string) (*domain.Seller, error) {
	var found *domain.Seller
	err := r.store.read(func(txn *memdb.Txn) error {
		obj, err := txn.First(tableSellers, "email", email)
		if err != nil {
			return fmt.Errorf("find seller by email: %w", err)
		}
		if obj == nil {
			return domain.ErrSellerNotFound
		}
		found = cloneSeller(obj.(*domain.Seller))
		return nil
	})
	return found, err
}

func (r *SellerRepository) List(_ context.Context) ([]*domain.Seller, error) {
	var sellers []*domain.Seller
	err := r.store.read(func(txn *memdb.Txn) error {
		it, err := txn.Get(tableSellers, "id")
		if err != nil {
			return fmt.Errorf("list sellers: %w", err)
		}
		for obj := it.Next(); obj != nil; obj = it.Next() {
			sellers = append(sellers, cloneSeller(obj.(*domain.Seller)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(sellers, func(i, j int) bool { return sellers[i].ID < sellers[j].ID })
	return sellers, nil
}

func (r *SellerRepository) UpdateProfile(_ context.Context, id int64, p domain.SellerProfile) (*domain.Seller, error) {
	var updated *domain.Seller
	err := r.store.write(func(txn *memdb.Txn) error {
		existing, err := sellerByID(txn, id)
		if err != nil {
			return err
		}
		if err := ensureEmailFree(txn, p.Email, id); err != nil {
			return err
		}

		rec := *existing
		rec.FirstName = p.FirstName
		rec.LastName = p.LastName
		rec.Email = p.Email
		if err := txn.Insert(tableSellers, &rec); err != nil {
			return fmt.Errorf("update seller: %w", err)
		}
		updated = cloneSeller(&rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *SellerRepository) Delete(_ context.Context, id int64) error {
	return r.store.write(func(txn *memdb.Txn) error {
		existing, err := sellerByID(txn, id)
		if err != nil {
			return err
		}

		owned, err := txn.First(tableBooks, "seller_id", id)
		if err != nil {
			return fmt.Errorf("check seller books: %w", err)
		}
		if owned != nil {
			return domain.ErrSellerHasBooks
		}

		if err := txn.Delete(tableSellers, existing); err != nil {
			return fmt.Errorf("delete seller: %w", err)
		}
		return nil
	})
}

func (r *SellerRepository) Count(_ context.Context) (int, error) {
	var n int
	err := r.store.read(func(txn *memdb.Txn) error {
		var err error
		n, err = count(txn, tableSellers)
		return err
	})
	return n, err
}

func sellerByID(txn *memdb.Txn, id int64) (*domain.Seller, error) {
	obj, err := txn.First(tableSellers, "id", id)
	if err != nil {
		return nil, fmt.Errorf("get seller: %w", err)
	}
	if obj == nil {
		return nil, domain.ErrSellerNotFound
	}
	return obj.(*domain.Seller), nil
}

// ensureEmailFree stands in for the unique index; memdb does not reject
// duplicate values on secondary indexes.
func ensureEmailFree(txn *memdb.Txn, email string, selfID int64) error {
	obj, err := txn.First(tableSellers, "email", email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if obj != nil && obj.(*domain.Seller).ID != selfID {
		return domain.ErrEmailTaken
	}
	return nil
}

func cloneSeller(s *domain.Seller) *domain.Seller {
	c := *s
	return &c
}
