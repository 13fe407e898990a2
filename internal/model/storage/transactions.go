package storage

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/luissevero/ignitegofinances/internal/customerr"
	"github.com/luissevero/ignitegofinances/internal/entity/transaction"
)

const userTransactionsKey = ":transactions_user:"

// TransactionStorage keeps each user's transactions as one JSON array under
// "<namespace>:transactions_user:<userID>".
type TransactionStorage struct {
	kv        KVStore
	namespace string
}

func NewTransactionStorage(kv KVStore, namespace string) *TransactionStorage {
	return &TransactionStorage{kv: kv, namespace: namespace}
}

func (s *TransactionStorage) Key(userID string) string {
	return s.namespace + userTransactionsKey + userID
}

// GetUserTransactions treats an absent key as an empty list.
func (s *TransactionStorage) GetUserTransactions(ctx context.Context, userID string) ([]transaction.Record, error) {
	raw, found, err := s.kv.Get(ctx, s.Key(userID))
	if err != nil {
		return nil, customerr.NewPersistence("get transactions", err)
	}
	if !found {
		return []transaction.Record{}, nil
	}

	records, err := decodeRecords(raw)
	if err != nil {
		return nil, customerr.NewPersistence("get transactions", err)
	}
	return records, nil
}

// AppendTransaction adds rec atomically; concurrent appends never overwrite each other.
func (s *TransactionStorage) AppendTransaction(ctx context.Context, userID string, rec transaction.Record) error {
	err := s.kv.Update(ctx, s.Key(userID), func(old string, found bool) (string, error) {
		records := []transaction.Record{}
		if found {
			var err error
			if records, err = decodeRecords(old); err != nil {
				return "", err
			}
		}
		for _, r := range records {
			if r.ID == rec.ID {
				return "", errors.Wrapf(customerr.ErrDuplicateID, "id %s", rec.ID)
			}
		}

		raw, err := json.Marshal(append(records, rec))
		if err != nil {
			return "", errors.Wrap(err, "encode transactions")
		}
		return string(raw), nil
	})
	if errors.Is(err, customerr.ErrDuplicateID) {
		return err
	}
	return customerr.NewPersistence("append transaction", err)
}

func (s *TransactionStorage) ClearUserTransactions(ctx context.Context, userID string) error {
	return customerr.NewPersistence("clear transactions", s.kv.Remove(ctx, s.Key(userID)))
}

func decodeRecords(raw string) ([]transaction.Record, error) {
	records := []transaction.Record{}
	if s := strings.TrimSpace(raw); s == "" || s == "null" {
		return records, nil
	}
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, errors.Wrap(err, "decode transactions")
	}
	return records, nil
}
