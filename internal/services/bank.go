package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/WingTeck/golub-banka/internal/ledger"
	"github.com/WingTeck/golub-banka/internal/logger"
	"github.com/WingTeck/golub-banka/internal/models"
)

// PigeonWriter persists committed ledger state. Called strictly after the
// in-memory commit; a write failure is logged, never unwound.
type PigeonWriter interface {
	SaveAccount(ctx context.Context, p models.Pigeon) error                          // Upserts an account row
	SaveTransaction(ctx context.Context, accountID string, t models.Transaction) error // Appends a history row
	SaveSequence(ctx context.Context, seq int64) error                               // Stores the id sequence counter
}

// SnapshotCache caches account snapshots for the read path.
type SnapshotCache interface {
	Get(ctx context.Context, accountID string) (*models.Pigeon, error) // Returns nil on a miss
	Set(ctx context.Context, p models.Pigeon) error                    // Stores a snapshot
	Delete(ctx context.Context, accountID string) error                // Invalidates a snapshot
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// BankService drives the account directory and ledger engine, and handles the
// post-commit plumbing: durable writes, cache refresh, and event publication.
type BankService struct {
	dir         *ledger.Directory
	engine      *ledger.Engine
	writer      PigeonWriter
	cache       SnapshotCache
	kafkaWriter KafkaWriter
}

// NewBankService creates a new BankService. writer, cache, and kafkaWriter
// may be nil; the ledger then runs purely in memory.
func NewBankService(
	dir *ledger.Directory,
	engine *ledger.Engine,
	writer PigeonWriter,
	cache SnapshotCache,
	kafkaWriter KafkaWriter,
) *BankService {
	return &BankService{
		dir:         dir,
		engine:      engine,
		writer:      writer,
		cache:       cache,
		kafkaWriter: kafkaWriter,
	}
}

// publishTransaction publishes a committed ledger entry to Kafka.
func (s *BankService) publishTransaction(ctx context.Context, accountID string, t models.Transaction) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "account_id", accountID)
		return
	}

	event := models.TransactionEvent{
		EventID:      uuid.NewString(),
		AccountID:    accountID,
		Timestamp:    t.Timestamp.Unix(),
		Type:         t.Type,
		Amount:       t.Amount,
		Counterparty: t.Counterparty,
		BalanceAfter: t.BalanceAfter,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal transaction event", "account_id", accountID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(accountID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish transaction event", "account_id", accountID, "error", err)
	} else {
		logger.Log.Infow("Transaction event published", "account_id", accountID, "type", t.Type, "amount", t.Amount)
	}
}

// afterCommit runs the post-commit plumbing for one mutated account: durable
// write, cache invalidation, event publication. The snapshot is dropped from
// the cache rather than rewritten; the read path fills it back in. The ledger
// has already committed, so failures here are logged and swallowed.
func (s *BankService) afterCommit(ctx context.Context, p models.Pigeon) {
	if s.writer != nil {
		if err := s.writer.SaveAccount(ctx, p); err != nil {
			logger.Log.Errorw("failed to persist account", "account_id", p.ID, "error", err)
		}
		if n := len(p.Transactions); n > 0 {
			if err := s.writer.SaveTransaction(ctx, p.ID, p.Transactions[n-1]); err != nil {
				logger.Log.Errorw("failed to persist transaction", "account_id", p.ID, "error", err)
			}
		}
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, p.ID); err != nil {
			logger.Log.Errorw("failed to invalidate snapshot cache", "account_id", p.ID, "error", err)
		}
	}

	if n := len(p.Transactions); n > 0 {
		s.publishTransaction(ctx, p.ID, p.Transactions[n-1])
	}
}

// CreateAccount registers a new pigeon account for an owner.
func (s *BankService) CreateAccount(ctx context.Context, owner, name string) (models.Pigeon, error) {
	p, err := s.dir.CreateAccount(owner, name)
	if err != nil {
		logger.Log.Errorw("failed to create account", "owner", owner, "error", err)
		return models.Pigeon{}, err
	}

	if s.writer != nil {
		if err := s.writer.SaveAccount(ctx, p); err != nil {
			logger.Log.Errorw("failed to persist new account", "account_id", p.ID, "error", err)
		}
		if err := s.writer.SaveSequence(ctx, s.dir.Sequence()); err != nil {
			logger.Log.Errorw("failed to persist sequence counter", "error", err)
		}
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, p); err != nil {
			logger.Log.Errorw("failed to cache new account", "account_id", p.ID, "error", err)
		}
	}

	logger.Log.Infow("account created", "account_id", p.ID, "card_number", p.CardNumber, "owner", owner)
	return p, nil
}

// GetAccount resolves any reference shape to an account snapshot, consulting
// the cache for id-keyed lookups.
func (s *BankService) GetAccount(ctx context.Context, reference string) (models.Pigeon, error) {
	ref := ledger.ParseReference(reference)

	if s.cache != nil && ref.Kind == ledger.ByID {
		if cached, err := s.cache.Get(ctx, ref.Value); err == nil && cached != nil {
			return *cached, nil
		}
	}

	a, err := s.dir.Resolve(ref)
	if err != nil {
		return models.Pigeon{}, err
	}

	p := a.Snapshot()
	if s.cache != nil {
		if err := s.cache.Set(ctx, p); err != nil {
			logger.Log.Errorw("failed to cache snapshot", "account_id", p.ID, "error", err)
		}
	}
	return p, nil
}

// ListAccounts returns all accounts registered under the owner the reference
// resolves to.
func (s *BankService) ListAccounts(ctx context.Context, reference string) ([]models.Pigeon, error) {
	ref := ledger.ParseReference(reference)
	if ref.Kind == ledger.ByOwner {
		accounts := s.dir.List(ref.Value)
		if len(accounts) == 0 {
			return nil, ledger.ErrNotFound
		}
		return accounts, nil
	}

	a, err := s.dir.Resolve(ref)
	if err != nil {
		return nil, err
	}
	return s.dir.List(a.Owner()), nil
}

// Transactions returns the retained history of the referenced account.
func (s *BankService) Transactions(ctx context.Context, reference string) ([]models.Transaction, error) {
	p, err := s.GetAccount(ctx, reference)
	if err != nil {
		return nil, err
	}
	return p.Transactions, nil
}

// Deposit adds funds to the referenced account.
func (s *BankService) Deposit(ctx context.Context, reference string, amount decimal.Decimal) (models.Pigeon, error) {
	a, err := s.dir.Resolve(ledger.ParseReference(reference))
	if err != nil {
		return models.Pigeon{}, err
	}

	p, err := s.engine.Deposit(a, amount)
	if err != nil {
		logger.Log.Errorw("deposit rejected", "account_id", a.ID(), "amount", amount, "error", err)
		return models.Pigeon{}, err
	}

	s.afterCommit(ctx, p)
	return p, nil
}

// Withdraw removes funds from the referenced account.
func (s *BankService) Withdraw(ctx context.Context, reference string, amount decimal.Decimal) (models.Pigeon, error) {
	a, err := s.dir.Resolve(ledger.ParseReference(reference))
	if err != nil {
		return models.Pigeon{}, err
	}

	p, err := s.engine.Withdraw(a, amount)
	if err != nil {
		logger.Log.Errorw("withdrawal rejected", "account_id", a.ID(), "amount", amount, "error", err)
		return models.Pigeon{}, err
	}

	s.afterCommit(ctx, p)
	return p, nil
}

// Transfer moves funds from the referenced sender to the account owning the
// receiver card number. The updated sender snapshot is returned; the receiver
// is updated as a side effect.
func (s *BankService) Transfer(ctx context.Context, senderReference, receiverCardNumber string, amount decimal.Decimal) (models.Pigeon, error) {
	sender, err := s.dir.Resolve(ledger.ParseReference(senderReference))
	if err != nil {
		return models.Pigeon{}, err
	}

	senderSnap, receiverSnap, err := s.engine.Transfer(sender, receiverCardNumber, amount)
	if err != nil {
		logger.Log.Errorw("transfer rejected",
			"sender_id", sender.ID(), "receiver_card", receiverCardNumber, "amount", amount, "error", err)
		return models.Pigeon{}, err
	}

	s.afterCommit(ctx, senderSnap)
	s.afterCommit(ctx, receiverSnap)

	logger.Log.Infow("transfer applied",
		"sender_id", senderSnap.ID,
		"receiver_id", receiverSnap.ID,
		"amount", amount,
		"sender_balance", senderSnap.Balance,
		"receiver_balance", receiverSnap.Balance,
	)
	return senderSnap, nil
}
