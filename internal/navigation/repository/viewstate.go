package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	naverrors "campusmove/internal/navigation/errors"
	"campusmove/pkg/logger"
	"campusmove/pkg/model"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const viewStateKeyPrefix = "viewstate:"

type ViewStateRepository interface {
	Get(ctx context.Context, clientID string) (*model.ViewState, error)
	Save(ctx context.Context, clientID string, state model.ViewState) error
	Ping(ctx context.Context) error
	Close() error
}

type badgerViewStateRepository struct {
	db *badger.DB
}

// OpenBadgerViewStateRepository opens the view state store at path. An empty
// path keeps everything in memory.
func OpenBadgerViewStateRepository(path string, log *logger.Logger) (ViewStateRepository, error) {
	opts := badger.DefaultOptions(path).WithLogger(badgerLogger{log: log})
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open view state store: %w", err)
	}
	return NewBadgerViewStateRepository(db), nil
}

func NewBadgerViewStateRepository(db *badger.DB) ViewStateRepository {
	return &badgerViewStateRepository{db: db}
}

func viewStateKey(clientID string) []byte {
	return []byte(viewStateKeyPrefix + clientID)
}

func (r *badgerViewStateRepository) Get(ctx context.Context, clientID string) (*model.ViewState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(viewStateKey(clientID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return naverrors.ErrViewStateNotFound
		}
		if err != nil {
			return fmt.Errorf("get view state: %w", err)
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	state, err := DecodeViewState(raw)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *badgerViewStateRepository) Save(ctx context.Context, clientID string, state model.ViewState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	state.SchemaVersion = model.CurrentViewStateVersion
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal view state: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(viewStateKey(clientID), data); err != nil {
			return fmt.Errorf("set view state: %w", err)
		}
		return nil
	})
}

func (r *badgerViewStateRepository) Ping(_ context.Context) error {
	if r.db.IsClosed() {
		return errors.New("view state store is closed")
	}
	return nil
}

func (r *badgerViewStateRepository) Close() error {
	return r.db.Close()
}

// badgerLogger routes badger's internal logging through the service logger.
type badgerLogger struct {
	log *logger.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.log.Error(fmt.Sprintf(format, args...), "component", "badger")
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn(fmt.Sprintf(format, args...), "component", "badger")
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...), "component", "badger")
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...), "component", "badger")
}
