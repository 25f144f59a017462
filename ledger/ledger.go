package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/rs/zerolog"

	"github.com/celestiaorg/echo/account"
	"github.com/celestiaorg/echo/address"
	"github.com/celestiaorg/echo/errors"
	"github.com/celestiaorg/echo/storage"
)

// Ledger executes transactions against an account store. Transactions are
// serialized; each one either commits all of its changes or none.
type Ledger struct {
	mu       sync.Mutex
	opts     *Options
	store    storage.AccountStore
	programs map[address.Address]Program

	// processed holds the ID of every transaction accepted for execution.
	processed map[[32]byte]struct{}
}

func New(setters ...Option) *Ledger {
	// default options:
	opts := &Options{
		Logger:       zerolog.Nop(),
		Rent:         DefaultRent(),
		MaxCallDepth: 4,
	}
	for _, setter := range setters {
		setter(opts)
	}
	if opts.Store == nil {
		opts.Store = storage.NewInMemoryAccountStore()
	}
	l := &Ledger{
		opts:      opts,
		store:     opts.Store,
		programs:  make(map[address.Address]Program),
		processed: make(map[[32]byte]struct{}),
	}
	l.Register(SystemProgramID, systemProgram{})
	return l
}

// Register deploys program at id. Re-registering replaces the code but
// keeps the account.
func (l *Ledger) Register(id address.Address, program Program) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.programs[id] = program
	if _, ok := l.store.Get(id); !ok {
		l.store.Put(id, &storage.Account{Lamports: 1, Owner: NativeLoaderID, Executable: true})
	}
}

// Rent returns the rent parameters the ledger was configured with.
func (l *Ledger) Rent() Rent {
	return l.opts.Rent
}

// Airdrop credits lamports to key, creating a system account if needed.
func (l *Ledger) Airdrop(key address.Address, lamports uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acct := &storage.Account{Owner: SystemProgramID}
	if stored, ok := l.store.Get(key); ok {
		acct = stored.Clone()
	}
	acct.Lamports += lamports
	l.store.Put(key, acct)
}

// Account returns a copy of the account stored at key.
func (l *Ledger) Account(key address.Address) (storage.Account, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acct, ok := l.store.Get(key)
	if !ok {
		return storage.Account{}, false
	}
	return *acct.Clone(), true
}

// SetAccount stores a copy of acct at key, bypassing every program. It
// exists for genesis state and tests.
func (l *Ledger) SetAccount(key address.Address, acct storage.Account) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.store.Put(key, acct.Clone())
}

// StateRoot commits to the current content of every account.
func (l *Ledger) StateRoot() ([32]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return storage.Root(l.store)
}

// ProveAccount returns the account stored at key together with its
// inclusion proof against the current StateRoot.
func (l *Ledger) ProveAccount(key address.Address) (storage.Account, storage.Proof, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acct, ok := l.store.Get(key)
	if !ok {
		return storage.Account{}, storage.Proof{}, fmt.Errorf("%w: %s", storage.ErrAccountNotFound, key)
	}
	proof, err := storage.Prove(l.store, key)
	if err != nil {
		return storage.Account{}, storage.Proof{}, err
	}
	return *acct.Clone(), proof, nil
}

// Snapshot encodes every stored account.
func (l *Ledger) Snapshot() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return storage.Encode(l.store)
}

// Restore loads the accounts of a Snapshot into the ledger's store.
func (l *Ledger) Restore(data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return storage.Decode(data, l.store)
}

// Execute verifies the signatures of tx and runs its instructions in order.
// The first failing instruction aborts the transaction and discards every
// change made by it; ctx is checked between instructions. A transaction is
// executed at most once: resubmitting it, whether it committed or failed,
// returns an AlreadyProcessed error.
func (l *Ledger) Execute(ctx context.Context, tx *Transaction) error {
	signed, id, err := tx.signers()
	if err != nil {
		return err
	}
	topLevel := func(meta account.Meta) (bool, bool, error) {
		if meta.IsSigner && !signed[meta.Key] {
			return false, false, errors.NewMissingRequiredSignatureErrorf(
				meta.Key.String(), "transaction is not signed by it")
		}
		return meta.IsSigner, meta.IsWritable, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.processed[id]; ok {
		return errors.NewAlreadyProcessedErrorf(base58.Encode(id[:]))
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	l.processed[id] = struct{}{}

	log := l.opts.Logger
	state := newTxState(l)
	for i, ix := range tx.Instructions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.invoke(ctx, state, ix, topLevel, 1); err != nil {
			log.Debug().
				Err(err).
				Int("instruction", i).
				Str("program", ix.ProgramID.String()).
				Msg("transaction aborted")
			return fmt.Errorf("instruction %d: %w", i, err)
		}
	}
	state.apply(l.store)
	log.Debug().
		Int("instructions", len(tx.Instructions)).
		Int("accounts", len(state.order)).
		Msg("transaction committed")
	return nil
}

// txState stages the accounts touched by one transaction.
type txState struct {
	ledger   *Ledger
	accounts map[address.Address]*storage.Account
	order    []address.Address
	// failed records the first failed cross-program invocation; the
	// transaction fails even if the caller ignores the error.
	failed error
}

func newTxState(l *Ledger) *txState {
	return &txState{
		ledger:   l,
		accounts: make(map[address.Address]*storage.Account),
	}
}

func (s *txState) load(key address.Address) *storage.Account {
	if acct, ok := s.accounts[key]; ok {
		return acct
	}
	acct := &storage.Account{Owner: SystemProgramID}
	if stored, ok := s.ledger.store.Get(key); ok {
		acct = stored.Clone()
	}
	s.accounts[key] = acct
	s.order = append(s.order, key)
	return acct
}

func (s *txState) apply(store storage.AccountStore) {
	for _, key := range s.order {
		acct := s.accounts[key]
		if acct.IsDead() {
			store.Delete(key)
			continue
		}
		store.Put(key, acct)
	}
}
