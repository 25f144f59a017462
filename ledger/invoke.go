package ledger

import (
	"bytes"
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/celestiaorg/echo/account"
	"github.com/celestiaorg/echo/address"
	"github.com/celestiaorg/echo/errors"
	"github.com/celestiaorg/echo/storage"
)

// Runtime is the ledger as seen by an executing program.
type Runtime interface {
	Context() context.Context
	// ProgramID is the id of the executing program.
	ProgramID() address.Address
	Logger() *zerolog.Logger
	// MinimumBalance returns the rent-exempt balance for size data bytes.
	MinimumBalance(size uint64) uint64
	// Invoke runs ix with the caller's privileges.
	Invoke(ix Instruction) error
	// InvokeSigned runs ix and additionally signs for every address derived
	// from the executing program's id and one of signerSeeds.
	InvokeSigned(ix Instruction, signerSeeds ...[][]byte) error
}

// Program processes instructions addressed to it. accounts follows the
// order of the instruction's metas; a key listed twice maps to the same
// handle.
type Program interface {
	Process(rt Runtime, accounts []*account.Info, data []byte) error
}

type ProgramFunc func(rt Runtime, accounts []*account.Info, data []byte) error

func (f ProgramFunc) Process(rt Runtime, accounts []*account.Info, data []byte) error {
	return f(rt, accounts, data)
}

type privilegeFunc func(meta account.Meta) (signer bool, writable bool, err error)

// InvokeContext is the Runtime of one program invocation.
type InvokeContext struct {
	ctx       context.Context
	ledger    *Ledger
	state     *txState
	programID address.Address
	depth     int
	log       zerolog.Logger

	infos map[address.Address]*account.Info
	keys  []address.Address
	// pre holds the staged accounts as of the start of the invocation or
	// the return of the last nested invocation.
	pre map[address.Address]*storage.Account
}

var _ Runtime = (*InvokeContext)(nil)

func (l *Ledger) invoke(ctx context.Context, state *txState, ix Instruction, privileges privilegeFunc, depth int) error {
	if depth > l.opts.MaxCallDepth {
		return errors.NewCallDepthExceededErrorf(depth)
	}
	program, ok := l.programs[ix.ProgramID]
	if !ok {
		return errors.NewUnknownProgramErrorf(ix.ProgramID.String())
	}

	frame := &InvokeContext{
		ctx:       ctx,
		ledger:    l,
		state:     state,
		programID: ix.ProgramID,
		depth:     depth,
		log: l.opts.Logger.With().
			Str("program", ix.ProgramID.String()).
			Int("depth", depth).
			Logger(),
		infos: make(map[address.Address]*account.Info, len(ix.Accounts)),
		pre:   make(map[address.Address]*storage.Account, len(ix.Accounts)),
	}
	accounts := make([]*account.Info, len(ix.Accounts))
	for i, meta := range ix.Accounts {
		signer, writable, err := privileges(meta)
		if err != nil {
			return err
		}
		info, ok := frame.infos[meta.Key]
		if !ok {
			info = &account.Info{Key: meta.Key}
			frame.infos[meta.Key] = info
			frame.keys = append(frame.keys, meta.Key)
		}
		info.IsSigner = info.IsSigner || signer
		info.IsWritable = info.IsWritable || writable
		accounts[i] = info
	}
	frame.refresh()

	if err := program.Process(frame, accounts, ix.Data); err != nil {
		return err
	}
	if state.failed != nil {
		return state.failed
	}
	return frame.commit()
}

func (c *InvokeContext) Context() context.Context {
	return c.ctx
}

func (c *InvokeContext) ProgramID() address.Address {
	return c.programID
}

func (c *InvokeContext) Logger() *zerolog.Logger {
	return &c.log
}

func (c *InvokeContext) MinimumBalance(size uint64) uint64 {
	return c.ledger.opts.Rent.MinimumBalance(size)
}

func (c *InvokeContext) Invoke(ix Instruction) error {
	return c.InvokeSigned(ix)
}

func (c *InvokeContext) InvokeSigned(ix Instruction, signerSeeds ...[][]byte) error {
	err := c.invokeSigned(ix, signerSeeds)
	if err != nil && c.state.failed == nil {
		c.state.failed = err
	}
	return err
}

func (c *InvokeContext) invokeSigned(ix Instruction, signerSeeds [][][]byte) error {
	if _, ok := c.infos[ix.ProgramID]; !ok {
		return errors.NewMissingAccountErrorf(ix.ProgramID.String())
	}
	derived := make(map[address.Address]bool, len(signerSeeds))
	for _, seeds := range signerSeeds {
		key, err := address.Create(seeds, c.programID)
		if err != nil {
			return errors.WrapCodedError(errors.ErrCodeInvalidSeeds, err, "signer seeds")
		}
		derived[key] = true
	}

	// The callee must observe the caller's changes so far.
	if err := c.commit(); err != nil {
		return err
	}

	privileges := func(meta account.Meta) (bool, bool, error) {
		info, ok := c.infos[meta.Key]
		if !ok {
			return false, false, errors.NewMissingAccountErrorf(meta.Key.String())
		}
		if meta.IsSigner && !info.IsSigner && !derived[meta.Key] {
			return false, false, errors.NewPrivilegeEscalationErrorf(meta.Key.String(), "signer")
		}
		if meta.IsWritable && !info.IsWritable {
			return false, false, errors.NewPrivilegeEscalationErrorf(meta.Key.String(), "writable")
		}
		return meta.IsSigner, meta.IsWritable, nil
	}
	if err := c.ledger.invoke(c.ctx, c.state, ix, privileges, c.depth+1); err != nil {
		return err
	}
	c.refresh()
	return nil
}

// refresh loads the staged accounts into the frame's handles and takes a
// new snapshot of them.
func (c *InvokeContext) refresh() {
	for _, key := range c.keys {
		acct := c.state.load(key)
		info := c.infos[key]
		info.Lamports = acct.Lamports
		info.Owner = acct.Owner
		info.Executable = acct.Executable
		info.Data = acct.Data
		c.pre[key] = acct.Clone()
	}
}

// commit verifies the handles against the snapshot and stages them.
func (c *InvokeContext) commit() error {
	var (
		result        *multierror.Error
		before, after uint64
	)
	for _, key := range c.keys {
		pre, info := c.pre[key], c.infos[key]
		before += pre.Lamports
		after += info.Lamports
		if err := c.verify(pre, info); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if before != after {
		result = multierror.Append(result, errors.NewUnbalancedInstructionErrorf(before, after))
	}
	if err := result.ErrorOrNil(); err != nil {
		return err
	}
	for _, key := range c.keys {
		info, acct := c.infos[key], c.state.load(key)
		acct.Lamports = info.Lamports
		acct.Owner = info.Owner
		acct.Data = info.Data
		c.pre[key] = acct.Clone()
	}
	return nil
}

func (c *InvokeContext) verify(pre *storage.Account, info *account.Info) error {
	key := info.Key.String()
	dataChanged := !bytes.Equal(pre.Data, info.Data)
	ownerChanged := pre.Owner != info.Owner
	lamportsChanged := pre.Lamports != info.Lamports
	owned := pre.Owner == c.programID

	switch {
	case info.Executable != pre.Executable:
		return errors.NewExternalDataModifiedErrorf(key, "executable flag changed")
	case !info.IsWritable && (dataChanged || ownerChanged || lamportsChanged):
		return errors.NewReadonlyModifiedErrorf(key)
	case ownerChanged && (!owned || !isZeroed(info.Data)):
		return errors.NewExternalDataModifiedErrorf(key, "owner changed to %s", info.Owner)
	case dataChanged && !owned:
		return errors.NewExternalDataModifiedErrorf(key, "data changed")
	case info.Lamports < pre.Lamports && !owned:
		return errors.NewExternalDataModifiedErrorf(key, "lamports debited")
	}
	return nil
}

func isZeroed(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
