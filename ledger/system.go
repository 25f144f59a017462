package ledger

import (
	"encoding/binary"

	"github.com/celestiaorg/echo/account"
	"github.com/celestiaorg/echo/address"
	"github.com/celestiaorg/echo/errors"
)

var (
	// SystemProgramID owns every account that no program claimed yet.
	SystemProgramID = address.Address{}
	// NativeLoaderID owns the accounts of registered programs.
	NativeLoaderID = address.MustFromBase58("NativeLoader1111111111111111111111111111111")
)

// MaxPermittedDataLength is the largest data region CreateAccount allocates.
const MaxPermittedDataLength = 10 * 1024 * 1024

const (
	systemCreateAccount uint32 = 0
	systemTransfer      uint32 = 2

	createAccountDataLen = 4 + 8 + 8 + address.Size
	transferDataLen      = 4 + 8
)

// CreateAccount returns a system instruction that moves lamports from
// "from" into the unused account "to", allocates space zeroed bytes for it
// and assigns it to owner. Both accounts must sign.
func CreateAccount(from, to address.Address, lamports, space uint64, owner address.Address) Instruction {
	data := make([]byte, 0, createAccountDataLen)
	data = binary.LittleEndian.AppendUint32(data, systemCreateAccount)
	data = binary.LittleEndian.AppendUint64(data, lamports)
	data = binary.LittleEndian.AppendUint64(data, space)
	data = append(data, owner[:]...)
	return Instruction{
		ProgramID: SystemProgramID,
		Accounts:  []account.Meta{account.Signer(from, true), account.Signer(to, true)},
		Data:      data,
	}
}

// Transfer returns a system instruction that moves lamports from "from" to
// "to".
func Transfer(from, to address.Address, lamports uint64) Instruction {
	data := make([]byte, 0, transferDataLen)
	data = binary.LittleEndian.AppendUint32(data, systemTransfer)
	data = binary.LittleEndian.AppendUint64(data, lamports)
	return Instruction{
		ProgramID: SystemProgramID,
		Accounts:  []account.Meta{account.Signer(from, true), account.Writable(to)},
		Data:      data,
	}
}

type systemProgram struct{}

func (systemProgram) Process(rt Runtime, accounts []*account.Info, data []byte) error {
	if len(data) < 4 {
		return errors.NewInvalidInstructionDataErrorf("system instruction of %d bytes", len(data))
	}
	it := account.NewIterator(accounts)
	switch tag := binary.LittleEndian.Uint32(data); tag {
	case systemCreateAccount:
		if len(data) != createAccountDataLen {
			return errors.NewInvalidInstructionDataErrorf("create account: got %d bytes, want %d", len(data), createAccountDataLen)
		}
		owner, _ := address.FromBytes(data[20:createAccountDataLen])
		return createAccount(rt, it,
			binary.LittleEndian.Uint64(data[4:12]),
			binary.LittleEndian.Uint64(data[12:20]),
			owner)
	case systemTransfer:
		if len(data) != transferDataLen {
			return errors.NewInvalidInstructionDataErrorf("transfer: got %d bytes, want %d", len(data), transferDataLen)
		}
		return transfer(it, binary.LittleEndian.Uint64(data[4:12]))
	default:
		return errors.NewInvalidInstructionDataErrorf("unknown system instruction %d", tag)
	}
}

func createAccount(rt Runtime, it *account.Iterator, lamports, space uint64, owner address.Address) error {
	from, err := it.Next()
	if err != nil {
		return err
	}
	to, err := it.Next()
	if err != nil {
		return err
	}
	if err := account.RequireSigner(from, "funding account"); err != nil {
		return err
	}
	if err := account.RequireSigner(to, "new account"); err != nil {
		return err
	}
	if to.Lamports != 0 || len(to.Data) != 0 || to.Owner != SystemProgramID {
		return errors.NewAccountAlreadyInUseErrorf(to.Key.String())
	}
	if space > MaxPermittedDataLength {
		return errors.NewInvalidArgumentErrorf("space %d exceeds %d", space, MaxPermittedDataLength)
	}
	if err := debit(from, lamports); err != nil {
		return err
	}
	to.Lamports = lamports
	to.Data = make([]byte, space)
	to.Owner = owner

	rt.Logger().Debug().
		Str("account", to.Key.String()).
		Uint64("lamports", lamports).
		Uint64("space", space).
		Str("owner", owner.String()).
		Msg("create account")
	return nil
}

func transfer(it *account.Iterator, lamports uint64) error {
	from, err := it.Next()
	if err != nil {
		return err
	}
	to, err := it.Next()
	if err != nil {
		return err
	}
	if err := account.RequireSigner(from, "funding account"); err != nil {
		return err
	}
	if err := debit(from, lamports); err != nil {
		return err
	}
	to.Lamports += lamports
	return nil
}

// debit takes lamports from a system-owned account without data.
func debit(from *account.Info, lamports uint64) error {
	if from.Owner != SystemProgramID || len(from.Data) != 0 {
		return errors.NewInvalidArgumentErrorf("funding account %s must be a plain system account", from.Key)
	}
	if from.Lamports < lamports {
		return errors.NewInsufficientLamportsErrorf(from.Key.String(), from.Lamports, lamports)
	}
	from.Lamports -= lamports
	return nil
}
