// Package token implements a fungible token program: mints with a single
// mint authority, token accounts with a single owner, minting and burning.
package token

import (
	"encoding/binary"

	"github.com/celestiaorg/echo/account"
	"github.com/celestiaorg/echo/address"
	"github.com/celestiaorg/echo/errors"
	"github.com/celestiaorg/echo/ledger"
)

// ProgramID is the well-known id of the token program.
var ProgramID = address.MustFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")

type Program struct{}

var _ ledger.Program = Program{}

func (p Program) Process(rt ledger.Runtime, accounts []*account.Info, data []byte) error {
	if len(data) == 0 {
		return errors.NewInvalidInstructionDataErrorf("empty token instruction")
	}
	it := account.NewIterator(accounts)
	switch data[0] {
	case tagInitializeMint:
		if len(data) != 2+address.Size {
			return errors.NewInvalidInstructionDataErrorf("initialize mint: got %d bytes", len(data))
		}
		authority, _ := address.FromBytes(data[2:])
		return initializeMint(rt, it, data[1], authority)
	case tagInitializeAccount:
		return initializeAccount(rt, it)
	case tagMintTo:
		if len(data) != 9 {
			return errors.NewInvalidInstructionDataErrorf("mint to: got %d bytes", len(data))
		}
		return mintTo(rt, it, binary.LittleEndian.Uint64(data[1:]))
	case tagBurn:
		if len(data) != 9 {
			return errors.NewInvalidInstructionDataErrorf("burn: got %d bytes", len(data))
		}
		return burn(rt, it, binary.LittleEndian.Uint64(data[1:]))
	default:
		return errors.NewInvalidInstructionDataErrorf("unknown token instruction %d", data[0])
	}
}

func initializeMint(rt ledger.Runtime, it *account.Iterator, decimals uint8, authority address.Address) error {
	mintInfo, err := it.Next()
	if err != nil {
		return err
	}
	mint, err := loadMint(rt, mintInfo, false)
	if err != nil {
		return err
	}
	if mint.IsInitialized {
		return errors.NewAlreadyInitializedErrorf(mintInfo.Key.String())
	}
	Mint{MintAuthority: authority, Decimals: decimals, IsInitialized: true}.PackInto(mintInfo.Data)
	return nil
}

func initializeAccount(rt ledger.Runtime, it *account.Iterator) error {
	tokenInfo, err := it.Next()
	if err != nil {
		return err
	}
	mintInfo, err := it.Next()
	if err != nil {
		return err
	}
	ownerInfo, err := it.Next()
	if err != nil {
		return err
	}
	acct, err := loadAccount(rt, tokenInfo, false)
	if err != nil {
		return err
	}
	if acct.IsInitialized {
		return errors.NewAlreadyInitializedErrorf(tokenInfo.Key.String())
	}
	if _, err := loadMint(rt, mintInfo, true); err != nil {
		return err
	}
	Account{Mint: mintInfo.Key, Owner: ownerInfo.Key, IsInitialized: true}.PackInto(tokenInfo.Data)
	return nil
}

func mintTo(rt ledger.Runtime, it *account.Iterator, amount uint64) error {
	mintInfo, err := it.Next()
	if err != nil {
		return err
	}
	tokenInfo, err := it.Next()
	if err != nil {
		return err
	}
	authority, err := it.Next()
	if err != nil {
		return err
	}
	mint, err := loadMint(rt, mintInfo, true)
	if err != nil {
		return err
	}
	acct, err := loadAccount(rt, tokenInfo, true)
	if err != nil {
		return err
	}
	if acct.Mint != mintInfo.Key {
		return errors.NewMintMismatchErrorf(tokenInfo.Key.String(), mintInfo.Key.String())
	}
	if authority.Key != mint.MintAuthority {
		return errors.NewOwnerMismatchErrorf(mintInfo.Key.String(), authority.Key.String())
	}
	if err := account.RequireSigner(authority, "mint authority"); err != nil {
		return err
	}
	if mint.Supply+amount < mint.Supply || acct.Amount+amount < acct.Amount {
		return errors.NewInvalidArgumentErrorf("minting %d overflows", amount)
	}
	mint.Supply += amount
	acct.Amount += amount
	mint.PackInto(mintInfo.Data)
	acct.PackInto(tokenInfo.Data)
	return nil
}

// burn destroys amount tokens. The account must hold mint, be owned by the
// signing authority and hold at least amount.
func burn(rt ledger.Runtime, it *account.Iterator, amount uint64) error {
	tokenInfo, err := it.Next()
	if err != nil {
		return err
	}
	mintInfo, err := it.Next()
	if err != nil {
		return err
	}
	authority, err := it.Next()
	if err != nil {
		return err
	}
	acct, err := loadAccount(rt, tokenInfo, true)
	if err != nil {
		return err
	}
	if acct.Mint != mintInfo.Key {
		return errors.NewMintMismatchErrorf(tokenInfo.Key.String(), mintInfo.Key.String())
	}
	mint, err := loadMint(rt, mintInfo, true)
	if err != nil {
		return err
	}
	if authority.Key != acct.Owner {
		return errors.NewOwnerMismatchErrorf(tokenInfo.Key.String(), authority.Key.String())
	}
	if err := account.RequireSigner(authority, "token account owner"); err != nil {
		return err
	}
	if acct.Amount < amount {
		return errors.NewInsufficientFundsErrorf(tokenInfo.Key.String(), acct.Amount, amount)
	}
	acct.Amount -= amount
	mint.Supply -= amount
	acct.PackInto(tokenInfo.Data)
	mint.PackInto(mintInfo.Data)

	rt.Logger().Debug().
		Str("account", tokenInfo.Key.String()).
		Str("mint", mintInfo.Key.String()).
		Uint64("amount", amount).
		Msg("burn")
	return nil
}

func loadMint(rt ledger.Runtime, info *account.Info, initialized bool) (Mint, error) {
	if err := account.RequireOwner(info, rt.ProgramID()); err != nil {
		return Mint{}, err
	}
	mint, ok := UnpackMint(info.Data)
	if !ok {
		return Mint{}, errors.NewInvalidAccountDataErrorf(info.Key.String(), "mint of %d bytes", len(info.Data))
	}
	if initialized && !mint.IsInitialized {
		return Mint{}, errors.NewUninitializedStateErrorf(info.Key.String())
	}
	return mint, nil
}

func loadAccount(rt ledger.Runtime, info *account.Info, initialized bool) (Account, error) {
	if err := account.RequireOwner(info, rt.ProgramID()); err != nil {
		return Account{}, err
	}
	acct, ok := UnpackAccount(info.Data)
	if !ok {
		return Account{}, errors.NewInvalidAccountDataErrorf(info.Key.String(), "token account of %d bytes", len(info.Data))
	}
	if initialized && !acct.IsInitialized {
		return Account{}, errors.NewUninitializedStateErrorf(info.Key.String())
	}
	return acct, nil
}
