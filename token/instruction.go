package token

import (
	"encoding/binary"

	"github.com/celestiaorg/echo/account"
	"github.com/celestiaorg/echo/address"
	"github.com/celestiaorg/echo/ledger"
)

const (
	tagInitializeMint    byte = 0
	tagInitializeAccount byte = 1
	tagMintTo            byte = 7
	tagBurn              byte = 8
)

// InitializeMint returns an instruction that initializes mint with the
// given decimals and mint authority.
func InitializeMint(programID, mint address.Address, decimals uint8, authority address.Address) ledger.Instruction {
	data := append([]byte{tagInitializeMint, decimals}, authority[:]...)
	return ledger.Instruction{
		ProgramID: programID,
		Accounts:  []account.Meta{account.Writable(mint)},
		Data:      data,
	}
}

// InitializeAccount returns an instruction that initializes tokenAccount to
// hold mint on behalf of owner.
func InitializeAccount(programID, tokenAccount, mint, owner address.Address) ledger.Instruction {
	return ledger.Instruction{
		ProgramID: programID,
		Accounts: []account.Meta{
			account.Writable(tokenAccount),
			account.ReadOnly(mint),
			account.ReadOnly(owner),
		},
		Data: []byte{tagInitializeAccount},
	}
}

// MintTo returns an instruction that mints amount tokens into tokenAccount,
// signed by the mint authority.
func MintTo(programID, mint, tokenAccount, authority address.Address, amount uint64) ledger.Instruction {
	return ledger.Instruction{
		ProgramID: programID,
		Accounts: []account.Meta{
			account.Writable(mint),
			account.Writable(tokenAccount),
			account.Signer(authority, false),
		},
		Data: binary.LittleEndian.AppendUint64([]byte{tagMintTo}, amount),
	}
}

// Burn returns an instruction that destroys amount tokens of mint held in
// tokenAccount, signed by the account owner.
func Burn(programID, tokenAccount, mint, authority address.Address, amount uint64) ledger.Instruction {
	return ledger.Instruction{
		ProgramID: programID,
		Accounts: []account.Meta{
			account.Writable(tokenAccount),
			account.Writable(mint),
			account.Signer(authority, false),
		},
		Data: binary.LittleEndian.AppendUint64([]byte{tagBurn}, amount),
	}
}
