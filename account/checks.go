package account

import (
	"github.com/celestiaorg/echo/address"
	"github.com/celestiaorg/echo/errors"
)

// RequireSigner fails unless info signed the transaction (directly or
// through derived-address seeds of the invoking program).
func RequireSigner(info *Info, role string) error {
	if !info.IsSigner {
		return errors.NewMissingRequiredSignatureErrorf(info.Key.String(), "%s must sign", role)
	}
	return nil
}

// RequireProgram fails unless the handle passed for a collaborating
// program is that program's genuine identity.
func RequireProgram(info *Info, want address.Address, role string) error {
	if info.Key != want {
		return errors.NewInvalidArgumentErrorf(
			"%s: got: %s, want: %s", role, info.Key, want)
	}
	return nil
}

// RequireOwner fails unless info is owned by owner.
func RequireOwner(info *Info, owner address.Address) error {
	if info.Owner != owner {
		return errors.NewInvalidArgumentErrorf(
			"account %s is owned by %s, want %s", info.Key, info.Owner, owner)
	}
	return nil
}

// RequireDerived recomputes the derived address of seeds under programID
// and fails unless it is the handle's own address. Seeds must include the
// stored nonce.
func RequireDerived(info *Info, seeds [][]byte, programID address.Address) error {
	derived, err := address.Create(seeds, programID)
	if err != nil {
		return errors.WrapCodedError(errors.ErrCodeInvalidSeeds, err, "derive "+info.Key.String())
	}
	if derived != info.Key {
		return errors.NewInvalidArgumentErrorf(
			"derived address %s does not match account %s", derived, info.Key)
	}
	return nil
}

// RequireNonEmpty fails if the account has no data region.
func RequireNonEmpty(info *Info) error {
	if len(info.Data) == 0 {
		return errors.NewUnallocatedBufferErrorf(info.Key.String(), "data length is 0")
	}
	return nil
}

// RequireMinLen fails if the data region is shorter than n bytes.
func RequireMinLen(info *Info, n int) error {
	if len(info.Data) < n {
		return errors.NewUnallocatedBufferErrorf(
			info.Key.String(), "data length %d, want >= %d", len(info.Data), n)
	}
	return nil
}

// RequireVirgin fails unless every byte of the data region is zero.
func RequireVirgin(info *Info) error {
	for i, b := range info.Data {
		if b != 0 {
			return errors.NewNotVirginErrorf(info.Key.String(), "byte %d is %#x", i, b)
		}
	}
	return nil
}
