package errors

func NewInsufficientFundsErrorf(account string, have, want uint64) CodedError {
	return NewCodedError(
		ErrCodeInsufficientFunds,
		"token account %s holds %d, need %d",
		account, have, want)
}

func IsInsufficientFundsError(err error) bool {
	return HasErrorCode(err, ErrCodeInsufficientFunds)
}

func NewMintMismatchErrorf(account string, mint string) CodedError {
	return NewCodedError(
		ErrCodeMintMismatch,
		"token account %s does not hold mint %s",
		account, mint)
}

func IsMintMismatchError(err error) bool {
	return HasErrorCode(err, ErrCodeMintMismatch)
}

func NewOwnerMismatchErrorf(account string, authority string) CodedError {
	return NewCodedError(
		ErrCodeOwnerMismatch,
		"token account %s is not owned by %s",
		account, authority)
}

func NewUninitializedStateErrorf(account string) CodedError {
	return NewCodedError(
		ErrCodeUninitializedState,
		"account %s is not initialized",
		account)
}

func NewAlreadyInitializedErrorf(account string) CodedError {
	return NewCodedError(
		ErrCodeAlreadyInitialized,
		"account %s is already initialized",
		account)
}
