package errors

// NewAccountAlreadyInUseErrorf indicates an attempt to create an account
// that already holds lamports or data.
func NewAccountAlreadyInUseErrorf(account string) CodedError {
	return NewCodedError(
		ErrCodeAccountAlreadyInUse,
		"account %s already in use",
		account)
}

func IsAccountAlreadyInUseError(err error) bool {
	return HasErrorCode(err, ErrCodeAccountAlreadyInUse)
}

func NewInsufficientLamportsErrorf(account string, have, want uint64) CodedError {
	return NewCodedError(
		ErrCodeInsufficientLamports,
		"account %s has %d lamports, need %d",
		account, have, want)
}

// NewReadonlyModifiedErrorf indicates that a program changed an account
// that was passed to it read-only.
func NewReadonlyModifiedErrorf(account string) CodedError {
	return NewCodedError(
		ErrCodeReadonlyModified,
		"read-only account %s was modified",
		account)
}

// NewExternalDataModifiedErrorf indicates that a program changed state of an
// account it does not own.
func NewExternalDataModifiedErrorf(account string, msg string, args ...interface{}) CodedError {
	return NewCodedError(
		ErrCodeExternalDataModified,
		"account %s not owned by the invoked program was modified: "+msg,
		append([]interface{}{account}, args...)...)
}

func NewUnbalancedInstructionErrorf(before, after uint64) CodedError {
	return NewCodedError(
		ErrCodeUnbalancedInstruction,
		"lamport total changed from %d to %d",
		before, after)
}

func NewMissingAccountErrorf(account string) CodedError {
	return NewCodedError(
		ErrCodeMissingAccount,
		"account %s was not passed to the invoking program",
		account)
}

// NewPrivilegeEscalationErrorf indicates that an invocation asked for a
// signer or writable privilege its caller does not hold.
func NewPrivilegeEscalationErrorf(account string, privilege string) CodedError {
	return NewCodedError(
		ErrCodePrivilegeEscalation,
		"%s privilege escalated for account %s",
		privilege, account)
}

func IsPrivilegeEscalationError(err error) bool {
	return HasErrorCode(err, ErrCodePrivilegeEscalation)
}

func NewUnknownProgramErrorf(program string) CodedError {
	return NewCodedError(
		ErrCodeUnknownProgram,
		"program %s is not registered",
		program)
}

func NewCallDepthExceededErrorf(depth int) CodedError {
	return NewCodedError(
		ErrCodeCallDepthExceeded,
		"invocation depth %d exceeds the limit",
		depth)
}

func NewInvalidSignatureErrorf(signer string) CodedError {
	return NewCodedError(
		ErrCodeInvalidSignature,
		"signature of %s does not verify",
		signer)
}

func NewInvalidAccountDataErrorf(account string, msg string, args ...interface{}) CodedError {
	return NewCodedError(
		ErrCodeInvalidAccountData,
		"invalid data in account %s: "+msg,
		append([]interface{}{account}, args...)...)
}

// NewAlreadyProcessedErrorf indicates a transaction whose message the
// ledger has processed before.
func NewAlreadyProcessedErrorf(id string) CodedError {
	return NewCodedError(
		ErrCodeAlreadyProcessed,
		"transaction %s already processed",
		id)
}

func IsAlreadyProcessedError(err error) bool {
	return HasErrorCode(err, ErrCodeAlreadyProcessed)
}
