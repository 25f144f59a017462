package errors

// NewInvalidInstructionDataErrorf indicates that the instruction payload
// could not be decoded into a request.
func NewInvalidInstructionDataErrorf(msg string, args ...interface{}) CodedError {
	return NewCodedError(
		ErrCodeInvalidInstructionData,
		"invalid instruction data: "+msg,
		args...)
}

func IsInvalidInstructionDataError(err error) bool {
	return HasErrorCode(err, ErrCodeInvalidInstructionData)
}

// NewMissingRequiredSignatureErrorf indicates that an account which must
// authorize the request did not sign it.
func NewMissingRequiredSignatureErrorf(account string, msg string, args ...interface{}) CodedError {
	return NewCodedError(
		ErrCodeMissingRequiredSignature,
		"missing required signature for %s: "+msg,
		append([]interface{}{account}, args...)...)
}

func IsMissingRequiredSignatureError(err error) bool {
	return HasErrorCode(err, ErrCodeMissingRequiredSignature)
}

// NewInvalidArgumentErrorf indicates that a supplied account is not the one
// the request requires: a forged buffer address or a substituted program.
func NewInvalidArgumentErrorf(msg string, args ...interface{}) CodedError {
	return NewCodedError(
		ErrCodeInvalidArgument,
		"invalid argument: "+msg,
		args...)
}

func IsInvalidArgumentError(err error) bool {
	return HasErrorCode(err, ErrCodeInvalidArgument)
}

// NewUnallocatedBufferErrorf indicates that a buffer has no (or too little)
// storage for the request.
func NewUnallocatedBufferErrorf(account string, msg string, args ...interface{}) CodedError {
	return NewCodedError(
		ErrCodeUnallocatedBuffer,
		"buffer %s is not allocated: "+msg,
		append([]interface{}{account}, args...)...)
}

func IsUnallocatedBufferError(err error) bool {
	return HasErrorCode(err, ErrCodeUnallocatedBuffer)
}

// NewNotVirginErrorf indicates that an open buffer already holds data.
func NewNotVirginErrorf(account string, msg string, args ...interface{}) CodedError {
	return NewCodedError(
		ErrCodeNotVirgin,
		"buffer %s has already been written: "+msg,
		append([]interface{}{account}, args...)...)
}

func IsNotVirginError(err error) bool {
	return HasErrorCode(err, ErrCodeNotVirgin)
}

// NewCollaboratorFailure wraps an error returned by the allocation or the
// token facility.
func NewCollaboratorFailure(collaborator string, err error) CodedError {
	return WrapCodedError(
		ErrCodeCollaboratorFailure,
		err,
		collaborator+" failed")
}

func IsCollaboratorFailure(err error) bool {
	return HasErrorCode(err, ErrCodeCollaboratorFailure)
}

// NewNotEnoughAccountKeysErrorf indicates that fewer account handles were
// supplied than the request consumes.
func NewNotEnoughAccountKeysErrorf(msg string, args ...interface{}) CodedError {
	return NewCodedError(
		ErrCodeNotEnoughAccountKeys,
		"not enough account keys: "+msg,
		args...)
}

func IsNotEnoughAccountKeysError(err error) bool {
	return HasErrorCode(err, ErrCodeNotEnoughAccountKeys)
}

// NewInvalidSeedsErrorf indicates that stored seed material does not
// produce a usable derived address.
func NewInvalidSeedsErrorf(msg string, args ...interface{}) CodedError {
	return NewCodedError(
		ErrCodeInvalidSeeds,
		"invalid seeds: "+msg,
		args...)
}

func IsInvalidSeedsError(err error) bool {
	return HasErrorCode(err, ErrCodeInvalidSeeds)
}
