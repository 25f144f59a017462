package errors

import "fmt"

type ErrorCode uint16

func (ec ErrorCode) String() string {
	return fmt.Sprintf("[Error Code: %d]", ec)
}

const (
	// processor errors 1 - 99
	ErrCodeInvalidInstructionData   ErrorCode = 1
	ErrCodeMissingRequiredSignature ErrorCode = 2
	ErrCodeInvalidArgument          ErrorCode = 3
	ErrCodeUnallocatedBuffer        ErrorCode = 4
	ErrCodeNotVirgin                ErrorCode = 5
	ErrCodeCollaboratorFailure      ErrorCode = 6
	ErrCodeNotEnoughAccountKeys     ErrorCode = 7
	ErrCodeInvalidSeeds             ErrorCode = 8

	// ledger errors 100 - 199
	ErrCodeAccountAlreadyInUse   ErrorCode = 100
	ErrCodeInsufficientLamports  ErrorCode = 101
	ErrCodeReadonlyModified      ErrorCode = 102
	ErrCodeExternalDataModified  ErrorCode = 103
	ErrCodeUnbalancedInstruction ErrorCode = 104
	ErrCodeMissingAccount        ErrorCode = 105
	ErrCodePrivilegeEscalation   ErrorCode = 106
	ErrCodeUnknownProgram        ErrorCode = 107
	ErrCodeCallDepthExceeded     ErrorCode = 108
	ErrCodeInvalidSignature      ErrorCode = 109
	ErrCodeInvalidAccountData    ErrorCode = 110
	ErrCodeAlreadyProcessed      ErrorCode = 111

	// token errors 200 - 299
	ErrCodeInsufficientFunds  ErrorCode = 200
	ErrCodeMintMismatch       ErrorCode = 201
	ErrCodeOwnerMismatch      ErrorCode = 202
	ErrCodeUninitializedState ErrorCode = 203
	ErrCodeAlreadyInitialized ErrorCode = 204
)
