// Package instruction defines the requests understood by the echo program
// and their wire encoding: a one byte tag followed by the variant's fields,
// byte vectors as a little-endian uint32 length plus bytes and integers as
// little-endian uint64.
package instruction

import "fmt"

type Tag uint8

const (
	TagEcho Tag = iota
	TagInitializeAuthorizedEcho
	TagAuthorizedEcho
	TagInitializeVendingMachineEcho
	TagVendingMachineEcho
)

var tagNames = [...]string{
	TagEcho:                         "Echo",
	TagInitializeAuthorizedEcho:     "InitializeAuthorizedEcho",
	TagAuthorizedEcho:               "AuthorizedEcho",
	TagInitializeVendingMachineEcho: "InitializeVendingMachineEcho",
	TagVendingMachineEcho:           "VendingMachineEcho",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// Instruction is one of Echo, InitializeAuthorizedEcho, AuthorizedEcho,
// InitializeVendingMachineEcho or VendingMachineEcho. The set is closed.
type Instruction interface {
	Tag() Tag
	isInstruction()
}

// Echo writes Data into a virgin buffer without any authentication.
type Echo struct {
	Data []byte
}

// InitializeAuthorizedEcho creates a buffer of BufferSize bytes at the
// address derived from the authority and BufferSeed.
type InitializeAuthorizedEcho struct {
	BufferSeed uint64
	BufferSize uint64
}

// AuthorizedEcho overwrites the payload of an authority-bound buffer.
type AuthorizedEcho struct {
	Data []byte
}

// InitializeVendingMachineEcho creates a buffer of BufferSize bytes at the
// address derived from a token mint and Price.
type InitializeVendingMachineEcho struct {
	Price      uint64
	BufferSize uint64
}

// VendingMachineEcho burns the buffer's price in tokens and overwrites its
// payload.
type VendingMachineEcho struct {
	Data []byte
}

func (Echo) Tag() Tag                         { return TagEcho }
func (InitializeAuthorizedEcho) Tag() Tag     { return TagInitializeAuthorizedEcho }
func (AuthorizedEcho) Tag() Tag               { return TagAuthorizedEcho }
func (InitializeVendingMachineEcho) Tag() Tag { return TagInitializeVendingMachineEcho }
func (VendingMachineEcho) Tag() Tag           { return TagVendingMachineEcho }

func (Echo) isInstruction()                         {}
func (InitializeAuthorizedEcho) isInstruction()     {}
func (AuthorizedEcho) isInstruction()               {}
func (InitializeVendingMachineEcho) isInstruction() {}
func (VendingMachineEcho) isInstruction()           {}
