// Package ledger is an in-process execution engine for account-based
// programs. It gives every transaction all-or-nothing semantics: account
// changes are staged, verified against ownership rules after every program
// invocation and written to the store only when every instruction of the
// transaction succeeded. Programs may call each other, and may sign for
// addresses derived from their own id.
package ledger
