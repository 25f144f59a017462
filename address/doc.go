// Package address contains the ledger identity types:
// * Address is a 32-byte account identity (public key or derived address).
// * Find and Create derive addresses from seeds that no private key can sign for.
package address
