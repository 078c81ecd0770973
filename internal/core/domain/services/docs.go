// Package services provides domain services that do not belong to a single aggregate.
//
// The package includes:
//   - Archiver: folds a delivered order into per-participant history entries
//   - PaymentSignatureVerifier: checks the payment gateway's HMAC signature
package services
