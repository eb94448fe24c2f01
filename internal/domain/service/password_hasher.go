// Package service holds the ports the auth usecases depend on: credential
// hashing, local tokens, the identity provider and event publishing.
package service

// PasswordHasher stores and verifies local account passwords. Accounts created
// through the external identity provider carry no hash and never match.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}
