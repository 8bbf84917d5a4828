// Package security hashes and verifies passwords.
package security
