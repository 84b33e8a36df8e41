// Package identity maps externally-authenticated principals to registered
// users and carries the resolved identity through request contexts.
//
// The resolver is the sole authentication trust boundary of the vault: it
// assumes the principal identifier (a verified email) has already been
// authenticated by the external identity provider and performs no
// credential verification itself. Unknown principals fail closed.
package identity
