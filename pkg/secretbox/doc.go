// Package secretbox implements the at-rest encode/decode boundary for
// stored secrets.
//
// The default codec is AES-256-GCM keyed by a per-deployment data key. The
// packed ciphertext is armored with base64 so stored values stay printable
// text. Each value is bound to a scope string (the owning row id) used as
// the cipher's additional authenticated data, so a ciphertext cannot be
// replayed under a different row.
//
// A legacy plain-base64 codec is kept for rows imported from the
// spreadsheet-era store; it is a reversible encoding only and provides no
// confidentiality.
package secretbox
