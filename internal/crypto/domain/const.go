package domain

// Algorithm names an algorithm as it appears in a vault envelope header.
//
// The string values are part of the on-disk format and are also folded into the
// additional authenticated data, so they must never change for an existing version.
type Algorithm string

const (
	// Argon2id is the memory-hard password hashing function used to derive the vault key.
	//
	// Parameters follow libsodium's crypto_pwhash conventions:
	//   - opslimit: number of passes over memory
	//   - memlimit: memory in bytes (converted to KiB internally)
	//   - a single lane
	Argon2id Algorithm = "argon2id"

	// XChaCha20Poly1305 is the IETF XChaCha20-Poly1305 AEAD construction in combined mode
	// (ciphertext followed by the 16-byte Poly1305 tag).
	//
	// Key features:
	//   - 256-bit key
	//   - 24-byte nonce, safe to generate at random for every encryption
	//   - 16-byte authentication tag
	XChaCha20Poly1305 Algorithm = "xchacha20poly1305-ietf"
)

// Format identifies which envelope layout a piece of vault content uses.
type Format string

const (
	// FormatV1 is the current Argon2id + XChaCha20-Poly1305 envelope.
	FormatV1 Format = "v1"

	// FormatLegacy is the PBKDF2 + AES-256-CBC envelope. Read-only.
	FormatLegacy Format = "legacy"

	// FormatUnknown is reported for content that matches no known envelope schema.
	FormatUnknown Format = "unknown"
)

// VaultV1Version is the literal value of the "v" field of a V1 envelope.
const VaultV1Version = 1

// Fixed sizes of the V1 primitives, in bytes.
const (
	SaltSize  = 16
	KeySize   = 32
	NonceSize = 24
	TagSize   = 16
)

// Argon2id cost defaults and bounds.
const (
	// DefaultOpsLimit is the number of Argon2id passes used when none is configured.
	DefaultOpsLimit uint64 = 3

	// DefaultMemLimit is the Argon2id memory cost used when none is configured (64 MiB).
	DefaultMemLimit uint64 = 64 * 1024 * 1024

	// MinMemLimit is the smallest memory cost accepted by libsodium for Argon2id (8 KiB).
	MinMemLimit uint64 = 8 * 1024

	// DefaultMaxOpsLimit caps the pass count accepted from a stored envelope. Argon2id
	// time grows linearly with passes, so an unbounded value pins a CPU for hours.
	DefaultMaxOpsLimit uint64 = 64

	// DefaultMaxMemLimit caps the memory cost accepted from a stored envelope (1 GiB).
	// Envelopes above the cap are treated as malformed rather than attempted.
	DefaultMaxMemLimit uint64 = 1024 * 1024 * 1024
)

// Legacy envelope parameters.
const (
	// LegacyIterations is the fixed PBKDF2 iteration count of the legacy format.
	LegacyIterations = 1000

	// LegacyKeySize is the AES-256 key length derived by PBKDF2.
	LegacyKeySize = 32
)
