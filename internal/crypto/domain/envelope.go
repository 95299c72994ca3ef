package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/ClavisPass/ClavisPass-sub001/internal/errors"
	customValidation "github.com/ClavisPass/ClavisPass-sub001/internal/validation"
)

// VaultV1Envelope is the persisted V1 ciphertext record.
//
// Wire layout (field order is preserved by encoding/json):
//
//	{
//	  "v": 1,
//	  "kdf": {"alg":"argon2id","opslimit":3,"memlimit":67108864,"salt_b64":"...","keylen":32},
//	  "aead": {"alg":"xchacha20poly1305-ietf","nonce_b64":"...","aad_b64":"..."},
//	  "ct_b64": "..."
//	}
//
// An envelope is never mutated after it is produced; every save builds a new one.
type VaultV1Envelope struct {
	V    int        `json:"v"`
	KDF  KDFParams  `json:"kdf"`
	AEAD AEADParams `json:"aead"`
	// CtB64 is the base64 AEAD output: ciphertext followed by the authentication tag.
	CtB64 string `json:"ct_b64"`
}

// KDFParams are the Argon2id parameters replayed verbatim on decryption.
type KDFParams struct {
	Alg      Algorithm `json:"alg"`
	OpsLimit uint64    `json:"opslimit"`
	MemLimit uint64    `json:"memlimit"` // bytes
	SaltB64  string    `json:"salt_b64"`
	KeyLen   uint64    `json:"keylen"`
}

// AEADParams describe the authenticated encryption applied to the payload.
type AEADParams struct {
	Alg      Algorithm `json:"alg"`
	NonceB64 string    `json:"nonce_b64"`
	// AADB64 holds the exact AAD bytes used at encryption time. Decryption uses these
	// bytes instead of recomputing them.
	AADB64 string `json:"aad_b64"`
}

// Validate checks the envelope against the V1 schema: the version tag, algorithm
// literals, positive safe integer cost parameters, the fixed key length, and base64
// fields decoding to the fixed salt and nonce sizes.
func (e *VaultV1Envelope) Validate() error {
	return validation.ValidateStruct(e,
		validation.Field(&e.V, validation.Required, validation.In(VaultV1Version)),
		validation.Field(&e.KDF),
		validation.Field(&e.AEAD),
		validation.Field(&e.CtB64, validation.Required, customValidation.Base64),
	)
}

// Validate checks the KDF header.
func (k KDFParams) Validate() error {
	return validation.ValidateStruct(&k,
		validation.Field(&k.Alg, validation.Required, validation.In(Argon2id)),
		validation.Field(&k.OpsLimit, validation.Required, customValidation.PositiveSafeInteger),
		validation.Field(&k.MemLimit, validation.Required, customValidation.PositiveSafeInteger),
		validation.Field(&k.SaltB64, validation.Required, customValidation.Base64Len(SaltSize)),
		validation.Field(&k.KeyLen, validation.Required, validation.In(uint64(KeySize))),
	)
}

// Validate checks the AEAD header.
func (a AEADParams) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Alg, validation.Required, validation.In(XChaCha20Poly1305)),
		validation.Field(&a.NonceB64, validation.Required, customValidation.Base64Len(NonceSize)),
		validation.Field(&a.AADB64, validation.Required, customValidation.Base64),
	)
}

// String serializes the envelope to its JSON wire form.
func (e *VaultV1Envelope) String() string {
	b, err := json.Marshal(e)
	if err != nil {
		// Only plain strings and integers: marshalling cannot fail.
		panic(err)
	}
	return string(b)
}

// ParseVaultV1 decodes and schema-validates a V1 envelope.
// Any mismatch is reported as ErrInvalidEnvelope.
func ParseVaultV1(data []byte) (*VaultV1Envelope, error) {
	if err := checkV1Keys(data); err != nil {
		return nil, errors.Wrap(ErrInvalidEnvelope, err.Error())
	}
	var env VaultV1Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(ErrInvalidEnvelope, err.Error())
	}
	if err := env.Validate(); err != nil {
		return nil, errors.Wrap(ErrInvalidEnvelope, err.Error())
	}
	return &env, nil
}

// LegacyEnvelope is the pre-V1 record: PBKDF2 + AES-256-CBC without authentication.
// It can be decrypted but is never produced.
type LegacyEnvelope struct {
	LastUpdated string `json:"lastUpdated"`
	// Ciphertext is the base64 AES-CBC output.
	Ciphertext string `json:"ciphertext"`
	Salt       string `json:"salt"` // hex
	IV         string `json:"iv"`   // hex
}

// Validate checks the envelope against the legacy schema. Only lastUpdated has a format;
// ciphertext, salt and iv are any strings; decoding them is the codec's job, and a
// value that does not decode is an authentication failure, not a format mismatch.
func (l *LegacyEnvelope) Validate() error {
	return validation.ValidateStruct(l,
		validation.Field(&l.LastUpdated, validation.Required, customValidation.ISO8601),
	)
}

// ParseLegacy decodes and schema-validates a legacy envelope.
// Any mismatch is reported as ErrInvalidEnvelope.
func ParseLegacy(data []byte) (*LegacyEnvelope, error) {
	fields, err := objectFields(data)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidEnvelope, err.Error())
	}
	if err := checkFields(fields, legacyKeys, true); err != nil {
		return nil, errors.Wrap(ErrInvalidEnvelope, err.Error())
	}
	// encoding/json decodes null into "" without complaint.
	for _, key := range legacyKeys {
		if raw := strings.TrimSpace(string(fields[key])); !strings.HasPrefix(raw, `"`) {
			return nil, errors.Wrap(ErrInvalidEnvelope, key+": must be a string")
		}
	}
	var env LegacyEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(ErrInvalidEnvelope, err.Error())
	}
	if err := env.Validate(); err != nil {
		return nil, errors.Wrap(ErrInvalidEnvelope, err.Error())
	}
	return &env, nil
}

var (
	v1Keys     = []string{"v", "kdf", "aead", "ct_b64"}
	kdfKeys    = []string{"alg", "opslimit", "memlimit", "salt_b64", "keylen"}
	aeadKeys   = []string{"alg", "nonce_b64", "aad_b64"}
	legacyKeys = []string{"lastUpdated", "ciphertext", "salt", "iv"}
)

// encoding/json matches object keys case-insensitively. The wire format does not, so
// "V" or "CT_B64" must not stand in for "v" or "ct_b64". Keys unrelated to the schema
// are ignored.
func checkV1Keys(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	if err := checkFields(fields, v1Keys, false); err != nil {
		return err
	}
	for name, keys := range map[string][]string{"kdf": kdfKeys, "aead": aeadKeys} {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		nested, err := objectFields(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := checkFields(nested, keys, false); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func objectFields(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("envelope must be a JSON object")
	}
	return fields, nil
}

// checkFields rejects keys that differ from a schema key only by case and, when
// requireAll is set, schema keys that are absent.
func checkFields(fields map[string]json.RawMessage, keys []string, requireAll bool) error {
	for got := range fields {
		if slices.Contains(keys, got) {
			continue
		}
		for _, want := range keys {
			if strings.EqualFold(got, want) {
				return fmt.Errorf("unexpected key %q (expected %q)", got, want)
			}
		}
	}
	if requireAll {
		for _, want := range keys {
			if _, ok := fields[want]; !ok {
				return fmt.Errorf("%s: cannot be blank", want)
			}
		}
	}
	return nil
}
