package domain

import (
	"bytes"
	"encoding/json"

	validation "github.com/jellydator/validation"

	"github.com/ClavisPass/ClavisPass-sub001/internal/errors"
	customValidation "github.com/ClavisPass/ClavisPass-sub001/internal/validation"
)

// PayloadVersion is the version string written into new vaults.
const PayloadVersion = "1"

// MinDeviceIDLength is the shortest accepted device identifier.
const MinDeviceIDLength = 8

// Device is a client registered against a vault.
type Device struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Platform    string `json:"platform"`
	FirstSeenAt string `json:"firstSeenAt"`
	LastSeenAt  string `json:"lastSeenAt"`
}

// Validate checks the device fields.
func (d Device) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ID, validation.Required, validation.RuneLength(MinDeviceIDLength, 0)),
		validation.Field(&d.Name, validation.Required),
		validation.Field(&d.Platform, validation.Required),
	)
}

// Payload is the plaintext vault document.
//
// Folders and entries are kept as raw JSON: their shape belongs to the clients and is
// round-tripped byte for byte. Unknown top-level fields are preserved in Extra and
// written back on the next save.
type Payload struct {
	Version string
	Folder  []json.RawMessage
	Values  []json.RawMessage
	Devices []Device
	Extra   map[string]json.RawMessage
}

// EmptyPayload returns a vault with no folders, entries or devices.
func EmptyPayload() *Payload {
	return &Payload{
		Version: PayloadVersion,
		Folder:  []json.RawMessage{},
		Values:  []json.RawMessage{},
		Devices: []Device{},
	}
}

var knownPayloadFields = map[string]struct{}{
	"version": {},
	"folder":  {},
	"values":  {},
	"devices": {},
}

// UnmarshalJSON decodes a payload, defaulting absent collections to empty ones.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	out := Payload{Folder: []json.RawMessage{}, Values: []json.RawMessage{}, Devices: []Device{}}
	if raw, ok := fields["version"]; ok {
		if err := json.Unmarshal(raw, &out.Version); err != nil {
			return err
		}
	}
	if raw, ok := fields["folder"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &out.Folder); err != nil {
			return err
		}
	}
	if raw, ok := fields["values"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &out.Values); err != nil {
			return err
		}
	}
	if raw, ok := fields["devices"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &out.Devices); err != nil {
			return err
		}
	}
	for k, v := range fields {
		if _, known := knownPayloadFields[k]; known {
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]json.RawMessage)
		}
		out.Extra[k] = v
	}

	*p = out
	return nil
}

// MarshalJSON encodes the payload with its preserved extra fields.
func (p Payload) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(p.Extra)+4)
	for k, v := range p.Extra {
		fields[k] = v
	}
	fields["version"] = p.Version
	fields["folder"] = nonNil(p.Folder)
	fields["values"] = nonNil(p.Values)
	if p.Devices == nil {
		fields["devices"] = []Device{}
	} else {
		fields["devices"] = p.Devices
	}
	return json.Marshal(fields)
}

// Validate checks the payload schema: a version string, and well-formed devices.
func (p *Payload) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Version, validation.Required, customValidation.NotBlank),
		validation.Field(&p.Devices),
	)
}

// ParsePayload decodes and validates plaintext vault JSON. A JSON null yields the empty
// vault. Any other mismatch is ErrInvalidPayload.
func ParsePayload(data []byte) (*Payload, error) {
	if isNull(data) {
		return EmptyPayload(), nil
	}
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(ErrInvalidPayload, err.Error())
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(ErrInvalidPayload, err.Error())
	}
	return &p, nil
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func nonNil(items []json.RawMessage) []json.RawMessage {
	if items == nil {
		return []json.RawMessage{}
	}
	return items
}
