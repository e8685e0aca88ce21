package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// OptionalID is a reference to another record that may be absent.
// The zero value is NoID().
type OptionalID struct {
	id    uint
	valid bool
}

func SomeID(id uint) OptionalID {
	return OptionalID{id: id, valid: true}
}

func NoID() OptionalID {
	return OptionalID{}
}

// Get returns the identifier and whether it is present.
func (o OptionalID) Get() (uint, bool) {
	return o.id, o.valid
}

func (o OptionalID) IsSome() bool {
	return o.valid
}

// Is reports whether o holds exactly id.
func (o OptionalID) Is(id uint) bool {
	return o.valid && o.id == id
}

func (o OptionalID) String() string {
	if !o.valid {
		return "none"
	}
	return fmt.Sprintf("%d", o.id)
}

func (OptionalID) GormDataType() string {
	return "bigint"
}

func (o OptionalID) Value() (driver.Value, error) {
	if !o.valid {
		return nil, nil
	}
	return int64(o.id), nil
}

func (o *OptionalID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*o = NoID()
		return nil
	case []byte:
		src = string(v)
	}

	id, err := cast.ToUintE(src)
	if err != nil {
		return fmt.Errorf("scan optional id: %w", err)
	}
	*o = SomeID(id)
	return nil
}

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if !o.valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.id)
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = NoID()
		return nil
	}

	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*o = SomeID(id)
	return nil
}
