package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// rootLiteral is how clients refer to the root, both in JSON bodies and in
// query strings
const rootLiteral = "0"

// ParentID references the folder a record lives in. The zero value is the
// root, which is never equal to a real identifier.
type ParentID struct {
	id string
}

// Root returns the root parent
func Root() ParentID {
	return ParentID{}
}

// ParentOf returns a parent referencing the folder with the given id. An empty
// id or the "0" literal are treated as the root.
func ParentOf(id string) ParentID {
	if id == rootLiteral {
		return Root()
	}

	return ParentID{id: id}
}

func (p ParentID) IsRoot() bool {
	return p.id == ""
}

// ID returns the referenced folder id, empty for the root
func (p ParentID) ID() string {
	return p.id
}

func (p ParentID) String() string {
	if p.IsRoot() {
		return rootLiteral
	}

	return p.id
}

// MarshalJSON renders the root as 0 and any folder as its id string
func (p ParentID) MarshalJSON() ([]byte, error) {
	if p.IsRoot() {
		return []byte(rootLiteral), nil
	}

	return json.Marshal(p.id)
}

// UnmarshalJSON accepts null, 0, "0", "" and folder id strings. Other numbers
// are kept as ids so the folder lookup reports them missing.
func (p *ParentID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if len(b) == 0 || bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte(rootLiteral)) {
		*p = Root()
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = ParentOf(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("parentId must be a string or a number, %w", err)
	}

	*p = ParentOf(n.String())
	return nil
}

// GormDataType tells gorm to store the parent as a string column
func (ParentID) GormDataType() string {
	return "string"
}

// Value implements the driver.Valuer interface.
// The root is stored as an empty string, which no generated id can be.
func (p ParentID) Value() (driver.Value, error) {
	return p.id, nil
}

// Scan implements the sql.Scanner interface.
func (p *ParentID) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = Root()
	case string:
		*p = ParentID{id: v}
	case []byte:
		*p = ParentID{id: string(v)}
	default:
		return fmt.Errorf("failed to scan ParentID, %v", value)
	}

	return nil
}
