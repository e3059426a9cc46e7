package domain

import "time"

// CustomFieldType enumerates admin-defined field kinds.
type CustomFieldType string

const (
	CustomFieldText     CustomFieldType = "text"
	CustomFieldDropdown CustomFieldType = "dropdown"
	CustomFieldDate     CustomFieldType = "date"
	CustomFieldCurrency CustomFieldType = "currency"
)

// Valid reports whether t is a known field type.
func (t CustomFieldType) Valid() bool {
	switch t {
	case CustomFieldText, CustomFieldDropdown, CustomFieldDate, CustomFieldCurrency:
		return true
	}
	return false
}

// CustomField is an admin-defined field attached to accounts.
type CustomField struct {
	ID        string
	Name      string
	Type      CustomFieldType
	Options   []string
	Position  int
	CreatedAt time.Time
}

// CustomFieldValue is one field/value pair on an account, consumed as opaque
// key-value data by forms and display components.
type CustomFieldValue struct {
	SurgeonID string
	FieldID   string
	Value     string
	UpdatedAt time.Time
}
