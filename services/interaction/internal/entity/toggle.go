package entity

type ToggleState string

const (
	ToggleAdded   ToggleState = "added"
	ToggleRemoved ToggleState = "removed"
)

// ToggleResult reports which way a toggle went and the record that was
// created or deleted.
type ToggleResult[T any] struct {
	State  ToggleState `json:"state"`
	Record *T          `json:"record"`
}
