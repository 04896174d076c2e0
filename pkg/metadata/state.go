package metadata

import "fmt"

// StorageUnitState is the lifecycle state of a storage unit. Only NEW is
// defined; transitions between states are not modelled yet.
type StorageUnitState string

const (
	StateNew StorageUnitState = "NEW"
)

func NewStorageUnitState(value string) (StorageUnitState, error) {
	state := StorageUnitState(value)
	if !state.IsValid() {
		return "", fmt.Errorf("invalid storage unit state: %s", value)
	}
	return state, nil
}

func (s StorageUnitState) IsValid() bool {
	switch s {
	case StateNew:
		return true
	default:
		return false
	}
}

func (s StorageUnitState) String() string {
	return string(s)
}
