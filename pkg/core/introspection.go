package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Boards        int    `json:"boards"`
	ActiveBoardID string `json:"active_board_id"`
	StoreType     string `json:"store_type"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	storeType := "none"
	if s.primary != nil {
		storeType = "kv"
		if comp, ok := s.primary.(introspection.Component); ok {
			storeType = comp.ComponentType()
		}
	}
	return ServiceState{
		Boards:        s.col.Len(),
		ActiveBoardID: s.col.ActiveID(),
		StoreType:     storeType,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
