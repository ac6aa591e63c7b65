package domain

// Decision is an approver's input at the current stage
type Decision struct {
	ApplicationID string `json:"application_id" yaml:"application_id" validate:"required"`
	ActorID       string `json:"actor_id" yaml:"actor_id" validate:"required"`
	Action        string `json:"action" yaml:"action" validate:"required,oneof=approve reject"`
	Comment       string `json:"comment,omitempty" yaml:"comment,omitempty"`

	// RoutingChoice is only accepted on a director's approval
	RoutingChoice string `json:"routing_choice,omitempty" yaml:"routing_choice,omitempty"`
	// SelectedManagerIDs replaces the configured manager group when routing to manager
	SelectedManagerIDs []string `json:"selected_manager_ids,omitempty" yaml:"selected_manager_ids,omitempty"`
}
