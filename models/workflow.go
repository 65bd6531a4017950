package models

// statusOrder is the canonical display order of workflow states.
var statusOrder = []TaskStatus{
	StatusTodo,
	StatusInProgress,
	StatusInReview,
	StatusTesting,
	StatusBlocked,
	StatusDone,
}

// validStatusTransitions is the fixed workflow graph. A status maps to the
// set of states it may move to; done is terminal and maps to nothing.
var validStatusTransitions = map[TaskStatus]map[TaskStatus]bool{
	StatusTodo: {
		StatusInProgress: true,
		StatusBlocked:    true,
	},
	StatusInProgress: {
		StatusInReview: true,
		StatusTesting:  true,
		StatusBlocked:  true,
		StatusDone:     true,
	},
	StatusInReview: {
		StatusInProgress: true,
		StatusTesting:    true,
		StatusDone:       true,
	},
	StatusTesting: {
		StatusInProgress: true,
		StatusDone:       true,
		StatusBlocked:    true,
	},
	StatusBlocked: {
		StatusTodo:       true,
		StatusInProgress: true,
	},
	StatusDone: {},
}

// AllStatuses returns every workflow state in canonical order.
func AllStatuses() []TaskStatus {
	out := make([]TaskStatus, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// ValidStatusStrings returns the state names in canonical order, for
// error messages and help text.
func ValidStatusStrings() []string {
	out := make([]string, len(statusOrder))
	for i, s := range statusOrder {
		out[i] = string(s)
	}
	return out
}

// ValidPriorityStrings returns the priority names from lowest to highest.
func ValidPriorityStrings() []string {
	return []string{
		string(PriorityLow),
		string(PriorityMedium),
		string(PriorityHigh),
		string(PriorityCritical),
	}
}

// IsValidStatus reports whether s names a known workflow state.
func IsValidStatus(s TaskStatus) bool {
	_, ok := validStatusTransitions[s]
	return ok
}

// IsValidPriority reports whether p names a known priority level.
func IsValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// IsTerminalStatus reports whether a state has no outgoing transitions.
func IsTerminalStatus(s TaskStatus) bool {
	allowed, ok := validStatusTransitions[s]
	return ok && len(allowed) == 0
}

// CanTransition reports whether the workflow graph permits from -> to.
// Unknown source states permit nothing.
func CanTransition(from, to TaskStatus) bool {
	allowed, ok := validStatusTransitions[from]
	if !ok {
		return false
	}
	return allowed[to]
}

// AllowedTransitions returns the states reachable from the given state,
// in canonical order. Empty for done and for unknown states.
func AllowedTransitions(from TaskStatus) []TaskStatus {
	allowed, ok := validStatusTransitions[from]
	if !ok {
		return nil
	}
	var out []TaskStatus
	for _, s := range statusOrder {
		if allowed[s] {
			out = append(out, s)
		}
	}
	return out
}

// ValidateTransition checks the requested status edge against the workflow
// graph and returns a TransitionError naming the edge and the permitted
// targets when it is forbidden.
func ValidateTransition(from, to TaskStatus) error {
	if CanTransition(from, to) {
		return nil
	}
	return &TransitionError{From: from, To: to, Allowed: AllowedTransitions(from)}
}
