package models

import (
	"errors"
	"strings"
	"testing"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from TaskStatus
		to   TaskStatus
		want bool
	}{
		{"todo to inprogress", StatusTodo, StatusInProgress, true},
		{"todo to blocked", StatusTodo, StatusBlocked, true},
		{"todo to done", StatusTodo, StatusDone, false},
		{"todo to inreview", StatusTodo, StatusInReview, false},
		{"inprogress to inreview", StatusInProgress, StatusInReview, true},
		{"inprogress to testing", StatusInProgress, StatusTesting, true},
		{"inprogress to blocked", StatusInProgress, StatusBlocked, true},
		{"inprogress to done", StatusInProgress, StatusDone, true},
		{"inprogress to todo", StatusInProgress, StatusTodo, false},
		{"inreview to inprogress", StatusInReview, StatusInProgress, true},
		{"inreview to testing", StatusInReview, StatusTesting, true},
		{"inreview to done", StatusInReview, StatusDone, true},
		{"inreview to blocked", StatusInReview, StatusBlocked, false},
		{"testing to inprogress", StatusTesting, StatusInProgress, true},
		{"testing to done", StatusTesting, StatusDone, true},
		{"testing to blocked", StatusTesting, StatusBlocked, true},
		{"testing to inreview", StatusTesting, StatusInReview, false},
		{"blocked to todo", StatusBlocked, StatusTodo, true},
		{"blocked to inprogress", StatusBlocked, StatusInProgress, true},
		{"blocked to done", StatusBlocked, StatusDone, false},
		{"done to todo", StatusDone, StatusTodo, false},
		{"done to inprogress", StatusDone, StatusInProgress, false},
		{"done to done", StatusDone, StatusDone, false},
		{"unknown source", TaskStatus("archived"), StatusTodo, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestValidateTransition(t *testing.T) {
	if err := ValidateTransition(StatusTodo, StatusInProgress); err != nil {
		t.Errorf("ValidateTransition(todo, inprogress) = %v, want nil", err)
	}

	err := ValidateTransition(StatusTodo, StatusDone)
	if err == nil {
		t.Fatal("ValidateTransition(todo, done) = nil, want error")
	}
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransitionError, got %T", err)
	}
	if te.From != StatusTodo || te.To != StatusDone {
		t.Errorf("error edge = %q -> %q", te.From, te.To)
	}
	msg := err.Error()
	for _, want := range []string{"todo", "done", "inprogress", "blocked"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}
}

func TestValidateTransition_DoneIsTerminal(t *testing.T) {
	err := ValidateTransition(StatusDone, StatusTodo)
	if err == nil {
		t.Fatal("expected error leaving done")
	}
	if !strings.Contains(err.Error(), "terminal") {
		t.Errorf("error message %q should name the terminal state", err.Error())
	}
}

func TestAllowedTransitions_CanonicalOrder(t *testing.T) {
	tests := []struct {
		from TaskStatus
		want []TaskStatus
	}{
		{StatusTodo, []TaskStatus{StatusInProgress, StatusBlocked}},
		{StatusInProgress, []TaskStatus{StatusInReview, StatusTesting, StatusBlocked, StatusDone}},
		{StatusInReview, []TaskStatus{StatusInProgress, StatusTesting, StatusDone}},
		{StatusTesting, []TaskStatus{StatusInProgress, StatusBlocked, StatusDone}},
		{StatusBlocked, []TaskStatus{StatusTodo, StatusInProgress}},
		{StatusDone, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			got := AllowedTransitions(tt.from)
			if len(got) != len(tt.want) {
				t.Fatalf("AllowedTransitions(%q) = %v, want %v", tt.from, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("AllowedTransitions(%q)[%d] = %q, want %q", tt.from, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	for _, s := range AllStatuses() {
		if !IsValidStatus(s) {
			t.Errorf("IsValidStatus(%q) = false", s)
		}
	}
	if IsValidStatus("doing") {
		t.Error("IsValidStatus accepted an unknown state")
	}

	if !IsTerminalStatus(StatusDone) {
		t.Error("done should be terminal")
	}
	for _, s := range []TaskStatus{StatusTodo, StatusInProgress, StatusInReview, StatusTesting, StatusBlocked} {
		if IsTerminalStatus(s) {
			t.Errorf("%q should not be terminal", s)
		}
	}

	if !IsValidPriority(PriorityCritical) || IsValidPriority("urgent") {
		t.Error("priority predicate mismatch")
	}
}
