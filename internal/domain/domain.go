// Package domain holds the enumerated vocabulary shared by storage, API, and
// clients: lead temperatures and pipeline stages, visit statuses, call
// outcomes, team roles, and task classification. Values travel as plain
// strings on the wire and in the database; the Parse helpers are the
// validation boundary.
package domain

import (
	"fmt"
	"strings"
)

// Temperature is a lead's buying interest.
type Temperature string

const (
	TempHot  Temperature = "hot"
	TempWarm Temperature = "warm"
	TempCold Temperature = "cold"
)

// Temperatures lists all temperatures, hottest first. Chart series iterate
// this to get a stable order.
var Temperatures = []Temperature{TempHot, TempWarm, TempCold}

func (t Temperature) Valid() bool {
	switch t {
	case TempHot, TempWarm, TempCold:
		return true
	}
	return false
}

// ParseTemperature validates a wire string into a Temperature.
func ParseTemperature(s string) (Temperature, error) {
	t := Temperature(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid temperature %q (want hot, warm, or cold)", s)
	}
	return t, nil
}

// Stage is a lead's position in the sales pipeline.
type Stage string

const (
	StageNew         Stage = "new"
	StageContacted   Stage = "contacted"
	StageQualified   Stage = "qualified"
	StageSiteVisit   Stage = "site_visit"
	StageNegotiation Stage = "negotiation"
	StageToken       Stage = "token"
	StageClosed      Stage = "closed"
	StageLost        Stage = "lost"
)

// Stages lists all stages in funnel order.
var Stages = []Stage{
	StageNew, StageContacted, StageQualified, StageSiteVisit,
	StageNegotiation, StageToken, StageClosed, StageLost,
}

func (s Stage) Valid() bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether the lead has left the active pipeline.
func (s Stage) Terminal() bool {
	return s == StageClosed || s == StageLost
}

// Label returns the human-readable stage name.
func (s Stage) Label() string {
	switch s {
	case StageNew:
		return "New"
	case StageContacted:
		return "Contacted"
	case StageQualified:
		return "Qualified"
	case StageSiteVisit:
		return "Site Visit"
	case StageNegotiation:
		return "Negotiation"
	case StageToken:
		return "Token Paid"
	case StageClosed:
		return "Closed"
	case StageLost:
		return "Lost"
	}
	return string(s)
}

// ParseStage validates a wire string into a Stage.
func ParseStage(s string) (Stage, error) {
	st := Stage(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("invalid stage %q", s)
	}
	return st, nil
}

// VisitStatus is the lifecycle state of a scheduled site visit.
type VisitStatus string

const (
	VisitScheduled   VisitStatus = "scheduled"
	VisitCompleted   VisitStatus = "completed"
	VisitCancelled   VisitStatus = "cancelled"
	VisitRescheduled VisitStatus = "rescheduled"
)

func (v VisitStatus) Valid() bool {
	switch v {
	case VisitScheduled, VisitCompleted, VisitCancelled, VisitRescheduled:
		return true
	}
	return false
}

// ParseVisitStatus validates a wire string into a VisitStatus.
func ParseVisitStatus(s string) (VisitStatus, error) {
	v := VisitStatus(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("invalid visit status %q", s)
	}
	return v, nil
}

// Role is a team member's permission level.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleAgent   Role = "agent"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleAgent:
		return true
	}
	return false
}

// ParseRole validates a wire string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q (want admin, manager, or agent)", s)
	}
	return r, nil
}

// CallOutcome records how a call attempt ended. Outcomes where the lead was
// actually reached share the "connected" prefix.
type CallOutcome string

const (
	CallConnected              CallOutcome = "connected"
	CallConnectedCallback      CallOutcome = "connected_callback"
	CallConnectedNotInterested CallOutcome = "connected_not_interested"
	CallNoAnswer               CallOutcome = "no_answer"
	CallBusy                   CallOutcome = "busy"
	CallSwitchedOff            CallOutcome = "switched_off"
	CallWrongNumber            CallOutcome = "wrong_number"
)

func (c CallOutcome) Valid() bool {
	switch c {
	case CallConnected, CallConnectedCallback, CallConnectedNotInterested,
		CallNoAnswer, CallBusy, CallSwitchedOff, CallWrongNumber:
		return true
	}
	return false
}

// Connected reports whether the lead picked up, regardless of how the
// conversation went.
func (c CallOutcome) Connected() bool {
	return strings.HasPrefix(string(c), string(CallConnected))
}

// ParseCallOutcome validates a wire string into a CallOutcome.
func ParseCallOutcome(s string) (CallOutcome, error) {
	c := CallOutcome(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid call outcome %q", s)
	}
	return c, nil
}

// TaskType classifies a synthesized dashboard task.
type TaskType string

const (
	TaskVisit    TaskType = "visit"
	TaskFollowup TaskType = "followup"
)

// TaskPriority orders synthesized tasks.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// Rank maps a priority to its sort position: high sorts first, unknown
// values last.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}
