package session

import (
	"github.com/qmuntal/stateless"

	"github.com/pennyplan/coach-go/internal/logger"
)

// Pane states
type PaneState stateless.State

var (
	StateNoConversation PaneState = "NoConversation" // no id, no messages
	StateComposing      PaneState = "Composing"      // local draft, backend id not yet assigned
	StateCommitted      PaneState = "Committed"      // backend conversation id assigned
)

// Pane triggers
type PaneTrigger stateless.Trigger

var (
	TriggerCompose  PaneTrigger = "Compose"  // a message enters a fresh session
	TriggerAssigned PaneTrigger = "Assigned" // backend assigned a conversation id
	TriggerSelected PaneTrigger = "Selected" // a prior conversation was opened
	TriggerNewChat  PaneTrigger = "NewChat"  // explicit reset
)

// Pane tracks the lifecycle of the active conversation pane. A fresh session
// moves NoConversation -> Composing on the first message and Composing ->
// Committed once the backend assigns an id. Opening a prior conversation
// jumps straight to Committed; New Chat returns any state to NoConversation.
type Pane struct {
	fsm *stateless.StateMachine
}

func NewPane() *Pane {
	fsm := stateless.NewStateMachine(StateNoConversation)

	fsm.Configure(StateNoConversation).
		Permit(TriggerCompose, StateComposing).
		Permit(TriggerSelected, StateCommitted).
		PermitReentry(TriggerNewChat)

	fsm.Configure(StateComposing).
		PermitReentry(TriggerCompose).
		Permit(TriggerAssigned, StateCommitted).
		Permit(TriggerSelected, StateCommitted).
		Permit(TriggerNewChat, StateNoConversation)

	fsm.Configure(StateCommitted).
		PermitReentry(TriggerCompose).
		PermitReentry(TriggerAssigned).
		PermitReentry(TriggerSelected).
		Permit(TriggerNewChat, StateNoConversation)

	return &Pane{fsm: fsm}
}

// State returns the current pane state.
func (p *Pane) State() PaneState {
	return PaneState(p.fsm.MustState())
}

func (p *Pane) fire(trigger PaneTrigger) {
	if err := p.fsm.Fire(trigger); err != nil {
		logger.L.Warn("pane transition rejected", "trigger", trigger, "state", p.fsm.MustState(), "error", err)
	}
}

func (p *Pane) Compose()  { p.fire(TriggerCompose) }
func (p *Pane) Assigned() { p.fire(TriggerAssigned) }
func (p *Pane) Selected() { p.fire(TriggerSelected) }
func (p *Pane) NewChat()  { p.fire(TriggerNewChat) }
