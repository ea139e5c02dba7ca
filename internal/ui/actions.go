package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/flowdeck/internal/alerts"
	"github.com/five82/flowdeck/internal/flowapi"
	"github.com/five82/flowdeck/internal/grid"
	"github.com/five82/flowdeck/internal/screens"
	"github.com/five82/flowdeck/internal/state"
)

// flowTarget identifies the flow a command applies to.
type flowTarget struct {
	name    string
	label   string
	trigger string
	record  flowapi.Record
}

// selectedFlow returns the highlighted flow on the flows screen or the open
// flow on the detail screen.
func (m Model) selectedFlow() (flowTarget, bool) {
	switch m.screen {
	case screenFlows:
		rec, ok := m.flowGrid.Selected()
		if !ok {
			return flowTarget{}, false
		}
		name := grid.Resolve(rec, "name").String()
		if name == "" {
			return flowTarget{}, false
		}
		return flowTarget{
			name:    name,
			label:   recordName(grid.Resolve(rec, "properties.displayName").String(), name),
			trigger: screens.PrimaryTrigger(rec),
			record:  rec,
		}, true
	case screenDetail:
		if m.flowName == "" {
			return flowTarget{}, false
		}
		trigger := m.trigger
		if trigger == "" {
			trigger = screens.PrimaryTrigger(m.flow)
		}
		return flowTarget{name: m.flowName, label: m.flowLabel, trigger: trigger, record: m.flow}, true
	}
	return flowTarget{}, false
}

// flowGate is the resource whose loading blocks flow commands.
func (m Model) flowGate() state.Key {
	if m.screen == screenDetail {
		return m.keyFor(state.KindFlow)
	}
	return m.keyFor(state.KindFlows)
}

// flowRefresh lists the resources to reload after a flow command.
func (m Model) flowRefresh(flow string) []state.Key {
	keys := []state.Key{{Kind: state.KindFlows, Environment: m.env}}
	if m.screen == screenDetail {
		keys = append(keys,
			state.Key{Kind: state.KindFlow, Environment: m.env, Flow: flow},
			state.Key{Kind: state.KindRuns, Environment: m.env, Flow: flow},
		)
	}
	return keys
}

// startAction runs fn unless the subject already has a command in flight or
// gate is loading. Refusals are reported as warnings.
func (m Model) startAction(subject string, gate state.Key, done actionDoneMsg, fn func(context.Context) error) tea.Cmd {
	if m.api == nil {
		m.alerts.Add(alerts.Entry{Message: "no API client configured", Intent: alerts.IntentError})
		return nil
	}
	if m.pending[subject] {
		m.alerts.Add(alerts.Entry{Message: subject + " is busy; wait for the previous command to finish", Intent: alerts.IntentWarning})
		return nil
	}
	if m.loading(gate) {
		m.alerts.Add(alerts.Entry{Message: subject + " is refreshing; try again when it has loaded", Intent: alerts.IntentWarning})
		return nil
	}
	m.pending[subject] = true
	done.subject = subject
	m.logger.Debug("command started", "subject", subject)
	return actionCmd(m.ctx, done, fn)
}

func (m Model) runFlow() tea.Cmd {
	t, ok := m.selectedFlow()
	if !ok {
		return nil
	}
	env := m.env
	done := actionDoneMsg{
		success: fmt.Sprintf("Started a run of %s via trigger %q", t.label, t.trigger),
		refresh: m.flowRefresh(t.name),
	}
	return m.startAction(t.label, m.flowGate(), done, func(ctx context.Context) error {
		return m.api.RunFlow(ctx, env, t.name, t.trigger)
	})
}

func (m Model) setFlowEnabled(enabled bool) tea.Cmd {
	t, ok := m.selectedFlow()
	if !ok {
		return nil
	}
	if f, err := flowapi.Decode[flowapi.Flow](t.record); err == nil && f.Properties.State != "" && f.Enabled() == enabled {
		word := "disabled"
		if enabled {
			word = "enabled"
		}
		m.alerts.Add(alerts.Entry{Message: fmt.Sprintf("%s is already %s", t.label, word), Intent: alerts.IntentInfo})
		return nil
	}

	env := m.env
	done := actionDoneMsg{refresh: m.flowRefresh(t.name)}
	if enabled {
		done.success = t.label + " enabled"
		return m.startAction(t.label, m.flowGate(), done, func(ctx context.Context) error {
			return m.api.StartFlow(ctx, env, t.name)
		})
	}
	done.success = t.label + " disabled"
	return m.startAction(t.label, m.flowGate(), done, func(ctx context.Context) error {
		return m.api.StopFlow(ctx, env, t.name)
	})
}

// confirmDelete opens the y/n dialog; the delete runs only on yes.
func (m *Model) confirmDelete() {
	t, ok := m.selectedFlow()
	if !ok {
		return
	}
	confirmed := deleteConfirmedMsg{env: m.env, target: t}
	m.modal = confirmModal{
		title:     "Delete flow",
		prompt:    fmt.Sprintf("Delete %s permanently? This cannot be undone.", t.label),
		onConfirm: func() tea.Msg { return confirmed },
	}
}

func (m Model) deleteFlow(msg deleteConfirmedMsg) tea.Cmd {
	t := msg.target
	done := actionDoneMsg{
		success: t.label + " deleted",
		refresh: []state.Key{{Kind: state.KindFlows, Environment: msg.env}},
		deleted: true,
	}
	return m.startAction(t.label, m.flowGate(), done, func(ctx context.Context) error {
		return m.api.DeleteFlow(ctx, msg.env, t.name)
	})
}

// selectedRun returns the run under the cursor on the runs tab.
func (m Model) selectedRun() (flowapi.Run, bool) {
	rec, ok := m.runGrid.Selected()
	if !ok {
		return flowapi.Run{}, false
	}
	run, err := flowapi.Decode[flowapi.Run](rec)
	if err != nil || run.Name == "" {
		return flowapi.Run{}, false
	}
	return run, true
}

func (m Model) runRefresh() []state.Key {
	return []state.Key{m.keyFor(state.KindRuns)}
}

func (m Model) cancelRun() tea.Cmd {
	run, ok := m.selectedRun()
	if !ok {
		return nil
	}
	if !run.Running() {
		m.alerts.Add(alerts.Entry{
			Message: fmt.Sprintf("run %s is %s and cannot be cancelled", run.Name, run.Properties.Status),
			Intent:  alerts.IntentInfo,
		})
		return nil
	}
	env, flow := m.env, m.flowName
	done := actionDoneMsg{success: "Cancelled run " + run.Name, refresh: m.runRefresh()}
	return m.startAction("run "+run.Name, m.keyFor(state.KindRuns), done, func(ctx context.Context) error {
		return m.api.CancelRun(ctx, env, flow, run.Name)
	})
}

func (m Model) resubmitRun() tea.Cmd {
	run, ok := m.selectedRun()
	if !ok {
		return nil
	}
	trigger := run.Properties.Trigger.Name
	if trigger == "" {
		trigger = m.trigger
	}
	env, flow := m.env, m.flowName
	done := actionDoneMsg{success: "Resubmitted run " + run.Name, refresh: m.runRefresh()}
	return m.startAction("run "+run.Name, m.keyFor(state.KindRuns), done, func(ctx context.Context) error {
		return m.api.ResubmitRun(ctx, env, flow, trigger, run.Name)
	})
}

// handleActionDone reports a finished command and reloads what it touched.
func (m Model) handleActionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	delete(m.pending, msg.subject)
	if msg.err != nil {
		m.logger.Warn("command failed", "subject", msg.subject, "error", msg.err)
		m.alerts.Add(alerts.Entry{Message: msg.err, Intent: alerts.IntentError})
		return m, nil
	}
	m.alerts.Add(alerts.Entry{Message: msg.success, Intent: alerts.IntentSuccess})

	if msg.deleted && m.screen == screenDetail {
		m.screen = screenFlows
	}

	if m.loader == nil {
		return m, nil
	}
	cmds := make([]tea.Cmd, 0, len(msg.refresh))
	for _, key := range msg.refresh {
		cmds = append(cmds, loadCmd(m.ctx, m.loader, key))
	}
	return m, tea.Batch(cmds...)
}
