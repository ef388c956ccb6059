package main

import (
	"context"
	"testing"

	"github.com/Guerrilla-Interactive/totonoe/app"
	"github.com/Guerrilla-Interactive/totonoe/app/flow"
	"github.com/Guerrilla-Interactive/totonoe/app/screens"
	"github.com/Guerrilla-Interactive/totonoe/app/store"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newProgramModel(t *testing.T) ProgramModel {
	t.Helper()
	log := zaptest.NewLogger(t)
	ctx := context.Background()
	c := flow.New(ctx, store.NewPersistence(store.NewMemoryStore(), log), log)
	env := &screens.Env{Ctx: ctx, Flow: c, Log: log}
	m, cmd := screens.Start(app.NewModel("test", c.Configuration()), env)
	return ProgramModel{M: m, Env: env, initCmd: cmd}
}

func TestProgramModelRoutesKeysAndResizes(t *testing.T) {
	pm := newProgramModel(t)

	next, _ := pm.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	pm = next.(ProgramModel)
	assert.Equal(t, 120, pm.M.TerminalWidth)

	next, _ = pm.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	pm = next.(ProgramModel)
	assert.Equal(t, app.ScreenLab, pm.M.CurrentScreen)
	assert.Contains(t, pm.View(), "Code Lab")

	next, _ = pm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	pm = next.(ProgramModel)
	assert.Equal(t, app.ScreenGuided, pm.M.CurrentScreen)
	assert.Contains(t, pm.View(), "1 / 5")
}

func TestProgramModelCopiedMsgSetsStatus(t *testing.T) {
	pm := newProgramModel(t)
	next, cmd := pm.Update(screens.CopiedMsg{})
	require.Nil(t, cmd)
	assert.NotEmpty(t, next.(ProgramModel).M.Status)
}

func TestRunVersionAndUnknownCommand(t *testing.T) {
	assert.Equal(t, 0, run([]string{"--version"}))
	assert.Equal(t, 0, run([]string{"--help"}))
	assert.Equal(t, 1, run([]string{"no-such-command"}))
}
