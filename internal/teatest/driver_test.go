package teatest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type loadedMsg struct{ n int }

// counter loads a starting value on Init, counts "+" presses and quits on q.
type counter struct {
	n     int
	width int
}

func (c *counter) Init() tea.Cmd {
	return func() tea.Msg { return loadedMsg{n: 10} }
}

func (c *counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		c.n = msg.n
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "+":
			return c, tea.Batch(
				func() tea.Msg { return loadedMsg{n: c.n + 1} },
				nil,
			)
		case "q":
			return c, tea.Quit
		}
	}
	return c, nil
}

func (c *counter) View() string { return "" }

func TestDriver_DrainsInitBatchAndQuit(t *testing.T) {
	c := &counter{}
	d := New(t, c, WithSize(80, 24))
	assert.Equal(t, 80, c.width)

	d.Start()
	assert.Equal(t, 10, c.n)

	d.Press("+")
	assert.Equal(t, 11, c.n)

	d.Press("q")
	assert.True(t, d.Quitting)

	d.Press("+")
	assert.Equal(t, 11, c.n, "sends after quit are dropped")
}

func TestKeyMsg(t *testing.T) {
	assert.Equal(t, "enter", KeyMsg("enter").String())
	assert.Equal(t, "down", KeyMsg("down").String())
	assert.Equal(t, "x", KeyMsg("x").String())
}
