package patterns

import (
	"strings"
	"testing"

	"github.com/j-veylop/activity-insights-tui/internal/app"
	"github.com/j-veylop/activity-insights-tui/internal/ui/tabs/tabtest"
)

func TestNew(t *testing.T) {
	m := New(app.NewState())
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() == nil {
		t.Error("Init should start the spinner")
	}
}

func TestModel_View_Loading(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 24)
	if !strings.Contains(m.View(), "Looking for patterns") {
		t.Error("View should show the spinner before the first report")
	}
}

func TestModel_View(t *testing.T) {
	m := New(tabtest.State(t, tabtest.Records()))
	m.SetSize(120, 300)

	view := m.View()
	for _, want := range []string{"Patterns", "Consistency", "day streak", "Unusual days", "Workflow insights"} {
		if !strings.Contains(view, want) {
			t.Errorf("View should contain %q", want)
		}
	}
}

func TestModel_ExpandInsights(t *testing.T) {
	m := New(app.NewState())
	if m.allInsights {
		t.Fatal("insights should start collapsed")
	}

	_, cmd := m.Update(tabtest.Keys("a"))
	if cmd != nil {
		t.Error("toggling insights should not emit a command")
	}
	if !m.allInsights {
		t.Error("a should expand insights")
	}

	m.Update(tabtest.Keys("a"))
	if m.allInsights {
		t.Error("a should collapse insights again")
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState())
	if len(m.ShortHelp()) != 3 {
		t.Errorf("ShortHelp len = %d, want 3", len(m.ShortHelp()))
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp should not be empty")
	}
}
