package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/character"
)

// Executor resolves parsed input against the registry and dispatches to the
// engine handlers.
type Executor struct {
	registry *Registry
	handlers *Handlers
}

// NewExecutor creates an Executor over the default command registry.
//
// Precondition: h must be non-nil.
func NewExecutor(h *Handlers) *Executor {
	return &Executor{registry: DefaultRegistry(), handlers: h}
}

// Execute parses one input line and runs the matching command for the
// character in the given room.
//
// Postcondition: always returns a player-facing message; unknown input
// never reaches the engine.
func (e *Executor) Execute(sheet *character.Sheet, roomID, line string) string {
	parsed := Parse(line)
	if parsed.Command == "" {
		return ""
	}
	cmd, ok := e.registry.Resolve(parsed.Command)
	if !ok {
		return "Huh?"
	}

	h := e.handlers
	switch cmd.Handler {
	case HandlerWear:
		return h.Wear(sheet, parsed.Args)
	case HandlerWield:
		return h.Wield(sheet, parsed.Args)
	case HandlerHold:
		return h.Hold(sheet, parsed.Args)
	case HandlerRemove:
		return h.Remove(sheet, parsed.Args)
	case HandlerEquipment:
		return h.EquipmentList(sheet)
	case HandlerInventory:
		return h.InventoryList(sheet)
	case HandlerGet:
		return h.Get(sheet, roomID, parsed.Args)
	case HandlerDrop:
		return h.Drop(sheet, roomID, parsed.Args)
	case HandlerPut:
		return h.Put(sheet, roomID, parsed.Args)
	case HandlerGive:
		return h.Give(sheet, parsed.Args)
	case HandlerOpen:
		return h.Open(sheet, roomID, parsed.Args)
	case HandlerClose:
		return h.Close(sheet, roomID, parsed.Args)
	case HandlerBalance:
		return h.Balance(sheet)
	case HandlerHelp:
		return e.helpText()
	default:
		return "Huh?"
	}
}

// helpText renders the registry grouped by category.
func (e *Executor) helpText() string {
	byCat := e.registry.CommandsByCategory()
	cats := make([]string, 0, len(byCat))
	for cat := range byCat {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	var b strings.Builder
	b.WriteString("Available commands:")
	for _, cat := range cats {
		cmds := byCat[cat]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
		fmt.Fprintf(&b, "\n[%s]", cat)
		for _, cmd := range cmds {
			fmt.Fprintf(&b, "\n  %-10s %s", cmd.Name, cmd.Help)
		}
	}
	return b.String()
}
