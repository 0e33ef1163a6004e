// Package command provides the command registry, parser, and the handlers
// binding player input to the equipment and inventory engine.
package command

// Categories for organizing commands.
const (
	CategoryEquipment = "equipment"
	CategoryInventory = "inventory"
	CategorySystem    = "system"
)

// Handler identifiers mapping commands to engine operations.
const (
	HandlerWear      = "wear"
	HandlerWield     = "wield"
	HandlerHold      = "hold"
	HandlerRemove    = "remove"
	HandlerEquipment = "equipment"
	HandlerInventory = "inventory"
	HandlerGet       = "get"
	HandlerDrop      = "drop"
	HandlerPut       = "put"
	HandlerGive      = "give"
	HandlerOpen      = "open"
	HandlerClose     = "close"
	HandlerBalance   = "balance"
	HandlerHelp      = "help"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command (equipment, inventory, system).
	Category string
	// Handler maps to the engine handler.
	Handler string
}

// BuiltinCommands returns all built-in commands for the engine.
func BuiltinCommands() []Command {
	return []Command{
		// Equipment commands
		{Name: "wear", Aliases: nil, Help: "Wear an item (wear <item> [slot])", Category: CategoryEquipment, Handler: HandlerWear},
		{Name: "wield", Aliases: nil, Help: "Wield a weapon", Category: CategoryEquipment, Handler: HandlerWield},
		{Name: "hold", Aliases: []string{"grab"}, Help: "Hold an item in your off hand", Category: CategoryEquipment, Handler: HandlerHold},
		{Name: "remove", Aliases: []string{"rem"}, Help: "Stop using an equipped item (remove <item|slot>)", Category: CategoryEquipment, Handler: HandlerRemove},
		{Name: "equipment", Aliases: []string{"eq"}, Help: "Show all equipped items", Category: CategoryEquipment, Handler: HandlerEquipment},

		// Inventory commands
		{Name: "inventory", Aliases: []string{"inv", "i"}, Help: "Show pack contents and gold", Category: CategoryInventory, Handler: HandlerInventory},
		{Name: "get", Aliases: []string{"take"}, Help: "Pick up an item (get <item> [container])", Category: CategoryInventory, Handler: HandlerGet},
		{Name: "drop", Aliases: nil, Help: "Drop an item or gold (drop <item> | drop <amount> gold)", Category: CategoryInventory, Handler: HandlerDrop},
		{Name: "put", Aliases: nil, Help: "Put an item into a container (put <item> <container>)", Category: CategoryInventory, Handler: HandlerPut},
		{Name: "give", Aliases: nil, Help: "Give an item to someone (give <item> <character>)", Category: CategoryInventory, Handler: HandlerGive},
		{Name: "open", Aliases: nil, Help: "Open a container", Category: CategoryInventory, Handler: HandlerOpen},
		{Name: "close", Aliases: nil, Help: "Close a container", Category: CategoryInventory, Handler: HandlerClose},
		{Name: "balance", Aliases: []string{"gold"}, Help: "Show your gold balance", Category: CategoryInventory, Handler: HandlerBalance},

		// System commands
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
	}
}
