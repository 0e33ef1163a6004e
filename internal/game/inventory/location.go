package inventory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// LocationKind tags the variant of a Location.
type LocationKind int

const (
	// InPack places an item directly in a character's pack.
	InPack LocationKind = iota + 1
	// Equipped places an item in one of a character's equipment slots.
	Equipped
	// InContainer places an item inside a container instance.
	InContainer
	// InRoom places an item on the floor of a room.
	InRoom
)

// Location is the tagged variant describing an item's current holder.
// Exactly one variant is active per item at all times.
type Location struct {
	Kind        LocationKind
	CharacterID string // InPack, Equipped
	Slot        Slot   // Equipped
	ContainerID string // InContainer
	RoomID      string // InRoom
}

// PackLocation returns the location for a character's pack.
func PackLocation(characterID string) Location {
	return Location{Kind: InPack, CharacterID: characterID}
}

// SlotLocation returns the location for a character's equipment slot.
func SlotLocation(characterID string, slot Slot) Location {
	return Location{Kind: Equipped, CharacterID: characterID, Slot: slot}
}

// ContainerLocation returns the location inside a container instance.
func ContainerLocation(containerID string) Location {
	return Location{Kind: InContainer, ContainerID: containerID}
}

// RoomLocation returns the location on a room's floor.
func RoomLocation(roomID string) Location {
	return Location{Kind: InRoom, RoomID: roomID}
}

// String returns a debug description of the location.
func (l Location) String() string {
	switch l.Kind {
	case InPack:
		return fmt.Sprintf("pack(%s)", l.CharacterID)
	case Equipped:
		return fmt.Sprintf("equipped(%s, %s)", l.CharacterID, l.Slot)
	case InContainer:
		return fmt.Sprintf("container(%s)", l.ContainerID)
	case InRoom:
		return fmt.Sprintf("room(%s)", l.RoomID)
	default:
		return "invalid"
	}
}

// Registry is the authoritative arena of item instances and the bijective
// index from instance to its current location. Every move is expressed as a
// single detach+attach under one lock acquisition, so a half-applied move is
// never observable.
//
// A broken bijection is a programming error, not a user error; the registry
// panics rather than returning a Result failure when it detects one.
type Registry struct {
	mu        sync.RWMutex
	instances map[string]*Instance
	locations map[string]Location
	packs     map[string][]*Instance
	equipped  map[string]map[Slot]*Instance
	rooms     map[string][]*Instance

	res *lockTable
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all indexes are initialised and CheckIntegrity returns nil.
func NewRegistry() *Registry {
	return &Registry{
		instances: make(map[string]*Instance),
		locations: make(map[string]Location),
		packs:     make(map[string][]*Instance),
		equipped:  make(map[string]map[Slot]*Instance),
		rooms:     make(map[string][]*Instance),
		res:       newLockTable(),
	}
}

// Spawn creates a new instance of tmpl at the given location and registers it.
//
// Precondition: tmpl is non-nil and validated; loc must be a pack, room, or
// registered container location.
// Postcondition: the instance is registered with exactly one location entry.
func (r *Registry) Spawn(tmpl *Template, loc Location) (*Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inst := &Instance{
		ID:       uuid.New().String(),
		Template: tmpl,
	}
	if tmpl.Container != nil {
		inst.Closed = tmpl.Container.StartsClosed
	}
	if err := r.attach(inst, loc); err != nil {
		return nil, err
	}
	r.instances[inst.ID] = inst
	r.locations[inst.ID] = loc
	return inst, nil
}

// SpawnCurrency creates a currency pile instance carrying the given amount.
//
// Precondition: tmpl.Category == CategoryCurrency and amount > 0.
func (r *Registry) SpawnCurrency(tmpl *Template, amount int, loc Location) (*Instance, error) {
	if tmpl.Category != CategoryCurrency {
		return nil, fmt.Errorf("inventory: SpawnCurrency: template %q is not currency", tmpl.ID)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("inventory: SpawnCurrency: amount must be > 0, got %d", amount)
	}
	inst, err := r.Spawn(tmpl, loc)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	inst.Gold = amount
	r.mu.Unlock()
	return inst, nil
}

// Adopt registers an already-built instance at the given location. Used by
// the save/load collaborator when restoring persisted state.
//
// Precondition: inst has a unique ID and a non-nil Template.
func (r *Registry) Adopt(inst *Instance, loc Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.instances[inst.ID]; exists {
		return fmt.Errorf("inventory: Adopt: instance %q already registered", inst.ID)
	}
	if err := r.attach(inst, loc); err != nil {
		return err
	}
	r.instances[inst.ID] = inst
	r.locations[inst.ID] = loc
	return nil
}

// Extract destroys an instance: it is detached from its holder and, together
// with its entire content tree, removed from the registry.
//
// Precondition: inst is registered.
func (r *Registry) Extract(inst *Instance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	loc, ok := r.locations[inst.ID]
	if !ok {
		return fmt.Errorf("inventory: Extract: instance %q not registered", inst.ID)
	}
	r.detach(inst, loc)
	r.purge(inst)
	return nil
}

// purge removes inst and its content tree from the index maps.
// Precondition: r.mu held; inst already detached from its holder.
func (r *Registry) purge(inst *Instance) {
	for _, in := range inst.contents {
		r.purge(in)
	}
	inst.contents = nil
	delete(r.instances, inst.ID)
	delete(r.locations, inst.ID)
}

// Location returns the current location of the instance with the given ID.
//
// Postcondition: ok is true iff the instance is registered.
func (r *Registry) Location(instanceID string) (Location, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loc, ok := r.locations[instanceID]
	return loc, ok
}

// Instance returns the registered instance with the given ID.
func (r *Registry) Instance(instanceID string) (*Instance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instances[instanceID]
	return inst, ok
}

// Move relocates an instance to a new location as one atomic operation:
// the old entry is removed and the new one inserted under a single lock
// acquisition.
//
// Precondition: inst is registered; loc is a valid destination. Moving an
// item into an equipment slot requires the slot to be empty.
func (r *Registry) Move(inst *Instance, loc Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.locations[inst.ID]
	if !ok {
		return fmt.Errorf("inventory: Move: instance %q not registered", inst.ID)
	}
	if loc.Kind == Equipped {
		if _, occupied := r.equipped[loc.CharacterID][loc.Slot]; occupied {
			return fmt.Errorf("inventory: Move: slot %s of %s is occupied", loc.Slot, loc.CharacterID)
		}
	}
	r.detach(inst, old)
	if err := r.attach(inst, loc); err != nil {
		// Re-attach to the old holder so a rejected move leaves no gap.
		if reErr := r.attach(inst, old); reErr != nil {
			panic(fmt.Sprintf("inventory: registry bijection violated: cannot restore %q to %s: %v",
				inst.ID, old, reErr))
		}
		return err
	}
	r.locations[inst.ID] = loc
	return nil
}

// detach removes inst from the holder described by loc.
// Precondition: r.mu held. Panics if the holder does not actually hold inst,
// because that means the bijection was already broken.
func (r *Registry) detach(inst *Instance, loc Location) {
	switch loc.Kind {
	case InPack:
		r.packs[loc.CharacterID] = removeInstance(r.packs[loc.CharacterID], inst)
	case Equipped:
		slots := r.equipped[loc.CharacterID]
		if slots[loc.Slot] != inst {
			panic(fmt.Sprintf("inventory: registry bijection violated: %s does not hold %q", loc, inst.ID))
		}
		delete(slots, loc.Slot)
	case InContainer:
		cont, ok := r.instances[loc.ContainerID]
		if !ok {
			panic(fmt.Sprintf("inventory: registry bijection violated: container %q not registered", loc.ContainerID))
		}
		cont.contents = removeInstance(cont.contents, inst)
	case InRoom:
		r.rooms[loc.RoomID] = removeInstance(r.rooms[loc.RoomID], inst)
	default:
		panic(fmt.Sprintf("inventory: registry bijection violated: invalid location for %q", inst.ID))
	}
}

// attach inserts inst into the holder described by loc.
// Precondition: r.mu held.
func (r *Registry) attach(inst *Instance, loc Location) error {
	switch loc.Kind {
	case InPack:
		if loc.CharacterID == "" {
			return fmt.Errorf("inventory: attach: empty character ID")
		}
		r.packs[loc.CharacterID] = append(r.packs[loc.CharacterID], inst)
	case Equipped:
		if loc.CharacterID == "" {
			return fmt.Errorf("inventory: attach: empty character ID")
		}
		slots, ok := r.equipped[loc.CharacterID]
		if !ok {
			slots = make(map[Slot]*Instance, len(SlotOrder))
			r.equipped[loc.CharacterID] = slots
		}
		if _, occupied := slots[loc.Slot]; occupied {
			return fmt.Errorf("inventory: attach: slot %s of %s is occupied", loc.Slot, loc.CharacterID)
		}
		slots[loc.Slot] = inst
	case InContainer:
		cont, ok := r.instances[loc.ContainerID]
		if !ok {
			return fmt.Errorf("inventory: attach: container %q not registered", loc.ContainerID)
		}
		cont.contents = append(cont.contents, inst)
	case InRoom:
		if loc.RoomID == "" {
			return fmt.Errorf("inventory: attach: empty room ID")
		}
		r.rooms[loc.RoomID] = append(r.rooms[loc.RoomID], inst)
	default:
		return fmt.Errorf("inventory: attach: invalid location kind %d", loc.Kind)
	}
	return nil
}

// removeInstance removes inst from list, panicking when absent: a holder
// list that disagrees with the location index means the bijection broke.
func removeInstance(list []*Instance, inst *Instance) []*Instance {
	for i, in := range list {
		if in == inst {
			return append(list[:i], list[i+1:]...)
		}
	}
	panic(fmt.Sprintf("inventory: registry bijection violated: holder list does not contain %q", inst.ID))
}

// CarriedItems returns a snapshot of the character's pack in insertion order.
//
// Postcondition: mutations of the returned slice do not affect the registry.
func (r *Registry) CarriedItems(characterID string) []*Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pack := r.packs[characterID]
	out := make([]*Instance, len(pack))
	copy(out, pack)
	return out
}

// CarriedCount returns the number of items directly in the character's pack.
// Equipped items and container contents do not count toward the item limit.
func (r *Registry) CarriedCount(characterID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.packs[characterID])
}

// EquippedItem returns the item occupying the character's slot, if any.
func (r *Registry) EquippedItem(characterID string, slot Slot) (*Instance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.equipped[characterID][slot]
	return inst, ok
}

// EquippedEntry pairs a slot with the item occupying it.
type EquippedEntry struct {
	Slot Slot
	Item *Instance
}

// EquippedItems returns the character's occupied slots in display order.
func (r *Registry) EquippedItems(characterID string) []EquippedEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slots := r.equipped[characterID]
	out := make([]EquippedEntry, 0, len(slots))
	for _, s := range SlotOrder {
		if inst, ok := slots[s]; ok {
			out = append(out, EquippedEntry{Slot: s, Item: inst})
		}
	}
	return out
}

// RoomItems returns a snapshot of the items on a room's floor in insertion
// order.
func (r *Registry) RoomItems(roomID string) []*Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := r.rooms[roomID]
	out := make([]*Instance, len(items))
	copy(out, items)
	return out
}

// CarriedWeight returns the total weight a character is carrying: every pack
// item plus every equipped item, with container contents counted recursively.
// Always recomputed from current state, never cached.
//
// Postcondition: result >= 0.
func (r *Registry) CarriedWeight(characterID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, inst := range r.packs[characterID] {
		total += inst.TotalWeight()
	}
	for _, inst := range r.equipped[characterID] {
		total += inst.TotalWeight()
	}
	return total
}

// AllInstances returns every registered instance paired with its location,
// ordered by instance ID for deterministic iteration. Used by the save/load
// collaborator.
func (r *Registry) AllInstances() []InstanceLocation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]InstanceLocation, 0, len(r.instances))
	for id, inst := range r.instances {
		out = append(out, InstanceLocation{Instance: inst, Location: r.locations[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Instance.ID < out[j].Instance.ID })
	return out
}

// InstanceLocation pairs an instance with its current location.
type InstanceLocation struct {
	Instance *Instance
	Location Location
}

// CheckIntegrity verifies the bijection invariant: every registered instance
// has exactly one location entry, every holder list member points back at
// that holder, and the containment graph is acyclic.
//
// Postcondition: returns nil iff the registry is consistent.
func (r *Registry) CheckIntegrity() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.instances) != len(r.locations) {
		return fmt.Errorf("inventory: %d instances but %d location entries", len(r.instances), len(r.locations))
	}

	seen := make(map[string]bool, len(r.instances))
	note := func(inst *Instance, holder string) error {
		if seen[inst.ID] {
			return fmt.Errorf("inventory: instance %q appears in two holders (second: %s)", inst.ID, holder)
		}
		seen[inst.ID] = true
		return nil
	}

	for charID, pack := range r.packs {
		for _, inst := range pack {
			if err := note(inst, "pack "+charID); err != nil {
				return err
			}
			if loc := r.locations[inst.ID]; loc.Kind != InPack || loc.CharacterID != charID {
				return fmt.Errorf("inventory: instance %q in pack %s but location says %s", inst.ID, charID, loc)
			}
		}
	}
	for charID, slots := range r.equipped {
		for slot, inst := range slots {
			if err := note(inst, fmt.Sprintf("slot %s of %s", slot, charID)); err != nil {
				return err
			}
			loc := r.locations[inst.ID]
			if loc.Kind != Equipped || loc.CharacterID != charID || loc.Slot != slot {
				return fmt.Errorf("inventory: instance %q equipped at %s/%s but location says %s", inst.ID, charID, slot, loc)
			}
		}
	}
	for roomID, items := range r.rooms {
		for _, inst := range items {
			if err := note(inst, "room "+roomID); err != nil {
				return err
			}
			if loc := r.locations[inst.ID]; loc.Kind != InRoom || loc.RoomID != roomID {
				return fmt.Errorf("inventory: instance %q in room %s but location says %s", inst.ID, roomID, loc)
			}
		}
	}
	for id, inst := range r.instances {
		for _, in := range inst.contents {
			if err := note(in, "container "+id); err != nil {
				return err
			}
			if loc := r.locations[in.ID]; loc.Kind != InContainer || loc.ContainerID != id {
				return fmt.Errorf("inventory: instance %q inside %q but location says %s", in.ID, id, loc)
			}
		}
	}

	for id := range r.instances {
		if !seen[id] {
			return fmt.Errorf("inventory: instance %q has a location entry but no holder", id)
		}
	}

	// Containment acyclicity: walking up from any contained item must
	// terminate at a pack, slot, or room.
	for id := range r.instances {
		hops := 0
		loc := r.locations[id]
		for loc.Kind == InContainer {
			hops++
			if hops > len(r.instances) {
				return fmt.Errorf("inventory: containment cycle reached from instance %q", id)
			}
			loc = r.locations[loc.ContainerID]
		}
	}
	return nil
}

// lockResources acquires the per-resource mutexes for the given room and
// container IDs, in stable sorted order so opposite-direction transfers
// cannot deadlock. The returned function releases them in reverse order.
func (r *Registry) lockResources(ids ...string) func() {
	return r.res.lock(ids...)
}

// lockTable provides named mutual-exclusion locks for shared resources
// (rooms, containers).
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the named locks in sorted order and returns a release
// function. Duplicate names are collapsed so a same-resource transfer does
// not self-deadlock.
func (lt *lockTable) lock(names ...string) func() {
	uniq := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n != "" && !seen[n] {
			seen[n] = true
			uniq = append(uniq, n)
		}
	}
	sort.Strings(uniq)

	acquired := make([]*sync.Mutex, 0, len(uniq))
	for _, n := range uniq {
		lt.mu.Lock()
		m, ok := lt.locks[n]
		if !ok {
			m = &sync.Mutex{}
			lt.locks[n] = m
		}
		lt.mu.Unlock()
		m.Lock()
		acquired = append(acquired, m)
	}
	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].Unlock()
		}
	}
}
