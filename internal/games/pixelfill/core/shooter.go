package core

import "fmt"

// Shooter carries ammo of one layer's colour.
// Shooters wait in a queue lane or a holding slot until deployed.
type Shooter struct {
	ID    string  // Unique within a session
	Color string  // Colour name of Layer
	Layer LayerID // The shooter only fills cells of this layer
	Ammo  int     // Remaining shots
}

// ConveyorShooter is a shooter travelling the track.
type ConveyorShooter struct {
	Shooter
	TrackPos int // -1 while staged, then 0 .. Track.Len()-1
}

// stage puts a shooter on the conveyor entry, before position 0.
func stage(s Shooter) ConveyorShooter {
	return ConveyorShooter{Shooter: s, TrackPos: -1}
}

// Holding is the fixed-size zone for shooters that finished a lap with ammo.
// A nil slot is empty. Slots are never written in place: every change
// produces a new Holding.
type Holding struct {
	Slots []*Shooter
}

// NewHolding creates a holding zone with the given number of slots.
// It panics if capacity is less than 1.
func NewHolding(capacity int) Holding {
	if capacity < 1 {
		panic(fmt.Sprintf("core: holding capacity %d", capacity))
	}
	return Holding{Slots: make([]*Shooter, capacity)}
}

// Capacity returns the number of slots.
func (h Holding) Capacity() int {
	return len(h.Slots)
}

// FindFreeSlot returns the index of the first free slot, or -1 if none.
func (h Holding) FindFreeSlot() int {
	for i, s := range h.Slots {
		if s == nil {
			return i
		}
	}
	return -1
}

// Find returns the slot holding the given shooter id, or -1.
func (h Holding) Find(id string) int {
	for i, s := range h.Slots {
		if s != nil && s.ID == id {
			return i
		}
	}
	return -1
}

// Get returns the shooter in a slot without removing.
func (h Holding) Get(slot int) *Shooter {
	if slot < 0 || slot >= len(h.Slots) {
		return nil
	}
	return h.Slots[slot]
}

// Count returns number of occupied slots.
func (h Holding) Count() int {
	count := 0
	for _, s := range h.Slots {
		if s != nil {
			count++
		}
	}
	return count
}

// IsEmpty returns true if all slots are empty.
func (h Holding) IsEmpty() bool {
	return h.Count() == 0
}

// TotalAmmo returns total ammo in the holding zone.
func (h Holding) TotalAmmo() int {
	total := 0
	for _, s := range h.Slots {
		if s != nil {
			total += s.Ammo
		}
	}
	return total
}

// with returns a copy with one slot replaced.
func (h Holding) with(slot int, s *Shooter) Holding {
	slots := make([]*Shooter, len(h.Slots))
	copy(slots, h.Slots)
	slots[slot] = s
	return Holding{Slots: slots}
}
