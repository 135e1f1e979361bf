package trace

import "github.com/google/uuid"

// ClockClass describes one `clock { ... }` block.
type ClockClass struct {
	Name          string
	FrequencyHz   uint64
	OffsetSeconds int64
	OffsetCycles  uint64
	Precision     uint64
	UUID          uuid.UUID
}

// EventClass describes one `event { ... }` block. Id is
// unique within its owning StreamClass.
type EventClass struct {
	ID      uint64
	Name    string
	Context *FieldClass // optional
	Payload *FieldClass // optional
}

// StreamClass describes one `stream { ... }` block.
type StreamClass struct {
	ID            uint64
	EventHeader   *FieldClass // optional
	EventContext  *FieldClass // optional
	PacketContext *FieldClass // optional
	Events        []*EventClass
}

// EventByID returns the event class with the given id, and whether it was
// found.
func (s *StreamClass) EventByID(id uint64) (*EventClass, bool) {
	for _, ev := range s.Events {
		if ev.ID == id {
			return ev, true
		}
	}
	return nil, false
}

// Class is the reconstructed type system of one trace ("Trace class
// (CTF)"): the output of the CTF metadata decoder.
type Class struct {
	UUID    uuid.UUID
	Clocks  []*ClockClass
	Streams []*StreamClass
}

// ClockByName returns the named clock class, and whether it was found.
func (t *Class) ClockByName(name string) (*ClockClass, bool) {
	for _, c := range t.Clocks {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// StreamByID returns the stream class with the given id, and whether it
// was found.
func (t *Class) StreamByID(id uint64) (*StreamClass, bool) {
	for _, s := range t.Streams {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}
