package component

// Health tracks hit points. Decay is subtracted every tick by DamageSystem.
type Health struct {
	HP    int32
	MaxHP int32
	Decay int32
}

// Dead is attached by ReaperSystem once HP reaches zero; the entity is
// deleted at the end of the tick.
type Dead struct {
	Tick uint64
}

// Name is a display label, mostly for logs.
type Name struct {
	Value string
}
