package frames

// Dirty counts how many frame resources still hold a stale copy of some
// piece of data. Each frame resource has its own copy, so a change has to be
// written once per frame in the ring.
type Dirty struct {
	pending int
	frames  int
}

// NewDirty starts out dirty for all frames.
func NewDirty(frames int) Dirty {
	return Dirty{pending: frames, frames: frames}
}

func (d *Dirty) MarkDirty() {
	d.pending = d.frames
}

// Consume reports whether the current frame's copy needs refreshing and
// counts it as refreshed.
func (d *Dirty) Consume() bool {
	if d.pending <= 0 {
		return false
	}
	d.pending--
	return true
}

func (d Dirty) Pending() int {
	return d.pending
}
