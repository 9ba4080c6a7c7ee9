package machine

import (
	"propnet/circuit"
	"propnet/metrics"
)

// propagator drives the network's values to the fixed point for one set of register
// values. Both implementations must agree on every value once load returns.
type propagator interface {
	// load sets the BASE registers from s, the INPUT registers from action (the true
	// inputs; every other input is false) and INIT from init, then propagates.
	load(s *State, action []circuit.ID, init bool)
	values() []bool
}

// fullReset clears every value and walks the evaluation order once per query.
type fullReset struct {
	p       *program
	vals    []bool
	metrics metrics.Collector
}

func newFullReset(p *program, m metrics.Collector) *fullReset {
	return &fullReset{p: p, vals: make([]bool, len(p.kinds)), metrics: m}
}

func (f *fullReset) values() []bool { return f.vals }

func (f *fullReset) load(s *State, action []circuit.ID, init bool) {
	p := f.p
	clear(f.vals)
	for i, id := range p.bases {
		f.vals[id] = s.Has(i)
	}
	for _, id := range action {
		f.vals[id] = true
	}
	if p.init != circuit.None {
		f.vals[p.init] = init
	}
	schedule := p.order.Schedule()
	for _, id := range schedule {
		f.vals[id] = p.compute(id, f.vals)
	}
	f.metrics.AddPropagation()
	f.metrics.AddRecomputed(len(schedule))
}

// differential keeps values between queries and only recomputes components downstream
// of registers whose value changed. The queue is not kept in topological order, so a
// component may be recomputed from a stale input and recomputed again once that input
// settles; values are only read after the queue drains.
type differential struct {
	p       *program
	vals    []bool
	queue   []circuit.ID
	queued  []bool
	metrics metrics.Collector
}

func newDifferential(p *program, m metrics.Collector) *differential {
	d := &differential{
		p:       p,
		vals:    make([]bool, len(p.kinds)),
		queued:  make([]bool, len(p.kinds)),
		metrics: m,
	}
	// Settle the all-registers-false marking so NOT gates and constants start consistent.
	for _, id := range p.order.Schedule() {
		d.vals[id] = p.compute(id, d.vals)
	}
	return d
}

func (d *differential) values() []bool { return d.vals }

func (d *differential) set(id circuit.ID, v bool) {
	if d.vals[id] == v {
		return
	}
	d.vals[id] = v
	d.enqueue(id)
}

func (d *differential) enqueue(id circuit.ID) {
	for _, out := range d.p.outputs[id] {
		if !d.queued[out] {
			d.queued[out] = true
			d.queue = append(d.queue, out)
		}
	}
}

func (d *differential) load(s *State, action []circuit.ID, init bool) {
	p := d.p
	for i, id := range p.bases {
		d.set(id, s.Has(i))
	}
	for _, id := range p.allInputs {
		d.set(id, contains(action, id))
	}
	if p.init != circuit.None {
		d.set(p.init, init)
	}
	d.drain()
}

func (d *differential) drain() {
	recomputed := 0
	for head := 0; head < len(d.queue); head++ {
		id := d.queue[head]
		d.queued[id] = false
		if d.p.register[id] {
			continue
		}
		recomputed++
		v := d.p.compute(id, d.vals)
		if v != d.vals[id] {
			d.vals[id] = v
			d.enqueue(id)
		}
	}
	d.queue = d.queue[:0]
	d.metrics.AddPropagation()
	d.metrics.AddRecomputed(recomputed)
}

func contains(ids []circuit.ID, id circuit.ID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
