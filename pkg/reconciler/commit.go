package reconciler

import "fmt"

// slots applies ordering mutations to one host parent, which is either an
// instance or the container.
type slots[N comparable] struct {
	appendChild  func(child N)
	insertBefore func(child, before N)
	removeChild  func(child N)
}

func (p *pass[C, N, Ctx, U]) instanceSlots(parent N) slots[N] {
	return slots[N]{
		appendChild: func(child N) {
			p.queue("appendChild", func() { p.host.AppendChild(parent, child) })
		},
		insertBefore: func(child, before N) {
			p.queue("insertBefore", func() { p.host.InsertBefore(parent, child, before) })
		},
		removeChild: func(child N) {
			p.queue("removeChild", func() { p.host.RemoveChild(parent, child) })
		},
	}
}

func (p *pass[C, N, Ctx, U]) containerSlots() slots[N] {
	c := p.container
	return slots[N]{
		appendChild: func(child N) {
			p.queue("appendChildToContainer", func() { p.host.AppendChildToContainer(c, child) })
		},
		insertBefore: func(child, before N) {
			p.queue("insertInContainerBefore", func() { p.host.InsertInContainerBefore(c, child, before) })
		},
		removeChild: func(child N) {
			p.queue("removeChildFromContainer", func() { p.host.RemoveChildFromContainer(c, child) })
		},
	}
}

// place queues the mutations that turn the committed order current into
// desired. Instances missing from desired are removed first. The rest is
// walked from the end, inserting each instance before its successor unless
// it already sits there.
func (p *pass[C, N, Ctx, U]) place(s slots[N], current, desired []N) {
	want := make(map[N]struct{}, len(desired))
	for _, n := range desired {
		want[n] = struct{}{}
	}

	order := make([]N, 0, len(current))
	for _, n := range current {
		if _, ok := want[n]; ok {
			order = append(order, n)
			continue
		}
		s.removeChild(n)
	}

	var anchor N
	hasAnchor := false
	for i := len(desired) - 1; i >= 0; i-- {
		n := desired[i]
		pos := indexOf(order, n)

		inPlace := false
		if pos >= 0 {
			if hasAnchor {
				inPlace = pos+1 < len(order) && order[pos+1] == anchor
			} else {
				inPlace = pos == len(order)-1
			}
		}

		if !inPlace {
			if pos >= 0 {
				order = append(order[:pos], order[pos+1:]...)
			}
			if hasAnchor {
				at := indexOf(order, anchor)
				order = append(order, n)
				copy(order[at+1:], order[at:])
				order[at] = n
				s.insertBefore(n, anchor)
			} else {
				order = append(order, n)
				s.appendChild(n)
			}
		}
		anchor, hasAnchor = n, true
	}
}

// commit applies the queued mutations inside the host's commit bracket.
func (p *pass[C, N, Ctx, U]) commit() error {
	p.logger.Debug("commit started", "mutations", len(p.ops), "deletions", len(p.deleted))

	if err := protect("prepareForCommit", func() { p.host.PrepareForCommit(p.container) }); err != nil {
		return err
	}
	for i, o := range p.ops {
		if err := protect(o.name, o.apply); err != nil {
			return fmt.Errorf("mutation %d of %d: %w", i+1, len(p.ops), err)
		}
	}
	for _, n := range p.deleted {
		inst := n
		if err := protect("detachDeletedInstance", func() { p.host.DetachDeletedInstance(inst) }); err != nil {
			return err
		}
	}
	for _, o := range p.mounts {
		if err := protect(o.name, o.apply); err != nil {
			return err
		}
	}
	if err := protect("resetAfterCommit", func() { p.host.ResetAfterCommit(p.container) }); err != nil {
		return err
	}

	p.logger.Debug("commit finished")
	return nil
}

func indexOf[N comparable](list []N, n N) int {
	for i, v := range list {
		if v == n {
			return i
		}
	}
	return -1
}
