package object

import "fmt"

// Linearization returns the ancestor-resolution order of c: c itself
// followed by its ancestors in C3 order. The order is computed once and
// memoized. A hierarchy whose parent orders cannot be merged consistently
// is rejected.
//
// Cycles cannot occur: parents are fixed at declaration, so every parent
// exists before its subclass.
func (c *Class) Linearization() ([]*Class, error) {
	c.linOnce.Do(func() {
		c.lin, c.linErr = linearize(c)
	})
	return c.lin, c.linErr
}

func linearize(c *Class) ([]*Class, error) {
	seqs := make([][]*Class, 0, len(c.Parents)+1)
	for _, p := range c.Parents {
		pl, err := p.Linearization()
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, pl)
	}
	if len(c.Parents) > 0 {
		seqs = append(seqs, c.Parents)
	}
	merged, err := mergeC3(c.Name, seqs)
	if err != nil {
		return nil, err
	}
	return append([]*Class{c}, merged...), nil
}

// mergeC3 is the standard C3 merge: repeatedly take the first head that
// appears in no tail.
func mergeC3(name string, seqs [][]*Class) ([]*Class, error) {
	work := make([][]*Class, len(seqs))
	for i, s := range seqs {
		work[i] = append([]*Class(nil), s...)
	}
	var out []*Class
	for {
		live := work[:0]
		for _, s := range work {
			if len(s) > 0 {
				live = append(live, s)
			}
		}
		work = live
		if len(work) == 0 {
			return out, nil
		}
		head := pickHead(work)
		if head == nil {
			return nil, fmt.Errorf("cannot create a consistent ancestor ordering for class '%s'", name)
		}
		out = append(out, head)
		for i, s := range work {
			work[i] = dropHead(s, head)
		}
	}
}

func pickHead(seqs [][]*Class) *Class {
	for _, s := range seqs {
		head := s[0]
		if !inAnyTail(head, seqs) {
			return head
		}
	}
	return nil
}

func inAnyTail(c *Class, seqs [][]*Class) bool {
	for _, s := range seqs {
		for _, t := range s[1:] {
			if t == c {
				return true
			}
		}
	}
	return false
}

func dropHead(s []*Class, head *Class) []*Class {
	if len(s) > 0 && s[0] == head {
		return s[1:]
	}
	return s
}
