package ecs

// Join1..Join4 walk the entities shared by their required columns in
// ascending slot order. The first column is the anchor and must be required;
// optional columns yield nil where the entity lacks the component. Every
// iterator is single-use: Next consumes the working set. Columns carry the
// cursor and are rewound when a join is built, so one column may serve
// several joins in turn but not two at once.

type JoinIter1[A any] struct {
	join
	a *Column[A]
}

func Join1[A any](a *Column[A]) *JoinIter1[A] {
	return &JoinIter1[A]{
		join: newJoin(a),
		a:    a,
	}
}

// With keeps only entities that also own a component in p.
func (j *JoinIter1[A]) With(p Presence) *JoinIter1[A] {
	j.with(p)
	return j
}

// Without drops entities owning a component in p.
func (j *JoinIter1[A]) Without(p Presence) *JoinIter1[A] {
	j.without(p)
	return j
}

// Len returns the number of entities not yet yielded.
func (j *JoinIter1[A]) Len() int { return j.remaining() }

func (j *JoinIter1[A]) Next() (EntityHandle, *A, bool) {
	pos, ok := j.advance()
	if !ok {
		return EntityHandle{}, nil, false
	}
	h, a := j.a.at(pos)
	return h, a, true
}

func (j *JoinIter1[A]) Each(fn func(EntityHandle, *A)) {
	for h, a, ok := j.Next(); ok; h, a, ok = j.Next() {
		fn(h, a)
	}
}

type JoinIter2[A, B any] struct {
	join
	a *Column[A]
	b *Column[B]
}

func Join2[A, B any](a *Column[A], b *Column[B]) *JoinIter2[A, B] {
	return &JoinIter2[A, B]{
		join: newJoin(a, b),
		a:    a,
		b:    b,
	}
}

// With keeps only entities that also own a component in p.
func (j *JoinIter2[A, B]) With(p Presence) *JoinIter2[A, B] {
	j.with(p)
	return j
}

// Without drops entities owning a component in p.
func (j *JoinIter2[A, B]) Without(p Presence) *JoinIter2[A, B] {
	j.without(p)
	return j
}

// Len returns the number of entities not yet yielded.
func (j *JoinIter2[A, B]) Len() int { return j.remaining() }

func (j *JoinIter2[A, B]) Next() (EntityHandle, *A, *B, bool) {
	pos, ok := j.advance()
	if !ok {
		return EntityHandle{}, nil, nil, false
	}
	h, a := j.a.at(pos)
	b := resolve(j.b, pos, h)
	return h, a, b, true
}

func (j *JoinIter2[A, B]) Each(fn func(EntityHandle, *A, *B)) {
	for h, a, b, ok := j.Next(); ok; h, a, b, ok = j.Next() {
		fn(h, a, b)
	}
}

type JoinIter3[A, B, C any] struct {
	join
	a *Column[A]
	b *Column[B]
	c *Column[C]
}

func Join3[A, B, C any](a *Column[A], b *Column[B], c *Column[C]) *JoinIter3[A, B, C] {
	return &JoinIter3[A, B, C]{
		join: newJoin(a, b, c),
		a:    a,
		b:    b,
		c:    c,
	}
}

// With keeps only entities that also own a component in p.
func (j *JoinIter3[A, B, C]) With(p Presence) *JoinIter3[A, B, C] {
	j.with(p)
	return j
}

// Without drops entities owning a component in p.
func (j *JoinIter3[A, B, C]) Without(p Presence) *JoinIter3[A, B, C] {
	j.without(p)
	return j
}

// Len returns the number of entities not yet yielded.
func (j *JoinIter3[A, B, C]) Len() int { return j.remaining() }

func (j *JoinIter3[A, B, C]) Next() (EntityHandle, *A, *B, *C, bool) {
	pos, ok := j.advance()
	if !ok {
		return EntityHandle{}, nil, nil, nil, false
	}
	h, a := j.a.at(pos)
	b := resolve(j.b, pos, h)
	c := resolve(j.c, pos, h)
	return h, a, b, c, true
}

func (j *JoinIter3[A, B, C]) Each(fn func(EntityHandle, *A, *B, *C)) {
	for h, a, b, c, ok := j.Next(); ok; h, a, b, c, ok = j.Next() {
		fn(h, a, b, c)
	}
}

type JoinIter4[A, B, C, D any] struct {
	join
	a *Column[A]
	b *Column[B]
	c *Column[C]
	d *Column[D]
}

func Join4[A, B, C, D any](a *Column[A], b *Column[B], c *Column[C], d *Column[D]) *JoinIter4[A, B, C, D] {
	return &JoinIter4[A, B, C, D]{
		join: newJoin(a, b, c, d),
		a:    a,
		b:    b,
		c:    c,
		d:    d,
	}
}

// With keeps only entities that also own a component in p.
func (j *JoinIter4[A, B, C, D]) With(p Presence) *JoinIter4[A, B, C, D] {
	j.with(p)
	return j
}

// Without drops entities owning a component in p.
func (j *JoinIter4[A, B, C, D]) Without(p Presence) *JoinIter4[A, B, C, D] {
	j.without(p)
	return j
}

// Len returns the number of entities not yet yielded.
func (j *JoinIter4[A, B, C, D]) Len() int { return j.remaining() }

func (j *JoinIter4[A, B, C, D]) Next() (EntityHandle, *A, *B, *C, *D, bool) {
	pos, ok := j.advance()
	if !ok {
		return EntityHandle{}, nil, nil, nil, nil, false
	}
	h, a := j.a.at(pos)
	b := resolve(j.b, pos, h)
	c := resolve(j.c, pos, h)
	d := resolve(j.d, pos, h)
	return h, a, b, c, d, true
}

func (j *JoinIter4[A, B, C, D]) Each(fn func(EntityHandle, *A, *B, *C, *D)) {
	for h, a, b, c, d, ok := j.Next(); ok; h, a, b, c, d, ok = j.Next() {
		fn(h, a, b, c, d)
	}
}
