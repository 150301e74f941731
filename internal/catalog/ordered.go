package catalog

// Ordered is a string-keyed map that remembers insertion order. The first
// value stored under a key wins; later Add calls for the same key are ignored.
type Ordered[V any] struct {
	keys []string
	vals map[string]V
}

// Entry is one key/value pair of an Ordered map.
type Entry[V any] struct {
	Name  string `json:"name" yaml:"name"`
	Value V      `json:"value" yaml:"value"`
}

func NewOrdered[V any]() *Ordered[V] {
	return &Ordered[V]{vals: make(map[string]V)}
}

// Add stores v under k unless k is already present. It reports whether the
// value was stored.
func (o *Ordered[V]) Add(k string, v V) bool {
	if o.vals == nil {
		o.vals = make(map[string]V)
	}
	if _, ok := o.vals[k]; ok {
		return false
	}
	o.keys = append(o.keys, k)
	o.vals[k] = v
	return true
}

func (o *Ordered[V]) Get(k string) (V, bool) {
	if o == nil {
		var zero V
		return zero, false
	}
	v, ok := o.vals[k]
	return v, ok
}

func (o *Ordered[V]) Has(k string) bool {
	_, ok := o.Get(k)
	return ok
}

func (o *Ordered[V]) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns a copy of the keys in insertion order.
func (o *Ordered[V]) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Entries returns the pairs in insertion order.
func (o *Ordered[V]) Entries() []Entry[V] {
	if o == nil {
		return nil
	}
	out := make([]Entry[V], 0, len(o.keys))
	for _, k := range o.keys {
		out = append(out, Entry[V]{Name: k, Value: o.vals[k]})
	}
	return out
}

// Each calls fn for every pair in insertion order until fn returns false.
func (o *Ordered[V]) Each(fn func(k string, v V) bool) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		if !fn(k, o.vals[k]) {
			return
		}
	}
}

// Products maps a normalized product name to its integer peso price.
type Products = Ordered[int]

// Services maps a normalized service name to its free-text price.
type Services = Ordered[string]

func NewProducts() *Products { return NewOrdered[int]() }
func NewServices() *Services { return NewOrdered[string]() }
