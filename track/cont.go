package track

import (
	"fmt"
	"reflect"

	"github.com/signadot/track-format/go-track/container"
)

// Container is the handle for container-category values. Unlike records
// and lists, container internals cannot be tracked field by field: every
// lookup resolves against the exact underlying instance, and mutations
// dirty the container's own path, never a sub-key path.
type Container struct {
	node *node
	raw  any
}

// Raw returns the exact underlying instance. Container methods must run
// against it; mutating it directly bypasses tracking, so use Do.
func (c *Container) Raw() any {
	return c.raw
}

// Category returns the container's category.
func (c *Container) Category() container.Category {
	return container.CategoryOf(c.raw)
}

// Do invokes the named method on the underlying instance by reflection.
// When the mutation adapter classifies the method as mutating, the
// container's path and its ancestors are marked dirty in every owning
// root after the real method runs. Read and derive methods pass through
// and never mark anything.
func (c *Container) Do(method string, args ...any) ([]any, error) {
	rv := reflect.ValueOf(c.raw)
	m := rv.MethodByName(method)
	if !m.IsValid() {
		return nil, fmt.Errorf("%T has no method %s", c.raw, method)
	}
	mt := m.Type()
	if mt.NumIn() != len(args) {
		return nil, fmt.Errorf("%T.%s takes %d args, got %d", c.raw, method, mt.NumIn(), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := mt.In(i)
		if a == nil {
			in[i] = reflect.Zero(pt)
			continue
		}
		av := reflect.ValueOf(unwrapValue(a))
		if !av.Type().AssignableTo(pt) {
			if !av.Type().ConvertibleTo(pt) {
				return nil, fmt.Errorf("%T.%s arg %d: %s is not %s", c.raw, method, i, av.Type(), pt)
			}
			av = av.Convert(pt)
		}
		in[i] = av
	}

	out := m.Call(in)
	res := make([]any, len(out))
	for i, o := range out {
		res[i] = o.Interface()
	}

	if container.IsMutating(c.Category(), method) {
		c.node.graph.propagate(c.node, "", false)
	}
	return res, nil
}

// MustDo is Do panicking on error and returning the first result, or nil
// when the method returns nothing.
func (c *Container) MustDo(method string, args ...any) any {
	res, err := c.Do(method, args...)
	if err != nil {
		panic(err)
	}
	if len(res) == 0 {
		return nil
	}
	return res[0]
}
