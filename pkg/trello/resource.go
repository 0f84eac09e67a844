package trello

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"
)

// ParentRef describes a parent resource reachable from an instance URL.
//
// Trello's URI scheme is inconsistent about noun number: a board's owning
// organization is addressed as /boards/{id}/organization (singular,
// exactly one owner) while a member's organizations are
// /members/{id}/organizations (plural). Segment carries the exact URI
// fragment; Plural is the canonical key used for results regardless of
// how the URI spells it.
type ParentRef struct {
	// Segment is the URI fragment, e.g. "organization" or "board".
	Segment string

	// Plural is the canonical result key, e.g. "organizations". Derived
	// from Segment when empty.
	Plural string
}

// pluralKey returns the canonical result key for the parent.
func (p ParentRef) pluralKey() string {
	if p.Plural != "" {
		return p.Plural
	}
	key := strcase.ToLowerCamel(p.Segment)
	if !strings.HasSuffix(key, "s") {
		key += "s"
	}
	return key
}

// Descriptor declares the URI layout of a resource type: its path stub,
// the subresources created inside it, the parent resources that own it,
// and which subresources accept server-side filters.
type Descriptor struct {
	// Name is the resource type name, e.g. "board".
	Name string

	// PathStub is the URI fragment for the type, e.g. "boards".
	PathStub string

	// Subresources are the URI fragments nested under an instance,
	// e.g. "lists" under a board.
	Subresources []string

	// Parents are the resources that own instances of this type.
	Parents []ParentRef

	// Filterable lists the subresources for which server-side filtering
	// is supported. Every entry must also appear in Subresources.
	Filterable []string
}

// hasSubresource reports whether name is a declared subresource.
func (d *Descriptor) hasSubresource(name string) bool {
	for _, s := range d.Subresources {
		if s == name {
			return true
		}
	}
	return false
}

// canFilter reports whether name is a filterable subresource.
func (d *Descriptor) canFilter(name string) bool {
	for _, s := range d.Filterable {
		if s == name {
			return true
		}
	}
	return false
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Descriptor{}
)

// Register adds a descriptor to the registry. It panics if the name is
// already taken or the descriptor is malformed; registration happens at
// init time where a panic is a programming error.
func Register(d *Descriptor) {
	if d.Name == "" || d.PathStub == "" {
		panic("trello: descriptor requires Name and PathStub")
	}
	for _, f := range d.Filterable {
		if !d.hasSubresource(f) {
			panic(fmt.Sprintf(
				"trello: descriptor %q declares filterable %q that is not a subresource",
				d.Name, f))
		}
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[d.Name]; exists {
		panic(fmt.Sprintf("trello: descriptor %q already registered", d.Name))
	}
	registry[d.Name] = d
}

// Lookup returns the descriptor for a resource type name.
func Lookup(name string) (*Descriptor, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidResource, name)
	}
	return d, nil
}

// ValidResources returns the registered resource type names, sorted.
func ValidResources() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(&Descriptor{
		Name:     "board",
		PathStub: "boards",
		Subresources: []string{
			"actions", "cards", "checklists", "labels", "lists",
			"members", "membersInvited",
		},
		Parents:    []ParentRef{{Segment: "organization"}},
		Filterable: []string{"cards", "lists", "members"},
	})
	Register(&Descriptor{
		Name:         "list",
		PathStub:     "lists",
		Subresources: []string{"actions", "cards"},
		Parents:      []ParentRef{{Segment: "board"}},
		Filterable:   []string{"cards"},
	})
	Register(&Descriptor{
		Name:     "card",
		PathStub: "cards",
		Subresources: []string{
			"actions", "attachments", "checklists", "labels", "members",
		},
		Parents: []ParentRef{{Segment: "board"}, {Segment: "list"}},
	})
	Register(&Descriptor{
		Name:     "member",
		PathStub: "members",
		Subresources: []string{
			"actions", "boards", "cards", "notifications", "organizations",
		},
		Filterable: []string{"boards", "cards", "organizations"},
	})
	Register(&Descriptor{
		Name:         "organization",
		PathStub:     "organizations",
		Subresources: []string{"actions", "boards", "members"},
		Filterable:   []string{"boards", "members"},
	})
	Register(&Descriptor{
		Name:         "action",
		PathStub:     "actions",
		Subresources: []string{},
		Parents: []ParentRef{
			{Segment: "board"}, {Segment: "card"}, {Segment: "list"},
			{Segment: "member", Plural: "members"},
		},
	})
	Register(&Descriptor{
		Name:         "checklist",
		PathStub:     "checklists",
		Subresources: []string{"checkItems"},
		Parents:      []ParentRef{{Segment: "board"}, {Segment: "cards", Plural: "cards"}},
	})
	Register(&Descriptor{
		Name:         "notification",
		PathStub:     "notifications",
		Subresources: []string{},
		Parents: []ParentRef{
			{Segment: "board"}, {Segment: "card"}, {Segment: "list"},
			{Segment: "member", Plural: "members"},
			{Segment: "organization"},
		},
	})
	Register(&Descriptor{
		Name:         "webhook",
		PathStub:     "webhooks",
		Subresources: []string{},
	})
	Register(&Descriptor{
		Name:         "label",
		PathStub:     "labels",
		Subresources: []string{},
		Parents:      []ParentRef{{Segment: "board"}},
	})
}

// ResourceClient provides dynamic access to a resource type through its
// descriptor. Obtain one from Client.Resource.
type ResourceClient struct {
	client *Client
	desc   *Descriptor
}

// Descriptor returns the descriptor driving this client.
func (r *ResourceClient) Descriptor() *Descriptor {
	return r.desc
}

// Get fetches a resource instance as a generic map. Use Decode to
// convert the result into a typed struct.
func (r *ResourceClient) Get(ctx context.Context, id string, fields ...string) (map[string]interface{}, error) {
	op := fmt.Sprintf("Resource(%s).Get", r.desc.Name)

	query := url.Values{}
	if len(fields) > 0 {
		query.Set("fields", strings.Join(fields, ","))
	}

	var result map[string]interface{}
	if err := r.client.get(ctx, r.instancePath(id), query, &result); err != nil {
		return nil, opErr(op, err)
	}
	return result, nil
}

// Subresources fetches the named subresources of an instance and returns
// the canonical instance URLs discovered in each response, keyed by
// subresource name.
//
// Every name must be declared by the descriptor; an undeclared name
// fails the whole call before any request is issued. Fetch failures for
// individual subresources are aggregated, and successfully fetched
// entries are still returned.
func (r *ResourceClient) Subresources(ctx context.Context, id string, names ...string) (map[string][]string, error) {
	op := fmt.Sprintf("Resource(%s).Subresources", r.desc.Name)

	var invalid []string
	for _, name := range names {
		if !r.desc.hasSubresource(name) {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		return nil, opErrf(op, ErrInvalidSubresource, "%s", strings.Join(invalid, ", "))
	}

	results := make(map[string][]string, len(names))
	var merr *multierror.Error

	for _, name := range names {
		path := r.instancePath(id) + "/" + name

		var raw interface{}
		if err := r.client.get(ctx, path, nil, &raw); err != nil {
			merr = multierror.Append(merr, opErrf(op, err, "subresource %q", name))
			continue
		}
		results[name] = r.discoveredURLs(name, raw)
	}

	return results, merr.ErrorOrNil()
}

// ParentResources fetches the parents owning an instance and returns the
// canonical instance URLs discovered in each response, keyed by the
// parent's canonical plural form. When parents is empty, all declared
// parents are fetched. field, when non-empty, narrows each response to a
// single field.
func (r *ResourceClient) ParentResources(ctx context.Context, id string, parents []string, field string) (map[string][]string, error) {
	op := fmt.Sprintf("Resource(%s).ParentResources", r.desc.Name)

	refs := r.desc.Parents
	if len(parents) > 0 {
		refs = make([]ParentRef, 0, len(parents))
		for _, p := range parents {
			ref, ok := r.parentRef(p)
			if !ok {
				return nil, opErrf(op, ErrInvalidSubresource, "unknown parent %q", p)
			}
			refs = append(refs, ref)
		}
	}

	results := make(map[string][]string, len(refs))
	var merr *multierror.Error

	for _, ref := range refs {
		path := r.instancePath(id) + "/" + ref.Segment
		if field != "" {
			path += "/" + url.PathEscape(field)
		}

		var raw interface{}
		if err := r.client.get(ctx, path, nil, &raw); err != nil {
			merr = multierror.Append(merr, opErrf(op, err, "parent %q", ref.Segment))
			continue
		}
		results[ref.pluralKey()] = r.discoveredURLs(ref.pluralKey(), raw)
	}

	return results, merr.ErrorOrNil()
}

// FilterSubresource fetches the instances of a subresource matching the
// given filters, which are joined into a single comma-separated filter
// query parameter.
func (r *ResourceClient) FilterSubresource(ctx context.Context, id, subresource string, filters ...string) (map[string][]string, error) {
	op := fmt.Sprintf("Resource(%s).FilterSubresource", r.desc.Name)

	if !r.desc.hasSubresource(subresource) {
		return nil, opErrf(op, ErrInvalidSubresource, "%s", subresource)
	}
	if !r.desc.canFilter(subresource) {
		return nil, opErrf(op, ErrInvalidSubresource, "%q does not support filtering", subresource)
	}

	query := url.Values{}
	if len(filters) > 0 {
		query.Set("filter", strings.Join(filters, ","))
	}

	var raw interface{}
	path := r.instancePath(id) + "/" + subresource
	if err := r.client.get(ctx, path, query, &raw); err != nil {
		return nil, opErr(op, err)
	}

	return map[string][]string{
		subresource: r.discoveredURLs(subresource, raw),
	}, nil
}

// instancePath returns the instance path for id, e.g. /boards/abc.
func (r *ResourceClient) instancePath(id string) string {
	return "/" + r.desc.PathStub + "/" + url.PathEscape(id)
}

// parentRef resolves a parent name against the descriptor, accepting
// either the URI segment or the canonical plural form.
func (r *ResourceClient) parentRef(name string) (ParentRef, bool) {
	for _, ref := range r.desc.Parents {
		if ref.Segment == name || ref.pluralKey() == name {
			return ref, true
		}
	}
	return ParentRef{}, false
}

// discoveredURLs extracts object ids from a decoded response and builds
// canonical instance URLs under the given stub. List responses yield one
// URL per object with an id; single-object responses yield at most one.
func (r *ResourceClient) discoveredURLs(stub string, raw interface{}) []string {
	urls := []string{}

	appendID := func(obj map[string]interface{}) {
		id, _ := obj["id"].(string)
		if id != "" {
			urls = append(urls, r.client.InstanceURL(stub, id))
		}
	}

	switch v := raw.(type) {
	case []interface{}:
		for _, item := range v {
			if obj, ok := item.(map[string]interface{}); ok {
				appendID(obj)
			}
		}
	case map[string]interface{}:
		appendID(v)
	}

	return urls
}

// Decode converts a generic resource map into a typed struct using its
// JSON field tags.
func Decode(in map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(in); err != nil {
		return fmt.Errorf("failed to decode resource: %w", err)
	}
	return nil
}
