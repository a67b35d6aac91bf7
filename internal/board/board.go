// SPDX-License-Identifier: EPL-2.0

// Package board hosts a set of dom.Nodes built from the bindings file and
// keeps their sounds in step with it.
package board

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/ik5/soundbind"
	"github.com/ik5/soundbind/dom"
	"github.com/ik5/soundbind/internal/config"
	"github.com/rs/zerolog"
)

var ErrUnknownElement = errors.New("unknown element")

// Item is a snapshot of one element for display.
type Item struct {
	ID     string
	Label  string
	Events []string
	Loaded bool
}

// Changes lists the element ids touched by Apply.
type Changes struct {
	Added   []string
	Updated []string
	Removed []string
}

func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Updated) == 0 && len(c.Removed) == 0
}

type element struct {
	node *dom.Node
	cfg  config.ElementConfig
}

// Board maps element ids to nodes and binds each through a
// soundbind.Manager.
type Board struct {
	manager *soundbind.Manager
	logger  zerolog.Logger

	mu       sync.Mutex
	order    []string
	elements map[string]*element
}

func New(engine soundbind.Engine, logger zerolog.Logger) *Board {
	return &Board{
		manager:  soundbind.NewManager(engine, soundbind.WithLogger(logger)),
		logger:   logger,
		elements: make(map[string]*element),
	}
}

// Apply makes the board match elements: new ids are bound, ids whose sound
// changed are rebuilt, and ids no longer listed are detached. Elements
// that fail to bind are reported and left out.
func (b *Board) Apply(elements []config.ElementConfig) (Changes, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var (
		ch    Changes
		errs  []error
		order = make([]string, 0, len(elements))
		keep  = make(map[string]bool, len(elements))
	)

	for _, ec := range elements {
		if keep[ec.ID] {
			errs = append(errs, fmt.Errorf("element %q: %w", ec.ID, config.ErrDuplicateID))
			continue
		}
		keep[ec.ID] = true

		el, ok := b.elements[ec.ID]
		if !ok {
			node := dom.New(ec.ID)
			if _, err := b.manager.Attach(node, ec.SoundConfig()); err != nil {
				errs = append(errs, fmt.Errorf("element %q: %w", ec.ID, err))
				continue
			}
			b.elements[ec.ID] = &element{node: node, cfg: ec}
			ch.Added = append(ch.Added, ec.ID)
			order = append(order, ec.ID)
			continue
		}

		order = append(order, ec.ID)
		if el.cfg.SoundConfig().Equal(ec.SoundConfig()) {
			el.cfg = ec
			continue
		}
		if err := b.manager.Update(el.node, ec.SoundConfig()); err != nil {
			errs = append(errs, fmt.Errorf("element %q: %w", ec.ID, err))
			continue
		}
		el.cfg = ec
		ch.Updated = append(ch.Updated, ec.ID)
	}

	for _, id := range b.order {
		if keep[id] {
			continue
		}
		if err := b.manager.Detach(b.elements[id].node); err != nil {
			errs = append(errs, fmt.Errorf("element %q: %w", id, err))
		}
		delete(b.elements, id)
		ch.Removed = append(ch.Removed, id)
	}
	b.order = order

	b.logger.Info().
		Strs("added", ch.Added).
		Strs("updated", ch.Updated).
		Strs("removed", ch.Removed).
		Msg("board applied")

	return ch, errors.Join(errs...)
}

// Dispatch fires event on element id and returns the number of listeners
// that ran.
func (b *Board) Dispatch(id, event string) (int, error) {
	n, err := b.node(id)
	if err != nil {
		return 0, err
	}
	return n.Dispatch(event), nil
}

func (b *Board) Play(id string) error {
	n, err := b.node(id)
	if err != nil {
		return err
	}
	b.manager.Play(n)
	return nil
}

func (b *Board) Stop(id string) error {
	n, err := b.node(id)
	if err != nil {
		return err
	}
	b.manager.Stop(n)
	return nil
}

func (b *Board) node(id string) (*dom.Node, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	el, ok := b.elements[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownElement, id)
	}
	return el.node, nil
}

// Items returns the elements in config order.
func (b *Board) Items() []Item {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := make([]Item, 0, len(b.order))
	for _, id := range b.order {
		el := b.elements[id]
		item := Item{
			ID:     id,
			Label:  el.cfg.Name(),
			Events: el.node.EventTypes(),
		}
		if bnd, ok := b.manager.Lookup(el.node); ok {
			item.Loaded = bnd.Loaded()
		}
		items = append(items, item)
	}
	return items
}

// IDs returns the element ids in config order.
func (b *Board) IDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.order)
}

// Wait blocks until every element finished loading and returns their load
// errors joined.
func (b *Board) Wait(ctx context.Context) error {
	b.mu.Lock()
	nodes := make(map[string]*dom.Node, len(b.elements))
	for id, el := range b.elements {
		nodes[id] = el.node
	}
	b.mu.Unlock()

	var errs []error
	for _, id := range slices.Sorted(maps.Keys(nodes)) {
		bnd, ok := b.manager.Lookup(nodes[id])
		if !ok {
			continue
		}
		if err := bnd.Wait(ctx); err != nil && !errors.Is(err, soundbind.ErrDestroyed) {
			errs = append(errs, fmt.Errorf("element %q: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// Close detaches every element.
func (b *Board) Close() error {
	b.mu.Lock()
	b.order = nil
	b.elements = make(map[string]*element)
	b.mu.Unlock()

	return b.manager.Close()
}
