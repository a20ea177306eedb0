package game

import (
	"fmt"
	"sync"

	"github.com/pokeshiri/server/internal/shiritori"
)

// View renders a snapshot. Implementations must not call back into the
// controller that updates them.
type View[T any] interface {
	Update(data T)
}

// Snapshot view names, used as event types when snapshots are published.
const (
	ViewSearch    = "search"
	ViewAccordion = "accordion"
	ViewList      = "list"
	ViewCard      = "card"
	ViewStatus    = "game-status"
	ViewWarning   = "warning"
	ViewUsed      = "used-pokemon"
)

// SnapshotView keeps the last snapshot and forwards each update to publish.
type SnapshotView[T any] struct {
	name    string
	publish func(name string, data any)

	mu   sync.RWMutex
	last T
	set  bool
}

func NewSnapshotView[T any](name string, publish func(name string, data any)) *SnapshotView[T] {
	return &SnapshotView[T]{name: name, publish: publish}
}

func (v *SnapshotView[T]) Update(data T) {
	v.mu.Lock()
	v.last = data
	v.set = true
	v.mu.Unlock()

	if v.publish != nil {
		v.publish(v.name, data)
	}
}

// Last returns the most recent snapshot and whether one was rendered.
func (v *SnapshotView[T]) Last() (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.last, v.set
}

type SearchSnapshot struct {
	Query  string `json:"query"`
	Count  int    `json:"count"`
	Cached bool   `json:"cached"`
}

type GroupSnapshot struct {
	shiritori.AccordionGroup
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

type AccordionSnapshot struct {
	Groups []GroupSnapshot `json:"groups"`
}

// CardSnapshot is one Pokémon card. Concealed hints are omitted; the name is
// present only once the Pokémon has been used.
type CardSnapshot struct {
	DexNumber  int                  `json:"pokedexNumber"`
	Used       bool                 `json:"used"`
	Hints      shiritori.Hints      `json:"hints"`
	Name       string               `json:"name,omitempty"`
	Generation int                  `json:"generation,omitempty"`
	Genus      string               `json:"genus,omitempty"`
	Types      []string             `json:"types,omitempty"`
	Image      shiritori.ImageState `json:"image"`
	ImageURL   string               `json:"imageUrl,omitempty"`
}

type ListSnapshot struct {
	Char  string         `json:"char"`
	Cards []CardSnapshot `json:"cards"`
}

type StatusSnapshot struct {
	UsedCount int `json:"usedCount"`
	Remaining int `json:"remaining"`
	Total     int `json:"total"`
}

type WarningSnapshot struct {
	Message string `json:"message,omitempty"`
}

type UsedSnapshot struct {
	Count int                     `json:"count"`
	Items []shiritori.UsedPokemon `json:"items"`
}

// Views groups the views driven by one session's controllers.
type Views struct {
	Search    View[SearchSnapshot]
	Accordion View[AccordionSnapshot]
	List      View[ListSnapshot]
	Card      View[CardSnapshot]
	Status    View[StatusSnapshot]
	Warning   View[WarningSnapshot]
	Used      View[UsedSnapshot]
}

// NewSnapshotViews builds a full set of SnapshotViews sharing publish.
func NewSnapshotViews(publish func(name string, data any)) (Views, *SnapshotSet) {
	s := &SnapshotSet{
		Search:    NewSnapshotView[SearchSnapshot](ViewSearch, publish),
		Accordion: NewSnapshotView[AccordionSnapshot](ViewAccordion, publish),
		List:      NewSnapshotView[ListSnapshot](ViewList, publish),
		Card:      NewSnapshotView[CardSnapshot](ViewCard, publish),
		Status:    NewSnapshotView[StatusSnapshot](ViewStatus, publish),
		Warning:   NewSnapshotView[WarningSnapshot](ViewWarning, publish),
		Used:      NewSnapshotView[UsedSnapshot](ViewUsed, publish),
	}
	return Views{
		Search:    s.Search,
		Accordion: s.Accordion,
		List:      s.List,
		Card:      s.Card,
		Status:    s.Status,
		Warning:   s.Warning,
		Used:      s.Used,
	}, s
}

// SnapshotSet exposes the concrete views so their last snapshots can be read.
type SnapshotSet struct {
	Search    *SnapshotView[SearchSnapshot]
	Accordion *SnapshotView[AccordionSnapshot]
	List      *SnapshotView[ListSnapshot]
	Card      *SnapshotView[CardSnapshot]
	Status    *SnapshotView[StatusSnapshot]
	Warning   *SnapshotView[WarningSnapshot]
	Used      *SnapshotView[UsedSnapshot]
}

const artworkURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%d.png"

func imageURL(dex int) string {
	return fmt.Sprintf(artworkURL, dex)
}
