package services

import (
	"fmt"
	"strings"

	"github.com/Bespalov-Gleb/Food-bot/entity"
)

// CatalogSnapshot is the read-only slice of the catalog a pricing run
// needs: the dishes in question plus their option groups and options.
// Loaded once per request; the calculator itself never touches the store.
type CatalogSnapshot struct {
	Dishes  map[uint]entity.Dish
	Groups  map[uint][]entity.OptionGroup // dish id -> groups
	Options map[uint][]entity.Option      // group id -> options
}

func (s *CatalogSnapshot) GroupsFor(dishID uint) []entity.OptionGroup {
	return s.Groups[dishID]
}

func (s *CatalogSnapshot) OptionByID(id uint) (entity.Option, bool) {
	for _, opts := range s.Options {
		for _, o := range opts {
			if o.ID == id {
				return o, true
			}
		}
	}
	return entity.Option{}, false
}

// PriceRequestItem is one line to validate and price. UnitPrice is the
// base per-unit price as declared by the caller; option deltas are always
// re-resolved from the snapshot, the base price is not (see order service
// docs for the trust boundary).
type PriceRequestItem struct {
	DishID          uint
	Name            string
	UnitPrice       int64
	Qty             int
	ChosenOptionIDs []uint
}

// PricedItem is the frozen result: Name has option suffixes baked in,
// UnitPrice stays the base price, LineTotal includes option deltas.
type PricedItem struct {
	DishID          uint
	Name            string
	UnitPrice       int64
	Qty             int
	ChosenOptionIDs []uint
	LineTotal       int64
}

// PriceItems validates every line against the snapshot and prices it.
// Deterministic: the same inputs produce the same items and subtotal no
// matter when or where it runs (initial submission and staff edits share
// the arithmetic via optionDelta).
func PriceItems(items []PriceRequestItem, snap *CatalogSnapshot) ([]PricedItem, int64, error) {
	priced := make([]PricedItem, 0, len(items))
	var subtotal int64

	for _, it := range items {
		dish, ok := snap.Dishes[it.DishID]
		if !ok {
			return nil, 0, fmt.Errorf("dish %d: %w", it.DishID, ErrNotFound)
		}

		// A dish flagged has_options with no persisted groups is treated
		// as optionless rather than rejected.
		if err := validateSelection(dish.ID, it.ChosenOptionIDs, snap); err != nil {
			return nil, 0, err
		}

		delta, suffixes := resolveOptions(it.ChosenOptionIDs, snap)
		name := it.Name
		if name == "" {
			name = dish.Name
		}
		if len(suffixes) > 0 {
			name = name + " (" + strings.Join(suffixes, ", ") + ")"
		}

		lineTotal := (it.UnitPrice + delta) * int64(it.Qty)
		subtotal += lineTotal
		priced = append(priced, PricedItem{
			DishID:          it.DishID,
			Name:            name,
			UnitPrice:       it.UnitPrice,
			Qty:             it.Qty,
			ChosenOptionIDs: it.ChosenOptionIDs,
			LineTotal:       lineTotal,
		})
	}
	return priced, subtotal, nil
}

// ValidateCartSelection runs only the option-group min/max rules, as the
// cart aggregator does on add. The returned error types match PriceItems.
func ValidateCartSelection(dishID uint, chosen []uint, snap *CatalogSnapshot) error {
	if _, ok := snap.Dishes[dishID]; !ok {
		return fmt.Errorf("dish %d: %w", dishID, ErrNotFound)
	}
	return validateSelection(dishID, chosen, snap)
}

// SubtotalWithOptions recomputes the option-priced subtotal over order
// items. This is the staff-edit half of the pricing contract and must
// agree with PriceItems for the same lines.
func SubtotalWithOptions(items []entity.OrderItem, snap *CatalogSnapshot) int64 {
	var subtotal int64
	for i := range items {
		delta, _ := resolveOptions(items[i].ChosenOptionIDs(), snap)
		subtotal += (items[i].Price + delta) * int64(items[i].Qty)
	}
	return subtotal
}

func validateSelection(dishID uint, chosen []uint, snap *CatalogSnapshot) error {
	for _, g := range snap.GroupsFor(dishID) {
		members := make(map[uint]bool, len(snap.Options[g.ID]))
		for _, o := range snap.Options[g.ID] {
			members[o.ID] = true
		}
		selected := 0
		for _, id := range chosen {
			if members[id] {
				selected++
			}
		}

		minRequired := g.MinSelect
		if g.Required && minRequired < 1 {
			minRequired = 1
		}
		if selected < minRequired {
			return &OptionsRequiredError{GroupID: g.ID}
		}
		if g.MaxSelect > 0 && selected > g.MaxSelect {
			return &OptionsExceededError{GroupID: g.ID, Max: g.MaxSelect}
		}
	}
	return nil
}

// resolveOptions sums price deltas and builds display suffixes for the
// chosen ids. Unknown ids are silently dropped, never priced.
func resolveOptions(chosen []uint, snap *CatalogSnapshot) (int64, []string) {
	var delta int64
	var suffixes []string
	for _, id := range chosen {
		o, ok := snap.OptionByID(id)
		if !ok {
			continue
		}
		delta += o.PriceDelta
		label := o.Name
		if o.PriceDelta > 0 {
			label = fmt.Sprintf("%s+%d", o.Name, o.PriceDelta)
		}
		suffixes = append(suffixes, label)
	}
	return delta, suffixes
}
