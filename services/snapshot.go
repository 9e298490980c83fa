package services

import (
	"github.com/Bespalov-Gleb/Food-bot/entity"
	"github.com/Bespalov-Gleb/Food-bot/repository"
	"gorm.io/gorm"
)

func NewCatalogSnapshot(dishes []entity.Dish, groups []entity.OptionGroup, options []entity.Option) *CatalogSnapshot {
	snap := &CatalogSnapshot{
		Dishes:  make(map[uint]entity.Dish, len(dishes)),
		Groups:  make(map[uint][]entity.OptionGroup),
		Options: make(map[uint][]entity.Option),
	}
	for _, d := range dishes {
		snap.Dishes[d.ID] = d
	}
	for _, g := range groups {
		snap.Groups[g.DishID] = append(snap.Groups[g.DishID], g)
	}
	for _, o := range options {
		snap.Options[o.GroupID] = append(snap.Options[o.GroupID], o)
	}
	return snap
}

// loadSnapshot reads the catalog slice for dishIDs inside tx.
func loadSnapshot(tx *gorm.DB, catalog *repository.CatalogRepository, dishIDs []uint) (*CatalogSnapshot, error) {
	dishes, groups, options, err := catalog.SnapshotRows(tx, dishIDs)
	if err != nil {
		return nil, err
	}
	return NewCatalogSnapshot(dishes, groups, options), nil
}
