package cmd

import (
	"fmt"
	"time"

	"github.com/tools4digits/sysunit/internal/registry"
)

// fakeRegistry is an in-memory registry.Repository for command tests.
type fakeRegistry struct {
	units  map[string]registry.Unit
	nextID int64

	upserts []string
	deletes []string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{units: make(map[string]registry.Unit)}
}

func (f *fakeRegistry) key(name, unitType string) string {
	return name + "." + unitType
}

func (f *fakeRegistry) FindAll() ([]registry.Unit, error) {
	var units []registry.Unit
	for _, u := range f.units {
		units = append(units, u)
	}
	return units, nil
}

func (f *fakeRegistry) FindByUnitType(unitType string) ([]registry.Unit, error) {
	var units []registry.Unit
	for _, u := range f.units {
		if u.Type == unitType {
			units = append(units, u)
		}
	}
	return units, nil
}

func (f *fakeRegistry) FindByName(name, unitType string) (registry.Unit, error) {
	u, ok := f.units[f.key(name, unitType)]
	if !ok {
		return registry.Unit{}, fmt.Errorf("unit %s.%s not recorded", name, unitType)
	}
	return u, nil
}

func (f *fakeRegistry) Upsert(unit *registry.Unit) (int64, error) {
	key := f.key(unit.Name, unit.Type)
	existing, ok := f.units[key]
	if ok {
		existing.SHA1Hash = unit.SHA1Hash
		existing.UserMode = unit.UserMode
		f.units[key] = existing
	} else {
		f.nextID++
		unit.ID = f.nextID
		unit.CreatedAt = time.Now()
		f.units[key] = *unit
	}
	f.upserts = append(f.upserts, key)
	return f.units[key].ID, nil
}

func (f *fakeRegistry) Delete(name, unitType string) error {
	key := f.key(name, unitType)
	delete(f.units, key)
	f.deletes = append(f.deletes, key)
	return nil
}
