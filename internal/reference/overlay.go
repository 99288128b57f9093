package reference

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrEmptyLevelName = errors.New("level name is empty")
	ErrRowNotFound    = errors.New("reference row not found")
)

// Overlay keeps user edits of the reference table, so they survive the
// table being rebuilt when the athlete names change.
type Overlay struct {
	mutex   sync.RWMutex
	order   []string
	edits   map[string]Row
	removed map[string]bool
}

func NewOverlay() *Overlay {
	return &Overlay{
		edits:   map[string]Row{},
		removed: map[string]bool{},
	}
}

// Set upserts the edit for row.LevelName.
func (o *Overlay) Set(row Row) error {
	row.LevelName = strings.TrimSpace(row.LevelName)
	if row.LevelName == "" {
		return ErrEmptyLevelName
	}

	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.set(row)
	return nil
}

func (o *Overlay) set(row Row) {
	if _, exists := o.edits[row.LevelName]; !exists {
		o.order = append(o.order, row.LevelName)
	}
	o.edits[row.LevelName] = row.Clone()
	delete(o.removed, row.LevelName)
}

// SetValidated stores the edit only if the resulting table keeps its
// thresholds in order. The check and the write happen under one lock.
func (o *Overlay) SetValidated(base Table, row Row) error {
	row.LevelName = strings.TrimSpace(row.LevelName)
	if row.LevelName == "" {
		return ErrEmptyLevelName
	}

	o.mutex.Lock()
	defer o.mutex.Unlock()

	candidate := o.apply(base)
	replaced := false
	for i := range candidate {
		if candidate[i].LevelName == row.LevelName {
			candidate[i] = row.Clone()
			replaced = true
		}
	}
	if !replaced {
		candidate = append(candidate, row.Clone())
	}
	if err := candidate.ValidateOrdering(); err != nil {
		return err
	}

	o.set(row)
	return nil
}

func (o *Overlay) Remove(levelName string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if _, exists := o.edits[levelName]; exists {
		delete(o.edits, levelName)
		for i, name := range o.order {
			if name == levelName {
				o.order = append(o.order[:i], o.order[i+1:]...)
				break
			}
		}
	}
	o.removed[levelName] = true
}

func (o *Overlay) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.order = nil
	o.edits = map[string]Row{}
	o.removed = map[string]bool{}
}

func (o *Overlay) Len() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.edits) + len(o.removed)
}

// Apply returns a copy of base with edited rows replaced in place, removed
// rows dropped and edits unknown to base appended in the order they were made.
func (o *Overlay) Apply(base Table) Table {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.apply(base)
}

func (o *Overlay) apply(base Table) Table {
	result := make(Table, 0, len(base)+len(o.edits))
	inBase := map[string]bool{}
	for _, row := range base {
		inBase[row.LevelName] = true
		if o.removed[row.LevelName] {
			continue
		}
		if edit, ok := o.edits[row.LevelName]; ok {
			replaced := edit.Clone()
			if replaced.AthleteID == "" {
				replaced.AthleteID = row.AthleteID
			}
			result = append(result, replaced)
			continue
		}
		result = append(result, row.Clone())
	}

	for _, name := range o.order {
		if inBase[name] {
			continue
		}
		result = append(result, o.edits[name].Clone())
	}

	return result
}
