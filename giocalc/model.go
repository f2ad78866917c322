package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/fjl/giosci/internal/calc"
	"github.com/fjl/giosci/internal/sessionstore"
)

// sessionModel keeps the session store in sync with the calculator state.
type sessionModel struct {
	store     *sessionstore.Store
	saved     calc.Snapshot
	lastError error
}

func newSessionModel(store *sessionstore.Store) *sessionModel {
	return &sessionModel{store: store, saved: calc.New().Snapshot()}
}

// handleStoreEvent applies a store event to st.
func (m *sessionModel) handleStoreEvent(st calc.State, e sessionstore.Event) calc.State {
	switch e := e.(type) {
	case *sessionstore.Restored:
		st = st.Restore(e.Snapshot)
		m.saved = st.Snapshot()
		log.WithFields(log.Fields{"events": e.Events, "mode": st.Mode()}).Info("session restored")

	case *sessionstore.IOError:
		m.lastError = e.Err
	}
	return st
}

// record writes the persistent changes of st to the store.
func (m *sessionModel) record(st calc.State) {
	snap := st.Snapshot()
	if snap == m.saved {
		return
	}
	if s := m.store; s != nil {
		old := m.saved
		if snap.Memory != old.Memory {
			s.SetMemory(snap.Memory)
		}
		if snap.Mode != old.Mode || snap.Angle != old.Angle {
			s.SetSettings(snap.Mode, snap.Angle)
		}
		for i := range snap.Slots {
			if snap.Slots[i] != old.Slots[i] {
				s.SetSlot(i, snap.Slots[i])
			}
		}
		if snap.Window != old.Window {
			s.SetWindow(snap.Window)
		}
	}
	m.saved = snap
}
