// Package sessionstore persists calculator settings as an append-only JSON
// event log.
//
// The store runs its own goroutine. Writes are queued and never echoed back;
// the only events delivered on the Events channel are the initial Restored
// event and IOError.
package sessionstore

import (
	"container/list"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/fjl/giosci/internal/calc"
	"github.com/fjl/giosci/internal/plot"
)

const (
	dataFileName = "events.json"

	// The log is rewritten on open when it holds more events than this.
	maxLogEvents = 256
)

// Option configures a Store.
type Option func(*Store)

// WithFs sets the filesystem holding the data file.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) { s.fs = fs }
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) { s.log = log }
}

type Store struct {
	fs       afero.Fs
	log      logrus.FieldLogger
	dataDir  string
	dataFile afero.File
	writer   *json.Encoder

	eventsOut  chan Event
	eventQueue list.List

	eventsIn chan Event
	flushCh  chan struct{}
	quitCh   chan struct{}
	wg       sync.WaitGroup
}

// NewStore opens the store in datadir. Reading the data file happens in the
// background; its result is delivered on the Events channel.
func NewStore(datadir string, opts ...Option) *Store {
	s := &Store{
		fs:        afero.NewOsFs(),
		log:       logrus.StandardLogger(),
		dataDir:   datadir,
		eventsOut: make(chan Event),
		eventsIn:  make(chan Event, 256),
		flushCh:   make(chan struct{}, 1),
		quitCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.wg.Add(1)
	go s.mainLoop()
	return s
}

// Close closes the store and waits for queued changes to be written.
func (s *Store) Close() {
	close(s.quitCh)
	s.wg.Wait()
}

// Events returns the event channel.
// The app reads this channel and applies the events to the calculator.
func (s *Store) Events() <-chan Event {
	return s.eventsOut
}

// SetMemory records the memory register.
func (s *Store) SetMemory(v float64) {
	s.enqueueInputEvent(&MemoryChanged{Value: v})
}

// SetSettings records the input and angle modes.
func (s *Store) SetSettings(mode calc.Mode, angle calc.AngleMode) {
	s.enqueueInputEvent(&SettingsChanged{Mode: mode, Angle: angle})
}

// SetSlot records the text of function slot i.
func (s *Store) SetSlot(i int, text string) {
	s.enqueueInputEvent(&SlotChanged{Index: i, Text: text})
}

// SetWindow records the graph window.
func (s *Store) SetWindow(w plot.GraphWindow) {
	s.enqueueInputEvent(&WindowChanged{Window: w})
}

// Persist tells the store to flush data to disk.
func (s *Store) Persist() {
	select {
	case s.flushCh <- struct{}{}:
	default:
	}
}

// enqueueInputEvent delivers an event from the app to mainLoop.
func (s *Store) enqueueInputEvent(ev Event) {
	select {
	case s.eventsIn <- ev:
	case <-s.quitCh:
	}
}

func (s *Store) mainLoop() {
	defer s.wg.Done()

	// Initial replay.
	if err := s.initFile(); err != nil {
		s.log.WithError(err).Error("can't open data file")
		s.enqueueOutputEvent(&IOError{Err: err})
	}

	// Handle events.
	for {
		sendEvChan, sendEv := s.queuedOutputEvent()
		select {
		case sendEvChan <- sendEv:
			s.popOutputEvent()

		case ev := <-s.eventsIn:
			if err := s.writeEvent(ev); err != nil {
				s.enqueueOutputEvent(&IOError{Err: err})
			}

		case <-s.flushCh:
			if s.dataFile != nil {
				err := s.dataFile.Sync()
				s.log.WithError(err).Debug("data file flushed")
				if err != nil {
					s.enqueueOutputEvent(&IOError{Err: fmt.Errorf("flush data file: %w", err)})
				}
			}

		case <-s.quitCh:
			s.drainInput()
			if s.dataFile != nil {
				s.dataFile.Sync()
				err := s.dataFile.Close()
				s.log.WithError(err).Debug("data file closed")
			}
			return
		}
	}
}

// drainInput writes the events still queued at shutdown.
func (s *Store) drainInput() {
	for {
		select {
		case ev := <-s.eventsIn:
			if err := s.writeEvent(ev); err != nil {
				s.log.WithError(err).Error("event lost at shutdown")
			}
		default:
			return
		}
	}
}

func (s *Store) enqueueOutputEvent(ev Event) {
	s.eventQueue.PushBack(ev)
}

func (s *Store) queuedOutputEvent() (chan Event, Event) {
	first := s.eventQueue.Front()
	if first == nil {
		return nil, nil
	}
	return s.eventsOut, first.Value.(Event)
}

func (s *Store) popOutputEvent() {
	s.eventQueue.Remove(s.eventQueue.Front())
}

func (s *Store) writeEvent(ev Event) error {
	if err := s.initFile(); err != nil {
		return err
	}
	if err := writeEvent(s.writer, ev); err != nil {
		return fmt.Errorf("write %s event: %w", ev.evType(), err)
	}
	return nil
}

func (s *Store) initFile() error {
	if s.dataFile != nil {
		return nil // already open
	}

	if err := s.fs.MkdirAll(s.dataDir, 0700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	filename := filepath.Join(s.dataDir, dataFileName)
	f, err := s.fs.OpenFile(filename, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open data file: %w", err)
	}
	log := s.log.WithField("file", filename)
	log.Info("data file opened")

	snap, count, err := replay(f)
	if err != nil {
		log.WithError(err).Warn("data file damaged, rewriting")
	}
	if err != nil || count > maxLogEvents {
		f.Close()
		if f, err = s.compact(filename, snap); err != nil {
			return err
		}
	}
	log.WithField("events", count).Info("replay done")

	s.dataFile = f
	s.writer = json.NewEncoder(f)
	if count > 0 {
		s.enqueueOutputEvent(&Restored{Snapshot: snap, Events: count})
	}
	return nil
}

// replay folds the events of the data file. On a decode error, the events
// before it are kept.
func replay(r io.Reader) (calc.Snapshot, int, error) {
	var (
		dec   = json.NewDecoder(r)
		snap  = calc.New().Snapshot()
		count = 0
	)
	for {
		ev, err := readEvent(dec)
		if errors.Is(err, io.EOF) {
			return snap, count, nil
		}
		if err != nil {
			return snap, count, fmt.Errorf("event %d: %w", count, err)
		}
		count++
		snap = Apply(snap, ev)
	}
}

// compact replaces the data file by the minimal log producing snap and
// returns it opened for appending.
func (s *Store) compact(filename string, snap calc.Snapshot) (afero.File, error) {
	tmp := filename + ".tmp"
	f, err := s.fs.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("compact data file: %w", err)
	}
	enc := json.NewEncoder(f)
	for _, ev := range Diff(calc.New().Snapshot(), snap) {
		if err := writeEvent(enc, ev); err != nil {
			f.Close()
			return nil, fmt.Errorf("compact data file: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("compact data file: %w", err)
	}
	if err := s.fs.Rename(tmp, filename); err != nil {
		return nil, fmt.Errorf("compact data file: %w", err)
	}
	f, err = s.fs.OpenFile(filename, os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	return f, nil
}
