// Package journal appends buy intents to date-organized JSONL files.
package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgnsrekt/invest_desk/internal/buy"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	fileName      = "buy_intents.jsonl"
	dateLayout    = "2006-01-02"
	drainDeadline = 5 * time.Second
)

// ErrClosed is returned by Append after Close.
var ErrClosed = errors.New("journal: closed")

// ErrBufferFull is returned when the write queue cannot take another entry.
var ErrBufferFull = errors.New("journal: buffer full")

// Entry is one journal line.
type Entry struct {
	ID       string    `json:"id"`
	PageID   string    `json:"page_id"`
	Category string    `json:"category"`
	Symbol   string    `json:"symbol"`
	Name     string    `json:"name"`
	Price    string    `json:"price"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

// FromAck builds an entry from a dispatched acknowledgment.
func FromAck(pageID string, ack buy.Acknowledgment) Entry {
	return Entry{
		ID:       ack.Intent.ID,
		PageID:   pageID,
		Category: ack.Intent.Category,
		Symbol:   ack.Intent.Symbol,
		Name:     ack.Intent.Name,
		Price:    ack.Intent.Instrument.Price,
		Message:  ack.Message,
		At:       ack.Intent.At,
	}
}

// Writer queues entries and writes them from a single goroutine. Files live
// under <dir>/<YYYY-MM-DD>/buy_intents.jsonl and rotate through lumberjack.
type Writer struct {
	dir       string
	maxSizeMB int
	now       func() time.Time

	queue chan Entry
	done  chan struct{}
	wg    sync.WaitGroup

	closeOnce sync.Once
	stateMu   sync.Mutex
	closed    bool

	mu   sync.Mutex
	date string
	out  *lumberjack.Logger
}

// NewWriter starts a writer rooted at dir.
func NewWriter(dir string, bufferSize, maxSizeMB int) *Writer {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	w := &Writer{
		dir:       dir,
		maxSizeMB: maxSizeMB,
		now:       time.Now,
		queue:     make(chan Entry, bufferSize),
		done:      make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w
}

// Append queues an entry without blocking.
func (w *Writer) Append(e Entry) error {
	w.stateMu.Lock()
	defer w.stateMu.Unlock()
	if w.closed {
		return ErrClosed
	}
	select {
	case w.queue <- e:
		return nil
	default:
		slog.Warn("journal buffer full, dropping entry", "symbol", e.Symbol, "page_id", e.PageID)
		return ErrBufferFull
	}
}

// Close stops the writer after flushing queued entries.
func (w *Writer) Close() error {
	w.closeOnce.Do(func() {
		w.stateMu.Lock()
		w.closed = true
		w.stateMu.Unlock()
		close(w.done)
	})
	w.wg.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.out == nil {
		return nil
	}
	err := w.out.Close()
	w.out = nil
	return err
}

func (w *Writer) loop() {
	defer w.wg.Done()
	for {
		select {
		case e := <-w.queue:
			w.write(e)
		case <-w.done:
			w.drain()
			return
		}
	}
}

func (w *Writer) drain() {
	deadline := time.After(drainDeadline)
	for {
		select {
		case e := <-w.queue:
			w.write(e)
		case <-deadline:
			slog.Warn("journal drain timed out, entries may be lost", "pending", len(w.queue))
			return
		default:
			return
		}
	}
}

func (w *Writer) write(e Entry) {
	data, err := json.Marshal(e)
	if err != nil {
		slog.Error("journal marshal failed", "error", err)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	date := w.now().UTC().Format(dateLayout)
	if w.out == nil || date != w.date {
		if err := w.openFor(date); err != nil {
			slog.Error("journal open failed", "error", err, "date", date)
			return
		}
	}
	if _, err := w.out.Write(append(data, '\n')); err != nil {
		slog.Error("journal write failed", "error", err)
	}
}

func (w *Writer) openFor(date string) error {
	if w.out != nil {
		if err := w.out.Close(); err != nil {
			slog.Debug("journal close previous file", "error", err)
		}
	}
	dir := filepath.Join(w.dir, date)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}
	w.out = &lumberjack.Logger{
		Filename:   filepath.Join(dir, fileName),
		MaxSize:    w.maxSizeMB,
		MaxBackups: 30,
		MaxAge:     90,
		LocalTime:  false,
	}
	w.date = date
	slog.Info("journal file opened", "file", w.out.Filename)
	return nil
}

// Path returns the journal file for a UTC day.
func Path(dir string, day time.Time) string {
	return filepath.Join(dir, day.UTC().Format(dateLayout), fileName)
}

// ReadDay returns every entry written on day. A missing file yields no entries.
func ReadDay(dir string, day time.Time) ([]Entry, error) {
	f, err := os.Open(Path(dir, day))
	if errors.Is(err, os.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	entries := []Entry{}
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("journal line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	return entries, nil
}
