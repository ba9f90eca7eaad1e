package sinks

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"hollowvale/server/logging"
)

// JSONSink appends newline-delimited JSON events to a file, flushing in
// batches to keep per-event cost low.
type JSONSink struct {
	mu       sync.Mutex
	file     *os.File
	writer   *bufio.Writer
	pending  int
	maxBatch int
	ticker   *time.Ticker
	done     chan struct{}
	closed   bool
}

func NewJSONSink(cfg logging.JSONConfig) (*JSONSink, error) {
	file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	maxBatch := cfg.MaxBatch
	if maxBatch <= 0 {
		maxBatch = 32
	}
	interval := cfg.FlushInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	s := &JSONSink{
		file:     file,
		writer:   bufio.NewWriter(file),
		maxBatch: maxBatch,
		ticker:   time.NewTicker(interval),
		done:     make(chan struct{}),
	}
	go s.flushLoop()
	return s, nil
}

func (s *JSONSink) flushLoop() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			s.mu.Lock()
			s.flushLocked()
			s.mu.Unlock()
		}
	}
}

func (s *JSONSink) Write(event logging.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	if err := s.writer.WriteByte('\n'); err != nil {
		return err
	}
	s.pending++
	if s.pending >= s.maxBatch {
		return s.flushLocked()
	}
	return nil
}

func (s *JSONSink) flushLocked() error {
	s.pending = 0
	return s.writer.Flush()
}

func (s *JSONSink) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.ticker.Stop()
	close(s.done)
	if err := s.flushLocked(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
