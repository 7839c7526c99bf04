package tracking

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/annel0/skyblob/internal/world"
)

// record — одна строка файла записи
type record struct {
	Frame uint64       `json:"frame"`
	Blobs []world.Blob `json:"blobs"`
}

// Recorder пропускает кадры источника и дописывает каждый в файл
// JSON-lines, сжатый zstd.
type Recorder struct {
	mu     sync.Mutex
	src    Source
	file   io.Closer
	enc    *zstd.Encoder
	json   *json.Encoder
	frame  uint64
	err    error
	closed bool
}

// NewRecorder пишет кадры src в w
func NewRecorder(src Source, w io.Writer) (*Recorder, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	return &Recorder{src: src, enc: enc, json: json.NewEncoder(enc)}, nil
}

// CreateRecorder создаёт файл записи по пути path
func CreateRecorder(src Source, path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	r, err := NewRecorder(src, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.file = f
	return r, nil
}

// Blobs читает кадр источника и записывает его.
// Ошибка записи запоминается и возвращается из Close, кадр всё равно отдаётся.
func (r *Recorder) Blobs() []world.Blob {
	blobs := r.src.Blobs()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.err != nil {
		return blobs
	}
	r.frame++
	if blobs == nil {
		blobs = []world.Blob{}
	}
	r.err = r.json.Encode(record{Frame: r.frame, Blobs: blobs})
	return blobs
}

// Close дописывает сжатые данные и закрывает файл
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true

	err := errors.Join(r.err, r.enc.Close())
	if r.file != nil {
		err = errors.Join(err, r.file.Close())
	}
	return err
}

// Replay проигрывает записанные кадры по одному на вызов Blobs
type Replay struct {
	mu     sync.Mutex
	frames [][]world.Blob
	next   int
	loop   bool
}

// NewReplay читает запись из r целиком
func NewReplay(r io.Reader, loop bool) (*Replay, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	var frames [][]world.Blob
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var rec record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("кадр %d: %w", len(frames)+1, err)
		}
		frames = append(frames, rec.Blobs)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("чтение записи: %w", err)
	}
	return &Replay{frames: frames, loop: loop}, nil
}

// OpenReplay открывает файл записи
func OpenReplay(path string, loop bool) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewReplay(f, loop)
}

// Len возвращает число кадров записи
func (p *Replay) Len() int { return len(p.frames) }

// Blobs возвращает следующий кадр. После конца записи — nil, если не включён повтор.
func (p *Replay) Blobs() []world.Blob {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.next >= len(p.frames) {
		if !p.loop || len(p.frames) == 0 {
			return nil
		}
		p.next = 0
	}
	frame := p.frames[p.next]
	p.next++
	return frame
}
