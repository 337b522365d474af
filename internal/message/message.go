package message

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/robalyx/collegemsg/internal/timestamp"
)

// FieldCount is the number of whitespace separated fields on every input line.
const FieldCount = 3

// maxLineSize bounds a single input line.
const maxLineSize = 1024 * 1024

// ErrInvalidFormat indicates an input line that is not exactly three integers.
var ErrInvalidFormat = errors.New("invalid message format")

// Message is a single directed message between two users.
type Message struct {
	Src     int64
	Dest    int64
	Date    timestamp.Date
	Time    timestamp.Time
	Weekday int // 0 = Sunday ... 6 = Saturday
}

// IsSelf reports whether the message was sent by a user to themselves.
func (m Message) IsSelf() bool {
	return m.Src == m.Dest
}

// New builds a message from its raw fields, normalizing the timestamp.
func New(src, dest, ts int64) (Message, error) {
	stamp, err := timestamp.Normalize(ts)
	if err != nil {
		return Message{}, err
	}

	return Message{
		Src:     src,
		Dest:    dest,
		Date:    stamp.Date,
		Time:    stamp.Time,
		Weekday: stamp.Weekday,
	}, nil
}

// ReadFile reads every message from the file at path.
func ReadFile(path string) ([]Message, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open message file: %w", err)
	}
	defer file.Close()

	msgs, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return msgs, nil
}

// Parse reads "<src> <dest> <unix timestamp>" lines and returns the messages
// in input order. Blank lines are skipped. Any malformed line aborts the whole
// read and no messages are returned.
func Parse(r io.Reader) ([]Message, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		msgs   []Message
		lineNo int
	)

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		msg, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		msgs = append(msgs, msg)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan input: %w", err)
	}

	return msgs, nil
}

// parseLine converts a single trimmed line into a message.
func parseLine(line string) (Message, error) {
	fields := strings.Fields(line)
	if len(fields) != FieldCount {
		return Message{}, fmt.Errorf("%w: expected %d fields, got %d", ErrInvalidFormat, FieldCount, len(fields))
	}

	var values [FieldCount]int64
	for i, field := range fields {
		v, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return Message{}, fmt.Errorf("%w: field %d: %w", ErrInvalidFormat, i+1, err)
		}

		values[i] = v
	}

	msg, err := New(values[0], values[1], values[2])
	if err != nil {
		return Message{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	return msg, nil
}
