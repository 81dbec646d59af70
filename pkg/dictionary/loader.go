package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Dictionary files come in two formats: binary .bin files (int32 LE entry
// count header, then per entry a uint16 length, the term bytes and a uint16
// weight) and plain .txt files with one term per line. The dictionary name
// is the file basename without extension.

// maxEntryCount is a sanity bound on the binary header.
const maxEntryCount = 1_000_000

// LoadFile loads one dictionary file into the store. It returns the
// dictionary name and the number of terms loaded.
func LoadFile(s *Store, path string) (string, int, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var (
		terms []string
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bin":
		terms, err = readBinary(path)
	case ".txt":
		terms, err = readText(path)
	default:
		return "", 0, fmt.Errorf("unsupported dictionary file %s", path)
	}
	if err != nil {
		return "", 0, err
	}
	n := s.Add(name, terms...)
	log.Debugf("dictionary %q: loaded %d terms from %s", name, n, path)
	return name, n, nil
}

// LoadDir loads every recognized dictionary file in dir. Files that fail to
// parse are skipped with a warning so one bad file cannot block startup.
func LoadDir(s *Store, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading dictionary dir %s: %w", dir, err)
	}
	total := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".bin" && ext != ".txt" {
			continue
		}
		_, n, err := LoadFile(s, filepath.Join(dir, e.Name()))
		if err != nil {
			log.Warnf("skipping dictionary file %s: %v", e.Name(), err)
			continue
		}
		total += n
	}
	return total, nil
}

func readBinary(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	var count int32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	if count < 0 || count > maxEntryCount {
		return nil, fmt.Errorf("implausible entry count %d in %s", count, path)
	}

	terms := make([]string, 0, count)
	for i := 0; i < int(count); i++ {
		var termLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &termLen); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("reading term length: %w", err)
		}
		buf := make([]byte, termLen)
		if _, err := io.ReadFull(reader, buf); err != nil {
			return nil, fmt.Errorf("reading term: %w", err)
		}
		var weight uint16
		if err := binary.Read(reader, binary.LittleEndian, &weight); err != nil {
			return nil, fmt.Errorf("reading weight: %w", err)
		}
		terms = append(terms, string(buf))
	}
	return terms, nil
}

func readText(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	var terms []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		term := strings.TrimSpace(scanner.Text())
		if term == "" {
			continue
		}
		terms = append(terms, term)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return terms, nil
}

// WriteBinary writes terms in the binary dictionary format, for dumping a
// store dictionary back to disk.
func WriteBinary(path string, terms []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := binary.Write(writer, binary.LittleEndian, int32(len(terms))); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, term := range terms {
		// The length field is 16 bits; a longer term would be silently
		// truncated and corrupt every entry after it.
		if len(term) > math.MaxUint16 {
			return fmt.Errorf("term too long for binary format: %d bytes", len(term))
		}
		if err := binary.Write(writer, binary.LittleEndian, uint16(len(term))); err != nil {
			return fmt.Errorf("writing term length: %w", err)
		}
		if _, err := writer.WriteString(term); err != nil {
			return fmt.Errorf("writing term: %w", err)
		}
		if err := binary.Write(writer, binary.LittleEndian, uint16(1)); err != nil {
			return fmt.Errorf("writing weight: %w", err)
		}
	}
	return writer.Flush()
}
