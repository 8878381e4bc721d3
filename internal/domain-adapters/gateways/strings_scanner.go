package gateways

import (
	"debug/elf"
	"fmt"
	"io"
	"os"

	"github.com/verhound/verhound/internal/domain/interfaces"
)

// StringsScanner extracts printable strings from a binary. ELF binaries are
// scanned section-aware (version banners live in the string-bearing
// sections); anything else falls back to a bounded whole-file scan.
type StringsScanner struct {
	minLength   int
	maxScanSize int64
	logger      interfaces.Logger
}

// elfSections are the string-bearing sections worth scanning.
var elfSections = []string{".rodata", ".data", ".comment", ".dynstr"}

// NewStringsScanner creates a new strings scanner
func NewStringsScanner(logger interfaces.Logger) *StringsScanner {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &StringsScanner{
		minLength:   4,
		maxScanSize: 64 << 20,
		logger:      logger,
	}
}

// Strings returns every printable run of at least minLength characters found
// in the file at path.
func (s *StringsScanner) Strings(path string) ([]string, error) {
	if lines, err := s.scanELF(path); err == nil {
		return lines, nil
	}
	return s.scanRaw(path)
}

// scanELF scans only the string-bearing sections of an ELF binary.
func (s *StringsScanner) scanELF(path string) ([]string, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("not an ELF file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	var lines []string
	for _, name := range elfSections {
		section := f.Section(name)
		if section == nil || section.Type == elf.SHT_NOBITS {
			continue
		}
		data, err := section.Data()
		if err != nil {
			s.logger.Debug("unreadable ELF section",
				interfaces.F("section", name),
				interfaces.F("error", err.Error()))
			continue
		}
		lines = append(lines, s.printableRuns(data)...)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no string-bearing sections in %s", path)
	}
	return lines, nil
}

// scanRaw scans the whole file, bounded by maxScanSize.
func (s *StringsScanner) scanRaw(path string) ([]string, error) {
	//nolint:gosec // G304: path was resolved and permission-checked upstream
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.maxScanSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return s.printableRuns(data), nil
}

// printableRuns splits data into runs of printable ASCII, dropping runs
// shorter than minLength.
func (s *StringsScanner) printableRuns(data []byte) []string {
	var runs []string
	start := -1
	for i, b := range data {
		printable := b >= 0x20 && b <= 0x7e
		if printable {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && i-start >= s.minLength {
			runs = append(runs, string(data[start:i]))
		}
		start = -1
	}
	if start >= 0 && len(data)-start >= s.minLength {
		runs = append(runs, string(data[start:]))
	}
	return runs
}
