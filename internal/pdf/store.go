package pdf

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mitra-sanitaer/backend/internal/domain"
)

// =============================================================================
// Output Directory Store
// =============================================================================

// Store manages the flat output directory of generated PDFs. There is no
// manifest; the directory listing is the source of truth.
type Store struct {
	dir       string
	baseURL   string
	debugMode bool
	logger    *slog.Logger
}

// StoreConfig configures a Store.
type StoreConfig struct {
	// Dir is the output directory; created if missing.
	Dir string

	// BaseURL is the application base URL for debug download links.
	BaseURL string

	// DebugMode exposes download URLs; without it they are omitted.
	DebugMode bool
}

// NewStore creates the output directory if needed and returns a Store.
func NewStore(cfg StoreConfig, logger *slog.Logger) (*Store, error) {
	absDir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve output dir: %w", err)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	logger.Info("PDF Output-Verzeichnis bereit", "path", absDir, "debug_mode", cfg.DebugMode)

	return &Store{
		dir:       absDir,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		debugMode: cfg.DebugMode,
		logger:    logger,
	}, nil
}

// Dir returns the absolute output directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Filename derives the output filename from the customer's last name and the
// given timestamp: Badkonfigurator_{lastName}_{YYYY-MM-DD_HH-mm-ss}.pdf.
// The timestamp keeps concurrent requests for different customers from
// colliding.
func (s *Store) Filename(lastName string, now time.Time) string {
	return fmt.Sprintf("Badkonfigurator_%s_%s.pdf",
		SafeFilename(lastName),
		now.Format("2006-01-02_15-04-05"),
	)
}

// Save writes PDF bytes under the given filename and returns the stored
// document's metadata.
func (s *Store) Save(filename string, data []byte, now time.Time) (domain.GeneratedDocument, error) {
	path := filepath.Join(s.dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return domain.GeneratedDocument{}, fmt.Errorf("write pdf: %w", err)
	}

	doc := domain.GeneratedDocument{
		Filename:    filename,
		FilePath:    path,
		Size:        int64(len(data)),
		SizeLabel:   domain.FormatFileSize(int64(len(data))),
		Created:     now,
		CreatedAt:   now.Format("02.01.2006 15:04:05"),
		DownloadURL: s.downloadURL(filename),
	}

	s.logger.Info("PDF erfolgreich generiert",
		"filename", doc.Filename,
		"size", doc.SizeLabel,
		"path", doc.FilePath,
	)
	return doc, nil
}

// List returns every .pdf in the output directory, newest first, plus the
// formatted total size.
func (s *Store) List() ([]domain.GeneratedDocument, string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, "", fmt.Errorf("read output dir: %w", err)
	}

	var docs []domain.GeneratedDocument
	var totalBytes int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pdf") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		totalBytes += info.Size()
		docs = append(docs, domain.GeneratedDocument{
			Filename:    entry.Name(),
			Size:        info.Size(),
			SizeLabel:   domain.FormatFileSize(info.Size()),
			Created:     info.ModTime(),
			CreatedAt:   info.ModTime().Format("02.01.2006 15:04:05"),
			DownloadURL: s.downloadURL(entry.Name()),
		})
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Created.After(docs[j].Created)
	})

	return docs, domain.FormatFileSize(totalBytes), nil
}

// Clear deletes every .pdf in the output directory and returns the count of
// removed files.
func (s *Store) Clear() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read output dir: %w", err)
	}

	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pdf") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return deleted, fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
		deleted++
	}

	s.logger.Info("Debug PDFs gelöscht", "count", deleted)
	return deleted, nil
}

func (s *Store) downloadURL(filename string) string {
	if !s.debugMode {
		return ""
	}
	return s.baseURL + "/debug/pdfs/" + filename
}

// =============================================================================
// Filename Sanitization
// =============================================================================

// asciiFolder strips combining marks after NFD decomposition, turning
// "Müller" into "Muller".
var asciiFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SafeFilename makes a customer-supplied name safe for use in a filename:
// umlauts and accents are folded to ASCII, ß becomes ss, and anything outside
// [A-Za-z0-9_-] is dropped. Empty results fall back to "Kunde".
func SafeFilename(name string) string {
	name = strings.ReplaceAll(name, "ß", "ss")
	if folded, _, err := transform.String(asciiFolder, name); err == nil {
		name = folded
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "Kunde"
	}
	return b.String()
}
