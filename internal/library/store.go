package library

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/avast/retry-go/v4"
	"github.com/justyntemme/sneaky-t/pkg/models"
)

const (
	// DirName is the library directory inside the data root
	DirName = "library"
	// MetadataFileName lists every book in the library
	MetadataFileName = "_metadata.json"
	// SampleTitle is the book seeded into a new library
	SampleTitle = "Sample Book"

	bookExt = ".txt"
)

//go:embed sample.txt
var sampleBook string

// Store is the on-disk book library: one metadata file describing every book,
// plus one text file per book holding its content.
type Store struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	books []models.Book
}

// NewStore opens the library in dir, creating it with a sample book if it
// does not exist yet.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		dir:    dir,
		logger: logger.With("component", "library"),
		now:    time.Now,
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create library dir: %w", err)
	}

	books, err := s.readMetadata()
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.seed(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	s.books = books
	return s, nil
}

// Dir returns the library directory
func (s *Store) Dir() string {
	return s.dir
}

// MetadataPath returns the path of the metadata file
func (s *Store) MetadataPath() string {
	return filepath.Join(s.dir, MetadataFileName)
}

// seed writes the sample book into an empty library
func (s *Store) seed() error {
	book, err := s.writeBook(SampleTitle, sampleBook)
	if err != nil {
		return err
	}
	s.books = []models.Book{book}
	s.logger.Info("created library", "dir", s.dir)
	return s.writeMetadata()
}

// Books returns every book, most recently read first
func (s *Store) Books() []models.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := make([]models.Book, len(s.books))
	copy(books, s.books)
	sortByLastRead(books)
	return books
}

// FirstReaderBook returns the most recently read book with its content, or
// nil when the library is empty.
func (s *Store) FirstReaderBook() (*models.ReaderBookInfo, error) {
	books := s.Books()
	if len(books) == 0 {
		return nil, nil
	}
	return s.ReaderBookInfo(books[0].Title)
}

// ReaderBookInfo loads a book's content together with its saved progress
func (s *Store) ReaderBookInfo(title string) (*models.ReaderBookInfo, error) {
	s.mu.Lock()
	i := s.indexOf(title)
	if i < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrBookNotFound, title)
	}
	progress := s.books[i].Progress
	s.mu.Unlock()

	content, err := os.ReadFile(s.bookPath(title))
	if err != nil {
		return nil, fmt.Errorf("failed to read book content: %w", err)
	}
	return &models.ReaderBookInfo{
		Title:    title,
		Content:  string(content),
		Progress: progress,
	}, nil
}

// Import copies a plain-text file into the library. The title is the file
// name without its extension.
func (s *Store) Import(path string) (models.Book, error) {
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := validateTitle(title); err != nil {
		return models.Book{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Book{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return models.Book{}, fmt.Errorf("%s is not UTF-8 text", path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(); err != nil {
		return models.Book{}, err
	}
	if s.indexOf(title) >= 0 {
		return models.Book{}, fmt.Errorf("%w: %s", ErrBookExists, title)
	}

	book, err := s.writeBook(title, string(data))
	if err != nil {
		return models.Book{}, err
	}
	s.books = append(s.books, book)
	if err := s.writeMetadata(); err != nil {
		return models.Book{}, err
	}
	s.logger.Info("imported book", "title", title, "characters", book.TotalCharacterCount)
	return book, nil
}

// Remove deletes a book and its content
func (s *Store) Remove(title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(); err != nil {
		return err
	}

	i := s.indexOf(title)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBookNotFound, title)
	}
	s.books = append(s.books[:i], s.books[i+1:]...)
	if err := s.writeMetadata(); err != nil {
		return err
	}
	if err := os.Remove(s.bookPath(title)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove book content: %w", err)
	}
	return nil
}

// MarkOpened makes title the most recently read book
func (s *Store) MarkOpened(title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(); err != nil {
		return err
	}

	i := s.indexOf(title)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBookNotFound, title)
	}
	s.books[i].LastReadTime = s.nextReadTime()
	return s.writeMetadata()
}

// UpdateProgress records the reading offset for title
func (s *Store) UpdateProgress(title string, progress int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(); err != nil {
		return err
	}

	i := s.indexOf(title)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBookNotFound, title)
	}
	book := &s.books[i]
	book.Progress = max(0, min(progress, book.TotalCharacterCount))
	book.LastReadTime = s.nextReadTime()
	return s.writeMetadata()
}

// Reload re-reads the metadata file, picking up changes made by other
// processes.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.readMetadata()
	if err != nil {
		return err
	}
	s.books = books
	return nil
}

// refresh re-reads the metadata file before a change is written back, so
// changes made by other processes are kept. A missing file keeps the
// in-memory list, which the write then restores. Caller must hold s.mu.
func (s *Store) refresh() error {
	books, err := s.readMetadata()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	s.books = books
	return nil
}

// nextReadTime returns a timestamp strictly newer than every book's, so the
// book touched last always sorts first. Caller must hold s.mu.
func (s *Store) nextReadTime() int64 {
	ts := s.now().Unix()
	for _, b := range s.books {
		if b.LastReadTime >= ts {
			ts = b.LastReadTime + 1
		}
	}
	return ts
}

// indexOf finds title in s.books. Caller must hold s.mu.
func (s *Store) indexOf(title string) int {
	for i, b := range s.books {
		if b.Title == title {
			return i
		}
	}
	return -1
}

func (s *Store) bookPath(title string) string {
	return filepath.Join(s.dir, title+bookExt)
}

// writeBook stores content and returns its metadata entry
func (s *Store) writeBook(title, content string) (models.Book, error) {
	if err := writeFileAtomic(s.bookPath(title), []byte(content)); err != nil {
		return models.Book{}, fmt.Errorf("failed to write book content: %w", err)
	}

	summary := []rune(content)
	if len(summary) > models.SummaryLength {
		summary = summary[:models.SummaryLength]
	}
	return models.Book{
		Title:               title,
		Summary:             string(summary),
		TotalCharacterCount: utf8.RuneCountInString(content),
		LastReadTime:        s.nextReadTime(),
	}, nil
}

// readMetadata reads the metadata file. Another process may be replacing it
// while we read, so parse failures are retried briefly.
func (s *Store) readMetadata() ([]models.Book, error) {
	var books []models.Book
	err := retry.Do(
		func() error {
			data, err := os.ReadFile(s.MetadataPath())
			if err != nil {
				return err
			}
			books = nil
			return json.Unmarshal(data, &books)
		},
		retry.Attempts(5),
		retry.Delay(50*time.Millisecond),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, fs.ErrNotExist)
		}),
	)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read library metadata: %w", err)
	}
	return books, nil
}

// writeMetadata persists s.books. Caller must hold s.mu (or own s exclusively).
func (s *Store) writeMetadata() error {
	books := s.books
	if books == nil {
		books = []models.Book{}
	}
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal library metadata: %w", err)
	}
	if err := writeFileAtomic(s.MetadataPath(), data); err != nil {
		return fmt.Errorf("failed to write library metadata: %w", err)
	}
	return nil
}

// writeFileAtomic replaces path so readers never observe a partial file
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func validateTitle(title string) error {
	if title == "" || title == "." || title == ".." ||
		strings.ContainsAny(title, `/\`) || strings.HasPrefix(title, ".") ||
		title+bookExt == MetadataFileName {
		return fmt.Errorf("%w: %q", ErrInvalidTitle, title)
	}
	return nil
}

func sortByLastRead(books []models.Book) {
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].LastReadTime > books[j].LastReadTime
	})
}
