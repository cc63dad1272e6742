package models

import "time"

// SummaryLength is the number of characters kept as a book's summary
const SummaryLength = 200

// Book represents a book in the library metadata
type Book struct {
	Title               string `json:"title"`
	Summary             string `json:"summary"`
	TotalCharacterCount int    `json:"total_character_count"`
	Progress            int    `json:"progress"`
	LastReadTime        int64  `json:"last_read_time"`
}

// LastRead returns the last read time as a time.Time
func (b *Book) LastRead() time.Time {
	return time.Unix(b.LastReadTime, 0)
}

// Percent returns reading progress as a percentage
func (b *Book) Percent() int {
	if b.TotalCharacterCount == 0 {
		return 0
	}
	return b.Progress * 100 / b.TotalCharacterCount
}

// ReaderBookInfo is what the reader needs to display a book
type ReaderBookInfo struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Progress int    `json:"progress"`
}

// Appearance holds the settings that affect how text is drawn
type Appearance struct {
	TextSize  int    `json:"text_size" mapstructure:"text_size"`
	TextColor string `json:"text_color" mapstructure:"text_color"`
	Theme     string `json:"theme" mapstructure:"theme"`
}

// Control holds key bindings for the reader
type Control struct {
	ShowHide []string `json:"show_hide" mapstructure:"show_hide"`
	NextPage []string `json:"next_page" mapstructure:"next_page"`
	PrevPage []string `json:"prev_page" mapstructure:"prev_page"`
}

// ProgressUpdate is the payload of an update_progress command
type ProgressUpdate struct {
	Title    string `json:"title"`
	Progress int    `json:"progress"`
}
