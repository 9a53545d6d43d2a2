package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Flashcard-specific validation errors
var (
	// ErrFlashcardIDEmpty is returned when a flashcard ID is the zero UUID.
	ErrFlashcardIDEmpty = errors.New("flashcard ID cannot be empty")

	// ErrFlashcardSetIDEmpty is returned when a flashcard is not attached to a set.
	ErrFlashcardSetIDEmpty = errors.New("flashcard set ID cannot be empty")

	// ErrFlashcardQuestionEmpty is returned when the question is blank.
	ErrFlashcardQuestionEmpty = errors.New("flashcard question cannot be empty")

	// ErrFlashcardAnswerEmpty is returned when the answer is blank.
	ErrFlashcardAnswerEmpty = errors.New("flashcard answer cannot be empty")
)

// FlashcardContent is a question/answer pair as produced by the language model,
// before it is attached to a set and stored.
type FlashcardContent struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Valid reports whether both sides of the card are non-blank.
func (c FlashcardContent) Valid() bool {
	return strings.TrimSpace(c.Question) != "" && strings.TrimSpace(c.Answer) != ""
}

// Flashcard is a stored row of the flashcard table.
// CreatedAt is assigned by the store.
type Flashcard struct {
	ID        uuid.UUID `json:"id"`
	SetID     uuid.UUID `json:"set_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFlashcard creates a Flashcard for the given set from generated content.
// It generates a new UUID for the card. Returns an error if validation fails.
func NewFlashcard(setID uuid.UUID, content FlashcardContent) (*Flashcard, error) {
	card := &Flashcard{
		ID:       uuid.New(),
		SetID:    setID,
		Question: content.Question,
		Answer:   content.Answer,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
func (f *Flashcard) Validate() error {
	if f.ID == uuid.Nil {
		return ErrFlashcardIDEmpty
	}
	if f.SetID == uuid.Nil {
		return ErrFlashcardSetIDEmpty
	}
	if strings.TrimSpace(f.Question) == "" {
		return ErrFlashcardQuestionEmpty
	}
	if strings.TrimSpace(f.Answer) == "" {
		return ErrFlashcardAnswerEmpty
	}
	return nil
}

// FlashcardSet groups flashcards and is owned by a single user.
type FlashcardSet struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFlashcardSet creates a set owned by userID.
func NewFlashcardSet(userID uuid.UUID, title string) (*FlashcardSet, error) {
	if userID == uuid.Nil {
		return nil, ErrFlashcardSetOwnerEmpty
	}
	if strings.TrimSpace(title) == "" {
		return nil, ErrFlashcardSetTitleEmpty
	}
	return &FlashcardSet{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}, nil
}

var (
	// ErrFlashcardSetOwnerEmpty is returned when a set has no owner.
	ErrFlashcardSetOwnerEmpty = errors.New("flashcard set owner cannot be empty")

	// ErrFlashcardSetTitleEmpty is returned when a set has a blank title.
	ErrFlashcardSetTitleEmpty = errors.New("flashcard set title cannot be empty")
)
