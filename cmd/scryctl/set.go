package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/platform/postgres"
	"github.com/phrazzld/scry-cardgen/internal/store"
)

type setCreateResult struct {
	Set        *domain.FlashcardSet `json:"set"`
	Flashcards []*domain.Flashcard  `json:"flashcards"`
}

func newSetCmd(env *cliEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Manage flashcard sets",
	}
	cmd.AddCommand(newSetCreateCmd(env))
	return cmd
}

func newSetCreateCmd(env *cliEnv) *cobra.Command {
	var (
		userID   string
		title    string
		fromFile string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a flashcard set, optionally seeded with cards from a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			owner, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid --user-id: %w", err)
			}

			var contents []domain.FlashcardContent
			if fromFile != "" {
				contents, err = readCardsFile(fromFile)
				if err != nil {
					return err
				}
			}

			var result *setCreateResult
			err = env.withDB(cmd.Context(), func(db *sql.DB) error {
				result, err = createSet(cmd.Context(), db,
					postgres.NewPostgresFlashcardSetStore(db, env.log),
					postgres.NewPostgresFlashcardStore(db, env.log),
					owner, title, contents)
				return err
			})
			if err != nil {
				return err
			}

			env.log.Info("flashcard set created",
				"set_id", result.Set.ID.String(),
				"flashcards", len(result.Flashcards))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "UUID of the set owner")
	cmd.Flags().StringVar(&title, "title", "", "set title")
	cmd.Flags().StringVar(&fromFile, "from-file", "", "JSON array of {question, answer} objects to add to the set")
	_ = cmd.MarkFlagRequired("user-id")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

// readCardsFile loads a JSON array of flashcard contents. Every entry must be valid.
func readCardsFile(path string) ([]domain.FlashcardContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cards file: %w", err)
	}

	var contents []domain.FlashcardContent
	if err := json.Unmarshal(data, &contents); err != nil {
		return nil, fmt.Errorf("cards file must be a JSON array of {question, answer}: %w", err)
	}
	for i, c := range contents {
		if !c.Valid() {
			return nil, fmt.Errorf("cards file entry %d: %w", i, domain.ErrValidation)
		}
	}
	return contents, nil
}

// createSet inserts the set and its initial cards in one transaction.
func createSet(
	ctx context.Context,
	db *sql.DB,
	sets store.FlashcardSetStore,
	cards store.FlashcardStore,
	userID uuid.UUID,
	title string,
	contents []domain.FlashcardContent,
) (*setCreateResult, error) {
	set, err := domain.NewFlashcardSet(userID, title)
	if err != nil {
		return nil, err
	}

	newCards := make([]*domain.Flashcard, 0, len(contents))
	for _, c := range contents {
		card, err := domain.NewFlashcard(set.ID, c)
		if err != nil {
			return nil, err
		}
		newCards = append(newCards, card)
	}

	result := &setCreateResult{Set: set, Flashcards: []*domain.Flashcard{}}
	err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		if err := sets.WithTx(tx).CreateSet(ctx, set); err != nil {
			return err
		}
		if len(newCards) == 0 {
			return nil
		}
		saved, err := cards.WithTx(tx).CreateMultiple(ctx, newCards)
		if err != nil {
			return err
		}
		result.Flashcards = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
