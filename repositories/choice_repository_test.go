package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"pollsite/models"
	"pollsite/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoiceRepositoryIncrementVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewChoiceRepository(db, testutil.DiscardLogger())
	ctx := context.Background()

	question := testutil.CreateTestQuestion(t, db, "What's up?", -30*testutil.Day, "Not much")
	choice := question.Choices[0]

	require.NoError(t, repo.IncrementVotes(ctx, question.ID, choice.ID, 1))
	require.NoError(t, repo.IncrementVotes(ctx, question.ID, choice.ID, 1))

	assert.Equal(t, 2, testutil.VoteCount(t, db, choice.ID))
}

func TestChoiceRepositoryIncrementVotesRejectsForeignChoice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewChoiceRepository(db, testutil.DiscardLogger())
	ctx := context.Background()

	question := testutil.CreateTestQuestion(t, db, "Mine?", -testutil.Day, "A")
	other := testutil.CreateTestQuestion(t, db, "Theirs?", -testutil.Day, "B")

	err := repo.IncrementVotes(ctx, question.ID, other.Choices[0].ID, 1)
	assert.ErrorIs(t, err, models.ErrChoiceNotFound)
	assert.Equal(t, 0, testutil.VoteCount(t, db, other.Choices[0].ID))

	err = repo.IncrementVotes(ctx, question.ID, 9999, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestChoiceRepositoryCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewChoiceRepository(db, testutil.DiscardLogger())
	ctx := context.Background()

	question := testutil.CreateTestQuestion(t, db, "Colour?", -testutil.Day)

	choice := &models.Choice{QuestionID: question.ID, Text: "Blue"}
	require.NoError(t, repo.Create(ctx, choice))
	assert.NotZero(t, choice.ID)
	assert.Equal(t, 0, testutil.VoteCount(t, db, choice.ID))
}

// TestConcurrentIncrementVotes verifies that simultaneous votes on the same
// choice are all counted.
func TestConcurrentIncrementVotes(t *testing.T) {
	for _, n := range []int{2, 10, 100} {
		t.Run(fmt.Sprintf("%d voters", n), func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			repo := NewChoiceRepository(db, testutil.DiscardLogger())

			question := testutil.CreateTestQuestion(t, db, "Race?", -30*testutil.Day, "Winner")
			choiceID := question.Choices[0].ID

			var wg sync.WaitGroup
			errs := make(chan error, n)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					errs <- repo.IncrementVotes(context.Background(), question.ID, choiceID, 1)
				}()
			}
			wg.Wait()
			close(errs)

			for err := range errs {
				require.NoError(t, err)
			}
			assert.Equal(t, n, testutil.VoteCount(t, db, choiceID))
		})
	}
}
