package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDeck(t *testing.T) {
	deck := BuildDeck("player1")
	assert.Len(t, deck, 10)

	seenValues := make(map[int]bool)
	seenIDs := make(map[string]bool)
	for _, c := range deck {
		assert.Equal(t, "player1", c.Owner)
		assert.GreaterOrEqual(t, c.Value, 1)
		assert.LessOrEqual(t, c.Value, 10)
		assert.False(t, seenValues[c.Value], "duplicate value %d", c.Value)
		assert.False(t, seenIDs[c.ID], "duplicate id %s", c.ID)
		seenValues[c.Value] = true
		seenIDs[c.ID] = true
	}
}

func TestShufflePreservesCards(t *testing.T) {
	deck := BuildDeck("p")
	shuffled := Shuffle(deck)

	assert.Len(t, shuffled, len(deck))

	ids := make(map[string]bool)
	for _, c := range deck {
		ids[c.ID] = true
	}
	for _, c := range shuffled {
		assert.True(t, ids[c.ID], "shuffle invented card %s", c.ID)
	}

	// Input must not be mutated
	for i, v := 0, 1; i < len(deck); i, v = i+1, v+1 {
		assert.Equal(t, v, deck[i].Value)
	}
}

func TestDraw(t *testing.T) {
	deck := BuildDeck("p")

	drawn, remaining, err := Draw(deck, 2)
	assert.NoError(t, err)
	assert.Len(t, drawn, 2)
	assert.Len(t, remaining, 8)
	assert.Equal(t, deck[0].ID, drawn[0].ID)

	_, _, err = Draw(remaining, 9)
	assert.ErrorIs(t, err, ErrInsufficientCards)

	// Exact drain is fine
	drawn, remaining, err = Draw(remaining, 8)
	assert.NoError(t, err)
	assert.Len(t, drawn, 8)
	assert.Empty(t, remaining)
}

func TestDeal(t *testing.T) {
	p1 := BuildDeck("p1")
	p2 := BuildDeck("p2")

	center, r1, r2, err := Deal(p1, p2, 2)
	assert.NoError(t, err)
	assert.Len(t, center, 4)
	assert.Len(t, r1, 8)
	assert.Len(t, r2, 8)

	// 2 from each side, in order
	assert.Equal(t, p1[0].ID, center[0].ID)
	assert.Equal(t, p2[0].ID, center[2].ID)
}

func TestDealInsufficientIsTerminal(t *testing.T) {
	p1 := BuildDeck("p1")[:1]
	p2 := BuildDeck("p2")

	_, r1, r2, err := Deal(p1, p2, 2)
	assert.ErrorIs(t, err, ErrInsufficientCards)
	// Decks untouched on failure
	assert.Len(t, r1, 1)
	assert.Len(t, r2, 10)
}
