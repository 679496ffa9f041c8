package game

import (
	game_constants "Veinticuatro/constants/game"
	"errors"
	"math/rand"

	"github.com/google/uuid"
)

// Card is a single playing card. ID is stable for the card's whole life:
// transfers only mutate Owner, the id is never regenerated. Conservation
// checks rely on that.
type Card struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
	Owner string `json:"owner"`
}

var ErrInsufficientCards = errors.New("insufficient cards in deck")

// BuildDeck creates the 10-card starting deck (one card per value 1..10)
// for a player. Cards get fresh uuids.
func BuildDeck(owner string) []Card {
	deck := make([]Card, 0, game_constants.DeckSize)
	for v := game_constants.MinCardValue; v <= game_constants.MaxCardValue; v++ {
		deck = append(deck, Card{
			ID:    uuid.NewString(),
			Value: v,
			Owner: owner,
		})
	}
	return deck
}

// Shuffle returns a new uniformly shuffled copy of the deck (Fisher-Yates).
func Shuffle(deck []Card) []Card {
	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Draw takes n cards off the top of the deck. Returns the drawn cards and
// the remaining deck as new slices, the input is not mutated.
func Draw(deck []Card, n int) (drawn []Card, remaining []Card, err error) {
	if n > len(deck) {
		return nil, deck, ErrInsufficientCards
	}
	drawn = make([]Card, n)
	copy(drawn, deck[:n])
	remaining = make([]Card, len(deck)-n)
	copy(remaining, deck[n:])
	return drawn, remaining, nil
}

// Deal draws cardsPerPlayer cards from each deck into a shared center pool.
// A deck that cannot cover the deal is the structural end-of-game signal,
// reported as ErrInsufficientCards so the caller settles GAME_OVER instead
// of retrying.
func Deal(p1Deck, p2Deck []Card, cardsPerPlayer int) (center, p1Remaining, p2Remaining []Card, err error) {
	fromP1, p1Remaining, err := Draw(p1Deck, cardsPerPlayer)
	if err != nil {
		return nil, p1Deck, p2Deck, err
	}
	fromP2, p2Remaining, err := Draw(p2Deck, cardsPerPlayer)
	if err != nil {
		return nil, p1Deck, p2Deck, err
	}
	center = append(fromP1, fromP2...)
	return center, p1Remaining, p2Remaining, nil
}
