package game_constants

import "time"

const TargetValue = 24
const FloatTolerance = 1e-4

const DeckSize = 10 // values 1..10, one card each
const MinCardValue = 1
const MaxCardValue = 10

// Cards drawn from EACH player's deck per round
const ClassicCardsPerPlayer = 2
const SuperCardsPerPlayer = 4

const OperationsPerSolution = 3

// NOTE: a player hoarding this many cards loses immediately, even if the
// opponent's deck is not empty yet
const MaxDeckLoseThreshold = 20

// Room types
const (
	RoomTypeClassic = "classic"
	RoomTypeSuper   = "super"
)

// Timer durations
const RoundTimeout = 120 * time.Second // nobody claims within this window
const SolveTimeout = 30 * time.Second  // claimant must submit within this window
const DisconnectGracePeriod = 30 * time.Second
const ReplayDuration = 6 * time.Second

const RoomCodeLength = 6

// Flat rating delta applied per match outcome, the real ranking
// computation stays outside this server
const RatingDelta = 25
