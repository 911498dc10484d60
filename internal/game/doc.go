// Package game implements four-handed push/fold poker: one street, every seat
// either folds or moves its whole stack in.
//
// The main types are HandState, which sequences a single hand from the deal to
// the pot settlement, and Session, which plays successive hands for one user,
// rotating the user's seat and tracking a cumulative bankroll.
//
// # Basic Usage
//
//	table := strategy.LoadOrEmpty("strategy.json", logger)
//	s := game.NewSession(randutil.New(42), table, game.WithLogger(logger))
//	if err := s.NewHand(); err != nil {
//	    // hand already in progress
//	}
//	_ = s.UserDecide(game.AllIn)
//	view := s.State()
//
// # Deterministic Testing
//
// Every constructor takes an explicit *rand.Rand. Pair a seeded generator from
// randutil.New with WithDeck and a deck.NewStackedDeck to control every card:
//
//	h := game.NewHand(randutil.New(1), table, game.WithDeck(deck.NewStackedDeck(cards)))
//
// # Architecture
//
//   - Simulator: samples a seat's decision from the strategy table
//   - HandState: deal, seat actions, blinds and pot bookkeeping
//   - ResolvePot: settles the pot, including split pots and fold-outs
//   - Session: hand numbering, seat rotation, message log, bankroll, events
//
// Amounts are Chips, integer hundredths of a big blind, so every settlement is
// exact.
package game
