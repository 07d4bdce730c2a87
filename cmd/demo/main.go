// Command demo plays an unattended game against the rules engine with a
// simple greedy policy and prints the game log. Useful for eyeballing rule
// behaviour without a client.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/openmonopoly/monopoly-server-go/internal/config"
	"github.com/openmonopoly/monopoly-server-go/internal/game"
	"go.uber.org/zap"
)

var (
	players    = flag.Int("players", 4, "number of seats (2-6)")
	maxActions = flag.Int("max-actions", 20000, "abort after this many actions")
	seed       = flag.Int64("seed", 0, "dice and shuffle seed, 0 for time-based")
)

func main() {
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	engine := game.NewEngine(logger)

	names := []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank"}
	if *players < 2 || *players > len(names) {
		fmt.Fprintf(os.Stderr, "players must be between 2 and 6\n")
		os.Exit(1)
	}

	const gameID = "demo"
	if err := engine.CreateGame(gameID, game.GameOptions{
		Players:  names[:*players],
		Settings: config.DefaultGameSettings(),
		Seed:     *seed,
	}); err != nil {
		logger.Fatal("failed to create game", zap.Error(err))
	}

	printed := 0
	for i := 0; i < *maxActions; i++ {
		view, err := engine.GetGameView(gameID, -1)
		if err != nil {
			logger.Fatal("failed to get view", zap.Error(err))
		}

		for _, msg := range view.Messages[printed:] {
			fmt.Println(msg.Text)
		}
		printed = len(view.Messages)

		if view.State.String() == "FINISHED" {
			fmt.Printf("\nwinner: %s after %d turns\n", view.Players[view.Winner].Name, view.Turn)
			return
		}

		action := decide(view)
		if err := engine.ProcessAction(gameID, action); err != nil {
			logger.Fatal("policy produced an illegal action",
				zap.String("action", string(action.Type)),
				zap.Int("seat", action.Seat),
				zap.Error(err),
			)
		}
	}
	fmt.Println("\naborted: the game did not finish within the action budget")
}

// decide picks the next action with a greedy policy: buy whatever is
// affordable, pay whatever is owed, never bid at auction.
func decide(view *game.EngineGameView) game.PlayerAction {
	if view.Auction != nil {
		return game.PlayerAction{Seat: view.Auction.CurrentBidder, Type: game.ActionWithdraw}
	}

	if d := view.Decision; d != nil {
		seat := d.Seat
		balance := view.Players[seat].Balance
		switch d.Kind {
		case "PURCHASE":
			if balance >= d.Amount {
				return game.PlayerAction{Seat: seat, Type: game.ActionBuy}
			}
			return game.PlayerAction{Seat: seat, Type: game.ActionDeclineBuy}
		case "RENT":
			return game.PlayerAction{Seat: seat, Type: game.ActionPayRent}
		case "BAIL":
			if balance >= d.Amount {
				return game.PlayerAction{Seat: seat, Type: game.ActionPayBail}
			}
			return game.PlayerAction{Seat: seat, Type: game.ActionStayJailed}
		default: // CARD
			return game.PlayerAction{Seat: seat, Type: game.ActionCardPay}
		}
	}

	seat := view.CurrentSeat
	if view.RollsRemaining > 0 {
		return game.PlayerAction{Seat: seat, Type: game.ActionRoll}
	}
	if view.Players[seat].Balance < 0 {
		return game.PlayerAction{Seat: seat, Type: game.ActionDeclareBankruptcy}
	}
	return game.PlayerAction{Seat: seat, Type: game.ActionEndTurn}
}
