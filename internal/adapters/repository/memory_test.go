package repository_test

import (
	"context"
	"testing"
	"time"

	repository "github.com/okian/callbreak/internal/adapters/repository"
	"github.com/okian/callbreak/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// sampleGame builds a fully played game with fixed UTC timestamps so stored
// and reloaded values compare exactly.
func sampleGame(id string, status model.GameStatus, created time.Time) *model.Game {
	g := &model.Game{
		ID:        id,
		CreatedAt: created,
		Status:    status,
		Players: []model.Player{
			{ID: "player-0", Name: "Asha", SeatingPosition: 0},
			{ID: "player-1", Name: "Bikram", SeatingPosition: 1},
			{ID: "player-2", Name: "Chandra", SeatingPosition: 2},
			{ID: "player-3", Name: "Deepa", SeatingPosition: 3},
		},
		Rounds: []model.Round{
			{
				RoundNumber: 1,
				DealerIndex: 0,
				Status:      model.RoundCompleted,
				Calls: []model.PlayerCall{
					{PlayerID: "player-0", Call: 3},
					{PlayerID: "player-1", Call: 4},
					{PlayerID: "player-2", Call: 2},
					{PlayerID: "player-3", Call: 4},
				},
				Results: []model.PlayerResult{
					{PlayerID: "player-0", TricksWon: 3},
					{PlayerID: "player-1", TricksWon: 5},
					{PlayerID: "player-2", TricksWon: 2},
					{PlayerID: "player-3", TricksWon: 3},
				},
				Scores: []model.RoundScore{
					{PlayerID: "player-0", PlayerName: "Asha", Call: 3, Result: 3, RoundScore: 3, CumulativeScore: 3, CallMet: true},
					{PlayerID: "player-1", PlayerName: "Bikram", Call: 4, Result: 5, RoundScore: 4.1, CumulativeScore: 4.1, ExtraTricks: 1},
					{PlayerID: "player-2", PlayerName: "Chandra", Call: 2, Result: 2, RoundScore: 2, CumulativeScore: 2, CallMet: true},
					{PlayerID: "player-3", PlayerName: "Deepa", Call: 4, Result: 3, RoundScore: -4, CumulativeScore: -4},
				},
			},
		},
		CurrentRound:       1,
		InitialDealerIndex: 0,
		Stakes:             &model.StakesConfig{Currency: "$", Amounts: []float64{5, 10, 15}},
	}
	if status == model.StatusCompleted {
		done := created.Add(40 * time.Minute)
		g.CompletedAt = &done
	}
	return g
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

	Convey("Given an in-memory game store", t, func() {
		store := repository.NewMemoryStore()

		Convey("When saving and reloading a game", func() {
			original := sampleGame("g1", model.StatusInProgress, base)
			So(store.Save(ctx, original), ShouldBeNil)
			loaded, err := store.FindByID(ctx, "g1")

			Convey("Then every field survives the round trip", func() {
				So(err, ShouldBeNil)
				So(loaded, ShouldResemble, original)
			})

			Convey("And the stored aggregate is not shared with the caller", func() {
				So(err, ShouldBeNil)
				loaded.Rounds[0].Scores[0].CumulativeScore = 99
				again, err := store.FindByID(ctx, "g1")
				So(err, ShouldBeNil)
				So(again.Rounds[0].Scores[0].CumulativeScore, ShouldEqual, 3)
			})
		})

		Convey("When saving the same ID twice", func() {
			first := sampleGame("g1", model.StatusInProgress, base)
			So(store.Save(ctx, first), ShouldBeNil)
			second := first.Clone()
			second.CurrentRound = 2
			So(store.Save(ctx, second), ShouldBeNil)

			Convey("Then the save is an upsert", func() {
				loaded, err := store.FindByID(ctx, "g1")
				So(err, ShouldBeNil)
				So(loaded.CurrentRound, ShouldEqual, 2)
				all, err := store.AllGames(ctx)
				So(err, ShouldBeNil)
				So(all, ShouldHaveLength, 1)
			})
		})

		Convey("When looking up games by status", func() {
			active := sampleGame("g-active", model.StatusInProgress, base.Add(time.Hour))
			oldDone := sampleGame("g-old", model.StatusCompleted, base.Add(-24*time.Hour))
			newDone := sampleGame("g-new", model.StatusCompleted, base)
			So(store.Save(ctx, active), ShouldBeNil)
			So(store.Save(ctx, oldDone), ShouldBeNil)
			So(store.Save(ctx, newDone), ShouldBeNil)

			Convey("Then the active game is the single in-progress one", func() {
				got, err := store.ActiveGame(ctx)
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, "g-active")
			})

			Convey("And completed games list newest first", func() {
				done, err := store.CompletedGames(ctx)
				So(err, ShouldBeNil)
				So(done, ShouldHaveLength, 2)
				So(done[0].ID, ShouldEqual, "g-new")
				So(done[1].ID, ShouldEqual, "g-old")
			})

			Convey("And the full listing includes the active game first", func() {
				all, err := store.AllGames(ctx)
				So(err, ShouldBeNil)
				So(all, ShouldHaveLength, 3)
				So(all[0].ID, ShouldEqual, "g-active")
			})
		})

		Convey("When no game is active", func() {
			_, err := store.ActiveGame(ctx)

			Convey("Then ErrNotFound is returned", func() {
				So(err, ShouldEqual, repository.ErrNotFound)
			})
		})

		Convey("When deleting games", func() {
			So(store.Save(ctx, sampleGame("g1", model.StatusInProgress, base)), ShouldBeNil)
			So(store.Save(ctx, sampleGame("g2", model.StatusCompleted, base)), ShouldBeNil)

			Convey("Then deleting one leaves the rest", func() {
				So(store.Delete(ctx, "g1"), ShouldBeNil)
				_, err := store.FindByID(ctx, "g1")
				So(err, ShouldEqual, repository.ErrNotFound)
				_, err = store.FindByID(ctx, "g2")
				So(err, ShouldBeNil)
			})

			Convey("And deleting an unknown ID is not an error", func() {
				So(store.Delete(ctx, "nope"), ShouldBeNil)
			})

			Convey("And deleting everything empties the store", func() {
				So(store.DeleteAll(ctx), ShouldBeNil)
				all, err := store.AllGames(ctx)
				So(err, ShouldBeNil)
				So(all, ShouldBeEmpty)
			})
		})
	})
}
