package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	repository "github.com/okian/callbreak/internal/adapters/repository"
	"github.com/okian/callbreak/internal/config"
	"github.com/okian/callbreak/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewFromConfig(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

	Convey("Given the store factory", t, func() {
		Convey("When the config selects the memory backend", func() {
			store, err := repository.NewFromConfig(ctx, config.New())

			Convey("Then a working in-memory store comes back", func() {
				So(err, ShouldBeNil)
				g := sampleGame("g1", model.StatusInProgress, base)
				So(store.Save(ctx, g), ShouldBeNil)
				loaded, err := store.FindByID(ctx, "g1")
				So(err, ShouldBeNil)
				So(loaded, ShouldResemble, g)
			})
		})

		Convey("When the config selects the redis backend", func() {
			srv := miniredis.RunT(t)
			cfg := config.New()
			cfg.Storage = config.StorageRedis
			cfg.RedisAddr = srv.Addr()

			store, err := repository.NewFromConfig(ctx, cfg)

			Convey("Then a working redis store comes back", func() {
				So(err, ShouldBeNil)
				g := sampleGame("g1", model.StatusInProgress, base)
				So(store.Save(ctx, g), ShouldBeNil)
				loaded, err := store.FindByID(ctx, "g1")
				So(err, ShouldBeNil)
				So(loaded, ShouldResemble, g)
			})
		})

		Convey("When the redis backend is unreachable", func() {
			srv := miniredis.RunT(t)
			addr := srv.Addr()
			srv.Close()

			cfg := config.New()
			cfg.Storage = config.StorageRedis
			cfg.RedisAddr = addr

			_, err := repository.NewFromConfig(ctx, cfg)

			Convey("Then construction fails instead of the first save", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When the config names an unknown backend", func() {
			cfg := config.New()
			cfg.Storage = "parchment"

			_, err := repository.NewFromConfig(ctx, cfg)

			Convey("Then it is rejected as invalid config", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}
