package repository

import (
	"context"
	"reflect"
	"testing"

	"diffgame_seeder/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const mongoTestNamespace = "GAME_DATA.rankings"

func newMockMongoRepo(mt *mtest.T) *MongoRankingRepository {
	mt.Helper()
	return NewMongoRankingRepository(mt.Client, "GAME_DATA", "rankings")
}

// документ таблицы лидеров в том виде, как его вернет сервер
func rankingsDoc(t *testing.T, r *domain.GameRankings) bson.D {
	t.Helper()
	raw, err := bson.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return append(bson.D{{Key: "_id", Value: r.GameID}}, doc...)
}

// достает единственный statement из отправленной команды update
func lastUpdateStatement(mt *mtest.T) bson.Raw {
	mt.Helper()
	evt := mt.GetStartedEvent()
	if evt == nil || evt.CommandName != "update" {
		mt.Fatalf("ожидалась команда update, получено %v", evt)
	}
	if coll := evt.Command.Lookup("update").StringValue(); coll != "rankings" {
		mt.Fatalf("update в коллекцию %q, ожидалась rankings", coll)
	}
	updates, err := evt.Command.Lookup("updates").Array().Values()
	if err != nil || len(updates) != 1 {
		mt.Fatalf("ожидался один statement, получено %d: %v", len(updates), err)
	}
	return updates[0].Document()
}

func TestMongoRankingRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upsert replaces by gameId", func(mt *mtest.T) {
		repo := newMockMongoRepo(mt)
		seed := domain.NewSeedRankings(1)

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: 1}}}},
		))
		if err := repo.Upsert(context.Background(), seed); err != nil {
			mt.Fatalf("Upsert: %v", err)
		}

		stmt := lastUpdateStatement(mt)
		if !stmt.Lookup("upsert").Boolean() {
			mt.Fatalf("ожидался upsert=true: %s", stmt)
		}

		var filter struct {
			GameID int `bson:"gameId"`
		}
		if err := bson.Unmarshal(stmt.Lookup("q").Document(), &filter); err != nil {
			mt.Fatalf("filter: %v", err)
		}
		if filter.GameID != 1 {
			mt.Fatalf("фильтр по gameId=%d, ожидалось 1", filter.GameID)
		}
		if keys, _ := stmt.Lookup("q").Document().Elements(); len(keys) != 1 {
			mt.Fatalf("фильтр должен содержать только gameId: %s", stmt.Lookup("q").Document())
		}

		// замена целым документом, а не $set
		u := stmt.Lookup("u").Document()
		if first, err := u.IndexErr(0); err != nil || first.Key() != "gameId" {
			mt.Fatalf("ожидался документ-замена, получено %s", u)
		}
		var replacement domain.GameRankings
		if err := bson.Unmarshal(u, &replacement); err != nil {
			mt.Fatalf("replacement: %v", err)
		}
		if !reflect.DeepEqual(&replacement, seed) {
			mt.Fatalf("заменяющий документ %+v, ожидался %+v", replacement, seed)
		}
	})

	mt.Run("upsert error is returned", func(mt *mtest.T) {
		repo := newMockMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Message: "duplicate key",
			Name:    "DuplicateKey",
		}))
		if err := repo.Upsert(context.Background(), domain.NewSeedRankings(2)); err == nil {
			mt.Fatalf("ожидалась ошибка записи")
		}
	})

	mt.Run("get existing", func(mt *mtest.T) {
		repo := newMockMongoRepo(mt)
		seed := domain.NewSeedRankings(3)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mongoTestNamespace, mtest.FirstBatch, rankingsDoc(t, seed)))

		got, err := repo.Get(context.Background(), 3)
		if err != nil {
			mt.Fatalf("Get: %v", err)
		}
		if !reflect.DeepEqual(got, seed) {
			mt.Fatalf("получено %+v, ожидалось %+v", got, seed)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "find" {
			mt.Fatalf("ожидалась команда find, получено %v", evt)
		}
		var filter struct {
			GameID int `bson:"gameId"`
		}
		if err := bson.Unmarshal(evt.Command.Lookup("filter").Document(), &filter); err != nil || filter.GameID != 3 {
			mt.Fatalf("фильтр find %s, ожидался gameId=3", evt.Command.Lookup("filter"))
		}
	})

	mt.Run("get missing", func(mt *mtest.T) {
		repo := newMockMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mongoTestNamespace, mtest.FirstBatch))

		got, err := repo.Get(context.Background(), 42)
		if err != nil || got != nil {
			mt.Fatalf("ожидался nil без ошибки, получено %v, %v", got, err)
		}
	})

	mt.Run("ensure unique gameId index", func(mt *mtest.T) {
		repo := newMockMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		if err := repo.EnsureIndexes(context.Background()); err != nil {
			mt.Fatalf("EnsureIndexes: %v", err)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "createIndexes" {
			mt.Fatalf("ожидалась команда createIndexes, получено %v", evt)
		}
		indexes, err := evt.Command.Lookup("indexes").Array().Values()
		if err != nil || len(indexes) != 1 {
			mt.Fatalf("ожидался один индекс: %v", err)
		}
		idx := indexes[0].Document()
		if !idx.Lookup("unique").Boolean() {
			mt.Fatalf("индекс должен быть уникальным: %s", idx)
		}
		if _, err := idx.Lookup("key").Document().LookupErr("gameId"); err != nil {
			mt.Fatalf("индекс не по gameId: %s", idx)
		}
	})
}
