package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/fichedesk/dashboard/internal/core/domain"
)

func TestSnapshotStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	mt.Run("load maps both collections", func(mt *mtest.T) {
		store := NewSnapshotStore(mt.DB)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "fichedesk.users", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "u1"}, {Key: "name", Value: "Claire Admin"}, {Key: "email", Value: "admin@fichedesk.local"}, {Key: "role", Value: "ADMIN"}, {Key: "password", Value: "$2a$04$x"}},
				bson.D{{Key: "_id", Value: "u2"}, {Key: "name", Value: "Sophie Martin"}, {Key: "email", Value: "sophie@fichedesk.local"}, {Key: "role", Value: "ADVISOR"}},
			),
			mtest.CreateCursorResponse(0, "fichedesk.fiches", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "f1"}, {Key: "client_name", Value: "Alice Smith"}, {Key: "product", Value: "AUTO"}, {Key: "status", Value: "ASSIGNED"}, {Key: "advisor_id", Value: "u2"}, {Key: "created_at", Value: created}},
				bson.D{{Key: "_id", Value: "f2"}, {Key: "client_name", Value: "Bob Dupont"}, {Key: "product", Value: "MRH"}, {Key: "status", Value: "NEW"}, {Key: "advisor_id", Value: nil}, {Key: "created_at", Value: created}},
			),
		)

		snap, err := store.Load(context.Background())
		require.NoError(mt, err)
		require.Len(mt, snap.Users, 2)
		require.Len(mt, snap.Fiches, 2)

		assert.Equal(mt, domain.RoleAdmin, snap.Users[0].Role)
		assert.Equal(mt, "$2a$04$x", snap.Users[0].PasswordHash)
		require.NotNil(mt, snap.Fiches[0].AdvisorID)
		assert.Equal(mt, "u2", *snap.Fiches[0].AdvisorID)
		assert.Nil(mt, snap.Fiches[1].AdvisorID)
		assert.True(mt, created.Equal(snap.Fiches[0].CreatedAt))
	})

	mt.Run("load surfaces command errors", func(mt *mtest.T) {
		store := NewSnapshotStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "not authorized"}))

		_, err := store.Load(context.Background())
		assert.Error(mt, err)
	})

	mt.Run("update writes upserts then prunes", func(mt *mtest.T) {
		store := NewSnapshotStore(mt.DB)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "fichedesk.users", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "u1"}, {Key: "name", Value: "Claire Admin"}, {Key: "role", Value: "ADMIN"}},
			),
			mtest.CreateCursorResponse(0, "fichedesk.fiches", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "f1"}, {Key: "status", Value: "NEW"}, {Key: "created_at", Value: created}},
			),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}), // users bulk
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),                                      // users prune
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}), // fiches bulk
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),                                      // fiches prune
		)

		err := store.Update(context.Background(), func(snap *domain.Snapshot) error {
			snap.Fiches[0].Status = domain.StatusClosed
			return nil
		})
		require.NoError(mt, err)

		started := mt.GetAllStartedEvents()
		var commands []string
		for _, evt := range started {
			commands = append(commands, evt.CommandName)
		}
		assert.Equal(mt, []string{"find", "find", "update", "delete", "update", "delete"}, commands)
	})

	mt.Run("update aborts without writing when fn fails", func(mt *mtest.T) {
		store := NewSnapshotStore(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "fichedesk.users", mtest.FirstBatch),
			mtest.CreateCursorResponse(0, "fichedesk.fiches", mtest.FirstBatch),
		)

		err := store.Update(context.Background(), func(*domain.Snapshot) error {
			return domain.ErrFicheNotFound
		})
		assert.ErrorIs(mt, err, domain.ErrFicheNotFound)
		assert.Len(mt, mt.GetAllStartedEvents(), 2)
	})

	mt.Run("indexes make user email unique", func(mt *mtest.T) {
		store := NewSnapshotStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		require.NoError(mt, store.EnsureIndexes(context.Background()))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "createIndexes", evt.CommandName)
		assert.Equal(mt, "users", evt.Command.Lookup("createIndexes").StringValue())
		unique, err := evt.Command.LookupErr("indexes", "0", "unique")
		require.NoError(mt, err)
		assert.True(mt, unique.Boolean())
	})
}
