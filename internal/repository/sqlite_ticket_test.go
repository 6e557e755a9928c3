package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/dayplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketRepo_CreateAndLookup(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	tickets := NewSQLiteTicketRepo(database)

	ticket := testutil.NewTestTicket("OPS-1", "Rotate keys")
	require.NoError(t, tickets.Create(ctx, ticket))

	byID, err := tickets.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "OPS-1", byID.JiraKey)
	assert.Nil(t, byID.SprintID)

	byKey, err := tickets.GetByKey(ctx, "OPS-1")
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, byKey.ID)

	_, err = tickets.GetByKey(ctx, "OPS-2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTicketRepo_DuplicateKeyRejected(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	tickets := NewSQLiteTicketRepo(database)

	require.NoError(t, tickets.Create(ctx, testutil.NewTestTicket("OPS-1", "a")))
	assert.Error(t, tickets.Create(ctx, testutil.NewTestTicket("OPS-1", "b")))
}

func TestTicketRepo_UnknownSprintRejected(t *testing.T) {
	database := testutil.NewTestDB(t)
	ticket := testutil.NewTestTicket("OPS-3", "Orphan")
	missing := "no-such-sprint"
	ticket.SprintID = &missing
	assert.Error(t, NewSQLiteTicketRepo(database).Create(context.Background(), ticket))
}
