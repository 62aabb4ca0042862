package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat_adoption_server/internal/dao/mysql/repository"
	"cat_adoption_server/internal/model"
	"cat_adoption_server/pkg/enum/application/application_status_enum"
	"cat_adoption_server/pkg/enum/message/sender_type_enum"
	"cat_adoption_server/pkg/enum/shelter/member_role_enum"
	"cat_adoption_server/pkg/errorx"
)

func TestTransactionRollsBackOnError(t *testing.T) {
	store := NewStore()
	repos := store.Repositories()
	ctx := context.Background()

	boom := errors.New("boom")
	err := repos.Transaction(ctx, func(tx *repository.Repositories) error {
		require.NoError(t, tx.Application.Create(ctx, &model.Application{Uuid: "A1", ApplicantId: "U1", CatId: "C1", Status: application_status_enum.PENDING}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repos.Application.FindByUuid(ctx, "A1")
	assert.True(t, errorx.IsNotFound(err))
}

func TestTransactionCommits(t *testing.T) {
	store := NewStore()
	repos := store.Repositories()
	ctx := context.Background()

	err := repos.Transaction(ctx, func(tx *repository.Repositories) error {
		return tx.Application.Create(ctx, &model.Application{Uuid: "A1", ApplicantId: "U1", CatId: "C1", Status: application_status_enum.PENDING})
	})
	require.NoError(t, err)

	n, err := repos.Application.CountActiveByApplicant(ctx, "U1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestLockWaitTimesOutAsContention(t *testing.T) {
	store := NewStore(WithLockTimeout(20 * time.Millisecond))
	repos := store.Repositories()
	ctx := context.Background()

	holding := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = repos.Transaction(ctx, func(tx *repository.Repositories) error {
			close(holding)
			<-done
			return nil
		})
	}()
	<-holding

	err := repos.Transaction(ctx, func(tx *repository.Repositories) error { return nil })
	close(done)
	assert.Equal(t, errorx.CodeContention, errorx.GetCode(err))
}

func TestMembershipIgnoresInactive(t *testing.T) {
	store := NewStore()
	store.PutMember(model.ShelterMember{ShelterId: "S1", UserId: "U1", Role: member_role_enum.ADMIN, IsActive: true})
	store.PutMember(model.ShelterMember{ShelterId: "S2", UserId: "U1", Role: member_role_enum.STAFF, IsActive: false})
	repos := store.Repositories()
	ctx := context.Background()

	ids, err := repos.Membership.FindActiveShelterIds(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, []string{"S1"}, ids)

	_, err = repos.Membership.FindActive(ctx, "S2", "U1")
	assert.True(t, errorx.IsNotFound(err))
}

func TestUnreadAndMarkReadBySenderType(t *testing.T) {
	store := NewStore()
	repos := store.Repositories()
	ctx := context.Background()

	for i, st := range []sender_type_enum.SenderType{sender_type_enum.USER, sender_type_enum.SHELTER, sender_type_enum.ADMIN, sender_type_enum.USER} {
		require.NoError(t, repos.Message.Create(ctx, &model.Message{Uuid: int64(i + 1), ApplicationId: "A1", SenderType: st, Content: "hi"}))
	}

	fromShelterSide := []sender_type_enum.SenderType{sender_type_enum.SHELTER, sender_type_enum.ADMIN}
	n, err := repos.Message.CountUnread(ctx, "A1", fromShelterSide)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	marked, err := repos.Message.MarkRead(ctx, "A1", fromShelterSide, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 2, marked)

	n, err = repos.Message.CountUnread(ctx, "A1", []sender_type_enum.SenderType{sender_type_enum.USER})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}
