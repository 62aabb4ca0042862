package membership

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat_adoption_server/internal/dao/memory"
	"cat_adoption_server/internal/dao/mysql/repository"
	"cat_adoption_server/internal/model"
	"cat_adoption_server/pkg/enum/message/sender_type_enum"
	"cat_adoption_server/pkg/enum/shelter/member_role_enum"
)

func newStore() *memory.Store {
	store := memory.NewStore()
	store.PutMember(model.ShelterMember{ShelterId: "S1", UserId: "admin", Role: member_role_enum.ADMIN, IsActive: true})
	store.PutMember(model.ShelterMember{ShelterId: "S1", UserId: "staff", Role: member_role_enum.STAFF, IsActive: true})
	store.PutMember(model.ShelterMember{ShelterId: "S1", UserId: "revoked", Role: member_role_enum.ADMIN, IsActive: false})
	return store
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	members := newStore().Repositories().Membership

	cases := []struct {
		name      string
		actor     model.Actor
		shelterId string
		want      Membership
	}{
		{"admin", model.NewActor("admin", false), "S1", Membership{IsMember: true, Role: member_role_enum.ADMIN}},
		{"staff", model.NewActor("staff", false), "S1", Membership{IsMember: true, Role: member_role_enum.STAFF}},
		{"revoked", model.NewActor("revoked", false), "S1", None},
		{"stranger", model.NewActor("stranger", false), "S1", None},
		{"unknown shelter", model.NewActor("admin", false), "S404", None},
		{"anonymous", model.Anonymous, "S1", None},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(ctx, members, tc.actor, tc.shelterId)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStandingPredicates(t *testing.T) {
	ctx := context.Background()
	members := newStore().Repositories().Membership
	app := &model.Application{Uuid: "A1", ApplicantId: "owner", ShelterId: "S1"}

	owner, err := StandingOn(ctx, members, model.NewActor("owner", false), app)
	require.NoError(t, err)
	assert.True(t, owner.CanSend())
	assert.Equal(t, repository.HideByApplicant, owner.Side())
	assert.Equal(t, []sender_type_enum.SenderType{sender_type_enum.SHELTER, sender_type_enum.ADMIN}, owner.UnreadSenderTypes())

	staff, err := StandingOn(ctx, members, model.NewActor("staff", false), app)
	require.NoError(t, err)
	assert.True(t, staff.CanRead())
	assert.False(t, staff.CanSend())
	assert.Equal(t, repository.HideByShelter, staff.Side())
	assert.Equal(t, []sender_type_enum.SenderType{sender_type_enum.USER}, staff.UnreadSenderTypes())

	platform, err := StandingOn(ctx, members, model.NewActor("root", true), app)
	require.NoError(t, err)
	assert.True(t, platform.CanSend())
	assert.Equal(t, repository.HideSide(0), platform.Side())
	assert.Nil(t, platform.UnreadSenderTypes())

	stranger, err := StandingOn(ctx, members, model.NewActor("stranger", false), app)
	require.NoError(t, err)
	assert.False(t, stranger.HasAny())
}
