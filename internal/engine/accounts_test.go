package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/shoppinglist/internal/apierr"
	"github.com/mmynk/shoppinglist/internal/models"
)

func TestRegisterOrganisation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("seeds the default catalog", func(t *testing.T) {
		groups, err := f.engine.ListGroups(ctx, f.admin)
		require.NoError(t, err)
		require.Len(t, groups, len(DefaultCatalog))
	})

	t.Run("duplicate organisation", func(t *testing.T) {
		_, _, err := f.engine.RegisterOrganisation(ctx, Registration{OrganisationName: "acme", Username: "new", Password: testPassword})
		requireKind(t, err, apierr.KindConflict)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, _, err := f.engine.RegisterOrganisation(ctx, Registration{OrganisationName: "initech", Username: "ann", Password: testPassword})
		requireKind(t, err, apierr.KindConflict)
	})

	t.Run("weak password", func(t *testing.T) {
		_, _, err := f.engine.RegisterOrganisation(ctx, Registration{OrganisationName: "initech", Username: "bob", Password: "short"})
		requireKind(t, err, apierr.KindValidation)
	})

	t.Run("missing name", func(t *testing.T) {
		_, _, err := f.engine.RegisterOrganisation(ctx, Registration{Username: "bob", Password: testPassword})
		requireKind(t, err, apierr.KindValidation)
	})
}

func TestRegisterUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.engine.RegisterUser(ctx, f.admin, NewUser{Username: "max", Password: testPassword, Role: "admin"})
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, user.Role)
	require.Equal(t, f.admin.OrganisationID, user.OrganisationID)
	require.True(t, user.FirstLogin)

	_, err = f.engine.RegisterUser(ctx, f.member, NewUser{Username: "sam", Password: testPassword})
	requireKind(t, err, apierr.KindUnauthorized)

	_, err = f.engine.RegisterUser(ctx, f.admin, NewUser{Username: "sam", Password: testPassword, Role: "owner"})
	requireKind(t, err, apierr.KindValidation)

	_, err = f.engine.RegisterUser(ctx, f.admin, NewUser{Username: "mia", Password: testPassword})
	requireKind(t, err, apierr.KindConflict)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, first, err := f.engine.Login(ctx, "mia", testPassword)
	require.NoError(t, err)
	require.True(t, first)
	require.Equal(t, f.member.UserID, user.UserID)

	_, first, err = f.engine.Login(ctx, "mia", testPassword)
	require.NoError(t, err)
	require.False(t, first)

	_, _, err = f.engine.Login(ctx, "mia", "wrong password")
	requireKind(t, err, apierr.KindUnauthenticated)

	_, _, err = f.engine.Login(ctx, "nobody", testPassword)
	requireKind(t, err, apierr.KindUnauthenticated)
}
