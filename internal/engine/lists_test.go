package engine

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/shoppinglist/internal/apierr"
	"github.com/mmynk/shoppinglist/internal/calculator"
)

func TestCreateList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list, err := f.engine.CreateList(ctx, f.member, map[string][]string{
		"dairy":        {"milk", "eggs"},
		"custom items": {"milk", " ", "hot sauce"},
	})
	require.NoError(t, err)
	require.Equal(t, "CREATED", list.Status)
	require.Nil(t, list.Price)
	require.Equal(t, []string{"milk", "hot sauce", "milk", "eggs"}, list.Items)

	_, err = f.engine.CreateList(ctx, f.member, map[string][]string{"dairy": {"", "  "}})
	requireKind(t, err, apierr.KindValidation)

	_, err = f.engine.CreateList(ctx, f.member, nil)
	requireKind(t, err, apierr.KindValidation)
}

func TestGetListsFor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.engine.CreateList(ctx, f.member, map[string][]string{"a": {"milk"}})
	require.NoError(t, err)
	second, err := f.engine.CreateList(ctx, f.member, map[string][]string{"a": {"bread"}})
	require.NoError(t, err)
	_, err = f.engine.CreateList(ctx, f.otherMember, map[string][]string{"a": {"tea"}})
	require.NoError(t, err)

	t.Run("admin sees every user of the organisation", func(t *testing.T) {
		users, err := f.engine.GetListsFor(ctx, f.admin)
		require.NoError(t, err)
		require.Len(t, users, 2)

		byName := map[string]int{}
		for _, u := range users {
			byName[u.Username] = len(u.Lists)
		}
		require.Equal(t, map[string]int{"ann": 0, "mia": 2}, byName)
	})

	t.Run("member sees own lists newest first", func(t *testing.T) {
		users, err := f.engine.GetListsFor(ctx, f.member)
		require.NoError(t, err)
		require.Len(t, users, 1)
		require.Equal(t, second.ID, users[0].Lists[0].ID)
		require.Equal(t, first.ID, users[0].Lists[1].ID)
	})
}

func TestGetListDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list, err := f.engine.CreateList(ctx, f.member, map[string][]string{"a": {"milk", "bread"}})
	require.NoError(t, err)

	got, err := f.engine.GetListDetail(ctx, f.member, list.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"milk", "bread"}, got.Items)

	_, err = f.engine.GetListDetail(ctx, f.admin, list.ID)
	require.NoError(t, err)

	peer, err := f.engine.RegisterUser(ctx, f.admin, NewUser{Username: "pat", Password: testPassword})
	require.NoError(t, err)
	_, err = f.engine.GetListDetail(ctx, principalOf(peer), list.ID)
	requireKind(t, err, apierr.KindUnauthorized)

	_, err = f.engine.GetListDetail(ctx, f.otherAdmin, list.ID)
	requireKind(t, err, apierr.KindUnauthorized)
	_, err = f.engine.GetListDetail(ctx, f.otherMember, list.ID)
	requireKind(t, err, apierr.KindUnauthorized)

	_, err = f.engine.GetListDetail(ctx, f.admin, "missing")
	requireKind(t, err, apierr.KindNotFound)
}

func TestUpdateListStatusIsMonotonic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list, err := f.engine.CreateList(ctx, f.member, map[string][]string{"a": {"milk"}})
	require.NoError(t, err)

	steps := []struct {
		propose string
		want    string
	}{
		{"", "CREATED"},
		{"CREATED", "CREATED"},
		{"SHOPPED", "SHOPPED"},
		{"CREATED", "SHOPPED"},
		{"SHOPPED", "SHOPPED"},
		{"COMPLETE", "COMPLETE"},
		{"SHOPPED", "COMPLETE"},
		{"COMPLETE", "COMPLETE"},
	}
	for i, step := range steps {
		updated, _, err := f.engine.UpdateList(ctx, f.admin, ListUpdate{
			ListID: list.ID,
			Status: step.propose,
			Notes:  "step",
		})
		require.NoError(t, err, "step %d", i)
		require.Equal(t, step.want, updated.Status, "step %d", i)
		require.Equal(t, "step", updated.Notes)
	}

	_, _, err = f.engine.UpdateList(ctx, f.admin, ListUpdate{ListID: list.ID, Status: "LOST"})
	requireKind(t, err, apierr.KindValidation)
}

func TestUpdateListPriceBooksLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list, err := f.engine.CreateList(ctx, f.member, map[string][]string{"a": {"milk"}})
	require.NoError(t, err)

	_, entry, err := f.engine.UpdateList(ctx, f.admin, ListUpdate{ListID: list.ID, Price: strPtr("25.00")})
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.Equal(t, "25", entry.Amount.String())
	require.Equal(t, calculator.DetailPriceAdded, entry.Detail)

	_, entry, err = f.engine.UpdateList(ctx, f.admin, ListUpdate{ListID: list.ID, Price: strPtr("30.00")})
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.Equal(t, "5", entry.Amount.String())
	require.Contains(t, entry.Detail, "Old price: 25.00, New price: 30.00, Difference: 5.00")

	updated, entry, err := f.engine.UpdateList(ctx, f.admin, ListUpdate{ListID: list.ID, Price: strPtr("30.00"), Notes: "paid"})
	require.NoError(t, err)
	require.Nil(t, entry)
	require.Equal(t, "paid", updated.Notes)

	updated, entry, err = f.engine.UpdateList(ctx, f.admin, ListUpdate{ListID: list.ID})
	require.NoError(t, err)
	require.Nil(t, entry)
	require.Equal(t, "30", updated.Price.String())
	require.Empty(t, updated.Notes)

	history, err := f.engine.GetHistory(ctx, f.admin, f.member.UserID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "5", history[0].Amount.String())

	balance, err := f.engine.GetBalance(ctx, f.member, f.member.UserID)
	require.NoError(t, err)
	require.Equal(t, "30", balance.String())

	_, _, err = f.engine.UpdateList(ctx, f.admin, ListUpdate{ListID: list.ID, Price: strPtr("abc")})
	requireKind(t, err, apierr.KindValidation)
}

func TestConcurrentUpdateListKeepsEveryLedgerEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list, err := f.engine.CreateList(ctx, f.member, map[string][]string{"a": {"milk"}})
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(price string) {
			defer wg.Done()
			_, _, err := f.engine.UpdateList(ctx, f.admin, ListUpdate{
				ListID: list.ID,
				Price:  strPtr(price),
				Status: "SHOPPED",
			})
			errs <- err
		}(fmt.Sprintf("%d.00", 10+i))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	final, err := f.engine.GetListDetail(ctx, f.member, list.ID)
	require.NoError(t, err)
	require.NotNil(t, final.Price)
	require.Equal(t, "SHOPPED", final.Status)

	// Every price is distinct, so every writer books exactly one entry.
	history, err := f.engine.GetHistory(ctx, f.member, f.member.UserID)
	require.NoError(t, err)
	require.Len(t, history, writers)

	balance, err := f.engine.GetBalance(ctx, f.member, f.member.UserID)
	require.NoError(t, err)
	require.True(t, final.Price.Equal(balance), "balance %s, final price %s", balance, final.Price)
}

func TestUpdateListIsAdminOnlyWithinOrganisation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list, err := f.engine.CreateList(ctx, f.member, map[string][]string{"a": {"milk"}})
	require.NoError(t, err)

	_, _, err = f.engine.UpdateList(ctx, f.member, ListUpdate{ListID: list.ID, Price: strPtr("1")})
	requireKind(t, err, apierr.KindUnauthorized)

	_, _, err = f.engine.UpdateList(ctx, f.otherAdmin, ListUpdate{ListID: list.ID, Price: strPtr("1")})
	requireKind(t, err, apierr.KindUnauthorized)

	_, _, err = f.engine.UpdateList(ctx, f.admin, ListUpdate{ListID: "missing"})
	requireKind(t, err, apierr.KindNotFound)

	history, err := f.engine.GetHistory(ctx, f.admin, f.member.UserID)
	require.NoError(t, err)
	require.Empty(t, history)
}
